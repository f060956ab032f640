package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireSessionAndRole(t *testing.T) {
	tm := NewTokenMaker("test-secret", 0)

	adminTok, _ := tm.Issue(loggedIn(t, Identity{UserID: "u1", Role: "admin"}))
	agentTok, _ := tm.Issue(loggedIn(t, Identity{UserID: "u2", Role: "agent"}))

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := RequireSession(tm)(RequireRole("admin")(ok))

	tests := []struct {
		name  string
		authz string
		want  int
	}{
		{name: "no header", want: http.StatusUnauthorized},
		{name: "garbage token", authz: "Bearer nope", want: http.StatusUnauthorized},
		{name: "wrong scheme", authz: "Basic " + adminTok, want: http.StatusUnauthorized},
		{name: "agent", authz: "Bearer " + agentTok, want: http.StatusForbidden},
		{name: "admin", authz: "Bearer " + adminTok, want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/products", nil)
			if tt.authz != "" {
				req.Header.Set("Authorization", tt.authz)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status=%d want=%d", rec.Code, tt.want)
			}
		})
	}
}

func TestSessionFromContext_DefaultsToLoggedOut(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if SessionFromContext(req.Context()).State() != LoggedOut {
		t.Fatalf("expected logged out session")
	}
}
