package auth

import (
	"errors"
	"testing"
)

func TestSession_Lifecycle(t *testing.T) {
	var s Session

	if s.State() != LoggedOut {
		t.Fatalf("zero session state=%v", s.State())
	}
	if s.Allows("admin", "agent") {
		t.Fatalf("logged out session allowed")
	}
	if err := s.Logout(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("logout while logged out: %v", err)
	}

	if err := s.Login(Identity{UserID: "u2", Username: "agent", Role: "agent"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.State() != LoggedIn {
		t.Fatalf("state=%v", s.State())
	}
	if !s.Allows("admin", "agent") || s.Allows("admin") {
		t.Fatalf("agent role gating wrong")
	}
	if err := s.Login(Identity{UserID: "u1", Role: "admin"}); !errors.Is(err, ErrAlreadyLoggedIn) {
		t.Fatalf("second login: %v", err)
	}
	if id, ok := s.Identity(); !ok || id.UserID != "u2" {
		t.Fatalf("identity=%+v ok=%v", id, ok)
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := s.Identity(); ok {
		t.Fatalf("identity survived logout")
	}
	if s.State().String() != "logged_out" {
		t.Fatalf("state=%s", s.State())
	}
}
