package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniCatalog/internal/auth"
	"MiniCatalog/pkg/kit"
)

type Server struct {
	Catalog   *Controller
	Store     *Store
	Tokens    *auth.TokenMaker
	ShareBase string
	Log       *zap.Logger
}

const (
	loginLimitPerWindow = 10
	loginWindow         = time.Minute
	readyTimeout        = 1 * time.Second
)

var (
	anyRole   = []string{string(RoleAdmin), string(RoleAgent)}
	adminOnly = []string{string(RoleAdmin)}
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	loginLimiter := kit.NewIPRateLimiter(loginLimitPerWindow, loginWindow)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	r.With(loginLimiter.Middleware).Post("/auth/login", s.login)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSession(s.Tokens))

		pr.Post("/auth/logout", s.logout)
		pr.Get("/auth/whoami", s.whoami)

		pr.With(auth.RequireRole(anyRole...)).Get("/products", s.search)
		pr.With(auth.RequireRole(anyRole...)).Get("/products/{id}", s.get)
		pr.With(auth.RequireRole(anyRole...)).Get("/products/{id}/share", s.share)

		pr.Group(func(ar chi.Router) {
			ar.Use(auth.RequireRole(adminOnly...))
			ar.Post("/products", s.create)
			ar.Patch("/products/{id}", s.update)
			ar.Delete("/products/{id}", s.delete)
			ar.Put("/products/{id}/image", s.uploadImage)
			ar.Post("/admin/reset", s.reset)
		})
	})

	return r
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	AccessToken string        `json:"access_token"`
	User        auth.Identity `json:"user"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	u, err := s.Catalog.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	id := auth.Identity{UserID: u.ID, Username: u.Username, Name: u.Name, Role: string(u.Role)}
	sess := &auth.Session{}
	if err := sess.Login(id); err != nil {
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	tok, err := s.Tokens.Issue(sess)
	if err != nil {
		s.logger().Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	s.logger().Info("login", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	kit.WriteJSON(w, http.StatusOK, loginResp{AccessToken: tok, User: id})
}

// logout ends the request's session. Tokens are stateless, so the client is
// expected to drop its copy.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	id, _ := sess.Identity()
	if err := sess.Logout(); err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "not logged in", nil)
		return
	}
	s.logger().Info("logout", zap.String("user_id", id.UserID))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) whoami(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.SessionFromContext(r.Context()).Identity()
	kit.WriteJSON(w, http.StatusOK, id)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Search(r.URL.Query().Get("q")))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := s.Catalog.Product(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

type shareResp struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

func (s *Server) share(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := s.Catalog.Product(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, shareResp{Text: ShareText(p), URL: ShareLink(s.ShareBase, p)})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var in ProductInput
	if err := kit.DecodeJSON(w, r, &in); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	p, err := s.Catalog.CreateProduct(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var patch ProductPatch
	if err := kit.DecodeJSON(w, r, &patch); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	p, err := s.Catalog.UpdateProduct(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	if err := s.Catalog.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// uploadImage accepts a multipart "image" file and stores it inline on the
// product as a data URI.
func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImageBytes+(64<<10))

	f, _, err := r.FormFile("image")
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "image file required", map[string]any{"cause": err.Error()})
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, MaxImageBytes+1))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "read image", map[string]any{"cause": err.Error()})
		return
	}

	uri, err := ImageDataURI(raw)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrImageTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		kit.WriteError(w, r, status, err.Error(), nil)
		return
	}

	p, err := s.Catalog.SetProductImage(r.Context(), chi.URLParam(r, "id"), uri)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	if err := s.Catalog.ResetAll(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		kit.WriteError(w, r, http.StatusBadRequest, "validation failed", map[string]any{"fields": ve.Fields})
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": chi.URLParam(r, "id")})
	default:
		s.logger().Error("catalog operation failed", zap.Error(err), zap.String("path", r.URL.Path))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}
