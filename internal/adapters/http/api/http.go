// Package api declares the HTTP routes of the profile service.
package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/okian/zoneprofile/internal/app"
	"github.com/okian/zoneprofile/internal/render/page"
	"github.com/okian/zoneprofile/pkg/logger"
)

// Controller is the session state machine the handlers drive.
type Controller interface {
	Start(ctx context.Context, sess app.Session) (app.Session, app.View, error)
	Login(ctx context.Context, sess app.Session, identifier, password string) (app.Session, app.View, error)
	Logout(ctx context.Context, sess app.Session) (app.Session, app.View, error)
	Charts(ctx context.Context, sess app.Session) (app.View, error)
}

// Server wires HTTP routes for the profile pages.
type Server struct {
	ctrl         Controller
	cookieName   string
	secureCookie bool
	logger       logger.Logger

	healthHandler  *HealthHandler
	profileHandler *ProfileHandler
	chartsHandler  *ChartsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(ctrl Controller, opts ...Option) *Server {
	s := &Server{
		ctrl:       ctrl,
		cookieName: DefaultCookieName,
		logger:     logger.Named("api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.profileHandler = &ProfileHandler{server: s}
	s.chartsHandler = &ChartsHandler{server: s}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /{$}", MetricsMiddleware(s.profileHandler.HandleIndex, "index"))
	mux.HandleFunc("POST /login", MetricsMiddleware(s.profileHandler.HandleLogin, "login"))
	mux.HandleFunc("POST /logout", MetricsMiddleware(s.profileHandler.HandleLogout, "logout"))
	mux.HandleFunc("GET /charts/{chart}", MetricsMiddleware(s.chartsHandler.HandleChart, "charts"))
}

// writePage renders v into a buffer first so a template failure can still
// produce a clean 500.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, v app.View) {
	var buf bytes.Buffer
	if err := page.Render(&buf, v); err != nil {
		s.logger.Error(r.Context(), "render page", logger.String("state", v.State.String()), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// pending reports controller errors that mean another action on the same
// session is still in flight.
func pending(err error) bool {
	return errors.Is(err, app.ErrStaleResponse) || errors.Is(err, app.ErrInvalidTransition)
}
