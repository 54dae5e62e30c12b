package api

import (
	"net/http"
	"strings"

	"github.com/okian/zoneprofile/internal/app"
	"github.com/okian/zoneprofile/pkg/logger"
)

// ProfileHandler serves the login form, the profile page and logout.
type ProfileHandler struct {
	server *Server
}

// HandleIndex handles GET / requests.
func (h *ProfileHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	s := h.server
	id := s.sessionID(w, r)
	_, view, err := s.ctrl.Start(r.Context(), app.Session{ID: id})
	if err != nil && pending(err) {
		view = app.View{State: app.StateLoadingProfile}
	}
	s.writePage(w, r, http.StatusOK, view)
}

// HandleLogin handles POST /login requests.
func (h *ProfileHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	s := h.server
	id := s.sessionID(w, r)

	if err := r.ParseForm(); err != nil {
		s.writePage(w, r, http.StatusBadRequest, app.View{State: app.StateLoggedOut, Message: ErrBadRequest.Error()})
		return
	}
	identifier := strings.TrimSpace(r.PostFormValue("identifier"))
	password := r.PostFormValue("password")
	if identifier == "" || password == "" {
		s.writePage(w, r, http.StatusBadRequest, app.View{State: app.StateLoggedOut, Message: MessageMissingCredentials})
		return
	}

	_, view, err := s.ctrl.Login(r.Context(), app.Session{ID: id}, identifier, password)
	if err != nil {
		if pending(err) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.logger.Error(r.Context(), "login", logger.String("session", id), logger.Error(err))
	}
	s.writePage(w, r, http.StatusOK, view)
}

// HandleLogout handles POST /logout requests.
func (h *ProfileHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	s := h.server
	if id, ok := s.existingSessionID(r); ok {
		_, _, _ = s.ctrl.Logout(r.Context(), app.Session{ID: id})
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
