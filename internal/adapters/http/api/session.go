package api

import (
	"net/http"

	"github.com/google/uuid"
)

// DefaultCookieName is the browser cookie carrying the session id.
const DefaultCookieName = "zp_session"

// sessionID returns the session id carried by r, issuing a new cookie when
// the request has none or it is not a valid id.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(s.cookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// existingSessionID returns the session id carried by r without issuing one.
func (s *Server) existingSessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.cookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
