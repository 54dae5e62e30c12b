package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/zoneprofile/internal/app"
	"github.com/okian/zoneprofile/internal/render/svg"
	"github.com/okian/zoneprofile/pkg/logger"
)

// Chart file names served under /charts/.
const (
	ChartSkills = "skills.svg"
	ChartAudit  = "audit.svg"
)

// ChartsHandler serves the profile charts as standalone SVG documents.
type ChartsHandler struct {
	server *Server
}

// HandleChart handles GET /charts/{chart} requests.
func (h *ChartsHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	s := h.server
	name := r.PathValue("chart")
	if name != ChartSkills && name != ChartAudit {
		http.Error(w, fmt.Sprintf("%v: %s", ErrUnknownChart, name), http.StatusNotFound)
		return
	}
	id, ok := s.existingSessionID(r)
	if !ok {
		http.Error(w, app.ErrNotSignedIn.Error(), http.StatusUnauthorized)
		return
	}

	view, err := s.ctrl.Charts(r.Context(), app.Session{ID: id})
	switch {
	case errors.Is(err, app.ErrNotSignedIn):
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	case err != nil:
		s.logger.Warn(r.Context(), "render chart", logger.String("chart", name), logger.Error(err))
		http.Error(w, app.MessageLoadProfilePrefix+err.Error(), http.StatusBadGateway)
		return
	}

	var canvas *svg.Canvas
	if name == ChartSkills {
		canvas = view.Skills
	} else {
		canvas = view.Audit
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = canvas.WriteTo(w)
}
