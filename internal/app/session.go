package app

import (
	"time"

	"github.com/okian/zoneprofile/internal/domain/model"
	"github.com/okian/zoneprofile/internal/render/svg"
)

// Session is the explicit per-visitor state passed into and returned from
// every controller transition. ID scopes the token storage; an empty ID uses
// the storage unscoped.
type Session struct {
	ID         string
	Token      string
	State      State
	Generation uint64
}

// View is what a transition produced for the presentation layer.
type View struct {
	State   State
	Message string
	Profile *model.Profile
	Skills  *svg.Canvas
	Audit   *svg.Canvas
	// LogoutAfter is set on error views when the session will be logged out
	// automatically.
	LogoutAfter time.Duration
}

// entry is the controller's bookkeeping for one session.
type entry struct {
	state      State
	generation uint64
	timer      Timer
}

func (e *entry) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}
