package app

import (
	"time"

	"github.com/okian/zoneprofile/pkg/logger"
)

// Timer is the handle returned by an AfterFunc.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. It matches time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

// Option applies a configuration option to the Controller.
type Option func(*Controller)

// WithLogger sets a custom logger for the controller.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithErrorLogoutDelay sets how long an errored session is kept before it is
// logged out automatically. Zero disables the timer.
func WithErrorLogoutDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.errorLogoutDelay = d
		}
	}
}

// WithEnhancedCharts toggles glow and gradient decorations on the charts.
func WithEnhancedCharts(enabled bool) Option {
	return func(c *Controller) {
		c.enhanced = enabled
	}
}

// WithAfterFunc replaces the timer used for the delayed logout.
func WithAfterFunc(f AfterFunc) Option {
	return func(c *Controller) {
		if f != nil {
			c.afterFunc = f
		}
	}
}
