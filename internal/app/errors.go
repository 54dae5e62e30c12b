package app

import "errors"

// Sentinel kinds for controller errors.
var (
	// ErrStaleResponse is returned when a newer action on the same session
	// superseded the one that produced the response. The response is dropped.
	ErrStaleResponse = errors.New("stale response discarded")
	// ErrInvalidTransition is returned when the state machine refuses a move.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// User-facing messages.
const (
	MessageInvalidCredentials = "Invalid credentials"
	MessageLoadProfilePrefix  = "Error loading profile: "
)

// ErrNotSignedIn is returned by read-only calls when the session has no token.
var ErrNotSignedIn = errors.New("session is not signed in")
