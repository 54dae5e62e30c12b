package snapshot

import "errors"

// Sentinel kinds for snapshot errors.
var (
	ErrNotSignedIn = errors.New("not signed in; run login first")
	ErrLogin       = errors.New("login failed")
	ErrProfile     = errors.New("profile unavailable")
	ErrWrite       = errors.New("write snapshot failed")
)
