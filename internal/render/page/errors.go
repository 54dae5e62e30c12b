package page

import "errors"

// Sentinel kinds for page rendering errors.
var (
	ErrUnknownState = errors.New("no page for state")
	ErrRender       = errors.New("render page failed")
)
