package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnknownChart = errors.New("unknown chart")
)

// Form validation messages shown on the login page.
const (
	MessageMissingCredentials = "Username and password are required"
)
