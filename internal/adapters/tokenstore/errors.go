package tokenstore

import "errors"

// Sentinel kinds for token storage errors.
var (
	ErrNotFound = errors.New("key not found")
	ErrEmptyKey = errors.New("empty key")
	ErrPersist  = errors.New("persist token store failed")
	ErrCorrupt  = errors.New("token store file is corrupt")
)
