package platform

import "errors"

// Sentinel kinds for platform errors.
var (
	// ErrCredentialRejected is returned when the auth endpoint answers non-2xx.
	ErrCredentialRejected = errors.New("invalid credentials")
	// ErrDataFetchFailed is returned when the GraphQL endpoint answers non-2xx
	// or cannot be reached.
	ErrDataFetchFailed = errors.New("failed to fetch user data")
	// ErrMalformedResponse is returned when a response does not match the
	// expected schema.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrUnreachable is returned when the auth endpoint cannot be reached.
	ErrUnreachable = errors.New("platform unreachable")
)
