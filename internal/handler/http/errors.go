package http

import "errors"

// Sentinel errors emitted by the HTTP middleware while extracting and
// validating the bearer token.
var (
	// ErrEmptyAuthorizationHeader indicates a missing Authorization header.
	ErrEmptyAuthorizationHeader = errors.New("empty authorization header")

	// ErrInvalidAuthorizationHeader indicates an Authorization header that
	// does not follow the "<scheme> <token>" format.
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

	// ErrEmptyToken indicates an Authorization header whose token part is
	// an empty string.
	ErrEmptyToken = errors.New("empty token")
)
