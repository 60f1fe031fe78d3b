package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when the merged
// configuration is incomplete. All of them are fatal at startup.
var (
	// ErrMissingTokenSignKey indicates that no JWT signing secret was
	// provided by any configuration source.
	ErrMissingTokenSignKey = errors.New("token sign key must be set")

	// ErrMissingTokenIssuer indicates that the token issuer name is empty.
	ErrMissingTokenIssuer = errors.New("token issuer must be set")

	// ErrInvalidTokenDuration indicates a zero or negative token lifetime.
	ErrInvalidTokenDuration = errors.New("token duration must be positive")
)
