package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrKeyMaterialMissing signals that the account has no
	// (kek_salt, wrapped_dek) pair yet. Surfaced to the caller as "must
	// provision", never as a hard failure: this is the expected state of a
	// pre-migration account on its first post-migration login.
	ErrKeyMaterialMissing = errors.New("key material has not been provisioned")
)
