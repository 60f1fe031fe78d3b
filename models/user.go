package models

import "time"

// User represents an account entity used for authentication and for storing
// the account's end-to-end encryption material.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier.
	// Typically used during authentication.
	Login string `json:"login"`

	// Password carries the plaintext password on inbound requests only.
	// It is hashed with bcrypt before it ever reaches the persistence layer
	// and is never written to logs or storage.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt digest of the user's password.
	// It is independent of the KEK/DEK hierarchy and never leaves the server.
	PasswordHash string `json:"-"`

	// KekSalt is the per-account random salt used by the client to derive
	// the key-encryption key from the password. Empty until end-to-end
	// encryption has been provisioned for the account. The salt is not a
	// secret; it is returned to the client on login.
	KekSalt string `json:"kek_salt,omitempty"`

	// WrappedDek is the account's data-encryption key wrapped under the KEK,
	// stored as an envelope text string. The server can never open it: the
	// KEK exists only in client memory. Empty until provisioned.
	WrappedDek string `json:"wrapped_dek,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// HasKeyMaterial reports whether end-to-end encryption has been provisioned
// for the account, i.e. both KekSalt and WrappedDek are present.
func (u User) HasKeyMaterial() bool {
	return u.KekSalt != "" && u.WrappedDek != ""
}

// ValidateKeyMaterial enforces the account invariant that KekSalt and
// WrappedDek are both present or both absent. Every mutation of the user
// record must pass through this check; an account with only one of the two
// values can neither unlock nor re-provision and indicates data corruption.
func (u User) ValidateKeyMaterial() error {
	if (u.KekSalt == "") != (u.WrappedDek == "") {
		return ErrPartialKeyMaterial
	}
	return nil
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
