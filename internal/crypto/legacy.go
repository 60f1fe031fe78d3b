// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// legacyKeySalt is the fixed, non-account-specific salt used when the
// operator secret has to be stretched to key length. Changing it would
// orphan every legacy row, so it is a constant of the wire format.
const legacyKeySalt = "markdown-notes-salt"

// legacyScrypt parameters for stretching a short operator secret.
const (
	legacyScryptN = 16384
	legacyScryptR = 8
	legacyScryptP = 1
)

// LegacyCipher decrypts text fields sealed with the pre-migration
// server-held key. The path is frozen: SealLegacy exists only for migration
// tooling and tests, never for new production writes.
//
// The key is derived once at construction from the operator-provided secret
// and held only in process memory; it is never written to storage.
type LegacyCipher struct {
	key []byte
}

// NewLegacyCipher derives the legacy server key from the operator secret.
//
// Derivation mirrors the historical scheme byte for byte: a secret of at
// least 32 bytes is truncated to the AES-256 key length; a shorter (but
// still ≥32-character) secret is stretched with scrypt under the fixed
// legacy salt. Returns [ErrLegacyKeyConfiguration] when the secret is
// absent or shorter than 32 characters; callers must treat that as fatal
// at startup for any deployment that still carries legacy rows.
func NewLegacyCipher(secret string) (*LegacyCipher, error) {
	if len([]rune(secret)) < 32 {
		return nil, ErrLegacyKeyConfiguration
	}

	raw := []byte(secret)
	if len(raw) >= KeySize {
		return &LegacyCipher{key: raw[:KeySize]}, nil
	}

	key, err := scrypt.Key(raw, []byte(legacyKeySalt), legacyScryptN, legacyScryptR, legacyScryptP, KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive legacy key: %w", err)
	}
	return &LegacyCipher{key: key}, nil
}

// SealLegacy encrypts plaintext under the server key and returns an
// enc-marked field value. Retained for the transition tooling only.
func (c *LegacyCipher) SealLegacy(plaintext string) (string, error) {
	envelope, err := Seal(c.key, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return EncodeField(MarkerLegacy, envelope), nil
}

// OpenLegacy decrypts an enc-marked field value sealed with the server key.
// Returns [ErrMalformedEnvelope] or [ErrAuthenticationFailed] on failure;
// the resolver decides whether that means "fall through to passthrough".
func (c *LegacyCipher) OpenLegacy(value string) (string, error) {
	envelope, err := DecodeField(MarkerLegacy, value)
	if err != nil {
		return "", err
	}

	plaintext, err := Open(c.key, envelope)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
