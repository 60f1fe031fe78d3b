// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/rand"
	"errors"
	"io"
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct{}

// NewKeyChainService constructs a [KeyChainService]. The service is
// stateless and safe for concurrent use.
func NewKeyChainService() KeyChainService {
	return &keyChainService{}
}

// GenerateKekSalt implements [KeyChainService].
func (k *keyChainService) GenerateKekSalt() ([]byte, error) {
	return GenerateKekSalt()
}

// GenerateDEK implements [KeyChainService]. It reads 32 random bytes from
// the OS CSPRNG and returns them as the data-encryption key. The DEK is
// never derived from user input; full key-length entropy is a requirement
// of the scheme. Returns an error if the random read fails.
func (k *keyChainService) GenerateDEK() ([]byte, error) {
	dek := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, dek); err != nil {
		return nil, err
	}
	return dek, nil
}

// DeriveKEK implements [KeyChainService].
func (k *keyChainService) DeriveKEK(password string, salt []byte) []byte {
	return DeriveKEK(password, salt)
}

// WrapDEK implements [KeyChainService]. It seals the raw DEK bytes under
// the KEK and returns the result as an e2ee-marked envelope text string,
// the form in which it is persisted on the server.
func (k *keyChainService) WrapDEK(dek, kek []byte) (string, error) {
	if len(dek) != KeySize {
		return "", ErrInvalidKeyLength
	}

	envelope, err := Seal(kek, dek)
	if err != nil {
		return "", err
	}
	return EncodeField(MarkerE2EE, envelope), nil
}

// UnwrapDEK implements [KeyChainService]. It decodes the envelope text
// produced by [keyChainService.WrapDEK] and opens it under the KEK.
//
// A wrong password produces a wrong KEK, which fails the authentication tag
// exactly like a corrupted envelope would; the two conditions are
// indistinguishable in both timing and error value, so the caller cannot be
// used as an oracle for which one occurred.
func (k *keyChainService) UnwrapDEK(wrapped string, kek []byte) ([]byte, error) {
	envelope, err := DecodeField(MarkerE2EE, wrapped)
	if err != nil {
		return nil, err
	}

	dek, err := Open(kek, envelope)
	if err != nil {
		return nil, err
	}
	if len(dek) != KeySize {
		// Authenticated but not a key: the envelope wraps something else.
		return nil, ErrMalformedEnvelope
	}
	return dek, nil
}

// SealWithDEK implements [KeyChainService]. It is the client-side content
// operation: plaintext sealed under the DEK into an e2ee-marked field value.
func (k *keyChainService) SealWithDEK(dek []byte, plaintext string) (string, error) {
	envelope, err := Seal(dek, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return EncodeField(MarkerE2EE, envelope), nil
}

// OpenWithDEK implements [KeyChainService]. A value without the e2ee marker
// is returned unchanged, mirroring the resolver's passthrough rule so that
// mixed-tier data keeps reading correctly on the client.
func (k *keyChainService) OpenWithDEK(dek []byte, value string) (string, error) {
	envelope, err := DecodeField(MarkerE2EE, value)
	if errors.Is(err, ErrMalformedEnvelope) && !hasMarker(value, MarkerE2EE) {
		return value, nil
	}
	if err != nil {
		return "", err
	}

	plaintext, err := Open(dek, envelope)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func hasMarker(value, marker string) bool {
	return len(value) >= len(marker) && value[:len(marker)] == marker
}
