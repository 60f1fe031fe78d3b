// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"io"
	"strings"
)

// Envelope layout constants. An envelope is the binary blob
// nonce ‖ tag ‖ ciphertext; its text form for storage in text columns is
// "<marker>" + base64(blob).
const (
	// KeySize is the AES-256 key length used for every key in the scheme
	// (KEK, DEK, legacy server key).
	KeySize = 32

	// NonceSize is the GCM nonce length (96 bits). A fresh random nonce is
	// drawn for every seal; nonce reuse under the same key would break both
	// confidentiality and integrity of the scheme.
	NonceSize = 12

	// TagSize is the GCM authentication tag length (128 bits).
	TagSize = 16
)

// Tier markers prefixing the text form of an envelope. A stored field value
// carrying neither marker is pre-migration plaintext.
const (
	// MarkerE2EE tags envelopes sealed by the client under its DEK.
	// The server stores and returns them verbatim.
	MarkerE2EE = "e2ee:"

	// MarkerLegacy tags envelopes sealed server-side before the end-to-end
	// migration. Frozen: decrypt-only, no new writes.
	MarkerLegacy = "enc:"
)

// Seal encrypts plaintext with AES-256-GCM under key and returns the binary
// envelope nonce ‖ tag ‖ ciphertext. Every call draws a fresh random nonce
// from the OS CSPRNG. Sealing an empty plaintext is valid and yields a
// non-empty envelope (nonce and tag alone), which keeps "empty content"
// distinguishable from "absent field".
func Seal(key, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	// gcm.Seal appends the tag after the ciphertext; the envelope format
	// places it between nonce and ciphertext, so split and reorder.
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	ciphertext, tag := sealed[:len(sealed)-TagSize], sealed[len(sealed)-TagSize:]

	envelope := make([]byte, 0, NonceSize+TagSize+len(ciphertext))
	envelope = append(envelope, nonce...)
	envelope = append(envelope, tag...)
	envelope = append(envelope, ciphertext...)
	return envelope, nil
}

// Open decrypts an envelope produced by [Seal] and returns the plaintext.
//
// It fails closed: a truncated envelope yields [ErrMalformedEnvelope], and
// any authentication-tag mismatch (wrong key or tampered bytes) yields
// [ErrAuthenticationFailed] with no further detail and no partial plaintext.
func Open(key, envelope []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	if len(envelope) < NonceSize+TagSize {
		return nil, ErrMalformedEnvelope
	}

	nonce := envelope[:NonceSize]
	tag := envelope[NonceSize : NonceSize+TagSize]
	ciphertext := envelope[NonceSize+TagSize:]

	// Reassemble ciphertext ‖ tag, the order gcm.Open expects.
	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

// EncodeField renders a binary envelope in its text form for storage in a
// text-oriented column: marker + base64(envelope).
func EncodeField(marker string, envelope []byte) string {
	return marker + base64.StdEncoding.EncodeToString(envelope)
}

// DecodeField strips marker from value and decodes the base64 payload back
// into a binary envelope. Returns [ErrMalformedEnvelope] if value does not
// carry the marker, is not valid base64, or is too short to hold a nonce
// and tag.
func DecodeField(marker, value string) ([]byte, error) {
	if !strings.HasPrefix(value, marker) {
		return nil, ErrMalformedEnvelope
	}

	envelope, err := base64.StdEncoding.DecodeString(value[len(marker):])
	if err != nil {
		return nil, ErrMalformedEnvelope
	}
	if len(envelope) < NonceSize+TagSize {
		return nil, ErrMalformedEnvelope
	}
	return envelope, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
