package crypto

import "errors"

// Sentinel errors returned by the crypto package. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrAuthenticationFailed is returned by Open/UnwrapDEK when the GCM
	// authentication tag does not verify: the key is wrong or the envelope
	// has been tampered with. The two cases are deliberately
	// indistinguishable; no partial plaintext, no detail about which bytes
	// failed.
	ErrAuthenticationFailed = errors.New("envelope authentication failed")

	// ErrMalformedEnvelope is returned when an envelope is structurally
	// invalid: too short to contain a nonce and tag, or not valid base64.
	// Callers treat it identically to ErrAuthenticationFailed to avoid
	// acting as a format oracle.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrInvalidKeyLength is returned when a key of the wrong size is
	// supplied to a seal or open operation. All keys in the scheme are
	// 32 bytes (AES-256).
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrLegacyKeyConfiguration is returned by NewLegacyCipher when the
	// operator-provided legacy secret is absent or too short. Fatal at
	// process startup for deployments that still carry legacy rows; it is
	// never discovered lazily mid-request.
	ErrLegacyKeyConfiguration = errors.New("legacy encryption key must be set and at least 32 characters")
)
