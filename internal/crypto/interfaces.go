package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService owns the client-side half of the zero-knowledge scheme:
// generating and protecting keys. It knows nothing about the network, the
// database, or users.
//
// Provisioning flow (once per account):
//
//	salt, DEK  = GenerateKekSalt() + GenerateDEK()
//	KEK        = DeriveKEK(password, salt)
//	wrappedDek = WrapDEK(DEK, KEK)        → persisted with the salt
//
// Unlock flow (every session):
//
//	KEK = DeriveKEK(password, salt)       → salt fetched from the server
//	DEK = UnwrapDEK(wrappedDek, KEK)      → held in memory only
type KeyChainService interface {
	// GenerateKekSalt generates a random per-account salt (32 bytes).
	// The salt is not a secret and is stored on the server in the clear.
	GenerateKekSalt() ([]byte, error)

	// GenerateDEK generates the random data-encryption key (32 bytes).
	// The DEK encrypts all of the account's content and never leaves the
	// client unwrapped.
	GenerateDEK() ([]byte, error)

	// DeriveKEK derives the key-encryption key from password and salt via
	// PBKDF2-SHA256. Deterministic; exists only in memory.
	DeriveKEK(password string, salt []byte) []byte

	// WrapDEK seals the DEK under the KEK and returns the e2ee envelope
	// text safe to persist server-side.
	WrapDEK(dek, kek []byte) (string, error)

	// UnwrapDEK opens a wrapped DEK. Returns ErrAuthenticationFailed on a
	// wrong KEK (i.e. wrong password); indistinguishable from corruption.
	UnwrapDEK(wrapped string, kek []byte) ([]byte, error)

	// SealWithDEK encrypts a content field under the DEK into an
	// e2ee-marked field value.
	SealWithDEK(dek []byte, plaintext string) (string, error)

	// OpenWithDEK decrypts an e2ee-marked field value under the DEK.
	// Unmarked values pass through unchanged.
	OpenWithDEK(dek []byte, value string) (string, error)
}
