package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// KDF parameters. The iteration count matches the browser client exactly;
// both sides must derive the same KEK from the same (password, salt) pair.
const (
	// kekIterations is the PBKDF2 iteration count: deliberately slow so
	// that brute-forcing the password from a captured (salt, wrappedDek)
	// pair stays expensive. This is the only defense once the wrapped DEK
	// is exposed.
	kekIterations = 260_000

	// KekSaltSize is the per-account salt length: 32 bytes (256 bits of
	// entropy), generated once per account and never reused.
	KekSaltSize = 32
)

// DeriveKEK derives the 256-bit key-encryption key from the user's password
// and the account's salt using PBKDF2-SHA256. Deterministic: the same
// (password, salt) pair always yields the same key. The result is never
// persisted and never transmitted; it exists only in memory on whichever
// side performed the derivation.
func DeriveKEK(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, kekIterations, KeySize, sha256.New)
}

// GenerateKekSalt draws a fresh random KEK salt from the OS CSPRNG.
// The salt is not a secret; it is stored server-side in the clear and
// returned to the client on login.
func GenerateKekSalt() ([]byte, error) {
	salt := make([]byte, KekSaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}
