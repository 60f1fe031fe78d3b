package crypto

import (
	"errors"
	"strings"
	"testing"
)

func TestNewLegacyCipher_RejectsShortSecret(t *testing.T) {
	for _, secret := range []string{"", "short", strings.Repeat("a", 31)} {
		if _, err := NewLegacyCipher(secret); !errors.Is(err, ErrLegacyKeyConfiguration) {
			t.Fatalf("NewLegacyCipher(%d chars) error = %v, want ErrLegacyKeyConfiguration", len(secret), err)
		}
	}
}

func TestNewLegacyCipher_AcceptsMinimumLengthSecret(t *testing.T) {
	if _, err := NewLegacyCipher(strings.Repeat("a", 32)); err != nil {
		t.Fatalf("NewLegacyCipher(32 chars) error: %v", err)
	}
}

func TestLegacyCipher_SealOpenRoundTrip(t *testing.T) {
	cipher, err := NewLegacyCipher("an-operator-secret-of-enough-length!")
	if err != nil {
		t.Fatalf("NewLegacyCipher error: %v", err)
	}

	sealed, err := cipher.SealLegacy("legacy note body")
	if err != nil {
		t.Fatalf("SealLegacy error: %v", err)
	}
	if !strings.HasPrefix(sealed, MarkerLegacy) {
		t.Fatalf("sealed value %q does not carry the legacy marker", sealed)
	}

	opened, err := cipher.OpenLegacy(sealed)
	if err != nil {
		t.Fatalf("OpenLegacy error: %v", err)
	}
	if opened != "legacy note body" {
		t.Fatalf("round trip mismatch: got %q", opened)
	}
}

func TestNewLegacyCipher_LongSecretTruncatedToKeyLength(t *testing.T) {
	// two secrets sharing the first 32 bytes derive the same key
	base := strings.Repeat("k", 32)
	c1, err := NewLegacyCipher(base + "-tail-one")
	if err != nil {
		t.Fatalf("NewLegacyCipher error: %v", err)
	}
	c2, err := NewLegacyCipher(base + "-a-completely-different-tail")
	if err != nil {
		t.Fatalf("NewLegacyCipher error: %v", err)
	}

	sealed, err := c1.SealLegacy("cross-decryptable")
	if err != nil {
		t.Fatalf("SealLegacy error: %v", err)
	}
	opened, err := c2.OpenLegacy(sealed)
	if err != nil {
		t.Fatalf("OpenLegacy with truncation-equal key error: %v", err)
	}
	if opened != "cross-decryptable" {
		t.Fatalf("round trip mismatch: got %q", opened)
	}
}

func TestOpenLegacy_WrongKey(t *testing.T) {
	c1, err := NewLegacyCipher(strings.Repeat("1", 32))
	if err != nil {
		t.Fatalf("NewLegacyCipher error: %v", err)
	}
	c2, err := NewLegacyCipher(strings.Repeat("2", 32))
	if err != nil {
		t.Fatalf("NewLegacyCipher error: %v", err)
	}

	sealed, err := c1.SealLegacy("secret")
	if err != nil {
		t.Fatalf("SealLegacy error: %v", err)
	}

	if _, err := c2.OpenLegacy(sealed); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("OpenLegacy with wrong key error = %v, want ErrAuthenticationFailed", err)
	}
}

func TestOpenLegacy_MalformedValue(t *testing.T) {
	cipher, err := NewLegacyCipher(strings.Repeat("3", 32))
	if err != nil {
		t.Fatalf("NewLegacyCipher error: %v", err)
	}

	for name, value := range map[string]string{
		"no marker":   "just plain text",
		"e2ee marker": MarkerE2EE + "c29tZXRoaW5n",
		"bad base64":  MarkerLegacy + "???",
	} {
		if _, err := cipher.OpenLegacy(value); !errors.Is(err, ErrMalformedEnvelope) {
			t.Fatalf("%s: OpenLegacy error = %v, want ErrMalformedEnvelope", name, err)
		}
	}
}
