package crypto

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, KeySize)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := testKey(0x11)

	plaintexts := []string{
		"hello world",
		"# My note\n\nwith *markdown* content",
		"тест с не-ASCII символами",
		strings.Repeat("long content ", 1000),
	}

	for _, plaintext := range plaintexts {
		envelope, err := Seal(key, []byte(plaintext))
		if err != nil {
			t.Fatalf("Seal error: %v", err)
		}

		got, err := Open(key, envelope)
		if err != nil {
			t.Fatalf("Open error: %v", err)
		}
		if string(got) != plaintext {
			t.Fatalf("round trip mismatch: got %q, want %q", got, plaintext)
		}
	}
}

func TestSeal_EmptyPlaintext(t *testing.T) {
	key := testKey(0x22)

	envelope, err := Seal(key, []byte(""))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if len(envelope) != NonceSize+TagSize {
		t.Fatalf("empty plaintext envelope length = %d, want %d", len(envelope), NonceSize+TagSize)
	}

	got, err := Open(key, envelope)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty plaintext, got %q", got)
	}
}

func TestSeal_FreshNonceEveryCall(t *testing.T) {
	key := testKey(0x33)
	plaintext := []byte("same plaintext")

	e1, err := Seal(key, plaintext)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	e2, err := Seal(key, plaintext)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if bytes.Equal(e1[:NonceSize], e2[:NonceSize]) {
		t.Fatalf("expected distinct nonces for repeated seals")
	}
	if bytes.Equal(e1, e2) {
		t.Fatalf("expected distinct envelopes for repeated seals")
	}
}

func TestOpen_TamperedCiphertext(t *testing.T) {
	key := testKey(0x44)

	envelope, err := Seal(key, []byte("integrity-protected"))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	// flip one bit in every region of the envelope in turn
	for _, idx := range []int{0, NonceSize, NonceSize + TagSize} {
		tampered := bytes.Clone(envelope)
		tampered[idx] ^= 0x01

		if _, err := Open(key, tampered); !errors.Is(err, ErrAuthenticationFailed) {
			t.Fatalf("Open(tampered at %d) error = %v, want ErrAuthenticationFailed", idx, err)
		}
	}
}

func TestOpen_WrongKey(t *testing.T) {
	envelope, err := Seal(testKey(0x55), []byte("secret"))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if _, err := Open(testKey(0x56), envelope); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("Open with wrong key error = %v, want ErrAuthenticationFailed", err)
	}
}

func TestOpen_TruncatedEnvelope(t *testing.T) {
	key := testKey(0x66)

	for _, size := range []int{0, 1, NonceSize, NonceSize + TagSize - 1} {
		if _, err := Open(key, make([]byte, size)); !errors.Is(err, ErrMalformedEnvelope) {
			t.Fatalf("Open(%d bytes) error = %v, want ErrMalformedEnvelope", size, err)
		}
	}
}

func TestSealOpen_InvalidKeyLength(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33} {
		if _, err := Seal(make([]byte, size), []byte("x")); !errors.Is(err, ErrInvalidKeyLength) {
			t.Fatalf("Seal with %d-byte key error = %v, want ErrInvalidKeyLength", size, err)
		}
		if _, err := Open(make([]byte, size), make([]byte, NonceSize+TagSize)); !errors.Is(err, ErrInvalidKeyLength) {
			t.Fatalf("Open with %d-byte key error = %v, want ErrInvalidKeyLength", size, err)
		}
	}
}

func TestEncodeDecodeField_RoundTrip(t *testing.T) {
	key := testKey(0x77)

	envelope, err := Seal(key, []byte("field value"))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	text := EncodeField(MarkerE2EE, envelope)
	if !strings.HasPrefix(text, MarkerE2EE) {
		t.Fatalf("encoded field %q does not carry marker %q", text, MarkerE2EE)
	}

	decoded, err := DecodeField(MarkerE2EE, text)
	if err != nil {
		t.Fatalf("DecodeField error: %v", err)
	}
	if !bytes.Equal(decoded, envelope) {
		t.Fatalf("decoded envelope differs from original")
	}
}

func TestDecodeField_Malformed(t *testing.T) {
	cases := map[string]string{
		"missing marker":    "bm90IGFuIGVudmVsb3Bl",
		"wrong marker":      "enc:bm90IGFuIGVudmVsb3Bl",
		"invalid base64":    MarkerE2EE + "!!!not-base64!!!",
		"too short payload": MarkerE2EE + "AAAA",
		"empty payload":     MarkerE2EE,
	}

	for name, value := range cases {
		if _, err := DecodeField(MarkerE2EE, value); !errors.Is(err, ErrMalformedEnvelope) {
			t.Fatalf("%s: DecodeField error = %v, want ErrMalformedEnvelope", name, err)
		}
	}
}
