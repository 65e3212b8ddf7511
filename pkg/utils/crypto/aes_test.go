package crypto

import (
	"errors"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	sealed, err := Seal([]byte("state-123"), "secret", "oauth-state")
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}

	plain, err := Open(sealed, "secret", "oauth-state")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if string(plain) != "state-123" {
		t.Fatalf("expected state-123, got %s", plain)
	}
}

func TestSealUsesFreshNonce(t *testing.T) {
	a, _ := Seal([]byte("same"), "secret", "p")
	b, _ := Seal([]byte("same"), "secret", "p")
	if a == b {
		t.Fatal("expected different ciphertexts for repeated seals")
	}
}

func TestOpenRejectsWrongKeyOrPurpose(t *testing.T) {
	sealed, err := Seal([]byte("payload"), "secret", "a")
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}

	if _, err := Open(sealed, "other", "a"); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed for wrong key, got %v", err)
	}
	if _, err := Open(sealed, "secret", "b"); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed for wrong purpose, got %v", err)
	}
	if _, err := Open("!!not-base64!!", "secret", "a"); !errors.Is(err, ErrInvalidCipherText) {
		t.Fatalf("expected ErrInvalidCipherText, got %v", err)
	}
	if _, err := Open("AAAA", "secret", "a"); !errors.Is(err, ErrInvalidCipherText) {
		t.Fatalf("expected ErrInvalidCipherText for short input, got %v", err)
	}
}

func TestEmptySecret(t *testing.T) {
	if _, err := Seal([]byte("x"), "", "a"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestDeriveKeyDependsOnPurpose(t *testing.T) {
	a, _ := DeriveKey("secret", "one")
	b, _ := DeriveKey("secret", "two")
	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("expected 32-byte keys, got %d and %d", len(a), len(b))
	}
	if string(a) == string(b) {
		t.Fatal("expected purpose to change the derived key")
	}
}
