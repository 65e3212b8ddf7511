package keygen

import (
	"encoding/base64"
	"testing"
)

func TestGenerateSecret(t *testing.T) {
	s, err := GenerateSecret(32)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		t.Fatalf("expected url-safe base64, got %q: %v", s, err)
	}
	if len(raw) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(raw))
	}

	other, _ := GenerateSecret(32)
	if other == s {
		t.Fatal("expected distinct secrets")
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	p := GenerateRandomPassword(24)
	if len(p) != 24 {
		t.Fatalf("expected length 24, got %d", len(p))
	}
	for _, r := range p {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			t.Fatalf("unexpected character %q", r)
		}
	}
}
