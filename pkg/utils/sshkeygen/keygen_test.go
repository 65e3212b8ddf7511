package sshkeygen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateEd25519KeyPair(t *testing.T) {
	dir := t.TempDir()
	priv := filepath.Join(dir, "keys", "id_ed25519")
	pub := priv + ".pub"

	created, err := GenerateEd25519KeyPair(priv, pub, "taskdesk-reports", false)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !created {
		t.Fatal("expected a new key pair")
	}

	line, err := os.ReadFile(pub)
	if err != nil {
		t.Fatalf("read public key: %v", err)
	}
	if !strings.HasPrefix(string(line), "ssh-ed25519 ") || !strings.HasSuffix(string(line), " taskdesk-reports\n") {
		t.Fatalf("unexpected public key line %q", line)
	}

	fp, err := Fingerprint(priv)
	if err != nil {
		t.Fatalf("fingerprint failed: %v", err)
	}
	if !strings.HasPrefix(fp, "SHA256:") {
		t.Fatalf("unexpected fingerprint %s", fp)
	}
}

func TestGenerateKeepsExistingKey(t *testing.T) {
	dir := t.TempDir()
	priv := filepath.Join(dir, "id_ed25519")
	pub := priv + ".pub"

	if _, err := GenerateEd25519KeyPair(priv, pub, "", false); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	before, _ := Fingerprint(priv)

	created, err := GenerateEd25519KeyPair(priv, pub, "", false)
	if err != nil || created {
		t.Fatalf("expected existing key to be kept, created=%v err=%v", created, err)
	}
	after, _ := Fingerprint(priv)
	if before != after {
		t.Fatal("existing key was replaced")
	}

	created, err = GenerateEd25519KeyPair(priv, pub, "", true)
	if err != nil || !created {
		t.Fatalf("expected overwrite, created=%v err=%v", created, err)
	}
	replaced, _ := Fingerprint(priv)
	if replaced == before {
		t.Fatal("expected a new key after overwrite")
	}
}
