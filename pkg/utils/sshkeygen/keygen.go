package sshkeygen

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"
)

// GenerateEd25519KeyPair writes an OpenSSH private key and its authorized_keys
// line. An existing private key is kept unless overwrite is set; the returned
// bool reports whether a new pair was written.
func GenerateEd25519KeyPair(privateKeyPath, publicKeyPath, comment string, overwrite bool) (bool, error) {
	if _, err := os.Stat(privateKeyPath); err == nil && !overwrite {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(privateKeyPath), 0700); err != nil {
		return false, fmt.Errorf("failed to create key directory: %w", err)
	}

	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return false, fmt.Errorf("failed to generate key pair: %w", err)
	}

	privKeyPEM, err := ssh.MarshalPrivateKey(privKey, comment)
	if err != nil {
		return false, fmt.Errorf("failed to marshal private key: %w", err)
	}
	if err := os.WriteFile(privateKeyPath, pem.EncodeToMemory(privKeyPEM), 0600); err != nil {
		return false, fmt.Errorf("failed to write private key: %w", err)
	}

	sshPubKey, err := ssh.NewPublicKey(pubKey)
	if err != nil {
		return false, fmt.Errorf("failed to create public key: %w", err)
	}
	line := ssh.MarshalAuthorizedKey(sshPubKey)
	if comment != "" {
		line = append(line[:len(line)-1], []byte(" "+comment+"\n")...)
	}
	if err := os.WriteFile(publicKeyPath, line, 0644); err != nil {
		return false, fmt.Errorf("failed to write public key: %w", err)
	}

	return true, nil
}

// Fingerprint returns the SHA256 fingerprint of the private key at path.
func Fingerprint(privateKeyPath string) (string, error) {
	signer, err := LoadSigner(privateKeyPath)
	if err != nil {
		return "", err
	}
	return ssh.FingerprintSHA256(signer.PublicKey()), nil
}

// LoadSigner parses an unencrypted private key file.
func LoadSigner(privateKeyPath string) (ssh.Signer, error) {
	data, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return signer, nil
}
