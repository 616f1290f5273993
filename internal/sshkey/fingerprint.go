package sshkey

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"
)

// Fingerprint returns the SHA256 fingerprint of the key at path. It reads
// <path>.pub when present and otherwise derives the public key from an
// unencrypted private key.
func Fingerprint(path string) (string, error) {
	if data, err := os.ReadFile(path + ".pub"); err == nil {
		pub, _, _, _, err := ssh.ParseAuthorizedKey(data)
		if err != nil {
			return "", fmt.Errorf("parsing public key: %w", err)
		}
		return ssh.FingerprintSHA256(pub), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(data)
	if err != nil {
		return "", fmt.Errorf("parsing private key: %w", err)
	}
	return ssh.FingerprintSHA256(signer.PublicKey()), nil
}

// Comment returns the comment from <path>.pub, or the key's file name.
func Comment(path string) string {
	data, err := os.ReadFile(path + ".pub")
	if err == nil {
		// Public key format: type base64-key comment
		parts := strings.SplitN(strings.TrimSpace(string(data)), " ", 3)
		if len(parts) >= 3 {
			return parts[2]
		}
	}
	return filepath.Base(path)
}
