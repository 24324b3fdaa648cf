// Package crypto implements the reversible obfuscation scheme applied to
// stored passwords and the one-way fingerprint used to verify them.
//
// The scheme is deliberately simple: the keystream is the SHA-256 digest of
// the admin password, cycled to the plaintext length, combined with the
// plaintext by XOR and encoded with urlsafe base64. It is reversible by
// construction and NOT cryptographically strong; the fingerprint check is
// what protects callers from trusting output decrypted with the wrong admin
// password.
package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrIntegrityMismatch is returned by Reveal when the decrypted plaintext
// does not match the stored fingerprint, meaning the admin password used now
// is not the one used at encryption time. It is advisory: stored state is
// never affected, and the caller may retry with another password.
var ErrIntegrityMismatch = errors.New("decrypted password does not match stored fingerprint")

// Fingerprint returns the hex SHA-256 digest of plaintext. It is
// deterministic and independent of the admin password.
func Fingerprint(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Cipher encrypts and decrypts password strings with a keystream derived
// from the admin password. The admin password is fixed at construction;
// there is no ambient key state.
type Cipher struct {
	keystream []byte
}

// New derives the keystream from adminPassword and returns a ready Cipher.
func New(adminPassword string) *Cipher {
	sum := sha256.Sum256([]byte(adminPassword))
	return &Cipher{keystream: sum[:]}
}

// Encrypt obfuscates plaintext by XOR against the cycled keystream and
// encodes the result with urlsafe base64. Empty plaintext encrypts to the
// empty string. Deterministic for a given plaintext and admin password.
func (c *Cipher) Encrypt(plaintext string) string {
	data := []byte(plaintext)
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ c.keystream[i%len(c.keystream)]
	}
	return base64.URLEncoding.EncodeToString(out)
}

// Decrypt is the exact inverse of Encrypt. It fails only on invalid base64;
// a wrong admin password yields garbage silently, so callers must
// cross-check the result against the record fingerprint (see Reveal).
func (c *Cipher) Decrypt(encoded string) (string, error) {
	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode encrypted password: %w", err)
	}
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ c.keystream[i%len(c.keystream)]
	}
	return string(out), nil
}

// Seal produces the paired stored forms of plaintext: the fingerprint and
// the encrypted encoding.
func (c *Cipher) Seal(plaintext string) (hash, encrypted string) {
	return Fingerprint(plaintext), c.Encrypt(plaintext)
}

// Reveal decrypts encoded and verifies the result against wantFingerprint.
// It returns ErrIntegrityMismatch when the check fails, which means the
// admin password behind this Cipher is not the one the record was written
// with.
func (c *Cipher) Reveal(encoded, wantFingerprint string) (string, error) {
	plaintext, err := c.Decrypt(encoded)
	if err != nil {
		return "", err
	}
	if Fingerprint(plaintext) != wantFingerprint {
		return "", ErrIntegrityMismatch
	}
	return plaintext, nil
}
