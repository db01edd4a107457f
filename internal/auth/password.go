// Package auth — room password hashing utilities.
//
// Room passwords are stored as a single SHA-256 digest over the UTF-8 bytes
// of the password, base64-encoded (standard encoding). Verification hashes
// the candidate the same way and compares the encoded strings.
//
// KNOWN WEAKNESS:
// This is a deterministic, unsalted, fast hash — NOT a password KDF. Two
// rooms with the same password share a hash, and the scheme is vulnerable to
// precomputed-table attacks. It is kept because the deployed data set and the
// test fixtures depend on this exact digest; switching to bcrypt/argon2 is a
// product decision that would invalidate every stored hash.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// PasswordService hashes and verifies room passwords.
//
// It is a struct (not free functions) so the digest scheme stays swappable
// behind one injection point — services receive a *PasswordService and never
// touch crypto primitives directly.
type PasswordService struct{}

// NewPasswordService creates a PasswordService.
func NewPasswordService() *PasswordService {
	return &PasswordService{}
}

// Hash returns the base64-encoded SHA-256 digest of the plaintext.
//
// Example: Hash("secret") → "K7gNU3sdo+OL0wNhqoVWhr3g6s1xYv72ol/pe/Unols="
// Store this string directly in the database.
func (p *PasswordService) Hash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Verify checks whether a plaintext password matches a stored digest.
// Returns nil if they match, a non-nil error if they don't.
//
// The comparison is constant-time. With an unsalted digest that is mostly
// hygiene — the digest itself is the weak point — but it costs nothing.
func (p *PasswordService) Verify(hash, plaintext string) error {
	candidate := p.Hash(plaintext)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(candidate)) != 1 {
		return fmt.Errorf("auth: invalid password")
	}
	return nil
}
