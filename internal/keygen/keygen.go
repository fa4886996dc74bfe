// Package keygen generates fixed-length opaque identifiers for database
// entities. Keys are drawn from a crypto-grade source so collisions stay
// negligible, but they carry no secrecy guarantees and must not be used
// as credentials.
package keygen

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EntityKeyLength is the id length used for all persisted entities.
const EntityKeyLength = 16

// RandomKey returns a random alphanumeric string of length n.
func RandomKey(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("invalid key length: %d", n)
	}

	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}

	return string(b), nil
}

// EntityKey returns a random key of EntityKeyLength.
func EntityKey() (string, error) {
	return RandomKey(EntityKeyLength)
}
