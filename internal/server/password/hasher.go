// Package password implements one-way credential hashing and verification.
//
// New hashes use argon2id in PHC string format. Verification additionally
// understands passlib-style pbkdf2-sha256 hashes carried over from the
// previous system, so existing accounts keep working without a forced
// password reset. NeedsRehash lets callers upgrade legacy hashes on the
// next successful login.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	argon2Prefix = "$argon2id$"
	pbkdf2Prefix = "$pbkdf2-sha256$"

	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

type Hasher struct{}

func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash derives an argon2id hash of plaintext with a fresh random salt and
// returns it in PHC string format.
func (h *Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("reading salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plaintext matches the stored hash. A malformed or
// unrecognized stored hash verifies false; Verify never returns an error.
func (h *Hasher) Verify(plaintext, stored string) bool {
	switch {
	case strings.HasPrefix(stored, argon2Prefix):
		return verifyArgon2(plaintext, stored)
	case strings.HasPrefix(stored, pbkdf2Prefix):
		return verifyPBKDF2(plaintext, stored)
	default:
		return false
	}
}

// NeedsRehash reports whether the stored hash uses a deprecated scheme and
// should be re-derived with Hash once the plaintext is available.
func (h *Hasher) NeedsRehash(stored string) bool {
	return !strings.HasPrefix(stored, argon2Prefix)
}

func verifyArgon2(plaintext, stored string) bool {
	// $argon2id$v=19$m=...,t=...,p=...$salt$hash
	parts := strings.Split(stored, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(plaintext), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func verifyPBKDF2(plaintext, stored string) bool {
	// $pbkdf2-sha256$rounds$salt$checksum (passlib, ab64-encoded fields)
	parts := strings.Split(stored, "$")
	if len(parts) != 5 || parts[1] != "pbkdf2-sha256" {
		return false
	}

	var rounds int
	if _, err := fmt.Sscanf(parts[2], "%d", &rounds); err != nil || rounds <= 0 {
		return false
	}

	salt, err := ab64Decode(parts[3])
	if err != nil {
		return false
	}
	want, err := ab64Decode(parts[4])
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(plaintext), salt, rounds, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// ab64Decode decodes passlib's adapted base64: standard alphabet with '+'
// replaced by '.', no padding.
func ab64Decode(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.ReplaceAll(s, ".", "+"))
}
