// Package cryptox hashes and verifies account passwords.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated password salt.
const SaltSize = 16

// NewSalt returns a random salt of SaltSize bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashPassword derives a 32-byte argon2id hash of password under salt.
func HashPassword(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// VerifyPassword recomputes the hash of password under salt and compares it
// to hash in constant time.
func VerifyPassword(password, salt, hash []byte) bool {
	got := HashPassword(password, salt)
	defer common.WipeByteArray(got)
	return subtle.ConstantTimeCompare(got, hash) == 1
}
