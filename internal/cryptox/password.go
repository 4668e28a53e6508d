// Package cryptox implements password hashing for local accounts.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/gophrecipes/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of the random salt generated per account.
const SaltSize = 16

// argon2id parameters: 1 pass, 64 MiB, 4 lanes, 32-byte output.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// NewSalt returns a fresh random salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashPassword derives an argon2id hash from password and salt.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifyPassword reports whether password hashes to expected under salt.
// The comparison is constant-time.
func VerifyPassword(password, salt, expected []byte) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(candidate, expected) == 1
}
