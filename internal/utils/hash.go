package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned by HashPassword when the plaintext password
// is empty. An empty password is a programmer error: request validation is
// expected to reject blank passwords before hashing is attempted.
var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword derives a salted bcrypt hash from the given plaintext password.
//
// bcrypt embeds the algorithm identifier, cost factor, and a random salt in
// the resulting string, so hashing the same password twice yields different
// values and equality must never be checked by string comparison — use
// [VerifyPassword] instead.
//
// cost controls the work factor; values outside the bcrypt-supported range
// are replaced with bcrypt.DefaultCost. The cost is fixed at deployment time
// via configuration.
//
// Returns ErrEmptyPassword for an empty password or a wrapped bcrypt error
// if hashing fails.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// bcrypt hash.
//
// The comparison is performed by bcrypt in constant time relative to the
// digest. Any failure — mismatched password, malformed or truncated hash —
// yields false; the function never panics on untrusted input.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
