package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the fixed work factor for password digests. The generated
// digest embeds the salt and cost, so verification needs no side-channel
// storage.
const bcryptCost = 10

// HashPassword transforms a plaintext password into a salted one-way digest.
// The caller must discard the plaintext after hashing; only the digest is
// safe to persist.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword recomputes the hash using the salt and cost embedded in
// digest and compares. A mismatch returns (false, nil); an error is returned
// only for a malformed digest.
func VerifyPassword(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
