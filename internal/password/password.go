// Package password implements the one-way credential transform used by the
// auth service. The algorithm is bcrypt (salted, adaptive); verification
// follows the hash-then-compare contract and never reports why it failed.
package password

import "golang.org/x/crypto/bcrypt"

// Hash transforms a plaintext password into a storable digest.
func Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A malformed digest yields
// false rather than an error.
func Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
