package services

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt digest for storage. Plain digests
// written by pre-release builds do not verify against these and require a
// reset.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored digest.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
