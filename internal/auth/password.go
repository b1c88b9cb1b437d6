package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is higher than the library default; login is rare enough
// that the extra hashing time is acceptable.
const bcryptCost = 12

// ErrWeakPassword reports a password below the minimum length.
var ErrWeakPassword = errors.New("a senha deve ter ao menos 8 caracteres")

// HashPassword derives the storable hash of a plaintext password.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
