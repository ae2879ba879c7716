package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

// Raising the cost only affects newly stored hashes; existing hashes keep
// verifying at the cost they were created with.
const (
	passwordMinLen   = 8
	passwordHashCost = 12
)

// HashPassword returns the bcrypt hash of a password for storage.
func HashPassword(password string) (string, error) {
	if len(password) < passwordMinLen {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash. The
// returned error is opaque; login collapses it into ErrInvalidCredentials.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
