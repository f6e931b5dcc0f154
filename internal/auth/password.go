// ABOUTME: Password hashing and verification built on bcrypt
// ABOUTME: Enforces the bcrypt 72-byte input limit up front
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently truncates inputs beyond 72 bytes, so reject them instead
const maxPasswordBytes = 72

const hashCost = 12

// HashPassword returns a bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("password exceeds %d bytes", maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
