// ABOUTME: User account model for the todo assistant
// ABOUTME: Password hashes never serialize to JSON
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new User with validation. The password must already
// be hashed by the caller.
func NewUser(email, hashedPassword string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("invalid email address")
	}
	if hashedPassword == "" {
		return nil, errors.New("hashed password cannot be empty")
	}
	return &User{
		ID:             uuid.New().String(),
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
