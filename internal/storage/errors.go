// ABOUTME: Sentinel errors shared by all store operations
// ABOUTME: Callers check these with errors.Is instead of string matching
package storage

import "errors"

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a record belongs to a different user
	ErrForbidden = errors.New("does not belong to user")

	// ErrEmailTaken is returned when an email is already registered
	ErrEmailTaken = errors.New("email already registered")
)
