// ABOUTME: Task represents a single todo item owned by one user
// ABOUTME: Core data structure persisted by the storage layer
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task represents a todo item. Every task belongs to exactly one user.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Complete    bool      `json:"complete"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task with validation
func NewTask(userID, title, description string) (*Task, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("task title cannot be empty")
	}
	now := time.Now().UTC()
	return &Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// TaskUpdate carries the optional fields of a task update. Nil fields
// are left unchanged.
type TaskUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Complete    *bool   `json:"complete"`
}

// Empty reports whether the update would change nothing
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Complete == nil
}
