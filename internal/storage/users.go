// ABOUTME: User account persistence operations
// ABOUTME: Enforces unique emails and exposes lookup by email or id
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/todo-assistant/internal/models"
)

// UserStore handles user persistence
type UserStore struct {
	db *DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user account
func (s *UserStore) Create(email, hashedPassword string) (*models.User, error) {
	user, err := models.NewUser(email, hashedPassword)
	if err != nil {
		return nil, err
	}

	_, err = s.db.conn.Exec(`
		INSERT INTO users (id, email, hashed_password, created_at)
		VALUES (?, ?, ?, ?)
	`, user.ID, user.Email, user.HashedPassword, user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email address
func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	row := s.db.conn.QueryRow(`
		SELECT id, email, hashed_password, created_at FROM users WHERE email = ?
	`, email)
	return scanUser(row)
}

// GetByID retrieves a user by id
func (s *UserStore) GetByID(id string) (*models.User, error) {
	row := s.db.conn.QueryRow(`
		SELECT id, email, hashed_password, created_at FROM users WHERE id = ?
	`, id)
	return scanUser(row)
}

// Ensure returns the user with the given email, creating one with the
// supplied password hash if it does not exist. Used by the local CLI.
func (s *UserStore) Ensure(email, hashedPassword string) (*models.User, error) {
	user, err := s.GetByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return s.Create(email, hashedPassword)
}

func scanUser(row scanner) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
