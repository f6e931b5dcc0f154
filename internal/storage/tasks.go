// ABOUTME: Task persistence operations with per-user ownership checks
// ABOUTME: Cross-user access surfaces as ErrForbidden, missing rows as ErrNotFound
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harper/todo-assistant/internal/models"
)

// TaskStore handles task persistence
type TaskStore struct {
	db *DB
}

// NewTaskStore creates a new TaskStore
func NewTaskStore(db *DB) *TaskStore {
	return &TaskStore{db: db}
}

// ListFilter narrows List results. A nil Completed means no completion
// filter; Limit <= 0 means no limit.
type ListFilter struct {
	Completed *bool
	Offset    int
	Limit     int
}

// Create inserts a new task for the user and returns it
func (s *TaskStore) Create(userID, title, description string, complete bool) (*models.Task, error) {
	task, err := models.NewTask(userID, title, description)
	if err != nil {
		return nil, err
	}
	task.Complete = complete

	_, err = s.db.conn.Exec(`
		INSERT INTO tasks (id, user_id, title, description, complete, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, task.ID, task.UserID, task.Title, task.Description, boolToInt(task.Complete),
		task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListByUser retrieves every task for a user in creation order
func (s *TaskStore) ListByUser(userID string) ([]models.Task, error) {
	return s.List(userID, ListFilter{})
}

// List retrieves tasks for a user with optional filtering and pagination
func (s *TaskStore) List(userID string, filter ListFilter) ([]models.Task, error) {
	query := `
		SELECT id, user_id, title, description, complete, created_at, updated_at
		FROM tasks
		WHERE user_id = ?
	`
	args := []interface{}{userID}

	if filter.Completed != nil {
		query += " AND complete = ?"
		args = append(args, boolToInt(*filter.Completed))
	}
	query += " ORDER BY created_at ASC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// Get retrieves a single task, verifying it belongs to the user
func (s *TaskStore) Get(userID, taskID string) (*models.Task, error) {
	row := s.db.conn.QueryRow(`
		SELECT id, user_id, title, description, complete, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`, taskID)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task.UserID != userID {
		return nil, ErrForbidden
	}
	return task, nil
}

// Update applies the non-nil fields of upd to a task owned by the user
func (s *TaskStore) Update(userID, taskID string, upd models.TaskUpdate) (*models.Task, error) {
	task, err := s.Get(userID, taskID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Complete != nil {
		task.Complete = *upd.Complete
	}
	task.UpdatedAt = time.Now().UTC()

	_, err = s.db.conn.Exec(`
		UPDATE tasks
		SET title = ?, description = ?, complete = ?, updated_at = ?
		WHERE id = ?
	`, task.Title, task.Description, boolToInt(task.Complete), task.UpdatedAt, task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete removes a task owned by the user
func (s *TaskStore) Delete(userID, taskID string) error {
	if _, err := s.Get(userID, taskID); err != nil {
		return err
	}
	if _, err := s.db.conn.Exec(`DELETE FROM tasks WHERE id = ?`, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// scanner covers both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row scanner) (*models.Task, error) {
	var (
		task        models.Task
		description sql.NullString
		complete    int
	)
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &description, &complete,
		&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		task.Description = description.String
	}
	task.Complete = complete != 0
	return &task, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
