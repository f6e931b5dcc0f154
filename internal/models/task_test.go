// ABOUTME: Tests for Task model creation and validation
// ABOUTME: Verifies NewTask constructor and TaskUpdate semantics
package models

import "testing"

func TestNewTask(t *testing.T) {
	tests := []struct {
		name        string
		userID      string
		title       string
		description string
		wantErr     bool
	}{
		{
			name:        "valid task with description",
			userID:      "user-1",
			title:       "buy milk",
			description: "2 liters",
			wantErr:     false,
		},
		{
			name:    "valid task without description",
			userID:  "user-1",
			title:   "buy milk",
			wantErr: false,
		},
		{
			name:    "empty title",
			userID:  "user-1",
			title:   "",
			wantErr: true,
		},
		{
			name:    "whitespace title",
			userID:  "user-1",
			title:   "   ",
			wantErr: true,
		},
		{
			name:    "empty user id",
			userID:  "",
			title:   "buy milk",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewTask(tt.userID, tt.title, tt.description)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTask() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if task.ID == "" {
				t.Error("task ID should not be empty")
			}
			if task.Title != tt.title {
				t.Errorf("Title = %q, want %q", task.Title, tt.title)
			}
			if task.Description != tt.description {
				t.Errorf("Description = %q, want %q", task.Description, tt.description)
			}
			if task.Complete {
				t.Error("new task should not be complete")
			}
			if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
				t.Error("timestamps should be set")
			}
		})
	}
}

func TestNewTaskUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		task, err := NewTask("user-1", "task", "")
		if err != nil {
			t.Fatalf("NewTask() error = %v", err)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate task ID %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestTaskUpdateEmpty(t *testing.T) {
	if !(TaskUpdate{}).Empty() {
		t.Error("zero TaskUpdate should be empty")
	}

	title := "new"
	if (TaskUpdate{Title: &title}).Empty() {
		t.Error("TaskUpdate with title should not be empty")
	}

	complete := false
	if (TaskUpdate{Complete: &complete}).Empty() {
		t.Error("TaskUpdate with complete flag should not be empty")
	}
}
