// ABOUTME: Tests for the rm CLI command
// ABOUTME: Verifies deletion and repeat-delete handling

package commands

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/todo-assistant/internal/storage"
)

func TestRemoveCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.db")
	t.Setenv("TODO_DB_PATH", path)

	db, err := storage.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	user, err := storage.NewUserStore(db).Ensure(defaultCLIEmail, lockedPasswordHash)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	task, err := storage.NewTaskStore(db).Create(user.ID, "buy milk", "", false)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_ = db.Close()

	out, err := runCLI(t, "rm", task.ID)
	if err != nil {
		t.Fatalf("rm: %v", err)
	}
	if !strings.Contains(out, "Deleted task") {
		t.Errorf("output = %q, want deletion notice", out)
	}

	// Deleting again fails with a friendly message
	_, err = runCLI(t, "rm", task.ID)
	if err == nil {
		t.Fatal("second rm should fail")
	}
	if !strings.Contains(err.Error(), "no task with id") {
		t.Errorf("error = %v, want no task with id", err)
	}
}
