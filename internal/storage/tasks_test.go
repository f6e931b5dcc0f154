// ABOUTME: Tests for task CRUD operations and ownership enforcement
// ABOUTME: Verifies round-trips, completion flag semantics, and filters
package storage

import (
	"fmt"
	"testing"

	"github.com/harper/todo-assistant/internal/models"
)

func newTestStores(t *testing.T) (*UserStore, *TaskStore) {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewUserStore(db), NewTaskStore(db)
}

func newTestUser(t *testing.T, users *UserStore, email string) *models.User {
	t.Helper()
	user, err := users.Create(email, "$2a$12$fakehash")
	if err != nil {
		t.Fatalf("users.Create() error = %v", err)
	}
	return user
}

func TestTaskCreateRoundTrip(t *testing.T) {
	users, tasks := newTestStores(t)
	user := newTestUser(t, users, "harper@example.com")

	created, err := tasks.Create(user.ID, "buy milk", "2 liters", false)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := tasks.Get(user.ID, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "buy milk" {
		t.Errorf("Title = %q, want %q", got.Title, "buy milk")
	}
	if got.Description != "2 liters" {
		t.Errorf("Description = %q, want %q", got.Description, "2 liters")
	}
	if got.Complete {
		t.Error("new task should not be complete")
	}
}

func TestTaskCreateUniqueIDs(t *testing.T) {
	users, tasks := newTestStores(t)
	user := newTestUser(t, users, "harper@example.com")

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		task, err := tasks.Create(user.ID, fmt.Sprintf("task %d", i), "", false)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate task ID %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestTaskGetErrors(t *testing.T) {
	users, tasks := newTestStores(t)
	owner := newTestUser(t, users, "owner@example.com")
	other := newTestUser(t, users, "other@example.com")

	task, err := tasks.Create(owner.ID, "private task", "", false)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := tasks.Get(owner.ID, "00000000-0000-0000-0000-000000000000"); err != ErrNotFound {
		t.Errorf("Get(unknown id) error = %v, want ErrNotFound", err)
	}

	if _, err := tasks.Get(other.ID, task.ID); err != ErrForbidden {
		t.Errorf("Get(other user) error = %v, want ErrForbidden", err)
	}
}

func TestTaskUpdateCompletionIdempotent(t *testing.T) {
	users, tasks := newTestStores(t)
	user := newTestUser(t, users, "harper@example.com")

	task, err := tasks.Create(user.ID, "buy milk", "2 liters", false)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The stored flag must reflect the last operation applied, whatever
	// the intermediate states were.
	states := []bool{true, true, false, true, false}
	for _, want := range states {
		flag := want
		if _, err := tasks.Update(user.ID, task.ID, models.TaskUpdate{Complete: &flag}); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		got, err := tasks.Get(user.ID, task.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Complete != want {
			t.Errorf("Complete = %v, want %v", got.Complete, want)
		}
	}

	// Unrelated fields survive completion toggles
	got, err := tasks.Get(user.ID, task.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "buy milk" || got.Description != "2 liters" {
		t.Errorf("unrelated fields changed: title=%q description=%q", got.Title, got.Description)
	}
}

func TestTaskUpdateFields(t *testing.T) {
	users, tasks := newTestStores(t)
	user := newTestUser(t, users, "harper@example.com")

	task, err := tasks.Create(user.ID, "old title", "old desc", false)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	title := "new title"
	updated, err := tasks.Update(user.ID, task.ID, models.TaskUpdate{Title: &title})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "new title" {
		t.Errorf("Title = %q, want %q", updated.Title, "new title")
	}
	if updated.Description != "old desc" {
		t.Errorf("Description = %q, want unchanged %q", updated.Description, "old desc")
	}
}

func TestTaskUpdateOwnership(t *testing.T) {
	users, tasks := newTestStores(t)
	owner := newTestUser(t, users, "owner@example.com")
	other := newTestUser(t, users, "other@example.com")

	task, err := tasks.Create(owner.ID, "private task", "", false)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	flag := true
	if _, err := tasks.Update(other.ID, task.ID, models.TaskUpdate{Complete: &flag}); err != ErrForbidden {
		t.Errorf("Update(other user) error = %v, want ErrForbidden", err)
	}
}

func TestTaskDelete(t *testing.T) {
	users, tasks := newTestStores(t)
	user := newTestUser(t, users, "harper@example.com")

	task, err := tasks.Create(user.ID, "ephemeral", "", false)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := tasks.Delete(user.ID, task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := tasks.Get(user.ID, task.ID); err != ErrNotFound {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	// Second delete reports not found
	if err := tasks.Delete(user.ID, task.ID); err != ErrNotFound {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}

func TestTaskListFilter(t *testing.T) {
	users, tasks := newTestStores(t)
	user := newTestUser(t, users, "harper@example.com")

	for i := 0; i < 5; i++ {
		complete := i%2 == 0
		if _, err := tasks.Create(user.ID, fmt.Sprintf("task %d", i), "", complete); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	all, err := tasks.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len(all) = %d, want 5", len(all))
	}

	completed := true
	done, err := tasks.List(user.ID, ListFilter{Completed: &completed})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(done) != 3 {
		t.Errorf("len(done) = %d, want 3", len(done))
	}

	page, err := tasks.List(user.ID, ListFilter{Offset: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page) != 2 {
		t.Errorf("len(page) = %d, want 2", len(page))
	}
}

func TestTaskListScopedToUser(t *testing.T) {
	users, tasks := newTestStores(t)
	alice := newTestUser(t, users, "alice@example.com")
	bob := newTestUser(t, users, "bob@example.com")

	if _, err := tasks.Create(alice.ID, "alice task", "", false); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := tasks.Create(bob.ID, "bob task", "", false); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	list, err := tasks.ListByUser(alice.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(list) != 1 || list[0].Title != "alice task" {
		t.Errorf("ListByUser(alice) = %v, want only alice's task", list)
	}
}
