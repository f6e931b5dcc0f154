// ABOUTME: Tests for user account persistence
// ABOUTME: Verifies unique emails, lookups, and the Ensure helper
package storage

import "testing"

func TestUserCreateAndLookup(t *testing.T) {
	users, _ := newTestStores(t)

	created, err := users.Create("Harper@Example.com", "$2a$12$fakehash")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Email != "harper@example.com" {
		t.Errorf("Email = %q, want normalized %q", created.Email, "harper@example.com")
	}

	byEmail, err := users.GetByEmail("harper@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if byEmail.ID != created.ID {
		t.Errorf("GetByEmail() ID = %q, want %q", byEmail.ID, created.ID)
	}

	byID, err := users.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if byID.Email != created.Email {
		t.Errorf("GetByID() Email = %q, want %q", byID.Email, created.Email)
	}
}

func TestUserDuplicateEmail(t *testing.T) {
	users, _ := newTestStores(t)

	if _, err := users.Create("harper@example.com", "$2a$12$one"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := users.Create("harper@example.com", "$2a$12$two"); err != ErrEmailTaken {
		t.Errorf("Create() duplicate error = %v, want ErrEmailTaken", err)
	}
}

func TestUserNotFound(t *testing.T) {
	users, _ := newTestStores(t)

	if _, err := users.GetByEmail("ghost@example.com"); err != ErrNotFound {
		t.Errorf("GetByEmail() error = %v, want ErrNotFound", err)
	}
	if _, err := users.GetByID("no-such-id"); err != ErrNotFound {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestUserEnsure(t *testing.T) {
	users, _ := newTestStores(t)

	first, err := users.Ensure("cli@localhost.local", "$2a$12$fakehash")
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}

	second, err := users.Ensure("cli@localhost.local", "$2a$12$different")
	if err != nil {
		t.Fatalf("Ensure() second call error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Ensure() created a second user: %q != %q", second.ID, first.ID)
	}
}
