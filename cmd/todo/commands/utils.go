// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Database setup, local user resolution, and display formatting
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/harper/todo-assistant/internal/models"
	"github.com/harper/todo-assistant/internal/storage"
)

var cliEmail string

const defaultCLIEmail = "local@localhost"

// lockedPasswordHash is stored for CLI-created users. It can never match
// a real bcrypt hash, so these accounts cannot sign in over HTTP.
const lockedPasswordHash = "*"

// openDB opens the database at TODO_DB_PATH or the default location
func openDB() (*storage.DB, error) {
	path := os.Getenv("TODO_DB_PATH")
	if path == "" {
		path = storage.DefaultDBPath()
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// cliUser resolves the local user for task commands, creating it on
// first use
func cliUser(users *storage.UserStore) (*models.User, error) {
	email := cliEmail
	if email == "" {
		email = defaultCLIEmail
	}
	user, err := users.Ensure(email, lockedPasswordHash)
	if err != nil {
		return nil, fmt.Errorf("resolving user %s: %w", email, err)
	}
	return user, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// statusMark renders the completion checkbox for list output
func statusMark(complete bool) string {
	if complete {
		return "[x]"
	}
	return "[ ]"
}
