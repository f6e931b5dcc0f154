// ABOUTME: CLI command to add a new task
// ABOUTME: Creates a task for the local CLI user
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/todo-assistant/internal/storage"
)

var addDescription string

// NewAddCmd creates the add command
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Long: `Add a new task.

Examples:
  todo add "Buy milk"
  todo add "Class 1" --description "Starts at 2pm"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
	cmd.Flags().StringVar(&cliEmail, "email", "", "Act as this user (default: the local CLI user)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("task title cannot be empty")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := cliUser(storage.NewUserStore(db))
	if err != nil {
		return err
	}

	task, err := storage.NewTaskStore(db).Create(user.ID, title, addDescription, false)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Added task %s: %s\n", task.ID, task.Title)
	}
	return nil
}
