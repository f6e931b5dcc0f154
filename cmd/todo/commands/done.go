// ABOUTME: CLI command to mark a task as complete
// ABOUTME: Resolves the task by id for the local user
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/todo-assistant/internal/models"
	"github.com/harper/todo-assistant/internal/storage"
)

// NewDoneCmd creates the done command
func NewDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task as complete",
		Long: `Mark a task as complete.

Examples:
  todo done 3f8a2b1c-...`,
		Args: cobra.ExactArgs(1),
		RunE: runDone,
	}

	cmd.Flags().StringVar(&cliEmail, "email", "", "Act as this user (default: the local CLI user)")

	return cmd
}

func runDone(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := cliUser(storage.NewUserStore(db))
	if err != nil {
		return err
	}

	complete := true
	task, err := storage.NewTaskStore(db).Update(user.ID, args[0], models.TaskUpdate{Complete: &complete})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrForbidden) {
			return fmt.Errorf("no task with id %s", args[0])
		}
		return fmt.Errorf("completing task: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Completed: %s\n", task.Title)
	}
	return nil
}
