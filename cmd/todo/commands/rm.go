// ABOUTME: CLI command to delete a task
// ABOUTME: Removes the task permanently for the local user
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/todo-assistant/internal/storage"
)

// NewRemoveCmd creates the rm command
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task",
		Long: `Delete a task permanently.

Examples:
  todo rm 3f8a2b1c-...`,
		Args: cobra.ExactArgs(1),
		RunE: runRemove,
	}

	cmd.Flags().StringVar(&cliEmail, "email", "", "Act as this user (default: the local CLI user)")

	return cmd
}

func runRemove(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := cliUser(storage.NewUserStore(db))
	if err != nil {
		return err
	}

	if err := storage.NewTaskStore(db).Delete(user.ID, args[0]); err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrForbidden) {
			return fmt.Errorf("no task with id %s", args[0])
		}
		return fmt.Errorf("deleting task: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
	}
	return nil
}
