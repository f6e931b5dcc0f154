// ABOUTME: CLI command to list tasks
// ABOUTME: Shows the local user's tasks with completion status
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/todo-assistant/internal/storage"
)

var (
	listAll  bool
	listDone bool
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks.

Shows open tasks by default; use --all to include completed ones.

Examples:
  todo list
  todo list --all
  todo list --done`,
		RunE: runList,
	}

	cmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include completed tasks")
	cmd.Flags().BoolVar(&listDone, "done", false, "Show only completed tasks")
	cmd.Flags().StringVar(&cliEmail, "email", "", "Act as this user (default: the local CLI user)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := cliUser(storage.NewUserStore(db))
	if err != nil {
		return err
	}

	filter := storage.ListFilter{Limit: 100}
	if !listAll {
		completed := listDone
		filter.Completed = &completed
	}

	tasks, err := storage.NewTaskStore(db).List(user.ID, filter)
	if err != nil {
		return fmt.Errorf("listing tasks: %w", err)
	}

	if len(tasks) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
		}
		return nil
	}

	for _, task := range tasks {
		line := fmt.Sprintf("%s %s  %s", statusMark(task.Complete), task.ID, truncate(task.Title, 60))
		if verbose && task.Description != "" {
			line += fmt.Sprintf("\n      %s", truncate(task.Description, 70))
		}
		line += fmt.Sprintf("  (%s)", formatTime(task.CreatedAt))
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
