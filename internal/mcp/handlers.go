// ABOUTME: MCP tool handler implementations for the todo assistant
// ABOUTME: Contains handler implementations with proper error handling for all 5 tools
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/todo-assistant/internal/models"
	"github.com/harper/todo-assistant/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	tasks *storage.TaskStore
	users *storage.UserStore
}

// AddTask handles the add_task tool
func (h *Handlers) AddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title argument is required and must be a string"), nil
	}
	description := request.GetString("description", "")

	if _, err := h.users.GetByID(userID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unknown user: %s", userID)), nil
	}

	task, err := h.tasks.Create(userID, title, description, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create task: %v", err)), nil
	}
	return toolResultJSON(task)
}

// ListTasks handles the list_tasks tool
func (h *Handlers) ListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}

	filter := storage.ListFilter{Limit: 100}
	if raw, ok := request.GetArguments()["completed"]; ok {
		completed, ok := raw.(bool)
		if !ok {
			return mcp.NewToolResultError("completed argument must be a boolean"), nil
		}
		filter.Completed = &completed
	}

	tasks, err := h.tasks.List(userID, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list tasks: %v", err)), nil
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return toolResultJSON(map[string]interface{}{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// CompleteTask handles the complete_task tool
func (h *Handlers) CompleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, taskID, result := requireTaskArgs(request)
	if result != nil {
		return result, nil
	}

	complete := true
	task, err := h.tasks.Update(userID, taskID, models.TaskUpdate{Complete: &complete})
	if err != nil {
		return taskError(err, taskID), nil
	}
	return toolResultJSON(task)
}

// DeleteTask handles the delete_task tool
func (h *Handlers) DeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, taskID, result := requireTaskArgs(request)
	if result != nil {
		return result, nil
	}

	if err := h.tasks.Delete(userID, taskID); err != nil {
		return taskError(err, taskID), nil
	}
	return toolResultJSON(map[string]string{
		"message": fmt.Sprintf("Task %s deleted", taskID),
	})
}

// UpdateTask handles the update_task tool
func (h *Handlers) UpdateTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, taskID, result := requireTaskArgs(request)
	if result != nil {
		return result, nil
	}

	var update models.TaskUpdate
	args := request.GetArguments()
	if raw, ok := args["title"]; ok {
		title, ok := raw.(string)
		if !ok {
			return mcp.NewToolResultError("title argument must be a string"), nil
		}
		update.Title = &title
	}
	if raw, ok := args["description"]; ok {
		description, ok := raw.(string)
		if !ok {
			return mcp.NewToolResultError("description argument must be a string"), nil
		}
		update.Description = &description
	}
	if raw, ok := args["complete"]; ok {
		complete, ok := raw.(bool)
		if !ok {
			return mcp.NewToolResultError("complete argument must be a boolean"), nil
		}
		update.Complete = &complete
	}
	if update.Empty() {
		return mcp.NewToolResultError("at least one of title, description, or complete is required"), nil
	}

	task, err := h.tasks.Update(userID, taskID, update)
	if err != nil {
		return taskError(err, taskID), nil
	}
	return toolResultJSON(task)
}

func requireTaskArgs(request mcp.CallToolRequest) (userID, taskID string, result *mcp.CallToolResult) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return "", "", mcp.NewToolResultError("user_id argument is required and must be a string")
	}
	taskID, err = request.RequireString("task_id")
	if err != nil {
		return "", "", mcp.NewToolResultError("task_id argument is required and must be a string")
	}
	return userID, taskID, nil
}

func taskError(err error, taskID string) *mcp.CallToolResult {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("task not found: %s", taskID))
	case errors.Is(err, storage.ErrForbidden):
		return mcp.NewToolResultError(fmt.Sprintf("task does not belong to this user: %s", taskID))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("task operation failed: %v", err))
	}
}

func toolResultJSON(payload interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
