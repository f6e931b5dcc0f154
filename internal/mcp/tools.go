// ABOUTME: MCP tool definitions and registration for the todo assistant
// ABOUTME: Defines JSON schemas for the 5 task management tools
package mcp

import (
	"github.com/harper/todo-assistant/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, tasks *storage.TaskStore, users *storage.UserStore) *Handlers {
	handlers := &Handlers{
		tasks: tasks,
		users: users,
	}

	// 1. add_task - Create a new task for a user
	server.AddTool(mcp.Tool{
		Name:        "add_task",
		Description: "Create a new task for the user. Returns the created task including its id.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the user the task belongs to",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Short title of the task",
				},
				"description": map[string]interface{}{
					"type":        "string",
					"description": "Optional longer description",
				},
			},
			Required: []string{"user_id", "title"},
		},
	}, handlers.AddTask)

	// 2. list_tasks - List the user's tasks
	server.AddTool(mcp.Tool{
		Name:        "list_tasks",
		Description: "List the user's tasks, optionally filtered by completion status.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the user whose tasks to list",
				},
				"completed": map[string]interface{}{
					"type":        "boolean",
					"description": "When set, only return tasks with this completion status",
				},
			},
			Required: []string{"user_id"},
		},
	}, handlers.ListTasks)

	// 3. complete_task - Mark a task as complete
	server.AddTool(mcp.Tool{
		Name:        "complete_task",
		Description: "Mark one of the user's tasks as complete.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the user the task belongs to",
				},
				"task_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the task to complete",
				},
			},
			Required: []string{"user_id", "task_id"},
		},
	}, handlers.CompleteTask)

	// 4. delete_task - Delete a task
	server.AddTool(mcp.Tool{
		Name:        "delete_task",
		Description: "Delete one of the user's tasks permanently.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the user the task belongs to",
				},
				"task_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the task to delete",
				},
			},
			Required: []string{"user_id", "task_id"},
		},
	}, handlers.DeleteTask)

	// 5. update_task - Update a task's fields
	server.AddTool(mcp.Tool{
		Name:        "update_task",
		Description: "Update a task's title, description, or completion status. Only provided fields are changed.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the user the task belongs to",
				},
				"task_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the task to update",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "New task title",
				},
				"description": map[string]interface{}{
					"type":        "string",
					"description": "New task description",
				},
				"complete": map[string]interface{}{
					"type":        "boolean",
					"description": "New completion status",
				},
			},
			Required: []string{"user_id", "task_id"},
		},
	}, handlers.UpdateTask)

	return handlers
}
