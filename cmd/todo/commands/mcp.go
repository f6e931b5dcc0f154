// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to manage tasks via stdio
package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/harper/todo-assistant/internal/mcp"
	"github.com/harper/todo-assistant/internal/storage"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the todo assistant as an MCP (Model Context Protocol) server,
enabling LLM agents like Claude to manage tasks via stdio.

Configure in Claude Desktop's config file to enable the task tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  todo mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "todo": {
  #       "command": "todo",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	server := mcpserver.NewMCPServer(
		"Todo Assistant",
		"0.1.0",
	)

	mcp.RegisterTools(server, storage.NewTaskStore(db), storage.NewUserStore(db))

	if !quiet {
		log.Println("Todo MCP server starting on stdio...")
	}
	if err := mcpserver.ServeStdio(server); err != nil {
		return err
	}
	return nil
}
