// ABOUTME: Serve command runs the HTTP API server
// ABOUTME: Wires config, storage, chat orchestrator, and graceful shutdown
package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/todo-assistant/internal/api"
	"github.com/harper/todo-assistant/internal/auth"
	"github.com/harper/todo-assistant/internal/chat"
	"github.com/harper/todo-assistant/internal/config"
	"github.com/harper/todo-assistant/internal/llm"
	"github.com/harper/todo-assistant/internal/storage"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server

Serves the task and chat API. Configuration is read from the
environment (TODO_ADDR, TODO_DB_PATH, TODO_JWT_SECRET,
OPENAI_API_KEY, and the LLM_* generation settings).`,
		RunE: runServe,
		Example: `  # Start with defaults (listens on :8080)
  todo serve

  # Custom address and database location
  TODO_ADDR=:9090 TODO_DB_PATH=/var/lib/todo/todo.db todo serve`,
	}

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("TODO_JWT_SECRET must be set")
	}
	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - chat will run in degraded mode")
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = storage.DefaultDBPath()
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	users := storage.NewUserStore(db)
	tasks := storage.NewTaskStore(db)

	gateway := llm.NewClient(&llm.ClientConfig{
		APIKey:      cfg.OpenAIKey,
		Model:       cfg.ChatModel,
		Timeout:     cfg.Timeout,
		Workers:     cfg.Workers,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		TopK:        cfg.TopK,
		TopP:        cfg.TopP,
	})

	registry := chat.NewRegistry()
	orchestrator := chat.NewOrchestrator(registry, chat.NewInterpreter(tasks), gateway)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry.StartSweeper(ctx, cfg.SweepInterval, cfg.ConversationTTL)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(users, tasks, orchestrator, issuer).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Todo assistant listening on %s (db: %s)", cfg.Addr, dbPath)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
