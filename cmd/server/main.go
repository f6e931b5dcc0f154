// ABOUTME: Main entry point for the todo assistant HTTP API server
// ABOUTME: Initializes storage, chat orchestrator, and routes with graceful shutdown
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/harper/todo-assistant/internal/api"
	"github.com/harper/todo-assistant/internal/auth"
	"github.com/harper/todo-assistant/internal/chat"
	"github.com/harper/todo-assistant/internal/config"
	"github.com/harper/todo-assistant/internal/llm"
	"github.com/harper/todo-assistant/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("TODO_JWT_SECRET must be set")
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
		log.Fatalf("Failed to open database: %v", err)
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
			log.Fatalf("Server error: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("Shutdown error: %v", err)
		}
	}
}
