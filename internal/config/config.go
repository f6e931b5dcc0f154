// ABOUTME: Centralized configuration for the todo assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the todo assistant
type Config struct {
	// Server settings
	Addr   string
	DBPath string

	// Auth settings
	JWTSecret string
	TokenTTL  time.Duration

	// OpenAI settings
	OpenAIKey string
	ChatModel string
	Timeout   time.Duration
	Workers   int

	// Generation parameters
	Temperature float32
	MaxTokens   int
	TopK        int
	TopP        float32

	// Conversation settings
	ConversationTTL time.Duration
	SweepInterval   time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		Addr:            getEnv("TODO_ADDR", ":8080"),
		DBPath:          getEnv("TODO_DB_PATH", ""),
		JWTSecret:       getEnv("TODO_JWT_SECRET", ""),
		TokenTTL:        getEnvDuration("TODO_TOKEN_TTL", 720*time.Hour),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("TODO_CHAT_MODEL", "gpt-4o-mini"),
		Timeout:         getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		Workers:         getEnvInt("LLM_WORKERS", 4),
		Temperature:     float32(getEnvFloat("LLM_TEMPERATURE", 0.7)),
		MaxTokens:       getEnvInt("LLM_MAX_TOKENS", 1000),
		TopK:            getEnvInt("LLM_TOP_K", 40),
		TopP:            float32(getEnvFloat("LLM_TOP_P", 0.95)),
		ConversationTTL: getEnvDuration("CONVERSATION_TTL", time.Hour),
		SweepInterval:   getEnvDuration("SWEEP_INTERVAL", 5*time.Minute),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Workers < 1 || c.Workers > 64 {
		return fmt.Errorf("LLM_WORKERS must be 1-64, got %d", c.Workers)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.TopP < 0 || c.TopP > 1 {
		return fmt.Errorf("LLM_TOP_P must be 0-1, got %f", c.TopP)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.ConversationTTL <= 0 {
		return fmt.Errorf("CONVERSATION_TTL must be positive, got %v", c.ConversationTTL)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive, got %v", c.SweepInterval)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
