// ABOUTME: Stateless gateway to the OpenAI chat completions API
// ABOUTME: Bounded worker pool, hard timeout, degraded-mode strings on failure
package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultWorkers bounds concurrent outbound calls
	DefaultWorkers = 4
	// DefaultTimeout is the hard per-call timeout
	DefaultTimeout = 30 * time.Second
)

// Degraded-mode responses. The gateway never raises past its boundary;
// every failure becomes one of these user-facing strings.
const (
	MsgNotConfigured = "The AI assistant is not configured. Please contact the administrator."
	MsgTimeout       = "The AI service is taking too long to respond. Please try again."
	MsgEmpty         = "I couldn't generate a response. Please try again."
)

// ClientConfig holds configuration for the gateway
type ClientConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	Workers int

	// Generation parameters. TopK is accepted for symmetry with other
	// providers but the chat completions API has no top-k knob.
	Temperature float32
	MaxTokens   int
	TopK        int
	TopP        float32

	// BaseURL overrides the API endpoint (used in tests)
	BaseURL string
}

// DefaultConfig returns the default gateway configuration
func DefaultConfig(apiKey string) *ClientConfig {
	model := os.Getenv("TODO_CHAT_MODEL")
	if model == "" {
		model = DefaultChatModel
	}

	return &ClientConfig{
		APIKey:      apiKey,
		Model:       model,
		Timeout:     DefaultTimeout,
		Workers:     DefaultWorkers,
		Temperature: 0.7,
		MaxTokens:   1000,
		TopK:        40,
		TopP:        0.95,
	}
}

// Client is a stateless adapter over the OpenAI API. A nil or
// unconfigured client degrades to MsgNotConfigured instead of failing.
type Client struct {
	client      *openai.Client
	model       string
	timeout     time.Duration
	slots       chan struct{}
	temperature float32
	maxTokens   int
	topP        float32
}

// NewClient creates a gateway from the given configuration. A missing
// API key is not an error; the client runs in degraded mode.
func NewClient(cfg *ClientConfig) *Client {
	if cfg == nil {
		cfg = DefaultConfig("")
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	model := cfg.Model
	if model == "" {
		model = DefaultChatModel
	}

	c := &Client{
		model:       model,
		timeout:     timeout,
		slots:       make(chan struct{}, workers),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		topP:        cfg.TopP,
	}
	if cfg.APIKey != "" {
		occfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			occfg.BaseURL = cfg.BaseURL
		}
		c.client = openai.NewClientWithConfig(occfg)
	}
	return c
}

// Generate sends a single prompt and returns the generated text or a
// degraded-mode string. One attempt, no retries; the transport enforces
// the timeout.
func (c *Client) Generate(ctx context.Context, prompt string) string {
	if c == nil || c.client == nil {
		return MsgNotConfigured
	}

	// Wait for a worker slot so blocking calls never pile up unbounded
	select {
	case c.slots <- struct{}{}:
		defer func() { <-c.slots }()
	case <-ctx.Done():
		return MsgTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		TopP:        c.topP,
	})
	if err != nil {
		return degradedMessage(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return MsgEmpty
	}
	return resp.Choices[0].Message.Content
}

// degradedMessage translates a transport failure into a user-facing
// string. Full detail goes to the operator log only.
func degradedMessage(err error) string {
	log.Printf("llm: generation failed: %v", err)

	if errors.Is(err, context.DeadlineExceeded) {
		return MsgTimeout
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return fmt.Sprintf("I'm having trouble connecting to the AI service. Status: %d", apiErr.HTTPStatusCode)
	}

	return fmt.Sprintf("I'm having trouble connecting to the AI service. Error: %v", err)
}
