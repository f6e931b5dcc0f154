// ABOUTME: Conversation and Message models for chat history tracking
// ABOUTME: Append-only, in-memory state owned by the chat registry
package models

import (
	"strings"
	"time"
)

// Role identifies the author of a conversation message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged turn within a conversation.
// Immutable once appended.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is the ordered, append-only message history between one
// user and the assistant. Messages are guarded by the registry's
// per-conversation lock; LastAccessed is guarded by the registry itself.
type Conversation struct {
	ID           string
	UserID       string
	Messages     []Message
	CreatedAt    time.Time
	LastAccessed time.Time
}

// NewConversation creates an empty conversation for a user
func NewConversation(id, userID string) *Conversation {
	now := time.Now()
	return &Conversation{
		ID:           id,
		UserID:       userID,
		CreatedAt:    now,
		LastAccessed: now,
	}
}

// AddMessage appends a message to the history. Callers must hold the
// conversation's lock.
func (c *Conversation) AddMessage(role Role, content string) {
	c.Messages = append(c.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// FormattedHistory renders the history as one "[ROLE]: content" line per
// message, in chronological order.
func (c *Conversation) FormattedHistory() string {
	if len(c.Messages) == 0 {
		return ""
	}
	lines := make([]string, 0, len(c.Messages))
	for _, msg := range c.Messages {
		lines = append(lines, "["+strings.ToUpper(string(msg.Role))+"]: "+msg.Content)
	}
	return strings.Join(lines, "\n")
}
