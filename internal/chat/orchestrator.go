// ABOUTME: Conversation orchestrator: the single entry point for a chat turn
// ABOUTME: Serializes per-conversation access, runs the interpreter, then the gateway
package chat

import (
	"context"
	"fmt"
	"log"

	"github.com/harper/todo-assistant/internal/models"
)

// systemPrompt frames the assistant for non-command messages
const systemPrompt = `You are a helpful todo assistant. You help users manage their tasks and productivity.

If the user is asking about tasks, productivity, or wants to manage their tasks, you can help with:
- Listing their tasks
- Creating new tasks
- Updating existing tasks
- Deleting tasks

For other questions, provide helpful responses related to productivity, time management, and general assistance.

Keep your responses concise and helpful.`

// Generator is the outbound surface of the language-model gateway. It
// returns text on every path; degraded-mode strings stand in for errors.
type Generator interface {
	Generate(ctx context.Context, prompt string) string
}

// Orchestrator turns (user, message, conversation id) into (response,
// conversation id), coordinating the registry, the interpreter, and the
// language-model gateway.
type Orchestrator struct {
	registry    *Registry
	interpreter *Interpreter
	gateway     Generator
}

// NewOrchestrator wires an orchestrator from its collaborators
func NewOrchestrator(registry *Registry, interpreter *Interpreter, gateway Generator) *Orchestrator {
	return &Orchestrator{
		registry:    registry,
		interpreter: interpreter,
		gateway:     gateway,
	}
}

// ProcessMessage handles one chat turn. Every path returns text plus the
// canonical conversation id; no error escapes this boundary. Turns for
// the same conversation are fully serialized by the per-key lock.
func (o *Orchestrator) ProcessMessage(ctx context.Context, userID, message, conversationID string) (response, convID string) {
	conv, key := o.registry.GetOrCreate(userID, conversationID)
	o.registry.Pin(key)
	defer o.registry.Unpin(key)

	lock := o.registry.Lock(key)
	lock.Lock()
	defer lock.Unlock()

	// Safety net: anything unexpected becomes an apology turn so the
	// history stays consistent.
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("chat: recovered processing message for user %s: %v", userID, rec)
			response = fmt.Sprintf("Sorry, I encountered an error: %v", rec)
			conv.AddMessage(models.RoleAssistant, response)
			convID = conv.ID
		}
	}()

	conv.AddMessage(models.RoleUser, message)

	// Deterministic task commands never reach the language model
	if outcome := o.interpreter.Interpret(userID, message); outcome.Kind != NotACommand {
		conv.AddMessage(models.RoleAssistant, outcome.Response)
		return outcome.Response, conv.ID
	}

	prompt := systemPrompt + "\n\n" + conv.FormattedHistory() + "\n[ASSISTANT]:"
	reply := o.gateway.Generate(ctx, prompt)

	conv.AddMessage(models.RoleAssistant, reply)
	return reply, conv.ID
}

// EndConversation acknowledges that the client is done with a
// conversation. The idle sweep is the actual cleanup mechanism; this is
// a hook for external bookkeeping.
func (o *Orchestrator) EndConversation(userID, conversationID string) {
	// no-op: conversations expire via Registry.Sweep
}
