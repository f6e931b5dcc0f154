// ABOUTME: In-memory conversation registry keyed by (user, conversation id)
// ABOUTME: Owns per-key locks, in-flight pins, and the idle-eviction sweep
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/harper/todo-assistant/internal/models"
)

// Registry maps a "user:conversation" key to its conversation state and
// per-key lock for the lifetime of the process. All access goes through
// its methods; the maps are never handed out.
type Registry struct {
	mu            sync.Mutex
	conversations map[string]*models.Conversation
	locks         map[string]*sync.Mutex
	pins          map[string]int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		conversations: make(map[string]*models.Conversation),
		locks:         make(map[string]*sync.Mutex),
		pins:          make(map[string]int),
	}
}

// key builds the registry key. When no conversation id is supplied a
// fresh one is synthesized from the microsecond clock, bumped past any
// collision. Callers must hold r.mu.
func (r *Registry) key(userID, conversationID string) string {
	if conversationID != "" {
		return userID + ":" + conversationID
	}
	us := time.Now().UnixMicro()
	for {
		key := fmt.Sprintf("%s:%d", userID, us)
		if _, exists := r.conversations[key]; !exists {
			return key
		}
		us++
	}
}

// GetOrCreate returns the conversation for (user, conversation id),
// creating an empty one if absent, and refreshes its last-accessed
// timestamp either way. The returned key addresses Lock, Pin, and Unpin.
func (r *Registry) GetOrCreate(userID, conversationID string) (*models.Conversation, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.key(userID, conversationID)
	conv, exists := r.conversations[key]
	if !exists {
		convID := key[strings.Index(key, ":")+1:]
		conv = models.NewConversation(convID, userID)
		r.conversations[key] = conv
	}
	conv.LastAccessed = time.Now()
	return conv, key
}

// Lock returns the exclusive lock for a conversation key, creating it
// lazily. Two concurrent first-time requests for the same key always
// observe the same lock.
func (r *Registry) Lock(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, exists := r.locks[key]
	if !exists {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	return lock
}

// Pin marks a conversation as having an in-flight request so the sweep
// cannot evict it out from under an active turn
func (r *Registry) Pin(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pins[key]++
}

// Unpin releases an in-flight pin
func (r *Registry) Unpin(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pins[key] <= 1 {
		delete(r.pins, key)
	} else {
		r.pins[key]--
	}
}

// Sweep removes every unpinned conversation idle for longer than
// maxIdle, along with its lock. Returns the number evicted.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	evicted := 0
	for key, conv := range r.conversations {
		if r.pins[key] > 0 {
			continue
		}
		if conv.LastAccessed.Before(cutoff) {
			delete(r.conversations, key)
			delete(r.locks, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of live conversations
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conversations)
}

// StartSweeper runs the idle sweep every interval until ctx is done
func (r *Registry) StartSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Sweep(maxIdle); n > 0 {
					log.Printf("chat: swept %d idle conversations", n)
				}
			}
		}
	}()
}
