// ABOUTME: HTTP server wiring routes to the auth, task, and chat handlers
// ABOUTME: JSON request/response helpers shared by all endpoints
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/harper/todo-assistant/internal/auth"
	"github.com/harper/todo-assistant/internal/chat"
	"github.com/harper/todo-assistant/internal/storage"
)

// Server carries the handler dependencies and builds the route table.
type Server struct {
	users        *storage.UserStore
	tasks        *storage.TaskStore
	orchestrator *chat.Orchestrator
	issuer       *auth.TokenIssuer
}

func NewServer(users *storage.UserStore, tasks *storage.TaskStore, orchestrator *chat.Orchestrator, issuer *auth.TokenIssuer) *Server {
	return &Server{
		users:        users,
		tasks:        tasks,
		orchestrator: orchestrator,
		issuer:       issuer,
	}
}

// Handler returns the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/signin", s.handleSignin)
	mux.HandleFunc("POST /api/auth/signout", s.requireAuth(s.handleSignout))

	mux.HandleFunc("GET /api/tasks", s.requireAuth(s.handleListTasks))
	mux.HandleFunc("POST /api/tasks", s.requireAuth(s.handleCreateTask))
	mux.HandleFunc("GET /api/tasks/{id}", s.requireAuth(s.handleGetTask))
	mux.HandleFunc("PUT /api/tasks/{id}", s.requireAuth(s.handleUpdateTask))
	mux.HandleFunc("PATCH /api/tasks/{id}", s.requireAuth(s.handleUpdateTask))
	mux.HandleFunc("DELETE /api/tasks/{id}", s.requireAuth(s.handleDeleteTask))

	mux.HandleFunc("POST /api/chat", s.requireAuth(s.handleChat))
	mux.HandleFunc("DELETE /api/chat/{conversation_id}", s.requireAuth(s.handleEndConversation))

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
