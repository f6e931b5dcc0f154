// ABOUTME: Task CRUD HTTP handlers scoped to the authenticated user
// ABOUTME: Maps storage sentinel errors onto the right status codes
package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/harper/todo-assistant/internal/models"
	"github.com/harper/todo-assistant/internal/storage"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Complete    bool   `json:"complete"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := s.tasks.Create(userID(r), req.Title, req.Description, req.Complete)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	filter := storage.ListFilter{Limit: 100}

	q := r.URL.Query()
	if raw := q.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "completed must be true or false")
			return
		}
		filter.Completed = &completed
	}
	if raw := q.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			respondError(w, http.StatusBadRequest, "skip must be a non-negative integer")
			return
		}
		filter.Offset = skip
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	tasks, err := s.tasks.List(userID(r), filter)
	if err != nil {
		log.Printf("Failed to list tasks: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.tasks.Get(userID(r), r.PathValue("id"))
	if err != nil {
		respondTaskError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var update models.TaskUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if update.Empty() {
		respondError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	task, err := s.tasks.Update(userID(r), r.PathValue("id"), update)
	if err != nil {
		respondTaskError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Delete(userID(r), r.PathValue("id")); err != nil {
		respondTaskError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

func respondTaskError(w http.ResponseWriter, err error) {
	switch {
	// Ownership mismatches read as not-found so non-owners cannot
	// probe which task ids exist
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrForbidden):
		respondError(w, http.StatusNotFound, "task not found")
	default:
		log.Printf("Task operation failed: %v", err)
		respondError(w, http.StatusInternalServerError, "task operation failed")
	}
}
