// ABOUTME: Signup, signin, and signout HTTP handlers
// ABOUTME: Issues JWT access tokens for authenticated sessions
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/harper/todo-assistant/internal/auth"
	"github.com/harper/todo-assistant/internal/storage"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.Create(req.Email, hash)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			respondError(w, http.StatusConflict, "email is already registered")
			return
		}
		log.Printf("Failed to create user: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		log.Printf("Failed to issue token: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	respondJSON(w, http.StatusCreated, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
	})
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		// Same response as a bad password so probes can't enumerate accounts
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if !auth.CheckPassword(user.HashedPassword, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		log.Printf("Failed to issue token: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
	})
}

func (s *Server) handleSignout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; the client simply discards its copy
	respondJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}
