// ABOUTME: Chat HTTP handlers bridging requests to the conversation orchestrator
// ABOUTME: Handles message turns and conversation end acknowledgements
package api

import (
	"net/http"
	"strings"
)

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

type chatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	response, convID := s.orchestrator.ProcessMessage(r.Context(), userID(r), req.Message, req.ConversationID)
	respondJSON(w, http.StatusOK, chatResponse{
		Response:       response,
		ConversationID: convID,
	})
}

func (s *Server) handleEndConversation(w http.ResponseWriter, r *http.Request) {
	s.orchestrator.EndConversation(userID(r), r.PathValue("conversation_id"))
	respondJSON(w, http.StatusOK, map[string]string{"message": "conversation ended"})
}
