package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/services"
)

// ChatTurnRequest for POST /api/units/{id}/chat
type ChatTurnRequest struct {
	SurveyID *int64               `json:"survey_id,omitempty"`
	History  []models.ChatMessage `json:"history,omitempty"`
	Prompt   string               `json:"prompt"`
}

// ChatTurnResponse carries the assistant reply for one turn.
type ChatTurnResponse struct {
	Reply string `json:"reply"`
}

// ChatHandler handles conversational analytics requests.
type ChatHandler struct {
	chatService services.ChatService
	logger      *zap.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService services.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// RegisterRoutes registers the chat handler's routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/units/{id}/chat", h.Chat)
}

// Chat handles POST /api/units/{id}/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	unitID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"id": "must be a numeric unit id"})
		})
		return
	}

	var req ChatTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, h.logger, func() error {
			return ValidationResponse(w, map[string]string{"body": "invalid JSON"})
		})
		return
	}

	fields := map[string]string{}
	if req.Prompt == "" {
		fields["prompt"] = "is required"
	}
	for i, m := range req.History {
		if err := m.Validate(); err != nil {
			fields["history["+strconv.Itoa(i)+"]"] = err.Error()
		}
	}
	if len(fields) > 0 {
		respondJSON(w, h.logger, func() error { return ValidationResponse(w, fields) })
		return
	}

	reply, err := h.chatService.Answer(r.Context(), services.ChatRequest{
		UnitID:   unitID,
		SurveyID: req.SurveyID,
		History:  req.History,
		Prompt:   req.Prompt,
	})
	if err != nil {
		status, message, details := MapError(err)
		h.logger.Error("request failed",
			zap.String("op", "chat"),
			zap.Int("status", status),
			zap.Error(err))
		respondJSON(w, h.logger, func() error { return ErrorResponse(w, status, message, details) })
		return
	}

	respondJSON(w, h.logger, func() error {
		return WriteJSON(w, http.StatusOK, ChatTurnResponse{Reply: reply})
	})
}
