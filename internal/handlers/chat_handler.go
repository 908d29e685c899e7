package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"stockgyan-backend/internal/middleware"
	"stockgyan-backend/internal/models"
	"stockgyan-backend/internal/services"
	"stockgyan-backend/internal/ws"
	"stockgyan-backend/pkg/utils"
)

type ChatHandler struct {
	Service *services.ChatService
	Hub     *ws.Hub
}

func NewChatHandler(s *services.ChatService, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{Service: s, Hub: hub}
}

// PostMessage stores a support-chat message from the logged-in learner
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "no_session", "Not logged in")
		return
	}

	var req models.CreateChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "bad_json", "Invalid request body")
		return
	}

	msg, err := h.Service.PostMessage(r.Context(), userID, models.ChatSenderUser, &req)
	if err != nil {
		if ve, ok := services.AsValidationError(err); ok {
			utils.FieldErrors(w, ve.Fields)
			return
		}
		log.Printf("[ChatHandler] post message failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal", "Internal server error")
		return
	}

	utils.JSON(w, http.StatusCreated, msg)
}

// History returns the learner's chat thread, oldest first
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "no_session", "Not logged in")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	messages, err := h.Service.History(r.Context(), userID, limit)
	if err != nil {
		log.Printf("[ChatHandler] history failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal", "Internal server error")
		return
	}
	if messages == nil {
		messages = []*models.ChatMessage{}
	}

	utils.JSON(w, http.StatusOK, messages)
}

// Stream upgrades to a websocket that receives the learner's chat messages
// live and accepts new ones
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "no_session", "Not logged in")
		return
	}
	h.Hub.ServeWS(w, r, userID, h.Service)
}
