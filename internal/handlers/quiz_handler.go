package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"stockgyan-backend/internal/middleware"
	"stockgyan-backend/internal/models"
	"stockgyan-backend/internal/services"
	"stockgyan-backend/pkg/utils"
)

type QuizHandler struct {
	Service *services.QuizService
}

func NewQuizHandler(s *services.QuizService) *QuizHandler {
	return &QuizHandler{Service: s}
}

// CreateAttempt records a completed quiz for the logged-in learner
func (h *QuizHandler) CreateAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "no_session", "Not logged in")
		return
	}

	var req models.CreateQuizAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "bad_json", "Invalid request body")
		return
	}

	attempt, err := h.Service.RecordAttempt(r.Context(), userID, &req)
	if err != nil {
		if ve, ok := services.AsValidationError(err); ok {
			utils.FieldErrors(w, ve.Fields)
			return
		}
		log.Printf("[QuizHandler] create attempt failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal", "Internal server error")
		return
	}

	utils.JSON(w, http.StatusCreated, attempt)
}

// ListAttempts returns the learner's quiz history, newest first
func (h *QuizHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "no_session", "Not logged in")
		return
	}

	attempts, err := h.Service.ListAttempts(r.Context(), userID)
	if err != nil {
		log.Printf("[QuizHandler] list attempts failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal", "Internal server error")
		return
	}
	if attempts == nil {
		attempts = []*models.QuizAttempt{}
	}

	utils.JSON(w, http.StatusOK, attempts)
}
