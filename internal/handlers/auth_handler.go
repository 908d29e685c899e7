package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"stockgyan-backend/internal/metrics"
	"stockgyan-backend/internal/middleware"
	"stockgyan-backend/internal/models"
	"stockgyan-backend/internal/services"
	"stockgyan-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.AuthService
}

func NewAuthHandler(s *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

// SendOTP handles the lead form submission that starts a login
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req models.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "bad_json", "Invalid request body")
		return
	}

	resp, err := h.Service.SubmitLead(r.Context(), &req)
	if err != nil {
		h.writeSendError(w, err)
		return
	}

	metrics.OTPSendsTotal.WithLabelValues("sent").Inc()
	utils.JSON(w, http.StatusOK, resp)
}

// ResendOTP re-issues a code for an in-flight login
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req models.ResendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "bad_json", "Invalid request body")
		return
	}

	resp, err := h.Service.ResendOTP(r.Context(), &req)
	if err != nil {
		h.writeSendError(w, err)
		return
	}

	metrics.OTPSendsTotal.WithLabelValues("sent").Inc()
	utils.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) writeSendError(w http.ResponseWriter, err error) {
	if ve, ok := services.AsValidationError(err); ok {
		utils.FieldErrors(w, ve.Fields)
		return
	}
	switch {
	case errors.Is(err, services.ErrRateLimited):
		metrics.OTPSendsTotal.WithLabelValues("rate_limited").Inc()
		utils.Error(w, http.StatusTooManyRequests, "rate_limited", err.Error())
	case errors.Is(err, services.ErrChallengeNotFound):
		utils.Error(w, http.StatusNotFound, "challenge_not_found", err.Error())
	case errors.Is(err, services.ErrDelivery):
		metrics.OTPSendsTotal.WithLabelValues("delivery_failed").Inc()
		utils.Error(w, http.StatusBadGateway, "delivery_failed", "Could not send the SMS, please try again")
	default:
		log.Printf("[AuthHandler] send-otp failed: %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal", "Internal server error")
	}
}

// VerifyOTP completes a login and returns the session token
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "bad_json", "Invalid request body")
		return
	}

	resp, err := h.Service.VerifyOTP(r.Context(), &req)
	if err != nil {
		if ve, ok := services.AsValidationError(err); ok {
			utils.FieldErrors(w, ve.Fields)
			return
		}
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			metrics.OTPVerificationsTotal.WithLabelValues("not_found").Inc()
			utils.Error(w, http.StatusNotFound, "challenge_not_found", err.Error())
		case errors.Is(err, services.ErrChallengeExpired):
			metrics.OTPVerificationsTotal.WithLabelValues("expired").Inc()
			utils.Error(w, http.StatusGone, "challenge_expired", err.Error())
		case errors.Is(err, services.ErrCodeMismatch):
			metrics.OTPVerificationsTotal.WithLabelValues("mismatch").Inc()
			utils.Error(w, http.StatusUnauthorized, "code_mismatch", err.Error())
		case errors.Is(err, services.ErrRateLimited):
			metrics.OTPVerificationsTotal.WithLabelValues("rate_limited").Inc()
			utils.Error(w, http.StatusTooManyRequests, "rate_limited", err.Error())
		default:
			log.Printf("[AuthHandler] verify-otp failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "internal", "Internal server error")
		}
		return
	}

	metrics.OTPVerificationsTotal.WithLabelValues("success").Inc()
	utils.JSON(w, http.StatusOK, resp)
}

// Logout revokes the current session. Always succeeds from the client's
// point of view.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if token != "" {
		if err := h.Service.Logout(r.Context(), token); err != nil {
			log.Printf("[AuthHandler] logout: %v", err)
		}
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Session returns the user behind the current session token. The frontend
// calls this on page load to restore a logged-in state.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "no_session", "Not logged in")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
