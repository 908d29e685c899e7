package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stockgyan-backend/internal/handlers"
	"stockgyan-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	chatHandler *handlers.ChatHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Operational endpoints
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public API routes - OTP login flow
	r.HandleFunc("/auth/send-otp", authHandler.SendOTP).Methods("POST")
	r.HandleFunc("/auth/resend-otp", authHandler.ResendOTP).Methods("POST")
	r.HandleFunc("/auth/verify-otp", authHandler.VerifyOTP).Methods("POST")
	r.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	// Session check requires a valid token
	sessionAPI := r.PathPrefix("/auth/session").Subrouter()
	sessionAPI.Use(authMiddleware.Authenticate)
	sessionAPI.HandleFunc("", authHandler.Session).Methods("GET")

	// Protected API routes - Quiz attempts
	quizAPI := r.PathPrefix("/api/quiz-attempts").Subrouter()
	quizAPI.Use(authMiddleware.Authenticate)
	quizAPI.HandleFunc("", quizHandler.CreateAttempt).Methods("POST")
	quizAPI.HandleFunc("", quizHandler.ListAttempts).Methods("GET")

	// Protected API routes - Support chat
	chatAPI := r.PathPrefix("/api/chat").Subrouter()
	chatAPI.Use(authMiddleware.Authenticate)
	chatAPI.HandleFunc("/messages", chatHandler.PostMessage).Methods("POST")
	chatAPI.HandleFunc("/messages", chatHandler.History).Methods("GET")
	chatAPI.HandleFunc("/ws", chatHandler.Stream).Methods("GET")

	return r
}
