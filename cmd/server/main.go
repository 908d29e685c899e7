package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockgyan-backend/internal/auth"
	"stockgyan-backend/internal/cache"
	"stockgyan-backend/internal/config"
	"stockgyan-backend/internal/database"
	"stockgyan-backend/internal/db"
	"stockgyan-backend/internal/handlers"
	"stockgyan-backend/internal/health"
	h "stockgyan-backend/internal/http"
	"stockgyan-backend/internal/middleware"
	"stockgyan-backend/internal/repositories"
	"stockgyan-backend/internal/services"
	"stockgyan-backend/internal/sms"
	"stockgyan-backend/internal/ws"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	// Redis is optional: without it the per-window send limit is off and the
	// DB cooldown still applies
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] not available, OTP window limit disabled: %v", err)
	}
	redisClient := cache.GetClient()

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	otpRepo := repositories.NewOTPRepository(pool)
	sessionRepo := repositories.NewSessionRepository(pool)
	quizRepo := repositories.NewQuizAttemptRepository(pool)
	chatRepo := repositories.NewChatMessageRepository(pool)

	// SMS provider selection happens exactly once, here. A process either
	// delivers real SMS or accepts the fixed test code, never both.
	var smsProvider sms.Provider
	if cfg.SMS.Fast2SMSKey != "" {
		p, err := sms.NewFast2SMSProvider(cfg.SMS.Fast2SMSKey, cfg.SMS.Route, cfg.SMS.SenderID, cfg.SMS.TemplateID)
		if err != nil {
			log.Fatalf("sms provider: %v", err)
		}
		smsProvider = p
		log.Printf("[SMS] Fast2SMS provider active (route %s)", cfg.SMS.Route)
	} else {
		smsProvider = sms.NewTestProvider()
		log.Printf("[SMS] no FAST2SMS_API_KEY, test mode active: fixed code %s", sms.TestModeCode)
	}

	limiter := services.NewRedisOTPRateLimiter(
		redisClient,
		time.Duration(cfg.OTP.WindowMinutes)*time.Minute,
		cfg.OTP.MaxPerWindow,
	)

	jwtManager := auth.NewJWTManager(cfg)

	authService := services.NewAuthService(otpRepo, userRepo, sessionRepo, smsProvider, limiter, jwtManager, cfg)

	hub := ws.NewHub()
	chatService := services.NewChatService(chatRepo, hub)
	quizService := services.NewQuizService(quizRepo)

	healthChecker := health.NewHealthChecker(pool, redisClient)

	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	chatHandler := handlers.NewChatHandler(chatService, hub)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	router := h.NewRouter(authHandler, quizHandler, chatHandler, healthHandler, authMiddleware)

	// Middleware chain: recovery outermost, then CORS, logging, metrics
	var handler http.Handler = router
	handler = middleware.MetricsMiddleware(handler)
	handler = middleware.RequestLogging(handler)
	handler = middleware.NewCORS(cfg)(handler)
	handler = middleware.PanicRecovery(handler)

	// Expired challenges pile up slowly; sweep them daily
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := otpRepo.CleanupExpired(ctx); err != nil {
				log.Printf("[Cleanup] expired challenge sweep failed: %v", err)
			}
			cancel()
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[Server] listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("[Server] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[Server] shutdown error: %v", err)
	}
}
