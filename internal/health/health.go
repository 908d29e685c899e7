package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthChecker struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

type HealthStatus struct {
	Status   string           `json:"status"`
	Database DependencyHealth `json:"database"`
	Redis    DependencyHealth `json:"redis"`
}

type DependencyHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms,omitempty"`
}

func NewHealthChecker(db *pgxpool.Pool, redisClient *redis.Client) *HealthChecker {
	return &HealthChecker{db: db, redis: redisClient}
}

// CheckBasic reports readiness. The database is required; Redis only backs
// the OTP window limiter, so it degrades the report without failing it.
func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()
	redisHealth := h.checkRedis()

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
		Redis:    redisHealth,
	}
}

func (h *HealthChecker) checkDatabase() DependencyHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DependencyHealth{Status: "unhealthy", ResponseTime: responseTime}
	}
	return DependencyHealth{Status: "healthy", ResponseTime: responseTime}
}

func (h *HealthChecker) checkRedis() DependencyHealth {
	if h.redis == nil {
		return DependencyHealth{Status: "not_configured"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.redis.Ping(ctx).Err()
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DependencyHealth{Status: "unhealthy", ResponseTime: responseTime}
	}
	return DependencyHealth{Status: "healthy", ResponseTime: responseTime}
}
