package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockgyan_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockgyan_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OTPSendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockgyan_otp_sends_total",
			Help: "OTP send attempts by outcome (sent, delivery_failed, rate_limited)",
		},
		[]string{"outcome"},
	)

	OTPVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockgyan_otp_verifications_total",
			Help: "OTP verification attempts by outcome (success, mismatch, expired, not_found, rate_limited)",
		},
		[]string{"outcome"},
	)
)
