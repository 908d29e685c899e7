package services

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPRateLimiter bounds how often a given mobile number may request codes
type OTPRateLimiter interface {
	Allow(mobile string) bool
}

const redisOTPAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisOTPRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisOTPRateLimiter returns a fixed-window limiter backed by Redis.
// A nil client yields a nil limiter, which the auth service treats as
// "no window limit" (the DB cooldown still applies).
func NewRedisOTPRateLimiter(client *redis.Client, window time.Duration, max int) OTPRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Hour
	}
	if max <= 0 {
		max = 1
	}
	return &redisOTPRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "otp:rl:",
	}
}

func (l *redisOTPRateLimiter) Allow(mobile string) bool {
	if l == nil || l.client == nil {
		return true
	}
	key := strings.TrimSpace(mobile)
	if key == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 3600
	}
	count, err := l.client.Eval(ctx, redisOTPAllowScript, []string{l.prefix + key}, seconds).Int()
	if err != nil {
		// Fail open: Redis being down must not lock everyone out of login
		return true
	}
	return count <= l.max
}
