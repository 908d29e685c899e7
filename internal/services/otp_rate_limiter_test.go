package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeEvaler struct {
	count int64
	err   error
	keys  []string
}

func (f *fakeEvaler) Eval(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	f.keys = append(f.keys, keys...)
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}
	f.count++
	return redis.NewCmdResult(f.count, nil)
}

func TestRateLimiterAllowsUpToMax(t *testing.T) {
	evaler := &fakeEvaler{}
	l := &redisOTPRateLimiter{client: evaler, window: time.Hour, max: 3, prefix: "otp:rl:"}

	for i := 0; i < 3; i++ {
		if !l.Allow("9876543210") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("9876543210") {
		t.Error("request over the window max should be denied")
	}
	if len(evaler.keys) == 0 || evaler.keys[0] != "otp:rl:9876543210" {
		t.Errorf("unexpected keys: %v", evaler.keys)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	evaler := &fakeEvaler{err: errors.New("connection refused")}
	l := &redisOTPRateLimiter{client: evaler, window: time.Hour, max: 1, prefix: "otp:rl:"}

	if !l.Allow("9876543210") {
		t.Error("Redis errors must not lock users out")
	}
}

func TestRateLimiterRejectsEmptyKey(t *testing.T) {
	l := &redisOTPRateLimiter{client: &fakeEvaler{}, window: time.Hour, max: 1, prefix: "otp:rl:"}
	if l.Allow("  ") {
		t.Error("blank mobile must be denied")
	}
}

func TestRateLimiterNilClient(t *testing.T) {
	if l := NewRedisOTPRateLimiter(nil, time.Hour, 5); l != nil {
		t.Error("nil client should yield nil limiter")
	}
}
