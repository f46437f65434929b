package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle bounds failed-login guessing with a fixed window counter in
// Redis, keyed per identifier (email plus client IP). A Redis outage fails
// open: login availability wins over throttling, with a warning logged.
type LoginThrottle struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *slog.Logger
}

// NewLoginThrottle constructs a LoginThrottle.
func NewLoginThrottle(client *redis.Client, limit int, window time.Duration, logger *slog.Logger) *LoginThrottle {
	return &LoginThrottle{client: client, limit: limit, window: window, logger: logger}
}

// Allow records an attempt for the identifier and reports whether it is
// still within the window limit.
func (t *LoginThrottle) Allow(ctx context.Context, identifier string) bool {
	if t == nil || t.client == nil || t.limit <= 0 {
		return true
	}
	key := fmt.Sprintf("login_attempts:%s", identifier)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		if t.logger != nil {
			t.logger.Warn("login throttle unavailable", slog.Any("error", err))
		}
		return true
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil && t.logger != nil {
			t.logger.Warn("login throttle expire", slog.Any("error", err))
		}
	}
	return count <= int64(t.limit)
}
