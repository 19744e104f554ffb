package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// FixedWindowLimiter counts requests per key in fixed windows.
// Key format: ratelimit:<key>
type FixedWindowLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewFixedWindowLimiter allows limit requests per key every window.
func NewFixedWindowLimiter(client *redis.Client, limit int, window time.Duration) *FixedWindowLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindowLimiter{client: client, limit: int64(limit), window: window}
}

// Allow increments the key's counter. The first hit of a window sets its expiry.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := keyPrefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.window)
		ttl = pipe.TTL(ctx, k)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("rate limit %s: %w", key, err)
	}

	if incr.Val() <= l.limit {
		return true, 0, nil
	}
	return false, retryAfter(ttl.Val(), l.window), nil
}

// retryAfter falls back to a full window when Redis reports no expiry
// (-1) or a vanished key (-2).
func retryAfter(ttl, window time.Duration) time.Duration {
	if ttl < 0 {
		return window
	}
	return ttl
}
