// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// ratelimit.go provides a fixed-window request limiter whose counters live
// in Valkey, so every API instance behind a load balancer shares them.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// limitKeyPrefix is the Valkey key prefix for rate-limit counters.
const limitKeyPrefix = "ratelimit:"

// Limiter counts requests per key in fixed windows stored in Valkey.
type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLimiter creates a limiter allowing limit requests per key per window.
func NewLimiter(client *redis.Client, limit int, window time.Duration) *Limiter {
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{client: client, limit: int64(limit), window: window}
}

// Allow increments the counter for key and reports whether it is still
// within the limit. The window starts with the first request.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	k := limitKeyPrefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	// NX keeps the expiry of an open window instead of sliding it.
	pipe.ExpireNX(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}

	n := incr.Val()
	if n > l.limit {
		slog.Debug("rate limit exceeded", "key", key, "count", n)
		return false, nil
	}
	return true, nil
}

// Reset removes every counter. Used by tests and by operators after a
// limit change.
func (l *Limiter) Reset(ctx context.Context) error {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := l.client.Scan(ctx, cursor, limitKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("scan rate limit keys: %w", err)
		}
		if len(keys) > 0 {
			if err := l.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete rate limit keys: %w", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("rate limit counters cleared", "deleted", deleted)
	}
	return nil
}
