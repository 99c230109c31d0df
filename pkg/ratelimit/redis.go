package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// redisLimiter is a fixed-window counter shared by every replica.
type redisLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

// NewRedis returns a limiter allowing requestsPerMin per key per minute,
// counted in Redis under prefix.
func NewRedis(rdb *redis.Client, requestsPerMin int, prefix string) Limiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &redisLimiter{
		rdb:    rdb,
		limit:  int64(requestsPerMin),
		window: time.Minute,
		prefix: prefix,
	}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)

	// SET NX opens the window with its TTL in the same transaction as the
	// INCR, so a counter never exists without an expiry.
	pipe := l.rdb.TxPipeline()
	pipe.SetNX(ctx, redisKey, 0, l.window)
	incr := pipe.Incr(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("redis window: %w", err)
	}
	count := incr.Val()

	return count <= l.limit, nil
}
