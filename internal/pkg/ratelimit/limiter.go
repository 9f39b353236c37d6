package ratelimit

import (
	"context"
	"fmt"
	"time"

	"stayhub/internal/pkg/clock"

	"github.com/redis/go-redis/v9"
)

// Limiter is a sliding-window rate limiter backed by Redis so that the
// window survives restarts and is shared across instances.
type Limiter struct {
	rdb       *redis.Client
	clock     clock.Clock
	namespace string
	window    time.Duration
}

func NewLimiter(rdb *redis.Client, clk clock.Clock, namespace string, window time.Duration) *Limiter {
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		rdb:       rdb,
		clock:     clk,
		namespace: namespace,
		window:    window,
	}
}

// Allow records one hit for key and reports whether the caller is still
// within limit for the current window. Fails open on Redis errors so that
// throttling never takes the API down with it.
func (l *Limiter) Allow(ctx context.Context, key string, limit int) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	now := l.clock.Now()
	windowStart := now.Add(-l.window)
	redisKey := fmt.Sprintf("%s:%s", l.namespace, key)
	member := fmt.Sprintf("%d-%d", now.UnixNano(), limit)

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: member})
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}

	return countCmd.Val() <= int64(limit), nil
}
