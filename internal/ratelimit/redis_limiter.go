// Package ratelimit implements a Redis sliding-window counter. The chat
// endpoint sits in front of a metered generative API, so each user gets a
// bounded number of requests per window.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbbtt/next-mall/internal/config"
)

type Limiter interface {
	// Allow reports whether the caller identified by key may proceed, and
	// when not, how long to wait before retrying.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

type redisLimiter struct {
	client *redis.Client
	cfg    *config.RateConfig
}

func NewRedisLimiter(client *redis.Client, cfg *config.RateConfig) Limiter {
	return &redisLimiter{client: client, cfg: cfg}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {

	redisKey := fmt.Sprintf("chat_requests:%s", key)

	now := time.Now().UnixNano()
	windowStart := now - l.cfg.WindowSize.Nanoseconds()

	pipe := l.client.Pipeline()

	// drop entries that left the window
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))

	// record this request
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now), Member: now})

	count := pipe.ZCard(ctx, redisKey)

	pipe.Expire(ctx, redisKey, l.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to check rate limit: %w", err)
	}

	if count.Val() <= l.cfg.MaxRequests {
		return true, 0, nil
	}

	oldest, err := l.client.ZRange(ctx, redisKey, 0, 0).Result()
	if err != nil || len(oldest) == 0 {
		return false, l.cfg.WindowSize, err
	}

	oldestTime, err := strconv.ParseInt(oldest[0], 10, 64)
	if err != nil {
		return false, l.cfg.WindowSize, nil
	}

	retryAfter := l.cfg.WindowSize - time.Duration(now-oldestTime)
	if retryAfter < 0 {
		retryAfter = 0
	}

	return false, retryAfter, nil
}
