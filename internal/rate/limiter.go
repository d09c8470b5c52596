package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pr:"

// Config holds limiter tuning parameters.
type Config struct {
	// Limit is the number of requests allowed per Window. Zero or less
	// disables limiting.
	Limit  int
	Window time.Duration
}

// Limiter counts bridge requests per client key in Redis.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

// New creates a [Limiter] backed by the given Redis client.
func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{
		redis:  redisClient,
		config: cfg,
	}
}

// Allow records one request for key and returns ErrRateLimited once the
// window budget is spent. Redis errors are wrapped in ErrRedisUnavailable.
func (l *Limiter) Allow(ctx context.Context, key string) error {
	if l == nil || l.config.Limit <= 0 {
		return nil
	}

	count, err := l.incrementWithTTL(ctx, requestKey(key), l.config.Window)
	if err != nil {
		return err
	}
	if count > int64(l.config.Limit) {
		return ErrRateLimited
	}

	return nil
}

// Remaining reports how many requests key may still make in the current
// window. A key with no counter has the full budget.
func (l *Limiter) Remaining(ctx context.Context, key string) (int, error) {
	if l == nil || l.config.Limit <= 0 {
		return 0, nil
	}

	count, err := l.redis.Get(ctx, requestKey(key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return l.config.Limit, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return max(0, l.config.Limit-int(count)), nil
}

// Reset clears the counter for key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if err := l.redis.Del(ctx, requestKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Limit returns the configured per-window budget.
func (l *Limiter) Limit() int {
	if l == nil {
		return 0
	}
	return l.config.Limit
}

func (l *Limiter) incrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	// Fixed-window semantics: set TTL only for the first hit in the window.
	if count == 1 {
		if err := l.redis.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return count, nil
}

func requestKey(key string) string {
	return keyPrefix + key
}
