// Package ratelimit throttles repeated login attempts per email using a
// fixed-window counter in Redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned when Redis cannot be reached. Callers decide
// whether to fail open.
var ErrUnavailable = errors.New("login limiter unavailable")

const keyPrefix = "memoria:login:"

// LoginLimiter counts attempts per identifier inside a window.
type LoginLimiter struct {
	redis       redis.UniversalClient
	maxAttempts int
	window      time.Duration
}

func NewLoginLimiter(client redis.UniversalClient, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{redis: client, maxAttempts: maxAttempts, window: window}
}

// Allow records one attempt for identifier and returns common.ErrRateLimited
// once more than maxAttempts were made in the current window.
func (l *LoginLimiter) Allow(ctx context.Context, identifier string) error {
	key := keyPrefix + identifier

	var incr *redis.IntCmd
	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		// NX keeps the window fixed and restores a TTL lost by an earlier failure.
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	count := incr.Val()

	if count > int64(l.maxAttempts) {
		return common.ErrRateLimited
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, identifier string) error {
	if err := l.redis.Del(ctx, keyPrefix+identifier).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
