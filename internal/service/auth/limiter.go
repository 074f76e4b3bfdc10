package auth

import (
	"context"

	"go.uber.org/zap"

	"lifetracker/pkg/util"
)

// LoginLimiter throttles repeated failed logins per key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) bool
	Fail(ctx context.Context, key string)
	Reset(ctx context.Context, key string)
}

type NoopLimiter struct{}

func (NoopLimiter) Allow(context.Context, string) bool { return true }
func (NoopLimiter) Fail(context.Context, string)       {}
func (NoopLimiter) Reset(context.Context, string)      {}

// RedisLimiter blocks a key once max failures happened inside the counter window.
// Redis errors fail open.
type RedisLimiter struct {
	counter *util.AttemptCounter
	max     int64
	logger  *zap.Logger
}

func NewRedisLimiter(counter *util.AttemptCounter, max int, logger *zap.Logger) *RedisLimiter {
	return &RedisLimiter{counter: counter, max: int64(max), logger: logger}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	n, err := l.counter.Get(ctx, key)
	if err != nil {
		l.logger.Warn("Login limiter unavailable, allowing attempt", zap.Error(err))
		return true
	}
	return n < l.max
}

func (l *RedisLimiter) Fail(ctx context.Context, key string) {
	if _, err := l.counter.IncrementAndGet(ctx, key); err != nil {
		l.logger.Warn("Failed to record login failure", zap.Error(err))
	}
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) {
	if err := l.counter.Reset(ctx, key); err != nil {
		l.logger.Warn("Failed to reset login failures", zap.Error(err))
	}
}
