package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	chatLimitKeyPrefix = "chat_limit"
	chatLimitWindow    = time.Minute
)

// RateLimiter decides whether a caller may issue another chat request.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
	Close() error
}

type redisChatLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

type noopChatLimiter struct{}

// NewChatLimiter returns a Redis fixed-window limiter, or a limiter that allows
// everything when the cache is disabled or the limit is not positive.
func NewChatLimiter(cfg config.CacheConfig) (RateLimiter, error) {
	if !cfg.Enabled || cfg.ChatLimitPerMinute <= 0 {
		return &noopChatLimiter{}, nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisChatLimiter{
		client: client,
		limit:  int64(cfg.ChatLimitPerMinute),
		window: chatLimitWindow,
		now:    time.Now,
	}, nil
}

func NewNoopChatLimiter() RateLimiter {
	return &noopChatLimiter{}
}

// Allow counts a request for key in the current window. The second return value
// is how long until the window resets when the request is rejected.
func (l *redisChatLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := l.now()
	windowKey := buildWindowKey(key, now, l.window)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, windowKey)
		pipe.Expire(ctx, windowKey, l.window)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("chat limiter: %w", err)
	}

	if incr.Val() > l.limit {
		return false, windowRemaining(now, l.window), nil
	}
	return true, 0, nil
}

func (l *redisChatLimiter) Close() error {
	return l.client.Close()
}

func (n *noopChatLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return true, 0, nil
}

func (n *noopChatLimiter) Close() error {
	return nil
}

func buildWindowKey(key string, now time.Time, window time.Duration) string {
	return fmt.Sprintf("%s:%s:%d", chatLimitKeyPrefix, key, now.Truncate(window).Unix())
}

func windowRemaining(now time.Time, window time.Duration) time.Duration {
	return now.Truncate(window).Add(window).Sub(now)
}
