// Package ratelimit provides the fixed-window counter behind the auth
// endpoints' request limit.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// Counter increments the hit count of key within the current window.
type Counter interface {
	// Hit returns the number of hits for key in the window that contains now,
	// including this one.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter implements Counter with INCR and EXPIRE NX.
// Key format: rl:<window_seconds>:<key>
type RedisCounter struct {
	client *redis.Client
}

var _ Counter = (*RedisCounter)(nil)

// NewRedisCounter wraps an existing client.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisCounter{client: client}
}

// Connect opens a client for cfg and pings it. It returns (nil, nil) when
// rate limiting is disabled.
func Connect(ctx context.Context, cfg config.RateLimitConfig, logger *slog.Logger) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.RedisAddr, err)
	}

	logger.Info("rate limiter connected to redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("requests", cfg.Requests),
		slog.Duration("window", cfg.Window()))
	return client, nil
}

// Hit implements Counter. INCR and EXPIRE NX run in one MULTI/EXEC so a
// counter can never be left without a TTL. EXPIRE NX needs Redis 7.
func (c *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	full := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + key

	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, full)
		pipe.ExpireNX(ctx, full, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
