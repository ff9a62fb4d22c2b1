package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flashgen/internal/config"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// ErrRedisNotConfigured means redis.address is empty; callers run uncached.
var ErrRedisNotConfigured = errors.New("redis address is not configured")

// NewRedisClient dials Redis and verifies it answers PING within
// connectTimeout. The client is closed again on failure.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrRedisNotConfigured
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}
	return client, nil
}
