// Package cache provides the Redis connection.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/recurring/config"
)

// Redis wraps the Redis client.
type Redis struct {
	client *redis.Client
}

// NewRedisConnection creates a new Redis connection from a redis:// URL.
func NewRedisConnection(cfg *config.RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("Redis connection established", "addr", opts.Addr, "db", opts.DB)

	return &Redis{
		client: client,
	}, nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Client returns the underlying Redis client.
func (r *Redis) Client() *redis.Client {
	return r.client
}

// HealthCheck performs a health check on the Redis connection.
func (r *Redis) HealthCheck() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		slog.Error("Redis health check failed", "error", err)
		return false
	}
	return true
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}
	slog.Info("Redis connection closed")
	return nil
}
