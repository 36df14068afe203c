package config

// Redis backs the per-user HTTP response cache. The client is optional: when
// no REDIS_ADDR is configured or the server cannot be reached at startup,
// NewRedisClient returns nil and callers disable caching.

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from the loaded configuration
// and verifies connectivity with a short ping. A nil return means caching is
// unavailable and the application should run without it.
func NewRedisClient(cfg Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
