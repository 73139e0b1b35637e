package redis

import (
	"context"
	"time"

	"github.com/iamasit07/quadtoe/internal/domain"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Connect opens a client for addr and pings it. An empty addr disables
// Redis and returns (nil, nil); an unreachable server is reported as an
// error so the caller can run without the cache.
func Connect(ctx context.Context, addr, password string, logger zerolog.Logger) (*redis.Client, error) {
	if addr == "" {
		logger.Info().Msg("redis disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "ping redis at %s", addr)
	}

	logger.Info().Str("addr", addr).Msg("redis connected")
	return client, nil
}

// RedisCache stores engine decisions in Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Get returns domain.ErrCacheMiss for unknown keys.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrCacheMiss
	}
	return value, err
}
