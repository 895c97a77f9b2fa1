package adapter

import (
	"context"
	"quizforge/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCacheAdapter backs the domain.Cache port with Redis. It holds cached
// quiz lookups and generation candidates keyed per internal/cache.
type RedisCacheAdapter struct {
	client *redis.Client
}

// NewRedisCacheAdapter wraps an already-connected client.
func NewRedisCacheAdapter(client *redis.Client) domain.Cache {
	return &RedisCacheAdapter{client: client}
}

// Get returns the value under key, translating redis.Nil to the port's
// ErrCacheMiss so callers never see driver errors.
func (r *RedisCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", domain.ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

// Set stores value under key with the given expiration.
func (r *RedisCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Delete removes key. DEL of an absent key is a no-op, matching the port.
func (r *RedisCacheAdapter) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Ping reports whether the Redis server is reachable.
func (r *RedisCacheAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
