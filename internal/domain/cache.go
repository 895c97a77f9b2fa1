package domain

import (
	"context"
	"time"
)

// CacheError is the error type the cache port reports.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss signals that the requested key holds no entry.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the port the quiz and generation services use for cached quizzes
// and generation candidates. The production implementation is the Redis
// adapter; tests substitute in-memory fakes.
type Cache interface {
	// Get returns the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key for the given expiration, replacing any
	// existing entry.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete removes key. Deleting an absent key is not an error, which
	// keeps cache invalidation idempotent.
	Delete(ctx context.Context, key string) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
