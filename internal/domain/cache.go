package domain

import (
	"context"
	"time"
)

// CacheError is a cache outcome that callers branch on.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned by Cache.Get for absent or expired keys.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the key/value port behind the generation cache and the result
// store. Values are opaque strings; expiry is per key.
type Cache interface {
	// Get returns ErrCacheMiss when key is absent.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key. A zero expiration keeps it until evicted.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
