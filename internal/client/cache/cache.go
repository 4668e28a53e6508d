// Package cache is the query cache behind the orchestration layer. Values
// are stored JSON-encoded under namespaced keys with a freshness window.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache stores JSON-encodable values by key.
type Cache interface {
	// Get decodes the value under key into dst. It reports false when the
	// key is absent or stale.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set stores value for ttl. A non-positive ttl stores nothing.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete drops keys; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Backend identifiers accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and tunes a backend.
type Config struct {
	Backend   string
	Prefix    string
	RedisAddr string
}

// New creates a cache for cfg.Backend (memory when empty).
func New(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemory(cfg.Prefix, nil), nil
	case BackendRedis:
		return NewRedis(ctx, cfg.RedisAddr, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Backend)
	}
}
