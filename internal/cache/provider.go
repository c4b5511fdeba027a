// Package cache memoises serialised analysis results behind a small
// key/value interface with per-entry TTLs.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Provider is the minimal cache surface the engine needs.
type Provider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Close() error
}

// ErrCacheMiss signals that a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Noop implements Provider but never stores data.
type Noop struct{}

// Get always returns ErrCacheMiss.
func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrCacheMiss }

// Set discards the value.
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Del is a no-op.
func (Noop) Del(context.Context, string) error { return nil }

// Close is a no-op.
func (Noop) Close() error { return nil }

// Key builds the cache key for an operation and its arguments,
// op:days:min_occurrences.
func Key(op string, days, minOccurrences int) string {
	return fmt.Sprintf("%s:%d:%d", op, days, minOccurrences)
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config selects and sizes a backend.
type Config struct {
	Backend       string
	TTL           time.Duration
	Size          int
	RedisAddr     string
	RedisDB       int
	RedisPassword string
	KeyPrefix     string
}

// Open builds the provider named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemory(cfg.Size, cfg.TTL), nil
	case BackendRedis:
		return NewRedis(ctx, RedisConfig{
			Addr:      cfg.RedisAddr,
			DB:        cfg.RedisDB,
			Password:  cfg.RedisPassword,
			KeyPrefix: cfg.KeyPrefix,
		})
	case BackendNone:
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
