// Package db defines the key-value store contract used by the embedding
// cache.
package db

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound signals a missing key, i.e. a cache miss.
var ErrKeyNotFound = errors.New("key not found")

// Store is a minimal key-value surface with TTL support.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close()
}
