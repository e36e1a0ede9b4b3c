// Package cache stores rendered diagrams so that identical render requests
// skip graphviz layout.
//
// Keys are content hashes built with [Key] from the serialized graph and the
// render options, so an entry never goes stale; the TTL only bounds space.
//
// Three backends implement [Cache]:
//   - [NullCache] stores nothing (the default)
//   - [FileCache] keeps entries under a directory, for the CLI
//   - [RedisCache] shares entries between server replicas
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
