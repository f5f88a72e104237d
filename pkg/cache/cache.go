// Package cache stores resolved orders so repeated resolutions of the same
// manifests skip the sort.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry, for CLI use
//   - [RedisCache]: shared cache for multi-instance API deployments
//   - [MongoCache]: document store with a TTL index, for deployments that
//     already run MongoDB
//
// All backends implement [Cache] and are safe for concurrent use.
//
// # Keys
//
// Keys are produced by a [Keyer] from a fingerprint of the input manifests
// and the sort strategy. [ScopedKeyer] prefixes keys so several tenants can
// share a backend.
//
// A cache failure should never fail a resolution. Callers log and continue.
package cache

import (
	"context"
	"time"
)

// TTLOrder is how long resolved orders are kept.
const TTLOrder = 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// A missing or expired key is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
