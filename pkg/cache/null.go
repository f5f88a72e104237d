package cache

import (
	"context"
	"time"
)

// NullCache disables order caching. Every lookup misses, so each
// resolution runs the sort; it backs `stackorder sort --no-cache`,
// `serve --cache none` and runners created without a cache.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error { return nil }
func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
