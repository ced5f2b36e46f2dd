package cache

import (
	"context"
	"time"

	"github.com/mwoelke/boxwrap/pkg/observability"
)

// Fallback wraps a backend so its failures degrade to cache misses
// instead of failing the build. Errors are reported through the cache
// hooks. Useful in serve mode, where an unreachable redis must not
// take template requests down with it.
type Fallback struct {
	inner Cache
	kind  string
}

// NewFallback wraps inner. The kind labels hook events ("template").
func NewFallback(inner Cache, kind string) Cache {
	return &Fallback{inner: inner, kind: kind}
}

// Get returns a miss when the backend fails.
func (c *Fallback) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err != nil {
		observability.Cache().OnCacheError(ctx, c.kind, err)
		return nil, false, nil
	}
	return data, ok, nil
}

// Set reports backend failures through the hooks and swallows them.
func (c *Fallback) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.inner.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, c.kind, err)
	}
	return nil
}

// Delete reports backend failures through the hooks and swallows them.
func (c *Fallback) Delete(ctx context.Context, key string) error {
	if err := c.inner.Delete(ctx, key); err != nil {
		observability.Cache().OnCacheError(ctx, c.kind, err)
	}
	return nil
}

// Close passes through to the backend.
func (c *Fallback) Close() error {
	return c.inner.Close()
}

// Ensure Fallback implements Cache.
var _ Cache = (*Fallback)(nil)
