// Package cache stores rendered artifacts between runs.
//
// A template is deterministic for a given box, so the CLI and the API
// keep the encoded result under a dimension-derived key. Backends
// cover local use (FileCache), serve mode (RedisCache), and disabled
// caching (NullCache).
package cache

import (
	"context"
	"time"

	"github.com/mwoelke/boxwrap/pkg/geometry"
)

// TTLTemplate is the default lifetime of cached templates. Entries
// are deterministic, so the limit only bounds disk usage.
const TTLTemplate = 30 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys from build inputs.
type Keyer interface {
	// TemplateKey returns the key for a rendered template.
	TemplateKey(dims geometry.Dimensions) string
}

// DefaultKeyer hashes build inputs into stable keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// TemplateKey generates a key for template caching. Boxes with the
// same dimensions share an entry.
func (k *DefaultKeyer) TemplateKey(dims geometry.Dimensions) string {
	return hashKey("template", dims.Length, dims.Width, dims.Height)
}
