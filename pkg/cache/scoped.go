package cache

import "github.com/mwoelke/boxwrap/pkg/geometry"

// ScopedKeyer wraps a Keyer with a prefix, keeping this application's
// entries apart from other tenants of a shared backend.
//
// Example usage:
//
//	// All keys under boxwrap: on a shared redis
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "boxwrap:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TemplateKey generates a prefixed key for template caching.
func (k *ScopedKeyer) TemplateKey(dims geometry.Dimensions) string {
	return k.prefix + k.inner.TemplateKey(dims)
}
