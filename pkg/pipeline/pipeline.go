// Package pipeline runs the template and wrap builds behind every
// entry point.
//
// The CLI and the API both execute builds through a Runner, which adds
// caching, artifact publication, and instrumentation around the pure
// builder packages. Centralizing this logic keeps behavior identical
// across entry points.
//
// # Architecture
//
// A build has two stages:
//
//  1. Build: compute the layout and composite the image (pkg/template, pkg/wrap)
//  2. Publish: register each artifact with the configured host (pkg/host)
//
// Template builds are cached: the encoded PNG and the guide list are
// stored under a dimension-derived key, since the result depends on
// nothing else. Wrap builds are never cached; a key would have to
// cover the full template image, and hashing that costs about as much
// as compositing.
//
// # Usage
//
// Create a Runner and execute a build:
//
//	runner := pipeline.NewRunner(cache, nil, host, logger)
//	opts := pipeline.Options{Length: 75, Width: 100, Height: 104}
//	result, err := runner.Template(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path := result.Refs[0]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mwoelke/boxwrap/pkg/cache"
	"github.com/mwoelke/boxwrap/pkg/geometry"
	"github.com/mwoelke/boxwrap/pkg/host"
)

// KeyTypeTemplate labels template cache events in the observability
// hooks.
const KeyTypeTemplate = "template"

// Options contains all configuration for a build.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Box dimensions in millimeters.
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Thickness is the cardboard thickness in millimeters (wraps only).
	Thickness float64 `json:"thickness,omitempty"`

	// Wrap layout lengths in millimeters. Zero values are honored, so
	// callers wanting the standard lengths fill these from
	// geometry.DefaultParams or the loaded config.
	FlapSize     float64 `json:"flap_size,omitempty"`
	InsideSize   float64 `json:"inside_size,omitempty"`
	MarkSize     float64 `json:"mark_size,omitempty"`
	MarkDistance float64 `json:"mark_distance,omitempty"`

	// Refresh skips the cache lookup and overwrites the entry.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)

	// TTL bounds the cached template lifetime. Zero means
	// cache.TTLTemplate.
	TTL    time.Duration `json:"-"`
	Logger *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Dimensions returns the box dimensions.
func (o *Options) Dimensions() geometry.Dimensions {
	return geometry.Dimensions{Length: o.Length, Width: o.Width, Height: o.Height}
}

// Params returns the wrap layout parameters.
func (o *Options) Params() geometry.Params {
	return geometry.Params{
		FlapSize:     o.FlapSize,
		InsideSize:   o.InsideSize,
		MarkSize:     o.MarkSize,
		MarkDistance: o.MarkDistance,
	}
}

// ValidateAndSetDefaults checks the build inputs and applies runtime
// defaults. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Dimensions().Validate(); err != nil {
		return err
	}
	if err := geometry.ValidateThickness(o.Thickness); err != nil {
		return err
	}
	if err := o.Params().Validate(); err != nil {
		return err
	}

	if o.TTL == 0 {
		o.TTL = cache.TTLTemplate
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Result contains the outputs of a build.
type Result struct {
	// Artifacts holds the rendered outputs: one template, or the top
	// and bottom wraps in that order.
	Artifacts []*host.Artifact

	// Refs are the host references for each artifact, parallel to
	// Artifacts.
	Refs []string

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the template came from cache.
	CacheInfo CacheInfo
}

// Stats contains build execution statistics.
type Stats struct {
	BuildTime   time.Duration
	PublishTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	TemplateHit bool // Whether the template image came from cache
}
