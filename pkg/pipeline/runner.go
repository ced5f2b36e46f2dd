package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/mwoelke/boxwrap/pkg/cache"
	"github.com/mwoelke/boxwrap/pkg/geometry"
	"github.com/mwoelke/boxwrap/pkg/host"
	"github.com/mwoelke/boxwrap/pkg/observability"
	"github.com/mwoelke/boxwrap/pkg/template"
	"github.com/mwoelke/boxwrap/pkg/wrap"
)

// Runner executes builds with caching and artifact publication.
// Both CLI and API use this to avoid duplicating the caching logic.
//
// The Runner is stateless except for the cache, host, and logger - it
// doesn't store build results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Host   host.Host
	Logger *log.Logger
}

// NewRunner creates a runner.
// If cache is nil, a NullCache is used (caching disabled).
// If keyer is nil, a DefaultKeyer is used.
// If h is nil, artifacts go to an in-memory host.
func NewRunner(c cache.Cache, keyer cache.Keyer, h host.Host, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if h == nil {
		h = host.NewMemoryHost()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Host:   h,
		Logger: logger,
	}
}

// Template builds the box template and publishes it.
func (r *Runner) Template(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	buildStart := time.Now()
	art, hit, err := r.TemplateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = []*host.Artifact{art}
	result.Stats.BuildTime = time.Since(buildStart)
	result.CacheInfo.TemplateHit = hit

	opts.Logger.Info("built template",
		"size", art.Image.Bounds().Size(),
		"cached", hit,
		"duration", result.Stats.BuildTime)

	if err := r.publish(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// TemplateWithCacheInfo builds the template with caching and reports
// whether the image came from cache. Nothing is published.
func (r *Runner) TemplateWithCacheInfo(ctx context.Context, opts Options) (*host.Artifact, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	dims := opts.Dimensions()
	key := r.Keyer.TemplateKey(dims)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if art, ok := r.loadTemplate(ctx, key); ok {
			observability.Cache().OnCacheHit(ctx, KeyTypeTemplate)
			return art, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, KeyTypeTemplate)
	}

	observability.Builder().OnTemplateStart(ctx, dims.Length, dims.Width, dims.Height)
	start := time.Now()
	art, err := template.Build(dims)
	var size image.Point
	if art != nil {
		size = art.Image.Bounds().Size()
	}
	observability.Builder().OnTemplateDone(ctx, size.X, size.Y, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.storeTemplate(ctx, key, art, opts.TTL)
	return art, false, nil
}

// Wraps builds both wrap images from a filled template and publishes
// them, top first.
func (r *Runner) Wraps(ctx context.Context, tmpl image.Image, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}
	dims := opts.Dimensions()
	params := opts.Params()

	buildStart := time.Now()
	for _, half := range []geometry.Half{geometry.HalfTop, geometry.HalfBottom} {
		observability.Builder().OnWrapStart(ctx, half.String())
		halfStart := time.Now()
		art, err := wrap.BuildHalf(tmpl, dims, opts.Thickness, half, params)
		observability.Builder().OnWrapDone(ctx, half.String(), time.Since(halfStart), err)
		if err != nil {
			return nil, err
		}
		result.Artifacts = append(result.Artifacts, art)
	}
	result.Stats.BuildTime = time.Since(buildStart)

	opts.Logger.Info("built wraps",
		"thickness", opts.Thickness,
		"duration", result.Stats.BuildTime)

	if err := r.publish(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// templateEntry is the wire form of a cached template.
type templateEntry struct {
	PNG    []byte           `json:"png"`
	Guides []geometry.Guide `json:"guides"`
}

// loadTemplate reads and decodes a cache entry. Entries that fail to
// decode count as misses.
func (r *Runner) loadTemplate(ctx context.Context, key string) (*host.Artifact, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		observability.Cache().OnCacheError(ctx, KeyTypeTemplate, err)
		return nil, false
	}
	if !hit {
		return nil, false
	}

	var entry templateEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	img, err := imaging.Decode(bytes.NewReader(entry.PNG))
	if err != nil {
		return nil, false
	}
	return host.NewArtifact(template.Name, img, entry.Guides), true
}

// storeTemplate encodes an artifact into the cache. Failures only
// cost the next run a rebuild, so they are reported through the hooks
// and otherwise ignored.
func (r *Runner) storeTemplate(ctx context.Context, key string, art *host.Artifact, ttl time.Duration) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, art.Image, imaging.PNG); err != nil {
		return
	}
	data, err := json.Marshal(templateEntry{PNG: buf.Bytes(), Guides: art.Guides})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, KeyTypeTemplate, err)
		return
	}
	observability.Cache().OnCacheSet(ctx, KeyTypeTemplate, len(data))
}

// publish registers every artifact with the host and collects the
// returned references.
func (r *Runner) publish(ctx context.Context, result *Result) error {
	start := time.Now()
	for _, art := range result.Artifacts {
		ref, err := r.Host.Publish(ctx, art)
		if err != nil {
			return fmt.Errorf("publish %s: %w", art.Name, err)
		}
		result.Refs = append(result.Refs, ref)
	}
	result.Stats.PublishTime = time.Since(start)
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
