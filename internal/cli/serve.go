package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwoelke/boxwrap/internal/api"
	"github.com/mwoelke/boxwrap/pkg/cache"
	"github.com/mwoelke/boxwrap/pkg/host"
	"github.com/mwoelke/boxwrap/pkg/pipeline"
)

// serveArtifactLimit caps how many built images the server keeps
// available for download.
const serveArtifactLimit = 128

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redis    string // redis address for the template cache
	cacheDir string // file cache directory
	logFile  string // rotating request log file
}

// serveCommand creates the serve command for running the HTTP build
// service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP build service",
		Long: `Run the HTTP build service.

The server exposes the builders over a JSON API:

  GET  /healthz               liveness probe
  POST /v1/template           build a template from JSON dimensions
  POST /v1/wraps              build both wraps from a multipart template
  GET  /v1/artifacts/{id}     download a built image as PNG

Templates are cached under a dimension hash: in redis when --redis is
given, on disk otherwise. Flags override the [serve] section of the
config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address (host:port) for the template cache")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "directory for the file cache")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write request logs to this rotating file")

	return cmd
}

// runServe wires cache, runner, and router together and serves until
// the context is canceled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	serveCfg := c.cfg.Serve
	if opts.addr == "" {
		opts.addr = serveCfg.Addr
	}
	if opts.redis == "" {
		opts.redis = serveCfg.Redis
	}
	if opts.cacheDir == "" {
		opts.cacheDir = serveCfg.CacheDir
	}

	store, err := c.newServeCache(ctx, opts)
	if err != nil {
		return err
	}

	// A redis instance may be shared with other applications; the file
	// cache directory is ours alone.
	var keyer cache.Keyer
	if opts.redis != "" {
		keyer = cache.NewScopedKeyer(nil, "boxwrap:")
	}

	requestLogger := c.Logger
	if opts.logFile != "" {
		requestLogger = newRotatingLogger(opts.logFile, c.Logger.GetLevel())
		c.Logger.Info("writing request logs", "file", opts.logFile)
	}

	artifacts := host.NewMemoryHost()
	artifacts.Limit = serveArtifactLimit
	runner := pipeline.NewRunner(store, keyer, artifacts, c.Logger)
	defer runner.Close()

	server := api.NewServer(runner, artifacts, requestLogger, c.cfg.Wrap)
	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	c.Logger.Info("serving", "addr", opts.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		c.Logger.Info("server stopped")
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve on %s: %w", opts.addr, err)
	}
}

// newServeCache picks the template cache backend: redis when
// configured, the file cache otherwise. The backend is wrapped so
// failures at request time degrade to cache misses instead of failed
// builds.
func (c *CLI) newServeCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	var store cache.Cache
	if opts.redis != "" {
		prog := newProgress(c.Logger)
		rc, err := cache.NewRedisCache(ctx, opts.redis)
		if err != nil {
			return nil, err
		}
		prog.done(fmt.Sprintf("Connected to redis at %s", opts.redis))
		store = rc
	} else {
		dir := opts.cacheDir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("template cache", "backend", "file", "dir", dir)
		store = fc
	}
	return cache.NewFallback(store, pipeline.KeyTypeTemplate), nil
}
