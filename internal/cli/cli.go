// Package cli implements the boxwrap command-line interface.
//
// This package provides commands for building box template sheets,
// rendering the top and bottom wraps from a colored template, and
// running the HTTP build service. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - template: Build the printable template sheet for a box
//   - wraps: Build the top and bottom wrap images from a template
//   - serve: Run the HTTP build service
//   - cache: Manage the local build cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --quiet (-q) to suppress everything below warnings. Loggers are
// passed through context.Context to allow structured progress
// tracking.
//
// # Example
//
//	import "github.com/mwoelke/boxwrap/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mwoelke/boxwrap/pkg/buildinfo"
	"github.com/mwoelke/boxwrap/pkg/cache"
	"github.com/mwoelke/boxwrap/pkg/config"
	"github.com/mwoelke/boxwrap/pkg/host"
	"github.com/mwoelke/boxwrap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "boxwrap"

	// defaultConfigFile is consulted when --config is not given. A
	// missing file silently falls back to built-in defaults.
	defaultConfigFile = "boxwrap.toml"
)

// Prefill values for the interactive dimension form, taken from the
// measurements of a common game box.
const (
	defaultLengthMM    = 75
	defaultWidthMM     = 100
	defaultHeightMM    = 104
	defaultThicknessMM = 2.0
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Execute builds the command tree and runs it with the given context.
// This is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	c := New(os.Stderr, LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}

// RootCommand creates the root cobra command with all subcommands
// registered. The persistent pre-run hook loads the config file,
// applies the logging flags, and attaches the logger to the command
// context so subcommands can retrieve it with loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose, quiet bool

	root := &cobra.Command{
		Use:           appName,
		Short:         "Boxwrap builds print-ready box art for tabletop game boxes",
		Long:          `Boxwrap generates the geometry for wrapping two-part cardboard game boxes: a template sheet to paint the six faces on, and the top and bottom wrap images that fold around the finished box, complete with glue flaps, fold marks, and cutting guides.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			if quiet {
				level = LogWarn
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))

			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log warnings and errors only")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./"+defaultConfigFile+" if present)")

	// Register all subcommands
	root.AddCommand(c.templateCommand())
	root.AddCommand(c.wrapsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file into c.cfg. An explicitly given
// path must exist; the default path may be absent.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		path = defaultConfigFile
	} else if _, err := os.Stat(path); err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner writing artifacts into outDir.
func (c *CLI) newRunner(outDir string, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, host.NewDirHost(outDir), c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/boxwrap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyWrapDefaults fills wrap parameter flags the user did not set
// from the loaded config file. Explicit flags win over the file, the
// file wins over the built-in defaults the flags were registered with.
func (c *CLI) applyWrapDefaults(cmd *cobra.Command, opts *pipeline.Options) {
	params := c.cfg.Wrap
	flags := cmd.Flags()
	if !flags.Changed("flap-size") {
		opts.FlapSize = params.FlapSize
	}
	if !flags.Changed("inside-size") {
		opts.InsideSize = params.InsideSize
	}
	if !flags.Changed("mark-size") {
		opts.MarkSize = params.MarkSize
	}
	if !flags.Changed("mark-distance") {
		opts.MarkDistance = params.MarkDistance
	}
}
