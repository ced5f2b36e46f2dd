// Package config loads boxwrap.toml files.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mwoelke/boxwrap/pkg/geometry"
)

// Config carries the file-backed settings. Command line flags override
// individual fields after loading.
type Config struct {
	Wrap  geometry.Params `toml:"wrap"`
	Serve Serve           `toml:"serve"`
}

// Serve holds the HTTP server settings.
type Serve struct {
	Addr     string `toml:"addr"`
	CacheDir string `toml:"cache_dir"`
	Redis    string `toml:"redis"`
}

// Default returns the built-in settings used when no file is present.
func Default() Config {
	return Config{
		Wrap:  geometry.DefaultParams(),
		Serve: Serve{Addr: ":8080"},
	}
}

// Load reads a TOML file on top of the defaults. Fields absent from
// the file keep their default values, and a missing file returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
