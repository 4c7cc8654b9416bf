// Package config reads the per-project modforge configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the project config file, looked up at the project root.
const FileName = "modforge.toml"

// ErrConfigNotFound is returned by Load when the project has no config file.
var ErrConfigNotFound = errors.New("config not found")

// DefaultLoaders are assumed when the config does not list any.
var DefaultLoaders = []string{"fabric", "forge", "neoforge"}

// Config represents modforge.toml.
type Config struct {
	// ModID is the registry namespace ("testmod").
	ModID string `toml:"mod_id"`

	// PackageName is the root Java/Kotlin package ("com.testmod").
	PackageName string `toml:"package_name"`

	// ModName is the human-readable mod name.
	ModName string `toml:"mod_name"`

	// Loaders lists the mod loaders the project targets.
	Loaders []string `toml:"loaders"`

	// Rename controls the rename engine.
	Rename RenameConfig `toml:"rename"`
}

// RenameConfig holds rename-engine settings.
type RenameConfig struct {
	// History enables the rename history database. Defaults to true.
	History *bool `toml:"history"`

	// Exclude lists extra project-relative directories skipped by reference search.
	Exclude []string `toml:"exclude"`
}

// Path returns the config path for a project root.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, FileName)
}

// Load loads the config from a project root.
func Load(projectRoot string) (*Config, error) {
	path := Path(projectRoot)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	return LoadFrom(path)
}

// LoadFrom loads the config from a specific path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.ModID = strings.TrimSpace(cfg.ModID)
	cfg.PackageName = strings.TrimSpace(cfg.PackageName)
	return &cfg, nil
}

// Validate checks the fields the rename engine depends on.
func (c *Config) Validate() error {
	if c.ModID == "" {
		return fmt.Errorf("mod_id is required in %s", FileName)
	}
	if c.PackageName == "" {
		return fmt.Errorf("package_name is required in %s", FileName)
	}
	return nil
}

// LoaderNames returns the configured loaders, or DefaultLoaders.
func (c *Config) LoaderNames() []string {
	if len(c.Loaders) == 0 {
		return append([]string(nil), DefaultLoaders...)
	}
	out := make([]string, 0, len(c.Loaders))
	for _, l := range c.Loaders {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// HistoryEnabled reports whether renames are recorded in the history database.
func (c *Config) HistoryEnabled() bool {
	if c.Rename.History == nil {
		return true
	}
	return *c.Rename.History
}
