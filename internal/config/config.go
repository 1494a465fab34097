// Package config loads the CLI's optional pyopt.toml configuration,
// discovered by walking up from the working directory exactly as the
// teacher's cmd/surge/project_manifest.go findSurgeToml does for
// surge.toml. The optimizer library itself takes no configuration
// (spec.md §6: "no environment variables, no CLI"); everything here is
// cmd/pyopt-only plumbing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"pyopt/internal/trace"
)

// Config is the CLI's resolved configuration, after merging flags over
// a discovered pyopt.toml over built-in defaults.
type Config struct {
	TraceLevel string `toml:"trace_level"`
	Color      bool   `toml:"color"`
	CacheDir   string `toml:"cache_dir"`
}

// Default returns the built-in defaults, used when no pyopt.toml is
// found and no flags override them.
func Default() Config {
	return Config{TraceLevel: "off", Color: true, CacheDir: defaultCacheDir()}
}

// ResolvedTraceLevel parses c.TraceLevel into a trace.Level.
func (c Config) ResolvedTraceLevel() trace.Level {
	return trace.ParseLevel(c.TraceLevel)
}

func defaultCacheDir() string {
	if dir := os.Getenv("PYOPT_CACHE_DIR"); dir != "" {
		return dir
	}
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil {
			base = filepath.Join(home, ".cache")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "pyopt")
}

// findManifest walks up from startDir looking for a pyopt.toml,
// mirroring cmd/surge/project_manifest.go's findSurgeToml.
func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "pyopt.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load discovers and parses pyopt.toml starting from startDir, layering
// it over Default(). If no manifest is found, Default() is returned
// unchanged.
func Load(startDir string) (Config, error) {
	cfg := Default()

	path, ok, err := findManifest(startDir)
	if err != nil {
		return cfg, err
	}
	if !ok {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %q: %w", path, err)
	}
	return cfg, nil
}
