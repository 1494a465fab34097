package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pyopt/internal/config"
	"pyopt/internal/trace"
)

// resolveConfig layers persistent flags over a discovered pyopt.toml
// over built-in defaults, mirroring the teacher's project-manifest
// walk-up pattern.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return cfg, err
	}

	if lvl, _ := cmd.Flags().GetString("trace-level"); lvl != "" {
		cfg.TraceLevel = lvl
	}
	if dir, _ := cmd.Flags().GetString("cache-dir"); dir != "" {
		cfg.CacheDir = dir
	}
	return cfg, nil
}

func resolveColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func tracerFor(cfg config.Config) *trace.Collector {
	return trace.NewCollector(cfg.ResolvedTraceLevel())
}

func colorFor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	if !enabled {
		c.DisableColor()
	}
	return c
}
