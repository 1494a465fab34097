// Command pyopt is a thin CLI front end over the optimizer library
// (spec.md §6): the library itself has no CLI of its own, but a
// command-line surface is useful for exercising it the way the
// lowering/codegen collaborators would, against msgpack-encoded
// Program fixtures.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"pyopt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pyopt",
	Short: "IR-level optimizer for a lowered Python-like language",
	Long:  "pyopt runs reaching-definitions, neededness, constant folding and dead-code elimination to a fixed point over a lowered Program IR.",
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("trace-level", "", "diagnostic trace level (off|phase|detail)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("cache-dir", "", "override the resolved cache directory")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
