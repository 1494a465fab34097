package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pyopt/internal/ir"
	"pyopt/internal/optimizer"
	"pyopt/internal/store"
)

var optimizeOut string

func init() {
	optimizeCmd.Flags().StringVar(&optimizeOut, "out", "", "output path (defaults to overwriting the input file)")
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize <in>",
	Short: "Run the fixed-point optimizer over a msgpack-encoded Program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		useColor := resolveColor(cmd)

		prog, err := store.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("load %q: %w", args[0], err)
		}

		tracer := tracerFor(cfg)

		var out *ir.Program
		if useColor && isTerminal(os.Stdout) {
			out, err = runOptimizeWithUI(context.Background(), args[0], prog, tracer)
		} else {
			out, err = optimizer.Run(context.Background(), prog, tracer, nil)
		}
		if err != nil {
			return err
		}

		outPath := optimizeOut
		if outPath == "" {
			outPath = args[0]
		}
		if err := store.SaveFile(outPath, out); err != nil {
			return fmt.Errorf("save %q: %w", outPath, err)
		}

		ok := colorFor(useColor, color.FgGreen, color.Bold)
		ok.Fprintf(cmd.OutOrStdout(), "optimized")
		fmt.Fprintf(cmd.OutOrStdout(), " %s -> %s (%d iteration events)\n", args[0], outPath, len(tracer.Events))
		return nil
	},
}
