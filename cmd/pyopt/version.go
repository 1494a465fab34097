package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pyopt/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pyopt version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "pyopt %s\n", version.Version)
		if version.GitCommit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", version.GitCommit)
		}
		return nil
	},
}
