package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"pyopt/internal/cfa"
	"pyopt/internal/ir"
	"pyopt/internal/liveness"
	"pyopt/internal/needed"
	"pyopt/internal/store"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <in>",
	Short: "Run CFA, liveness and neededness once and print a diagnostic report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		useColor := resolveColor(cmd)

		prog, err := store.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("load %q: %w", args[0], err)
		}

		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).
			Padding(0, 1).Border(lipgloss.RoundedBorder())
		fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(fmt.Sprintf("pyopt dump: %s", args[0])))

		nameColor := colorFor(useColor, color.FgCyan, color.Bold)

		for _, u := range prog.Units() {
			nameColor.Fprintf(cmd.OutOrStdout(), "== %s ==\n", u.Name)
			renderUnit(cmd, u.Inits, u.Body)
		}
		return nil
	},
}

func renderUnit(cmd *cobra.Command, inits []ir.VarInit, body []ir.BasicBlock) {
	out := cmd.OutOrStdout()

	reach := cfa.Run(inits, body)
	fmt.Fprint(out, cfa.Dump(reach))

	live := liveness.Run(body)
	need := needed.Run(body)

	col1, col2 := 16, 32
	header := padTo("line", col1) + padTo("live-in", col2) + "needed-in"
	fmt.Fprintln(out, header)

	for _, b := range body {
		for i := range b.Stmts {
			l := ir.Line{Block: b.Label, Index: i}
			liveNames := sortedKeys(live.In(l))
			neededNames := sortedKeys(need.In(l))
			fmt.Fprintln(out,
				padTo(l.LineLabel(), col1)+
					padTo("{"+strings.Join(liveNames, ",")+"}", col2)+
					"{"+strings.Join(neededNames, ",")+"}")
		}
	}
}

func padTo(s string, width int) string {
	if runewidth.StringWidth(s) >= width {
		return runewidth.Truncate(s, width-1, "") + " "
	}
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

func sortedKeys(s map[string]struct{}) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
