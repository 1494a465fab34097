package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pyopt/internal/ir"
	"pyopt/internal/optimizer"
	"pyopt/internal/trace"
)

type optimizeOutcome struct {
	prog *ir.Program
	err  error
}

// runOptimizeWithUI drives optimizer.Run on its own goroutine while a
// Bubble Tea program renders live per-unit progress off the events it
// emits, mirroring the teacher's cmd/surge/ui_runner.go pattern of
// pairing a background pipeline goroutine with a foreground TUI reading
// a channel fed by a ProgressSink.
func runOptimizeWithUI(ctx context.Context, title string, prog *ir.Program, tracer trace.Tracer) (*ir.Program, error) {
	units := prog.Units()
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Name
	}

	events := make(chan optimizer.ProgressEvent, 256)
	outcomeCh := make(chan optimizeOutcome, 1)

	go func() {
		out, err := optimizer.Run(ctx, prog, tracer, optimizer.ChannelProgressSink{Ch: events})
		outcomeCh <- optimizeOutcome{prog: out, err: err}
		close(events)
	}()

	model := newProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.prog, uiErr
	}
	return outcome.prog, outcome.err
}
