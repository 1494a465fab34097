// Package optimizer implements the fixed-point driver of spec.md §4.6:
// it alternates constant folding, neededness analysis, and neededness
// DCE over each independently-optimized unit (function body, class
// method body, or the program's top-level body) until no unit changes
// on an iteration. Reaching-definitions is also run each iteration when
// the tracer is at trace.Detail, purely for diagnostic tracing (spec.md
// §4.6's driver pseudocode marks it "currently used for diagnostic
// tracing only"); at lower levels it is not run.
package optimizer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"pyopt/internal/cfa"
	"pyopt/internal/dce"
	"pyopt/internal/fold"
	"pyopt/internal/ir"
	"pyopt/internal/needed"
	"pyopt/internal/trace"
)

// Run optimizes prog to a fixed point and returns a structurally
// equivalent, optimized Program. Independent units are optimized
// concurrently (spec.md §4.7); each unit's own saturation loop remains
// exactly as single-threaded as spec.md §5 describes. If any unit's
// loop reports an InvariantError, that error is returned; sibling units
// that have not started yet are skipped, while units already running
// finish their own loop (the loop itself does not check for
// cancellation).
//
// progress, if non-nil, receives a live stream of per-unit ProgressEvents
// as units move through queued/working/done — a caller such as the CLI
// can drive a progress display off it without perturbing the fixed-point
// loop itself. A nil progress is the common case and costs nothing.
func Run(ctx context.Context, prog *ir.Program, tracer trace.Tracer, progress ProgressSink) (*ir.Program, error) {
	if tracer == nil {
		tracer = trace.Nop
	}

	units := prog.Units()
	optimized := make([][]ir.BasicBlock, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	for i, u := range units {
		emitProgress(progress, u.Name, "", StatusQueued, 0)
		g.Go(func(i int, u ir.Unit) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				body, err := optimizeUnit(u.Name, u.Inits, u.Body, tracer, progress)
				if err != nil {
					return err
				}
				optimized[i] = body
				return nil
			}
		}(i, u))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rebuild(prog, optimized), nil
}

// optimizeUnit runs the per-unit fixed-point loop of spec.md §4.6.
func optimizeUnit(name string, inits []ir.VarInit, body []ir.BasicBlock, tracer trace.Tracer, progress ProgressSink) ([]ir.BasicBlock, error) {
	emitProgress(progress, name, "", StatusWorking, 0)

	iteration := 0
	for {
		if tracer.Level() == trace.Detail {
			res := cfa.Run(inits, body)
			tracer.Trace(trace.Event{Unit: name, Iteration: iteration, CFADump: cfa.Dump(res)})
		}

		changed := false

		emitProgress(progress, name, StageFold, StatusWorking, iteration)
		folded := make([]ir.BasicBlock, len(body))
		for bi, b := range body {
			stmts := make([]ir.Stmt, len(b.Stmts))
			for si, s := range b.Stmts {
				ns, ok := fold.Stmt(s)
				if ok {
					changed = true
				}
				stmts[si] = ns
			}
			folded[bi] = ir.BasicBlock{Label: b.Label, Stmts: stmts}
		}
		body = folded

		if err := validate(name, body); err != nil {
			emitProgress(progress, name, StageFold, StatusError, iteration)
			return nil, err
		}

		emitProgress(progress, name, StageNeeded, StatusWorking, iteration)
		nres := needed.Run(body)

		emitProgress(progress, name, StageDCE, StatusWorking, iteration)
		var changedByDCE bool
		body, changedByDCE = dce.Body(body, nres)
		changed = changed || changedByDCE

		tracer.Trace(trace.Event{Unit: name, Iteration: iteration, Changed: changed})
		iteration++

		if !changed {
			emitProgress(progress, name, StageDCE, StatusDone, iteration)
			return body, nil
		}
	}
}

// rebuild reassembles a Program from optimized unit bodies, in the same
// order Program.Units produced them: top-level body first, then
// functions, then class methods.
func rebuild(prog *ir.Program, optimized [][]ir.BasicBlock) *ir.Program {
	out := &ir.Program{
		Inits: prog.Inits,
		Annot: prog.Annot,
	}

	idx := 0
	out.Body = optimized[idx]
	idx++

	out.Funs = make([]ir.FunDef, len(prog.Funs))
	for i, f := range prog.Funs {
		out.Funs[i] = ir.FunDef{Name: f.Name, Inits: f.Inits, Body: optimized[idx], Annot: f.Annot}
		idx++
	}

	out.Classes = make([]ir.Class, len(prog.Classes))
	for ci, c := range prog.Classes {
		methods := make([]ir.FunDef, len(c.Methods))
		for mi, m := range c.Methods {
			methods[mi] = ir.FunDef{Name: m.Name, Inits: m.Inits, Body: optimized[idx], Annot: m.Annot}
			idx++
		}
		out.Classes[ci] = ir.Class{Name: c.Name, Methods: methods, Annot: c.Annot}
	}

	return out
}
