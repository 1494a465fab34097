// Package liveness implements the backward liveness analysis of spec.md
// §4.2. It is produced but not consumed by the rewriter in its current
// form (spec.md §1: "kept as an orthogonal analysis") — the DCE pass
// uses internal/needed instead, a refinement of liveness that also
// tracks effect-observing uses.
package liveness

import (
	"pyopt/internal/ir"
	"pyopt/internal/setutil"
)

// Result maps every statement's Line to the set of variable names live
// on entry to it.
type Result struct {
	LiveIn map[ir.Line]setutil.StringSet
}

// In returns the live-in set at l, or the empty set if l has no entry.
func (r *Result) In(l ir.Line) setutil.StringSet {
	if s, ok := r.LiveIn[l]; ok {
		return s
	}
	return setutil.StringSet{}
}

// entryLine is the synthetic entry address of a block, used to look up
// its live-in set when resolving a jump/branch target.
func entryLine(block string) ir.Line { return ir.Line{Block: block, Index: 0} }

// Run computes liveness for one unit's basic blocks by saturating a
// backward transfer function to a fixed point: blocks are visited in
// reverse order, statements within a block in reverse index, repeated
// until no live-in set changes.
func Run(body []ir.BasicBlock) *Result {
	r := &Result{LiveIn: make(map[ir.Line]setutil.StringSet)}
	if len(body) == 0 {
		return r
	}

	uses := func(s *ir.Stmt) setutil.StringSet {
		out := setutil.StringSet{}
		s.Uses(func(name string) { out.Add(name) })
		return out
	}

	for {
		changed := false

		for bi := len(body) - 1; bi >= 0; bi-- {
			b := &body[bi]
			for i := len(b.Stmts) - 1; i >= 0; i-- {
				s := &b.Stmts[i]
				line := ir.Line{Block: b.Label, Index: i}

				var successorLive setutil.StringSet
				if i+1 < len(b.Stmts) {
					successorLive = r.In(ir.Line{Block: b.Label, Index: i + 1})
				} else {
					successorLive = setutil.StringSet{}
				}

				var next setutil.StringSet
				switch s.Kind {
				case ir.StmtReturn:
					next = uses(s)
				case ir.StmtIfJmp:
					next = r.In(entryLine(s.IfJmp.Then)).Union(r.In(entryLine(s.IfJmp.Else))).Union(uses(s))
				case ir.StmtJmp:
					next = r.In(entryLine(s.Jmp.Label))
				case ir.StmtExpr:
					next = uses(s)
				case ir.StmtPass:
					next = successorLive
				case ir.StmtStore:
					next = uses(s).Union(successorLive)
				case ir.StmtAssign:
					next = successorLive.Without(s.Assign.Name).Union(uses(s))
				default:
					next = successorLive
				}

				if existing, ok := r.LiveIn[line]; !ok || !next.Equal(existing) {
					r.LiveIn[line] = next
					changed = true
				}
			}
		}

		if !changed {
			break
		}
	}

	return r
}
