// Package dce implements the neededness-based dead-code elimination of
// spec.md §4.5: it drops assignments whose defined name is not needed
// anywhere, using internal/needed's analysis rather than plain
// liveness — safe on effectful code because neededness already accounts
// for necessity (R1) at the assignment's own line.
package dce

import (
	"pyopt/internal/ir"
	"pyopt/internal/needed"
)

// Block rewrites b, dropping every assign statement whose defined name
// is neither needed at its own line nor needed anywhere else in the
// unit (spec.md §4.5's two-part guard). An assign whose value is a
// div/mod-like binop is kept regardless of the guard's verdict (spec.md
// §9's Open Question, resolved as "keep": dropping such an assign would
// remove the division along with it, and with it the runtime trap on a
// zero divisor). All other
// statement kinds are preserved verbatim, in order. Returns the
// rewritten block and whether any statement was dropped.
func Block(b ir.BasicBlock, res *needed.Result) (ir.BasicBlock, bool) {
	out := make([]ir.Stmt, 0, len(b.Stmts))
	changed := false

	for i, s := range b.Stmts {
		if s.Kind == ir.StmtAssign && !isDivModAssign(s) {
			line := ir.Line{Block: b.Label, Index: i}
			name := s.Assign.Name
			if !res.In(line).Contains(name) && !res.NeededAnywhere(name) {
				changed = true
				continue
			}
		}
		out = append(out, s)
	}

	return ir.BasicBlock{Label: b.Label, Stmts: out}, changed
}

func isDivModAssign(s ir.Stmt) bool {
	v := s.Assign.Value
	return v.Kind == ir.ExprBinOp && v.BinOp.Op.IsDivLike()
}

// Body rewrites every block of a unit's body.
func Body(body []ir.BasicBlock, res *needed.Result) ([]ir.BasicBlock, bool) {
	out := make([]ir.BasicBlock, len(body))
	changed := false
	for i, b := range body {
		nb, c := Block(b, res)
		out[i] = nb
		changed = changed || c
	}
	return out, changed
}
