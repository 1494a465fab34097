// Package needed implements the neededness analysis of spec.md §4.3: a
// refinement of liveness that tracks which variables are required to
// compute the program's observable effects (returns, I/O, and other
// side-effecting operations), following the R1/R2/R3 rules attributed
// in spec.md to Simmons' CMU 15-411 lecture notes. It is the analysis
// the DCE pass (internal/dce) actually consumes.
package needed

import (
	"pyopt/internal/ir"
	"pyopt/internal/setutil"
)

// Result maps every statement's Line to the set of variable names
// needed on entry to it.
type Result struct {
	NeededIn map[ir.Line]setutil.StringSet
}

// In returns the needed-in set at l, or the empty set if l has no entry.
func (r *Result) In(l ir.Line) setutil.StringSet {
	if s, ok := r.NeededIn[l]; ok {
		return s
	}
	return setutil.StringSet{}
}

// NeededAnywhere reports whether name appears in the needed-in set of
// any Line in r. Used by spec.md §4.5's second DCE guard.
func (r *Result) NeededAnywhere(name string) bool {
	for _, s := range r.NeededIn {
		if s.Contains(name) {
			return true
		}
	}
	return false
}

func entryLine(block string) ir.Line { return ir.Line{Block: block, Index: 0} }

func uses(s *ir.Stmt) setutil.StringSet {
	out := setutil.StringSet{}
	s.Uses(func(name string) { out.Add(name) })
	return out
}

func usesExpr(e *ir.Expr) setutil.StringSet {
	out := setutil.StringSet{}
	e.Uses(func(name string) { out.Add(name) })
	return out
}

// necessity implements spec.md §4.3 R1: the set of variable names that
// participate in a side-effecting or control-flow observation carried
// directly by e, independent of whether e's result is ever consumed.
func necessity(e *ir.Expr) setutil.StringSet {
	out := setutil.StringSet{}
	addUse := func(v ir.Value) {
		if v.Kind == ir.ValueID {
			out.Add(v.Name)
		}
	}
	switch e.Kind {
	case ir.ExprBinOp:
		if e.BinOp.Op.IsDivLike() {
			addUse(e.BinOp.Left)
			addUse(e.BinOp.Right)
		}
	case ir.ExprCall:
		for _, a := range e.Call.Args {
			addUse(a)
		}
	case ir.ExprAlloc:
		addUse(e.Alloc.Amount)
	case ir.ExprLoad:
		// load.base is deliberately excluded: spec.md §9 Open Questions
		// notes the source omits it and DESIGN.md keeps that behavior.
		addUse(e.Load.Offset)
	}
	return out
}

// Run computes neededness for one unit's basic blocks via backward
// saturation, in the same shape as internal/liveness.Run.
func Run(body []ir.BasicBlock) *Result {
	r := &Result{NeededIn: make(map[ir.Line]setutil.StringSet)}
	if len(body) == 0 {
		return r
	}

	for {
		changed := false

		for bi := len(body) - 1; bi >= 0; bi-- {
			b := &body[bi]
			for i := len(b.Stmts) - 1; i >= 0; i-- {
				s := &b.Stmts[i]
				line := ir.Line{Block: b.Label, Index: i}

				var successorNeeded setutil.StringSet
				if i+1 < len(b.Stmts) {
					successorNeeded = r.In(ir.Line{Block: b.Label, Index: i + 1})
				} else {
					successorNeeded = setutil.StringSet{}
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
					next = usesExpr(&s.Expr.Expr).Union(successorNeeded)
				case ir.StmtPass:
					next = successorNeeded
				case ir.StmtStore:
					next = uses(s).Union(successorNeeded)
				case ir.StmtAssign:
					current := successorNeeded.Without(s.Assign.Name)
					if successorNeeded.Contains(s.Assign.Name) {
						current = current.Union(usesExpr(&s.Assign.Value))
					}
					current = current.Union(necessity(&s.Assign.Value))
					next = current
				default:
					next = successorNeeded
				}

				if existing, ok := r.NeededIn[line]; !ok || !next.Equal(existing) {
					r.NeededIn[line] = next
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
