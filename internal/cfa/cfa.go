// Package cfa implements the reaching-definitions engine of spec.md
// §4.1: a forward worklist propagation over a unit's basic blocks that
// records, for every live variable at every program point, the set of
// Lines whose assignment could have produced its current value.
package cfa

import (
	"pyopt/internal/ir"
	"pyopt/internal/setutil"
)

// VarInitLine is the synthetic definition site attributed to a
// function/program VarInit, per spec.md §4.1: "Entry 0's map binds
// every VarInit name to a set containing a synthetic line
// {block:"$varInit", line:0}".
var VarInitLine = ir.Line{Block: "$varInit", Index: 0}

// Entry is one program point's reaching-definitions map, addressed both
// positionally (its index in Result.Entries) and by its Line.
type Entry struct {
	Line ir.Line
	Defs map[string]setutil.LineSet
}

// Result is the outcome of running the engine over one unit: a
// sequence of Entries in program order, plus a Line->index lookup used
// to resolve jump targets during propagation.
type Result struct {
	Entries  []Entry
	line2num map[ir.Line]int
}

// At returns the reaching-definitions map for l, or nil if l is not a
// statement address in this unit.
func (r *Result) At(l ir.Line) map[string]setutil.LineSet {
	n, ok := r.line2num[l]
	if !ok {
		return nil
	}
	return r.Entries[n].Defs
}

// Run computes reaching definitions for one unit (a function body, a
// method body, or the program's top-level body).
func Run(inits []ir.VarInit, body []ir.BasicBlock) *Result {
	lines := make([]ir.Line, 0)
	stmts := make([]ir.Stmt, 0)
	line2num := make(map[ir.Line]int)

	for _, b := range body {
		for i, s := range b.Stmts {
			l := ir.Line{Block: b.Label, Index: i}
			line2num[l] = len(lines)
			lines = append(lines, l)
			stmts = append(stmts, s)
		}
	}

	entries := make([]Entry, len(lines))
	for i, l := range lines {
		entries[i] = Entry{Line: l, Defs: make(map[string]setutil.LineSet)}
	}

	r := &Result{Entries: entries, line2num: line2num}
	if len(entries) == 0 {
		return r
	}

	for _, vi := range inits {
		if vi.Value.Kind == ir.ValueNone {
			entries[0].Defs[vi.Name] = setutil.LineSet{}
			continue
		}
		entries[0].Defs[vi.Name] = setutil.NewLineSet(VarInitLine)
	}

	successors := func(idx int) []int {
		s := stmts[idx]
		switch s.Kind {
		case ir.StmtReturn:
			return nil
		case ir.StmtIfJmp:
			var out []int
			if n, ok := line2num[ir.Line{Block: s.IfJmp.Then, Index: 0}]; ok {
				out = append(out, n)
			}
			if n, ok := line2num[ir.Line{Block: s.IfJmp.Else, Index: 0}]; ok {
				out = append(out, n)
			}
			return out
		case ir.StmtJmp:
			if n, ok := line2num[ir.Line{Block: s.Jmp.Label, Index: 0}]; ok {
				return []int{n}
			}
			return nil
		default:
			if idx+1 < len(entries) {
				return []int{idx + 1}
			}
			return nil
		}
	}

	worklist := []int{0}
	for len(worklist) > 0 {
		idx := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		s := stmts[idx]
		cur := entries[idx].Defs

		for _, n := range successors(idx) {
			changed := false
			target := entries[n].Defs

			if s.Kind == ir.StmtAssign {
				here := setutil.NewLineSet(lines[idx])
				if existing, ok := target[s.Assign.Name]; ok {
					if !here.Subset(existing) {
						target[s.Assign.Name] = existing.Union(here)
						changed = true
					}
				} else {
					target[s.Assign.Name] = here
					changed = true
				}
				for k, v := range cur {
					if k == s.Assign.Name {
						continue
					}
					if existing, ok := target[k]; ok {
						if !v.Subset(existing) {
							target[k] = existing.Union(v)
							changed = true
						}
					} else if len(v) > 0 {
						target[k] = v.Clone()
						changed = true
					}
				}
			} else {
				for k, v := range cur {
					if existing, ok := target[k]; ok {
						if !v.Subset(existing) {
							target[k] = existing.Union(v)
							changed = true
						}
					} else if len(v) > 0 {
						target[k] = v.Clone()
						changed = true
					}
				}
			}

			if changed {
				worklist = append(worklist, n)
			}
		}
	}

	return r
}
