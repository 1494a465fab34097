package optimizer

import "pyopt/internal/ir"

// validate checks the invariants spec.md §3 requires of a unit's body:
// every jmp/ifjmp target names a block that exists, and every non-last
// statement in a block is not itself a terminator (a block may have at
// most one, trailing, terminator).
func validate(unitName string, body []ir.BasicBlock) error {
	labels := make(map[string]struct{}, len(body))
	for _, b := range body {
		labels[b.Label] = struct{}{}
	}

	for _, b := range body {
		for i, s := range b.Stmts {
			if i < len(b.Stmts)-1 && s.IsTerminator() {
				return &InvariantError{Unit: unitName, Block: b.Label, Index: i, Reason: "terminator is not the last statement in its block"}
			}
			switch s.Kind {
			case ir.StmtJmp:
				if _, ok := labels[s.Jmp.Label]; !ok {
					return &InvariantError{Unit: unitName, Block: b.Label, Index: i, Reason: "jmp to undefined block " + s.Jmp.Label}
				}
			case ir.StmtIfJmp:
				if _, ok := labels[s.IfJmp.Then]; !ok {
					return &InvariantError{Unit: unitName, Block: b.Label, Index: i, Reason: "ifjmp then-target undefined block " + s.IfJmp.Then}
				}
				if _, ok := labels[s.IfJmp.Else]; !ok {
					return &InvariantError{Unit: unitName, Block: b.Label, Index: i, Reason: "ifjmp else-target undefined block " + s.IfJmp.Else}
				}
			}
		}
	}
	return nil
}
