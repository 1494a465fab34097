package ir

import "strconv"

// Line is the structured address of a statement: the block it lives in
// and its index within that block's statement list. Kept as a struct
// pair rather than a string concatenation (spec.md §9 flags the
// string-concatenation LineLabel as fragile when block names end in
// digits).
type Line struct {
	Block string
	Index int
}

// LineLabel renders l as the textual block+index encoding used only for
// diagnostic output; it is never used as a map key.
func (l Line) LineLabel() string {
	return l.Block + strconv.Itoa(l.Index)
}

// BasicBlock is a maximal straight-line statement sequence: a label and
// its statements. A block ends with a terminator (return/ifjmp/jmp) or
// falls through into the textually next block.
type BasicBlock struct {
	Label string
	Stmts []Stmt
}

// EntryLine returns the Line addressing the first statement of b, the
// synthetic entry point that reaching-definitions and liveness treat as
// "<block>0".
func (b *BasicBlock) EntryLine() Line { return Line{Block: b.Label, Index: 0} }

// Terminator returns the block's terminating statement and true, or the
// zero Stmt and false if the block has no terminator (i.e. it falls
// through to the next block in textual order).
func (b *BasicBlock) Terminator() (Stmt, bool) {
	if len(b.Stmts) == 0 {
		return Stmt{}, false
	}
	last := b.Stmts[len(b.Stmts)-1]
	if last.IsTerminator() {
		return last, true
	}
	return Stmt{}, false
}
