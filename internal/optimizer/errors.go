package optimizer

import "fmt"

// InvariantError reports a violation of spec.md §3's IR invariants —
// e.g. a jump to a block label that does not exist in the unit. The
// optimizer is a total function on well-formed IR (spec.md §7): rather
// than risk a silent miscompilation, malformed input is reported
// explicitly through this error type instead of panicking.
type InvariantError struct {
	Unit   string
	Block  string
	Index  int
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("optimizer: invariant violated in unit %q at %s[%d]: %s", e.Unit, e.Block, e.Index, e.Reason)
}
