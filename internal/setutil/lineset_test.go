package setutil

import (
	"testing"

	"pyopt/internal/ir"
)

func TestLineSetUnionAndSubset(t *testing.T) {
	a := NewLineSet(ir.Line{Block: "A", Index: 0})
	b := NewLineSet(ir.Line{Block: "A", Index: 0}, ir.Line{Block: "B", Index: 1})
	if !a.Subset(b) {
		t.Fatal("expected a to be a subset of b")
	}
	u := a.Union(b)
	if !u.Equal(b) {
		t.Fatalf("expected union(a,b) to equal b, got %v vs %v", u, b)
	}
}

func TestLineSetContainsNilSafe(t *testing.T) {
	var s LineSet
	if s.Contains(ir.Line{Block: "A", Index: 0}) {
		t.Fatal("expected nil LineSet to contain nothing")
	}
}
