package setutil

import "testing"

func TestStringSetUnion(t *testing.T) {
	a := NewStringSet("x", "y")
	b := NewStringSet("y", "z")
	u := a.Union(b)
	for _, name := range []string{"x", "y", "z"} {
		if !u.Contains(name) {
			t.Errorf("expected union to contain %q", name)
		}
	}
	if len(u) != 3 {
		t.Errorf("expected union of size 3, got %d", len(u))
	}
}

func TestStringSetWithout(t *testing.T) {
	a := NewStringSet("x", "y", "z")
	got := a.Without("y")
	if got.Contains("y") {
		t.Error("expected y to be removed")
	}
	if !got.Contains("x") || !got.Contains("z") {
		t.Error("expected x and z to remain")
	}
}

func TestStringSetSubsetAndEqual(t *testing.T) {
	a := NewStringSet("x")
	b := NewStringSet("x", "y")
	if !a.Subset(b) {
		t.Error("expected a to be a subset of b")
	}
	if b.Subset(a) {
		t.Error("expected b to not be a subset of a")
	}
	if a.Equal(b) {
		t.Error("expected a and b to not be equal")
	}
	if !a.Equal(a.Clone()) {
		t.Error("expected a set to equal its own clone")
	}
}

func TestNilStringSetContainsNothing(t *testing.T) {
	var s StringSet
	if s.Contains("x") {
		t.Error("expected nil set to contain nothing")
	}
}
