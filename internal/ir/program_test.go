package ir

import "testing"

func TestUnitsOrder(t *testing.T) {
	p := &Program{
		Body: []BasicBlock{{Label: "entry"}},
		Funs: []FunDef{{Name: "f"}},
		Classes: []Class{
			{Name: "C", Methods: []FunDef{{Name: "m"}}},
		},
	}
	units := p.Units()
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	if units[0].Name != "<toplevel>" {
		t.Errorf("expected toplevel first, got %q", units[0].Name)
	}
	if units[1].Name != "f" {
		t.Errorf("expected function second, got %q", units[1].Name)
	}
	if units[2].Name != "C.m" {
		t.Errorf("expected method third, got %q", units[2].Name)
	}
}
