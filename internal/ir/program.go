package ir

// VarInit is an initial binding at the start of a function/program body:
// a name bound to a Value before the body's first block executes.
type VarInit struct {
	Name  string
	Value Value
}

// FunDef is a function: its parameter/local initial bindings and its
// block-structured body. Functions are optimized independently of one
// another (spec.md §1 Non-goals: no inter-procedural analysis).
type FunDef struct {
	Name  string
	Inits []VarInit
	Body  []BasicBlock
	Annot any
}

// Class owns a set of methods, each optimized as an independent unit
// exactly like a top-level FunDef.
type Class struct {
	Name    string
	Methods []FunDef
	Annot   any
}

// Program is the top-level compilation unit: top-level bindings,
// function definitions, class definitions, and a top-level body block
// sequence, all optimized as independent units.
type Program struct {
	Inits   []VarInit
	Funs    []FunDef
	Classes []Class
	Body    []BasicBlock
	Annot   any
}

// Unit is one independently-optimized body: a function, a method, or the
// program's top-level body. The fixed-point driver (internal/optimizer)
// fans out one saturation loop per Unit.
type Unit struct {
	// Kind describes where this unit came from, for diagnostics only.
	Kind string
	// Name is the function/method/"<toplevel>" name, for diagnostics.
	Name  string
	Inits []VarInit
	Body  []BasicBlock
}

// Units enumerates every independently-optimizable unit in p, in a
// stable order: top-level body first, then functions in declaration
// order, then class methods in declaration order.
func (p *Program) Units() []Unit {
	units := make([]Unit, 0, 1+len(p.Funs)+len(p.Classes))
	units = append(units, Unit{Kind: "toplevel", Name: "<toplevel>", Inits: p.Inits, Body: p.Body})
	for _, f := range p.Funs {
		units = append(units, Unit{Kind: "fun", Name: f.Name, Inits: f.Inits, Body: f.Body})
	}
	for _, c := range p.Classes {
		for _, m := range c.Methods {
			units = append(units, Unit{Kind: "method", Name: c.Name + "." + m.Name, Inits: m.Inits, Body: m.Body})
		}
	}
	return units
}
