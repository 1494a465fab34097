// Package ir defines the block-structured intermediate representation the
// optimizer operates on: Values, Expressions, Statements, BasicBlocks and
// the Program/FunDef/Class wrappers around them. Every type is a tagged
// struct (Kind + payload fields) dispatched by exhaustive switch, never a
// polymorphic interface hierarchy.
package ir

import "math/big"

// ValueKind distinguishes the variants of Value.
type ValueKind uint8

const (
	// ValueNum is an arbitrary-precision integer literal.
	ValueNum ValueKind = iota
	// ValueBool is a boolean literal.
	ValueBool
	// ValueNone is the none literal.
	ValueNone
	// ValueID is a reference to a variable by name.
	ValueID
)

// Value is an operand: a tagged variant of num/bool/none/id. Values never
// own subexpressions.
type Value struct {
	Kind ValueKind

	Num  *big.Int
	Bool bool
	Name string // populated when Kind == ValueID
}

// Num constructs an integer Value.
func Num(n *big.Int) Value { return Value{Kind: ValueNum, Num: n} }

// NumInt64 constructs an integer Value from a machine int64.
func NumInt64(n int64) Value { return Value{Kind: ValueNum, Num: big.NewInt(n)} }

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// None constructs the none Value.
func None() Value { return Value{Kind: ValueNone} }

// ID constructs a variable-reference Value.
func ID(name string) Value { return Value{Kind: ValueID, Name: name} }

// IsID reports whether v is a variable reference.
func (v Value) IsID() bool { return v.Kind == ValueID }

// Equal reports structural equality of two Values. Two num Values are
// equal iff their big.Int values (sign included) match.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValueNum:
		if v.Num == nil || o.Num == nil {
			return v.Num == o.Num
		}
		return v.Num.Cmp(o.Num) == 0
	case ValueBool:
		return v.Bool == o.Bool
	case ValueNone:
		return true
	case ValueID:
		return v.Name == o.Name
	}
	return false
}
