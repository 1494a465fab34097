// Package fold implements the constant folder of spec.md §4.4: a purely
// syntactic rewrite of binop/uniop expressions whose operands are
// already literal num/bool/none Values, over the arbitrary-precision
// Value lattice. It never inlines an id operand (constant *propagation*
// is explicitly out of scope, spec.md §8 scenario 5) and never folds a
// division/modulo whose divisor is a literal zero (spec.md §7
// hardening: left for the runtime to trap).
package fold

import (
	"math/big"

	"pyopt/internal/ir"
)

// Expr attempts to fold e. It returns the (possibly rewritten)
// expression and whether a fold occurred. On failure to fold — an
// unknown operator tag, non-literal operands, or a would-be division by
// a literal zero — e is returned unchanged with changed=false; the
// folder never errors (spec.md §7).
func Expr(e ir.Expr) (ir.Expr, bool) {
	switch e.Kind {
	case ir.ExprBinOp:
		if v, ok := binop(e.BinOp.Op, e.BinOp.Left, e.BinOp.Right); ok {
			return ir.ValueExpr(v, e.Annot), true
		}
	case ir.ExprUniOp:
		if v, ok := uniop(e.UniOp.Op, e.UniOp.Operand); ok {
			return ir.ValueExpr(v, e.Annot), true
		}
	}
	return e, false
}

func binop(op ir.BinOp, left, right ir.Value) (ir.Value, bool) {
	switch {
	case op.IsArith():
		return foldArith(op, left, right)
	case op.IsRelational():
		return foldRelational(op, left, right)
	case op.IsEquality():
		return foldEquality(op, left, right)
	case op.IsLogical():
		return foldLogical(op, left, right)
	default:
		return ir.Value{}, false
	}
}

func foldArith(op ir.BinOp, left, right ir.Value) (ir.Value, bool) {
	if left.Kind != ir.ValueNum || right.Kind != ir.ValueNum || left.Num == nil || right.Num == nil {
		return ir.Value{}, false
	}
	a, b := left.Num, right.Num
	if op.IsDivLike() && b.Sign() == 0 {
		// Leave the expression for the runtime to trap (spec.md §7).
		return ir.Value{}, false
	}
	out := new(big.Int)
	switch op {
	case ir.OpAdd:
		out.Add(a, b)
	case ir.OpSub:
		out.Sub(a, b)
	case ir.OpMul:
		out.Mul(a, b)
	case ir.OpIDiv:
		out.Quo(a, b)
		// Truncating division: adjust toward negative infinity is NOT
		// wanted here — the language's `//` truncates, per spec.md
		// §4.4 "Division is integer/truncating".
	case ir.OpMod:
		// True modulo (spec.md §9 fixes the source's Mod/addition
		// typo), sign follows the divisor as in Python's `%`.
		m := new(big.Int).Mod(a, b)
		if m.Sign() != 0 && (m.Sign() < 0) != (b.Sign() < 0) {
			m.Add(m, b)
		}
		out = m
	default:
		return ir.Value{}, false
	}
	return ir.Num(out), true
}

func foldRelational(op ir.BinOp, left, right ir.Value) (ir.Value, bool) {
	if left.Kind != ir.ValueNum || right.Kind != ir.ValueNum || left.Num == nil || right.Num == nil {
		return ir.Value{}, false
	}
	cmp := left.Num.Cmp(right.Num)
	var result bool
	switch op {
	case ir.OpLt:
		result = cmp < 0
	case ir.OpLe:
		result = cmp <= 0
	case ir.OpGt:
		result = cmp > 0
	case ir.OpGe:
		result = cmp >= 0
	default:
		return ir.Value{}, false
	}
	return ir.Bool(result), true
}

func foldEquality(op ir.BinOp, left, right ir.Value) (ir.Value, bool) {
	// The language defines none == none (and, by this rule, none
	// compared against anything) as true; see spec.md §4.4 and the
	// worked example in §8: Neq(none, num(0)) folds to bool(false).
	if left.Kind == ir.ValueNone || right.Kind == ir.ValueNone {
		return ir.Bool(op == ir.OpEq), true
	}
	if left.Kind == ir.ValueID || right.Kind == ir.ValueID {
		return ir.Value{}, false
	}
	if left.Kind != right.Kind {
		return ir.Value{}, false
	}
	var eq bool
	switch left.Kind {
	case ir.ValueNum:
		if left.Num == nil || right.Num == nil {
			return ir.Value{}, false
		}
		eq = left.Num.Cmp(right.Num) == 0
	case ir.ValueBool:
		eq = left.Bool == right.Bool
	default:
		return ir.Value{}, false
	}
	if op == ir.OpNeq {
		eq = !eq
	}
	return ir.Bool(eq), true
}

func foldLogical(op ir.BinOp, left, right ir.Value) (ir.Value, bool) {
	if left.Kind != ir.ValueBool || right.Kind != ir.ValueBool {
		return ir.Value{}, false
	}
	switch op {
	case ir.OpAnd:
		return ir.Bool(left.Bool && right.Bool), true
	case ir.OpOr:
		return ir.Bool(left.Bool || right.Bool), true
	default:
		return ir.Value{}, false
	}
}

func uniop(op ir.UniOp, operand ir.Value) (ir.Value, bool) {
	switch op {
	case ir.OpNeg:
		if operand.Kind != ir.ValueNum || operand.Num == nil {
			return ir.Value{}, false
		}
		return ir.Num(new(big.Int).Neg(operand.Num)), true
	case ir.OpNot:
		if operand.Kind != ir.ValueBool {
			return ir.Value{}, false
		}
		return ir.Bool(!operand.Bool), true
	default:
		return ir.Value{}, false
	}
}

// Stmt folds the Expr contained in s, if any (only assign and expr
// statements carry a foldable Expr; every other statement kind's
// operands are already operand-atomic Values per spec.md §3).
func Stmt(s ir.Stmt) (ir.Stmt, bool) {
	switch s.Kind {
	case ir.StmtAssign:
		if v, ok := Expr(s.Assign.Value); ok {
			s.Assign.Value = v
			return s, true
		}
	case ir.StmtExpr:
		if v, ok := Expr(s.Expr.Expr); ok {
			s.Expr.Expr = v
			return s, true
		}
	}
	return s, false
}
