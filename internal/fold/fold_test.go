package fold

import (
	"math/big"
	"testing"

	"pyopt/internal/ir"
)

func binExpr(op ir.BinOp, l, r ir.Value) ir.Expr {
	return ir.Expr{Kind: ir.ExprBinOp, BinOp: ir.BinOpExpr{Op: op, Left: l, Right: r}, Annot: "orig"}
}

func TestFoldArithmetic(t *testing.T) {
	e := binExpr(ir.OpAdd, ir.NumInt64(2), ir.NumInt64(3))
	got, changed := Expr(e)
	if !changed {
		t.Fatal("expected fold to succeed")
	}
	if got.Kind != ir.ExprValue || got.Value.Kind != ir.ValueNum || got.Value.Num.Cmp(big.NewInt(5)) != 0 {
		t.Fatalf("got %+v, want value(num(5))", got)
	}
	if got.Annot != "orig" {
		t.Errorf("expected annotation to be preserved, got %v", got.Annot)
	}
}

func TestFoldBigIntegerBeyond2_53(t *testing.T) {
	a, _ := new(big.Int).SetString("9007199254740993", 10) // 2^53 + 1
	b, _ := new(big.Int).SetString("9007199254740993", 10)
	e := binExpr(ir.OpAdd, ir.Num(a), ir.Num(b))
	got, changed := Expr(e)
	if !changed {
		t.Fatal("expected fold to succeed")
	}
	want, _ := new(big.Int).SetString("18014398509481986", 10)
	if got.Value.Num.Cmp(want) != 0 {
		t.Fatalf("got %s, want %s", got.Value.Num, want)
	}
}

func TestFoldModTrueModulo(t *testing.T) {
	// Known source bug: Mod must not fold as addition.
	e := binExpr(ir.OpMod, ir.NumInt64(7), ir.NumInt64(3))
	got, changed := Expr(e)
	if !changed {
		t.Fatal("expected fold to succeed")
	}
	if got.Value.Num.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("got %s, want 1 (7 mod 3)", got.Value.Num)
	}
}

func TestFoldModNegativeDividendFollowsPythonSemantics(t *testing.T) {
	e := binExpr(ir.OpMod, ir.NumInt64(-1), ir.NumInt64(3))
	got, changed := Expr(e)
	if !changed {
		t.Fatal("expected fold to succeed")
	}
	if got.Value.Num.Cmp(big.NewInt(2)) != 0 {
		t.Fatalf("got %s, want 2 (-1 mod 3 in Python semantics)", got.Value.Num)
	}
}

func TestFoldDivisionByLiteralZeroNotFolded(t *testing.T) {
	for _, op := range []ir.BinOp{ir.OpIDiv, ir.OpMod} {
		e := binExpr(op, ir.NumInt64(5), ir.NumInt64(0))
		got, changed := Expr(e)
		if changed {
			t.Fatalf("expected division/modulo by literal zero to not fold, got %+v", got)
		}
	}
}

func TestFoldEqualityNoneEqualsAnything(t *testing.T) {
	// spec.md §8: binop(Eq, none, none) folds to bool(true).
	eq := binExpr(ir.OpEq, ir.None(), ir.None())
	got, changed := Expr(eq)
	if !changed || got.Value.Kind != ir.ValueBool || !got.Value.Bool {
		t.Fatalf("Eq(none,none) = %+v, changed=%v, want bool(true)", got, changed)
	}

	// spec.md §8: binop(Neq, none, num(0)) folds to bool(false).
	neq := binExpr(ir.OpNeq, ir.None(), ir.NumInt64(0))
	got2, changed2 := Expr(neq)
	if !changed2 || got2.Value.Kind != ir.ValueBool || got2.Value.Bool {
		t.Fatalf("Neq(none,num(0)) = %+v, changed=%v, want bool(false)", got2, changed2)
	}
}

func TestFoldEqualityWithIDNotFoldable(t *testing.T) {
	e := binExpr(ir.OpEq, ir.ID("x"), ir.NumInt64(1))
	_, changed := Expr(e)
	if changed {
		t.Fatal("expected equality against an id to not fold")
	}
}

func TestFoldRelational(t *testing.T) {
	e := binExpr(ir.OpLt, ir.NumInt64(1), ir.NumInt64(2))
	got, changed := Expr(e)
	if !changed || !got.Value.Bool {
		t.Fatalf("Lt(1,2) = %+v, want bool(true)", got)
	}
}

func TestFoldLogical(t *testing.T) {
	e := binExpr(ir.OpAnd, ir.Bool(true), ir.Bool(false))
	got, changed := Expr(e)
	if !changed || got.Value.Bool {
		t.Fatalf("And(true,false) = %+v, want bool(false)", got)
	}
}

func TestFoldUniOp(t *testing.T) {
	neg := ir.Expr{Kind: ir.ExprUniOp, UniOp: ir.UniOpExpr{Op: ir.OpNeg, Operand: ir.NumInt64(5)}}
	got, changed := Expr(neg)
	if !changed || got.Value.Num.Cmp(big.NewInt(-5)) != 0 {
		t.Fatalf("Neg(5) = %+v, want -5", got)
	}

	not := ir.Expr{Kind: ir.ExprUniOp, UniOp: ir.UniOpExpr{Op: ir.OpNot, Operand: ir.Bool(true)}}
	got2, changed2 := Expr(not)
	if !changed2 || got2.Value.Bool {
		t.Fatalf("Not(true) = %+v, want false", got2)
	}
}

func TestFoldNonLiteralOperandsUnchanged(t *testing.T) {
	e := binExpr(ir.OpAdd, ir.ID("a"), ir.NumInt64(1))
	got, changed := Expr(e)
	if changed {
		t.Fatalf("expected non-literal binop to not fold, got %+v", got)
	}
	if got.Kind != ir.ExprBinOp {
		t.Fatalf("expected unchanged expression to keep its kind")
	}
}

func TestFoldStmtOnlyTouchesAssignAndExprStmts(t *testing.T) {
	assign := ir.Stmt{Kind: ir.StmtAssign, Assign: ir.AssignStmt{Name: "x", Value: binExpr(ir.OpAdd, ir.NumInt64(2), ir.NumInt64(3))}}
	got, changed := Stmt(assign)
	if !changed || got.Assign.Value.Value.Num.Cmp(big.NewInt(5)) != 0 {
		t.Fatalf("expected assign's expr to fold, got %+v", got)
	}

	ret := ir.Stmt{Kind: ir.StmtReturn, Return: ir.ReturnStmt{Value: ir.NumInt64(1)}}
	got2, changed2 := Stmt(ret)
	if changed2 {
		t.Fatalf("expected return statement to be untouched by fold, got %+v", got2)
	}
}
