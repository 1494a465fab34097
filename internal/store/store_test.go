package store

import (
	"bytes"
	"math/big"
	"testing"

	"pyopt/internal/ir"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	huge, _ := new(big.Int).SetString("18014398509481986", 10) // beyond 2^53
	prog := &ir.Program{
		Inits: []ir.VarInit{{Name: "g", Value: ir.NumInt64(1)}},
		Funs: []ir.FunDef{
			{
				Name: "f",
				Body: []ir.BasicBlock{
					{Label: "entry", Stmts: []ir.Stmt{
						{Kind: ir.StmtAssign, Assign: ir.AssignStmt{Name: "x", Value: ir.Expr{
							Kind:  ir.ExprBinOp,
							BinOp: ir.BinOpExpr{Op: ir.OpAdd, Left: ir.Num(huge), Right: ir.NumInt64(1)},
						}}},
						{Kind: ir.StmtIfJmp, IfJmp: ir.IfJmpStmt{Cond: ir.ID("x"), Then: "entry", Else: "entry"}},
					}},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := EncodeProgram(&buf, prog); err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeProgram(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(got.Funs) != 1 || got.Funs[0].Name != "f" {
		t.Fatalf("expected one function named f, got %+v", got.Funs)
	}
	stmt := got.Funs[0].Body[0].Stmts[0]
	if stmt.Assign.Value.BinOp.Left.Num.Cmp(huge) != 0 {
		t.Fatalf("expected big-integer literal to round-trip exactly, got %s", stmt.Assign.Value.BinOp.Left.Num)
	}
}

func TestDecodeNormalizesNamesToNFC(t *testing.T) {
	// decomposed spells the name as "cafe" plus a standalone combining
	// acute accent, U+0301 (NFD); precomposed uses the single composed
	// code point U+00E9 instead (NFC). Both must decode to the
	// identical setutil.StringSet key.
	decomposed := "café"
	precomposed := "café"

	prog := &ir.Program{
		Funs: []ir.FunDef{
			{
				Name: "f",
				Body: []ir.BasicBlock{
					{Label: "entry", Stmts: []ir.Stmt{
						{Kind: ir.StmtAssign, Assign: ir.AssignStmt{Name: decomposed, Value: ir.ValueExpr(ir.NumInt64(1), nil)}},
						{Kind: ir.StmtReturn, Return: ir.ReturnStmt{Value: ir.ID(decomposed)}},
					}},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := EncodeProgram(&buf, prog); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeProgram(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	name := got.Funs[0].Body[0].Stmts[0].Assign.Name
	if name != precomposed {
		t.Fatalf("expected decoded name to be NFC-normalized to %q, got %q", precomposed, name)
	}
	retName := got.Funs[0].Body[0].Stmts[1].Return.Value.Name
	if retName != name {
		t.Fatalf("expected assign and return to decode to the same NFC name, got %q vs %q", name, retName)
	}
}
