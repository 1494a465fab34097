// Package store provides an on-disk representation of an ir.Program,
// used only by the CLI (cmd/pyopt) to simulate the lowering
// collaborator's output and to persist the optimizer's result. It is
// never imported by internal/optimizer or anything below it: spec.md
// §6 is explicit that the optimizer library itself has "no persistent
// state, no files, no network" — this package is CLI-only plumbing,
// grounded on the teacher's internal/driver/dcache.go msgpack disk
// cache.
package store

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/unicode/norm"

	"pyopt/internal/ir"
)

// normalizeName puts a decoded identifier into Unicode NFC form. Every
// name that ends up as a setutil map key (ir.Value.Name, Assign.Name,
// Call.Name, ...) must compare equal across decode round-trips even when
// two producers of the wire format compose combining characters
// differently, the same string-handling hazard the teacher normalizes
// against in internal/vm/intrinsic_string.go.
func normalizeName(s string) string {
	if s == "" {
		return s
	}
	return norm.NFC.String(s)
}

// wireProgram is the on-disk schema. Numeric literals are carried as
// decimal strings so the wire format itself imposes no width limit,
// matching ir.Value's arbitrary-precision Num.
type wireProgram struct {
	Schema  uint16
	Inits   []wireVarInit
	Funs    []wireFunDef
	Classes []wireClass
	Body    []wireBlock
	Annot   any
}

const schemaVersion uint16 = 1

type wireVarInit struct {
	Name  string
	Value wireValue
}

type wireFunDef struct {
	Name  string
	Inits []wireVarInit
	Body  []wireBlock
	Annot any
}

type wireClass struct {
	Name    string
	Methods []wireFunDef
	Annot   any
}

type wireBlock struct {
	Label string
	Stmts []wireStmt
}

type wireValue struct {
	Kind uint8
	Num  string // decimal, only when Kind == ValueNum
	Bool bool
	Name string
}

type wireExpr struct {
	Kind  uint8
	Value wireValue
	Left  wireValue // BinOp.Left / UniOp.Operand / Load.Base
	Right wireValue // BinOp.Right / Alloc.Amount / Load.Offset
	Op    uint8
	Name  string // Call.Name
	Args  []wireValue
	Annot any
}

type wireStmt struct {
	Kind   uint8
	Name   string    // Assign.Name
	Expr   wireExpr  // Assign.Value / Expr.Expr
	Value  wireValue // Return.Value
	Cond   wireValue // IfJmp.Cond
	Then   string    // IfJmp.Then
	Else   string    // IfJmp.Else
	Label  string    // Jmp.Label
	Base   wireValue // Store.Base
	Offset wireValue // Store.Offset
	Store  wireValue // Store.Value
	Annot  any
}

func valueToWire(v ir.Value) wireValue {
	w := wireValue{Kind: uint8(v.Kind), Bool: v.Bool, Name: v.Name}
	if v.Kind == ir.ValueNum && v.Num != nil {
		w.Num = v.Num.String()
	}
	return w
}

func valueFromWire(w wireValue) (ir.Value, error) {
	v := ir.Value{Kind: ir.ValueKind(w.Kind), Bool: w.Bool, Name: normalizeName(w.Name)}
	if v.Kind == ir.ValueNum {
		n, ok := new(big.Int).SetString(w.Num, 10)
		if !ok {
			return ir.Value{}, fmt.Errorf("store: invalid decimal literal %q", w.Num)
		}
		v.Num = n
	}
	return v, nil
}

func exprToWire(e ir.Expr) wireExpr {
	w := wireExpr{Kind: uint8(e.Kind), Annot: e.Annot}
	switch e.Kind {
	case ir.ExprValue:
		w.Value = valueToWire(e.Value)
	case ir.ExprBinOp:
		w.Op = uint8(e.BinOp.Op)
		w.Left = valueToWire(e.BinOp.Left)
		w.Right = valueToWire(e.BinOp.Right)
	case ir.ExprUniOp:
		w.Op = uint8(e.UniOp.Op)
		w.Left = valueToWire(e.UniOp.Operand)
	case ir.ExprCall:
		w.Name = e.Call.Name
		for _, a := range e.Call.Args {
			w.Args = append(w.Args, valueToWire(a))
		}
	case ir.ExprAlloc:
		w.Right = valueToWire(e.Alloc.Amount)
	case ir.ExprLoad:
		w.Left = valueToWire(e.Load.Base)
		w.Right = valueToWire(e.Load.Offset)
	}
	return w
}

func exprFromWire(w wireExpr) (ir.Expr, error) {
	e := ir.Expr{Kind: ir.ExprKind(w.Kind), Annot: w.Annot}
	var err error
	switch e.Kind {
	case ir.ExprValue:
		if e.Value, err = valueFromWire(w.Value); err != nil {
			return ir.Expr{}, err
		}
	case ir.ExprBinOp:
		e.BinOp.Op = ir.BinOp(w.Op)
		if e.BinOp.Left, err = valueFromWire(w.Left); err != nil {
			return ir.Expr{}, err
		}
		if e.BinOp.Right, err = valueFromWire(w.Right); err != nil {
			return ir.Expr{}, err
		}
	case ir.ExprUniOp:
		e.UniOp.Op = ir.UniOp(w.Op)
		if e.UniOp.Operand, err = valueFromWire(w.Left); err != nil {
			return ir.Expr{}, err
		}
	case ir.ExprCall:
		e.Call.Name = normalizeName(w.Name)
		for _, a := range w.Args {
			av, err := valueFromWire(a)
			if err != nil {
				return ir.Expr{}, err
			}
			e.Call.Args = append(e.Call.Args, av)
		}
	case ir.ExprAlloc:
		if e.Alloc.Amount, err = valueFromWire(w.Right); err != nil {
			return ir.Expr{}, err
		}
	case ir.ExprLoad:
		if e.Load.Base, err = valueFromWire(w.Left); err != nil {
			return ir.Expr{}, err
		}
		if e.Load.Offset, err = valueFromWire(w.Right); err != nil {
			return ir.Expr{}, err
		}
	}
	return e, nil
}

func stmtToWire(s ir.Stmt) wireStmt {
	w := wireStmt{Kind: uint8(s.Kind), Annot: s.Annot}
	switch s.Kind {
	case ir.StmtAssign:
		w.Name = s.Assign.Name
		w.Expr = exprToWire(s.Assign.Value)
	case ir.StmtExpr:
		w.Expr = exprToWire(s.Expr.Expr)
	case ir.StmtReturn:
		w.Value = valueToWire(s.Return.Value)
	case ir.StmtIfJmp:
		w.Cond = valueToWire(s.IfJmp.Cond)
		w.Then = s.IfJmp.Then
		w.Else = s.IfJmp.Else
	case ir.StmtJmp:
		w.Label = s.Jmp.Label
	case ir.StmtStore:
		w.Base = valueToWire(s.Store.Base)
		w.Offset = valueToWire(s.Store.Offset)
		w.Store = valueToWire(s.Store.Value)
	}
	return w
}

func stmtFromWire(w wireStmt) (ir.Stmt, error) {
	s := ir.Stmt{Kind: ir.StmtKind(w.Kind), Annot: w.Annot}
	var err error
	switch s.Kind {
	case ir.StmtAssign:
		s.Assign.Name = normalizeName(w.Name)
		if s.Assign.Value, err = exprFromWire(w.Expr); err != nil {
			return ir.Stmt{}, err
		}
	case ir.StmtExpr:
		if s.Expr.Expr, err = exprFromWire(w.Expr); err != nil {
			return ir.Stmt{}, err
		}
	case ir.StmtReturn:
		if s.Return.Value, err = valueFromWire(w.Value); err != nil {
			return ir.Stmt{}, err
		}
	case ir.StmtIfJmp:
		if s.IfJmp.Cond, err = valueFromWire(w.Cond); err != nil {
			return ir.Stmt{}, err
		}
		s.IfJmp.Then = w.Then
		s.IfJmp.Else = w.Else
	case ir.StmtJmp:
		s.Jmp.Label = w.Label
	case ir.StmtStore:
		if s.Store.Base, err = valueFromWire(w.Base); err != nil {
			return ir.Stmt{}, err
		}
		if s.Store.Offset, err = valueFromWire(w.Offset); err != nil {
			return ir.Stmt{}, err
		}
		if s.Store.Value, err = valueFromWire(w.Store); err != nil {
			return ir.Stmt{}, err
		}
	}
	return s, nil
}

func blockToWire(b ir.BasicBlock) wireBlock {
	w := wireBlock{Label: b.Label, Stmts: make([]wireStmt, len(b.Stmts))}
	for i, s := range b.Stmts {
		w.Stmts[i] = stmtToWire(s)
	}
	return w
}

func blockFromWire(w wireBlock) (ir.BasicBlock, error) {
	b := ir.BasicBlock{Label: w.Label, Stmts: make([]ir.Stmt, len(w.Stmts))}
	for i, ws := range w.Stmts {
		s, err := stmtFromWire(ws)
		if err != nil {
			return ir.BasicBlock{}, err
		}
		b.Stmts[i] = s
	}
	return b, nil
}

func initsToWire(inits []ir.VarInit) []wireVarInit {
	out := make([]wireVarInit, len(inits))
	for i, vi := range inits {
		out[i] = wireVarInit{Name: vi.Name, Value: valueToWire(vi.Value)}
	}
	return out
}

func initsFromWire(inits []wireVarInit) ([]ir.VarInit, error) {
	out := make([]ir.VarInit, len(inits))
	for i, w := range inits {
		v, err := valueFromWire(w.Value)
		if err != nil {
			return nil, err
		}
		out[i] = ir.VarInit{Name: normalizeName(w.Name), Value: v}
	}
	return out, nil
}

func bodyToWire(body []ir.BasicBlock) []wireBlock {
	out := make([]wireBlock, len(body))
	for i, b := range body {
		out[i] = blockToWire(b)
	}
	return out
}

func bodyFromWire(body []wireBlock) ([]ir.BasicBlock, error) {
	out := make([]ir.BasicBlock, len(body))
	for i, wb := range body {
		b, err := blockFromWire(wb)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// EncodeProgram writes prog to w as msgpack.
func EncodeProgram(w io.Writer, prog *ir.Program) error {
	wp := wireProgram{
		Schema: schemaVersion,
		Inits:  initsToWire(prog.Inits),
		Body:   bodyToWire(prog.Body),
		Annot:  prog.Annot,
	}
	for _, f := range prog.Funs {
		wp.Funs = append(wp.Funs, wireFunDef{Name: f.Name, Inits: initsToWire(f.Inits), Body: bodyToWire(f.Body), Annot: f.Annot})
	}
	for _, c := range prog.Classes {
		wc := wireClass{Name: c.Name, Annot: c.Annot}
		for _, m := range c.Methods {
			wc.Methods = append(wc.Methods, wireFunDef{Name: m.Name, Inits: initsToWire(m.Inits), Body: bodyToWire(m.Body), Annot: m.Annot})
		}
		wp.Classes = append(wp.Classes, wc)
	}
	return msgpack.NewEncoder(w).Encode(&wp)
}

// DecodeProgram reads a Program previously written by EncodeProgram.
func DecodeProgram(r io.Reader) (*ir.Program, error) {
	var wp wireProgram
	if err := msgpack.NewDecoder(r).Decode(&wp); err != nil {
		return nil, err
	}
	if wp.Schema != schemaVersion {
		return nil, fmt.Errorf("store: unsupported schema version %d", wp.Schema)
	}

	prog := &ir.Program{Annot: wp.Annot}
	var err error
	if prog.Inits, err = initsFromWire(wp.Inits); err != nil {
		return nil, err
	}
	if prog.Body, err = bodyFromWire(wp.Body); err != nil {
		return nil, err
	}
	for _, wf := range wp.Funs {
		f := ir.FunDef{Name: wf.Name, Annot: wf.Annot}
		if f.Inits, err = initsFromWire(wf.Inits); err != nil {
			return nil, err
		}
		if f.Body, err = bodyFromWire(wf.Body); err != nil {
			return nil, err
		}
		prog.Funs = append(prog.Funs, f)
	}
	for _, wc := range wp.Classes {
		c := ir.Class{Name: wc.Name, Annot: wc.Annot}
		for _, wf := range wc.Methods {
			m := ir.FunDef{Name: wf.Name, Annot: wf.Annot}
			if m.Inits, err = initsFromWire(wf.Inits); err != nil {
				return nil, err
			}
			if m.Body, err = bodyFromWire(wf.Body); err != nil {
				return nil, err
			}
			c.Methods = append(c.Methods, m)
		}
		prog.Classes = append(prog.Classes, c)
	}
	return prog, nil
}

// LoadFile decodes a Program from a msgpack file at path.
func LoadFile(path string) (*ir.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeProgram(f)
}

// SaveFile encodes prog to a msgpack file at path, replacing it
// atomically (write to a temp file, then rename), mirroring the
// teacher's disk-cache write pattern.
func SaveFile(path string, prog *ir.Program) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "pyopt-*.mp.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := EncodeProgram(tmp, prog); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
