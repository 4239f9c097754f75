package codegen

import (
	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/callsig"
	"github.com/mna/jplc/lang/types"
)

// Shared literal-construction helpers for this package's internal
// tests, which exercise the unexported lowering functions directly
// against hand-built, already-resolved AST fragments (no scanner,
// parser, or resolver involved).

func intLit(v int64) *ast.IntExpr {
	n := &ast.IntExpr{Value: v}
	n.SetResolvedType(types.NewInt())
	return n
}

func floatLit(v float64) *ast.FloatExpr {
	n := &ast.FloatExpr{Value: v}
	n.SetResolvedType(types.NewFloat())
	return n
}

func boolLit(v bool) ast.Expr {
	if v {
		n := &ast.TrueExpr{}
		n.SetResolvedType(types.NewBool())
		return n
	}
	n := &ast.FalseExpr{}
	n.SetResolvedType(types.NewBool())
	return n
}

func variable(name string, t *types.ResolvedType) *ast.VariableExpr {
	n := &ast.VariableExpr{Name: name}
	n.SetResolvedType(t)
	return n
}

func binOp(op ast.BinOp, left, right ast.Expr, t *types.ResolvedType) *ast.BinOpExpr {
	n := &ast.BinOpExpr{Left: left, Right: right, Op: op}
	n.SetResolvedType(t)
	return n
}

func newTestGenerator() *generator {
	return &generator{consts: newConstPool(), funcSigs: make(map[string]*callsig.Signature)}
}

func newTestFrame() *frame {
	return newFrame(newTestGenerator(), nil)
}
