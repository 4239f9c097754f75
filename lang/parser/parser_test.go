package parser_test

import (
	"testing"

	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/parser"
	"github.com/mna/jplc/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.Chunk {
	t.Helper()
	fset := token.NewFileSet()
	chunk, err := parser.ParseFile(fset, t.Name(), []byte(src))
	require.NoError(t, err)
	require.NotNil(t, chunk)
	return chunk
}

func TestParseLetCmd(t *testing.T) {
	chunk := mustParse(t, "let x = 3\n")
	require.Len(t, chunk.Cmds, 1)
	let, ok := chunk.Cmds[0].(*ast.LetCmd)
	require.True(t, ok)
	lhs, ok := let.LHS.(*ast.ArgLvalue)
	require.True(t, ok)
	arg, ok := lhs.Arg.(*ast.VariableArg)
	require.True(t, ok)
	assert.Equal(t, "x", arg.Name)
	rhs, ok := let.RHS.(*ast.IntExpr)
	require.True(t, ok)
	assert.EqualValues(t, 3, rhs.Value)
}

func TestParseFnCmdWithArrayBinding(t *testing.T) {
	src := "fn sum(a[n]: int[]) : int {\n  return a[0]\n}\n"
	chunk := mustParse(t, src)
	require.Len(t, chunk.Cmds, 1)
	fn, ok := chunk.Cmds[0].(*ast.FnCmd)
	require.True(t, ok)
	assert.Equal(t, "sum", fn.Name)
	require.Len(t, fn.Params, 1)
	binding, ok := fn.Params[0].(*ast.VarBinding)
	require.True(t, ok)
	arrArg, ok := binding.Arg.(*ast.ArrayArg)
	require.True(t, ok)
	assert.Equal(t, []string{"n"}, arrArg.Vars)
	arrType, ok := binding.Type.(*ast.ArrayTypeNode)
	require.True(t, ok)
	assert.Equal(t, 1, arrType.Dimensions)
	require.Len(t, fn.Body, 1)
	_, ok = fn.Body[0].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestParseExprPrecedence(t *testing.T) {
	// `1 + 2 * 3` must bind as `1 + (2 * 3)`.
	chunk := mustParse(t, "show 1 + 2 * 3\n")
	show := chunk.Cmds[0].(*ast.ShowCmd)
	add, ok := show.Expr.(*ast.BinOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Add, add.Op)
	mul, ok := add.Right.(*ast.BinOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Mul, mul.Op)
}

func TestParseExprBooleanPrecedence(t *testing.T) {
	// `a && b || c` must bind as `(a && b) || c`.
	chunk := mustParse(t, "show a && b || c\n")
	show := chunk.Cmds[0].(*ast.ShowCmd)
	or, ok := show.Expr.(*ast.BinOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Or, or.Op)
	and, ok := or.Left.(*ast.BinOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.And, and.Op)
}

func TestParseArrayAndSumLoop(t *testing.T) {
	chunk := mustParse(t, "show array[i: 10, j: 20] i + j\n")
	show := chunk.Cmds[0].(*ast.ShowCmd)
	loop, ok := show.Expr.(*ast.ArrayLoopExpr)
	require.True(t, ok)
	require.Len(t, loop.Bindings, 2)
	assert.Equal(t, "i", loop.Bindings[0].Var)
	assert.Equal(t, "j", loop.Bindings[1].Var)

	chunk = mustParse(t, "show sum[i: 10] i\n")
	show = chunk.Cmds[0].(*ast.ShowCmd)
	sum, ok := show.Expr.(*ast.SumLoopExpr)
	require.True(t, ok)
	require.Len(t, sum.Bindings, 1)
}

func TestParseIfExpr(t *testing.T) {
	chunk := mustParse(t, "show if a then 1 else 2\n")
	show := chunk.Cmds[0].(*ast.ShowCmd)
	ifExpr, ok := show.Expr.(*ast.IfExpr)
	require.True(t, ok)
	_, ok = ifExpr.Then.(*ast.IntExpr)
	assert.True(t, ok)
	_, ok = ifExpr.Else.(*ast.IntExpr)
	assert.True(t, ok)
}

func TestParseReadWriteImage(t *testing.T) {
	chunk := mustParse(t, "read image \"in.png\" to pic\nwrite image pic to \"out.png\"\n")
	require.Len(t, chunk.Cmds, 2)
	read, ok := chunk.Cmds[0].(*ast.ReadCmd)
	require.True(t, ok)
	assert.Equal(t, "in.png", read.Filename)
	write, ok := chunk.Cmds[1].(*ast.WriteCmd)
	require.True(t, ok)
	assert.Equal(t, "out.png", write.Filename)
}

func TestParseTupleTypeAndLiteral(t *testing.T) {
	chunk := mustParse(t, "type pixel = {int, int, int}\nlet p = {1, 2, 3}\n")
	require.Len(t, chunk.Cmds, 2)
	typeCmd, ok := chunk.Cmds[0].(*ast.TypeCmd)
	require.True(t, ok)
	tup, ok := typeCmd.Type.(*ast.TupleTypeNode)
	require.True(t, ok)
	assert.Len(t, tup.Fields, 3)

	let, ok := chunk.Cmds[1].(*ast.LetCmd)
	require.True(t, ok)
	lit, ok := let.RHS.(*ast.TupleLiteralExpr)
	require.True(t, ok)
	assert.Len(t, lit.Elems, 3)
}

func TestParseErrorRecovery(t *testing.T) {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, t.Name(), []byte("let = 3\nlet y = 4\n"))
	require.Error(t, err)
}
