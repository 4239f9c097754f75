package codegen

import (
	"testing"

	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/callsig"
	"github.com/mna/jplc/lang/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenLetBindsNameAtNewTopOfStack(t *testing.T) {
	g := newTestGenerator()
	fr := newTestFrame()
	lv := &ast.ArgLvalue{Arg: &ast.VariableArg{Name: "x"}}

	require.NoError(t, g.genLet(fr, lv, intLit(9)))

	_, off, ok := fr.vars.lookup("x")
	assert.True(t, ok)
	assert.Equal(t, -8, off)
}

func TestGenAssertBranchesAroundFailure(t *testing.T) {
	g := newTestGenerator()
	fr := newTestFrame()

	require.NoError(t, g.genAssert(fr, boolLit(true), "must hold"))
	out := fr.buf.String()
	assert.Contains(t, out, "cmp rax, 0")
	assert.Contains(t, out, "jne .jump")
	assert.Contains(t, out, "must hold")
	assert.Equal(t, 0, fr.stack.Size())
}

func TestGenReturnStmtScalarIntPlacesRaxAndTearsDown(t *testing.T) {
	g := newTestGenerator()
	fr := newTestFrame()
	fr.emit("push rbp") // stand-in prologue so the epilogue text is plausible

	require.NoError(t, g.genReturnStmt(fr, &ast.ReturnStmt{Value: intLit(4)}))
	out := fr.buf.String()
	assert.Contains(t, out, "mov rax, [rsp]")
	assert.Contains(t, out, "pop rbp")
	assert.Contains(t, out, "ret")
}

func TestGenReturnStmtFloatUsesXmm0(t *testing.T) {
	g := newTestGenerator()
	fr := newTestFrame()

	require.NoError(t, g.genReturnStmt(fr, &ast.ReturnStmt{Value: floatLit(1.5)}))
	assert.Contains(t, fr.buf.String(), "movsd xmm0, [rsp]")
}

func TestGenReturnStmtAggregateCopiesThroughHiddenPointer(t *testing.T) {
	g := newTestGenerator()
	fr := newTestFrame()
	fr.pushInt("rdi")
	fr.retHiddenPtr = true
	fr.hiddenPtrOffset = -fr.stack.Size()

	tup := &ast.TupleLiteralExpr{Elems: []ast.Expr{intLit(1), intLit(2)}}
	tup.SetResolvedType(types.NewTuple([]*types.ResolvedType{types.NewInt(), types.NewInt()}))

	require.NoError(t, g.genReturnStmt(fr, &ast.ReturnStmt{Value: tup}))
	out := fr.buf.String()
	assert.Contains(t, out, "mov r11,")
	assert.Contains(t, out, "mov rax, r11")
}

func TestGenFnScalarParamsAndReturn(t *testing.T) {
	g := newTestGenerator()
	sig := callsig.New([]*types.ResolvedType{types.NewInt(), types.NewFloat()}, types.NewInt())
	g.funcSigs["add1"] = sig

	fn := &ast.FnCmd{
		Name: "add1",
		Params: []ast.Binding{
			&ast.VarBinding{Arg: &ast.VariableArg{Name: "a"}},
			&ast.VarBinding{Arg: &ast.VariableArg{Name: "b"}},
		},
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: variable("a", types.NewInt())},
		},
	}

	out, err := g.genFn(fn)
	require.NoError(t, err)
	assert.Contains(t, out, "add1:")
	assert.Contains(t, out, "push rbp")
	assert.Contains(t, out, "mov rbp, rsp")
	assert.Contains(t, out, "ret")
}

func TestGenFnDefaultEpilogueWhenBodyLacksTrailingReturn(t *testing.T) {
	g := newTestGenerator()
	sig := callsig.New(nil, types.NewInt())
	g.funcSigs["zero"] = sig

	fn := &ast.FnCmd{
		Name: "zero",
		Body: []ast.Stmt{
			&ast.LetStmt{
				LHS: &ast.ArgLvalue{Arg: &ast.VariableArg{Name: "x"}},
				RHS: intLit(0),
			},
		},
	}

	out, err := g.genFn(fn)
	require.NoError(t, err)
	assert.Contains(t, out, "ret")
}

func TestGenPrintCmdPoolsMessageAndCallsPrint(t *testing.T) {
	g := newTestGenerator()
	fr := newTestFrame()
	require.NoError(t, g.genPrintCmd(fr, &ast.PrintCmd{Message: "hello"}))
	out := fr.buf.String()
	assert.Contains(t, out, "call _print")
	assert.Contains(t, out, "hello")
}

func TestGenShowCmdCallsShowAndDropsValue(t *testing.T) {
	g := newTestGenerator()
	fr := newTestFrame()
	n := &ast.ShowCmd{Expr: intLit(1)}

	require.NoError(t, g.genShowCmd(fr, n))
	out := fr.buf.String()
	assert.Contains(t, out, "call _show")
	assert.Equal(t, 0, fr.stack.Size())
}

func TestGenTimeCmdSamplesClockBeforeAndAfter(t *testing.T) {
	g := newTestGenerator()
	fr := newTestFrame()
	n := &ast.TimeCmd{Wrapped: &ast.PrintCmd{Message: "done"}}

	require.NoError(t, g.genTimeCmd(fr, n))
	out := fr.buf.String()
	assert.Contains(t, out, "call _get_time")
	assert.Contains(t, out, "call _print_time")
	assert.Contains(t, out, "subsd xmm0, xmm1")
	assert.Equal(t, 0, fr.stack.Size())
}

func TestGenTopLevelCmdTypeCmdIsNoop(t *testing.T) {
	g := newTestGenerator()
	fr := newTestFrame()
	require.NoError(t, g.genTopLevelCmd(fr, &ast.TypeCmd{Name: "vec"}))
	assert.Empty(t, fr.buf.String())
}
