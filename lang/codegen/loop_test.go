package codegen

import (
	"testing"

	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopDimsReservesOneRegionAndBindsFixedOffsets(t *testing.T) {
	g := newTestGenerator()
	fr := newTestFrame()
	bindings := []ast.LoopBinding{
		{Var: "i", Bound: intLit(3)},
		{Var: "j", Bound: intLit(4)},
	}

	offs, err := g.loopDims(fr, bindings, "array size must be positive")
	require.NoError(t, err)
	require.Len(t, offs, 2)
	assert.Equal(t, 16, fr.stack.Size())
	assert.Contains(t, fr.buf.String(), "array size must be positive")
	// declaration order: i's slot is the lower address (pushed/reserved
	// first), j's slot sits 8 bytes above it.
	assert.Equal(t, offs[0]+8, offs[1])
}

func TestLoopCountersBindsEachVarToZeroInitializedSlot(t *testing.T) {
	fr := newTestFrame()
	bindings := []ast.LoopBinding{{Var: "i"}, {Var: "j"}}

	offs := loopCounters(fr, bindings)
	require.Len(t, offs, 2)

	_, off, ok := fr.vars.lookup("i")
	assert.True(t, ok)
	assert.Equal(t, offs[0], off)
	assert.Contains(t, fr.buf.String(), "push qword 0")
}

func TestFoldLinearIndexEmitsRowMajorFold(t *testing.T) {
	fr := newTestFrame()
	foldLinearIndex(fr, []int{-8, -16}, []int{-24, -32})
	out := fr.buf.String()
	assert.Contains(t, out, "mov rax, 0")
	assert.Contains(t, out, "imul rax, [rbp-8]")
	assert.Contains(t, out, "add rax, [rbp-24]")
	assert.Contains(t, out, "imul rax, [rbp-16]")
	assert.Contains(t, out, "add rax, [rbp-32]")
}

func TestGenArrayLoopAllocatesAndStoresEachElement(t *testing.T) {
	g := newTestGenerator()
	fr := newTestFrame()
	n := &ast.ArrayLoopExpr{
		Bindings: []ast.LoopBinding{{Var: "i", Bound: intLit(3)}},
		Body:     variable("i", types.NewInt()),
	}
	n.SetResolvedType(types.NewArray(types.NewInt(), 1))

	require.NoError(t, g.genArrayLoop(fr, n))
	out := fr.buf.String()
	assert.Contains(t, out, "call _jpl_alloc")
	assert.Contains(t, out, "jge .jump")
	// dims region (8) + pushed pointer (8) is all that remains.
	assert.Equal(t, 16, fr.stack.Size())
}

func TestGenSumLoopAccumulatesIntoScalar(t *testing.T) {
	g := newTestGenerator()
	fr := newTestFrame()
	n := &ast.SumLoopExpr{
		Bindings: []ast.LoopBinding{{Var: "i", Bound: intLit(3)}},
		Body:     variable("i", types.NewInt()),
	}
	n.SetResolvedType(types.NewInt())

	require.NoError(t, g.genSumLoop(fr, n))
	out := fr.buf.String()
	assert.Contains(t, out, "mov qword")
	assert.Contains(t, out, "add ")
	assert.Equal(t, 8, fr.stack.Size())
}

func TestGenSumLoopFloatUsesAddsd(t *testing.T) {
	g := newTestGenerator()
	fr := newTestFrame()
	n := &ast.SumLoopExpr{
		Bindings: []ast.LoopBinding{{Var: "i", Bound: intLit(2)}},
		Body:     floatLit(1.5),
	}
	n.SetResolvedType(types.NewFloat())

	require.NoError(t, g.genSumLoop(fr, n))
	assert.Contains(t, fr.buf.String(), "addsd xmm1, xmm0")
	assert.Equal(t, 8, fr.stack.Size())
}
