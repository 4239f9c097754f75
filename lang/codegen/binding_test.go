package codegen

import (
	"testing"

	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/types"
	"github.com/stretchr/testify/assert"
)

func TestBindArgAtVariableArg(t *testing.T) {
	fr := newTestFrame()
	bindArgAt(fr, &ast.VariableArg{Name: "x"}, -16)

	reg, off, ok := fr.vars.lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "rbp", reg)
	assert.Equal(t, -16, off)
}

func TestBindArgAtArrayArgAliasesDimensionWords(t *testing.T) {
	fr := newTestFrame()
	bindArgAt(fr, &ast.ArrayArg{Name: "a", Vars: []string{"n", "m"}}, -24)

	_, off, ok := fr.vars.lookup("a")
	assert.True(t, ok)
	assert.Equal(t, -24, off)

	_, off, ok = fr.vars.lookup("n")
	assert.True(t, ok)
	assert.Equal(t, -16, off)

	_, off, ok = fr.vars.lookup("m")
	assert.True(t, ok)
	assert.Equal(t, -8, off)
}

func TestBindLvalueAtTupleDestructuring(t *testing.T) {
	fr := newTestFrame()
	tupType := types.NewTuple([]*types.ResolvedType{types.NewInt(), types.NewFloat()})
	lv := &ast.TupleLvalue{Elems: []ast.Lvalue{
		&ast.ArgLvalue{Arg: &ast.VariableArg{Name: "a"}},
		&ast.ArgLvalue{Arg: &ast.VariableArg{Name: "b"}},
	}}

	bindLvalueAt(fr, lv, tupType, -16)

	_, off, ok := fr.vars.lookup("a")
	assert.True(t, ok)
	assert.Equal(t, -16, off)

	_, off, ok = fr.vars.lookup("b")
	assert.True(t, ok)
	assert.Equal(t, -8, off)
}

func TestBindBindingAtTupleDestructuring(t *testing.T) {
	fr := newTestFrame()
	tupType := types.NewTuple([]*types.ResolvedType{types.NewInt(), types.NewInt()})
	b := &ast.TupleBinding{Elems: []ast.Binding{
		&ast.VarBinding{Arg: &ast.VariableArg{Name: "x"}},
		&ast.VarBinding{Arg: &ast.VariableArg{Name: "y"}},
	}}

	bindBindingAt(fr, b, tupType, 16)

	_, off, ok := fr.vars.lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 16, off)

	_, off, ok = fr.vars.lookup("y")
	assert.True(t, ok)
	assert.Equal(t, 24, off)
}
