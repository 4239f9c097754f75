package symtab_test

import (
	"testing"

	"github.com/mna/jplc/lang/symtab"
	"github.com/mna/jplc/lang/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPredeclaresGlobals(t *testing.T) {
	tab := symtab.New()
	typ, ok := tab.LookupVariable("argnum")
	require.True(t, ok)
	assert.Equal(t, types.Int, typ.Kind())

	typ, ok = tab.LookupVariable("args")
	require.True(t, ok)
	assert.Equal(t, types.Array, typ.Kind())
}

func TestNewPredeclaresMathIntrinsics(t *testing.T) {
	tab := symtab.New()
	params, ret, ok := tab.LookupFunction("sqrt")
	require.True(t, ok)
	require.Len(t, params, 1)
	assert.Equal(t, types.Float, params[0].Kind())
	assert.Equal(t, types.Float, ret.Kind())

	params, ret, ok = tab.LookupFunction("atan2")
	require.True(t, ok)
	require.Len(t, params, 2)
	assert.Equal(t, types.Float, ret.Kind())

	params, ret, ok = tab.LookupFunction("to_float")
	require.True(t, ok)
	require.Len(t, params, 1)
	assert.Equal(t, types.Int, params[0].Kind())
	assert.Equal(t, types.Float, ret.Kind())

	_, ret, ok = tab.LookupFunction("to_int")
	require.True(t, ok)
	assert.Equal(t, types.Int, ret.Kind())
}

func TestDefineRejectsDuplicateInScope(t *testing.T) {
	tab := symtab.New()
	ok := tab.Define(&symtab.Symbol{Name: "x", Kind: symtab.VariableSymbol, Type: types.NewInt()})
	require.True(t, ok)
	ok = tab.Define(&symtab.Symbol{Name: "x", Kind: symtab.VariableSymbol, Type: types.NewFloat()})
	assert.False(t, ok)
}

func TestPushAllowsShadowing(t *testing.T) {
	tab := symtab.New()
	require.True(t, tab.Define(&symtab.Symbol{Name: "x", Kind: symtab.VariableSymbol, Type: types.NewInt()}))

	tab.Push()
	require.True(t, tab.Define(&symtab.Symbol{Name: "x", Kind: symtab.VariableSymbol, Type: types.NewFloat()}))
	typ, ok := tab.LookupVariable("x")
	require.True(t, ok)
	assert.Equal(t, types.Float, typ.Kind())

	tab.Pop()
	typ, ok = tab.LookupVariable("x")
	require.True(t, ok)
	assert.Equal(t, types.Int, typ.Kind())
}

func TestLookupTypeAlias(t *testing.T) {
	tab := symtab.New()
	aliased := types.NewTuple([]*types.ResolvedType{types.NewInt(), types.NewInt()})
	require.True(t, tab.Define(&symtab.Symbol{Name: "pair", Kind: symtab.TypeAliasSymbol, Aliased: aliased}))

	got, ok := tab.LookupTypeAlias("pair")
	require.True(t, ok)
	assert.True(t, got.Equal(aliased))
}

func TestScopeNamesInDeclarationOrder(t *testing.T) {
	tab := symtab.New()
	tab.Push()
	require.True(t, tab.Define(&symtab.Symbol{Name: "a", Kind: symtab.VariableSymbol, Type: types.NewInt()}))
	require.True(t, tab.Define(&symtab.Symbol{Name: "b", Kind: symtab.VariableSymbol, Type: types.NewInt()}))
	assert.Equal(t, []string{"a", "b"}, tab.Scope().Names())
}
