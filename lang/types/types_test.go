package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeScalars(t *testing.T) {
	assert.Equal(t, 8, NewBool().Size())
	assert.Equal(t, 8, NewInt().Size())
	assert.Equal(t, 8, NewFloat().Size())
}

func TestSizeArray(t *testing.T) {
	assert.Equal(t, 16, NewArray(NewInt(), 1).Size())
	assert.Equal(t, 24, NewArray(NewInt(), 2).Size())
}

func TestSizeTuple(t *testing.T) {
	tup := NewTuple([]*ResolvedType{NewInt(), NewFloat(), NewBool()})
	assert.Equal(t, 24, tup.Size())
}

func TestImageTypeShape(t *testing.T) {
	img := ImageType()
	assert.Equal(t, Array, img.Kind())
	assert.Equal(t, 2, img.Rank())
	assert.Equal(t, Tuple, img.Elem().Kind())
	assert.Len(t, img.Elem().Fields(), 4)
	assert.Equal(t, 24, img.Size())
}

func TestSExpressionForms(t *testing.T) {
	assert.Equal(t, "(IntType)", NewInt().SExpression())
	assert.Equal(t, "(FloatType)", NewFloat().SExpression())
	assert.Equal(t, "(BoolType)", NewBool().SExpression())
	assert.Equal(t, "(ArrayType (IntType) 2)", NewArray(NewInt(), 2).SExpression())
	assert.Equal(t, "(TupleType (FloatType) (FloatType) (FloatType) (FloatType))", ImageType().Elem().SExpression())
}

func TestEqualComparesStructurally(t *testing.T) {
	a := NewArray(NewInt(), 2)
	b := NewArray(NewInt(), 2)
	c := NewArray(NewFloat(), 2)
	d := NewArray(NewInt(), 1)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestEqualComparesTuplesFieldwise(t *testing.T) {
	a := NewTuple([]*ResolvedType{NewInt(), NewFloat()})
	b := NewTuple([]*ResolvedType{NewInt(), NewFloat()})
	c := NewTuple([]*ResolvedType{NewInt()})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestEqualHandlesNil(t *testing.T) {
	assert.True(t, (*ResolvedType)(nil).Equal(nil))
	assert.False(t, NewInt().Equal(nil))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, NewInt().IsNumeric())
	assert.True(t, NewFloat().IsNumeric())
	assert.False(t, NewBool().IsNumeric())
}

func TestElemAndRankPanicOnNonArray(t *testing.T) {
	assert.Panics(t, func() { NewInt().Elem() })
	assert.Panics(t, func() { NewInt().Rank() })
}

func TestFieldsPanicsOnNonTuple(t *testing.T) {
	assert.Panics(t, func() { NewInt().Fields() })
}
