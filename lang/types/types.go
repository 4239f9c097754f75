// Package types defines the resolved type sum type the type checker
// attaches to every expression: bool, int, float, array, and tuple,
// together with the size and s-expression formatting rules from
// original_source/resolved_type.
package types

import (
	"fmt"
	"strings"
)

// Kind identifies which case of the ResolvedType sum type a value holds.
type Kind uint8

const (
	Bool Kind = iota
	Float
	Int
	Array
	Tuple
)

// ResolvedType is the static type the resolver attaches to every typed
// AST expression node. It is an immutable value; construct one with the
// package-level constructors below.
type ResolvedType struct {
	kind Kind

	// Array fields.
	elem *ResolvedType
	rank int

	// Tuple fields.
	fields []*ResolvedType
}

var (
	boolType  = &ResolvedType{kind: Bool}
	intType   = &ResolvedType{kind: Int}
	floatType = &ResolvedType{kind: Float}
)

// NewBool returns the singleton bool ResolvedType.
func NewBool() *ResolvedType { return boolType }

// NewInt returns the singleton int ResolvedType.
func NewInt() *ResolvedType { return intType }

// NewFloat returns the singleton float ResolvedType.
func NewFloat() *ResolvedType { return floatType }

// NewArray builds an array type of the given element type and rank
// (number of dimensions).
func NewArray(elem *ResolvedType, rank int) *ResolvedType {
	return &ResolvedType{kind: Array, elem: elem, rank: rank}
}

// NewTuple builds a tuple type from its field types, in order.
func NewTuple(fields []*ResolvedType) *ResolvedType {
	return &ResolvedType{kind: Tuple, fields: fields}
}

// Kind reports which case of the sum type t is.
func (t *ResolvedType) Kind() Kind { return t.kind }

// Elem returns the element type of an array type. Panics on other kinds.
func (t *ResolvedType) Elem() *ResolvedType {
	if t.kind != Array {
		panic("types: Elem called on non-array type")
	}
	return t.elem
}

// Rank returns the dimensionality of an array type. Panics on other
// kinds.
func (t *ResolvedType) Rank() int {
	if t.kind != Array {
		panic("types: Rank called on non-array type")
	}
	return t.rank
}

// Fields returns the field types of a tuple type, in order. Panics on
// other kinds.
func (t *ResolvedType) Fields() []*ResolvedType {
	if t.kind != Tuple {
		panic("types: Fields called on non-tuple type")
	}
	return t.fields
}

// Equal reports whether t and other denote the same resolved type.
func (t *ResolvedType) Equal(other *ResolvedType) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case Array:
		return t.rank == other.rank && t.elem.Equal(other.elem)
	case Tuple:
		if len(t.fields) != len(other.fields) {
			return false
		}
		for i, f := range t.fields {
			if !f.Equal(other.fields[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Size returns the in-memory size in bytes of a value of this type,
// per original_source/resolved_type.cpp: 8 bytes for every scalar, an
// 8-byte pointer plus 8 bytes per dimension for arrays, and the sum of
// field sizes for tuples.
func (t *ResolvedType) Size() int {
	switch t.kind {
	case Bool, Int, Float:
		return 8
	case Array:
		return 8 * (t.rank + 1)
	case Tuple:
		total := 0
		for _, f := range t.fields {
			total += f.Size()
		}
		return total
	default:
		panic(fmt.Sprintf("types: Size called on invalid kind %d", t.kind))
	}
}

// SExpression returns the spec's canonical s-expression rendering of t,
// e.g. "(IntType)", "(ArrayType (FloatType) 2)", "(TupleType (IntType)
// (BoolType))".
func (t *ResolvedType) SExpression() string {
	switch t.kind {
	case Bool:
		return "(BoolType)"
	case Float:
		return "(FloatType)"
	case Int:
		return "(IntType)"
	case Array:
		return fmt.Sprintf("(ArrayType %s %d)", t.elem.SExpression(), t.rank)
	case Tuple:
		var b strings.Builder
		b.WriteString("(TupleType")
		for _, f := range t.fields {
			b.WriteString(" ")
			b.WriteString(f.SExpression())
		}
		b.WriteString(")")
		return b.String()
	default:
		panic(fmt.Sprintf("types: SExpression called on invalid kind %d", t.kind))
	}
}

func (t *ResolvedType) String() string { return t.SExpression() }

// IsNumeric reports whether t is int or float.
func (t *ResolvedType) IsNumeric() bool { return t.kind == Int || t.kind == Float }

// ImageType is the fixed type pinned to `read image`/`write image`
// operands: a 2D array of (float,float,float,float) RGBA tuples.
func ImageType() *ResolvedType {
	px := NewTuple([]*ResolvedType{NewFloat(), NewFloat(), NewFloat(), NewFloat()})
	return NewArray(px, 2)
}
