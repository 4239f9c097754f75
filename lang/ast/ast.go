// Package ast defines the abstract syntax tree for JPL programs: seven
// node families (argument, binding, command, expression, lvalue,
// statement, type), each a tagged variant implementing Node.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mna/jplc/lang/token"
	"github.com/mna/jplc/lang/types"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements fmt.Formatter so it can print a description of
	// itself. Supported verbs are 'v' and 's'; the '#' flag prints count
	// information about child nodes.
	fmt.Formatter

	// Span reports the start and end byte position of the node.
	Span() (start, end token.Pos)

	// Walk enters each child node inside itself, implementing the visitor
	// pattern's traversal half.
	Walk(v Visitor)
}

// Arg is an <argument> node: either a bare variable or an array argument
// binding dimension variables.
type Arg interface {
	Node
	arg()
}

// Binding is a <binding> node: either a var binding (argument: type) or a
// tuple binding ({binding, ...}).
type Binding interface {
	Node
	binding()
}

// Cmd is a top-level <cmd> node.
type Cmd interface {
	Node
	cmd()
}

// Lvalue is an <lvalue> node: either an argument lvalue or a tuple
// lvalue.
type Lvalue interface {
	Node
	lvalue()
}

// Stmt is a function-body <stmt> node.
type Stmt interface {
	Node
	stmt()
}

// Type is a <type> node as written in source, before resolution.
type Type interface {
	Node
	typ()
}

// Expr is an <expr> node. Every expression carries a resolved-type slot
// written once by the resolver, plus the unpopulated extension slots
// (constant value, tensor-contraction classification) the optional
// visitor passes would fill in.
type Expr interface {
	Node
	expr()

	// ResolvedType returns the static type the resolver assigned to this
	// expression, or nil if it has not been resolved yet.
	ResolvedType() *types.ResolvedType
	// SetResolvedType is called exactly once, by the resolver.
	SetResolvedType(*types.ResolvedType)

	// ConstValue returns the constant-propagation value attached to this
	// node, or nil if no constant-propagation pass has run. No such pass
	// ships in this package; the slot exists for the visitor hook.
	ConstValue() interface{}
	SetConstValue(interface{})

	// IsTensorContraction and ContractionEdges back the tensor-contraction
	// classification slot. Unpopulated unless a visitor pass sets them.
	IsTensorContraction() bool
	SetTensorContraction(bool)
	ContractionEdges() []ContractionEdge
	SetContractionEdges([]ContractionEdge)
}

// ContractionEdge is a dependency edge between two loop index variables
// discovered by an (unimplemented) tensor-contraction analysis pass, per
// original_source/ast_node/tc_edge.hpp.
type ContractionEdge struct {
	From, To string
}

// exprBase is embedded by every concrete Expr variant; it implements the
// resolved-type/extension slots so each variant doesn't repeat them.
type exprBase struct {
	resolvedType      *types.ResolvedType
	constValue        interface{}
	tensorContraction bool
	contractionEdges  []ContractionEdge
}

func (e *exprBase) expr() {}

func (e *exprBase) ResolvedType() *types.ResolvedType        { return e.resolvedType }
func (e *exprBase) SetResolvedType(t *types.ResolvedType)     { e.resolvedType = t }
func (e *exprBase) ConstValue() interface{}                   { return e.constValue }
func (e *exprBase) SetConstValue(v interface{})               { e.constValue = v }
func (e *exprBase) IsTensorContraction() bool                 { return e.tensorContraction }
func (e *exprBase) SetTensorContraction(b bool)               { e.tensorContraction = b }
func (e *exprBase) ContractionEdges() []ContractionEdge       { return e.contractionEdges }
func (e *exprBase) SetContractionEdges(edges []ContractionEdge) { e.contractionEdges = edges }

// Chunk is the root of a parsed program: a sequence of top-level
// commands.
type Chunk struct {
	Name string
	Cmds []Cmd
	EOF  token.Pos
}

func (n *Chunk) Format(f fmt.State, verb rune) {
	lbl := "chunk"
	if n.Name != "" {
		lbl += " " + n.Name
	}
	format(f, verb, n, lbl, map[string]int{"cmds": len(n.Cmds)})
}

func (n *Chunk) Span() (start, end token.Pos) {
	if len(n.Cmds) > 0 {
		start, _ = n.Cmds[0].Span()
		_, end = n.Cmds[len(n.Cmds)-1].Span()
		return start, end
	}
	return n.EOF, n.EOF
}

func (n *Chunk) Walk(v Visitor) {
	for _, c := range n.Cmds {
		Walk(v, c)
	}
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
