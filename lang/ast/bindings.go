package ast

import (
	"fmt"

	"github.com/mna/jplc/lang/token"
)

// VarBinding is the `<argument>: <type>` binding used in `fn` parameter
// lists and `let` statements.
type VarBinding struct {
	Arg  Arg
	Type Type
}

// TupleBinding is the `{<binding>, ...}` binding, for destructuring
// tuples.
type TupleBinding struct {
	LCurly token.Pos
	Elems  []Binding
	RCurly token.Pos
}

func (n *VarBinding) binding()   {}
func (n *TupleBinding) binding() {}

func (n *VarBinding) Format(f fmt.State, verb rune) { format(f, verb, n, "binding", nil) }
func (n *TupleBinding) Format(f fmt.State, verb rune) {
	format(f, verb, n, "tuple binding", map[string]int{"elems": len(n.Elems)})
}

func (n *VarBinding) Span() (start, end token.Pos) {
	start, _ = n.Arg.Span()
	_, end = n.Type.Span()
	return start, end
}
func (n *TupleBinding) Span() (start, end token.Pos) { return n.LCurly, n.RCurly + 1 }

func (n *VarBinding) Walk(v Visitor) {
	Walk(v, n.Arg)
	Walk(v, n.Type)
}
func (n *TupleBinding) Walk(v Visitor) {
	for _, b := range n.Elems {
		Walk(v, b)
	}
}
