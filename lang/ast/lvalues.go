package ast

import (
	"fmt"

	"github.com/mna/jplc/lang/token"
)

// ArgLvalue is an lvalue that is a bare or array argument, used on the
// left-hand side of `let`.
type ArgLvalue struct {
	Arg Arg
}

// TupleLvalue is the `{<lvalue>, ...}` lvalue, for destructuring
// assignment.
type TupleLvalue struct {
	LCurly token.Pos
	Elems  []Lvalue
	RCurly token.Pos
}

func (n *ArgLvalue) lvalue()   {}
func (n *TupleLvalue) lvalue() {}

func (n *ArgLvalue) Format(f fmt.State, verb rune) { format(f, verb, n, "lvalue", nil) }
func (n *TupleLvalue) Format(f fmt.State, verb rune) {
	format(f, verb, n, "tuple lvalue", map[string]int{"elems": len(n.Elems)})
}

func (n *ArgLvalue) Span() (start, end token.Pos)   { return n.Arg.Span() }
func (n *TupleLvalue) Span() (start, end token.Pos) { return n.LCurly, n.RCurly + 1 }

func (n *ArgLvalue) Walk(v Visitor) { Walk(v, n.Arg) }
func (n *TupleLvalue) Walk(v Visitor) {
	for _, l := range n.Elems {
		Walk(v, l)
	}
}
