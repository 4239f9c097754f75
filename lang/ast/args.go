package ast

import (
	"fmt"

	"github.com/mna/jplc/lang/token"
)

// VariableArg is the <variable> argument: a bare parameter name.
type VariableArg struct {
	Name    string
	NamePos token.Pos
}

// ArrayArg is the <variable>[<variable>, ...] argument: an array
// parameter together with its bound dimension-size variables, e.g.
// `img[H, W]`.
type ArrayArg struct {
	Name     string
	NamePos  token.Pos
	Vars     []string
	VarPos   []token.Pos
	RBracket token.Pos
}

func (n *VariableArg) arg() {}
func (n *ArrayArg) arg()    {}

func (n *VariableArg) Format(f fmt.State, verb rune) { format(f, verb, n, "arg "+n.Name, nil) }
func (n *VariableArg) Span() (start, end token.Pos) {
	return n.NamePos, n.NamePos + token.Pos(len(n.Name))
}
func (n *VariableArg) Walk(_ Visitor) {}

func (n *ArrayArg) Format(f fmt.State, verb rune) {
	format(f, verb, n, "array arg "+n.Name, map[string]int{"vars": len(n.Vars)})
}
func (n *ArrayArg) Span() (start, end token.Pos) { return n.NamePos, n.RBracket + 1 }
func (n *ArrayArg) Walk(_ Visitor)               {}
