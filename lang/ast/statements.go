package ast

import (
	"fmt"

	"github.com/mna/jplc/lang/token"
)

type (
	// LetStmt is `let <lvalue> = <expr>` inside a function body.
	LetStmt struct {
		Pos token.Pos
		LHS Lvalue
		RHS Expr
	}

	// AssertStmt is `assert <expr>, <string>` inside a function body.
	AssertStmt struct {
		Pos     token.Pos
		Cond    Expr
		Message string
		EndPos  token.Pos
	}

	// ReturnStmt is `return <expr>`.
	ReturnStmt struct {
		Pos   token.Pos
		Value Expr
	}
)

func (n *LetStmt) stmt()    {}
func (n *AssertStmt) stmt() {}
func (n *ReturnStmt) stmt() {}

func (n *LetStmt) Format(f fmt.State, verb rune)    { format(f, verb, n, "let", nil) }
func (n *AssertStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "assert", nil) }
func (n *ReturnStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "return", nil) }

func (n *LetStmt) Span() (start, end token.Pos) {
	_, end = n.RHS.Span()
	return n.Pos, end
}
func (n *AssertStmt) Span() (start, end token.Pos) { return n.Pos, n.EndPos }
func (n *ReturnStmt) Span() (start, end token.Pos) {
	_, end = n.Value.Span()
	return n.Pos, end
}

func (n *LetStmt) Walk(v Visitor) {
	Walk(v, n.LHS)
	Walk(v, n.RHS)
}
func (n *AssertStmt) Walk(v Visitor) { Walk(v, n.Cond) }
func (n *ReturnStmt) Walk(v Visitor) { Walk(v, n.Value) }
