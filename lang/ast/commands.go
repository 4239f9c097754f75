package ast

import (
	"fmt"

	"github.com/mna/jplc/lang/token"
)

type (
	// LetCmd is `let <lvalue> = <expr>`.
	LetCmd struct {
		Pos    token.Pos
		LHS    Lvalue
		RHS    Expr
	}

	// AssertCmd is `assert <expr>, <string>`.
	AssertCmd struct {
		Pos     token.Pos
		Cond    Expr
		Message string
		EndPos  token.Pos
	}

	// PrintCmd is `print <string>`.
	PrintCmd struct {
		Pos     token.Pos
		Message string
		EndPos  token.Pos
	}

	// ShowCmd is `show <expr>`.
	ShowCmd struct {
		Pos  token.Pos
		Expr Expr
	}

	// TimeCmd is `time <cmd>`, wrapping another command for timing.
	TimeCmd struct {
		Pos     token.Pos
		Wrapped Cmd
	}

	// ReadCmd is `read image <string> to <argument>`.
	ReadCmd struct {
		Pos      token.Pos
		Filename string
		Arg      Arg
	}

	// WriteCmd is `write image <expr> to <string>`.
	WriteCmd struct {
		Pos      token.Pos
		Expr     Expr
		Filename string
		EndPos   token.Pos
	}

	// TypeCmd is `type <variable> = <type>`, a type alias declaration.
	TypeCmd struct {
		Pos     token.Pos
		Name    string
		NamePos token.Pos
		Type    Type
	}

	// FnCmd is `fn <variable>(<binding>, ...): <type> { <stmt>* }`.
	FnCmd struct {
		Pos        token.Pos
		Name       string
		NamePos    token.Pos
		Params     []Binding
		ReturnType Type
		Body       []Stmt
		RCurly     token.Pos
	}
)

func (n *LetCmd) cmd()    {}
func (n *AssertCmd) cmd() {}
func (n *PrintCmd) cmd()  {}
func (n *ShowCmd) cmd()   {}
func (n *TimeCmd) cmd()   {}
func (n *ReadCmd) cmd()   {}
func (n *WriteCmd) cmd()  {}
func (n *TypeCmd) cmd()   {}
func (n *FnCmd) cmd()     {}

func (n *LetCmd) Format(f fmt.State, verb rune)    { format(f, verb, n, "let", nil) }
func (n *AssertCmd) Format(f fmt.State, verb rune) { format(f, verb, n, "assert", nil) }
func (n *PrintCmd) Format(f fmt.State, verb rune)  { format(f, verb, n, "print "+n.Message, nil) }
func (n *ShowCmd) Format(f fmt.State, verb rune)   { format(f, verb, n, "show", nil) }
func (n *TimeCmd) Format(f fmt.State, verb rune)   { format(f, verb, n, "time", nil) }
func (n *ReadCmd) Format(f fmt.State, verb rune)   { format(f, verb, n, "read image "+n.Filename, nil) }
func (n *WriteCmd) Format(f fmt.State, verb rune)  { format(f, verb, n, "write image "+n.Filename, nil) }
func (n *TypeCmd) Format(f fmt.State, verb rune)   { format(f, verb, n, "type "+n.Name, nil) }
func (n *FnCmd) Format(f fmt.State, verb rune) {
	format(f, verb, n, "fn "+n.Name, map[string]int{"params": len(n.Params), "body": len(n.Body)})
}

func (n *LetCmd) Span() (start, end token.Pos) {
	_, end = n.RHS.Span()
	return n.Pos, end
}
func (n *AssertCmd) Span() (start, end token.Pos) { return n.Pos, n.EndPos }
func (n *PrintCmd) Span() (start, end token.Pos)  { return n.Pos, n.EndPos }
func (n *ShowCmd) Span() (start, end token.Pos) {
	_, end = n.Expr.Span()
	return n.Pos, end
}
func (n *TimeCmd) Span() (start, end token.Pos) {
	_, end = n.Wrapped.Span()
	return n.Pos, end
}
func (n *ReadCmd) Span() (start, end token.Pos) {
	_, end = n.Arg.Span()
	return n.Pos, end
}
func (n *WriteCmd) Span() (start, end token.Pos) { return n.Pos, n.EndPos }
func (n *TypeCmd) Span() (start, end token.Pos) {
	_, end = n.Type.Span()
	return n.Pos, end
}
func (n *FnCmd) Span() (start, end token.Pos) { return n.Pos, n.RCurly + 1 }

func (n *LetCmd) Walk(v Visitor) {
	Walk(v, n.LHS)
	Walk(v, n.RHS)
}
func (n *AssertCmd) Walk(v Visitor) { Walk(v, n.Cond) }
func (n *PrintCmd) Walk(_ Visitor)  {}
func (n *ShowCmd) Walk(v Visitor)   { Walk(v, n.Expr) }
func (n *TimeCmd) Walk(v Visitor)   { Walk(v, n.Wrapped) }
func (n *ReadCmd) Walk(v Visitor)   { Walk(v, n.Arg) }
func (n *WriteCmd) Walk(v Visitor)  { Walk(v, n.Expr) }
func (n *TypeCmd) Walk(v Visitor)   { Walk(v, n.Type) }
func (n *FnCmd) Walk(v Visitor) {
	for _, b := range n.Params {
		Walk(v, b)
	}
	Walk(v, n.ReturnType)
	for _, s := range n.Body {
		Walk(v, s)
	}
}
