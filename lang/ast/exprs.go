package ast

import (
	"fmt"

	"github.com/mna/jplc/lang/token"
)

// BinOp and UnOp identify which operator a BinOpExpr/UnOpExpr uses. The
// original C++ implementation kept separate binop_type/unop_type enums
// per expression kind (original_source/ast_node/ast_node.hpp); both
// collapse here onto plain Go enums fed by the single shared
// token.Token kind (token.OP carries the operator text), matching
// spec.md §9's decision not to duplicate the enumeration.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Lt
	Gt
	Eq
	Neq
	Leq
	Geq
	And
	Or
)

func (op BinOp) String() string {
	return [...]string{"+", "-", "*", "/", "%", "<", ">", "==", "!=", "<=", ">=", "&&", "||"}[op]
}

type UnOp int

const (
	Not UnOp = iota
	Neg
)

func (op UnOp) String() string { return [...]string{"!", "-"}[op] }

type (
	// IntExpr is an integer literal.
	IntExpr struct {
		exprBase
		Value   int64
		ValPos  token.Pos
		RawText string
	}

	// FloatExpr is a float literal.
	FloatExpr struct {
		exprBase
		Value   float64
		ValPos  token.Pos
		RawText string
	}

	// TrueExpr and FalseExpr are the boolean literals.
	TrueExpr struct {
		exprBase
		Pos token.Pos
	}
	FalseExpr struct {
		exprBase
		Pos token.Pos
	}

	// VariableExpr is a bare identifier reference.
	VariableExpr struct {
		exprBase
		Name    string
		NamePos token.Pos
	}

	// BinOpExpr is `<expr> <binop> <expr>`.
	BinOpExpr struct {
		exprBase
		Left, Right Expr
		Op          BinOp
		OpPos       token.Pos
	}

	// UnOpExpr is `<unop> <expr>`.
	UnOpExpr struct {
		exprBase
		Operand Expr
		Op      UnOp
		OpPos   token.Pos
	}

	// CallExpr is `<variable>(<expr>, ...)`.
	CallExpr struct {
		exprBase
		Name    string
		NamePos token.Pos
		Args    []Expr
		RParen  token.Pos
	}

	// ArrayLiteralExpr is `[<expr>, ...]`.
	ArrayLiteralExpr struct {
		exprBase
		LBracket token.Pos
		Elems    []Expr
		RBracket token.Pos
	}

	// TupleLiteralExpr is `{<expr>, ...}`.
	TupleLiteralExpr struct {
		exprBase
		LCurly token.Pos
		Elems  []Expr
		RCurly token.Pos
	}

	// ArrayIndexExpr is `<expr>[<expr>, ...]`.
	ArrayIndexExpr struct {
		exprBase
		Array    Expr
		Indices  []Expr
		RBracket token.Pos
	}

	// TupleIndexExpr is `<expr>{<integer>}`.
	TupleIndexExpr struct {
		exprBase
		Tuple  Expr
		Index  int64
		RCurly token.Pos
	}

	// LoopBinding is a single `<variable> : <expr>` pair inside an
	// array/sum comprehension.
	LoopBinding struct {
		Var    string
		VarPos token.Pos
		Bound  Expr
	}

	// ArrayLoopExpr is `array[<var>: <expr>, ...] <expr>`.
	ArrayLoopExpr struct {
		exprBase
		Pos      token.Pos
		Bindings []LoopBinding
		Body     Expr
	}

	// SumLoopExpr is `sum[<var>: <expr>, ...] <expr>`.
	SumLoopExpr struct {
		exprBase
		Pos      token.Pos
		Bindings []LoopBinding
		Body     Expr
	}

	// IfExpr is `if <expr> then <expr> else <expr>`.
	IfExpr struct {
		exprBase
		Pos              token.Pos
		Cond, Then, Else Expr
	}
)

func (n *IntExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("int %d", n.Value), nil)
}
func (n *FloatExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("float %g", n.Value), nil)
}
func (n *TrueExpr) Format(f fmt.State, verb rune)  { format(f, verb, n, "true", nil) }
func (n *FalseExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "false", nil) }
func (n *VariableExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "var "+n.Name, nil)
}
func (n *BinOpExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binop "+n.Op.String(), nil)
}
func (n *UnOpExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unop "+n.Op.String(), nil)
}
func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call "+n.Name, map[string]int{"args": len(n.Args)})
}
func (n *ArrayLiteralExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "array literal", map[string]int{"elems": len(n.Elems)})
}
func (n *TupleLiteralExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "tuple literal", map[string]int{"elems": len(n.Elems)})
}
func (n *ArrayIndexExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "array index", map[string]int{"indices": len(n.Indices)})
}
func (n *TupleIndexExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("tuple index %d", n.Index), nil)
}
func (n *ArrayLoopExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "array loop", map[string]int{"bindings": len(n.Bindings)})
}
func (n *SumLoopExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "sum loop", map[string]int{"bindings": len(n.Bindings)})
}
func (n *IfExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "if", nil) }

func (n *IntExpr) Span() (start, end token.Pos) {
	return n.ValPos, n.ValPos + token.Pos(len(n.RawText))
}
func (n *FloatExpr) Span() (start, end token.Pos) {
	return n.ValPos, n.ValPos + token.Pos(len(n.RawText))
}
func (n *TrueExpr) Span() (start, end token.Pos)  { return n.Pos, n.Pos + 4 }
func (n *FalseExpr) Span() (start, end token.Pos) { return n.Pos, n.Pos + 5 }
func (n *VariableExpr) Span() (start, end token.Pos) {
	return n.NamePos, n.NamePos + token.Pos(len(n.Name))
}
func (n *BinOpExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *UnOpExpr) Span() (start, end token.Pos) {
	_, end = n.Operand.Span()
	return n.OpPos, end
}
func (n *CallExpr) Span() (start, end token.Pos) { return n.NamePos, n.RParen + 1 }
func (n *ArrayLiteralExpr) Span() (start, end token.Pos) {
	return n.LBracket, n.RBracket + 1
}
func (n *TupleLiteralExpr) Span() (start, end token.Pos) {
	return n.LCurly, n.RCurly + 1
}
func (n *ArrayIndexExpr) Span() (start, end token.Pos) {
	start, _ = n.Array.Span()
	return start, n.RBracket + 1
}
func (n *TupleIndexExpr) Span() (start, end token.Pos) {
	start, _ = n.Tuple.Span()
	return start, n.RCurly + 1
}
func (n *ArrayLoopExpr) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.Pos, end
}
func (n *SumLoopExpr) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.Pos, end
}
func (n *IfExpr) Span() (start, end token.Pos) {
	_, end = n.Else.Span()
	return n.Pos, end
}

func (n *IntExpr) Walk(_ Visitor)      {}
func (n *FloatExpr) Walk(_ Visitor)    {}
func (n *TrueExpr) Walk(_ Visitor)     {}
func (n *FalseExpr) Walk(_ Visitor)    {}
func (n *VariableExpr) Walk(_ Visitor) {}
func (n *BinOpExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *UnOpExpr) Walk(v Visitor) { Walk(v, n.Operand) }
func (n *CallExpr) Walk(v Visitor) {
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *ArrayLiteralExpr) Walk(v Visitor) {
	for _, e := range n.Elems {
		Walk(v, e)
	}
}
func (n *TupleLiteralExpr) Walk(v Visitor) {
	for _, e := range n.Elems {
		Walk(v, e)
	}
}
func (n *ArrayIndexExpr) Walk(v Visitor) {
	Walk(v, n.Array)
	for _, e := range n.Indices {
		Walk(v, e)
	}
}
func (n *TupleIndexExpr) Walk(v Visitor) { Walk(v, n.Tuple) }
func (n *ArrayLoopExpr) Walk(v Visitor) {
	for _, b := range n.Bindings {
		Walk(v, b.Bound)
	}
	Walk(v, n.Body)
}
func (n *SumLoopExpr) Walk(v Visitor) {
	for _, b := range n.Bindings {
		Walk(v, b.Bound)
	}
	Walk(v, n.Body)
}
func (n *IfExpr) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	Walk(v, n.Else)
}
