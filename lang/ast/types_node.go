package ast

import (
	"fmt"

	"github.com/mna/jplc/lang/token"
)

// IntTypeNode, FloatTypeNode and BoolTypeNode are the primitive type
// keywords as written in source.
type (
	IntTypeNode struct {
		Pos token.Pos
	}
	FloatTypeNode struct {
		Pos token.Pos
	}
	BoolTypeNode struct {
		Pos token.Pos
	}

	// VariableTypeNode is a named type alias reference, e.g. `pict`.
	VariableTypeNode struct {
		Name    string
		NamePos token.Pos
	}

	// ArrayTypeNode is `<type>[,...]`, e.g. `float[,]` for a 2D float
	// array.
	ArrayTypeNode struct {
		Elem       Type
		Dimensions int
		RBracket   token.Pos
	}

	// TupleTypeNode is `{<type>, ...}`.
	TupleTypeNode struct {
		LCurly token.Pos
		Fields []Type
		RCurly token.Pos
	}
)

func (n *IntTypeNode) typ()      {}
func (n *FloatTypeNode) typ()    {}
func (n *BoolTypeNode) typ()     {}
func (n *VariableTypeNode) typ() {}
func (n *ArrayTypeNode) typ()    {}
func (n *TupleTypeNode) typ()    {}

func (n *IntTypeNode) Format(f fmt.State, verb rune)   { format(f, verb, n, "int type", nil) }
func (n *FloatTypeNode) Format(f fmt.State, verb rune) { format(f, verb, n, "float type", nil) }
func (n *BoolTypeNode) Format(f fmt.State, verb rune)  { format(f, verb, n, "bool type", nil) }
func (n *VariableTypeNode) Format(f fmt.State, verb rune) {
	format(f, verb, n, "type "+n.Name, nil)
}
func (n *ArrayTypeNode) Format(f fmt.State, verb rune) {
	format(f, verb, n, "array type", map[string]int{"dims": n.Dimensions})
}
func (n *TupleTypeNode) Format(f fmt.State, verb rune) {
	format(f, verb, n, "tuple type", map[string]int{"fields": len(n.Fields)})
}

func (n *IntTypeNode) Span() (start, end token.Pos)   { return n.Pos, n.Pos + 3 }
func (n *FloatTypeNode) Span() (start, end token.Pos) { return n.Pos, n.Pos + 5 }
func (n *BoolTypeNode) Span() (start, end token.Pos)  { return n.Pos, n.Pos + 4 }
func (n *VariableTypeNode) Span() (start, end token.Pos) {
	return n.NamePos, n.NamePos + token.Pos(len(n.Name))
}
func (n *ArrayTypeNode) Span() (start, end token.Pos) {
	start, _ = n.Elem.Span()
	return start, n.RBracket + 1
}
func (n *TupleTypeNode) Span() (start, end token.Pos) { return n.LCurly, n.RCurly + 1 }

func (n *IntTypeNode) Walk(_ Visitor)      {}
func (n *FloatTypeNode) Walk(_ Visitor)    {}
func (n *BoolTypeNode) Walk(_ Visitor)     {}
func (n *VariableTypeNode) Walk(_ Visitor) {}
func (n *ArrayTypeNode) Walk(v Visitor)    { Walk(v, n.Elem) }
func (n *TupleTypeNode) Walk(v Visitor) {
	for _, t := range n.Fields {
		Walk(v, t)
	}
}
