package codegen

import (
	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/types"
)

// Every named binding's address is recorded as a signed displacement
// from its frame's base register: addr = reg + offset. A pushed local's
// offset is negative (it lives below rbp); a stack-passed argument's
// offset is positive (it lives above rbp, placed there by the caller).
//
// Per spec.md's "Wire layout of aggregate values on the stack" (§6):
// array values are {pointer, dim1, ..., dimk} and tuple fields, in both
// cases laid out at *increasing* addresses in declaration order. So
// given the offset of a value's first (lowest-address) word, every
// subsequent field's offset is that base plus the sizes of the fields
// before it — independent of which direction (local push or incoming
// stack argument) the base offset itself came from. bindArgAt/
// bindLvalueAt/bindBindingAt below exploit that symmetry: both call
// sites for "where does this aggregate's first word live" differ, but
// the field-decomposition arithmetic underneath is identical.

// bindArgAt binds the name(s) introduced by a single <argument> node —
// a bare variable, or an array argument `v[d1,...,dk]` — given the
// offset of the bound value's first word. Grounded on
// lang/resolver/binding.go's bindArg, the codegen-side counterpart: the
// resolver decided what's legal, this decides where it lives. For an
// array argument the dimension variables are not separately stored:
// they alias the array value's own size words, at original_source's
// never-implemented multi-dimensional fix (its bindLvalue equivalent
// left a `TODO (HW10): Fix this so that it works with multi-dimensional
// arrays` stub, which spec.md's wire-layout rule resolves completely).
func bindArgAt(fr *frame, arg ast.Arg, base int) {
	switch n := arg.(type) {
	case *ast.VariableArg:
		fr.vars.set(n.Name, base)
	case *ast.ArrayArg:
		fr.vars.set(n.Name, base)
		for i, v := range n.Vars {
			fr.vars.set(v, base+8*(i+1))
		}
	}
}

// bindLvalueAt binds a `let`'s left-hand side, given the offset of the
// bound value's first word, recursing structurally over tuple
// destructuring the same way the resolver's bindLvalue does.
func bindLvalueAt(fr *frame, lv ast.Lvalue, rtype *types.ResolvedType, base int) {
	switch n := lv.(type) {
	case *ast.ArgLvalue:
		bindArgAt(fr, n.Arg, base)
	case *ast.TupleLvalue:
		consumed := 0
		for i, elem := range n.Elems {
			ft := rtype.Fields()[i]
			bindLvalueAt(fr, elem, ft, base+consumed)
			consumed += ft.Size()
		}
	}
}

// bindBindingAt binds a `fn` parameter binding (the Binding family,
// distinct from the let-only Lvalue family, but identical in shape),
// given the offset of the bound value's first word.
func bindBindingAt(fr *frame, b ast.Binding, rtype *types.ResolvedType, base int) {
	switch n := b.(type) {
	case *ast.VarBinding:
		bindArgAt(fr, n.Arg, base)
	case *ast.TupleBinding:
		consumed := 0
		for i, elem := range n.Elems {
			ft := rtype.Fields()[i]
			bindBindingAt(fr, elem, ft, base+consumed)
			consumed += ft.Size()
		}
	}
}
