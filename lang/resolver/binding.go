package resolver

import (
	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/symtab"
	"github.com/mna/jplc/lang/token"
	"github.com/mna/jplc/lang/types"
)

// defineVar binds name as a plain variable in the current scope,
// failing on a duplicate-in-scope.
func (r *resolver) defineVar(name string, pos token.Pos, t *types.ResolvedType) {
	sym := &symtab.Symbol{Name: name, Kind: symtab.VariableSymbol, Type: t}
	if !r.syms.Define(sym) {
		fail(pos, "duplicate symbol %q", name)
	}
}

// bindLvalue recurses structurally over an lvalue, binding every name it
// introduces to rtype (or a piece of it), per spec.md's "binding
// lvalues" rule: a tuple lvalue matches a tuple type field-by-field; an
// array-argument lvalue requires an array-typed value of matching rank
// and binds each dimension variable as int plus the main variable as
// the array type; a plain-variable lvalue binds directly.
func (r *resolver) bindLvalue(lv ast.Lvalue, rtype *types.ResolvedType) {
	switch n := lv.(type) {
	case *ast.ArgLvalue:
		r.bindArg(n.Arg, rtype)
	case *ast.TupleLvalue:
		if rtype.Kind() != types.Tuple {
			fail(spanStart(lv), "binding a non-tuple value of type %s to a tuple lvalue", rtype)
		}
		fields := rtype.Fields()
		if len(fields) != len(n.Elems) {
			fail(spanStart(lv), "tuple lvalue has %d element(s), value has %d", len(n.Elems), len(fields))
		}
		for i, elem := range n.Elems {
			r.bindLvalue(elem, fields[i])
		}
	default:
		fail(spanStart(lv), "unrecognized lvalue node %T", lv)
	}
}

// bindArg binds the argument half of an lvalue or a `fn` parameter
// binding: a bare variable binds directly to rtype; an array argument
// `v[d1,...,dk]` requires rtype to be a rank-k array, binding each di
// as int and v as rtype itself.
func (r *resolver) bindArg(arg ast.Arg, rtype *types.ResolvedType) {
	switch n := arg.(type) {
	case *ast.VariableArg:
		r.defineVar(n.Name, n.NamePos, rtype)
	case *ast.ArrayArg:
		if rtype.Kind() != types.Array {
			fail(spanStart(arg), "binding a non-array value of type %s to an array argument", rtype)
		}
		if rtype.Rank() != len(n.Vars) {
			fail(spanStart(arg), "binding a rank-%d array to a rank-%d array argument", rtype.Rank(), len(n.Vars))
		}
		for i, v := range n.Vars {
			r.defineVar(v, n.VarPos[i], types.NewInt())
		}
		r.defineVar(n.Name, n.NamePos, rtype)
	default:
		fail(spanStart(arg), "unrecognized argument node %T", arg)
	}
}

// bindBinding recurses over a `fn` parameter or `let`-adjacent binding
// node (`<arg>: <type>` or a destructuring tuple of bindings), resolving
// each declared type and binding it to the argument/sub-bindings. It
// also returns the flat list of the leaf types it bound, in declaration
// order; a `fn`'s call signature is taken from bindingTypes instead.
func (r *resolver) bindBinding(b ast.Binding) []*types.ResolvedType {
	switch n := b.(type) {
	case *ast.VarBinding:
		t := r.resolveType(n.Type)
		r.bindArg(n.Arg, t)
		return []*types.ResolvedType{t}
	case *ast.TupleBinding:
		var all []*types.ResolvedType
		for _, elem := range n.Elems {
			all = append(all, r.bindBinding(elem)...)
		}
		return all
	default:
		fail(spanStart(b), "unrecognized binding node %T", b)
		return nil
	}
}
