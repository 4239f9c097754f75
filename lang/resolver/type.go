package resolver

import (
	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/types"
)

// resolveType maps a type node as written in source to its resolved
// type, per spec.md's "resolving a type node" rules: primitives map
// directly, tuple/array nodes resolve structurally, and a bare variable
// name refers to a previously registered `type` alias.
func (r *resolver) resolveType(t ast.Type) *types.ResolvedType {
	switch n := t.(type) {
	case *ast.IntTypeNode:
		return types.NewInt()
	case *ast.FloatTypeNode:
		return types.NewFloat()
	case *ast.BoolTypeNode:
		return types.NewBool()
	case *ast.VariableTypeNode:
		aliased, ok := r.syms.LookupTypeAlias(n.Name)
		if !ok {
			fail(n.NamePos, "no type alias named %q", n.Name)
		}
		return aliased
	case *ast.ArrayTypeNode:
		elem := r.resolveType(n.Elem)
		return types.NewArray(elem, n.Dimensions)
	case *ast.TupleTypeNode:
		fields := make([]*types.ResolvedType, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = r.resolveType(f)
		}
		return types.NewTuple(fields)
	default:
		fail(spanStart(t), "unrecognized type node %T", t)
		return nil
	}
}
