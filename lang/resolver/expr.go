package resolver

import (
	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/symtab"
	"github.com/mna/jplc/lang/types"
)

// checkExpr resolves e's static type, attaches it via SetResolvedType,
// and returns it. Every rule below mirrors the corresponding
// check_expr_* case read off the original type checker, generalized
// (call, most notably) where that checker never shipped an
// implementation.
func (r *resolver) checkExpr(e ast.Expr) *types.ResolvedType {
	var t *types.ResolvedType
	switch n := e.(type) {
	case *ast.IntExpr:
		t = types.NewInt()
	case *ast.FloatExpr:
		t = types.NewFloat()
	case *ast.TrueExpr:
		t = types.NewBool()
	case *ast.FalseExpr:
		t = types.NewBool()
	case *ast.VariableExpr:
		t = r.checkVariableExpr(n)
	case *ast.UnOpExpr:
		t = r.checkUnOpExpr(n)
	case *ast.BinOpExpr:
		t = r.checkBinOpExpr(n)
	case *ast.IfExpr:
		t = r.checkIfExpr(n)
	case *ast.CallExpr:
		t = r.checkCallExpr(n)
	case *ast.ArrayIndexExpr:
		t = r.checkArrayIndexExpr(n)
	case *ast.TupleIndexExpr:
		t = r.checkTupleIndexExpr(n)
	case *ast.ArrayLiteralExpr:
		t = r.checkArrayLiteralExpr(n)
	case *ast.TupleLiteralExpr:
		t = r.checkTupleLiteralExpr(n)
	case *ast.ArrayLoopExpr:
		t = r.checkArrayLoopExpr(n)
	case *ast.SumLoopExpr:
		t = r.checkSumLoopExpr(n)
	default:
		fail(spanStart(e), "unrecognized expression node %T", e)
	}
	e.SetResolvedType(t)
	return t
}

func (r *resolver) checkVariableExpr(n *ast.VariableExpr) *types.ResolvedType {
	t, ok := r.syms.LookupVariable(n.Name)
	if !ok {
		fail(n.NamePos, "no variable named %q in scope", n.Name)
	}
	return t
}

func (r *resolver) checkUnOpExpr(n *ast.UnOpExpr) *types.ResolvedType {
	operand := r.checkExpr(n.Operand)
	switch n.Op {
	case ast.Neg:
		if !operand.IsNumeric() {
			fail(n.OpPos, "operand of unary `-` must be int or float, got %s", operand)
		}
		return operand
	case ast.Not:
		if operand.Kind() != types.Bool {
			fail(n.OpPos, "operand of `!` must be bool, got %s", operand)
		}
		return operand
	default:
		fail(n.OpPos, "unrecognized unary operator")
		return nil
	}
}

func (r *resolver) checkBinOpExpr(n *ast.BinOpExpr) *types.ResolvedType {
	left := r.checkExpr(n.Left)
	right := r.checkExpr(n.Right)
	if !left.Equal(right) {
		fail(n.OpPos, "mismatched operand types: %s vs %s", left, right)
	}

	switch n.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Mod:
		if !left.IsNumeric() {
			fail(n.OpPos, "arithmetic operator requires int or float operands, got %s", left)
		}
		return left
	case ast.Lt, ast.Gt, ast.Leq, ast.Geq:
		if !left.IsNumeric() {
			fail(n.OpPos, "comparison operator requires int or float operands, got %s", left)
		}
		return types.NewBool()
	case ast.Eq, ast.Neq:
		if left.Kind() != types.Bool && !left.IsNumeric() {
			fail(n.OpPos, "equality operator requires bool, int or float operands, got %s", left)
		}
		return types.NewBool()
	case ast.And, ast.Or:
		if left.Kind() != types.Bool {
			fail(n.OpPos, "boolean operator requires bool operands, got %s", left)
		}
		return left
	default:
		fail(n.OpPos, "unrecognized binary operator")
		return nil
	}
}

func (r *resolver) checkIfExpr(n *ast.IfExpr) *types.ResolvedType {
	cond := r.checkExpr(n.Cond)
	if cond.Kind() != types.Bool {
		fail(spanStart(n.Cond), "`if` condition must be bool, got %s", cond)
	}
	thenType := r.checkExpr(n.Then)
	elseType := r.checkExpr(n.Else)
	if !thenType.Equal(elseType) {
		fail(n.Pos, "`if` branches have mismatched types: %s vs %s", thenType, elseType)
	}
	return thenType
}

// checkCallExpr checks a function call's arity and positional argument
// types against the callee's registered signature, per spec.md §4.2's
// `call(f, args)` rule — this case has no working original
// implementation to port (it is an unimplemented stub in the original
// type checker), so it's built directly from that rule.
func (r *resolver) checkCallExpr(n *ast.CallExpr) *types.ResolvedType {
	params, ret, ok := r.syms.LookupFunction(n.Name)
	if !ok {
		fail(n.NamePos, "no function named %q in scope", n.Name)
	}
	if len(n.Args) != len(params) {
		fail(n.NamePos, "call to %q passes %d argument(s), want %d", n.Name, len(n.Args), len(params))
	}
	for i, arg := range n.Args {
		argType := r.checkExpr(arg)
		if !argType.Equal(params[i]) {
			fail(spanStart(arg), "argument %d of call to %q has type %s, want %s", i+1, n.Name, argType, params[i])
		}
	}
	return ret
}

func (r *resolver) checkArrayIndexExpr(n *ast.ArrayIndexExpr) *types.ResolvedType {
	arrType := r.checkExpr(n.Array)
	if arrType.Kind() != types.Array {
		fail(spanStart(n.Array), "indexing a non-array value of type %s", arrType)
	}
	if len(n.Indices) != arrType.Rank() {
		fail(spanStart(n), "array index has %d index argument(s), want %d (rank of %s)", len(n.Indices), arrType.Rank(), arrType)
	}
	for _, idx := range n.Indices {
		idxType := r.checkExpr(idx)
		if idxType.Kind() != types.Int {
			fail(spanStart(idx), "array index argument must be int, got %s", idxType)
		}
	}
	return arrType.Elem()
}

func (r *resolver) checkTupleIndexExpr(n *ast.TupleIndexExpr) *types.ResolvedType {
	tupType := r.checkExpr(n.Tuple)
	if tupType.Kind() != types.Tuple {
		fail(spanStart(n.Tuple), "indexing a non-tuple value of type %s", tupType)
	}
	fields := tupType.Fields()
	if n.Index < 0 || int(n.Index) >= len(fields) {
		fail(spanStart(n), "tuple index %d out of range for %s", n.Index, tupType)
	}
	return fields[n.Index]
}

func (r *resolver) checkArrayLiteralExpr(n *ast.ArrayLiteralExpr) *types.ResolvedType {
	if len(n.Elems) == 0 {
		fail(n.LBracket, "empty array literals are not allowed")
	}
	elemType := r.checkExpr(n.Elems[0])
	for _, e := range n.Elems[1:] {
		t := r.checkExpr(e)
		if !t.Equal(elemType) {
			fail(spanStart(e), "array literal element has type %s, expected %s", t, elemType)
		}
	}
	return types.NewArray(elemType, 1)
}

func (r *resolver) checkTupleLiteralExpr(n *ast.TupleLiteralExpr) *types.ResolvedType {
	fields := make([]*types.ResolvedType, len(n.Elems))
	for i, e := range n.Elems {
		fields[i] = r.checkExpr(e)
	}
	return types.NewTuple(fields)
}

// checkLoopBindings type-checks the `xi: ni` pairs shared by array/sum
// comprehensions. Every ni is checked against the scope active BEFORE
// any xi is bound — the bounds may not refer to the loop's own index
// variables, including earlier ones in the same binding list — then a
// single new scope is pushed with every xi bound as int, for the
// caller to check the comprehension body against.
func (r *resolver) checkLoopBindings(bindings []ast.LoopBinding) {
	seen := make(map[string]bool, len(bindings))
	boundTypes := make([]*types.ResolvedType, len(bindings))
	for i, b := range bindings {
		if seen[b.Var] {
			fail(b.VarPos, "duplicate symbol %q", b.Var)
		}
		seen[b.Var] = true
		boundTypes[i] = r.checkExpr(b.Bound)
		if boundTypes[i].Kind() != types.Int {
			fail(b.VarPos, "loop bound for %q must be int, got %s", b.Var, boundTypes[i])
		}
	}

	r.syms.Push()
	for _, b := range bindings {
		r.syms.Define(&symtab.Symbol{Name: b.Var, Kind: symtab.VariableSymbol, Type: types.NewInt()})
	}
}

func (r *resolver) checkArrayLoopExpr(n *ast.ArrayLoopExpr) *types.ResolvedType {
	r.checkLoopBindings(n.Bindings)
	bodyType := r.checkExpr(n.Body)
	r.syms.Pop()
	return types.NewArray(bodyType, len(n.Bindings))
}

func (r *resolver) checkSumLoopExpr(n *ast.SumLoopExpr) *types.ResolvedType {
	r.checkLoopBindings(n.Bindings)
	bodyType := r.checkExpr(n.Body)
	r.syms.Pop()
	if !bodyType.IsNumeric() {
		fail(spanStart(n.Body), "`sum` body must be int or float, got %s", bodyType)
	}
	return bodyType
}
