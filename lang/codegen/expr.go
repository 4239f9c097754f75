package codegen

import (
	"fmt"
	"strings"

	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/stack"
	"github.com/mna/jplc/lang/types"
	"github.com/pkg/errors"
)

// genExpr lowers e onto fr, per spec.md §4.4's stack-machine discipline:
// on return, exactly e.ResolvedType().Size() fresh bytes sit on top of
// fr's stack. Grounded on original_source/generator/generator.cpp's
// generate_expr dispatch (ast_node::expr_node::NODE_TYPE switch); every
// case that source left as an HW10/HW11 TODO is implemented here from
// the spec's complete prose instead.
func (g *generator) genExpr(fr *frame, e ast.Expr) error {
	what := strings.TrimPrefix(fmt.Sprintf("%T", e), "*ast.")
	fr.startComment(what)
	defer fr.endComment(what)

	switch n := e.(type) {
	case *ast.IntExpr:
		return g.genIntLit(fr, n)
	case *ast.FloatExpr:
		return g.genFloatLit(fr, n)
	case *ast.TrueExpr:
		return g.genBoolLit(fr, true)
	case *ast.FalseExpr:
		return g.genBoolLit(fr, false)
	case *ast.VariableExpr:
		return g.genVariable(fr, n)
	case *ast.UnOpExpr:
		return g.genUnOp(fr, n)
	case *ast.BinOpExpr:
		return g.genBinOp(fr, n)
	case *ast.IfExpr:
		return g.genIf(fr, n)
	case *ast.CallExpr:
		return g.genCall(fr, n)
	case *ast.ArrayLiteralExpr:
		return g.genArrayLiteral(fr, n)
	case *ast.TupleLiteralExpr:
		return g.genTupleLiteral(fr, n)
	case *ast.ArrayIndexExpr:
		return g.genArrayIndex(fr, n)
	case *ast.TupleIndexExpr:
		return g.genTupleIndex(fr, n)
	case *ast.ArrayLoopExpr:
		return g.genArrayLoop(fr, n)
	case *ast.SumLoopExpr:
		return g.genSumLoop(fr, n)
	default:
		return errors.Errorf("codegen: unsupported expression %T", e)
	}
}

func (g *generator) genIntLit(fr *frame, n *ast.IntExpr) error {
	name := g.consts.Int(n.Value)
	fr.emit("mov rax, [rel %s]", name)
	fr.pushInt("rax")
	return nil
}

func (g *generator) genFloatLit(fr *frame, n *ast.FloatExpr) error {
	name := g.consts.Float(n.Value)
	fr.emit("mov rax, [rel %s]", name)
	fr.pushInt("rax")
	return nil
}

func (g *generator) genBoolLit(fr *frame, v bool) error {
	val := int64(0)
	if v {
		val = 1
	}
	fr.emit("mov rax, %d", val)
	fr.pushInt("rax")
	return nil
}

// genVariable copies the named binding's value onto the top of the
// stack, word by word, per spec.md §4.4's "Variable" lowering.
func (g *generator) genVariable(fr *frame, n *ast.VariableExpr) error {
	reg, offset, ok := fr.vars.lookup(n.Name)
	if !ok {
		return errors.Errorf("codegen: unbound variable %q", n.Name)
	}
	size := n.ResolvedType().Size()
	fr.emit("sub rsp, %d", size)
	copyWords(fr, reg, offset, 0, size)
	fr.push(size)
	return nil
}

func (g *generator) genUnOp(fr *frame, n *ast.UnOpExpr) error {
	if err := g.genExpr(fr, n.Operand); err != nil {
		return err
	}
	switch n.Op {
	case ast.Not:
		fr.popInt("rax")
		fr.emit("xor rax, 1")
		fr.pushInt("rax")
	case ast.Neg:
		switch n.Operand.ResolvedType().Kind() {
		case types.Float:
			fr.popFloat("xmm1")
			fr.emit("pxor xmm0, xmm0")
			fr.emit("subsd xmm0, xmm1")
			fr.pushFloatFromXmm("xmm0")
		default:
			fr.popInt("rax")
			fr.emit("neg rax")
			fr.pushInt("rax")
		}
	default:
		return errors.Errorf("codegen: unsupported unary operator %s", n.Op)
	}
	return nil
}

func (g *generator) genBinOp(fr *frame, n *ast.BinOpExpr) error {
	if n.Op == ast.And || n.Op == ast.Or {
		return g.genShortCircuit(fr, n)
	}

	// Right is lowered before Left (and so sits deeper on the stack),
	// matching original_source/generator/generator.cpp's
	// generate_expr_binop, which concatenates generate_expr(right) then
	// generate_expr(left) before popping lhs first into rax.
	operandKind := n.Left.ResolvedType().Kind()
	if err := g.genExpr(fr, n.Right); err != nil {
		return err
	}
	if err := g.genExpr(fr, n.Left); err != nil {
		return err
	}

	switch operandKind {
	case types.Int:
		return g.genIntBinOp(fr, n.Op)
	case types.Float:
		return g.genFloatBinOp(fr, n.Op)
	case types.Bool:
		return g.genBoolBinOp(fr, n.Op)
	default:
		return errors.Errorf("codegen: binary operator %s not supported on %s", n.Op, operandKind)
	}
}

// genIntBinOp lowers `<int> op <int>`, with both operands already pushed
// (lhs on top). Grounded on spec.md §4.4's "Binary ints" rule.
func (g *generator) genIntBinOp(fr *frame, op ast.BinOp) error {
	fr.popInt("rax")
	fr.popInt("r10")
	switch op {
	case ast.Add:
		fr.emit("add rax, r10")
	case ast.Sub:
		fr.emit("sub rax, r10")
	case ast.Mul:
		fr.emit("imul rax, r10")
	case ast.Div:
		g.genIntDivCheck(fr, "divide by zero")
		fr.emit("cqo")
		fr.emit("idiv r10")
	case ast.Mod:
		g.genIntDivCheck(fr, "mod by zero")
		fr.emit("cqo")
		fr.emit("idiv r10")
		fr.emit("mov rax, rdx")
	case ast.Lt, ast.Gt, ast.Eq, ast.Neq, ast.Leq, ast.Geq:
		fr.emit("cmp rax, r10")
		fr.emit("%s al", setccFor(op))
		fr.emit("movzx rax, al")
	default:
		return errors.Errorf("codegen: unsupported int operator %s", op)
	}
	fr.pushInt("rax")
	return nil
}

// genIntDivCheck emits the divide/mod-by-zero guard shared by idiv's two
// uses: `cmp r10, 0; jne okLabel; <fail>; okLabel:`.
func (g *generator) genIntDivCheck(fr *frame, msg string) {
	okLbl := g.consts.NextJump()
	fr.emit("cmp r10, 0")
	fr.emit("jne %s", okLbl)
	fr.failWith(msg)
	fr.label(okLbl)
}

func setccFor(op ast.BinOp) string {
	switch op {
	case ast.Lt:
		return "setl"
	case ast.Gt:
		return "setg"
	case ast.Eq:
		return "sete"
	case ast.Neq:
		return "setne"
	case ast.Leq:
		return "setle"
	case ast.Geq:
		return "setge"
	default:
		return "sete"
	}
}

// genFloatBinOp lowers `<float> op <float>`, with both operands already
// pushed (lhs on top). Grounded on spec.md §4.4's "Binary floats" rule.
func (g *generator) genFloatBinOp(fr *frame, op ast.BinOp) error {
	fr.popFloat("xmm0")
	fr.popFloat("xmm1")
	switch op {
	case ast.Add:
		fr.emit("addsd xmm0, xmm1")
		fr.pushFloatFromXmm("xmm0")
	case ast.Sub:
		fr.emit("subsd xmm0, xmm1")
		fr.pushFloatFromXmm("xmm0")
	case ast.Mul:
		fr.emit("mulsd xmm0, xmm1")
		fr.pushFloatFromXmm("xmm0")
	case ast.Div:
		fr.emit("divsd xmm0, xmm1")
		fr.pushFloatFromXmm("xmm0")
	case ast.Mod:
		fr.callExtern("_fmod")
		fr.pushFloatFromXmm("xmm0")
	case ast.Lt, ast.Gt, ast.Eq, ast.Neq, ast.Leq, ast.Geq:
		g.floatCompare(fr, op)
		fr.pushInt("rax")
	default:
		return errors.Errorf("codegen: unsupported float operator %s", op)
	}
	return nil
}

// floatCompare leaves a 0/1 mask in rax. SSE2 only has cmp-less-than and
// cmp-less-or-equal mnemonics, so `>` and `>=` are computed by swapping
// the operand order: `a > b` is `b < a`.
func (g *generator) floatCompare(fr *frame, op ast.BinOp) {
	switch op {
	case ast.Lt:
		fr.emit("cmpltsd xmm0, xmm1")
		fr.emit("movq rax, xmm0")
	case ast.Leq:
		fr.emit("cmplesd xmm0, xmm1")
		fr.emit("movq rax, xmm0")
	case ast.Gt:
		fr.emit("cmpltsd xmm1, xmm0")
		fr.emit("movq rax, xmm1")
	case ast.Geq:
		fr.emit("cmplesd xmm1, xmm0")
		fr.emit("movq rax, xmm1")
	case ast.Eq:
		fr.emit("cmpeqsd xmm0, xmm1")
		fr.emit("movq rax, xmm0")
	case ast.Neq:
		fr.emit("cmpneqsd xmm0, xmm1")
		fr.emit("movq rax, xmm0")
	}
	fr.emit("and rax, 1")
}

// genBoolBinOp lowers `<bool> op <bool>` for the only non-short-circuit
// boolean operators, `==`/`!=`.
func (g *generator) genBoolBinOp(fr *frame, op ast.BinOp) error {
	fr.popInt("rax")
	fr.popInt("r10")
	fr.emit("cmp rax, r10")
	switch op {
	case ast.Eq:
		fr.emit("sete al")
	case ast.Neq:
		fr.emit("setne al")
	default:
		return errors.Errorf("codegen: unsupported bool operator %s", op)
	}
	fr.emit("movzx rax, al")
	fr.pushInt("rax")
	return nil
}

// genShortCircuit lowers `&&`/`||`, per spec.md §4.4: evaluate lhs, test
// it, and either take a "short" path that pushes the short-circuiting
// value without evaluating rhs, or evaluate rhs and push its value. Both
// paths are emitted (only one ever runs), so the abstract stack is
// rewound to a common baseline between them.
func (g *generator) genShortCircuit(fr *frame, n *ast.BinOpExpr) error {
	if err := g.genExpr(fr, n.Left); err != nil {
		return err
	}
	fr.popInt("rax")
	baseline := fr.stack.Size()

	shortLbl := g.consts.NextJump()
	endLbl := g.consts.NextJump()

	fr.emit("cmp rax, %d", shortCircuitTrigger(n.Op))
	fr.emit("je %s", shortLbl)

	if err := g.genExpr(fr, n.Right); err != nil {
		return err
	}
	fr.emit("jmp %s", endLbl)

	fr.stack.Rewind(baseline)
	fr.label(shortLbl)
	fr.emit("mov rax, %d", shortCircuitTrigger(n.Op))
	fr.pushInt("rax")

	fr.label(endLbl)
	return nil
}

// shortCircuitTrigger is the lhs value that short-circuits evaluation:
// `&&` short-circuits on a false (0) lhs, `||` on a true (1) lhs.
func shortCircuitTrigger(op ast.BinOp) int {
	if op == ast.And {
		return 0
	}
	return 1
}

// genIf lowers `if cond then t else f`. Both branches are emitted (only
// one ever runs), so the abstract stack is rewound between them, mirroring
// genShortCircuit.
func (g *generator) genIf(fr *frame, n *ast.IfExpr) error {
	if err := g.genExpr(fr, n.Cond); err != nil {
		return err
	}
	fr.popInt("rax")
	baseline := fr.stack.Size()

	elseLbl := g.consts.NextJump()
	endLbl := g.consts.NextJump()

	fr.emit("cmp rax, 0")
	fr.emit("je %s", elseLbl)

	if err := g.genExpr(fr, n.Then); err != nil {
		return err
	}
	fr.emit("jmp %s", endLbl)

	fr.stack.Rewind(baseline)
	fr.label(elseLbl)
	if err := g.genExpr(fr, n.Else); err != nil {
		return err
	}

	fr.label(endLbl)
	return nil
}

// genCall lowers a function call per spec.md §4.3/§4.4: allocate the
// hidden return slot (if the callee returns an aggregate), pad for
// alignment, push every argument per the signature's push_order, pop
// register arguments back into their registers, point rdi at the return
// slot if needed, call, unwind the stack arguments and padding, and
// (for a scalar return) push the value returned in rax/xmm0.
func (g *generator) genCall(fr *frame, n *ast.CallExpr) error {
	sig, ok := fr.gen.funcSigs[n.Name]
	if !ok {
		return errors.Errorf("codegen: no signature for function %q", n.Name)
	}
	retType := n.ResolvedType()

	var retSlotSize, retSlotTop int
	if sig.ReturnInHiddenPointer {
		retSlotSize = retType.Size()
		fr.emit("sub rsp, %d", retSlotSize)
		fr.push(retSlotSize)
		retSlotTop = fr.stack.Size()
	}

	pad := 0
	if (fr.stack.Size()+sig.BytesOnStack)%stack.Alignment != 0 {
		fr.emit("sub rsp, %d", stack.DefaultBytes)
		fr.push(stack.DefaultBytes)
		pad = stack.DefaultBytes
	}

	argsBaseline := fr.stack.Size()
	for _, idx := range sig.PushOrder {
		if err := g.genExpr(fr, n.Args[idx]); err != nil {
			return err
		}
	}
	for _, snippet := range sig.PopAssem {
		fr.raw(strings.TrimRight(snippet, "\n"))
		fr.stack.Pop()
	}

	if sig.ReturnInHiddenPointer {
		off := fr.stack.Size() - retSlotTop
		if off > 0 {
			fr.emit("lea rdi, [rsp+%d]", off)
		} else {
			fr.emit("lea rdi, [rsp]")
		}
	}

	fr.emit("call %s", runtimeName(n.Name))

	if sig.BytesOnStack > 0 {
		fr.emit("add rsp, %d", sig.BytesOnStack)
	}
	fr.stack.Rewind(argsBaseline)

	if pad > 0 {
		fr.emit("add rsp, %d", pad)
		fr.stack.Pop()
	}

	if sig.ReturnInHiddenPointer {
		return nil
	}
	if retType.Kind() == types.Float {
		fr.pushFloatFromXmm("xmm0")
	} else {
		fr.pushInt("rax")
	}
	return nil
}

// genArrayLiteral lowers `[e1,...,en]`: each element is lowered
// right-to-left so they land contiguously on the stack in declaration
// order, then copied into a freshly allocated buffer and replaced by the
// `{pointer, count}` array value.
func (g *generator) genArrayLiteral(fr *frame, n *ast.ArrayLiteralExpr) error {
	elemSize := n.ResolvedType().Elem().Size()
	count := len(n.Elems)
	totalBytes := elemSize * count

	baseline := fr.stack.Size()
	for i := count - 1; i >= 0; i-- {
		if err := g.genExpr(fr, n.Elems[i]); err != nil {
			return err
		}
	}

	pad := fr.alignForCall()
	fr.emit("mov rdi, %d", totalBytes)
	fr.emit("call _jpl_alloc")
	fr.dropBytes(pad)

	for w := 0; w < totalBytes; w += 8 {
		fr.emit("mov r10, [rsp+%d]", w)
		fr.emit("mov [rax+%d], r10", w)
	}
	fr.emit("add rsp, %d", totalBytes)
	fr.stack.Rewind(baseline)

	fr.emit("mov r11, %d", count)
	fr.pushInt("r11")
	fr.pushInt("rax")
	return nil
}

// genTupleLiteral lowers `{e1,...,en}`: each field is lowered
// right-to-left, which already leaves them contiguous on the stack in
// increasing-address declaration order — exactly the wire layout a tuple
// value needs, with no further copying.
func (g *generator) genTupleLiteral(fr *frame, n *ast.TupleLiteralExpr) error {
	for i := len(n.Elems) - 1; i >= 0; i-- {
		if err := g.genExpr(fr, n.Elems[i]); err != nil {
			return err
		}
	}
	return nil
}

// genArrayIndex lowers `arr[i1,...,ik]`: the array value and every index
// are pushed, each index is bounds-checked against its dimension, folded
// into a row-major linear element offset, and the element is copied out
// of the buffer into a freshly pushed region.
func (g *generator) genArrayIndex(fr *frame, n *ast.ArrayIndexExpr) error {
	arrType := n.Array.ResolvedType()
	rank := arrType.Rank()
	elemSize := arrType.Elem().Size()

	baseline := fr.stack.Size()
	if err := g.genExpr(fr, n.Array); err != nil {
		return err
	}
	for _, idxExpr := range n.Indices {
		if err := g.genExpr(fr, idxExpr); err != nil {
			return err
		}
	}

	ptrOff := 8 * rank
	fr.emit("mov rax, 0")
	for i := 0; i < rank; i++ {
		idxOff := 8 * (rank - 1 - i)
		dimOff := ptrOff + 8*(i+1)
		fr.emit("mov r10, [rsp+%d]", idxOff)
		fr.emit("mov r11, [rsp+%d]", dimOff)

		failLbl := g.consts.NextJump()
		okLbl := g.consts.NextJump()
		fr.emit("cmp r10, 0")
		fr.emit("jl %s", failLbl)
		fr.emit("cmp r10, r11")
		fr.emit("jl %s", okLbl)
		fr.label(failLbl)
		fr.failWith("index out of bounds")
		fr.label(okLbl)

		fr.emit("imul rax, r11")
		fr.emit("add rax, r10")
	}
	fr.emit("imul rax, %d", elemSize)
	fr.emit("mov r10, [rsp+%d]", ptrOff)
	fr.emit("add r10, rax")

	dropTotal := 8*rank + arrType.Size()
	fr.emit("add rsp, %d", dropTotal)
	fr.stack.Rewind(baseline)

	fr.emit("sub rsp, %d", elemSize)
	fr.push(elemSize)
	for w := 0; w < elemSize; w += 8 {
		fr.emit("mov r11, [r10+%d]", w)
		fr.emit("mov [rsp+%d], r11", w)
	}
	return nil
}

// genTupleIndex lowers `tup{k}`: the tuple value is pushed, the desired
// field is shifted down to the bottom of the tuple's region, and the
// rest of the region is dropped.
func (g *generator) genTupleIndex(fr *frame, n *ast.TupleIndexExpr) error {
	tupType := n.Tuple.ResolvedType()
	fields := tupType.Fields()
	idx := int(n.Index)

	offset := 0
	for i := 0; i < idx; i++ {
		offset += fields[i].Size()
	}
	fieldSize := fields[idx].Size()
	totalSize := tupType.Size()

	baseline := fr.stack.Size()
	if err := g.genExpr(fr, n.Tuple); err != nil {
		return err
	}

	for w := 0; w < fieldSize; w += 8 {
		fr.emit("mov r10, [rsp+%d]", offset+w)
		fr.emit("mov [rsp+%d], r10", w)
	}
	fr.emit("add rsp, %d", totalSize-fieldSize)
	fr.stack.Rewind(baseline)
	fr.push(fieldSize)
	return nil
}
