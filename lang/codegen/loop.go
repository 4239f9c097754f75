package codegen

import (
	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/stack"
	"github.com/mna/jplc/lang/types"
)

// loopDims evaluates and bounds-checks every binding's bound expression,
// storing each into its own fixed-offset stack slot reserved ahead of
// time (rather than relying on push order), so declaration order ([n1,
// n2, ...]) is independent of evaluation order. Returns the offset of
// each dimension's slot, in declaration order.
func (g *generator) loopDims(fr *frame, bindings []ast.LoopBinding, failMsg string) ([]int, error) {
	k := len(bindings)
	fr.emit("sub rsp, %d", 8*k)
	fr.push(8 * k)
	regionBase := -fr.stack.Size()

	dimOffset := make([]int, k)
	for i := range bindings {
		dimOffset[i] = regionBase + 8*i
	}

	for i, b := range bindings {
		if err := g.genExpr(fr, b.Bound); err != nil {
			return nil, err
		}
		fr.popInt("rax")

		failLbl := g.consts.NextJump()
		okLbl := g.consts.NextJump()
		fr.emit("cmp rax, 0")
		fr.emit("jg %s", okLbl)
		fr.label(failLbl)
		fr.failWith(failMsg)
		fr.label(okLbl)

		fr.emit("mov %s, rax", addr("rbp", dimOffset[i]))
	}
	return dimOffset, nil
}

// loopCounters pushes one zero-initialized int counter per binding,
// binding each name in fr's variable table, and returns their offsets in
// declaration order.
func loopCounters(fr *frame, bindings []ast.LoopBinding) []int {
	offsets := make([]int, len(bindings))
	for i, b := range bindings {
		fr.emit("push qword 0")
		fr.stack.Push(stack.DefaultBytes)
		offsets[i] = -fr.stack.Size()
		fr.vars.set(b.Var, offsets[i])
	}
	return offsets
}

// foldLinearIndex emits the row-major fold `((x0*n1+x1)*n2+x2)...` of the
// counters at counterOffset against the dimensions at dimOffset, leaving
// the element-granular linear index in rax.
func foldLinearIndex(fr *frame, dimOffset, counterOffset []int) {
	fr.emit("mov rax, 0")
	for i := range dimOffset {
		fr.emit("imul rax, %s", addr("rbp", dimOffset[i]))
		fr.emit("add rax, %s", addr("rbp", counterOffset[i]))
	}
}

// emitLoopNest recursively emits one nested counted loop per dimension,
// calling body at the innermost level. depth indexes into dimOffset/
// counterOffset.
func emitLoopNest(fr *frame, gen *generator, dimOffset, counterOffset []int, depth int, body func()) {
	if depth == len(dimOffset) {
		body()
		return
	}

	topLbl := gen.consts.NextJump()
	endLbl := gen.consts.NextJump()

	fr.label(topLbl)
	fr.emit("mov r10, %s", addr("rbp", counterOffset[depth]))
	fr.emit("mov r11, %s", addr("rbp", dimOffset[depth]))
	fr.emit("cmp r10, r11")
	fr.emit("jge %s", endLbl)

	emitLoopNest(fr, gen, dimOffset, counterOffset, depth+1, body)

	fr.emit("mov r10, %s", addr("rbp", counterOffset[depth]))
	fr.emit("add r10, 1")
	fr.emit("mov %s, r10", addr("rbp", counterOffset[depth]))
	fr.emit("jmp %s", topLbl)
	fr.label(endLbl)
}

// genArrayLoop lowers `array[x1:n1,...,xk:nk] body`, per spec.md §4.4:
// evaluate and bounds-check each ni, allocate a buffer for their
// product's worth of elements, then loop over every index combination
// storing the body's value at its linear position. The result is
// `{pointer, n1, ..., nk}`.
func (g *generator) genArrayLoop(fr *frame, n *ast.ArrayLoopExpr) error {
	elemSize := n.ResolvedType().Elem().Size()
	k := len(n.Bindings)

	dimOffset, err := g.loopDims(fr, n.Bindings, "array size must be positive")
	if err != nil {
		return err
	}

	fr.emit("mov rax, 1")
	for _, off := range dimOffset {
		fr.emit("imul rax, %s", addr("rbp", off))
	}
	fr.emit("imul rax, %d", elemSize)

	pad := fr.alignForCall()
	fr.emit("mov rdi, rax")
	fr.emit("call _jpl_alloc")
	fr.dropBytes(pad)

	fr.pushInt("rax")
	ptrOffset := -fr.stack.Size()

	counterOffset := loopCounters(fr, n.Bindings)

	var bodyErr error
	emitLoopNest(fr, g, dimOffset, counterOffset, 0, func() {
		if bodyErr != nil {
			return
		}
		if err := g.genExpr(fr, n.Body); err != nil {
			bodyErr = err
			return
		}
		foldLinearIndex(fr, dimOffset, counterOffset)
		fr.emit("imul rax, %d", elemSize)
		fr.emit("mov r10, %s", addr("rbp", ptrOffset))
		fr.emit("add r10, rax")
		for w := 0; w < elemSize; w += 8 {
			fr.emit("mov r11, [rsp+%d]", w)
			fr.emit("mov [r10+%d], r11", w)
		}
		fr.dropBytes(elemSize)
	})
	if bodyErr != nil {
		return bodyErr
	}

	fr.dropBytes(8 * k)
	return nil
}

// genSumLoop lowers `sum[x1:n1,...,xk:nk] body`: same bounds-checked
// dimension setup and loop nest as genArrayLoop, but accumulates the
// body's value into a scalar instead of storing into a buffer, and
// produces no array wrapper.
func (g *generator) genSumLoop(fr *frame, n *ast.SumLoopExpr) error {
	isFloat := n.ResolvedType().Kind() == types.Float

	baseline := fr.stack.Size()
	dimOffset, err := g.loopDims(fr, n.Bindings, "array size must be positive")
	if err != nil {
		return err
	}

	fr.emit("sub rsp, %d", stack.DefaultBytes)
	fr.push(stack.DefaultBytes)
	accOffset := -fr.stack.Size()
	if isFloat {
		zero := g.consts.Float(0)
		fr.emit("mov rax, [rel %s]", zero)
		fr.emit("mov %s, rax", addr("rbp", accOffset))
	} else {
		fr.emit("mov qword %s, 0", addr("rbp", accOffset))
	}

	counterOffset := loopCounters(fr, n.Bindings)

	var bodyErr error
	emitLoopNest(fr, g, dimOffset, counterOffset, 0, func() {
		if bodyErr != nil {
			return
		}
		if err := g.genExpr(fr, n.Body); err != nil {
			bodyErr = err
			return
		}
		if isFloat {
			fr.popFloat("xmm0")
			fr.emit("movsd xmm1, %s", addr("rbp", accOffset))
			fr.emit("addsd xmm1, xmm0")
			fr.emit("movsd %s, xmm1", addr("rbp", accOffset))
		} else {
			fr.popInt("rax")
			fr.emit("add %s, rax", addr("rbp", accOffset))
		}
	})
	if bodyErr != nil {
		return bodyErr
	}

	fr.dropBytes(len(n.Bindings) * stack.DefaultBytes)

	if isFloat {
		fr.emit("movsd xmm0, %s", addr("rbp", accOffset))
	} else {
		fr.emit("mov rax, %s", addr("rbp", accOffset))
	}
	fr.emit("add rsp, %d", fr.stack.Size()-baseline)
	fr.stack.Rewind(baseline)
	if isFloat {
		fr.pushFloatFromXmm("xmm0")
	} else {
		fr.pushInt("rax")
	}
	return nil
}
