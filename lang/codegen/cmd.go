package codegen

import (
	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/callsig"
	"github.com/mna/jplc/lang/stack"
	"github.com/mna/jplc/lang/types"
	"github.com/pkg/errors"
)

// genFn lowers one `fn` declaration into a labeled assembly body, per
// spec.md §4.4's function prologue/epilogue convention: `push rbp; mov
// rbp, rsp`, an optional hidden return-pointer capture, each parameter
// bound per its already-computed call signature, the body's statements,
// and (only if the body doesn't itself end in a return) a default
// epilogue. Unlike _jpl_main, a nested function never saves r12 — it
// reaches globals through its variable table's parent chain instead
// (varTable.lookupFrom).
func (g *generator) genFn(fn *ast.FnCmd) (string, error) {
	sig := g.funcSigs[fn.Name]

	fr := newFrame(g, g.mainVars)
	fr.label(fn.Name)
	fr.emit("push rbp")
	fr.emit("mov rbp, rsp")

	if sig.ReturnInHiddenPointer {
		fr.pushInt("rdi")
		fr.retHiddenPtr = true
		fr.hiddenPtrOffset = -fr.stack.Size()
	}

	stackCursor := 16
	for i, p := range fn.Params {
		a := sig.Args[i]
		switch a.Class {
		case callsig.InReg:
			if a.Type.Kind() == types.Float {
				fr.pushFloatFromXmm(a.Reg)
			} else {
				fr.pushInt(a.Reg)
			}
			bindBindingAt(fr, p, a.Type, -fr.stack.Size())
		case callsig.OnStack:
			bindBindingAt(fr, p, a.Type, stackCursor)
			stackCursor += a.Type.Size()
		}
	}

	for _, st := range fn.Body {
		if err := g.genStmt(fr, st); err != nil {
			return "", err
		}
	}
	if len(fn.Body) == 0 {
		g.genDefaultEpilogue(fr)
	} else if _, ok := fn.Body[len(fn.Body)-1].(*ast.ReturnStmt); !ok {
		g.genDefaultEpilogue(fr)
	}

	return fr.buf.String(), nil
}

// genDefaultEpilogue tears down a frame that fell off the end of its
// body without an explicit return. Per spec.md §4.4, for a function
// returning an aggregate this still must leave rax holding the hidden
// return pointer; the resolver has already rejected any function whose
// control flow can actually reach here without every path having run a
// ReturnStmt earlier in the body.
func (g *generator) genDefaultEpilogue(fr *frame) {
	if fr.retHiddenPtr {
		fr.emit("mov rax, %s", addr("rbp", fr.hiddenPtrOffset))
	}
	fr.emit("add rsp, %d", fr.stack.Size())
	fr.emit("pop rbp")
	fr.emit("ret")
}

// genLet lowers a `let` binding shared by both the top-level body
// (LetCmd) and a function body (LetStmt): evaluate the right-hand side,
// leaving it at the new top of stack, then bind its name(s) there.
func (g *generator) genLet(fr *frame, lhs ast.Lvalue, rhs ast.Expr) error {
	if err := g.genExpr(fr, rhs); err != nil {
		return err
	}
	bindLvalueAt(fr, lhs, rhs.ResolvedType(), -fr.stack.Size())
	return nil
}

// genAssert lowers an `assert` shared by both the top-level body
// (AssertCmd) and a function body (AssertStmt): evaluate the condition,
// and call into the runtime's failure path unless it's true.
func (g *generator) genAssert(fr *frame, cond ast.Expr, message string) error {
	if err := g.genExpr(fr, cond); err != nil {
		return err
	}
	fr.popInt("rax")
	okLbl := g.consts.NextJump()
	fr.emit("cmp rax, 0")
	fr.emit("jne %s", okLbl)
	fr.failWith(message)
	fr.label(okLbl)
	return nil
}

// genStmt lowers one statement inside a function body.
func (g *generator) genStmt(fr *frame, s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.LetStmt:
		return g.genLet(fr, n.LHS, n.RHS)
	case *ast.AssertStmt:
		return g.genAssert(fr, n.Cond, n.Message)
	case *ast.ReturnStmt:
		return g.genReturnStmt(fr, n)
	default:
		return errors.Errorf("codegen: unsupported statement %T", s)
	}
}

// genReturnStmt lowers `return e`: evaluate e, place it where the
// caller expects it (rax/xmm0 for a scalar, memcpy'd through the hidden
// pointer for an aggregate), then tear down the frame.
func (g *generator) genReturnStmt(fr *frame, n *ast.ReturnStmt) error {
	if err := g.genExpr(fr, n.Value); err != nil {
		return err
	}
	retType := n.Value.ResolvedType()

	switch {
	case fr.retHiddenPtr:
		size := retType.Size()
		fr.emit("mov r11, %s", addr("rbp", fr.hiddenPtrOffset))
		for w := 0; w < size; w += 8 {
			fr.emit("mov r10, [rsp+%d]", w)
			fr.emit("mov [r11+%d], r10", w)
		}
		fr.emit("mov rax, r11")
	case retType.Kind() == types.Float:
		fr.emit("movsd xmm0, [rsp]")
	default:
		fr.emit("mov rax, [rsp]")
	}

	fr.emit("add rsp, %d", fr.stack.Size())
	fr.emit("pop rbp")
	fr.emit("ret")
	return nil
}

// genTopLevelCmd lowers one top-level command into the _jpl_main body.
// `fn` declarations are handled separately by Generate/genFn and never
// reach here.
func (g *generator) genTopLevelCmd(fr *frame, cmd ast.Cmd) error {
	switch n := cmd.(type) {
	case *ast.LetCmd:
		return g.genLet(fr, n.LHS, n.RHS)
	case *ast.AssertCmd:
		return g.genAssert(fr, n.Cond, n.Message)
	case *ast.PrintCmd:
		return g.genPrintCmd(fr, n)
	case *ast.ShowCmd:
		return g.genShowCmd(fr, n)
	case *ast.TimeCmd:
		return g.genTimeCmd(fr, n)
	case *ast.ReadCmd:
		return g.genReadCmd(fr, n)
	case *ast.WriteCmd:
		return g.genWriteCmd(fr, n)
	case *ast.TypeCmd:
		return nil
	default:
		return errors.Errorf("codegen: unsupported command %T", cmd)
	}
}

// genPrintCmd lowers `print <string>`: a pooled C string and a single
// runtime call.
func (g *generator) genPrintCmd(fr *frame, n *ast.PrintCmd) error {
	name := g.consts.String(n.Message)
	pad := fr.alignForCall()
	fr.emit("lea rdi, [rel %s]", name)
	fr.emit("call _print")
	fr.dropBytes(pad)
	return nil
}

// genShowCmd lowers `show <expr>`: evaluate the expression, then call
// the runtime's type-directed printer with a pointer to the pushed
// value and a pooled S-expression spelling of its type. The value's
// address is captured into rsi before any alignment padding is pushed,
// since `lea` snapshots a concrete runtime address, not a relative
// expression re-evaluated after rsp moves again.
func (g *generator) genShowCmd(fr *frame, n *ast.ShowCmd) error {
	if err := g.genExpr(fr, n.Expr); err != nil {
		return err
	}
	size := n.Expr.ResolvedType().Size()
	tyName := g.consts.String(n.Expr.ResolvedType().SExpression())

	fr.emit("lea rsi, [rsp]")
	pad := fr.alignForCall()
	fr.emit("lea rdi, [rel %s]", tyName)
	fr.emit("call _show")
	fr.dropBytes(pad)
	fr.dropBytes(size)
	return nil
}

// genReadCmd lowers `read image <filename> to <arg>`: reserve stack
// space for the {pointer, rows, cols} image struct, hand the runtime a
// pointer to it to fill in (including allocating the pixel buffer
// itself), then bind the argument to it.
func (g *generator) genReadCmd(fr *frame, n *ast.ReadCmd) error {
	size := types.ImageType().Size()
	fr.emit("sub rsp, %d", size)
	fr.push(size)
	fr.emit("lea rsi, [rsp]")

	nameLbl := g.consts.String(n.Filename)
	pad := fr.alignForCall()
	fr.emit("lea rdi, [rel %s]", nameLbl)
	fr.emit("call _read_image")
	fr.dropBytes(pad)

	bindArgAt(fr, n.Arg, -fr.stack.Size())
	return nil
}

// genWriteCmd lowers `write image <expr> to <filename>`: evaluate the
// image value and hand the runtime a pointer to it plus the pooled
// output filename.
func (g *generator) genWriteCmd(fr *frame, n *ast.WriteCmd) error {
	if err := g.genExpr(fr, n.Expr); err != nil {
		return err
	}
	size := n.Expr.ResolvedType().Size()
	fr.emit("lea rdi, [rsp]")

	nameLbl := g.consts.String(n.Filename)
	pad := fr.alignForCall()
	fr.emit("lea rsi, [rel %s]", nameLbl)
	fr.emit("call _write_image")
	fr.dropBytes(pad)
	fr.dropBytes(size)
	return nil
}

// genTimeCmd lowers `time <cmd>`, a supplemented feature (SPEC_FULL.md
// §7): sample the runtime clock before and after the wrapped command,
// and report the elapsed seconds through the runtime's timer printer.
func (g *generator) genTimeCmd(fr *frame, n *ast.TimeCmd) error {
	pad := fr.alignForCall()
	fr.emit("call _get_time")
	fr.dropBytes(pad)
	fr.pushFloatFromXmm("xmm0")
	startOffset := -fr.stack.Size()

	if err := g.genTopLevelCmd(fr, n.Wrapped); err != nil {
		return err
	}

	pad2 := fr.alignForCall()
	fr.emit("call _get_time")
	fr.dropBytes(pad2)
	fr.emit("movsd xmm1, %s", addr("rbp", startOffset))
	fr.emit("subsd xmm0, xmm1")

	pad3 := fr.alignForCall()
	fr.emit("call _print_time")
	fr.dropBytes(pad3)

	fr.dropBytes(stack.DefaultBytes)
	return nil
}
