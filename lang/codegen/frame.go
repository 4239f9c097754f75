package codegen

import (
	"fmt"
	"strings"

	"github.com/mna/jplc/lang/stack"
)

// frame is one function's (or the top-level _jpl_main body's) lowering
// context: its own abstract stack and variable table, sharing the
// generator's constant pool and debug flag. Grounded on
// original_source/generator/generator.cpp's main_generator/fn_generator
// split, collapsed here into a single type since Go has no inheritance —
// the top-level body and every `fn` body are each just a frame with a
// different variable-table parent and a different prologue/epilogue.
type frame struct {
	gen   *generator
	vars  *varTable
	stack *stack.Frame
	buf   strings.Builder

	// retHiddenPtr and hiddenPtrOffset are set by genFn when this frame
	// belongs to a function returning an aggregate: the caller's return
	// storage pointer, captured from rdi at entry, lives at this frame's
	// own offset hiddenPtrOffset.
	retHiddenPtr   bool
	hiddenPtrOffset int
}

func newFrame(gen *generator, parent *varTable) *frame {
	return &frame{gen: gen, vars: newVarTable(parent), stack: stack.New()}
}

// emit appends a formatted instruction line, indented one tab as NASM
// convention expects for non-label lines.
func (fr *frame) emit(format string, args ...interface{}) {
	fmt.Fprintf(&fr.buf, "\t"+format+"\n", args...)
}

// raw appends a line with no automatic indentation, for labels.
func (fr *frame) raw(s string) {
	fr.buf.WriteString(s)
	fr.buf.WriteString("\n")
}

// label emits a NASM label line (`name:`).
func (fr *frame) label(name string) {
	fr.raw(name + ":")
}

// startComment/endComment emit the `-debug` START/END bracketing comments
// the original generator threads through every generate_expr_X/
// generate_stmt_X/generate_cmd_X call (generator.cpp, throughout). No-ops
// when debug mode is off.
func (fr *frame) startComment(what string) {
	if fr.gen.debug {
		fr.emit("; START %s", what)
	}
}

func (fr *frame) endComment(what string) {
	if fr.gen.debug {
		fr.emit("; END %s", what)
	}
}

// push accounts size anonymous bytes as pushed onto this frame's abstract
// stack, without binding a name.
func (fr *frame) push(size int) {
	fr.stack.Push(size)
}

// alignForCall emits padding (if needed) to keep the next `call`
// instruction's stack 16-byte aligned, per spec.md §4.3/§4.4, and
// accounts for it in the abstract stack so later pops know to remove it.
// Returns the number of padding bytes emitted (0 or 8).
func (fr *frame) alignForCall() int {
	if fr.stack.NeedsAlignment() {
		fr.emit("sub rsp, %d", stack.DefaultBytes)
		fr.push(stack.DefaultBytes)
		return stack.DefaultBytes
	}
	return 0
}

// dropBytes frees n anonymous bytes from the top of the abstract stack
// and RSP together, for any consumer that has finished with a pushed
// value (e.g. a statement discarding its pushed-but-unused expression, or
// a caller dropping stack-passed arguments after a call returns).
func (fr *frame) dropBytes(n int) {
	if n <= 0 {
		return
	}
	fr.emit("add rsp, %d", n)
	for remaining := n; remaining > 0; {
		remaining -= fr.stack.Pop()
	}
}

// pushInt pushes a 64-bit general-purpose register, the one-word push
// every int/bool/pointer value uses.
func (fr *frame) pushInt(reg string) {
	fr.emit("push %s", reg)
	fr.stack.Push(stack.DefaultBytes)
}

// popInt pops a one-word value into a general-purpose register.
func (fr *frame) popInt(reg string) {
	fr.emit("pop %s", reg)
	fr.stack.Pop()
}

// pushFloatFromXmm pushes an xmm register's low 64 bits, since `push`
// has no xmm form.
func (fr *frame) pushFloatFromXmm(reg string) {
	fr.emit("sub rsp, %d", stack.DefaultBytes)
	fr.emit("movsd [rsp], %s", reg)
	fr.stack.Push(stack.DefaultBytes)
}

// popFloat pops a one-word value from the stack into an xmm register.
func (fr *frame) popFloat(reg string) {
	fr.emit("movsd %s, [rsp]", reg)
	fr.emit("add rsp, %d", stack.DefaultBytes)
	fr.stack.Pop()
}

// callExtern emits a `call` to a fixed runtime/library symbol, wrapping
// it with whatever padding is needed to keep the call 16-byte aligned
// and removing that padding again once the call returns. Grounded on
// original_source/generator/generator.cpp's needs_alignment-guarded
// `sub rsp, 8` / `call` / `add rsp, 8` pattern, used around every runtime
// call site (not just user `fn` calls).
func (fr *frame) callExtern(name string) {
	pad := fr.alignForCall()
	fr.emit("call %s", name)
	fr.dropBytes(pad)
}
