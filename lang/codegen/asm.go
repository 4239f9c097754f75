package codegen

import "fmt"

// addr renders a `[reg+disp]`/`[reg-disp]` memory operand for a
// reg+offset displacement computed by the binding helpers.
func addr(reg string, offset int) string {
	if offset < 0 {
		return fmt.Sprintf("[%s-%d]", reg, -offset)
	}
	return fmt.Sprintf("[%s+%d]", reg, offset)
}

// copyWords emits size/8 straight-line `mov` pairs copying size bytes
// from srcReg+srcOff to rsp+dstOff, via r10 — the "copy the named
// region... via r10" rule of spec.md §4.4's Variable expression
// lowering. size is always a compile-time multiple of 8 (every JPL
// value's size is, per §3), so this unrolls rather than looping.
func copyWords(fr *frame, srcReg string, srcOff, dstOff, size int) {
	for w := 0; w < size; w += 8 {
		fr.emit("mov r10, %s", addr(srcReg, srcOff+w))
		fr.emit("mov [rsp+%d], r10", dstOff+w)
	}
}
