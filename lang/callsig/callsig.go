// Package callsig classifies a function's arguments into the System V
// AMD64 registers or stack slots they're passed in, and records the
// assembly needed to pop them back out of the calling convention's
// temporary stack staging area into those registers. Grounded directly
// on original_source/call_signature/call_signature.cpp.
package callsig

import (
	"fmt"

	"github.com/mna/jplc/lang/types"
)

// intRegs and floatRegs are the System V AMD64 integer and SSE argument
// registers, in calling-convention order.
var (
	intRegs   = []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}
	floatRegs = []string{"xmm0", "xmm1", "xmm2", "xmm3", "xmm4", "xmm5", "xmm6", "xmm7"}
)

// Class identifies where an argument is passed.
type Class int

const (
	// InReg means the argument is passed in a single register named by
	// Arg.Reg.
	InReg Class = iota
	// OnStack means the argument is passed on the stack, in the order
	// recorded by Signature.PushOrder.
	OnStack
)

// Arg describes where a single argument of a call is passed.
type Arg struct {
	Type  *types.ResolvedType
	Class Class
	Reg   string // valid only when Class == InReg
}

// Signature describes how to call a function with the given argument and
// return types, per the System V AMD64 calling convention as JPL uses it:
// bool/int and float scalars are classified independently into the
// integer and SSE register files, and an array or tuple return value
// reserves RDI for a hidden pointer to its caller-allocated storage.
// Every array or tuple argument is always passed on the stack (JPL passes
// them as a pointer-sized value plus dimensions, laid out by the caller),
// never in a register.
type Signature struct {
	// Args holds one entry per argument, in declaration order.
	Args []Arg
	// BytesOnStack is the total size of every stack-passed argument,
	// excluding register arguments and a struct return's hidden pointer.
	BytesOnStack int
	// PushOrder lists argument indices in the order they must be pushed:
	// stack arguments first (in reverse declaration order), then register
	// arguments (also in reverse declaration order), so the first-pushed
	// value ends up deepest on the stack.
	PushOrder []int
	// PopAssem holds one fragment of assembly per register argument (in
	// the same order as encountered while building Args), each popping
	// the previously-pushed value into that argument's register.
	PopAssem []string
	// Return is the function's declared return type.
	Return *types.ResolvedType
	// ReturnInHiddenPointer is true when Return is an array or tuple,
	// meaning the caller passes a pointer to caller-allocated storage for
	// the result in RDI, ahead of every other register argument.
	ReturnInHiddenPointer bool
}

// New classifies argTypes against retType into a Signature.
func New(argTypes []*types.ResolvedType, retType *types.ResolvedType) *Signature {
	sig := &Signature{Return: retType}

	totalInt, totalFloat := 0, 0
	if retType.Kind() == types.Array || retType.Kind() == types.Tuple {
		sig.ReturnInHiddenPointer = true
		totalInt++
	}

	type regArg struct {
		index int
		float bool
		reg   string
	}
	var regArgs []regArg
	var stackArgs []int

	for i, t := range argTypes {
		var a Arg
		a.Type = t

		switch t.Kind() {
		case types.Bool, types.Int:
			totalInt++
			if totalInt <= len(intRegs) {
				a.Class = InReg
				a.Reg = intRegs[totalInt-1]
				regArgs = append(regArgs, regArg{index: i, reg: a.Reg})
			} else {
				a.Class = OnStack
			}
		case types.Float:
			totalFloat++
			if totalFloat <= len(floatRegs) {
				a.Class = InReg
				a.Reg = floatRegs[totalFloat-1]
				regArgs = append(regArgs, regArg{index: i, float: true, reg: a.Reg})
			} else {
				a.Class = OnStack
			}
		case types.Array, types.Tuple:
			a.Class = OnStack
		default:
			panic(fmt.Sprintf("callsig: unrecognized type kind %v", t.Kind()))
		}

		if a.Class == OnStack {
			stackArgs = append(stackArgs, i)
			sig.BytesOnStack += t.Size()
		}
		sig.Args = append(sig.Args, a)
	}

	for i := len(stackArgs) - 1; i >= 0; i-- {
		sig.PushOrder = append(sig.PushOrder, stackArgs[i])
	}
	for i := len(regArgs) - 1; i >= 0; i-- {
		sig.PushOrder = append(sig.PushOrder, regArgs[i].index)
	}

	for _, ra := range regArgs {
		if ra.float {
			sig.PopAssem = append(sig.PopAssem, fmt.Sprintf("\tmovsd %s, [rsp]\n\tadd rsp, 8\n", ra.reg))
		} else {
			sig.PopAssem = append(sig.PopAssem, fmt.Sprintf("\tpop %s\n", ra.reg))
		}
	}

	return sig
}
