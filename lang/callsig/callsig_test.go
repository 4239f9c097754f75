package callsig_test

import (
	"testing"

	"github.com/mna/jplc/lang/callsig"
	"github.com/mna/jplc/lang/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScalarArgsUseRegisters(t *testing.T) {
	sig := callsig.New([]*types.ResolvedType{types.NewInt(), types.NewFloat()}, types.NewInt())
	require.Len(t, sig.Args, 2)
	assert.Equal(t, callsig.InReg, sig.Args[0].Class)
	assert.Equal(t, "rdi", sig.Args[0].Reg)
	assert.Equal(t, callsig.InReg, sig.Args[1].Class)
	assert.Equal(t, "xmm0", sig.Args[1].Reg)
	assert.Equal(t, 0, sig.BytesOnStack)
	assert.False(t, sig.ReturnInHiddenPointer)
}

func TestNewArrayReturnReservesHiddenPointer(t *testing.T) {
	sig := callsig.New([]*types.ResolvedType{types.NewInt()}, types.NewArray(types.NewInt(), 1))
	require.True(t, sig.ReturnInHiddenPointer)
	// the hidden return pointer consumes the first integer register, so
	// the first declared int argument spills to rsi, not rdi.
	assert.Equal(t, "rsi", sig.Args[0].Reg)
}

func TestNewArrayArgumentAlwaysOnStack(t *testing.T) {
	sig := callsig.New([]*types.ResolvedType{types.NewArray(types.NewInt(), 1)}, types.NewInt())
	assert.Equal(t, callsig.OnStack, sig.Args[0].Class)
	assert.Equal(t, types.NewArray(types.NewInt(), 1).Size(), sig.BytesOnStack)
}

func TestNewOverflowingIntArgsSpillToStack(t *testing.T) {
	argTypes := make([]*types.ResolvedType, 7)
	for i := range argTypes {
		argTypes[i] = types.NewInt()
	}
	sig := callsig.New(argTypes, types.NewInt())
	for i := 0; i < 6; i++ {
		assert.Equal(t, callsig.InReg, sig.Args[i].Class)
	}
	assert.Equal(t, callsig.OnStack, sig.Args[6].Class)
	assert.Equal(t, 8, sig.BytesOnStack)
}

func TestNewPushOrderStackBeforeRegistersBothReversed(t *testing.T) {
	sig := callsig.New([]*types.ResolvedType{
		types.NewInt(),
		types.NewArray(types.NewInt(), 1),
		types.NewFloat(),
	}, types.NewInt())
	// index 1 (array) is the only stack arg; indices 0 and 2 are register
	// args pushed in reverse: 2 then 0.
	assert.Equal(t, []int{1, 2, 0}, sig.PushOrder)
}

func TestNewPopAssemMatchesRegKind(t *testing.T) {
	sig := callsig.New([]*types.ResolvedType{types.NewInt(), types.NewFloat()}, types.NewInt())
	require.Len(t, sig.PopAssem, 2)
	assert.Contains(t, sig.PopAssem[0], "pop rdi")
	assert.Contains(t, sig.PopAssem[1], "movsd xmm0, [rsp]")
}
