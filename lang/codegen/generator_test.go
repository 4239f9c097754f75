package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntimeNamePrefixesOnlyIntrinsics(t *testing.T) {
	assert.Equal(t, "_sqrt", runtimeName("sqrt"))
	assert.Equal(t, "_to_float", runtimeName("to_float"))
	assert.Equal(t, "userFn", runtimeName("userFn"))
}

func TestPredeclareIntrinsicsCoversEveryMathFunction(t *testing.T) {
	g := newTestGenerator()
	g.predeclareIntrinsics()

	for _, name := range append(append([]string{}, unaryMathFns...), binaryMathFns...) {
		_, ok := g.funcSigs[name]
		assert.True(t, ok, "missing signature for %s", name)
	}
	_, ok := g.funcSigs["to_float"]
	assert.True(t, ok)
	_, ok = g.funcSigs["to_int"]
	assert.True(t, ok)
}
