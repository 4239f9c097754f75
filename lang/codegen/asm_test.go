package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddrFormatsPositiveAndNegativeOffsets(t *testing.T) {
	assert.Equal(t, "[rbp+16]", addr("rbp", 16))
	assert.Equal(t, "[rbp-8]", addr("rbp", -8))
	assert.Equal(t, "[rbp+0]", addr("rbp", 0))
}

func TestCopyWordsEmitsOnePairPerWord(t *testing.T) {
	fr := newTestFrame()
	copyWords(fr, "rbp", -16, 0, 16)

	out := fr.buf.String()
	assert.Contains(t, out, "mov r10, [rbp-16]")
	assert.Contains(t, out, "mov [rsp+0], r10")
	assert.Contains(t, out, "mov r10, [rbp-8]")
	assert.Contains(t, out, "mov [rsp+8], r10")
}
