package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstPoolDedupsEqualLiterals(t *testing.T) {
	p := newConstPool()
	a := p.Int(42)
	b := p.Int(42)
	assert.Equal(t, a, b)

	c := p.Int(43)
	assert.NotEqual(t, a, c)
}

func TestConstPoolDistinguishesKinds(t *testing.T) {
	p := newConstPool()
	i := p.Int(0)
	f := p.Float(0)
	s := p.String("0")
	assert.NotEqual(t, i, f)
	assert.NotEqual(t, i, s)
	assert.NotEqual(t, f, s)
}

func TestConstPoolNextJumpIsMonotonicAndDistinctFromConsts(t *testing.T) {
	p := newConstPool()
	j1 := p.NextJump()
	j2 := p.NextJump()
	assert.NotEqual(t, j1, j2)
	assert.NotEqual(t, j1, p.Int(1))
}

func TestFormatFloatAlwaysHasDecimalOrExponent(t *testing.T) {
	assert.Equal(t, "1.0", formatFloat(1))
	assert.Equal(t, "0.5", formatFloat(0.5))
}

func TestConstPoolAssemRendersEveryEntry(t *testing.T) {
	p := newConstPool()
	p.Int(7)
	p.Float(1.5)
	p.String("hi")

	out := p.Assem()
	assert.Contains(t, out, "dq 7")
	assert.Contains(t, out, "dq 1.5")
	assert.Contains(t, out, "db `hi`, 0")
}

func TestEscapeStringHandlesBackslashAndBacktick(t *testing.T) {
	assert.Equal(t, `a\\b`, escapeString(`a\b`))
	assert.Equal(t, "a\\`b", escapeString("a`b"))
}
