package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dolthub/swiss"
)

// constKind discriminates the three literal shapes routed through the
// constant pool, per spec.md §4.4.
type constKind uint8

const (
	intConst constKind = iota
	floatConst
	stringConst
)

// constEntry is the dedup key: comparable so it can key a swiss.Map
// directly, one field populated per kind.
type constEntry struct {
	kind   constKind
	intVal int64
	fltVal float64
	strVal string
}

// constPool dedups integer, float, and string literals into a single
// `.data` table, grounded on original_source/generator/generator.cpp's
// const_table class (a linear lookup table there; here backed by
// github.com/dolthub/swiss for O(1) lookups on the hot per-literal path).
// It also issues the generator's monotonically increasing `.jumpN`
// labels, which share nothing with constant names but are specified
// alongside them in spec.md §4.4.
type constPool struct {
	index   *swiss.Map[constEntry, string]
	entries []constEntry
	names   []string
	nextJmp int
}

func newConstPool() *constPool {
	return &constPool{index: swiss.NewMap[constEntry, string](16)}
}

func (p *constPool) intern(e constEntry) string {
	if name, ok := p.index.Get(e); ok {
		return name
	}
	name := fmt.Sprintf("const%d", len(p.entries))
	p.index.Put(e, name)
	p.entries = append(p.entries, e)
	p.names = append(p.names, name)
	return name
}

// Int pools an integer literal, returning its constant label.
func (p *constPool) Int(v int64) string {
	return p.intern(constEntry{kind: intConst, intVal: v})
}

// Float pools a float literal, returning its constant label.
func (p *constPool) Float(v float64) string {
	return p.intern(constEntry{kind: floatConst, fltVal: v})
}

// String pools a string (used for assert/print messages and show/read
// type tags), returning its constant label.
func (p *constPool) String(s string) string {
	return p.intern(constEntry{kind: stringConst, strVal: s})
}

// NextJump returns a fresh `.jumpN` label, distinct from constant names.
func (p *constPool) NextJump() string {
	p.nextJmp++
	return fmt.Sprintf(".jump%d", p.nextJmp)
}

// formatFloat renders v the way the constant pool must: always with an
// explicit decimal point or exponent, so `1.0` never round-trips through
// NASM's `dq` as the integer `1`. This is the fix for the round-trip wart
// spec.md §9 calls out in the original's %.10g-based formatting.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Assem renders the whole pool as a `.data` section body, one line per
// entry in insertion order.
func (p *constPool) Assem() string {
	var b strings.Builder
	for i, e := range p.entries {
		b.WriteString(p.names[i])
		b.WriteString(": ")
		switch e.kind {
		case intConst:
			fmt.Fprintf(&b, "dq %d\n", e.intVal)
		case floatConst:
			fmt.Fprintf(&b, "dq %s\n", formatFloat(e.fltVal))
		case stringConst:
			fmt.Fprintf(&b, "db `%s`, 0\n", escapeString(e.strVal))
		}
	}
	return b.String()
}

// escapeString prepares a Go string for NASM's backtick-quoted literal
// syntax, which itself understands C-style escapes: a backslash is
// doubled, and the backtick delimiter and a newline are written as the
// escapes \` and \n.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
