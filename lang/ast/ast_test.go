package ast

import (
	"fmt"
	"testing"

	"github.com/mna/jplc/lang/token"
	"github.com/mna/jplc/lang/types"
	"github.com/stretchr/testify/assert"
)

func TestExprBaseResolvedTypeRoundTrip(t *testing.T) {
	n := &IntExpr{Value: 3}
	assert.Nil(t, n.ResolvedType())
	n.SetResolvedType(types.NewInt())
	assert.Equal(t, types.NewInt(), n.ResolvedType())
}

func TestExprBaseExtensionSlotsDefaultEmpty(t *testing.T) {
	n := &IntExpr{Value: 3}
	assert.Nil(t, n.ConstValue())
	assert.False(t, n.IsTensorContraction())
	assert.Empty(t, n.ContractionEdges())

	n.SetConstValue(int64(3))
	n.SetTensorContraction(true)
	n.SetContractionEdges([]ContractionEdge{{From: "i", To: "j"}})

	assert.Equal(t, int64(3), n.ConstValue())
	assert.True(t, n.IsTensorContraction())
	assert.Equal(t, []ContractionEdge{{From: "i", To: "j"}}, n.ContractionEdges())
}

func TestBinOpStringsMatchOperatorText(t *testing.T) {
	cases := map[BinOp]string{
		Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%",
		Lt: "<", Gt: ">", Eq: "==", Neq: "!=", Leq: "<=", Geq: ">=",
		And: "&&", Or: "||",
	}
	for op, want := range cases {
		assert.Equal(t, want, op.String())
	}
}

func TestUnOpStrings(t *testing.T) {
	assert.Equal(t, "!", Not.String())
	assert.Equal(t, "-", Neg.String())
}

func TestChunkSpanUsesFirstAndLastCmd(t *testing.T) {
	c1 := &LetCmd{Pos: 5, RHS: &IntExpr{ValPos: 6, RawText: "1"}}
	c2 := &LetCmd{Pos: 10, RHS: &IntExpr{ValPos: 11, RawText: "2"}}
	chunk := &Chunk{Cmds: []Cmd{c1, c2}, EOF: 99}

	start, end := chunk.Span()
	assert.Equal(t, c1.Pos, start)
	_, wantEnd := c2.Span()
	assert.Equal(t, wantEnd, end)
}

func TestChunkSpanEmptyUsesEOF(t *testing.T) {
	chunk := &Chunk{EOF: 42}
	start, end := chunk.Span()
	assert.Equal(t, token.Pos(42), start)
	assert.Equal(t, token.Pos(42), end)
}

func TestChunkWalkVisitsEveryCmd(t *testing.T) {
	c1 := &LetCmd{RHS: &IntExpr{Value: 1}}
	c2 := &LetCmd{RHS: &IntExpr{Value: 2}}
	chunk := &Chunk{Cmds: []Cmd{c1, c2}}

	var seen []Node
	Walk(recordingVisitor{&seen}, chunk)

	assert.Contains(t, seen, Node(chunk))
	assert.Contains(t, seen, Node(c1))
	assert.Contains(t, seen, Node(c2))
}

func TestChunkFormatIncludesNameAndCmdCount(t *testing.T) {
	chunk := &Chunk{Name: "prog.jpl", Cmds: []Cmd{&LetCmd{RHS: &IntExpr{}}}}
	out := fmt.Sprintf("%v", chunk)
	assert.Contains(t, out, "chunk")
	assert.Contains(t, out, "prog.jpl")
}

type recordingVisitor struct {
	seen *[]Node
}

func (r recordingVisitor) Visit(n Node) Visitor {
	*r.seen = append(*r.seen, n)
	return r
}

func (r recordingVisitor) VisitEnd(Node) {}
