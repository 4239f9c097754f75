package maincmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mna/jplc/lang/ast"
)

// typeAnnotator walks a resolved chunk, printing one indented line per
// node: its own %v label, plus the resolved-type s-expression trailing
// any Expr node. There's no dedicated printer type in lang/ast (each
// node formats only its own label, per ast.go's format helper), so this
// visitor supplies the annotated dump the teacher's ast.Printer gave
// its `resolve` subcommand.
type typeAnnotator struct {
	w     io.Writer
	depth int
}

func (t *typeAnnotator) Visit(n ast.Node) ast.Visitor {
	fmt.Fprint(t.w, strings.Repeat("  ", t.depth))
	fmt.Fprintf(t.w, "%v", n)
	if e, ok := n.(ast.Expr); ok {
		if rt := e.ResolvedType(); rt != nil {
			fmt.Fprintf(t.w, " : %s", rt.SExpression())
		}
	}
	fmt.Fprintln(t.w)
	return &typeAnnotator{w: t.w, depth: t.depth + 1}
}

func (t *typeAnnotator) VisitEnd(ast.Node) {}

// printAnnotated prints chunk with each expression node's resolved type
// appended, per spec.md §6's `-t` introspection flag.
func printAnnotated(w io.Writer, chunk *ast.Chunk) {
	ast.Walk(&typeAnnotator{w: w}, chunk)
}
