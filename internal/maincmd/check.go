package maincmd

import (
	"context"
	"os"

	"github.com/mna/jplc/internal/diag"
	"github.com/mna/jplc/lang/parser"
	"github.com/mna/jplc/lang/resolver"
	"github.com/mna/jplc/lang/symtab"
	"github.com/mna/jplc/lang/token"
	"github.com/mna/mainer"
)

// Check runs the scanner, parser and resolver phases, printing the
// resulting tree annotated with each expression's resolved type.
// Adapted from mna-nenuphar/internal/maincmd/resolve.go, generalized to
// spec.md §6's single-file `-t` flag.
func (c *Cmd) Check(ctx context.Context, stdio mainer.Stdio, args []string) error {
	name := args[0]
	src, err := os.ReadFile(name)
	if err != nil {
		diag.Failed(stdio.Stderr, err)
		return err
	}

	fset := token.NewFileSet()
	chunk, perr := parser.ParseFile(fset, name, src)
	if perr != nil {
		diag.Failed(stdio.Stderr, perr)
		return perr
	}

	start, _ := chunk.Span()
	file := fset.File(start)
	syms := symtab.New()
	if rerr := resolver.ResolveChunk(file, chunk, syms); rerr != nil {
		diag.Failed(stdio.Stderr, rerr)
		return rerr
	}

	printAnnotated(stdio.Stdout, chunk)
	diag.Succeeded(stdio.Stderr)
	return nil
}
