package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/jplc/internal/diag"
	"github.com/mna/jplc/lang/codegen"
	"github.com/mna/jplc/lang/parser"
	"github.com/mna/jplc/lang/resolver"
	"github.com/mna/jplc/lang/symtab"
	"github.com/mna/jplc/lang/token"
	"github.com/mna/mainer"
)

// Compile runs the full pipeline — scan, parse, resolve, generate —
// and writes the emitted NASM assembly to stdout. This is the default
// phase, run whenever none of -l/-p/-t is given.
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
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

	asm, gerr := codegen.Generate(chunk, syms, codegen.Options{Debug: c.Debug})
	if gerr != nil {
		diag.Failed(stdio.Stderr, gerr)
		return gerr
	}

	fmt.Fprint(stdio.Stdout, asm)
	diag.Succeeded(stdio.Stderr)
	return nil
}
