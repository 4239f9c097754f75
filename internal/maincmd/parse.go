package maincmd

import (
	"context"
	"os"

	"github.com/mna/jplc/internal/diag"
	"github.com/mna/jplc/lang/parser"
	"github.com/mna/jplc/lang/token"
	"github.com/mna/mainer"
)

// Parse runs the scanner and parser phases, printing the resulting
// abstract syntax tree. Adapted from
// mna-nenuphar/internal/maincmd/parse.go's ast.Printer-based dump,
// generalized to spec.md §6's single-file `-p` flag. Each node formats
// only its own label, so the tree is printed by the same indented walk
// `-t` uses (typedump.go's printAnnotated); before resolution no
// expression carries a type, so only the labels appear.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	name := args[0]
	src, err := os.ReadFile(name)
	if err != nil {
		diag.Failed(stdio.Stderr, err)
		return err
	}

	fset := token.NewFileSet()
	chunk, perr := parser.ParseFile(fset, name, src)
	if chunk != nil {
		printAnnotated(stdio.Stdout, chunk)
	}

	if perr != nil {
		diag.Failed(stdio.Stderr, perr)
		return perr
	}
	diag.Succeeded(stdio.Stderr)
	return nil
}
