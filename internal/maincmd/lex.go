package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/jplc/internal/diag"
	"github.com/mna/jplc/lang/scanner"
	"github.com/mna/jplc/lang/token"
	"github.com/mna/mainer"
)

// Lex runs the scanner phase only, printing one line per token: its
// kind, followed by its literal text for any token other than NEWLINE
// or EOF. Adapted from mna-nenuphar/internal/maincmd/tokenize.go,
// generalized from that tool's multi-file loop to spec.md §6's
// single-file `-l` flag.
func (c *Cmd) Lex(ctx context.Context, stdio mainer.Stdio, args []string) error {
	name := args[0]
	src, err := os.ReadFile(name)
	if err != nil {
		diag.Failed(stdio.Stderr, err)
		return err
	}

	fset := token.NewFileSet()
	_, toks, serr := scanner.ScanFile(fset, name, src)
	for _, tv := range toks {
		fmt.Fprint(stdio.Stdout, tv.Tok)
		if tv.Tok != token.NEWLINE && tv.Tok != token.EOF {
			fmt.Fprintf(stdio.Stdout, " %s", tv.Text)
		}
		fmt.Fprintln(stdio.Stdout)
	}

	if serr != nil {
		diag.Failed(stdio.Stderr, serr)
		return serr
	}
	diag.Succeeded(stdio.Stderr)
	return nil
}
