// Package diag prints the compiler's pass/fail banner and error list to
// stderr, colorizing both when the destination is a real terminal. The
// colorization gate (NO_COLOR convention, isatty.IsTerminal/IsCygwinTerminal)
// is grounded on funvibe-funxy's internal/evaluator/builtins_term.go; the
// error-list printing itself reuses go/scanner.PrintError exactly as
// lang/scanner, lang/parser and lang/resolver already return their errors
// (a scanner.ErrorList) for.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mna/jplc/lang/scanner"
)

const (
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

// colorEnabled reports whether w should be colorized: only when w is an
// *os.File that is a real terminal, honoring the NO_COLOR convention
// (https://no-color.org/).
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func wrap(w io.Writer, color, s string) string {
	if !colorEnabled(w) {
		return s
	}
	return color + s + ansiReset
}

// Succeeded prints the "Compilation succeeded" banner to w.
func Succeeded(w io.Writer) {
	fmt.Fprintln(w, wrap(w, ansiGreen, "Compilation succeeded"))
}

// Failed prints the "Compilation failed" banner plus the underlying
// error to w. err is handed to scanner.PrintError, which knows how to
// expand a scanner.ErrorList (as returned by lang/scanner, lang/parser
// and lang/resolver) into one line per positioned error,
// or fall back to a single line for any other error.
func Failed(w io.Writer, err error) {
	fmt.Fprintln(w, wrap(w, ansiRed, "Compilation failed"))
	if err == nil {
		return
	}
	scanner.PrintError(w, err)
}
