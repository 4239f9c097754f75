// Package maincmd implements the jplc command-line front end: flag
// parsing and dispatch to one of the four compiler phases (lex, parse,
// check, compile), following mna-nenuphar/internal/maincmd.go's Cmd
// struct + flag-tag + reflection-dispatch shape, generalized from that
// tool's multi-file subcommands to spec.md §6's single-file,
// priority-ordered flag CLI (`compiler [flags] <filename>`).
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "jplc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <filename>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <filename>
       %[1]s -h|--help
       %[1]s -v|--version

Whole-program ahead-of-time compiler for the JPL array language. Reads
<filename>, and on success emits x86-64 NASM assembly to stdout, ready to
be assembled and linked against the JPL runtime library.

Flags are exclusive and evaluated in priority order; the first one set
wins:
       -l --lex                  Lex only: print one token kind per
                                 line, with literal text for tokens
                                 other than NEWLINE/EOF.
       -p --parse                Parse only: print the resulting
                                 abstract syntax tree.
       -t --check                Type-check only: resolve the parsed
                                 tree and print it annotated with
                                 resolved types.
       (none of the above)       Full compile: lex, parse, type-check
                                 and emit assembly.

       --debug                   Annotate emitted assembly with
                                 "; START"/"; END" comments bracketing
                                 each lowered expression.
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

More information on the jplc repository:
       https://github.com/mna/jplc
`, binName)
)

// Cmd is the jplc process entry point, populated by mainer's flag
// parser from os.Args before Main runs the selected phase.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Lex   bool `flag:"l,lex"`
	Parse bool `flag:"p,parse"`
	Check bool `flag:"t,check"`
	Debug bool `flag:"debug"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(map[string]bool) {}

// Validate picks the phase to run from the exclusive -l/-p/-t flags
// (full compile if none are set) and requires exactly one input file,
// per spec.md §6's `compiler [flags] <filename>` grammar.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) != 1 {
		return errors.New("expected exactly one input file")
	}

	cmdName := "compile"
	switch {
	case c.Lex:
		cmdName = "lex"
	case c.Parse:
		cmdName = "parse"
	case c.Check:
		cmdName = "check"
	}

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args); err != nil {
		// each phase prints its own "Compilation failed" diagnostic
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are those that take a mainer.Stdio and a slice of
// strings as input, and return an error as output, exactly as the
// teacher's buildCmds reflects over *Cmd's methods.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
