// Package parser implements the recursive-descent, precedence-climbing
// parser that transforms a JPL token stream into an ast.Chunk. Grounded
// on mna-nenuphar/lang/parser/{parser.go,expr.go}'s panic/recover error
// discipline and Pratt-style expression climbing, generalized from the
// teacher's Lua-like grammar to JPL's array-oriented one per
// original_source/parser/parser.cpp and original_source/ast_node.
package parser

import (
	"fmt"
	gotoken "go/token"

	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/scanner"
	"github.com/mna/jplc/lang/token"
)

// errPanicMode is the sentinel panicked with on an unrecoverable parse
// error; it is caught at the command or function-body statement
// boundary, which then resynchronizes by skipping to the next newline.
var errPanicMode = fmt.Errorf("jplc/parser: panic mode")

type parser struct {
	file *token.File
	toks []scanner.TokenAndValue
	pos  int
	errs scanner.ErrorList
}

// ParseFile parses a single JPL source file into a Chunk. The error, if
// non-nil, is always a scanner.ErrorList.
func ParseFile(fset *token.FileSet, name string, src []byte) (*ast.Chunk, error) {
	file, toks, lexErr := scanner.ScanFile(fset, name, src)
	p := &parser{file: file, toks: toks}
	if lexErr != nil {
		if el, ok := lexErr.(scanner.ErrorList); ok {
			p.errs = append(p.errs, el...)
		}
	}

	chunk := p.parseChunk(name)

	if len(p.errs) == 0 {
		return chunk, nil
	}
	p.errs.Sort()
	return chunk, p.errs.Err()
}

func (p *parser) cur() scanner.TokenAndValue  { return p.toks[p.pos] }
func (p *parser) at(tok token.Token) bool     { return p.cur().Tok == tok }
func (p *parser) atEOF() bool                 { return p.cur().Tok == token.EOF }

func (p *parser) advance() scanner.TokenAndValue {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// expect consumes and returns the current token if it matches tok,
// otherwise records an error and panics with errPanicMode, to be
// recovered at the command/statement boundary.
func (p *parser) expect(tok token.Token) scanner.TokenAndValue {
	if !p.at(tok) {
		p.errorExpected(tok)
		panic(errPanicMode)
	}
	return p.advance()
}

func (p *parser) errorExpected(want token.Token) {
	p.error(fmt.Sprintf("expected %s, found %s", want, p.cur().Tok))
}

func (p *parser) error(msg string) {
	pos := p.file.Position(p.cur().Pos)
	p.errs.Add(gotoken.Position(pos), msg)
}

// skipNewlines consumes zero or more NEWLINE tokens.
func (p *parser) skipNewlines() {
	for p.at(token.NEWLINE) {
		p.advance()
	}
}

// expectEndOfCmd consumes the NEWLINE (or EOF) terminating a command or
// statement, erroring if there's a stray trailing token instead.
func (p *parser) expectEndOfCmd() {
	if p.at(token.NEWLINE) {
		p.advance()
		return
	}
	if p.atEOF() {
		return
	}
	p.error(fmt.Sprintf("unexpected trailing token %s after command", p.cur().Tok))
	panic(errPanicMode)
}

// resync skips tokens until the next NEWLINE or EOF, for recovering from
// a panic-mode error at the command boundary.
func (p *parser) resync() {
	for !p.at(token.NEWLINE) && !p.atEOF() {
		p.advance()
	}
	if p.at(token.NEWLINE) {
		p.advance()
	}
}

func (p *parser) parseChunk(name string) *ast.Chunk {
	chunk := &ast.Chunk{Name: name}
	p.skipNewlines()
	for !p.atEOF() {
		cmd := p.parseCmdRecover()
		if cmd != nil {
			chunk.Cmds = append(chunk.Cmds, cmd)
		}
		p.skipNewlines()
	}
	chunk.EOF = p.cur().Pos
	return chunk
}

// parseCmdRecover parses a single top-level command, recovering from an
// unrecoverable error by resynchronizing to the next command boundary and
// returning nil (spec.md's recoverable-vs-unrecoverable parser error
// discipline).
func (p *parser) parseCmdRecover() (cmd ast.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			if r == errPanicMode {
				p.resync()
				cmd = nil
				return
			}
			panic(r)
		}
	}()
	return p.parseCmd()
}
