// Package scanner implements the hand-rolled JPL lexer: byte offsets in,
// a token stream out. Grounded on mna-nenuphar/lang/scanner/scanner.go's
// state-machine shape (peek/advance/ident/skipWhitespace) and reusing
// go/scanner.ErrorList for diagnostics exactly as the teacher does; the
// lexical grammar itself (keywords, operators, literals) is JPL's, per
// original_source/token/token.hpp and original_source/lexer/lexer.cpp.
package scanner

import (
	"go/scanner"
	gotoken "go/token"
	"strconv"
	"strings"

	"github.com/mna/jplc/lang/token"
)

// Error and ErrorList are aliased from the standard library's go/scanner,
// the same reuse the teacher's lang/scanner package makes.
type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

// PrintError is a utility function that prints a list of errors to w.
var PrintError = scanner.PrintError

// TokenAndValue pairs a scanned token kind, its position, its raw text,
// and (for literals) its decoded Value.
type TokenAndValue struct {
	Tok   token.Token
	Pos   token.Pos
	Text  string
	Value token.Value
}

// Scanner tokenizes a single source file's bytes.
type Scanner struct {
	file *token.File
	src  []byte
	errs ErrorList

	off int // current byte offset into src
	ch  byte
}

// New creates a Scanner over src, registering newlines with file as it
// scans so the caller can later translate positions back to line/column.
func New(file *token.File, src []byte) *Scanner {
	s := &Scanner{file: file, src: src}
	if len(src) > 0 {
		s.ch = src[0]
	} else {
		s.ch = 0
	}
	return s
}

func (s *Scanner) error(offset int, msg string) {
	pos := s.file.Position(s.file.Pos(offset))
	s.errs.Add(gotoken.Position(pos), msg)
}

func (s *Scanner) peekAt(n int) byte {
	if s.off+n >= len(s.src) {
		return 0
	}
	return s.src[s.off+n]
}

func (s *Scanner) advance() {
	s.off++
	if s.off >= len(s.src) {
		s.ch = 0
		return
	}
	s.ch = s.src[s.off]
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentPart(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '.'
}

// ScanAll tokenizes the entire file, returning every token including a
// trailing EOF, and an ErrorList (empty if there were no lexical errors).
func (s *Scanner) ScanAll() ([]TokenAndValue, error) {
	var toks []TokenAndValue
	for {
		tv, ok := s.scanOne()
		if !ok {
			continue
		}
		toks = append(toks, tv)
		if tv.Tok == token.EOF {
			break
		}
	}
	if len(s.errs) == 0 {
		return toks, nil
	}
	s.errs.Sort()
	return toks, s.errs.Err()
}

// scanOne scans the next token. ok is false when whitespace (other than
// newline) was skipped and the caller should loop again.
func (s *Scanner) scanOne() (TokenAndValue, bool) {
	// Skip spaces and tabs; comments run from "//" to end of line.
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\r' {
		s.advance()
	}
	if s.ch == '/' && s.peekAt(1) == '/' {
		for s.ch != '\n' && s.ch != 0 {
			s.advance()
		}
		return TokenAndValue{}, false
	}

	start := s.off
	pos := s.file.Pos(start)

	switch {
	case s.ch == 0:
		return TokenAndValue{Tok: token.EOF, Pos: pos}, true

	case s.ch == '\n':
		s.file.AddLine(s.off + 1)
		s.advance()
		return TokenAndValue{Tok: token.NEWLINE, Pos: pos, Text: "\n"}, true

	case isDigit(s.ch) || (s.ch == '.' && isDigit(s.peekAt(1))):
		return s.scanNumber(start, pos), true

	case s.ch == '"':
		return s.scanString(start, pos), true

	case isLetter(s.ch):
		return s.scanIdentOrKeyword(start, pos), true

	default:
		return s.scanOperator(start, pos), true
	}
}

func (s *Scanner) scanNumber(start int, pos token.Pos) TokenAndValue {
	isFloat := false
	for isDigit(s.ch) {
		s.advance()
	}
	if s.ch == '.' {
		isFloat = true
		s.advance()
		for isDigit(s.ch) {
			s.advance()
		}
	}
	if s.ch == 'e' || s.ch == 'E' {
		isFloat = true
		s.advance()
		if s.ch == '+' || s.ch == '-' {
			s.advance()
		}
		for isDigit(s.ch) {
			s.advance()
		}
	}
	text := string(s.src[start:s.off])
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			s.error(start, "invalid float literal: "+text)
		}
		return TokenAndValue{Tok: token.FLOATVAL, Pos: pos, Text: text, Value: token.Value{Text: text, Float: f}}
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		s.error(start, "invalid int literal (overflow): "+text)
	}
	return TokenAndValue{Tok: token.INTVAL, Pos: pos, Text: text, Value: token.Value{Text: text, Int: n}}
}

func (s *Scanner) scanString(start int, pos token.Pos) TokenAndValue {
	s.advance() // opening quote
	var raw strings.Builder
	for s.ch != '"' && s.ch != 0 && s.ch != '\n' {
		if s.ch == '\\' && s.peekAt(1) == '"' {
			raw.WriteByte('"')
			s.advance()
			s.advance()
			continue
		}
		raw.WriteByte(s.ch)
		s.advance()
	}
	if s.ch != '"' {
		s.error(start, "unterminated string literal")
	} else {
		s.advance() // closing quote
	}
	text := string(s.src[start:s.off])
	return TokenAndValue{Tok: token.STRING, Pos: pos, Text: text, Value: token.Value{Text: text, Str: raw.String()}}
}

func (s *Scanner) scanIdentOrKeyword(start int, pos token.Pos) TokenAndValue {
	for isIdentPart(s.ch) {
		s.advance()
	}
	text := string(s.src[start:s.off])
	if kw, ok := token.Keywords[text]; ok {
		return TokenAndValue{Tok: kw, Pos: pos, Text: text}
	}
	return TokenAndValue{Tok: token.VARIABLE, Pos: pos, Text: text, Value: token.Value{Text: text}}
}

var twoCharOps = map[string]bool{
	"<=": true, ">=": true, "==": true, "!=": true, "&&": true, "||": true,
}

func (s *Scanner) scanOperator(start int, pos token.Pos) TokenAndValue {
	c := s.ch
	two := string(c) + string(s.peekAt(1))
	if twoCharOps[two] {
		s.advance()
		s.advance()
		return TokenAndValue{Tok: token.OP, Pos: pos, Text: two, Value: token.Value{Text: two}}
	}

	switch c {
	case '+', '-', '*', '/', '%', '<', '>', '!':
		s.advance()
		text := string(c)
		return TokenAndValue{Tok: token.OP, Pos: pos, Text: text, Value: token.Value{Text: text}}
	case ':':
		s.advance()
		return TokenAndValue{Tok: token.COLON, Pos: pos, Text: ":"}
	case '{':
		s.advance()
		return TokenAndValue{Tok: token.LCURLY, Pos: pos, Text: "{"}
	case '}':
		s.advance()
		return TokenAndValue{Tok: token.RCURLY, Pos: pos, Text: "}"}
	case '(':
		s.advance()
		return TokenAndValue{Tok: token.LPAREN, Pos: pos, Text: "("}
	case ')':
		s.advance()
		return TokenAndValue{Tok: token.RPAREN, Pos: pos, Text: ")"}
	case ',':
		s.advance()
		return TokenAndValue{Tok: token.COMMA, Pos: pos, Text: ","}
	case '[':
		s.advance()
		return TokenAndValue{Tok: token.LSQUARE, Pos: pos, Text: "["}
	case ']':
		s.advance()
		return TokenAndValue{Tok: token.RSQUARE, Pos: pos, Text: "]"}
	case '=':
		s.advance()
		return TokenAndValue{Tok: token.EQUALS, Pos: pos, Text: "="}
	default:
		s.error(start, "invalid character "+strconv.QuoteRune(rune(c)))
		s.advance()
		return TokenAndValue{Tok: token.ILLEGAL, Pos: pos, Text: string(c)}
	}
}

// ScanFile is the convenience entry point: tokenize a named source's
// bytes, registering it with fset.
func ScanFile(fset *token.FileSet, name string, src []byte) (*token.File, []TokenAndValue, error) {
	f := fset.AddFile(name, len(src))
	toks, err := New(f, src).ScanAll()
	return f, toks, err
}
