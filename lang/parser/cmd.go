package parser

import (
	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/token"
)

// parseCmd dispatches on the current token to one of JPL's nine
// top-level command kinds, per original_source/ast_node/ast_node.hpp's
// cmd_node family.
func (p *parser) parseCmd() ast.Cmd {
	switch {
	case p.at(token.ASSERT):
		return p.parseAssertCmd()
	case p.at(token.FN):
		return p.parseFnCmd()
	case p.at(token.LET):
		return p.parseLetCmd()
	case p.at(token.PRINT):
		return p.parsePrintCmd()
	case p.at(token.READ):
		return p.parseReadCmd()
	case p.at(token.SHOW):
		return p.parseShowCmd()
	case p.at(token.TIME):
		return p.parseTimeCmd()
	case p.at(token.TYPE):
		return p.parseTypeCmd()
	case p.at(token.WRITE):
		return p.parseWriteCmd()
	default:
		p.error("expected a command, found " + p.cur().Tok.String())
		panic(errPanicMode)
	}
}

func (p *parser) parseAssertCmd() ast.Cmd {
	pos := p.expect(token.ASSERT).Pos
	cond := p.parseExpr()
	p.expect(token.COMMA)
	str := p.expect(token.STRING)
	p.expectEndOfCmd()
	return &ast.AssertCmd{Pos: pos, Cond: cond, Message: str.Value.Str, EndPos: str.Pos + token.Pos(len(str.Text))}
}

func (p *parser) parsePrintCmd() ast.Cmd {
	pos := p.expect(token.PRINT).Pos
	str := p.expect(token.STRING)
	p.expectEndOfCmd()
	return &ast.PrintCmd{Pos: pos, Message: str.Value.Str, EndPos: str.Pos + token.Pos(len(str.Text))}
}

func (p *parser) parseShowCmd() ast.Cmd {
	pos := p.expect(token.SHOW).Pos
	e := p.parseExpr()
	p.expectEndOfCmd()
	return &ast.ShowCmd{Pos: pos, Expr: e}
}

func (p *parser) parseTimeCmd() ast.Cmd {
	pos := p.expect(token.TIME).Pos
	wrapped := p.parseCmd()
	return &ast.TimeCmd{Pos: pos, Wrapped: wrapped}
}

func (p *parser) parseLetCmd() ast.Cmd {
	pos := p.expect(token.LET).Pos
	lhs := p.parseLvalue()
	p.expect(token.EQUALS)
	rhs := p.parseExpr()
	p.expectEndOfCmd()
	return &ast.LetCmd{Pos: pos, LHS: lhs, RHS: rhs}
}

func (p *parser) parseReadCmd() ast.Cmd {
	pos := p.expect(token.READ).Pos
	p.expect(token.IMAGE)
	str := p.expect(token.STRING)
	p.expect(token.TO)
	arg := p.parseArg()
	p.expectEndOfCmd()
	return &ast.ReadCmd{Pos: pos, Filename: str.Value.Str, Arg: arg}
}

func (p *parser) parseWriteCmd() ast.Cmd {
	pos := p.expect(token.WRITE).Pos
	p.expect(token.IMAGE)
	e := p.parseExpr()
	p.expect(token.TO)
	str := p.expect(token.STRING)
	p.expectEndOfCmd()
	return &ast.WriteCmd{Pos: pos, Expr: e, Filename: str.Value.Str, EndPos: str.Pos + token.Pos(len(str.Text))}
}

func (p *parser) parseTypeCmd() ast.Cmd {
	pos := p.expect(token.TYPE).Pos
	name := p.expect(token.VARIABLE)
	p.expect(token.EQUALS)
	typ := p.parseType()
	p.expectEndOfCmd()
	return &ast.TypeCmd{Pos: pos, Name: name.Text, NamePos: name.Pos, Type: typ}
}

func (p *parser) parseFnCmd() ast.Cmd {
	pos := p.expect(token.FN).Pos
	name := p.expect(token.VARIABLE)
	p.expect(token.LPAREN)
	var params []ast.Binding
	if !p.at(token.RPAREN) {
		params = append(params, p.parseBinding())
		for p.at(token.COMMA) {
			p.advance()
			params = append(params, p.parseBinding())
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.COLON)
	retType := p.parseType()
	p.expect(token.LCURLY)
	p.skipNewlines()
	var body []ast.Stmt
	for !p.at(token.RCURLY) && !p.atEOF() {
		if s := p.parseStmt(); s != nil {
			body = append(body, s)
		}
		p.skipNewlines()
	}
	rcurly := p.expect(token.RCURLY).Pos
	p.expectEndOfCmd()
	return &ast.FnCmd{Pos: pos, Name: name.Text, NamePos: name.Pos, Params: params, ReturnType: retType, Body: body, RCurly: rcurly}
}

// parseStmt parses one of the three statement kinds allowed inside a
// function body.
func (p *parser) parseStmt() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r == errPanicMode {
				p.resync()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.at(token.ASSERT):
		pos := p.expect(token.ASSERT).Pos
		cond := p.parseExpr()
		p.expect(token.COMMA)
		str := p.expect(token.STRING)
		p.expectEndOfCmd()
		return &ast.AssertStmt{Pos: pos, Cond: cond, Message: str.Value.Str, EndPos: str.Pos + token.Pos(len(str.Text))}

	case p.at(token.LET):
		pos := p.expect(token.LET).Pos
		lhs := p.parseLvalue()
		p.expect(token.EQUALS)
		rhs := p.parseExpr()
		p.expectEndOfCmd()
		return &ast.LetStmt{Pos: pos, LHS: lhs, RHS: rhs}

	case p.at(token.RETURN):
		pos := p.expect(token.RETURN).Pos
		v := p.parseExpr()
		p.expectEndOfCmd()
		return &ast.ReturnStmt{Pos: pos, Value: v}

	default:
		p.error("expected a statement, found " + p.cur().Tok.String())
		panic(errPanicMode)
	}
}

// parseArg parses `<variable>` or `<variable>[<variable>, ...]`.
func (p *parser) parseArg() ast.Arg {
	name := p.expect(token.VARIABLE)
	if !p.at(token.LSQUARE) {
		return &ast.VariableArg{Name: name.Text, NamePos: name.Pos}
	}
	p.advance()
	var vars []string
	var varPos []token.Pos
	v := p.expect(token.VARIABLE)
	vars = append(vars, v.Text)
	varPos = append(varPos, v.Pos)
	for p.at(token.COMMA) {
		p.advance()
		v := p.expect(token.VARIABLE)
		vars = append(vars, v.Text)
		varPos = append(varPos, v.Pos)
	}
	rbracket := p.expect(token.RSQUARE).Pos
	return &ast.ArrayArg{Name: name.Text, NamePos: name.Pos, Vars: vars, VarPos: varPos, RBracket: rbracket}
}

// parseBinding parses `<argument>: <type>` or `{<binding>, ...}`.
func (p *parser) parseBinding() ast.Binding {
	if p.at(token.LCURLY) {
		lcurly := p.expect(token.LCURLY).Pos
		var elems []ast.Binding
		elems = append(elems, p.parseBinding())
		for p.at(token.COMMA) {
			p.advance()
			elems = append(elems, p.parseBinding())
		}
		rcurly := p.expect(token.RCURLY).Pos
		return &ast.TupleBinding{LCurly: lcurly, Elems: elems, RCurly: rcurly}
	}
	arg := p.parseArg()
	p.expect(token.COLON)
	typ := p.parseType()
	return &ast.VarBinding{Arg: arg, Type: typ}
}

// parseLvalue parses `<argument>` or `{<lvalue>, ...}`.
func (p *parser) parseLvalue() ast.Lvalue {
	if p.at(token.LCURLY) {
		lcurly := p.expect(token.LCURLY).Pos
		var elems []ast.Lvalue
		elems = append(elems, p.parseLvalue())
		for p.at(token.COMMA) {
			p.advance()
			elems = append(elems, p.parseLvalue())
		}
		rcurly := p.expect(token.RCURLY).Pos
		return &ast.TupleLvalue{LCurly: lcurly, Elems: elems, RCurly: rcurly}
	}
	arg := p.parseArg()
	return &ast.ArgLvalue{Arg: arg}
}

// parseType parses a JPL type expression: a primitive keyword, a type
// alias reference, an array type `<type>[,...]` (dimensions = comma
// count + 1), or a tuple type `{<type>, ...}`.
func (p *parser) parseType() ast.Type {
	var base ast.Type
	switch {
	case p.at(token.INT):
		t := p.advance()
		base = &ast.IntTypeNode{Pos: t.Pos}
	case p.at(token.FLOAT):
		t := p.advance()
		base = &ast.FloatTypeNode{Pos: t.Pos}
	case p.at(token.BOOL):
		t := p.advance()
		base = &ast.BoolTypeNode{Pos: t.Pos}
	case p.at(token.VARIABLE):
		t := p.advance()
		base = &ast.VariableTypeNode{Name: t.Text, NamePos: t.Pos}
	case p.at(token.LCURLY):
		lcurly := p.expect(token.LCURLY).Pos
		var fields []ast.Type
		fields = append(fields, p.parseType())
		for p.at(token.COMMA) {
			p.advance()
			fields = append(fields, p.parseType())
		}
		rcurly := p.expect(token.RCURLY).Pos
		base = &ast.TupleTypeNode{LCurly: lcurly, Fields: fields, RCurly: rcurly}
	default:
		p.error("expected a type, found " + p.cur().Tok.String())
		panic(errPanicMode)
	}

	if !p.at(token.LSQUARE) {
		return base
	}
	p.advance()
	dims := 1
	for p.at(token.COMMA) {
		p.advance()
		dims++
	}
	rbracket := p.expect(token.RSQUARE).Pos
	return &ast.ArrayTypeNode{Elem: base, Dimensions: dims, RBracket: rbracket}
}
