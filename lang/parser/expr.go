package parser

import (
	"github.com/mna/jplc/lang/ast"
	"github.com/mna/jplc/lang/token"
)

// parseExpr parses a full expression via precedence climbing. The
// levels, lowest binding power first, are grounded exactly on the
// reduction order of original_source/parser/parser.cpp's parse_expr:
// || , && , comparisons, + -, * / %, then unary ! -, then postfix
// indexing, then primaries.
func (p *parser) parseExpr() ast.Expr {
	return p.parseOr()
}

func (p *parser) isOp(text string) bool {
	return p.at(token.OP) && p.cur().Text == text
}

func (p *parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.isOp("||") {
		opPos := p.advance().Pos
		right := p.parseAnd()
		left = &ast.BinOpExpr{Left: left, Right: right, Op: ast.Or, OpPos: opPos}
	}
	return left
}

func (p *parser) parseAnd() ast.Expr {
	left := p.parseComparison()
	for p.isOp("&&") {
		opPos := p.advance().Pos
		right := p.parseComparison()
		left = &ast.BinOpExpr{Left: left, Right: right, Op: ast.And, OpPos: opPos}
	}
	return left
}

var comparisonOps = map[string]ast.BinOp{
	"<": ast.Lt, ">": ast.Gt, "<=": ast.Leq, ">=": ast.Geq, "==": ast.Eq, "!=": ast.Neq,
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for p.at(token.OP) {
		op, ok := comparisonOps[p.cur().Text]
		if !ok {
			break
		}
		opPos := p.advance().Pos
		right := p.parseAdditive()
		left = &ast.BinOpExpr{Left: left, Right: right, Op: op, OpPos: opPos}
	}
	return left
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.isOp("+") || p.isOp("-") {
		op := ast.Add
		if p.cur().Text == "-" {
			op = ast.Sub
		}
		opPos := p.advance().Pos
		right := p.parseMultiplicative()
		left = &ast.BinOpExpr{Left: left, Right: right, Op: op, OpPos: opPos}
	}
	return left
}

var multiplicativeOps = map[string]ast.BinOp{"*": ast.Mul, "/": ast.Div, "%": ast.Mod}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.at(token.OP) {
		op, ok := multiplicativeOps[p.cur().Text]
		if !ok {
			break
		}
		opPos := p.advance().Pos
		right := p.parseUnary()
		left = &ast.BinOpExpr{Left: left, Right: right, Op: op, OpPos: opPos}
	}
	return left
}

func (p *parser) parseUnary() ast.Expr {
	if p.isOp("!") {
		opPos := p.advance().Pos
		operand := p.parseUnary()
		return &ast.UnOpExpr{Operand: operand, Op: ast.Not, OpPos: opPos}
	}
	if p.isOp("-") {
		opPos := p.advance().Pos
		operand := p.parseUnary()
		return &ast.UnOpExpr{Operand: operand, Op: ast.Neg, OpPos: opPos}
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by zero or more
// `[<expr>, ...]` array-index or `{<int>}` tuple-index suffixes.
func (p *parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		switch {
		case p.at(token.LSQUARE):
			p.advance()
			var indices []ast.Expr
			indices = append(indices, p.parseExpr())
			for p.at(token.COMMA) {
				p.advance()
				indices = append(indices, p.parseExpr())
			}
			rbracket := p.expect(token.RSQUARE).Pos
			e = &ast.ArrayIndexExpr{Array: e, Indices: indices, RBracket: rbracket}
		case p.at(token.LCURLY):
			p.advance()
			tok := p.expect(token.INTVAL)
			rcurly := p.expect(token.RCURLY).Pos
			e = &ast.TupleIndexExpr{Tuple: e, Index: tok.Value.Int, RCurly: rcurly}
		default:
			return e
		}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	switch {
	case p.at(token.INTVAL):
		t := p.advance()
		return &ast.IntExpr{Value: t.Value.Int, ValPos: t.Pos, RawText: t.Text}

	case p.at(token.FLOATVAL):
		t := p.advance()
		return &ast.FloatExpr{Value: t.Value.Float, ValPos: t.Pos, RawText: t.Text}

	case p.at(token.TRUE):
		t := p.advance()
		return &ast.TrueExpr{Pos: t.Pos}

	case p.at(token.FALSE):
		t := p.advance()
		return &ast.FalseExpr{Pos: t.Pos}

	case p.at(token.LPAREN):
		p.advance()
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e

	case p.at(token.LSQUARE):
		return p.parseArrayLiteral()

	case p.at(token.LCURLY):
		return p.parseTupleLiteral()

	case p.at(token.IF):
		return p.parseIfExpr()

	case p.at(token.ARRAY):
		return p.parseArrayLoopExpr()

	case p.at(token.SUM):
		return p.parseSumLoopExpr()

	case p.at(token.VARIABLE):
		t := p.advance()
		if p.at(token.LPAREN) {
			p.advance()
			var args []ast.Expr
			if !p.at(token.RPAREN) {
				args = append(args, p.parseExpr())
				for p.at(token.COMMA) {
					p.advance()
					args = append(args, p.parseExpr())
				}
			}
			rparen := p.expect(token.RPAREN).Pos
			return &ast.CallExpr{Name: t.Text, NamePos: t.Pos, Args: args, RParen: rparen}
		}
		return &ast.VariableExpr{Name: t.Text, NamePos: t.Pos}

	default:
		p.error("expected an expression, found " + p.cur().Tok.String())
		panic(errPanicMode)
	}
}

func (p *parser) parseArrayLiteral() ast.Expr {
	lbracket := p.expect(token.LSQUARE).Pos
	var elems []ast.Expr
	if !p.at(token.RSQUARE) {
		elems = append(elems, p.parseExpr())
		for p.at(token.COMMA) {
			p.advance()
			elems = append(elems, p.parseExpr())
		}
	}
	rbracket := p.expect(token.RSQUARE).Pos
	return &ast.ArrayLiteralExpr{LBracket: lbracket, Elems: elems, RBracket: rbracket}
}

func (p *parser) parseTupleLiteral() ast.Expr {
	lcurly := p.expect(token.LCURLY).Pos
	var elems []ast.Expr
	if !p.at(token.RCURLY) {
		elems = append(elems, p.parseExpr())
		for p.at(token.COMMA) {
			p.advance()
			elems = append(elems, p.parseExpr())
		}
	}
	rcurly := p.expect(token.RCURLY).Pos
	return &ast.TupleLiteralExpr{LCurly: lcurly, Elems: elems, RCurly: rcurly}
}

func (p *parser) parseIfExpr() ast.Expr {
	pos := p.expect(token.IF).Pos
	cond := p.parseExpr()
	p.expect(token.THEN)
	then := p.parseExpr()
	p.expect(token.ELSE)
	els := p.parseExpr()
	return &ast.IfExpr{Pos: pos, Cond: cond, Then: then, Else: els}
}

// parseLoopBindings parses the `<var>: <expr>, ...` list shared by
// `array[...]` and `sum[...]` comprehensions.
func (p *parser) parseLoopBindings() []ast.LoopBinding {
	p.expect(token.LSQUARE)
	var bindings []ast.LoopBinding
	for {
		name := p.expect(token.VARIABLE)
		p.expect(token.COLON)
		bound := p.parseExpr()
		bindings = append(bindings, ast.LoopBinding{Var: name.Text, VarPos: name.Pos, Bound: bound})
		if !p.at(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RSQUARE)
	return bindings
}

func (p *parser) parseArrayLoopExpr() ast.Expr {
	pos := p.expect(token.ARRAY).Pos
	bindings := p.parseLoopBindings()
	body := p.parseExpr()
	return &ast.ArrayLoopExpr{Pos: pos, Bindings: bindings, Body: body}
}

func (p *parser) parseSumLoopExpr() ast.Expr {
	pos := p.expect(token.SUM).Pos
	bindings := p.parseLoopBindings()
	body := p.parseExpr()
	return &ast.SumLoopExpr{Pos: pos, Bindings: bindings, Body: body}
}
