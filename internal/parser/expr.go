package parser

import (
	"fmt"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/token"
)

// parseExpr implements
//
//	Expr := Ident '=' ArithExpr | BoolExpr
//
// The two alternatives are distinguished with one extra token of lookahead.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	if p.at(token.Ident) && p.peek2().Kind == token.Assign {
		name := p.advance()
		target := p.arenas.Exprs.NewIdent(name.Span, name.Text)
		p.advance() // '='
		value, ok := p.parseArithExpr()
		if !ok {
			return ast.NoExprID, false
		}
		span := name.Span.Cover(p.arenas.Exprs.Get(value).Span)
		return p.arenas.Exprs.NewAssign(span, target, value), true
	}
	return p.parseBoolExpr()
}

// parseBoolExpr implements
//
//	BoolExpr := ArithExpr (RelOp ArithExpr)?
//
// Comparison is non-associative: a second relational operator in a row is a
// syntax error, reported once with the whole chain consumed so parsing can
// resume cleanly.
func (p *Parser) parseBoolExpr() (ast.ExprID, bool) {
	left, ok := p.parseArithExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.peek().Kind.IsRelOp() {
		return left, true
	}

	op := p.advance()
	right, ok := p.parseArithExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
	cmp := p.arenas.Exprs.NewCompare(span, relOp(op.Kind), left, right)

	for p.peek().Kind.IsRelOp() {
		p.err(diag.SynChainedComparison, "comparisons cannot be chained")
		p.advance()
		if _, ok := p.parseArithExpr(); !ok {
			return ast.NoExprID, false
		}
	}
	return cmp, true
}

// parseArithExpr implements
//
//	ArithExpr := ArithExpr ('+'|'-') Term | Term
//
// iteratively as a left fold, giving left associativity.
func (p *Parser) parseArithExpr() (ast.ExprID, bool) {
	left, ok := p.parseTerm()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.Plus) || p.at(token.Minus) {
		op := ast.BinAdd
		if p.advance().Kind == token.Minus {
			op = ast.BinSub
		}
		right, ok := p.parseTerm()
		if !ok {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, op, left, right)
	}
	return left, true
}

// parseTerm implements
//
//	Term := Term ('*'|'/') Factor | Factor
func (p *Parser) parseTerm() (ast.ExprID, bool) {
	left, ok := p.parseFactor()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.Star) || p.at(token.Slash) {
		op := ast.BinMul
		if p.advance().Kind == token.Slash {
			op = ast.BinDiv
		}
		right, ok := p.parseFactor()
		if !ok {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, op, left, right)
	}
	return left, true
}

// parseFactor implements
//
//	Factor := Ident | IntLiteral | '(' ArithExpr ')'
func (p *Parser) parseFactor() (ast.ExprID, bool) {
	switch tok := p.peek(); tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, tok.Text), true
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewIntLit(tok.Span, tok.Text), true
	case token.LParen:
		p.advance()
		inner, ok := p.parseArithExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close grouped expression"); !ok {
			return ast.NoExprID, false
		}
		return inner, true
	case token.EOF:
		p.err(diag.SynUnexpectedEOF, "unexpected end of input, expected an expression")
		return ast.NoExprID, false
	default:
		p.err(diag.SynExpectExpression, fmt.Sprintf("unexpected %q, expected an expression", tok.Kind))
		return ast.NoExprID, false
	}
}

func relOp(k token.Kind) ast.RelOp {
	switch k {
	case token.Gt:
		return ast.RelGt
	case token.Lt:
		return ast.RelLt
	case token.GtEq:
		return ast.RelGtEq
	case token.LtEq:
		return ast.RelLtEq
	case token.EqEq:
		return ast.RelEq
	default:
		return ast.RelNotEq
	}
}
