package parser

import (
	"fmt"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/token"
)

// parseStmt implements
//
//	Stmt := IfStmt | WhileStmt | ForStmt | Compound | AssignStmt
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.peek().Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.LBrace:
		return p.parseCompound()
	case token.Ident, token.IntLit, token.LParen:
		return p.parseExprStmt()
	default:
		p.err(diag.SynUnexpectedToken, fmt.Sprintf("unexpected %q, expected a statement", p.peek().Kind))
		return ast.NoStmtID, false
	}
}

// parseIf implements
//
//	IfStmt := 'if' '(' BoolExpr ')' Compound (';' | 'else' Compound ';')
func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.advance()
	span := kw.Span

	cond, ok := p.parseHeaderCond()
	if !ok {
		return ast.NoStmtID, false
	}

	then, ok := p.parseCompound()
	if !ok {
		return ast.NoStmtID, false
	}

	els := ast.NoStmtID
	if p.eat(token.KwElse) {
		els, ok = p.parseCompound()
		if !ok {
			return ast.NoStmtID, false
		}
	}

	if tok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after if statement"); ok {
		span = span.Cover(tok.Span)
	}
	return p.arenas.Stmts.NewIf(span, cond, then, els), true
}

// parseWhile implements
//
//	WhileStmt := 'while' '(' BoolExpr ')' Compound ';'
func (p *Parser) parseWhile() (ast.StmtID, bool) {
	kw := p.advance()
	span := kw.Span

	cond, ok := p.parseHeaderCond()
	if !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseCompound()
	if !ok {
		return ast.NoStmtID, false
	}

	if tok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after while statement"); ok {
		span = span.Cover(tok.Span)
	}
	return p.arenas.Stmts.NewWhile(span, cond, body), true
}

// parseFor implements
//
//	ForStmt := 'for' '(' Expr ';' BoolExpr ';' Expr ')' Compound ';'
func (p *Parser) parseFor() (ast.StmtID, bool) {
	kw := p.advance()
	span := kw.Span

	if _, ok := p.expect(token.LParen, diag.SynForBadHeader, "expected '(' after 'for'"); !ok {
		return ast.NoStmtID, false
	}

	init, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynForBadHeader, "expected ';' after for-loop initializer"); !ok {
		return ast.NoStmtID, false
	}

	cond, ok := p.parseBoolExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynForBadHeader, "expected ';' after for-loop condition"); !ok {
		return ast.NoStmtID, false
	}

	post, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close for-loop header"); !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseCompound()
	if !ok {
		return ast.NoStmtID, false
	}

	if tok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after for statement"); ok {
		span = span.Cover(tok.Span)
	}
	return p.arenas.Stmts.NewFor(span, init, cond, post, body), true
}

// parseHeaderCond parses the '(' BoolExpr ')' of an if/while header.
func (p *Parser) parseHeaderCond() (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' to open condition"); !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.parseBoolExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close condition"); !ok {
		return ast.NoExprID, false
	}
	return cond, true
}

// parseCompound implements
//
//	Compound := '{' StmtSeq '}'
func (p *Parser) parseCompound() (ast.StmtID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open compound statement")
	if !ok {
		return ast.NoStmtID, false
	}
	span := open.Span

	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.KwInt) {
			p.misplacedDecl()
			continue
		}
		id, ok := p.parseStmt()
		if !ok {
			p.resync()
			if p.at(token.RBrace) || p.at(token.EOF) {
				break
			}
			continue
		}
		stmts = append(stmts, id)
	}

	if closing, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close compound statement"); ok {
		span = span.Cover(closing.Span)
	}
	return p.arenas.Stmts.NewCompound(span, stmts), true
}

// parseExprStmt implements
//
//	AssignStmt := Expr ';'
func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	span := p.arenas.Exprs.Get(expr).Span
	if tok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after statement"); ok {
		span = span.Cover(tok.Span)
	}
	return p.arenas.Stmts.NewExprStmt(span, expr), true
}
