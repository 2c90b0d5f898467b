// Package parser turns a (repaired) token stream into the arena AST. One
// routine per grammar nonterminal, recursive descent, with panic-mode
// recovery: on an unexpected token the parser reports it, skips to the next
// synchronizing token and resumes with the following statement.
package parser

import (
	"fmt"
	"slices"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/source"
	"minic/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Program ast.Program
	Errors  uint
}

// Parser holds the state for one compilation. The token slice must end with
// an EOF token.
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	opts     Options
	lastSpan source.Span
}

// Parse consumes the full token stream and fills the builder's arenas.
func Parse(toks []token.Token, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		toks:   toks,
		arenas: arenas,
		opts:   opts,
	}
	p.parseProgram()
	return Result{
		Program: arenas.Program,
		Errors:  p.opts.CurrentErrors,
	}
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF, Span: p.lastSpan.ZeroideToEnd()}
	}
	return p.toks[p.pos]
}

func (p *Parser) peek2() token.Token {
	if p.pos+1 >= len(p.toks) {
		return token.Token{Kind: token.EOF, Span: p.lastSpan.ZeroideToEnd()}
	}
	return p.toks[p.pos+1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// eat consumes the next token if it matches k.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// diagSpan picks the best span for a diagnostic at the current position:
// the lookahead token's own span, or the point just past the last consumed
// token when the lookahead is EOF.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return tok.Span
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	p.opts.CurrentErrors++
	if p.opts.Reporter != nil && !p.enoughAfterThis() {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (p *Parser) enoughAfterThis() bool {
	if p.opts.MaxErrors == 0 {
		return false
	}
	return p.opts.CurrentErrors > p.opts.MaxErrors
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, p.diagSpan(), msg)
}

// expect consumes a token of kind k or reports the given code and returns
// an invalid token without consuming anything.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.report(code, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// resync discards tokens until a statement boundary: ';' (consumed), or one
// of '}' '{' if while for int (left for the caller).
func (p *Parser) resync() {
	stop := []token.Kind{
		token.RBrace, token.LBrace,
		token.KwIf, token.KwWhile, token.KwFor, token.KwInt,
	}
	for {
		tok := p.peek()
		if tok.Kind == token.EOF {
			return
		}
		if tok.Kind == token.Semicolon {
			p.advance()
			return
		}
		if slices.Contains(stop, tok.Kind) {
			return
		}
		p.advance()
	}
}

// parseProgram implements
//
//	Program := 'main' '(' ')' '{' DeclSeq StmtSeq '}'
func (p *Parser) parseProgram() {
	start := p.peek().Span

	if _, ok := p.expect(token.KwMain, diag.SynExpectMain, "expected 'main' at start of program"); !ok {
		p.resync()
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'main'"); ok {
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after '('")
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open program body"); !ok {
		p.resync()
		p.eat(token.LBrace)
	}

	for p.at(token.KwInt) {
		if id, ok := p.parseDecl(); ok {
			p.arenas.PushDecl(id)
		} else {
			p.resync()
		}
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.KwInt) {
			p.misplacedDecl()
			continue
		}
		if id, ok := p.parseStmt(); ok {
			p.arenas.PushStmt(id)
		} else {
			p.resync()
		}
	}

	end := p.peek().Span
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close program body"); !ok {
		p.err(diag.SynUnexpectedEOF, "program body is not closed before end of input")
	}
	if !p.at(token.EOF) {
		p.err(diag.SynUnexpectedToken, fmt.Sprintf("unexpected %q after program body", p.peek().Kind))
	}
	p.arenas.Program.Span = start.Cover(end)
}

// misplacedDecl reports a declaration found in statement position and
// consumes it, so the statement loop always makes progress. The names still
// enter the declaration list, which keeps later uses of them from cascading
// into undeclared-identifier errors.
func (p *Parser) misplacedDecl() {
	p.err(diag.SynMisplacedDecl, "declarations must precede statements")
	if id, ok := p.parseDecl(); ok {
		p.arenas.PushDecl(id)
	}
}

// parseDecl implements
//
//	Decl   := 'int' IdList ';'
//	IdList := Ident (',' Ident)*
func (p *Parser) parseDecl() (ast.DeclID, bool) {
	kw, _ := p.expect(token.KwInt, diag.SynUnexpectedToken, "expected 'int'")
	span := kw.Span

	var names []ast.DeclName
	for {
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier in declaration")
		if !ok {
			return ast.NoDeclID, false
		}
		names = append(names, ast.DeclName{Name: tok.Text, Span: tok.Span})
		span = span.Cover(tok.Span)
		if !p.eat(token.Comma) {
			break
		}
	}

	if tok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration"); ok {
		span = span.Cover(tok.Span)
	}
	return p.arenas.Decls.New(span, names), true
}
