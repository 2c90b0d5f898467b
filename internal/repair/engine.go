package repair

import (
	"strings"

	"minic/internal/source"
	"minic/internal/token"
)

type braceKind uint8

const (
	braceMain    braceKind = iota // program body
	bracePlain                    // bare nested compound
	braceControl                  // body of if/else/while/for; grammar wants ';' after its '}'
	braceAuto                     // control body the engine opened itself; wraps one statement
)

type braceEntry struct {
	kind braceKind
	kw   token.Kind // owning control keyword, token.Invalid for main/plain
}

type stmtCtx uint8

const (
	ctxNone stmtCtx = iota
	ctxDecl         // between 'int' and its terminator
	ctxExpr         // inside an assignment/expression statement
)

// engine is the single-pass state machine. It walks the input once with a
// one-token lookahead and appends to out; it never revisits a region it has
// already rewritten, so total work is linear in the stream length.
type engine struct {
	toks []token.Token
	i    int
	out  []token.Token
	recs []Record

	braces []braceEntry

	// control-header scanning
	inHeader    bool
	headerKw    token.Kind
	parenDepth  int
	headerSemis int
	wantLParen  bool       // control keyword emitted, '(' expected next
	pendingBody token.Kind // header closed, body expected for this keyword

	ctx         stmtCtx
	exprTail    bool // last emitted token can end an expression
	afterIfBody bool // previous token closed an if-body; 'else' is valid here
}

// Run repairs a token stream. The input must end with an EOF token (as
// produced by lexer.ScanAll). The returned stream is a fresh slice; the
// input is not modified. Records are ordered by detection and reference
// positions in the original stream.
func Run(toks []token.Token) ([]token.Token, []Record) {
	e := &engine{
		toks: toks,
		out:  make([]token.Token, 0, len(toks)+8),
	}
	for e.i < len(e.toks) {
		tok := e.toks[e.i]
		if tok.Kind == token.EOF {
			e.finish(tok)
			break
		}
		tok = e.maybeFixTypo(tok)
		e.step(tok)
		e.i++
	}
	return e.out, e.recs
}

func (e *engine) peekKind(j int) token.Kind {
	if j >= len(e.toks) {
		return token.EOF
	}
	return e.toks[j].Kind
}

func (e *engine) emit(tok token.Token) {
	e.out = append(e.out, tok)
}

func (e *engine) record(kind FixKind, at source.Span, orig, repl string) {
	e.recs = append(e.recs, Record{Kind: kind, At: at, Original: orig, Replacement: repl})
}

// insertBefore splices a synthetic token in front of tok.
func (e *engine) insertBefore(kind token.Kind, fix FixKind, tok token.Token) {
	at := source.At(tok.Span.File, tok.Span.Start)
	e.emit(token.Synthetic(kind, at))
	e.record(fix, at, "", kind.String())
}

// insertAfterLast splices a synthetic token after the last emitted one.
func (e *engine) insertAfterLast(kind token.Kind, fix FixKind) {
	var at source.Span
	if len(e.out) > 0 {
		at = e.out[len(e.out)-1].Span.ZeroideToEnd()
	}
	e.emit(token.Synthetic(kind, at))
	e.record(fix, at, "", kind.String())
}

// maybeFixTypo replaces an identifier with a keyword when it sits in a
// position where only that keyword fits and its lexeme is within edit
// distance of exactly one candidate. Identifiers are never followed by '('
// in this language, so an open paren after an identifier is a strong signal.
func (e *engine) maybeFixTypo(tok token.Token) token.Token {
	if tok.Kind != token.Ident || len(tok.Text) < 2 || e.inHeader || e.wantLParen {
		return tok
	}

	var candidates []string
	next := e.peekKind(e.i + 1)
	switch {
	case e.afterIfBody:
		candidates = []string{"else"}
	case next == token.LParen:
		if len(e.out) == 0 {
			candidates = []string{"main"}
		} else {
			candidates = []string{"if", "while", "for"}
		}
	case next == token.Ident && e.ctx == ctxNone && e.pendingBody == token.Invalid:
		candidates = []string{"int"}
	default:
		return tok
	}

	kw, ok := closestKeyword(strings.ToLower(tok.Text), candidates)
	if !ok {
		return tok
	}
	kind, _ := token.LookupKeyword(kw)
	e.record(FixKeywordTypo, tok.Span, tok.Text, kw)
	return token.Token{Kind: kind, Span: tok.Span, Text: kw}
}

func (e *engine) step(tok token.Token) {
	e.afterIfBody = false

	// A control keyword without '(' gets one inserted; either way the
	// header scan starts here.
	if e.wantLParen {
		e.wantLParen = false
		e.inHeader = true
		e.parenDepth = 1
		e.headerSemis = 0
		if tok.Kind == token.LParen {
			e.emit(tok)
			return
		}
		e.insertBefore(token.LParen, FixMissingLParen, tok)
		e.headerToken(tok)
		return
	}

	if e.inHeader {
		e.headerToken(tok)
		return
	}

	// A header just closed: the body must open with '{'. Anything else gets
	// one inserted and the next statement becomes the body.
	if e.pendingBody != token.Invalid {
		kw := e.pendingBody
		e.pendingBody = token.Invalid
		if tok.Kind == token.LBrace {
			e.braces = append(e.braces, braceEntry{kind: braceControl, kw: kw})
			e.emit(tok)
			e.ctx = ctxNone
			e.exprTail = false
			return
		}
		e.insertBefore(token.LBrace, FixMissingLBrace, tok)
		e.braces = append(e.braces, braceEntry{kind: braceAuto, kw: kw})
		e.afterIfBody = false
		e.step(tok)
		return
	}

	if e.maybeTerminate(tok) {
		return
	}

	switch tok.Kind {
	case token.KwIf, token.KwWhile, token.KwFor:
		e.emit(tok)
		e.headerKw = tok.Kind
		e.wantLParen = true
		e.exprTail = false

	case token.KwElse:
		e.emit(tok)
		e.pendingBody = token.KwElse
		e.exprTail = false

	case token.KwInt:
		e.emit(tok)
		e.ctx = ctxDecl
		e.exprTail = false

	case token.Ident:
		if e.ctx == ctxNone && len(e.braces) > 0 {
			e.ctx = ctxExpr
		}
		e.emit(tok)
		e.exprTail = true

	case token.IntLit:
		e.emit(tok)
		e.exprTail = true

	case token.RParen:
		e.emit(tok)
		e.exprTail = true

	case token.LBrace:
		kind := bracePlain
		if len(e.braces) == 0 {
			kind = braceMain
		}
		e.braces = append(e.braces, braceEntry{kind: kind, kw: token.Invalid})
		e.emit(tok)
		e.ctx = ctxNone
		e.exprTail = false

	case token.RBrace:
		e.closeBrace(tok)

	case token.Semicolon:
		e.emit(tok)
		e.ctx = ctxNone
		e.exprTail = false
		e.closeAutoBraces(e.i + 1)

	default:
		// operators, '(', ',', keywords like a stray 'main', invalid tokens
		e.emit(tok)
		e.exprTail = false
	}
}

// headerToken processes one token inside a control header '( ... )'.
func (e *engine) headerToken(tok token.Token) {
	switch tok.Kind {
	case token.LParen:
		e.parenDepth++
		e.emit(tok)
		e.exprTail = false

	case token.RParen:
		e.parenDepth--
		e.emit(tok)
		if e.parenDepth == 0 {
			e.inHeader = false
			e.pendingBody = e.headerKw
			e.exprTail = false
		} else {
			e.exprTail = true
		}

	case token.LBrace, token.RBrace:
		// body reached with the header still open
		e.closeHeader(tok)
		e.step(tok)

	case token.Semicolon:
		if e.headerKw == token.KwFor {
			e.headerSemis++
		}
		e.emit(tok)
		e.exprTail = false

	case token.Ident, token.IntLit:
		if e.exprTail {
			switch {
			case e.headerKw == token.KwFor && e.headerSemis < 2:
				// for-header clause boundary without its ';'
				e.insertBefore(token.Semicolon, FixForHeaderSemicolon, tok)
				e.headerSemis++
			case tok.Kind == token.Ident && e.peekKind(e.i+1) == token.Assign:
				// a fresh assignment can only be the body; the ')' is missing
				e.closeHeader(tok)
				e.step(tok)
				return
			}
		}
		e.emit(tok)
		e.exprTail = true

	default:
		e.emit(tok)
		e.exprTail = false
	}
}

// closeHeader force-closes an unterminated header before tok.
func (e *engine) closeHeader(tok token.Token) {
	for e.parenDepth > 0 {
		e.insertBefore(token.RParen, FixMissingRParen, tok)
		e.parenDepth--
	}
	e.inHeader = false
	e.pendingBody = e.headerKw
	e.exprTail = false
}

// maybeTerminate inserts ';' (or ',' inside a declaration list) before tok
// when the current statement has clearly ended without one. Returns true if
// tok was fully handled.
func (e *engine) maybeTerminate(tok token.Token) bool {
	if !e.exprTail || e.ctx == ctxNone {
		return false
	}

	if e.ctx == ctxDecl {
		switch {
		case tok.Kind == token.Ident && e.peekKind(e.i+1) == token.Assign:
			// next statement starts; the declaration is over
			e.insertBefore(token.Semicolon, FixMissingSemicolon, tok)
			e.ctx = ctxNone
		case tok.Kind == token.Ident:
			// another declared name without its separator
			e.insertBefore(token.Comma, FixMissingComma, tok)
			e.emit(tok)
			e.exprTail = true
			return true
		case tok.Kind == token.RBrace || tok.Kind == token.KwInt ||
			tok.Kind == token.LBrace || tok.Kind.IsControlKeyword():
			e.insertBefore(token.Semicolon, FixMissingSemicolon, tok)
			e.ctx = ctxNone
		}
		return false
	}

	// ctxExpr: terminate only on unambiguous next-statement starts. A bare
	// identifier after an expression could be a missing operator instead,
	// so it needs the '=' lookahead to qualify.
	switch {
	case tok.Kind == token.Ident && e.peekKind(e.i+1) == token.Assign,
		tok.Kind == token.RBrace,
		tok.Kind == token.KwInt,
		tok.Kind == token.KwElse,
		tok.Kind == token.LBrace,
		tok.Kind.IsControlKeyword():
		e.insertBefore(token.Semicolon, FixMissingSemicolon, tok)
		e.ctx = ctxNone
		// tok itself has not been consumed yet, so it is the lookahead
		e.closeAutoBraces(e.i)
	}
	return false
}

// closeBrace handles a real '}'. A '}' with no matching entry is left for
// the parser to report.
func (e *engine) closeBrace(tok token.Token) {
	if len(e.braces) == 0 {
		e.emit(tok)
		e.ctx = ctxNone
		e.exprTail = false
		return
	}
	top := e.braces[len(e.braces)-1]
	e.braces = e.braces[:len(e.braces)-1]
	e.emit(tok)
	e.ctx = ctxNone
	e.exprTail = false

	if top.kind == braceControl || top.kind == braceAuto {
		e.terminateBody(top.kw, e.i+1)
	}
}

// terminateBody supplies the ';' the grammar requires after a control
// statement's compound, unless the stream already provides one or an 'else'
// branch legitimately follows an if-body. nextIdx is the position of the
// first input token not yet consumed.
func (e *engine) terminateBody(kw token.Kind, nextIdx int) {
	if kw == token.KwIf && e.nextIsElse(nextIdx) {
		e.afterIfBody = true
		return
	}
	if e.peekKind(nextIdx) == token.Semicolon {
		return
	}
	e.insertAfterLast(token.Semicolon, FixMissingSemicolon)
	e.closeAutoBraces(nextIdx)
}

// nextIsElse reports whether the input token at j is 'else', counting
// misspellings the typo pass will correct when it reaches them.
func (e *engine) nextIsElse(j int) bool {
	if j >= len(e.toks) {
		return false
	}
	next := e.toks[j]
	if next.Kind == token.KwElse {
		return true
	}
	if next.Kind == token.Ident && len(next.Text) >= 2 {
		_, ok := closestKeyword(strings.ToLower(next.Text), []string{"else"})
		return ok
	}
	return false
}

// closeAutoBraces closes synthetic single-statement bodies once their
// statement has terminated, cascading outward through nested auto bodies.
// nextIdx is the position of the first input token not yet consumed.
func (e *engine) closeAutoBraces(nextIdx int) {
	for len(e.braces) > 0 && e.braces[len(e.braces)-1].kind == braceAuto {
		top := e.braces[len(e.braces)-1]
		e.braces = e.braces[:len(e.braces)-1]
		e.insertAfterLast(token.RBrace, FixMissingRBrace)

		if top.kw == token.KwIf && e.nextIsElse(nextIdx) {
			e.afterIfBody = true
			return
		}
		if e.peekKind(nextIdx) == token.Semicolon {
			// the real ';' will terminate this body when it is consumed
			return
		}
		e.insertAfterLast(token.Semicolon, FixMissingSemicolon)
	}
}

// finish balances whatever is still open when end of input arrives.
func (e *engine) finish(eof token.Token) {
	if e.inHeader {
		for e.parenDepth > 0 {
			e.insertAfterLast(token.RParen, FixMissingRParen)
			e.parenDepth--
		}
		e.inHeader = false
		e.pendingBody = token.Invalid
	}
	e.wantLParen = false
	e.pendingBody = token.Invalid

	if e.exprTail && e.ctx != ctxNone {
		e.insertAfterLast(token.Semicolon, FixMissingSemicolon)
		e.ctx = ctxNone
	}

	for len(e.braces) > 0 {
		top := e.braces[len(e.braces)-1]
		e.braces = e.braces[:len(e.braces)-1]
		e.insertAfterLast(token.RBrace, FixMissingRBrace)
		if top.kind == braceControl || top.kind == braceAuto {
			e.insertAfterLast(token.Semicolon, FixMissingSemicolon)
		}
	}
	e.emit(eof)
}
