package lexer

import (
	"fmt"

	"minic/internal/diag"
	"minic/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(m)
	text := lx.cursor.Slice(m)
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanNumber consumes a maximal digit run. A letter glued to the end makes
// the whole alphanumeric run one malformed literal: the token stays IntLit
// so downstream stages see a single unit, but the defect is reported here.
func (lx *Lexer) scanNumber() token.Token {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if !lx.cursor.EOF() && isLetter(lx.cursor.Peek()) {
		for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(m)
		text := lx.cursor.Slice(m)
		lx.report(diag.LexBadNumber, sp, fmt.Sprintf("malformed number %q: identifier characters after digits", text))
		return token.Token{Kind: token.IntLit, Span: sp, Text: text}
	}
	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: token.IntLit, Span: sp, Text: lx.cursor.Slice(m)}
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	m := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	two := func(kind token.Kind) token.Token {
		lx.cursor.Bump()
		return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(m), Text: lx.cursor.Slice(m)}
	}
	one := func(kind token.Kind) token.Token {
		return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(m), Text: lx.cursor.Slice(m)}
	}

	switch ch {
	case '+':
		return one(token.Plus)
	case '-':
		return one(token.Minus)
	case '*':
		return one(token.Star)
	case '/':
		return one(token.Slash)
	case '=':
		if lx.cursor.Peek() == '=' {
			return two(token.EqEq)
		}
		return one(token.Assign)
	case '<':
		if lx.cursor.Peek() == '=' {
			return two(token.LtEq)
		}
		return one(token.Lt)
	case '>':
		if lx.cursor.Peek() == '=' {
			return two(token.GtEq)
		}
		return one(token.Gt)
	case '!':
		if lx.cursor.Peek() == '=' {
			return two(token.BangEq)
		}
		sp := lx.cursor.SpanFrom(m)
		lx.report(diag.LexUnknownChar, sp, "unexpected character '!'")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Slice(m)}
	case '(':
		return one(token.LParen)
	case ')':
		return one(token.RParen)
	case '{':
		return one(token.LBrace)
	case '}':
		return one(token.RBrace)
	case ';':
		return one(token.Semicolon)
	case ',':
		return one(token.Comma)
	default:
		sp := lx.cursor.SpanFrom(m)
		lx.report(diag.LexUnknownChar, sp, fmt.Sprintf("unexpected character %q", string(rune(ch))))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Slice(m)}
	}
}
