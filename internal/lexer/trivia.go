package lexer

import "minic/internal/diag"

// skipTrivia advances past whitespace, line comments and block comments.
// An unterminated block comment swallows the rest of the file and is
// reported once.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			lx.cursor.Bump()
		case ch == '/' && lx.cursor.Peek2() == '/':
			lx.skipLineComment()
		case ch == '/' && lx.cursor.Peek2() == '*':
			lx.skipBlockComment()
		default:
			return
		}
	}
}

func (lx *Lexer) skipLineComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) skipBlockComment() {
	m := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '*' && lx.cursor.Peek2() == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return
		}
		lx.cursor.Bump()
	}
	lx.report(diag.LexUnterminatedComment, lx.cursor.SpanFrom(m), "unterminated block comment")
}
