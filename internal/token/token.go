package token

import (
	"minic/internal/source"
)

// Token represents a single source token with its location.
// Tokens are values and are never mutated after the lexer produces them;
// the repairer builds new tokens instead of editing existing ones.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwMain, KwInt, KwIf, KwElse, KwWhile, KwFor:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Synthetic creates a zero-width token at the given position. The repairer
// uses it for inserted delimiters and terminators.
func Synthetic(kind Kind, at source.Span) Token {
	return Token{
		Kind: kind,
		Span: source.Span{File: at.File, Start: at.Start, End: at.Start},
		Text: kind.String(),
	}
}
