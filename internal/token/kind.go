package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an unsigned integer literal.
	IntLit

	// KwMain represents the 'main' keyword.
	KwMain // main
	// KwInt represents the 'int' keyword.
	KwInt // int
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwFor represents the 'for' keyword.
	KwFor // for

	// Plus represents '+'.
	Plus // +
	// Minus represents '-'.
	Minus // -
	// Star represents '*'.
	Star // *
	// Slash represents '/'.
	Slash // /
	// Assign represents '='.
	Assign // =
	// Gt represents '>'.
	Gt // >
	// Lt represents '<'.
	Lt // <
	// GtEq represents '>='.
	GtEq // >=
	// LtEq represents '<='.
	LtEq // <=
	// EqEq represents '=='.
	EqEq // ==
	// BangEq represents '!='.
	BangEq // !=

	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// Semicolon represents ';'.
	Semicolon // ;
	// Comma represents ','.
	Comma // ,
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	IntLit:    "IntLit",
	KwMain:    "main",
	KwInt:     "int",
	KwIf:      "if",
	KwElse:    "else",
	KwWhile:   "while",
	KwFor:     "for",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Assign:    "=",
	Gt:        ">",
	Lt:        "<",
	GtEq:      ">=",
	LtEq:      "<=",
	EqEq:      "==",
	BangEq:    "!=",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	Semicolon: ";",
	Comma:     ",",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// IsRelOp reports whether the kind is one of the six relational operators.
func (k Kind) IsRelOp() bool {
	switch k {
	case Gt, Lt, GtEq, LtEq, EqEq, BangEq:
		return true
	default:
		return false
	}
}

// IsControlKeyword reports whether the kind opens a parenthesized control
// header (if/while/for).
func (k Kind) IsControlKeyword() bool {
	switch k {
	case KwIf, KwWhile, KwFor:
		return true
	default:
		return false
	}
}

// StartsStmt reports whether a token of this kind can begin a statement.
func (k Kind) StartsStmt() bool {
	switch k {
	case Ident, KwIf, KwWhile, KwFor, LBrace:
		return true
	default:
		return false
	}
}
