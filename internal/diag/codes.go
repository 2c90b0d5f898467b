package diag

import (
	"fmt"
)

// Code is a compact, stable identifier for a diagnostic.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar         Code = 1001
	LexBadNumber           Code = 1002
	LexUnterminatedComment Code = 1003

	// Syntax
	SynUnexpectedToken   Code = 2001
	SynExpectIdentifier  Code = 2002
	SynExpectSemicolon   Code = 2003
	SynUnclosedParen     Code = 2004
	SynUnclosedBrace     Code = 2005
	SynExpectExpression  Code = 2006
	SynExpectMain        Code = 2007
	SynChainedComparison Code = 2008
	SynForBadHeader      Code = 2009
	SynUnexpectedEOF     Code = 2010
	SynMisplacedDecl     Code = 2011

	// Semantic
	SemaUndeclared Code = 3001
	SemaRedeclared Code = 3002

	// IO / driver
	IOReadFailed  Code = 4001
	IOWriteFailed Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexUnknownChar:         "illegal character",
	LexBadNumber:           "malformed number literal",
	LexUnterminatedComment: "unterminated block comment",

	SynUnexpectedToken:   "unexpected token",
	SynExpectIdentifier:  "identifier expected",
	SynExpectSemicolon:   "';' expected",
	SynUnclosedParen:     "unclosed parenthesis",
	SynUnclosedBrace:     "unclosed brace",
	SynExpectExpression:  "expression expected",
	SynExpectMain:        "program must start with 'main'",
	SynChainedComparison: "chained comparison",
	SynForBadHeader:      "malformed for header",
	SynUnexpectedEOF:     "unexpected end of input",
	SynMisplacedDecl:     "declaration after statements",

	SemaUndeclared: "undeclared identifier",
	SemaRedeclared: "redeclared identifier",

	IOReadFailed:  "failed to read input",
	IOWriteFailed: "failed to write output",
}

// ID returns the short stable form, e.g. "SYN2003".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Phase returns which report list the code belongs to: "lexical", "syntax",
// "semantic", or "io".
func (c Code) Phase() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return "lexical"
	case ic >= 2000 && ic < 3000:
		return "syntax"
	case ic >= 3000 && ic < 4000:
		return "semantic"
	case ic >= 4000 && ic < 5000:
		return "io"
	}
	return "unknown"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
