// Package repair rewrites a token stream to restore well-formedness before
// parsing. It handles a fixed catalogue of mechanically recognizable defects:
// misspelled keywords, missing statement terminators, missing parentheses and
// braces around control headers and bodies, missing separators in for-headers
// and declarations. Everything else is left for the parser to report.
//
// The engine never guesses intent. Every rewrite is a deterministic, minimal
// insertion or token replacement, and every rewrite produces exactly one
// Record pointing back at the original stream, so callers can show the user
// what changed. Running the engine on its own output yields no records.
package repair

import (
	"fmt"

	"minic/internal/source"
)

// FixKind classifies a single applied repair.
type FixKind uint8

const (
	// FixKeywordTypo replaced a misspelled identifier with the keyword it
	// was within edit distance of.
	FixKeywordTypo FixKind = iota
	// FixMissingSemicolon inserted a statement terminator.
	FixMissingSemicolon
	// FixMissingComma inserted a separator inside a declaration list.
	FixMissingComma
	// FixMissingLParen inserted '(' after a control keyword.
	FixMissingLParen
	// FixMissingRParen closed an unterminated control header.
	FixMissingRParen
	// FixMissingLBrace opened a compound body after a control header.
	FixMissingLBrace
	// FixMissingRBrace closed an unterminated compound body.
	FixMissingRBrace
	// FixForHeaderSemicolon inserted a clause separator inside a for-header.
	FixForHeaderSemicolon
)

var fixKindNames = [...]string{
	FixKeywordTypo:        "keyword-typo",
	FixMissingSemicolon:   "missing-semicolon",
	FixMissingComma:       "missing-comma",
	FixMissingLParen:      "missing-lparen",
	FixMissingRParen:      "missing-rparen",
	FixMissingLBrace:      "missing-lbrace",
	FixMissingRBrace:      "missing-rbrace",
	FixForHeaderSemicolon: "for-header-semicolon",
}

func (k FixKind) String() string {
	if int(k) < len(fixKindNames) {
		return fixKindNames[k]
	}
	return "unknown"
}

// Record describes one applied repair. At always refers to a position in the
// original token stream: for insertions it is the zero-width point where the
// new token was spliced in; for replacements it covers the replaced token.
// The list of records is append-only and ordered by detection.
type Record struct {
	Kind        FixKind
	At          source.Span
	Original    string // replaced fragment, "" for pure insertions
	Replacement string // inserted or substituted text
}

func (r Record) String() string {
	if r.Original == "" {
		return fmt.Sprintf("%s: inserted %q at %s", r.Kind, r.Replacement, r.At)
	}
	return fmt.Sprintf("%s: replaced %q with %q at %s", r.Kind, r.Original, r.Replacement, r.At)
}
