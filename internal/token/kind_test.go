package token_test

import (
	"testing"

	"minic/internal/source"
	"minic/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	for _, kw := range token.Keywords() {
		if _, ok := token.LookupKeyword(kw); !ok {
			t.Errorf("LookupKeyword(%q) not recognized", kw)
		}
	}
	if _, ok := token.LookupKeyword("Main"); ok {
		t.Error("keywords must be case-sensitive")
	}
	if _, ok := token.LookupKeyword("return"); ok {
		t.Error("'return' is not a mini-c keyword")
	}
}

func TestKindPredicates(t *testing.T) {
	rels := []token.Kind{token.Gt, token.Lt, token.GtEq, token.LtEq, token.EqEq, token.BangEq}
	for _, k := range rels {
		if !k.IsRelOp() {
			t.Errorf("%v.IsRelOp() = false", k)
		}
	}
	if token.Assign.IsRelOp() {
		t.Error("'=' is not a relational operator")
	}

	for _, k := range []token.Kind{token.KwIf, token.KwWhile, token.KwFor} {
		if !k.IsControlKeyword() {
			t.Errorf("%v.IsControlKeyword() = false", k)
		}
	}
	if token.KwElse.IsControlKeyword() {
		t.Error("'else' does not open a control header")
	}
}

func TestSyntheticToken(t *testing.T) {
	at := source.Span{File: 0, Start: 10, End: 14}
	tok := token.Synthetic(token.Semicolon, at)
	if tok.Span.Start != 10 || !tok.Span.Empty() {
		t.Fatalf("synthetic span = %v, want zero-width at 10", tok.Span)
	}
	if tok.Text != ";" {
		t.Fatalf("synthetic text = %q, want \";\"", tok.Text)
	}
}
