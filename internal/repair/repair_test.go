package repair_test

import (
	"testing"

	"minic/internal/lexer"
	"minic/internal/repair"
	"minic/internal/source"
	"minic/internal/token"
)

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mc", []byte(src))
	return lexer.ScanAll(fs.Get(id), lexer.Options{})
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func kindsEqual(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func fixKinds(recs []repair.Record) []repair.FixKind {
	out := make([]repair.FixKind, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Kind)
	}
	return out
}

func TestCleanInputUntouched(t *testing.T) {
	srcs := []string{
		"main(){ int a,b; a=1; b=a+2; }",
		"main(){ int a; if(a>1){ a=0; }; }",
		"main(){ int a; if(a>1){ a=0; } else { a=2; }; }",
		"main(){ int a; while(a<10){ a=a+1; }; }",
		"main(){ int i,s; for(i=0; i<10; i=i+1){ s=s+i; }; }",
	}
	for _, src := range srcs {
		toks := lex(t, src)
		fixed, recs := repair.Run(toks)
		if len(recs) != 0 {
			t.Errorf("%s: unexpected fixes: %v", src, recs)
		}
		if !kindsEqual(kinds(fixed), kinds(toks)) {
			t.Errorf("%s: clean stream changed\n got: %v\nwant: %v", src, kinds(fixed), kinds(toks))
		}
	}
}

func TestMissingSemicolons(t *testing.T) {
	// missing ';' after the declaration and after the assignment
	toks := lex(t, "main(){ int a a=5 }")
	fixed, recs := repair.Run(toks)

	want := []repair.FixKind{repair.FixMissingSemicolon, repair.FixMissingSemicolon}
	if got := fixKinds(recs); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("fixes = %v, want %v", got, want)
	}

	wantKinds := kinds(lex(t, "main(){ int a; a=5; }"))
	if got := kinds(fixed); !kindsEqual(got, wantKinds) {
		t.Fatalf("repaired stream\n got: %v\nwant: %v", got, wantKinds)
	}
}

func TestKeywordTypo(t *testing.T) {
	toks := lex(t, "main(){ whille(a>1){ a=a-1; }; }")
	fixed, recs := repair.Run(toks)

	if len(recs) != 1 {
		t.Fatalf("fixes = %v, want exactly the typo correction", recs)
	}
	r := recs[0]
	if r.Kind != repair.FixKeywordTypo || r.Original != "whille" || r.Replacement != "while" {
		t.Fatalf("record = %+v, want whille -> while", r)
	}

	wantKinds := kinds(lex(t, "main(){ while(a>1){ a=a-1; }; }"))
	if got := kinds(fixed); !kindsEqual(got, wantKinds) {
		t.Fatalf("repaired stream\n got: %v\nwant: %v", got, wantKinds)
	}
}

func TestTypoVariants(t *testing.T) {
	tests := []struct {
		src  string
		orig string
		repl string
	}{
		{"maim(){ int a; a=1; }", "maim", "main"},
		{"main(){ itn a; a=1; }", "itn", "int"},
		{"main(){ int a; iff(a>1){ a=0; }; }", "iff", "if"},
		{"main(){ int a; whiel(a>0){ a=a-1; }; }", "whiel", "while"},
		{"main(){ int a; fo(a=0; a<3; a=a+1){ a=a; }; }", "fo", "for"},
		{"main(){ int a; if(a>1){ a=0; } els { a=2; }; }", "els", "else"},
	}
	for _, tt := range tests {
		_, recs := repair.Run(lex(t, tt.src))
		if len(recs) != 1 || recs[0].Kind != repair.FixKeywordTypo {
			t.Errorf("%s: fixes = %v, want one keyword typo", tt.src, recs)
			continue
		}
		if recs[0].Original != tt.orig || recs[0].Replacement != tt.repl {
			t.Errorf("%s: got %q -> %q, want %q -> %q",
				tt.src, recs[0].Original, recs[0].Replacement, tt.orig, tt.repl)
		}
	}
}

func TestIdentifierNearKeywordLeftAlone(t *testing.T) {
	// 'forx' is used as a plain variable; no position makes a keyword out
	// of it.
	toks := lex(t, "main(){ int forx; forx=1; }")
	_, recs := repair.Run(toks)
	if len(recs) != 0 {
		t.Fatalf("fixes = %v, want none", recs)
	}
}

func TestMissingParens(t *testing.T) {
	toks := lex(t, "main(){ int a; if a>1 { a=0; }; }")
	fixed, recs := repair.Run(toks)

	got := fixKinds(recs)
	if len(got) != 2 || got[0] != repair.FixMissingLParen || got[1] != repair.FixMissingRParen {
		t.Fatalf("fixes = %v, want [missing-lparen missing-rparen]", recs)
	}
	wantKinds := kinds(lex(t, "main(){ int a; if (a>1) { a=0; }; }"))
	if !kindsEqual(kinds(fixed), wantKinds) {
		t.Fatalf("repaired stream\n got: %v\nwant: %v", kinds(fixed), wantKinds)
	}
}

func TestUnclosedHeaderBeforeBody(t *testing.T) {
	toks := lex(t, "main(){ int a; while(a>0 { a=a-1; }; }")
	fixed, recs := repair.Run(toks)

	got := fixKinds(recs)
	if len(got) != 1 || got[0] != repair.FixMissingRParen {
		t.Fatalf("fixes = %v, want [missing-rparen]", recs)
	}
	wantKinds := kinds(lex(t, "main(){ int a; while(a>0) { a=a-1; }; }"))
	if !kindsEqual(kinds(fixed), wantKinds) {
		t.Fatalf("repaired stream\n got: %v\nwant: %v", kinds(fixed), wantKinds)
	}
}

func TestForHeaderMissingSemicolons(t *testing.T) {
	toks := lex(t, "main(){ int i; for(i=0 i<3 i=i+1){ i=i; }; }")
	fixed, recs := repair.Run(toks)

	got := fixKinds(recs)
	if len(got) != 2 || got[0] != repair.FixForHeaderSemicolon || got[1] != repair.FixForHeaderSemicolon {
		t.Fatalf("fixes = %v, want two for-header separators", recs)
	}
	wantKinds := kinds(lex(t, "main(){ int i; for(i=0; i<3; i=i+1){ i=i; }; }"))
	if !kindsEqual(kinds(fixed), wantKinds) {
		t.Fatalf("repaired stream\n got: %v\nwant: %v", kinds(fixed), wantKinds)
	}
}

func TestDeclarationMissingComma(t *testing.T) {
	toks := lex(t, "main(){ int a b; a=1; }")
	fixed, recs := repair.Run(toks)

	got := fixKinds(recs)
	if len(got) != 1 || got[0] != repair.FixMissingComma {
		t.Fatalf("fixes = %v, want [missing-comma]", recs)
	}
	wantKinds := kinds(lex(t, "main(){ int a,b; a=1; }"))
	if !kindsEqual(kinds(fixed), wantKinds) {
		t.Fatalf("repaired stream\n got: %v\nwant: %v", kinds(fixed), wantKinds)
	}
}

func TestBracelessBodyWrapped(t *testing.T) {
	toks := lex(t, "main(){ int a; if(a>1) a=0; }")
	fixed, recs := repair.Run(toks)

	got := fixKinds(recs)
	want := []repair.FixKind{repair.FixMissingLBrace, repair.FixMissingRBrace, repair.FixMissingSemicolon}
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("fixes = %v, want %v", recs, want)
	}
	wantKinds := kinds(lex(t, "main(){ int a; if(a>1) { a=0; }; }"))
	if !kindsEqual(kinds(fixed), wantKinds) {
		t.Fatalf("repaired stream\n got: %v\nwant: %v", kinds(fixed), wantKinds)
	}
}

func TestMissingTerminatorAfterCompound(t *testing.T) {
	toks := lex(t, "main(){ int a; while(a>0){ a=a-1; } }")
	fixed, recs := repair.Run(toks)

	got := fixKinds(recs)
	if len(got) != 1 || got[0] != repair.FixMissingSemicolon {
		t.Fatalf("fixes = %v, want [missing-semicolon]", recs)
	}
	wantKinds := kinds(lex(t, "main(){ int a; while(a>0){ a=a-1; }; }"))
	if !kindsEqual(kinds(fixed), wantKinds) {
		t.Fatalf("repaired stream\n got: %v\nwant: %v", kinds(fixed), wantKinds)
	}
}

func TestBracesClosedAtEOF(t *testing.T) {
	toks := lex(t, "main(){ int a; a=1")
	fixed, recs := repair.Run(toks)

	got := fixKinds(recs)
	want := []repair.FixKind{repair.FixMissingSemicolon, repair.FixMissingRBrace}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("fixes = %v, want %v", recs, want)
	}
	wantKinds := kinds(lex(t, "main(){ int a; a=1; }"))
	if !kindsEqual(kinds(fixed), wantKinds) {
		t.Fatalf("repaired stream\n got: %v\nwant: %v", kinds(fixed), wantKinds)
	}
}

func TestRepairIsIdempotent(t *testing.T) {
	srcs := []string{
		"main(){ int a a=5 }",
		"main(){ whille(a>1){ a=a-1; } }",
		"main(){ int a; if a>1 { a=0; }; }",
		"main(){ int i; for(i=0 i<3 i=i+1){ i=i; }; }",
		"main(){ int a b; a=1; }",
		"main(){ int a; if(a>1) a=0; }",
		"main(){ int a; a=1",
	}
	for _, src := range srcs {
		fixed, first := repair.Run(lex(t, src))
		if len(first) == 0 {
			t.Errorf("%s: expected at least one fix on the first pass", src)
			continue
		}
		again, second := repair.Run(fixed)
		if len(second) != 0 {
			t.Errorf("%s: second pass produced fixes: %v", src, second)
		}
		if !kindsEqual(kinds(again), kinds(fixed)) {
			t.Errorf("%s: second pass altered the stream", src)
		}
	}
}

func TestRecordsReferenceOriginalPositions(t *testing.T) {
	src := "main(){ int a a=5 }"
	toks := lex(t, src)
	_, recs := repair.Run(toks)
	if len(recs) != 2 {
		t.Fatalf("fixes = %v, want 2", recs)
	}
	// first ';' lands before the second 'a' (offset 14), second before '}'
	if recs[0].At.Start != 14 {
		t.Errorf("first fix at offset %d, want 14", recs[0].At.Start)
	}
	if recs[1].At.Start != 18 {
		t.Errorf("second fix at offset %d, want 18", recs[1].At.Start)
	}
	for _, r := range recs {
		if !r.At.Empty() {
			t.Errorf("insertion record %v should have a zero-width span", r)
		}
	}
}

func TestBalancedAfterRepair(t *testing.T) {
	srcs := []string{
		"main(){ int a a=5 }",
		"main(){ int a; if a>1 { a=0; }",
		"main(){ int a; while(a>0 { a=a-1; }",
		"main(){ int a; a=1",
	}
	for _, src := range srcs {
		fixed, _ := repair.Run(lex(t, src))
		parens, braces := 0, 0
		for _, tok := range fixed {
			switch tok.Kind {
			case token.LParen:
				parens++
			case token.RParen:
				parens--
			case token.LBrace:
				braces++
			case token.RBrace:
				braces--
			}
		}
		if parens != 0 || braces != 0 {
			t.Errorf("%s: unbalanced after repair (parens=%d braces=%d)", src, parens, braces)
		}
	}
}
