package lexer_test

import (
	"testing"

	"minic/internal/diag"
	"minic/internal/lexer"
	"minic/internal/source"
	"minic/internal/token"
)

type testReporter struct {
	codes []diag.Code
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.codes = append(r.codes, code)
}

func scan(t *testing.T, src string) ([]token.Token, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mc", []byte(src))
	rep := &testReporter{}
	toks := lexer.ScanAll(fs.Get(id), lexer.Options{Reporter: rep})
	return toks, rep
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

func TestScanKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{
			name: "empty main",
			src:  "main(){}",
			want: []token.Kind{token.KwMain, token.LParen, token.RParen, token.LBrace, token.RBrace, token.EOF},
		},
		{
			name: "declaration",
			src:  "int a,b;",
			want: []token.Kind{token.KwInt, token.Ident, token.Comma, token.Ident, token.Semicolon, token.EOF},
		},
		{
			name: "assignment with arithmetic",
			src:  "a=b*2+c/4;",
			want: []token.Kind{
				token.Ident, token.Assign, token.Ident, token.Star, token.IntLit,
				token.Plus, token.Ident, token.Slash, token.IntLit, token.Semicolon, token.EOF,
			},
		},
		{
			name: "two char operators win over one char",
			src:  "<= >= == != < > =",
			want: []token.Kind{
				token.LtEq, token.GtEq, token.EqEq, token.BangEq,
				token.Lt, token.Gt, token.Assign, token.EOF,
			},
		},
		{
			name: "keywords vs identifiers",
			src:  "if iff for form whilex while",
			want: []token.Kind{
				token.KwIf, token.Ident, token.KwFor, token.Ident,
				token.Ident, token.KwWhile, token.EOF,
			},
		},
		{
			name: "line comment skipped",
			src:  "a=1; // trailing note\nb=2;",
			want: []token.Kind{
				token.Ident, token.Assign, token.IntLit, token.Semicolon,
				token.Ident, token.Assign, token.IntLit, token.Semicolon, token.EOF,
			},
		},
		{
			name: "block comment skipped",
			src:  "a/*x\ny*/=1;",
			want: []token.Kind{token.Ident, token.Assign, token.IntLit, token.Semicolon, token.EOF},
		},
		{
			name: "empty input",
			src:  "",
			want: []token.Kind{token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, rep := scan(t, tt.src)
			if got := kinds(toks); !kindsEqual(got, tt.want) {
				t.Fatalf("kinds mismatch\n got: %v\nwant: %v", got, tt.want)
			}
			if len(rep.codes) != 0 {
				t.Fatalf("unexpected diagnostics: %v", rep.codes)
			}
		})
	}
}

func TestScanText(t *testing.T) {
	toks, _ := scan(t, "while (count <= 10)")
	want := []string{"while", "(", "count", "<=", "10", ")", ""}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Text != w {
			t.Errorf("token %d text = %q, want %q", i, toks[i].Text, w)
		}
	}
}

func TestScanSpans(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mc", []byte("ab = 12;"))
	toks := lexer.ScanAll(fs.Get(id), lexer.Options{})

	wantSpans := []struct{ start, end uint32 }{
		{0, 2}, // ab
		{3, 4}, // =
		{5, 7}, // 12
		{7, 8}, // ;
		{8, 8}, // EOF
	}
	if len(toks) != len(wantSpans) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(wantSpans))
	}
	for i, w := range wantSpans {
		if toks[i].Span.Start != w.start || toks[i].Span.End != w.end {
			t.Errorf("token %d span = [%d,%d), want [%d,%d)",
				i, toks[i].Span.Start, toks[i].Span.End, w.start, w.end)
		}
	}
}

func TestBadNumber(t *testing.T) {
	toks, rep := scan(t, "a=12x3;")
	want := []token.Kind{token.Ident, token.Assign, token.IntLit, token.Semicolon, token.EOF}
	if got := kinds(toks); !kindsEqual(got, want) {
		t.Fatalf("kinds mismatch\n got: %v\nwant: %v", got, want)
	}
	if toks[2].Text != "12x3" {
		t.Errorf("malformed literal text = %q, want %q", toks[2].Text, "12x3")
	}
	if len(rep.codes) != 1 || rep.codes[0] != diag.LexBadNumber {
		t.Errorf("diagnostics = %v, want [LexBadNumber]", rep.codes)
	}
}

func TestUnknownChar(t *testing.T) {
	toks, rep := scan(t, "a = $1;")
	if len(rep.codes) != 1 || rep.codes[0] != diag.LexUnknownChar {
		t.Fatalf("diagnostics = %v, want [LexUnknownChar]", rep.codes)
	}
	want := []token.Kind{token.Ident, token.Assign, token.Invalid, token.IntLit, token.Semicolon, token.EOF}
	if got := kinds(toks); !kindsEqual(got, want) {
		t.Fatalf("kinds mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	toks, rep := scan(t, "a=1; /* never closed")
	want := []token.Kind{token.Ident, token.Assign, token.IntLit, token.Semicolon, token.EOF}
	if got := kinds(toks); !kindsEqual(got, want) {
		t.Fatalf("kinds mismatch\n got: %v\nwant: %v", got, want)
	}
	if len(rep.codes) != 1 || rep.codes[0] != diag.LexUnterminatedComment {
		t.Errorf("diagnostics = %v, want [LexUnterminatedComment]", rep.codes)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mc", []byte("int a;"))
	lx := lexer.New(fs.Get(id), lexer.Options{})

	if got := lx.Peek().Kind; got != token.KwInt {
		t.Fatalf("Peek = %v, want int", got)
	}
	if got := lx.Peek().Kind; got != token.KwInt {
		t.Fatalf("second Peek = %v, want int", got)
	}
	if got := lx.Next().Kind; got != token.KwInt {
		t.Fatalf("Next = %v, want int", got)
	}
	if got := lx.Next().Kind; got != token.Ident {
		t.Fatalf("Next = %v, want Ident", got)
	}
}
