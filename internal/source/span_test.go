package source_test

import (
	"testing"

	"minic/internal/source"
)

func TestSpanCover(t *testing.T) {
	a := source.Span{File: 0, Start: 4, End: 8}
	b := source.Span{File: 0, Start: 2, End: 6}

	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Fatalf("Cover = %v, want 0:2-8", got)
	}

	other := source.Span{File: 1, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files = %v, want %v", got, a)
	}
}

func TestSpanZeroideToEnd(t *testing.T) {
	s := source.Span{File: 0, Start: 3, End: 9}
	z := s.ZeroideToEnd()
	if !z.Empty() || z.Start != 9 {
		t.Fatalf("ZeroideToEnd = %v, want empty span at 9", z)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mc", []byte("main(){\nint a;\na=1;\n}"))

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},  // 'm'
		{6, 1, 7},  // '{'
		{8, 2, 1},  // 'i'
		{12, 2, 5}, // 'a'
		{15, 3, 1}, // 'a'
		{20, 4, 1}, // '}'
	}
	for _, c := range cases {
		start, _ := fs.Resolve(source.At(id, c.off))
		if start.Line != c.line || start.Col != c.col {
			t.Errorf("Resolve(%d) = %d:%d, want %d:%d", c.off, start.Line, start.Col, c.line, c.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mc", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("GetLine(4) = %q, want empty", got)
	}
}

func TestLoadNormalizesCRLF(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("crlf.mc", []byte("a\nb"))
	if fs.Get(id).Flags&source.FileVirtual == 0 {
		t.Fatal("virtual flag not set")
	}

	snippet := fs.Snippet(source.Span{File: id, Start: 2, End: 3})
	if snippet != "b" {
		t.Fatalf("Snippet = %q, want \"b\"", snippet)
	}
}
