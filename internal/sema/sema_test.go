package sema_test

import (
	"testing"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/lexer"
	"minic/internal/parser"
	"minic/internal/repair"
	"minic/internal/sema"
	"minic/internal/source"
)

// analyze runs the full front half of the pipeline so sema tests can be
// written against source text.
func analyze(t *testing.T, src string) (sema.Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mc", []byte(src))
	toks := lexer.ScanAll(fs.Get(id), lexer.Options{})
	toks, _ = repair.Run(toks)

	synBag := diag.NewBag(64)
	arenas := ast.NewBuilder(ast.Hints{})
	parser.Parse(toks, arenas, parser.Options{Reporter: diag.BagReporter{Bag: synBag}})
	if synBag.HasErrors() {
		t.Fatalf("unexpected syntax errors: %v", synBag.Items())
	}

	semBag := diag.NewBag(64)
	res := sema.Analyze(arenas, sema.Options{Reporter: diag.BagReporter{Bag: semBag}})
	return res, semBag
}

func quadStrings(res sema.Result) []string {
	out := make([]string, 0, len(res.Quads))
	for _, q := range res.Quads {
		out = append(out, q.String())
	}
	return out
}

func expectQuads(t *testing.T, res sema.Result, want []string) {
	t.Helper()
	got := quadStrings(res)
	if len(got) != len(want) {
		t.Fatalf("quad count = %d, want %d\n got: %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("quad %d = %s, want %s\nfull: %v", i, got[i], want[i], got)
		}
	}
}

func TestStraightLineProgram(t *testing.T) {
	res, bag := analyze(t, "main(){ int a,b; a=1; b=a+2; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected semantic errors: %v", bag.Items())
	}

	// symbol table holds the declared names only; temporaries stay out
	if res.Table.Len() != 2 {
		t.Fatalf("table has %d entries, want 2", res.Table.Len())
	}
	a, _ := res.Table.Lookup("a")
	b, _ := res.Table.Lookup("b")
	if a.Index != 0 || b.Index != 1 {
		t.Fatalf("indices a=%d b=%d, want 0 and 1", a.Index, b.Index)
	}

	expectQuads(t, res, []string{
		"(=, 1, _, a)",
		"(+, a, 2, t1)",
		"(=, t1, _, b)",
	})
}

func TestUndeclaredIdentifier(t *testing.T) {
	res, bag := analyze(t, "main(){ int a; a=5; b=a+1; }")

	var undeclared []diag.Diagnostic
	for _, d := range bag.Items() {
		if d.Code == diag.SemaUndeclared {
			undeclared = append(undeclared, d)
		}
	}
	if len(undeclared) != 1 {
		t.Fatalf("undeclared errors = %d, want 1: %v", len(undeclared), bag.Items())
	}

	// quads are still produced through the placeholder binding
	expectQuads(t, res, []string{
		"(=, 5, _, a)",
		"(+, a, 1, t1)",
		"(=, t1, _, b)",
	})
	if sym, ok := res.Table.Lookup("b"); !ok || !sym.Placeholder {
		t.Fatalf("placeholder for b missing: %+v, %v", sym, ok)
	}
}

func TestRedeclaredOnce(t *testing.T) {
	res, bag := analyze(t, "main(){ int a,a; a=1; }")

	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.SemaRedeclared {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("redeclared errors = %d, want exactly 1: %v", count, bag.Items())
	}
	if res.Table.Len() != 1 {
		t.Fatalf("table has %d entries, want 1", res.Table.Len())
	}
}

func TestWhileLowering(t *testing.T) {
	res, bag := analyze(t, "main(){ int a; while(a>1){ a=a-1; }; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected semantic errors: %v", bag.Items())
	}
	expectQuads(t, res, []string{
		"(label, _, _, L1)",
		"(j<=, a, 1, L2)",
		"(-, a, 1, t1)",
		"(=, t1, _, a)",
		"(jump, _, _, L1)",
		"(label, _, _, L2)",
	})
}

func TestRepairedWhileWithUndeclaredGuard(t *testing.T) {
	// the misspelled keyword is repaired upstream; 'a' is never declared
	res, bag := analyze(t, "main(){ whille(a>1){ a=a-1; } }")

	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.SemaUndeclared {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("undeclared errors = %d, want exactly 1: %v", count, bag.Items())
	}
	expectQuads(t, res, []string{
		"(label, _, _, L1)",
		"(j<=, a, 1, L2)",
		"(-, a, 1, t1)",
		"(=, t1, _, a)",
		"(jump, _, _, L1)",
		"(label, _, _, L2)",
	})
}

func TestIfElseLowering(t *testing.T) {
	res, bag := analyze(t, "main(){ int a; if(a>1){ a=0; } else { a=2; }; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected semantic errors: %v", bag.Items())
	}
	expectQuads(t, res, []string{
		"(j<=, a, 1, L1)",
		"(=, 0, _, a)",
		"(jump, _, _, L2)",
		"(label, _, _, L1)",
		"(=, 2, _, a)",
		"(label, _, _, L2)",
	})
}

func TestIfWithoutElseLowering(t *testing.T) {
	res, bag := analyze(t, "main(){ int a; if(a==0){ a=1; }; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected semantic errors: %v", bag.Items())
	}
	expectQuads(t, res, []string{
		"(j!=, a, 0, L1)",
		"(=, 1, _, a)",
		"(jump, _, _, L2)",
		"(label, _, _, L1)",
		"(label, _, _, L2)",
	})
}

func TestForLowering(t *testing.T) {
	res, bag := analyze(t, "main(){ int i,s; for(i=0; i<10; i=i+1){ s=s+i; }; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected semantic errors: %v", bag.Items())
	}
	expectQuads(t, res, []string{
		"(=, 0, _, i)",
		"(label, _, _, L1)",
		"(j>=, i, 10, L2)",
		"(+, s, i, t1)",
		"(=, t1, _, s)",
		"(+, i, 1, t2)",
		"(=, t2, _, i)",
		"(jump, _, _, L1)",
		"(label, _, _, L2)",
	})
}

func TestBareGuardComparesWithZero(t *testing.T) {
	res, bag := analyze(t, "main(){ int a; while(a){ a=a-1; }; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected semantic errors: %v", bag.Items())
	}
	expectQuads(t, res, []string{
		"(label, _, _, L1)",
		"(j==, a, 0, L2)",
		"(-, a, 1, t1)",
		"(=, t1, _, a)",
		"(jump, _, _, L1)",
		"(label, _, _, L2)",
	})
}

func TestNestedExpressionsAllocateSequentialTemps(t *testing.T) {
	res, bag := analyze(t, "main(){ int a,b; a=1; b=(a+2)*(a-1); }")
	if bag.HasErrors() {
		t.Fatalf("unexpected semantic errors: %v", bag.Items())
	}
	expectQuads(t, res, []string{
		"(=, 1, _, a)",
		"(+, a, 2, t1)",
		"(-, a, 1, t2)",
		"(*, t1, t2, t3)",
		"(=, t3, _, b)",
	})
}

func TestLabelsUniquePerConstruct(t *testing.T) {
	res, bag := analyze(t, "main(){ int a; if(a>1){ a=0; }; while(a<5){ a=a+1; }; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected semantic errors: %v", bag.Items())
	}
	seen := map[string]int{}
	for _, q := range res.Quads {
		if q.Op.String() == "label" {
			seen[q.Result.Text]++
		}
	}
	for lbl, n := range seen {
		if n != 1 {
			t.Errorf("label %s emitted %d times", lbl, n)
		}
	}
	if len(seen) != 4 {
		t.Errorf("distinct labels = %d, want 4", len(seen))
	}
}
