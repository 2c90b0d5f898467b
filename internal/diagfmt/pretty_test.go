package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"minic/internal/diag"
	"minic/internal/diagfmt"
	"minic/internal/ir"
	"minic/internal/repair"
	"minic/internal/source"
	"minic/internal/symbols"
)

func testBag(fs *source.FileSet) (*diag.Bag, source.FileID) {
	id := fs.AddVirtual("demo.mc", []byte("main(){\n    int a\n}\n"))
	bag := diag.NewBag(16)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpectSemicolon,
		Message:  "';' expected after declaration",
		Primary:  source.Span{File: id, Start: 16, End: 17},
	})
	return bag, id
}

func TestPrettyShape(t *testing.T) {
	fs := source.NewFileSet()
	bag, _ := testBag(fs)

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})

	out := buf.String()
	if !strings.Contains(out, "demo.mc:2:9:") {
		t.Errorf("missing location prefix:\n%s", out)
	}
	if !strings.Contains(out, "ERROR SYN2003: ';' expected after declaration") {
		t.Errorf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, "int a") {
		t.Errorf("missing context line:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret:\n%s", out)
	}
}

func TestPrettyNoColorByDefault(t *testing.T) {
	fs := source.NewFileSet()
	bag, _ := testBag(fs)

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("unexpected ANSI escapes without Color:\n%q", buf.String())
	}
}

func TestJSONStructure(t *testing.T) {
	fs := source.NewFileSet()
	bag, _ := testBag(fs)

	var buf bytes.Buffer
	err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{IncludePositions: true})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "SYN2003" || d.Phase != "syntax" || d.Severity != "ERROR" {
		t.Errorf("unexpected diagnostic header: %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 9 {
		t.Errorf("unexpected position: %+v", d.Location)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.mc", []byte("main(){}\n"))
	bag := diag.NewBag(16)
	for i := 0; i < 3; i++ {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.SynUnexpectedToken,
			Primary:  source.Span{File: id},
		})
	}
	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Errorf("Count = %d, want 2", out.Count)
	}
}

func TestFixesOutputs(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.mc", []byte("main(){ int a a=1 }\n"))
	records := []repair.Record{
		{
			Kind:        repair.FixMissingSemicolon,
			At:          source.Span{File: id, Start: 13, End: 13},
			Replacement: ";",
		},
		{
			Kind:        repair.FixKeywordTypo,
			At:          source.Span{File: id, Start: 0, End: 4},
			Original:    "mian",
			Replacement: "main",
		},
	}

	var buf bytes.Buffer
	diagfmt.FixesPretty(&buf, records, fs, diagfmt.PrettyOpts{})
	out := buf.String()
	if !strings.Contains(out, `fixed missing-semicolon: inserted ";"`) {
		t.Errorf("missing insertion line:\n%s", out)
	}
	if !strings.Contains(out, `fixed keyword-typo: "mian" -> "main"`) {
		t.Errorf("missing replacement line:\n%s", out)
	}

	jsonOut := diagfmt.BuildFixesOutput(records, fs, diagfmt.JSONOpts{})
	if jsonOut.Count != 2 {
		t.Fatalf("Count = %d, want 2", jsonOut.Count)
	}
	if jsonOut.Fixes[1].Original != "mian" || jsonOut.Fixes[1].Replacement != "main" {
		t.Errorf("unexpected fix: %+v", jsonOut.Fixes[1])
	}
}

func TestSemanticsOutput(t *testing.T) {
	tbl := symbols.NewTable()
	tbl.Declare("a", source.Span{})
	tbl.DeclarePlaceholder("b", source.Span{})
	quads := []ir.Quad{
		{Op: ir.OpAssign, Arg1: ir.Lit("1"), Result: ir.Name("a")},
	}

	out := diagfmt.BuildSemanticsOutput(tbl, quads)
	if len(out.Symbols) != 2 {
		t.Fatalf("symbols = %d, want 2", len(out.Symbols))
	}
	if !out.Symbols[1].Placeholder {
		t.Errorf("b should be a placeholder: %+v", out.Symbols[1])
	}
	if out.Quads[0].Op != "=" || out.Quads[0].Arg2 != "_" {
		t.Errorf("unexpected quad: %+v", out.Quads[0])
	}

	var buf bytes.Buffer
	diagfmt.QuadsPretty(&buf, quads)
	if !strings.Contains(buf.String(), "(=, 1, _, a)") {
		t.Errorf("quad listing missing quad:\n%s", buf.String())
	}
}
