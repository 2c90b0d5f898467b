// Package driver wires the pipeline stages together: lexing, token-stream
// repair, parsing, semantic analysis and the optional optimizer and code
// generator. Commands talk to this package, never to the stages directly.
package driver

import (
	"fmt"

	"fortio.org/safecast"

	"minic/internal/ast"
	"minic/internal/codegen"
	"minic/internal/diag"
	"minic/internal/ir"
	"minic/internal/lexer"
	"minic/internal/observ"
	"minic/internal/optimize"
	"minic/internal/parser"
	"minic/internal/repair"
	"minic/internal/sema"
	"minic/internal/source"
	"minic/internal/symbols"
	"minic/internal/token"
)

const defaultMaxDiagnostics = 64

// Options controls which stages run and how many diagnostics are kept.
type Options struct {
	MaxDiagnostics int
	Optimize       bool
	EmitAsm        bool
	Timings        bool
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// Result carries every artifact of one compilation. Diagnostics are kept in
// per-stage bags so callers can print the stage report lists separately.
type Result struct {
	FileSet *source.FileSet
	File    *source.File

	Tokens   []token.Token // as scanned
	Repaired []token.Token // after repair
	Fixes    []repair.Record

	Builder *ast.Builder
	Program ast.Program

	Table *symbols.Table
	Quads []ir.Quad
	Asm   string

	LexBag  *diag.Bag
	SynBag  *diag.Bag
	SemaBag *diag.Bag

	Timing observ.Report
}

// Valid reports whether the source compiled without errors.
func (r *Result) Valid() bool {
	return !r.LexBag.HasErrors() && !r.SynBag.HasErrors() && !r.SemaBag.HasErrors()
}

// AllDiagnostics merges the stage bags into one sorted bag.
func (r *Result) AllDiagnostics() *diag.Bag {
	out := diag.NewBag(r.LexBag.Len() + r.SynBag.Len() + r.SemaBag.Len())
	out.Merge(r.LexBag)
	out.Merge(r.SynBag)
	out.Merge(r.SemaBag)
	out.Sort()
	return out
}

// CompileFile loads path into a fresh FileSet and compiles it.
func CompileFile(path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return Compile(fs, fileID, opts), nil
}

// Compile runs the pipeline over one already-loaded file.
func Compile(fs *source.FileSet, fileID source.FileID, opts Options) *Result {
	maxDiag := opts.maxDiagnostics()
	res := &Result{
		FileSet: fs,
		File:    fs.Get(fileID),
		LexBag:  diag.NewBag(maxDiag),
		SynBag:  diag.NewBag(maxDiag),
		SemaBag: diag.NewBag(maxDiag),
	}
	timer := observ.NewTimer()

	ph := timer.Begin(observ.StageLex)
	res.Tokens = lexer.ScanAll(res.File, lexer.Options{
		Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: res.LexBag}),
	})
	timer.End(ph, fmt.Sprintf("%d tokens", len(res.Tokens)))

	ph = timer.Begin(observ.StageRepair)
	res.Repaired, res.Fixes = repair.Run(res.Tokens)
	timer.End(ph, fmt.Sprintf("%d fixes", len(res.Fixes)))

	ph = timer.Begin(observ.StageParse)
	res.Builder = ast.NewBuilder(ast.Hints{})
	maxErrors, err := safecast.Conv[uint](maxDiag)
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}
	parseRes := parser.Parse(res.Repaired, res.Builder, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  diag.BagReporter{Bag: res.SynBag},
	})
	res.Program = parseRes.Program
	timer.End(ph, fmt.Sprintf("%d errors", parseRes.Errors))

	ph = timer.Begin(observ.StageSema)
	semaRes := sema.Analyze(res.Builder, sema.Options{
		Reporter: diag.BagReporter{Bag: res.SemaBag},
	})
	res.Table = semaRes.Table
	res.Quads = semaRes.Quads
	timer.End(ph, fmt.Sprintf("%d quads", len(res.Quads)))

	if opts.Optimize {
		ph = timer.Begin(observ.StageOptimize)
		res.Quads = optimize.Run(res.Quads)
		timer.End(ph, fmt.Sprintf("%d quads", len(res.Quads)))
	}

	// assembly for a broken program would be misleading
	if opts.EmitAsm && res.Valid() {
		ph = timer.Begin(observ.StageCodegen)
		res.Asm = codegen.Generate(res.Quads, res.Table)
		timer.End(ph, "")
	}

	if opts.Timings {
		res.Timing = timer.Report()
	}
	return res
}

// Tokenize runs only the scanner over path.
func Tokenize(path string, maxDiagnostics int) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics
	}
	res := &Result{
		FileSet: fs,
		File:    fs.Get(fileID),
		LexBag:  diag.NewBag(maxDiagnostics),
		SynBag:  diag.NewBag(0),
		SemaBag: diag.NewBag(0),
	}
	res.Tokens = lexer.ScanAll(res.File, lexer.Options{
		Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: res.LexBag}),
	})
	return res, nil
}

// Repair runs the scanner and the repairer over path.
func Repair(path string, maxDiagnostics int) (*Result, error) {
	res, err := Tokenize(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	res.Repaired, res.Fixes = repair.Run(res.Tokens)
	return res, nil
}
