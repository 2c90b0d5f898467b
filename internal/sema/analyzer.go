// Package sema walks the AST once, top-down and left-to-right, building the
// flat symbol table, checking declaration discipline and emitting the
// quadruple sequence. Errors never stop the walk: an undeclared name gets a
// placeholder binding and analysis continues, so one mistake does not
// cascade into dozens of reports.
package sema

import (
	"fmt"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/ir"
	"minic/internal/source"
	"minic/internal/symbols"
)

type Options struct {
	Reporter diag.Reporter
}

type Result struct {
	Table  *symbols.Table
	Quads  []ir.Quad
	Errors uint
}

type analyzer struct {
	arenas *ast.Builder
	table  *symbols.Table
	quads  []ir.Quad
	opts   Options
	errs   uint

	nextTemp  int
	nextLabel int

	// one report per name, however many times it is misused
	flagged map[string]struct{}
}

// Analyze runs semantic analysis over a parsed program.
func Analyze(arenas *ast.Builder, opts Options) Result {
	a := &analyzer{
		arenas:    arenas,
		table:     symbols.NewTable(),
		opts:      opts,
		nextTemp:  1,
		nextLabel: 1,
		flagged:   make(map[string]struct{}),
	}

	for _, id := range arenas.Program.Decls {
		a.declare(arenas.Decls.Get(id))
	}
	for _, id := range arenas.Program.Stmts {
		a.stmt(id)
	}

	return Result{
		Table:  a.table,
		Quads:  a.quads,
		Errors: a.errs,
	}
}

func (a *analyzer) declare(decl *ast.Decl) {
	for _, name := range decl.Names {
		if _, ok := a.table.Declare(name.Name, name.Span); !ok {
			a.reportName(diag.SemaRedeclared, name.Span, name.Name,
				fmt.Sprintf("identifier %q is already declared", name.Name))
		}
	}
}

// useName resolves an identifier reference. An undeclared name is reported
// once and bound to a placeholder so later uses resolve silently.
func (a *analyzer) useName(name string, sp source.Span) {
	if _, ok := a.table.Lookup(name); ok {
		return
	}
	a.reportName(diag.SemaUndeclared, sp, name,
		fmt.Sprintf("identifier %q is not declared", name))
	a.table.DeclarePlaceholder(name, sp)
}

func (a *analyzer) reportName(code diag.Code, sp source.Span, name, msg string) {
	key := fmt.Sprintf("%d:%s", code, name)
	if _, seen := a.flagged[key]; seen {
		return
	}
	a.flagged[key] = struct{}{}
	a.errs++
	if a.opts.Reporter != nil {
		a.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (a *analyzer) emit(q ir.Quad) {
	a.quads = append(a.quads, q)
}

func (a *analyzer) newTemp() ir.Operand {
	t := ir.Temp(a.nextTemp)
	a.nextTemp++
	return t
}

func (a *analyzer) newLabel() ir.Operand {
	l := ir.Label(a.nextLabel)
	a.nextLabel++
	return l
}
