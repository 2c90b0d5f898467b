// Package ast defines the syntax tree as a closed set of tagged variants
// stored in flat arenas. Nodes reference their children by 1-based IDs, so
// the tree carries no pointers and the zero ID always means "absent". Each
// node keeps the span of its first token for diagnostics.
package ast

import (
	"minic/internal/source"
)

// Program is the root of one parsed compilation. Declarations precede
// statements, matching the grammar.
type Program struct {
	Span  source.Span
	Decls []DeclID
	Stmts []StmtID
}

type Hints struct{ Decls, Stmts, Exprs uint }

// Builder owns the arenas for one compilation. The parser allocates through
// it; the semantic analyzer reads through it.
type Builder struct {
	Decls *Decls
	Stmts *Stmts
	Exprs *Exprs

	Program Program
}

func NewBuilder(hints Hints) *Builder {
	return &Builder{
		Decls: NewDecls(hints.Decls),
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
	}
}

func (b *Builder) PushDecl(id DeclID) {
	b.Program.Decls = append(b.Program.Decls, id)
}

func (b *Builder) PushStmt(id StmtID) {
	b.Program.Stmts = append(b.Program.Stmts, id)
}
