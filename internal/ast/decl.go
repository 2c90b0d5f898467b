package ast

import (
	"minic/internal/source"
)

// DeclName is one declared identifier with its own position, so semantic
// errors can point at the exact name inside a multi-name declaration.
type DeclName struct {
	Name string
	Span source.Span
}

// Decl is one 'int a, b, c;' declaration.
type Decl struct {
	Span  source.Span
	Names []DeclName
}

type Decls struct {
	Arena *Arena[Decl]
}

func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 4
	}
	return &Decls{
		Arena: NewArena[Decl](capHint),
	}
}

func (d *Decls) New(span source.Span, names []DeclName) DeclID {
	return DeclID(d.Arena.Allocate(Decl{Span: span, Names: names}))
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}
