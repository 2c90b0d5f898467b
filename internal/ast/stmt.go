package ast

import (
	"minic/internal/source"
)

type StmtKind uint8

const (
	StmtIf StmtKind = iota
	StmtWhile
	StmtFor
	StmtCompound
	StmtExpr
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID // always a compound
	Else StmtID // NoStmtID when absent
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

type StmtForData struct {
	Init ExprID
	Cond ExprID
	Post ExprID
	Body StmtID
}

type StmtCompoundData struct {
	Stmts []StmtID
}

type StmtExprData struct {
	Expr ExprID
}

// Stmts manages allocation of statements, one payload arena per kind.
type Stmts struct {
	Arena     *Arena[Stmt]
	Ifs       *Arena[StmtIfData]
	Whiles    *Arena[StmtWhileData]
	Fors      *Arena[StmtForData]
	Compounds *Arena[StmtCompoundData]
	ExprStmts *Arena[StmtExprData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Ifs:       NewArena[StmtIfData](capHint),
		Whiles:    NewArena[StmtWhileData](capHint),
		Fors:      NewArena[StmtForData](capHint),
		Compounds: NewArena[StmtCompoundData](capHint),
		ExprStmts: NewArena[StmtExprData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(payload))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWhile {
		return nil, false
	}
	return s.Whiles.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewFor(span source.Span, init, cond, post ExprID, body StmtID) StmtID {
	payload := s.Fors.Allocate(StmtForData{Init: init, Cond: cond, Post: post, Body: body})
	return s.new(StmtFor, span, PayloadID(payload))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewCompound(span source.Span, stmts []StmtID) StmtID {
	payload := s.Compounds.Allocate(StmtCompoundData{Stmts: stmts})
	return s.new(StmtCompound, span, PayloadID(payload))
}

func (s *Stmts) Compound(id StmtID) (*StmtCompoundData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtCompound {
		return nil, false
	}
	return s.Compounds.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewExprStmt(span source.Span, expr ExprID) StmtID {
	payload := s.ExprStmts.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

func (s *Stmts) ExprStmt(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.ExprStmts.Get(uint32(stmt.Payload)), true
}
