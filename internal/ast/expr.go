package ast

import (
	"minic/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprIntLit
	ExprBinary
	ExprCompare
	ExprAssign
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprIdentData struct {
	Name string
}

type ExprIntLitData struct {
	// Value keeps the literal's spelling; later stages treat it as opaque.
	Value string
}

type ExprBinaryData struct {
	Op    BinOp
	Left  ExprID
	Right ExprID
}

type ExprCompareData struct {
	Op    RelOp
	Left  ExprID
	Right ExprID
}

type ExprAssignData struct {
	Target ExprID // always an ExprIdent
	Value  ExprID
}

// Exprs manages allocation of expressions, one payload arena per kind.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	IntLits  *Arena[ExprIntLitData]
	Binaries *Arena[ExprBinaryData]
	Compares *Arena[ExprCompareData]
	Assigns  *Arena[ExprAssignData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		IntLits:  NewArena[ExprIntLitData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Compares: NewArena[ExprCompareData](capHint),
		Assigns:  NewArena[ExprAssignData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewIdent(span source.Span, name string) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIntLit(span source.Span, value string) ExprID {
	payload := e.IntLits.Allocate(ExprIntLitData{Value: value})
	return e.new(ExprIntLit, span, PayloadID(payload))
}

func (e *Exprs) IntLit(id ExprID) (*ExprIntLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIntLit {
		return nil, false
	}
	return e.IntLits.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, op BinOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCompare(span source.Span, op RelOp, left, right ExprID) ExprID {
	payload := e.Compares.Allocate(ExprCompareData{Op: op, Left: left, Right: right})
	return e.new(ExprCompare, span, PayloadID(payload))
}

func (e *Exprs) Compare(id ExprID) (*ExprCompareData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCompare {
		return nil, false
	}
	return e.Compares.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewAssign(span source.Span, target, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Target: target, Value: value})
	return e.new(ExprAssign, span, PayloadID(payload))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(uint32(expr.Payload)), true
}
