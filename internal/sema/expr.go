package sema

import (
	"minic/internal/ast"
	"minic/internal/ir"
)

// expr lowers an expression bottom-up and returns the operand holding its
// value. Identifiers and literals become operands directly; every binary
// operator allocates a fresh temporary and emits one quadruple.
func (a *analyzer) expr(id ast.ExprID) ir.Operand {
	if !id.IsValid() {
		return ir.None()
	}
	node := a.arenas.Exprs.Get(id)
	switch node.Kind {
	case ast.ExprIdent:
		data, _ := a.arenas.Exprs.Ident(id)
		a.useName(data.Name, node.Span)
		return ir.Name(data.Name)

	case ast.ExprIntLit:
		data, _ := a.arenas.Exprs.IntLit(id)
		return ir.Lit(data.Value)

	case ast.ExprBinary:
		data, _ := a.arenas.Exprs.Binary(id)
		left := a.expr(data.Left)
		right := a.expr(data.Right)
		t := a.newTemp()
		a.emit(ir.Quad{Op: binOp(data.Op), Arg1: left, Arg2: right, Result: t})
		return t

	case ast.ExprAssign:
		data, _ := a.arenas.Exprs.Assign(id)
		value := a.expr(data.Value)
		target, _ := a.arenas.Exprs.Ident(data.Target)
		a.useName(target.Name, a.arenas.Exprs.Get(data.Target).Span)
		a.emit(ir.Quad{Op: ir.OpAssign, Arg1: value, Result: ir.Name(target.Name)})
		return ir.Name(target.Name)

	case ast.ExprCompare:
		// a comparison outside a control guard has no value slot in the
		// quadruple form; both sides are still checked
		data, _ := a.arenas.Exprs.Compare(id)
		a.expr(data.Left)
		a.expr(data.Right)
		return ir.None()

	default:
		return ir.None()
	}
}

// guard lowers a condition and emits the conditional jump taken when the
// guard FAILS, transferring control to target. A bare arithmetic guard is
// treated as "value != 0", so the failure branch tests equality with zero.
func (a *analyzer) guard(id ast.ExprID, target ir.Operand) {
	if !id.IsValid() {
		return
	}
	node := a.arenas.Exprs.Get(id)
	if node.Kind == ast.ExprCompare {
		data, _ := a.arenas.Exprs.Compare(id)
		left := a.expr(data.Left)
		right := a.expr(data.Right)
		a.emit(ir.Quad{Op: jumpOn(data.Op.Negate()), Arg1: left, Arg2: right, Result: target})
		return
	}
	value := a.expr(id)
	a.emit(ir.Quad{Op: ir.OpJumpEq, Arg1: value, Arg2: ir.Lit("0"), Result: target})
}

func binOp(op ast.BinOp) ir.Op {
	switch op {
	case ast.BinAdd:
		return ir.OpAdd
	case ast.BinSub:
		return ir.OpSub
	case ast.BinMul:
		return ir.OpMul
	default:
		return ir.OpDiv
	}
}

func jumpOn(op ast.RelOp) ir.Op {
	switch op {
	case ast.RelGt:
		return ir.OpJumpGt
	case ast.RelLt:
		return ir.OpJumpLt
	case ast.RelGtEq:
		return ir.OpJumpGe
	case ast.RelLtEq:
		return ir.OpJumpLe
	case ast.RelEq:
		return ir.OpJumpEq
	default:
		return ir.OpJumpNe
	}
}
