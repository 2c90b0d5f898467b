package sema

import (
	"minic/internal/ast"
	"minic/internal/ir"
)

func (a *analyzer) stmt(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	switch a.arenas.Stmts.Get(id).Kind {
	case ast.StmtExpr:
		data, _ := a.arenas.Stmts.ExprStmt(id)
		a.expr(data.Expr)

	case ast.StmtCompound:
		data, _ := a.arenas.Stmts.Compound(id)
		for _, s := range data.Stmts {
			a.stmt(s)
		}

	case ast.StmtIf:
		a.ifStmt(id)

	case ast.StmtWhile:
		a.whileStmt(id)

	case ast.StmtFor:
		a.forStmt(id)
	}
}

// ifStmt lowers to:
//
//	<guard fails -> jump elseLbl>
//	<then body>
//	(jump, _, _, endLbl)
//	(label, _, _, elseLbl)
//	<else body, when present>
//	(label, _, _, endLbl)
func (a *analyzer) ifStmt(id ast.StmtID) {
	data, _ := a.arenas.Stmts.If(id)
	elseLbl := a.newLabel()
	endLbl := a.newLabel()

	a.guard(data.Cond, elseLbl)
	a.stmt(data.Then)
	a.emit(ir.NewJump(endLbl))
	a.emit(ir.NewLabel(elseLbl))
	if data.Else.IsValid() {
		a.stmt(data.Else)
	}
	a.emit(ir.NewLabel(endLbl))
}

// whileStmt lowers to:
//
//	(label, _, _, startLbl)
//	<guard fails -> jump endLbl>
//	<body>
//	(jump, _, _, startLbl)
//	(label, _, _, endLbl)
func (a *analyzer) whileStmt(id ast.StmtID) {
	data, _ := a.arenas.Stmts.While(id)
	startLbl := a.newLabel()
	endLbl := a.newLabel()

	a.emit(ir.NewLabel(startLbl))
	a.guard(data.Cond, endLbl)
	a.stmt(data.Body)
	a.emit(ir.NewJump(startLbl))
	a.emit(ir.NewLabel(endLbl))
}

// forStmt lowers like a while with the initializer hoisted before the loop
// head and the increment spliced in before the back edge.
func (a *analyzer) forStmt(id ast.StmtID) {
	data, _ := a.arenas.Stmts.For(id)

	a.expr(data.Init)

	startLbl := a.newLabel()
	endLbl := a.newLabel()

	a.emit(ir.NewLabel(startLbl))
	a.guard(data.Cond, endLbl)
	a.stmt(data.Body)
	a.expr(data.Post)
	a.emit(ir.NewJump(startLbl))
	a.emit(ir.NewLabel(endLbl))
}
