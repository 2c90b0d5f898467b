// Package ir defines the quadruple intermediate form: an ordered, append-only
// sequence of {op, arg1, arg2, result} records. Operands are identifiers,
// integer literals, generated temporaries or labels; the sequence is the
// contract between semantic analysis, the optimizer and the code generator.
package ir

// Op is a quadruple operator.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	// OpAssign copies arg1 into result.
	OpAssign
	// OpLabel marks result as a jump target.
	OpLabel
	// OpJump transfers control to the label in result unconditionally.
	OpJump
	// Conditional jumps compare arg1 and arg2 and transfer control to the
	// label in result when the relation holds. Lowering branches away from
	// the body on a failed guard, so these carry the negated source
	// relation.
	OpJumpGt
	OpJumpLt
	OpJumpGe
	OpJumpLe
	OpJumpEq
	OpJumpNe
	// OpShl and OpShr are introduced by strength reduction; the analyzer
	// never emits them.
	OpShl
	OpShr
)

var opNames = [...]string{
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpAssign: "=",
	OpLabel:  "label",
	OpJump:   "jump",
	OpJumpGt: "j>",
	OpJumpLt: "j<",
	OpJumpGe: "j>=",
	OpJumpLe: "j<=",
	OpJumpEq: "j==",
	OpJumpNe: "j!=",
	OpShl:    "<<",
	OpShr:    ">>",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "?"
}

// IsArith reports whether the operator computes an arithmetic result.
func (op Op) IsArith() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpShl, OpShr:
		return true
	default:
		return false
	}
}

// IsCondJump reports whether the operator is a conditional jump.
func (op Op) IsCondJump() bool {
	switch op {
	case OpJumpGt, OpJumpLt, OpJumpGe, OpJumpLe, OpJumpEq, OpJumpNe:
		return true
	default:
		return false
	}
}
