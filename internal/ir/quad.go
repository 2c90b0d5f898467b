package ir

import "fmt"

// Quad is one quadruple. Once appended to a sequence it is never edited,
// only consumed (and possibly dropped or replaced wholesale) by later
// stages.
type Quad struct {
	Op     Op
	Arg1   Operand
	Arg2   Operand
	Result Operand
}

func (q Quad) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s)", q.Op, q.Arg1, q.Arg2, q.Result)
}

// NewLabel builds the 'label' pseudo-quad marking target.
func NewLabel(target Operand) Quad {
	return Quad{Op: OpLabel, Result: target}
}

// NewJump builds an unconditional jump to target.
func NewJump(target Operand) Quad {
	return Quad{Op: OpJump, Result: target}
}
