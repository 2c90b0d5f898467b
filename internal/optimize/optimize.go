// Package optimize is a peephole pass pipeline over the quadruple sequence:
// constant folding (including relational folds on conditional jumps),
// common-subexpression elimination, copy propagation, dead temporary
// elimination and strength reduction. It consumes and produces the same
// four-field form, so the driver can interpose it transparently between IR
// generation and code generation.
//
// Folding, CSE and copy propagation work on straight-line regions only: all
// three reset their bookkeeping at every label and jump, so no value ever
// propagates across a control-flow edge.
package optimize

import (
	"strconv"

	"minic/internal/ir"
)

// Run applies all passes in order and returns a fresh sequence. The input
// slice is not modified.
func Run(quads []ir.Quad) []ir.Quad {
	if len(quads) == 0 {
		return nil
	}
	out := make([]ir.Quad, len(quads))
	copy(out, quads)

	out = foldConstants(out)
	out = eliminateCommonSubexpressions(out)
	out = propagateCopies(out)
	out = eliminateDeadTemps(out)
	out = reduceStrength(out)
	return out
}

// foldConstants evaluates arithmetic quads whose operands are known
// constants, replacing them with plain assignments. Known values are
// tracked per straight-line region.
func foldConstants(quads []ir.Quad) []ir.Quad {
	consts := map[string]int64{}
	out := make([]ir.Quad, 0, len(quads))

	value := func(o ir.Operand) (int64, bool) {
		switch o.Kind {
		case ir.OperandLit:
			v, err := strconv.ParseInt(o.Text, 10, 64)
			return v, err == nil
		case ir.OperandName, ir.OperandTemp:
			v, ok := consts[o.Text]
			return v, ok
		default:
			return 0, false
		}
	}

	for _, q := range quads {
		switch {
		case q.Op.IsCondJump():
			a, aok := value(q.Arg1)
			b, bok := value(q.Arg2)
			consts = map[string]int64{}
			if !aok || !bok {
				out = append(out, q)
			} else if compare(q.Op, a, b) {
				out = append(out, ir.NewJump(q.Result))
			}
			// a branch that can never be taken is dropped

		case q.Op == ir.OpLabel || q.Op == ir.OpJump:
			// control flow boundary: forget everything
			consts = map[string]int64{}
			out = append(out, q)

		case q.Op == ir.OpAssign:
			if v, ok := value(q.Arg1); ok {
				consts[q.Result.Text] = v
			} else {
				delete(consts, q.Result.Text)
			}
			out = append(out, q)

		case q.Op.IsArith():
			a, aok := value(q.Arg1)
			b, bok := value(q.Arg2)
			if aok && bok && !(q.Op == ir.OpDiv && b == 0) {
				v := fold(q.Op, a, b)
				consts[q.Result.Text] = v
				out = append(out, ir.Quad{
					Op:     ir.OpAssign,
					Arg1:   ir.Lit(strconv.FormatInt(v, 10)),
					Result: q.Result,
				})
			} else {
				delete(consts, q.Result.Text)
				out = append(out, q)
			}

		default:
			out = append(out, q)
		}
	}
	return out
}

func fold(op ir.Op, a, b int64) int64 {
	switch op {
	case ir.OpAdd:
		return a + b
	case ir.OpSub:
		return a - b
	case ir.OpMul:
		return a * b
	case ir.OpDiv:
		return a / b
	case ir.OpShl:
		return a << uint(b)
	default: // OpShr
		return a >> uint(b)
	}
}

func compare(op ir.Op, a, b int64) bool {
	switch op {
	case ir.OpJumpGt:
		return a > b
	case ir.OpJumpLt:
		return a < b
	case ir.OpJumpGe:
		return a >= b
	case ir.OpJumpLe:
		return a <= b
	case ir.OpJumpEq:
		return a == b
	default: // OpJumpNe
		return a != b
	}
}

type exprKey struct {
	op         ir.Op
	arg1, arg2 ir.Operand
}

// eliminateCommonSubexpressions replaces a recomputed expression with an
// assignment from the quad that first computed it. The table resets at
// control-flow boundaries and whenever an operand is overwritten.
func eliminateCommonSubexpressions(quads []ir.Quad) []ir.Quad {
	exprs := map[exprKey]ir.Operand{}
	out := make([]ir.Quad, 0, len(quads))

	invalidate := func(dst ir.Operand) {
		for key, val := range exprs {
			if key.arg1 == dst || key.arg2 == dst || val == dst {
				delete(exprs, key)
			}
		}
	}

	for _, q := range quads {
		switch {
		case q.Op == ir.OpLabel || q.Op == ir.OpJump || q.Op.IsCondJump():
			exprs = map[exprKey]ir.Operand{}
			out = append(out, q)

		case q.Op.IsArith():
			key := exprKey{op: q.Op, arg1: q.Arg1, arg2: q.Arg2}
			if prev, ok := exprs[key]; ok {
				out = append(out, ir.Quad{Op: ir.OpAssign, Arg1: prev, Result: q.Result})
				invalidate(q.Result)
			} else {
				invalidate(q.Result)
				exprs[key] = q.Result
				out = append(out, q)
			}

		case q.Op == ir.OpAssign:
			invalidate(q.Result)
			out = append(out, q)

		default:
			out = append(out, q)
		}
	}
	return out
}

// propagateCopies rewrites reads of a temporary that holds a plain copy of
// another temporary, so dead temporary elimination can then drop the copy
// quad itself. CSE leaves exactly such copies behind. Region-local like the
// passes before it.
func propagateCopies(quads []ir.Quad) []ir.Quad {
	copies := map[string]ir.Operand{}
	out := make([]ir.Quad, 0, len(quads))

	forget := func(dst ir.Operand) {
		delete(copies, dst.Text)
		for key, src := range copies {
			if src == dst {
				delete(copies, key)
			}
		}
	}
	subst := func(o ir.Operand) ir.Operand {
		if o.Kind == ir.OperandTemp {
			if src, ok := copies[o.Text]; ok {
				return src
			}
		}
		return o
	}

	for _, q := range quads {
		switch {
		case q.Op.IsCondJump():
			q.Arg1 = subst(q.Arg1)
			q.Arg2 = subst(q.Arg2)
			copies = map[string]ir.Operand{}
			out = append(out, q)

		case q.Op == ir.OpLabel || q.Op == ir.OpJump:
			copies = map[string]ir.Operand{}
			out = append(out, q)

		case q.Op == ir.OpAssign:
			q.Arg1 = subst(q.Arg1)
			forget(q.Result)
			if q.Result.Kind == ir.OperandTemp && q.Arg1.Kind == ir.OperandTemp {
				copies[q.Result.Text] = q.Arg1
			}
			out = append(out, q)

		case q.Op.IsArith():
			q.Arg1 = subst(q.Arg1)
			q.Arg2 = subst(q.Arg2)
			forget(q.Result)
			out = append(out, q)

		default:
			out = append(out, q)
		}
	}
	return out
}

// eliminateDeadTemps drops quads that only write a temporary nobody reads.
// Runs to a fixed point so chains of dead temps unravel fully.
func eliminateDeadTemps(quads []ir.Quad) []ir.Quad {
	for {
		used := map[string]struct{}{}
		for _, q := range quads {
			if q.Arg1.Kind == ir.OperandTemp {
				used[q.Arg1.Text] = struct{}{}
			}
			if q.Arg2.Kind == ir.OperandTemp {
				used[q.Arg2.Text] = struct{}{}
			}
		}

		out := make([]ir.Quad, 0, len(quads))
		for _, q := range quads {
			if (q.Op == ir.OpAssign || q.Op.IsArith()) && q.Result.Kind == ir.OperandTemp {
				if _, ok := used[q.Result.Text]; !ok {
					continue
				}
			}
			out = append(out, q)
		}
		if len(out) == len(quads) {
			return out
		}
		quads = out
	}
}

// reduceStrength rewrites multiplication and division by two into shifts.
func reduceStrength(quads []ir.Quad) []ir.Quad {
	isTwo := func(o ir.Operand) bool {
		return o.Kind == ir.OperandLit && o.Text == "2"
	}

	out := make([]ir.Quad, 0, len(quads))
	for _, q := range quads {
		switch {
		case q.Op == ir.OpMul && isTwo(q.Arg2):
			out = append(out, ir.Quad{Op: ir.OpShl, Arg1: q.Arg1, Arg2: ir.Lit("1"), Result: q.Result})
		case q.Op == ir.OpMul && isTwo(q.Arg1):
			out = append(out, ir.Quad{Op: ir.OpShl, Arg1: q.Arg2, Arg2: ir.Lit("1"), Result: q.Result})
		case q.Op == ir.OpDiv && isTwo(q.Arg2):
			out = append(out, ir.Quad{Op: ir.OpShr, Arg1: q.Arg1, Arg2: ir.Lit("1"), Result: q.Result})
		default:
			out = append(out, q)
		}
	}
	return out
}
