package ast

// BinOp is an arithmetic operator in a binary expression.
type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
)

var binOpNames = [...]string{
	BinAdd: "+",
	BinSub: "-",
	BinMul: "*",
	BinDiv: "/",
}

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return "?"
}

// RelOp is a relational operator in a comparison.
type RelOp uint8

const (
	RelGt RelOp = iota
	RelLt
	RelGtEq
	RelLtEq
	RelEq
	RelNotEq
)

var relOpNames = [...]string{
	RelGt:    ">",
	RelLt:    "<",
	RelGtEq:  ">=",
	RelLtEq:  "<=",
	RelEq:    "==",
	RelNotEq: "!=",
}

func (op RelOp) String() string {
	if int(op) < len(relOpNames) {
		return relOpNames[op]
	}
	return "?"
}

// Negate returns the complementary relation. Control-flow lowering branches
// away from the body when the guard fails, so it always emits the negated
// comparison.
func (op RelOp) Negate() RelOp {
	switch op {
	case RelGt:
		return RelLtEq
	case RelLt:
		return RelGtEq
	case RelGtEq:
		return RelLt
	case RelLtEq:
		return RelGt
	case RelEq:
		return RelNotEq
	case RelNotEq:
		return RelEq
	default:
		return op
	}
}
