package ir

import "fmt"

type OperandKind uint8

const (
	OperandNone  OperandKind = iota
	OperandName                     // a declared identifier
	OperandLit                      // an integer literal, kept as its spelling
	OperandTemp                     // a generated temporary (t1, t2, ...)
	OperandLabel                    // a generated label (L1, L2, ...)
)

// Operand is one slot of a quadruple. The zero value is the absent operand
// and prints as "_".
type Operand struct {
	Kind OperandKind
	Text string
}

func None() Operand               { return Operand{} }
func Name(name string) Operand    { return Operand{Kind: OperandName, Text: name} }
func Lit(spelling string) Operand { return Operand{Kind: OperandLit, Text: spelling} }

func Temp(n int) Operand {
	return Operand{Kind: OperandTemp, Text: fmt.Sprintf("t%d", n)}
}

func Label(n int) Operand {
	return Operand{Kind: OperandLabel, Text: fmt.Sprintf("L%d", n)}
}

func (o Operand) IsNone() bool { return o.Kind == OperandNone }

func (o Operand) String() string {
	if o.Kind == OperandNone {
		return "_"
	}
	return o.Text
}
