// Package codegen lowers the quadruple sequence plus the symbol table to
// x86-64 assembly text (NASM syntax, Linux, System V AMD64 ABI). Named
// variables live in .data as quadwords, temporaries in .bss; every quad is
// lowered through rax/rbx with its source form kept as a comment.
package codegen

import (
	"fmt"
	"strings"

	"minic/internal/ir"
	"minic/internal/symbols"
)

// Generate returns the complete assembly listing for one compilation.
func Generate(quads []ir.Quad, table *symbols.Table) string {
	g := &generator{}
	g.header(quads, table)
	for _, q := range quads {
		g.quad(q)
	}
	g.footer()
	return g.b.String()
}

type generator struct {
	b strings.Builder
}

func (g *generator) line(format string, args ...any) {
	fmt.Fprintf(&g.b, format, args...)
	g.b.WriteByte('\n')
}

func (g *generator) header(quads []ir.Quad, table *symbols.Table) {
	g.line("; generated x86-64 assembly")
	g.line("; target: Linux x86-64, System V AMD64 ABI")
	g.line("")
	g.line("section .data")
	for _, sym := range table.Symbols() {
		g.line("    %s dq 0", sym.Name)
	}
	g.line("")
	g.line("section .bss")
	for _, t := range collectTemps(quads) {
		g.line("    %s resq 1", t)
	}
	g.line("")
	g.line("section .text")
	g.line("    global _start")
	g.line("")
	g.line("_start:")
	g.line("    push rbp")
	g.line("    mov rbp, rsp")
	g.line("")
}

func (g *generator) footer() {
	g.line("")
	g.line("    mov rsp, rbp")
	g.line("    pop rbp")
	g.line("    mov rax, 60")
	g.line("    xor rdi, rdi")
	g.line("    syscall")
}

// collectTemps lists the distinct temporaries in first-use order.
func collectTemps(quads []ir.Quad) []string {
	seen := map[string]struct{}{}
	var out []string
	note := func(o ir.Operand) {
		if o.Kind != ir.OperandTemp {
			return
		}
		if _, ok := seen[o.Text]; ok {
			return
		}
		seen[o.Text] = struct{}{}
		out = append(out, o.Text)
	}
	for _, q := range quads {
		note(q.Arg1)
		note(q.Arg2)
		note(q.Result)
	}
	return out
}

func (g *generator) quad(q ir.Quad) {
	if q.Op == ir.OpLabel {
		g.line("%s:", q.Result.Text)
		return
	}
	g.line("    ; %s", q)

	switch {
	case q.Op == ir.OpAssign:
		g.assign(q)
	case q.Op.IsArith():
		g.arith(q)
	case q.Op == ir.OpJump:
		g.line("    jmp %s", q.Result.Text)
	case q.Op.IsCondJump():
		g.condJump(q)
	}
}

func (g *generator) assign(q ir.Quad) {
	if q.Arg1.Kind == ir.OperandLit {
		g.line("    mov qword [%s], %s", q.Result.Text, q.Arg1.Text)
		return
	}
	g.line("    mov rax, qword [%s]", q.Arg1.Text)
	g.line("    mov qword [%s], rax", q.Result.Text)
}

func (g *generator) arith(q ir.Quad) {
	g.load("rax", q.Arg1)

	switch q.Op {
	case ir.OpShl, ir.OpShr:
		// the optimizer only produces literal shift amounts
		mn := "shl"
		if q.Op == ir.OpShr {
			mn = "sar"
		}
		if q.Arg2.Kind == ir.OperandLit {
			g.line("    %s rax, %s", mn, q.Arg2.Text)
		} else {
			g.load("rcx", q.Arg2)
			g.line("    %s rax, cl", mn)
		}
	case ir.OpDiv:
		g.load("rbx", q.Arg2)
		g.line("    cqo")
		g.line("    idiv rbx")
	default:
		g.load("rbx", q.Arg2)
		switch q.Op {
		case ir.OpAdd:
			g.line("    add rax, rbx")
		case ir.OpSub:
			g.line("    sub rax, rbx")
		case ir.OpMul:
			g.line("    imul rax, rbx")
		}
	}
	g.line("    mov qword [%s], rax", q.Result.Text)
}

var jumpMnemonics = map[ir.Op]string{
	ir.OpJumpGt: "jg",
	ir.OpJumpLt: "jl",
	ir.OpJumpGe: "jge",
	ir.OpJumpLe: "jle",
	ir.OpJumpEq: "je",
	ir.OpJumpNe: "jne",
}

func (g *generator) condJump(q ir.Quad) {
	g.load("rax", q.Arg1)
	g.load("rbx", q.Arg2)
	g.line("    cmp rax, rbx")
	g.line("    %s %s", jumpMnemonics[q.Op], q.Result.Text)
}

func (g *generator) load(reg string, o ir.Operand) {
	if o.Kind == ir.OperandLit {
		g.line("    mov %s, %s", reg, o.Text)
		return
	}
	g.line("    mov %s, qword [%s]", reg, o.Text)
}
