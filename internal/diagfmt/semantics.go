package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"minic/internal/ir"
	"minic/internal/source"
	"minic/internal/symbols"
)

// SymbolJSON is one symbol table entry in JSON form.
type SymbolJSON struct {
	Name        string      `json:"name"`
	Index       int         `json:"index"`
	Span        source.Span `json:"span"`
	Placeholder bool        `json:"placeholder,omitempty"`
}

// QuadJSON is one quadruple in JSON form.
type QuadJSON struct {
	Op     string `json:"op"`
	Arg1   string `json:"arg1"`
	Arg2   string `json:"arg2"`
	Result string `json:"result"`
}

// SemanticsOutput carries the analyzer artifacts emitted alongside
// diagnostics: the symbol table and the quadruple listing.
type SemanticsOutput struct {
	Symbols []SymbolJSON `json:"symbols"`
	Quads   []QuadJSON   `json:"quads"`
}

// BuildSemanticsOutput собирает JSON-структуру по таблице символов и квадам.
func BuildSemanticsOutput(table *symbols.Table, quads []ir.Quad) SemanticsOutput {
	out := SemanticsOutput{
		Symbols: make([]SymbolJSON, 0, table.Len()),
		Quads:   make([]QuadJSON, 0, len(quads)),
	}
	for _, sym := range table.Symbols() {
		out.Symbols = append(out.Symbols, SymbolJSON{
			Name:        sym.Name,
			Index:       sym.Index,
			Span:        sym.Span,
			Placeholder: sym.Placeholder,
		})
	}
	for _, q := range quads {
		out.Quads = append(out.Quads, QuadJSON{
			Op:     q.Op.String(),
			Arg1:   q.Arg1.String(),
			Arg2:   q.Arg2.String(),
			Result: q.Result.String(),
		})
	}
	return out
}

// SemanticsJSON сериализует таблицу символов и квады.
func SemanticsJSON(w io.Writer, table *symbols.Table, quads []ir.Quad) error {
	output := BuildSemanticsOutput(table, quads)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// QuadsPretty prints the numbered quadruple listing.
func QuadsPretty(w io.Writer, quads []ir.Quad) {
	for i, q := range quads {
		fmt.Fprintf(w, "%3d: %s\n", i+1, q)
	}
}

// SymbolsPretty prints the symbol table in declaration order.
func SymbolsPretty(w io.Writer, table *symbols.Table) {
	for _, sym := range table.Symbols() {
		fmt.Fprintf(w, "%3d: %s", sym.Index, sym.Name)
		if sym.Placeholder {
			fmt.Fprint(w, " (undeclared)")
		}
		fmt.Fprintln(w)
	}
}
