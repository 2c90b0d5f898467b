// Package symbols implements the program's single flat scope: a mapping from
// identifier to declaration order index. The language has no nesting, so one
// table covers the whole compilation.
package symbols

import (
	"minic/internal/source"
)

// Symbol is one declared (or placeholder) name.
type Symbol struct {
	Name  string
	Index int // declaration order, starting at 0
	Span  source.Span
	// Placeholder marks a binding auto-inserted for an undeclared name so
	// analysis can continue without cascading errors.
	Placeholder bool
}

// Table preserves declaration order and enforces name uniqueness.
type Table struct {
	byName map[string]int // name -> position in list
	list   []Symbol
}

func NewTable() *Table {
	return &Table{
		byName: make(map[string]int),
	}
}

// Declare inserts name with the next order index. If the name already exists
// the first binding wins and ok is false.
func (t *Table) Declare(name string, sp source.Span) (Symbol, bool) {
	if i, exists := t.byName[name]; exists {
		return t.list[i], false
	}
	sym := Symbol{Name: name, Index: len(t.list), Span: sp}
	t.byName[name] = len(t.list)
	t.list = append(t.list, sym)
	return sym, true
}

// DeclarePlaceholder inserts a placeholder binding for an undeclared name.
func (t *Table) DeclarePlaceholder(name string, sp source.Span) Symbol {
	if i, exists := t.byName[name]; exists {
		return t.list[i]
	}
	sym := Symbol{Name: name, Index: len(t.list), Span: sp, Placeholder: true}
	t.byName[name] = len(t.list)
	t.list = append(t.list, sym)
	return sym
}

// Lookup finds a binding by name.
func (t *Table) Lookup(name string) (Symbol, bool) {
	if i, exists := t.byName[name]; exists {
		return t.list[i], true
	}
	return Symbol{}, false
}

// Len counts all bindings, placeholders included.
func (t *Table) Len() int {
	return len(t.list)
}

// Symbols returns all bindings in declaration order.
func (t *Table) Symbols() []Symbol {
	return t.list
}
