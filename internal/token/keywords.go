package token

var keywords = map[string]Kind{
	"main":  KwMain,
	"int":   KwInt,
	"if":    KwIf,
	"else":  KwElse,
	"while": KwWhile,
	"for":   KwFor,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive; only the lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keywords returns the reserved words in declaration order. The repairer
// matches misspelled identifiers against this set.
func Keywords() []string {
	return []string{"main", "int", "if", "else", "while", "for"}
}
