package runtime

import "github.com/fuzy112/golisp/pkg/ident"

// Symbol is an interned identifier (spec §3.1). Two symbols are equal iff
// they are the same interned object; SymbolTable.Intern guarantees that
// for any case-folded name, at most one Symbol exists per Runtime.
//
// Symbols are immortal for the lifetime of the runtime: they are never
// freed by the object manager (the interner holds a permanent reference
// and symbols cannot form a cycle, since a Symbol holds no references of
// its own), so Symbol does not embed gc.Base.
type Symbol struct {
	// Name is the case-folded (upper-case) spelling, which is also what
	// gets printed: the reader folds "define" to "DEFINE" at intern
	// time (spec §4.3), and the dialect has no way to recover the
	// original spelling afterwards.
	Name string
}

func (*Symbol) Type() string   { return "SYMBOL" }
func (s *Symbol) String() string { return s.Name }

// SymbolTable is the process-level (here: per-Runtime) interner for
// symbols, keyed by case-folded name (spec §4.1 policy).
type SymbolTable struct {
	symbols *ident.Map[*Symbol]
}

// NewSymbolTable creates an empty interner.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: ident.NewMap[*Symbol]()}
}

// Intern returns the canonical Symbol for name, creating and caching one
// on first use. Lookups are case-insensitive; the stored Name is always
// the upper-cased form.
func (t *SymbolTable) Intern(name string) *Symbol {
	key := ident.Normalize(name)
	if sym, ok := t.symbols.Get(key); ok {
		return sym
	}
	sym := &Symbol{Name: key}
	t.symbols.Set(key, sym)
	return sym
}

// Lookup returns the already-interned symbol for name without creating
// one, reporting whether it existed.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	return t.symbols.Get(ident.Normalize(name))
}

// Len reports how many distinct symbols have been interned.
func (t *SymbolTable) Len() int {
	return t.symbols.Len()
}
