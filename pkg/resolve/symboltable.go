package resolve

// BindingKind distinguishes what a captured identifier resolves to.
type BindingKind int

const (
	// BindingSet means the identifier resolves to a finite set of strings.
	BindingSet BindingKind = iota
	// BindingMap means the identifier resolves to an object map — only
	// member access (obj.prop) resolves it further, not the identifier
	// alone (§4.2: "the resolver returns the captured set or map-value,
	// not a map itself").
	BindingMap
)

// Binding is what the per-file SymbolTable stores for one identifier.
type Binding struct {
	Kind   BindingKind
	Values Set               // valid when Kind == BindingSet
	Map    map[string]string // valid when Kind == BindingMap
}

// SymbolTable is the per-file table the resolver consults for identifier
// references and member expressions on captured object maps. It must be
// reset at the start of every file walk — bindings never leak across files.
type SymbolTable struct {
	bindings map[string]Binding
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{bindings: make(map[string]Binding)}
}

// Reset clears all captured bindings, for reuse across files.
func (t *SymbolTable) Reset() {
	t.bindings = make(map[string]Binding)
}

// Bind records a captured binding for name, overwriting any prior one
// (shadowing / reassignment both take the latest declarator seen).
func (t *SymbolTable) Bind(name string, b Binding) {
	t.bindings[name] = b
}

// Lookup returns the binding captured for name, if any.
func (t *SymbolTable) Lookup(name string) (Binding, bool) {
	b, ok := t.bindings[name]
	return b, ok
}
