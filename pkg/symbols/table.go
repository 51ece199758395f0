package symbols

import (
	"sort"
	"sync"
)

// Table is the host-maintained registry of declared classes. The checker only
// queries existence and records usage; it never mutates the set of declared
// symbols.
type Table interface {
	// Exists reports whether the identifier names a declared class.
	Exists(id SymbolIdentifier) bool
	// RecordReference marks the identifier as referenced from the given file.
	// Called only for identifiers Exists returned true for.
	RecordReference(id SymbolIdentifier, file string)
}

// NameLister is implemented by tables that can enumerate declared names.
// Resolvers use it to offer closest-match suggestions; tables without it
// simply get no suggestions.
type NameLister interface {
	DeclaredNames() []string
}

// InMemoryTable is a Table backed by a map, for the CLI and tests.
type InMemoryTable struct {
	mu      sync.RWMutex
	classes map[string]SymbolIdentifier
	refs    map[string][]string
}

// NewInMemoryTable creates a table containing the given declared classes.
func NewInMemoryTable(declared ...SymbolIdentifier) *InMemoryTable {
	t := &InMemoryTable{
		classes: make(map[string]SymbolIdentifier, len(declared)),
		refs:    make(map[string][]string),
	}

	for _, id := range declared {
		t.classes[id.FQN()] = id
	}

	return t
}

// Exists reports whether the identifier names a declared class.
func (t *InMemoryTable) Exists(id SymbolIdentifier) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.classes[id.FQN()]

	return ok
}

// RecordReference marks the identifier as referenced from the given file.
func (t *InMemoryTable) RecordReference(id SymbolIdentifier, file string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := id.FQN()
	t.refs[key] = append(t.refs[key], file)
}

// References returns the files that referenced the identifier, in recording order.
func (t *InMemoryTable) References(id SymbolIdentifier) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	refs := t.refs[id.FQN()]
	out := make([]string, len(refs))
	copy(out, refs)

	return out
}

// DeclaredNames returns the declared fully qualified names, sorted.
func (t *InMemoryTable) DeclaredNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.classes))
	for name := range t.classes {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Len returns the number of declared classes.
func (t *InMemoryTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.classes)
}
