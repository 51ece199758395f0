package checker

import (
	"github.com/classref/classref/pkg/symbols"
)

// suggest returns the declared name closest to the undeclared identifier,
// when the table can enumerate its names and a match falls within the
// configured edit distance.
func (c *Checker) suggest(id symbols.SymbolIdentifier, table symbols.Table) (string, bool) {
	if c.SuggestMaxDistance <= 0 {
		return "", false
	}

	lister, ok := table.(symbols.NameLister)
	if !ok {
		return "", false
	}

	want := id.FQN()
	best := ""
	bestDistance := c.SuggestMaxDistance + 1

	for _, name := range lister.DeclaredNames() {
		distance := c.lcontext.Distance(want, name)
		if distance < bestDistance {
			best = name
			bestDistance = distance
		}
	}

	if best == "" {
		return "", false
	}

	return best, true
}
