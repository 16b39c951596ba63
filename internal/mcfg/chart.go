package mcfg

import (
	"fmt"
	"strings"

	"github.com/dekarrin/mcfg/internal/util"
)

// Derivation records one way a chart item was produced: the rule applied
// and the ordered tuple of child items it was applied to.
type Derivation struct {
	Rule     *Rule
	Children []*Item
}

// key returns a string identifying d's (Rule, Children) value, by rule
// identity and per-child Item.Key(), so that the same combination
// rediscovered via a different RHS position is recognized as the same
// derivation rather than recorded twice.
func (d Derivation) key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%p", d.Rule)
	for _, c := range d.Children {
		sb.WriteByte('#')
		sb.WriteString(c.Key())
	}
	return sb.String()
}

// Chart is the indexed set of items derived so far during a single parse.
// It is parse-local and exclusively owned by the in-flight parse; it is
// never shared across parses (spec.md §5).
type Chart struct {
	items         util.SVSet[*Item]
	byNonTerminal map[string][]*Item
	backpointers  map[string][]Derivation
	seenDerivs    map[string]util.StringSet
}

// NewChart returns an empty chart.
func NewChart() *Chart {
	return &Chart{
		items:         util.NewSVSet[*Item](),
		byNonTerminal: map[string][]*Item{},
		backpointers:  map[string][]Derivation{},
		seenDerivs:    map[string]util.StringSet{},
	}
}

// Has reports whether an item equal to it is already in the chart.
func (c *Chart) Has(it *Item) bool {
	return c.items.Has(it.Key())
}

// Insert adds it to the chart if it is not already present, returning
// whether it was newly inserted. Insertion is idempotent: inserting an item
// already present has no effect on the chart's item set (though the caller
// is still expected to record a backpointer via AddDerivation).
func (c *Chart) Insert(it *Item) bool {
	if c.Has(it) {
		return false
	}
	c.items.Set(it.Key(), it)
	c.byNonTerminal[it.NonTerminal] = append(c.byNonTerminal[it.NonTerminal], it)
	return true
}

// AddDerivation appends a derivation to the (possibly multi-element) set of
// derivations recorded for it, unless an equal derivation (same rule, same
// children by Item.Key()) is already recorded. The same combination of
// children is routinely rediscovered once per matching RHS position once
// both siblings are already in the chart, and without this check each
// rediscovery would add a duplicate backpointer and a duplicate tree at
// reconstruction time.
func (c *Chart) AddDerivation(it *Item, d Derivation) {
	key := it.Key()

	seen, ok := c.seenDerivs[key]
	if !ok {
		seen = util.NewStringSet()
		c.seenDerivs[key] = seen
	}

	dkey := d.key()
	if seen.Has(dkey) {
		return
	}
	seen.Add(dkey)

	c.backpointers[key] = append(c.backpointers[key], d)
}

// Derivations returns every derivation recorded so far for it.
func (c *Chart) Derivations(it *Item) []Derivation {
	return c.backpointers[it.Key()]
}

// ByNonTerminal returns every item in the chart whose nonterminal is nt, in
// insertion order. Used to find combination candidates for a given RHS
// position during the inference step, and during reconstruction's goal
// search.
func (c *Chart) ByNonTerminal(nt string) []*Item {
	return c.byNonTerminal[nt]
}

// Len returns the number of distinct items in the chart.
func (c *Chart) Len() int {
	return c.items.Len()
}
