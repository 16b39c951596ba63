package mcfg

import (
	"fmt"
	"strings"
)

// Tree is an immutable labeled derivation tree. Internal nodes carry a
// Label naming the rule that produced them (the rule's LHS nonterminal,
// optionally augmented with its composition pattern for unambiguous
// display) and an ordered list of Children corresponding to the rule's RHS.
// A leaf carries a Token instead of children.
type Tree struct {
	Label    string
	Token    string
	Terminal bool
	Children []*Tree
}

// NewLeaf returns a one-terminal tree for the given nonterminal and token.
func NewLeaf(nonTerminal, token string) *Tree {
	return &Tree{Label: nonTerminal, Token: token, Terminal: true}
}

// NewNode returns an internal tree node labeled by the given rule.
func NewNode(label string, children []*Tree) *Tree {
	return &Tree{Label: label, Children: children}
}

// Yield returns the leaves of t, read left to right in the order the
// children appear in the tree. For a sound tree (see spec.md §8) this
// reproduces the input span the tree's root covers.
func (t *Tree) Yield() []string {
	if t.Terminal {
		return []string{t.Token}
	}
	var out []string
	for _, c := range t.Children {
		out = append(out, c.Yield()...)
	}
	return out
}

// String renders t in the bracketed notation of spec.md §6:
// "(Label child1 child2 …)" with bare leaf tokens.
func (t *Tree) String() string {
	if t.Terminal {
		return t.Token
	}

	parts := make([]string, len(t.Children))
	for i, c := range t.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("(%s %s)", t.Label, strings.Join(parts, " "))
}

// Equal returns whether t is structurally equal to another value.
func (t *Tree) Equal(o any) bool {
	other, ok := o.(*Tree)
	if !ok {
		return false
	}
	if other == nil {
		return t == nil
	}
	if t == nil {
		return false
	}

	if t.Terminal != other.Terminal || t.Label != other.Label || t.Token != other.Token {
		return false
	}
	if len(t.Children) != len(other.Children) {
		return false
	}
	for i := range t.Children {
		if !t.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
