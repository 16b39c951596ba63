package mcfg

import "fmt"

// RuleVariable names a nonterminal together with the string-tuple arity it
// yields. Arity 1 is ordinary CFG-like; arity 2 or higher indicates a
// discontiguous constituent made of that many string components.
type RuleVariable struct {
	NonTerminal string
	Arity       int
}

func (v RuleVariable) String() string {
	return fmt.Sprintf("%s/%d", v.NonTerminal, v.Arity)
}

// Equal returns whether v is equal to another value. It will not be equal if
// the other value cannot be cast to RuleVariable or *RuleVariable.
func (v RuleVariable) Equal(o any) bool {
	other, ok := o.(RuleVariable)
	if !ok {
		otherPtr, ok := o.(*RuleVariable)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	return v.NonTerminal == other.NonTerminal && v.Arity == other.Arity
}

// CompRef is a single reference, within an LHS composition pattern, to one
// component of one of the rule's RHS children. Child indexes the ordered RHS
// list; Component indexes that child's own string-tuple components.
type CompRef struct {
	Child     int
	Component int
}

func (r CompRef) String() string {
	return fmt.Sprintf("%d.%d", r.Child, r.Component)
}

// Component is a single LHS component: an ordered sequence of references
// whose bound spans are concatenated (subject to adjacency) to form that
// component's span.
type Component []CompRef

// Pattern is the full LHS composition pattern of a rule: one Component per
// LHS string-tuple slot.
type Pattern []Component

// refCounts returns how many times each (child, component) pair appears
// across the whole pattern. Used to check linearity and non-deletion.
func (p Pattern) refCounts() map[CompRef]int {
	counts := map[CompRef]int{}
	for _, comp := range p {
		for _, ref := range comp {
			counts[ref]++
		}
	}
	return counts
}
