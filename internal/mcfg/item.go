package mcfg

import (
	"fmt"
	"strconv"
	"strings"
)

// Span is a half-open interval [Start, End) over input positions.
type Span struct {
	Start int
	End   int
}

// Len returns the number of input positions covered by sp.
func (sp Span) Len() int {
	return sp.End - sp.Start
}

// Overlaps returns whether sp and other share any input position.
func (sp Span) Overlaps(other Span) bool {
	return sp.Start < other.End && other.Start < sp.End
}

func (sp Span) String() string {
	return fmt.Sprintf("[%d,%d)", sp.Start, sp.End)
}

// Item is an instantiated rule whose argument variables have been bound to
// concrete spans of the input: a nonterminal together with the tuple of
// spans it yields. Items are immutable once created and are value-equal by
// (NonTerminal, Spans).
type Item struct {
	NonTerminal string
	Spans       []Span
}

// Key returns a string uniquely identifying the item's (NonTerminal, Spans)
// value, suitable for use as a map key in the Chart.
func (it *Item) Key() string {
	var sb strings.Builder
	sb.WriteString(it.NonTerminal)
	for _, sp := range it.Spans {
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(sp.Start))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(sp.End))
	}
	return sb.String()
}

// Equal returns whether it is equal to another value. Two items are equal
// iff their nonterminals and span tuples are equal.
func (it *Item) Equal(o any) bool {
	other, ok := o.(*Item)
	if !ok {
		return false
	}
	if other == nil {
		return it == nil
	}
	if it == nil {
		return false
	}

	if it.NonTerminal != other.NonTerminal {
		return false
	}
	if len(it.Spans) != len(other.Spans) {
		return false
	}
	for i := range it.Spans {
		if it.Spans[i] != other.Spans[i] {
			return false
		}
	}
	return true
}

// IsGoal returns whether it is a goal item with respect to the given set of
// start nonterminals and input length n: its nonterminal must be a start
// symbol, its arity must be 1, and its sole span must be [0, n).
func (it *Item) IsGoal(starts map[string]bool, n int) bool {
	if !starts[it.NonTerminal] {
		return false
	}
	if len(it.Spans) != 1 {
		return false
	}
	return it.Spans[0] == Span{Start: 0, End: n}
}

func (it *Item) String() string {
	comps := make([]string, len(it.Spans))
	for i, sp := range it.Spans {
		comps[i] = sp.String()
	}
	return fmt.Sprintf("%s(%s)", it.NonTerminal, strings.Join(comps, ", "))
}
