package mcfg

import (
	"fmt"
	"strings"
)

// Rule is a single MCFG production: a head nonterminal with its composition
// pattern, and an ordered list of RHS children. A Rule with an empty Body is
// a terminal rule; its Head always has arity 1 and its Terminal field gives
// the single token it yields.
//
// Rules are value types once constructed: two rules are equal iff their
// Head, Pattern, Body, and Terminal match positionally. They are never mutated after
// NewRule/NewTerminalRule returns successfully.
type Rule struct {
	Head     RuleVariable
	Pattern  Pattern
	Body     []RuleVariable
	Terminal string
}

// IsTerminal reports whether r has an empty RHS.
func (r *Rule) IsTerminal() bool {
	return len(r.Body) == 0
}

// NewTerminalRule builds the rule NonTerminal(token), with no RHS.
func NewTerminalRule(nonTerminal, token string) (*Rule, error) {
	if nonTerminal == "" {
		return nil, fmt.Errorf("NewTerminalRule: empty nonterminal name not allowed")
	}
	if token == "" {
		return nil, fmt.Errorf("NewTerminalRule: empty terminal token not allowed")
	}

	return &Rule{
		Head:     RuleVariable{NonTerminal: nonTerminal, Arity: 1},
		Terminal: token,
	}, nil
}

// NewRule builds and validates a non-terminal rule from its structured form:
// the head nonterminal, its LHS composition pattern, and the ordered RHS
// children. It rejects the rule (and returns a non-nil error) when:
//
//   - the pattern's component count does not match head.Arity,
//   - any RHS child component index is not referenced by the pattern exactly
//     once (linearity / non-deletion), or
//   - a pattern reference names a child index out of range of body, or a
//     component index out of range of that child's arity.
func NewRule(head RuleVariable, pattern Pattern, body []RuleVariable) (*Rule, error) {
	if head.NonTerminal == "" {
		return nil, fmt.Errorf("NewRule: empty nonterminal name not allowed")
	}
	if len(pattern) != head.Arity {
		return nil, fmt.Errorf("NewRule: %s has arity %d but pattern has %d component(s)", head.NonTerminal, head.Arity, len(pattern))
	}

	for ci, comp := range pattern {
		if len(comp) == 0 {
			return nil, fmt.Errorf("NewRule: %s: LHS component %d is empty", head.NonTerminal, ci)
		}
	}

	for _, comp := range pattern {
		for _, ref := range comp {
			if ref.Child < 0 || ref.Child >= len(body) {
				return nil, fmt.Errorf("NewRule: %s: reference to undeclared child %d", head.NonTerminal, ref.Child)
			}
			child := body[ref.Child]
			if ref.Component < 0 || ref.Component >= child.Arity {
				return nil, fmt.Errorf("NewRule: %s: reference to component %d of %s, which has arity %d", head.NonTerminal, ref.Component, child.NonTerminal, child.Arity)
			}
		}
	}

	counts := pattern.refCounts()
	for ci, child := range body {
		for comp := 0; comp < child.Arity; comp++ {
			ref := CompRef{Child: ci, Component: comp}
			switch counts[ref] {
			case 1:
				// exactly as required
			case 0:
				return nil, fmt.Errorf("NewRule: %s: %s's component %d is never used on the LHS (deleting variable)", head.NonTerminal, child.NonTerminal, comp)
			default:
				return nil, fmt.Errorf("NewRule: %s: %s's component %d is used %d times on the LHS (non-linear)", head.NonTerminal, child.NonTerminal, comp, counts[ref])
			}
		}
	}

	return &Rule{Head: head, Pattern: pattern, Body: body}, nil
}

// Apply combines the given ordered children — which must match r.Body in
// nonterminal and arity, position for position — into a single derived Item
// bound to r.Head. It fails (returning a nil Item and a non-nil error) when
// adjacency or non-overlap is violated; failure here is an ordinary,
// expected outcome during parsing, not a bug, and callers should simply
// discard the candidate.
func (r *Rule) Apply(children []*Item) (*Item, error) {
	if r.IsTerminal() {
		return nil, fmt.Errorf("Apply: terminal rule %s has no children to combine", r.Head.NonTerminal)
	}
	if len(children) != len(r.Body) {
		return nil, fmt.Errorf("Apply: %s expects %d children, got %d", r.Head.NonTerminal, len(r.Body), len(children))
	}
	for i, c := range children {
		want := r.Body[i]
		if c.NonTerminal != want.NonTerminal || len(c.Spans) != want.Arity {
			return nil, fmt.Errorf("Apply: %s: child %d must be %s/%d, got %s/%d", r.Head.NonTerminal, i, want.NonTerminal, want.Arity, c.NonTerminal, len(c.Spans))
		}
	}

	spans := make([]Span, len(r.Pattern))
	occupied := make([]Span, 0, len(r.Pattern))

	for ci, comp := range r.Pattern {
		var cur Span
		for ri, ref := range comp {
			s := children[ref.Child].Spans[ref.Component]

			if ri == 0 {
				cur = s
			} else {
				if cur.End != s.Start {
					return nil, fmt.Errorf("Apply: %s: component %d not adjacent (%s then %s)", r.Head.NonTerminal, ci, cur, s)
				}
				cur = Span{Start: cur.Start, End: s.End}
			}

			for _, prior := range occupied {
				if s.Overlaps(prior) {
					return nil, fmt.Errorf("Apply: %s: spans %s and %s overlap", r.Head.NonTerminal, s, prior)
				}
			}
			occupied = append(occupied, s)
		}
		spans[ci] = cur
	}

	return &Item{NonTerminal: r.Head.NonTerminal, Spans: spans}, nil
}

// Equal returns whether r is equal to another value. Two rules are equal iff
// their Head, Pattern, Body, and Terminal all match positionally.
func (r *Rule) Equal(o any) bool {
	other, ok := o.(*Rule)
	if !ok {
		return false
	}
	if other == nil {
		return r == nil
	}
	if r == nil {
		return false
	}

	if !r.Head.Equal(other.Head) {
		return false
	}
	if r.Terminal != other.Terminal {
		return false
	}
	if len(r.Body) != len(other.Body) {
		return false
	}
	for i := range r.Body {
		if !r.Body[i].Equal(other.Body[i]) {
			return false
		}
	}
	if len(r.Pattern) != len(other.Pattern) {
		return false
	}
	for i := range r.Pattern {
		if len(r.Pattern[i]) != len(other.Pattern[i]) {
			return false
		}
		for j := range r.Pattern[i] {
			if r.Pattern[i][j] != other.Pattern[i][j] {
				return false
			}
		}
	}

	return true
}

// String renders the rule in the textual notation from spec.md §6:
// "Nonterminal(comp1, comp2, …) -> Child1(vars…) Child2(vars…) …", or just
// "Nonterminal(terminal_token)" for a terminal rule.
func (r *Rule) String() string {
	if r.IsTerminal() {
		return fmt.Sprintf("%s(%s)", r.Head.NonTerminal, r.Terminal)
	}

	letters := r.varLetters()

	comps := make([]string, len(r.Pattern))
	for i, comp := range r.Pattern {
		var sb strings.Builder
		for _, ref := range comp {
			sb.WriteString(letters[ref])
		}
		comps[i] = sb.String()
	}

	children := make([]string, len(r.Body))
	for ci, child := range r.Body {
		var vars strings.Builder
		for comp := 0; comp < child.Arity; comp++ {
			vars.WriteString(letters[CompRef{Child: ci, Component: comp}])
		}
		children[ci] = fmt.Sprintf("%s(%s)", child.NonTerminal, vars.String())
	}

	return fmt.Sprintf("%s(%s) -> %s", r.Head.NonTerminal, strings.Join(comps, ", "), strings.Join(children, " "))
}

// varLetters assigns a stable single-letter variable name to each
// (child, component) reference, in RHS order (children left to right, each
// child's components in order), starting from 'u', matching the convention
// of spec.md §6's textual notation.
func (r *Rule) varLetters() map[CompRef]string {
	letters := map[CompRef]string{}
	next := 'u'
	for ci, child := range r.Body {
		for comp := 0; comp < child.Arity; comp++ {
			letters[CompRef{Child: ci, Component: comp}] = string(next)
			next++
		}
	}
	return letters
}
