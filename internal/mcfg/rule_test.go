package mcfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewRule_validation(t *testing.T) {
	testCases := []struct {
		name      string
		head      RuleVariable
		pattern   Pattern
		body      []RuleVariable
		expectErr bool
	}{
		{
			name:    "accept S(u) -> NP(u)",
			head:    RuleVariable{NonTerminal: "S", Arity: 1},
			pattern: Pattern{{{Child: 0, Component: 0}}},
			body:    []RuleVariable{{NonTerminal: "NP", Arity: 1}},
		},
		{
			name:    "accept S(uv) -> NP(u) VP(v)",
			head:    RuleVariable{NonTerminal: "S", Arity: 1},
			pattern: Pattern{{{Child: 0, Component: 0}, {Child: 1, Component: 0}}},
			body: []RuleVariable{
				{NonTerminal: "NP", Arity: 1},
				{NonTerminal: "VP", Arity: 1},
			},
		},
		{
			name:      "reject non-linear S(uu) -> NP(u)",
			head:      RuleVariable{NonTerminal: "S", Arity: 1},
			pattern:   Pattern{{{Child: 0, Component: 0}, {Child: 0, Component: 0}}},
			body:      []RuleVariable{{NonTerminal: "NP", Arity: 1}},
			expectErr: true,
		},
		{
			name:      "reject deleting S(u) -> NP(u,v)",
			head:      RuleVariable{NonTerminal: "S", Arity: 1},
			pattern:   Pattern{{{Child: 0, Component: 0}}},
			body:      []RuleVariable{{NonTerminal: "NP", Arity: 2}},
			expectErr: true,
		},
		{
			name:      "reject arity mismatch",
			head:      RuleVariable{NonTerminal: "S", Arity: 2},
			pattern:   Pattern{{{Child: 0, Component: 0}}},
			body:      []RuleVariable{{NonTerminal: "NP", Arity: 1}},
			expectErr: true,
		},
		{
			name:      "reject undeclared child reference",
			head:      RuleVariable{NonTerminal: "S", Arity: 1},
			pattern:   Pattern{{{Child: 1, Component: 0}}},
			body:      []RuleVariable{{NonTerminal: "NP", Arity: 1}},
			expectErr: true,
		},
		{
			name:      "reject empty nonterminal",
			head:      RuleVariable{NonTerminal: "", Arity: 1},
			pattern:   Pattern{{{Child: 0, Component: 0}}},
			body:      []RuleVariable{{NonTerminal: "NP", Arity: 1}},
			expectErr: true,
		},
		{
			name:      "reject empty LHS component",
			head:      RuleVariable{NonTerminal: "S", Arity: 1},
			pattern:   Pattern{{}},
			body:      []RuleVariable{{NonTerminal: "NP", Arity: 1}},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			r, err := NewRule(tc.head, tc.pattern, tc.body)
			if tc.expectErr {
				assert.Error(err)
				assert.Nil(r)
			} else {
				assert.NoError(err)
				if assert.NotNil(r) {
					assert.Equal(tc.head, r.Head)
				}
			}
		})
	}
}

func Test_NewTerminalRule(t *testing.T) {
	assert := assert.New(t)

	r, err := NewTerminalRule("D", "the")
	assert.NoError(err)
	assert.True(r.IsTerminal())
	assert.Equal("the", r.Terminal)
	assert.Equal(1, r.Head.Arity)

	_, err = NewTerminalRule("D", "")
	assert.Error(err)

	_, err = NewTerminalRule("", "the")
	assert.Error(err)
}

func Test_Rule_Apply(t *testing.T) {
	npVp, err := NewRule(
		RuleVariable{NonTerminal: "S", Arity: 1},
		Pattern{{{Child: 0, Component: 0}, {Child: 1, Component: 0}}},
		[]RuleVariable{
			{NonTerminal: "NP", Arity: 1},
			{NonTerminal: "VP", Arity: 1},
		},
	)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	discontig, err := NewRule(
		RuleVariable{NonTerminal: "Swhmain", Arity: 2},
		Pattern{
			{{Child: 0, Component: 0}},
			{{Child: 1, Component: 0}},
		},
		[]RuleVariable{
			{NonTerminal: "NP", Arity: 1},
			{NonTerminal: "VPrest", Arity: 1},
		},
	)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	testCases := []struct {
		name      string
		rule      *Rule
		children  []*Item
		expect    *Item
		expectErr bool
	}{
		{
			name: "adjacent spans combine",
			rule: npVp,
			children: []*Item{
				{NonTerminal: "NP", Spans: []Span{{Start: 0, End: 2}}},
				{NonTerminal: "VP", Spans: []Span{{Start: 2, End: 5}}},
			},
			expect: &Item{NonTerminal: "S", Spans: []Span{{Start: 0, End: 5}}},
		},
		{
			name: "non-adjacent spans fail",
			rule: npVp,
			children: []*Item{
				{NonTerminal: "NP", Spans: []Span{{Start: 0, End: 2}}},
				{NonTerminal: "VP", Spans: []Span{{Start: 3, End: 5}}},
			},
			expectErr: true,
		},
		{
			name: "overlapping spans fail",
			rule: npVp,
			children: []*Item{
				{NonTerminal: "NP", Spans: []Span{{Start: 0, End: 3}}},
				{NonTerminal: "VP", Spans: []Span{{Start: 2, End: 5}}},
			},
			expectErr: true,
		},
		{
			name: "wrong child nonterminal fails",
			rule: npVp,
			children: []*Item{
				{NonTerminal: "PP", Spans: []Span{{Start: 0, End: 2}}},
				{NonTerminal: "VP", Spans: []Span{{Start: 2, End: 5}}},
			},
			expectErr: true,
		},
		{
			name: "wrong arity count fails",
			rule: npVp,
			children: []*Item{
				{NonTerminal: "NP", Spans: []Span{{Start: 0, End: 2}}},
			},
			expectErr: true,
		},
		{
			name: "discontiguous components need not be adjacent to each other",
			rule: discontig,
			children: []*Item{
				{NonTerminal: "NP", Spans: []Span{{Start: 0, End: 1}}},
				{NonTerminal: "VPrest", Spans: []Span{{Start: 5, End: 7}}},
			},
			expect: &Item{NonTerminal: "Swhmain", Spans: []Span{{Start: 0, End: 1}, {Start: 5, End: 7}}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			got, err := tc.rule.Apply(tc.children)
			if tc.expectErr {
				assert.Error(err)
				assert.Nil(got)
				return
			}
			assert.NoError(err)
			if assert.NotNil(got) {
				assert.True(tc.expect.Equal(got), "got %s, want %s", got, tc.expect)
			}
		})
	}
}

func Test_Rule_String(t *testing.T) {
	assert := assert.New(t)

	term, err := NewTerminalRule("D", "the")
	assert.NoError(err)
	assert.Equal("D(the)", term.String())

	s, err := NewRule(
		RuleVariable{NonTerminal: "S", Arity: 1},
		Pattern{{{Child: 0, Component: 0}, {Child: 1, Component: 0}}},
		[]RuleVariable{
			{NonTerminal: "NP", Arity: 1},
			{NonTerminal: "VP", Arity: 1},
		},
	)
	assert.NoError(err)
	assert.Equal("S(uv) -> NP(u) VP(v)", s.String())

	wh, err := NewRule(
		RuleVariable{NonTerminal: "Swhmain", Arity: 2},
		Pattern{
			{{Child: 1, Component: 0}},
			{{Child: 0, Component: 0}, {Child: 1, Component: 1}},
		},
		[]RuleVariable{
			{NonTerminal: "NP", Arity: 1},
			{NonTerminal: "VPwhmain", Arity: 2},
		},
	)
	assert.NoError(err)
	assert.Equal("Swhmain(v, uw) -> NP(u) VPwhmain(v, w)", wh.String())
}

func Test_Rule_Equal(t *testing.T) {
	assert := assert.New(t)

	a, _ := NewTerminalRule("D", "the")
	b, _ := NewTerminalRule("D", "the")
	c, _ := NewTerminalRule("D", "a")

	assert.True(a.Equal(b))
	assert.False(a.Equal(c))
	assert.False(a.Equal(nil))
}
