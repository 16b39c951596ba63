package mcfg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildAbGrammar(t *testing.T) *Grammar {
	t.Helper()

	g := NewGrammar("S")

	a, err := NewTerminalRule("A", "a")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	b, err := NewTerminalRule("B", "b")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	s, err := NewRule(
		RuleVariable{NonTerminal: "S", Arity: 1},
		Pattern{{{Child: 0, Component: 0}, {Child: 1, Component: 0}}},
		[]RuleVariable{
			{NonTerminal: "A", Arity: 1},
			{NonTerminal: "B", Arity: 1},
		},
	)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	g.AddRule(a)
	g.AddRule(b)
	g.AddRule(s)
	return g
}

func Test_Grammar_indices(t *testing.T) {
	assert := assert.New(t)
	g := buildAbGrammar(t)

	assert.Len(g.Rules(), 3)
	assert.Len(g.RulesFor("S"), 1)
	assert.Len(g.RulesForTerminal("a"), 1)
	assert.Len(g.RulesUsing("A"), 1)
	assert.Empty(g.RulesUsing("S"))
	assert.True(g.HasTerminal("a"))
	assert.False(g.HasTerminal("c"))
}

func Test_Grammar_Run_invalidMode(t *testing.T) {
	assert := assert.New(t)
	g := buildAbGrammar(t)

	_, err := g.Run([]string{"a", "b"}, Mode("bogus"))
	assert.ErrorIs(err, ErrInvalidMode)
}

func Test_Grammar_Recognize_and_Parse(t *testing.T) {
	assert := assert.New(t)
	g := buildAbGrammar(t)

	ok, err := g.Recognize([]string{"a", "b"})
	assert.NoError(err)
	assert.True(ok)

	ok, err = g.Recognize([]string{"b", "a"})
	assert.NoError(err)
	assert.False(ok)

	trees, err := g.Parse([]string{"a", "b"})
	assert.NoError(err)
	assert.Len(trees, 1)
	assert.Equal([]string{"a", "b"}, trees[0].Yield())
}

func Test_Grammar_Describe(t *testing.T) {
	assert := assert.New(t)
	g := buildAbGrammar(t)

	out := g.Describe()
	assert.Contains(out, "start: S")
	assert.Contains(out, "S")
	assert.Contains(out, "A")
	assert.Contains(out, "B")
}

func Test_Grammar_String_roundTrips_ruleNotation(t *testing.T) {
	assert := assert.New(t)
	g := buildAbGrammar(t)

	out := g.String()
	assert.Contains(out, "A(a)")
	assert.Contains(out, "B(b)")
	assert.Contains(out, "S(uv) -> A(u) B(v)")
}

func Test_ErrStepBudgetExceeded_is_distinct(t *testing.T) {
	assert := assert.New(t)
	assert.False(errors.Is(ErrStepBudgetExceeded, ErrInvalidMode))
}
