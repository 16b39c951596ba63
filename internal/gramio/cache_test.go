package gramio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/mcfg/internal/mcfg"
	"github.com/stretchr/testify/assert"
)

func buildSampleGrammar(t *testing.T) *mcfg.Grammar {
	t.Helper()

	g := mcfg.NewGrammar("NP")

	d, err := mcfg.NewTerminalRule("D", "the")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	n, err := mcfg.NewTerminalRule("N", "dog")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	np, err := mcfg.NewRule(
		mcfg.RuleVariable{NonTerminal: "NP", Arity: 1},
		mcfg.Pattern{{{Child: 0, Component: 0}, {Child: 1, Component: 0}}},
		[]mcfg.RuleVariable{{NonTerminal: "D", Arity: 1}, {NonTerminal: "N", Arity: 1}},
	)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	g.AddRule(d)
	g.AddRule(n)
	g.AddRule(np)
	return g
}

func Test_Save_Load_roundTrip(t *testing.T) {
	assert := assert.New(t)

	g := buildSampleGrammar(t)
	path := filepath.Join(t.TempDir(), "grammar.cache")

	assert.NoError(Save(path, g))

	loaded, err := Load(path)
	assert.NoError(err)
	assert.Equal(g.Start, loaded.Start)
	assert.Len(loaded.Rules(), len(g.Rules()))

	for i, r := range g.Rules() {
		assert.True(r.Equal(loaded.Rules()[i]), "rule %d should round-trip unchanged", i)
	}

	ok, err := loaded.Recognize([]string{"the", "dog"})
	assert.NoError(err)
	assert.True(ok)
}

func Test_Load_rejectsTruncatedFile(t *testing.T) {
	assert := assert.New(t)

	g := buildSampleGrammar(t)
	path := filepath.Join(t.TempDir(), "grammar.cache")
	assert.NoError(Save(path, g))

	raw, err := os.ReadFile(path)
	assert.NoError(err)
	assert.NoError(os.WriteFile(path, raw[:len(raw)-1], 0o644))

	_, err = Load(path)
	assert.Error(err)
}
