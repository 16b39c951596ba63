package mcfgtext

import (
	"strings"
	"testing"

	"github.com/dekarrin/mcfg/internal/mcfg"
	"github.com/stretchr/testify/assert"
)

func Test_ParseRule_valid(t *testing.T) {
	assert := assert.New(t)

	r, err := ParseRule("D(the)")
	assert.NoError(err)
	assert.True(r.IsTerminal())
	assert.Equal("the", r.Terminal)

	r, err = ParseRule("S(uv) -> NP(u) VP(v)")
	assert.NoError(err)
	assert.False(r.IsTerminal())
	assert.Equal("S(uv) -> NP(u) VP(v)", r.String())

	r, err = ParseRule("Swhmain(v, uw) -> NP(u) VPwhmain(v, w)")
	assert.NoError(err)
	assert.Equal(2, r.Head.Arity)
	assert.Equal("Swhmain(v, uw) -> NP(u) VPwhmain(v, w)", r.String())
}

func Test_ParseRule_malformed(t *testing.T) {
	testCases := []struct {
		name string
		line string
	}{
		{name: "empty line", line: "   "},
		{name: "empty terminal token", line: "D()"},
		{name: "comma in terminal token", line: "D(a,b)"},
		{name: "not a valid LHS", line: "123(u) -> NP(u)"},
		{name: "empty RHS", line: "S(u) ->"},
		{name: "undeclared LHS variable", line: "S(uv) -> NP(u)"},
		{name: "multi-char variable", line: "S(uv) -> NP(uv)"},
		{name: "duplicate declared variable", line: "S(uv) -> NP(u) VP(u)"},
		{name: "empty LHS component", line: "S(u,) -> NP(u)"},
		{name: "non-linear, reused component", line: "S(uu) -> NP(u)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			_, err := ParseRule(tc.line)
			assert.Error(err)
		})
	}
}

func Test_ParseGrammar_skipsBlankAndCommentLines(t *testing.T) {
	assert := assert.New(t)

	src := "# a tiny grammar\n\nD(the)\nN(dog)\nNP(uv) -> D(u) N(v)\n"
	g, err := ParseGrammar(src, "NP")
	assert.NoError(err)
	assert.Len(g.Rules(), 3)

	ok, err := g.Recognize([]string{"the", "dog"})
	assert.NoError(err)
	assert.True(ok)
}

func Test_ParseGrammar_reportsLineNumber(t *testing.T) {
	assert := assert.New(t)

	src := "D(the)\nN(dog)\nS(uv) -> NP(u)\n"
	_, err := ParseGrammar(src, "S")
	assert.Error(err)
	assert.True(strings.HasPrefix(err.Error(), "line 3:"))
}

// englishFragment is a small relative-clause- and wh-question-capable
// grammar built from the textual notation, used to exercise the engine
// end to end the way spec.md §6 and §8 describe.
const englishFragment = `
D(the)
N(human)
N(greyhound)
N(salmon)
V(saw)
V(believes)
P(with)
C(that)
Aux(did)
Wh(which)
Vtr(see)

NP(uv) -> D(u) N(v)
VP(uv) -> V(u) NP(v)
PP(uv) -> P(u) NP(v)
VP(uv) -> VP(u) PP(v)
NP(uv) -> NP(u) PP(v)
S(uv) -> NP(u) VP(v)

RC(uv) -> C(u) VP(v)
Nrc(u, w) -> NP(u) VP(w)
S(urw) -> Nrc(u, w) RC(r)

WhNP(uv) -> Wh(u) N(v)
VPwhmain(v, w) -> WhNP(v) Vtr(w)
Swhmain(v, uw) -> NP(u) VPwhmain(v, w)
S(vuw) -> Aux(u) Swhmain(v, w)
`

func englishFragmentGrammar(t *testing.T) *mcfg.Grammar {
	t.Helper()
	g, err := ParseGrammar(englishFragment, "S")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return g
}

func Test_englishFragment_endToEnd(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		accept    bool
		minTrees  int
		wantTrees int // 0 means "don't check an exact count"
	}{
		{
			name:      "simple transitive sentence",
			input:     "the human saw the greyhound",
			accept:    true,
			wantTrees: 1,
		},
		{
			name:     "subject relative clause yields a discontiguous constituent",
			input:    "the human that believes the salmon saw the greyhound",
			accept:   true,
			minTrees: 1,
		},
		{
			name:      "wh-question with aux inversion",
			input:     "which human did the greyhound see",
			accept:    true,
			wantTrees: 1,
		},
		{
			name:     "PP-attachment ambiguity",
			input:    "the human saw the greyhound with the salmon",
			accept:   true,
			minTrees: 2,
		},
		{
			name:      "doubled determiner with no verb is rejected",
			input:     "the the greyhound",
			accept:    false,
			wantTrees: 0,
		},
		{
			name:      "bare verb is rejected",
			input:     "saw",
			accept:    false,
			wantTrees: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			g := englishFragmentGrammar(t)
			tokens := strings.Fields(tc.input)

			ok, err := g.Recognize(tokens)
			assert.NoError(err)
			assert.Equal(tc.accept, ok)

			trees, err := g.Parse(tokens)
			assert.NoError(err)
			if tc.wantTrees > 0 {
				assert.Len(trees, tc.wantTrees)
			}
			if tc.minTrees > 0 {
				assert.GreaterOrEqual(len(trees), tc.minTrees)
			}
			if !tc.accept {
				assert.Empty(trees)
			}
			for _, tr := range trees {
				assert.Equal(tokens, tr.Yield())
			}
		})
	}
}

func Test_englishFragment_relativeClause_hasDiscontiguousNrcSpan(t *testing.T) {
	assert := assert.New(t)
	g := englishFragmentGrammar(t)

	tokens := strings.Fields("the human that believes the salmon saw the greyhound")
	trees, err := g.Parse(tokens)
	assert.NoError(err)
	assert.NotEmpty(trees)

	var found bool
	for _, tr := range trees {
		if strings.Contains(tr.String(), "Nrc(u, v) -> NP(u) VP(v)") {
			found = true
		}
	}
	assert.True(found, "expected a derivation using the discontiguous Nrc rule")
}
