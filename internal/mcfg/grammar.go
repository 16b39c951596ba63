package mcfg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/mcfg/internal/util"
	"github.com/dekarrin/rosed"
)

// Grammar is an immutable set of rules together with the bookkeeping needed
// to drive a parse: the terminal alphabet, the designated start
// nonterminal(s), and an optional parsing strategy and its configuration
// (spec.md §3, §9).
//
// A Grammar is built once via NewGrammar and AddRule, then read by any
// number of concurrent Run calls; nothing on Grammar is mutated by Run.
type Grammar struct {
	// Start lists the nonterminal(s) a derivation must bottom out in. A
	// parse accepts when some item (nt, [0,n)) is derived for nt in Start
	// and arity 1 (spec.md §4.3).
	Start []string

	// MaxSteps, if nonzero, is the default step budget passed to the
	// default AgendaParser when Strategy is nil.
	MaxSteps int

	// Debug, if true, is the default trace setting passed to the default
	// AgendaParser when Strategy is nil.
	Debug bool

	// Strategy overrides the parsing engine used by Run. Nil selects the
	// default AgendaParser built from MaxSteps and Debug.
	Strategy ParserStrategy

	rules       []*Rule
	rulesByHead map[string][]*Rule
	rulesByBody map[string][]*Rule
	rulesByTok  map[string][]*Rule
	alphabet    util.StringSet
}

// NewGrammar returns an empty grammar with the given start nonterminal(s).
func NewGrammar(start ...string) *Grammar {
	return &Grammar{
		Start:       append([]string(nil), start...),
		rulesByHead: map[string][]*Rule{},
		rulesByBody: map[string][]*Rule{},
		rulesByTok:  map[string][]*Rule{},
		alphabet:    util.NewStringSet(),
	}
}

// AddRule adds r to the grammar and updates its indices. r is not
// validated here beyond what NewRule/NewTerminalRule already enforced when
// it was constructed; a caller who hand-builds a Rule literal is
// responsible for its own well-formedness.
func (g *Grammar) AddRule(r *Rule) {
	g.rules = append(g.rules, r)
	g.rulesByHead[r.Head.NonTerminal] = append(g.rulesByHead[r.Head.NonTerminal], r)

	if r.IsTerminal() {
		g.alphabet.Add(r.Terminal)
		g.rulesByTok[r.Terminal] = append(g.rulesByTok[r.Terminal], r)
		return
	}

	seen := map[string]bool{}
	for _, bv := range r.Body {
		if seen[bv.NonTerminal] {
			continue
		}
		seen[bv.NonTerminal] = true
		g.rulesByBody[bv.NonTerminal] = append(g.rulesByBody[bv.NonTerminal], r)
	}
}

// Rules returns every rule in the grammar, in the order added.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// RulesFor returns the rules whose head nonterminal is nt.
func (g *Grammar) RulesFor(nt string) []*Rule {
	return g.rulesByHead[nt]
}

// RulesUsing returns the non-terminal rules that reference nt somewhere in
// their body.
func (g *Grammar) RulesUsing(nt string) []*Rule {
	return g.rulesByBody[nt]
}

// RulesForTerminal returns the terminal rules rewriting exactly the token
// tok.
func (g *Grammar) RulesForTerminal(tok string) []*Rule {
	return g.rulesByTok[tok]
}

// Alphabet returns the set of terminal tokens that appear in some terminal
// rule of the grammar.
func (g *Grammar) Alphabet() util.StringSet {
	return g.alphabet
}

// HasTerminal reports whether tok is in the grammar's alphabet.
func (g *Grammar) HasTerminal(tok string) bool {
	return g.alphabet.Has(tok)
}

// Run dispatches to the grammar's ParserStrategy (AgendaParser by default)
// and returns its result. ErrInvalidMode is returned without invoking the
// strategy if mode is neither ModeRecognize nor ModeParse (spec.md §6).
func (g *Grammar) Run(input []string, mode Mode) (Result, error) {
	if mode != ModeRecognize && mode != ModeParse {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	strat := g.Strategy
	if strat == nil {
		strat = &AgendaParser{MaxSteps: g.MaxSteps, Debug: g.Debug}
	}
	return strat.Run(g, input, mode)
}

// Recognize reports whether input is accepted by the grammar.
func (g *Grammar) Recognize(input []string) (bool, error) {
	res, err := g.Run(input, ModeRecognize)
	if err != nil {
		return false, err
	}
	return res.Accepted, nil
}

// Parse returns every derivation tree for input, or nil if input is not
// accepted.
func (g *Grammar) Parse(input []string) ([]*Tree, error) {
	res, err := g.Run(input, ModeParse)
	if err != nil {
		return nil, err
	}
	return res.Trees, nil
}

// String renders the grammar in the textual rule notation of spec.md §6,
// one rule per line, in the order rules were added.
func (g *Grammar) String() string {
	var sb strings.Builder
	for i, r := range g.rules {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(r.String())
	}
	return sb.String()
}

// Describe renders a tabular summary of the grammar's nonterminals: arity
// and number of rules with that nonterminal as head, one row per
// nonterminal in alphabetical order, preceded by the start symbols and the
// alphabet (its tokens in alphabetical order).
func (g *Grammar) Describe() string {
	data := [][]string{{"Nonterminal", "Arity", "Rules"}}
	for _, nt := range util.OrderedKeys(g.rulesByHead) {
		rules := g.rulesByHead[nt]
		arity := -1
		if len(rules) > 0 {
			arity = rules[0].Head.Arity
		}
		data = append(data, []string{nt, strconv.Itoa(arity), strconv.Itoa(len(rules))})
	}

	table := rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableBorders: true,
		}).
		String()

	return fmt.Sprintf("start: %s\nalphabet: %s\n%s", strings.Join(g.Start, ", "), g.alphabet.StringOrdered(), table)
}
