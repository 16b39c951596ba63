// Package mcfg is the public entry point for building and running Multiple
// Context-Free Grammars: grammars whose nonterminals yield tuples of
// possibly-discontiguous string spans rather than single contiguous spans,
// parsed with an agenda-driven deductive chart parser.
//
// The engine types themselves (Rule, Item, Tree, Grammar, the agenda
// parser, and so on) live in internal/mcfg so that the textual grammar
// reader, the binary grammar cache, and the CLI front end can all build on
// the same core without exposing its construction details as public API
// surface this package isn't ready to commit to yet. This file is the
// thin, stable facade over that core.
package mcfg

import (
	"github.com/dekarrin/mcfg/internal/mcfg"
)

// Re-exported core types. A Grammar built through this package's
// constructors is interchangeable with one built directly against
// internal/mcfg; the alias is a naming convenience, not a separate type.
type (
	Grammar      = mcfg.Grammar
	Rule         = mcfg.Rule
	RuleVariable = mcfg.RuleVariable
	CompRef      = mcfg.CompRef
	Component    = mcfg.Component
	Pattern      = mcfg.Pattern
	Item         = mcfg.Item
	Span         = mcfg.Span
	Tree         = mcfg.Tree
	Mode         = mcfg.Mode
	Result       = mcfg.Result
)

// Re-exported modes.
const (
	ModeRecognize = mcfg.ModeRecognize
	ModeParse     = mcfg.ModeParse
)

// Re-exported sentinel errors.
var (
	ErrInvalidMode        = mcfg.ErrInvalidMode
	ErrStepBudgetExceeded = mcfg.ErrStepBudgetExceeded
)

// NewGrammar returns an empty grammar with the given start nonterminal(s).
func NewGrammar(start ...string) *Grammar {
	return mcfg.NewGrammar(start...)
}

// NewRule validates and builds a non-terminal MCFG rule (spec.md §2).
func NewRule(head RuleVariable, pattern Pattern, body []RuleVariable) (*Rule, error) {
	return mcfg.NewRule(head, pattern, body)
}

// NewTerminalRule builds the rule NonTerminal(token).
func NewTerminalRule(nonTerminal, token string) (*Rule, error) {
	return mcfg.NewTerminalRule(nonTerminal, token)
}

// Parse parses input against g, returning every derivation tree. It is a
// convenience wrapper equivalent to g.Run(input, ModeParse).
func Parse(g *Grammar, input []string) ([]*Tree, error) {
	return g.Parse(input)
}

// Recognize reports whether g accepts input. It is a convenience wrapper
// equivalent to g.Run(input, ModeRecognize).
func Recognize(g *Grammar, input []string) (bool, error) {
	return g.Recognize(input)
}
