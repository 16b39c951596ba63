// Package mcfgtext reads the textual MCFG rule notation of spec.md §6 and
// hands back structured rules for the core engine in internal/mcfg. It is
// deliberately kept outside the core: the grammar source syntax is an
// external collaborator, not part of the parsing engine itself.
//
// Rule notation, one rule per line:
//
//	Nonterminal(comp1, comp2, …) -> Child1(vars…) Child2(vars…) …
//	Nonterminal(terminal_token)
//
// Each compN is a whitespace-free concatenation of single-letter
// variables; each variable is declared exactly once in some RHS child's
// argument list and used exactly once in the LHS pattern. Blank lines and
// lines whose first non-blank character is "#" are ignored.
package mcfgtext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dekarrin/mcfg/internal/mcfg"
)

var nameArgs = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*\(([^)]*)\)$`)

var rhsChild = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*\(([^)]*)\)`)

// ParseRule parses a single rule line in the notation above.
func ParseRule(line string) (*mcfg.Rule, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("mcfgtext: empty rule")
	}

	sides := strings.SplitN(line, "->", 2)
	if len(sides) == 1 {
		return parseTerminalRule(strings.TrimSpace(sides[0]))
	}
	return parseNonTerminalRule(strings.TrimSpace(sides[0]), strings.TrimSpace(sides[1]))
}

func parseTerminalRule(lhs string) (*mcfg.Rule, error) {
	m := nameArgs.FindStringSubmatch(lhs)
	if m == nil {
		return nil, fmt.Errorf("mcfgtext: not a valid terminal rule %q; want NONTERM(token)", lhs)
	}
	nonTerminal, token := m[1], strings.TrimSpace(m[2])
	if token == "" {
		return nil, fmt.Errorf("mcfgtext: %s: empty terminal token not allowed", nonTerminal)
	}
	if strings.ContainsAny(token, ",") {
		return nil, fmt.Errorf("mcfgtext: %s: terminal token %q must not contain a comma", nonTerminal, token)
	}
	return mcfg.NewTerminalRule(nonTerminal, token)
}

func parseNonTerminalRule(lhs, rhs string) (*mcfg.Rule, error) {
	lhsMatch := nameArgs.FindStringSubmatch(lhs)
	if lhsMatch == nil {
		return nil, fmt.Errorf("mcfgtext: not a valid rule LHS %q; want NONTERM(comp, comp, …)", lhs)
	}
	nonTerminal := lhsMatch[1]
	lhsComps := splitArgs(lhsMatch[2])
	if len(lhsComps) == 0 {
		return nil, fmt.Errorf("mcfgtext: %s: rule has no LHS components", nonTerminal)
	}

	childMatches := rhsChild.FindAllStringSubmatch(rhs, -1)
	if len(childMatches) == 0 {
		return nil, fmt.Errorf("mcfgtext: %s: rule has an empty RHS; write it as a terminal rule instead", nonTerminal)
	}

	body := make([]mcfg.RuleVariable, len(childMatches))
	letterRef := map[string]mcfg.CompRef{}
	for ci, cm := range childMatches {
		childName := cm[1]
		vars := splitArgs(cm[2])
		if len(vars) == 0 {
			return nil, fmt.Errorf("mcfgtext: %s: RHS child %s has no arguments", nonTerminal, childName)
		}
		body[ci] = mcfg.RuleVariable{NonTerminal: childName, Arity: len(vars)}

		for vi, letter := range vars {
			if len(letter) != 1 {
				return nil, fmt.Errorf("mcfgtext: %s: RHS child %s: variable %q must be a single letter", nonTerminal, childName, letter)
			}
			ref := mcfg.CompRef{Child: ci, Component: vi}
			if _, dup := letterRef[letter]; dup {
				return nil, fmt.Errorf("mcfgtext: %s: variable %q declared more than once on the RHS", nonTerminal, letter)
			}
			letterRef[letter] = ref
		}
	}

	pattern := make(mcfg.Pattern, len(lhsComps))
	for ci, comp := range lhsComps {
		if comp == "" {
			return nil, fmt.Errorf("mcfgtext: %s: LHS component %d is empty", nonTerminal, ci)
		}
		refs := make(mcfg.Component, 0, len(comp))
		for _, letter := range strings.Split(comp, "") {
			ref, ok := letterRef[letter]
			if !ok {
				return nil, fmt.Errorf("mcfgtext: %s: LHS uses undeclared variable %q", nonTerminal, letter)
			}
			refs = append(refs, ref)
		}
		pattern[ci] = refs
	}

	head := mcfg.RuleVariable{NonTerminal: nonTerminal, Arity: len(pattern)}
	return mcfg.NewRule(head, pattern, body)
}

// splitArgs splits a parenthesized argument list on commas, trimming
// whitespace from each element, and dropping it entirely if empty.
func splitArgs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// ParseGrammar parses a full grammar source, one rule per line, and adds
// each rule to a freshly-built Grammar with the given start nonterminal(s).
// Blank lines and lines beginning with "#" are skipped. The returned error,
// if any, identifies the offending line number (1-based).
func ParseGrammar(src string, start ...string) (*mcfg.Grammar, error) {
	g := mcfg.NewGrammar(start...)

	for i, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		r, err := ParseRule(trimmed)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		g.AddRule(r)
	}

	return g, nil
}
