package mcfg

import (
	"fmt"
	"os"
)

// Mode selects what Grammar.Run (or any ParserStrategy) should compute.
type Mode string

const (
	// ModeRecognize asks only whether the input is in the language.
	ModeRecognize Mode = "recognize"

	// ModeParse additionally enumerates derivation trees.
	ModeParse Mode = "parse"
)

// Result is the outcome of a single parser run.
type Result struct {
	// Accepted is true iff at least one goal item was derived.
	Accepted bool

	// Trees holds every derivation tree rooted at a goal item. It is only
	// populated when the run mode was ModeParse. Ordering is unspecified
	// (spec.md §5) beyond being stable across repeated runs of the same
	// (grammar, input) pair (spec.md §8, Idempotence).
	Trees []*Tree
}

// ParserStrategy is the single operation a parsing engine must provide, so
// that alternative engines (e.g. CKY, for an ordinary CFG) may be
// substituted for the default agenda-based one (spec.md §9).
type ParserStrategy interface {
	Run(g *Grammar, input []string, mode Mode) (Result, error)
}

// AgendaParser is the default ParserStrategy: a single-threaded, agenda-
// driven deductive parser in the style of Shieber, Schabes & Pereira
// (1995). One AgendaParser value is reused across calls to Run only for its
// configuration (MaxSteps, Debug, RunID); the chart and agenda it builds
// are allocated fresh per call and are never shared across parses, so the
// same AgendaParser may safely drive concurrent parses against one
// immutable Grammar (spec.md §5).
type AgendaParser struct {
	// MaxSteps caps the number of apply attempts the inference loop will
	// make before giving up with ErrStepBudgetExceeded. Zero means
	// unlimited.
	MaxSteps int

	// Debug, when true, traces axiom seeding, successful combination, and
	// dedup/backpointer-only events to stderr.
	Debug bool

	// RunID, if non-empty, is included in debug trace lines so that
	// concurrent parses sharing one Grammar can be told apart in
	// interleaved output.
	RunID string
}

// NewAgendaParser returns an AgendaParser with no step budget and debug
// tracing disabled.
func NewAgendaParser() *AgendaParser {
	return &AgendaParser{}
}

// Run implements ParserStrategy.
func (p *AgendaParser) Run(g *Grammar, input []string, mode Mode) (Result, error) {
	chart, err := p.build(g, input)
	if err != nil {
		return Result{}, err
	}

	starts := make(map[string]bool, len(g.Start))
	for _, s := range g.Start {
		starts[s] = true
	}

	var goals []*Item
	for _, nt := range g.Start {
		for _, it := range chart.ByNonTerminal(nt) {
			if it.IsGoal(starts, len(input)) {
				goals = append(goals, it)
			}
		}
	}

	result := Result{Accepted: len(goals) > 0}
	if mode != ModeParse {
		return result, nil
	}

	for _, goal := range goals {
		result.Trees = append(result.Trees, p.reconstruct(chart, goal)...)
	}
	return result, nil
}

// build runs the axiom-seeding and inference steps to saturation, returning
// the resulting chart.
func (p *AgendaParser) build(g *Grammar, input []string) (*Chart, error) {
	chart := NewChart()
	agenda := NewAgenda()
	steps := 0

	// Axioms: seed one item per (position, matching terminal rule).
	for i, tok := range input {
		for _, r := range g.RulesForTerminal(tok) {
			it := &Item{NonTerminal: r.Head.NonTerminal, Spans: []Span{{Start: i, End: i + 1}}}
			isNew := chart.Insert(it)
			chart.AddDerivation(it, Derivation{Rule: r})
			if isNew {
				agenda.Push(it)
				p.trace("axiom  %s <- %q @ %d", it, tok, i)
			}
		}
	}

	for !agenda.Empty() {
		it := agenda.Pop()
		p.trace("pop    %s", it)

		for _, r := range g.RulesUsing(it.NonTerminal) {
			for pos, rhs := range r.Body {
				if rhs.NonTerminal != it.NonTerminal || rhs.Arity != len(it.Spans) {
					continue
				}

				candidates := make([][]*Item, len(r.Body))
				feasible := true
				for q, bv := range r.Body {
					if q == pos {
						candidates[q] = []*Item{it}
						continue
					}
					for _, cand := range chart.ByNonTerminal(bv.NonTerminal) {
						if len(cand.Spans) == bv.Arity {
							candidates[q] = append(candidates[q], cand)
						}
					}
					if len(candidates[q]) == 0 {
						feasible = false
					}
				}
				if !feasible {
					continue
				}

				var budgetErr error
				forEachCombination(candidates, func(children []*Item) bool {
					steps++
					if p.MaxSteps > 0 && steps > p.MaxSteps {
						budgetErr = ErrStepBudgetExceeded
						return false
					}

					derived, err := r.Apply(children)
					if err != nil {
						return true
					}

					isNew := chart.Insert(derived)
					chart.AddDerivation(derived, Derivation{Rule: r, Children: append([]*Item(nil), children...)})
					if isNew {
						agenda.Push(derived)
						p.trace("derive %s via %s", derived, r)
					} else {
						p.trace("dedup  %s via %s (backpointer only)", derived, r)
					}
					return true
				})
				if budgetErr != nil {
					return nil, budgetErr
				}
			}
		}
	}

	return chart, nil
}

// forEachCombination calls f once for every element of the Cartesian
// product of lists, in order, stopping early if f returns false.
func forEachCombination(lists [][]*Item, f func([]*Item) bool) {
	combo := make([]*Item, len(lists))
	var rec func(i int) bool
	rec = func(i int) bool {
		if i == len(lists) {
			return f(append([]*Item(nil), combo...))
		}
		for _, it := range lists[i] {
			combo[i] = it
			if !rec(i + 1) {
				return false
			}
		}
		return true
	}
	rec(0)
}

// reconstruct recursively builds every derivation tree rooted at goal,
// guarding against derivational cycles with a per-path visited set (spec.md
// §4.4.2). A cyclic path is skipped silently; other derivations of the same
// item are still explored.
func (p *AgendaParser) reconstruct(chart *Chart, it *Item) []*Tree {
	return p.reconstructPath(chart, it, map[string]bool{})
}

func (p *AgendaParser) reconstructPath(chart *Chart, it *Item, visited map[string]bool) []*Tree {
	key := it.Key()
	if visited[key] {
		return nil
	}

	onPath := make(map[string]bool, len(visited)+1)
	for k := range visited {
		onPath[k] = true
	}
	onPath[key] = true

	var trees []*Tree
	for _, d := range chart.Derivations(it) {
		if d.Rule.IsTerminal() {
			trees = append(trees, NewLeaf(it.NonTerminal, d.Rule.Terminal))
			continue
		}

		childSets := make([][]*Tree, len(d.Children))
		complete := true
		for i, c := range d.Children {
			sub := p.reconstructPath(chart, c, onPath)
			if len(sub) == 0 {
				complete = false
				break
			}
			childSets[i] = sub
		}
		if !complete {
			continue
		}

		label := d.Rule.String()
		var emit func(i int, acc []*Tree)
		emit = func(i int, acc []*Tree) {
			if i == len(childSets) {
				trees = append(trees, NewNode(label, append([]*Tree(nil), acc...)))
				return
			}
			for _, c := range childSets[i] {
				emit(i+1, append(acc, c))
			}
		}
		emit(0, make([]*Tree, 0, len(childSets)))
	}
	return trees
}

func (p *AgendaParser) trace(format string, args ...any) {
	if !p.Debug {
		return
	}
	if p.RunID != "" {
		fmt.Fprintf(os.Stderr, "[%s] "+format+"\n", append([]any{p.RunID}, args...)...)
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
