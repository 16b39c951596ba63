// Package gramio persists a validated grammar to a compact binary cache
// file, so that a CLI or long-running service can skip re-parsing and
// re-validating the textual rule source on every startup. The wire format
// is hand-rolled (varint ints, rune-count-prefixed strings, and
// length-prefixed rule records) in the
// same style internal/tunascript used for its AST cache, wrapped at the
// file boundary by rezi's binary marshal/unmarshal entry points.
package gramio

import (
	"encoding/binary"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/dekarrin/mcfg/internal/mcfg"
	"github.com/dekarrin/rezi"
)

// cacheVersion guards against loading a cache file written by an
// incompatible format revision.
const cacheVersion = 1

func encInt(i int) []byte {
	enc := make([]byte, 0, 8)
	enc = binary.AppendVarint(enc, int64(i))
	return enc
}

func decInt(data []byte) (int, int, error) {
	val, read := binary.Varint(data)
	if read <= 0 {
		return 0, 0, fmt.Errorf("gramio: malformed varint")
	}
	return int(val), read, nil
}

func encString(s string) []byte {
	var enc []byte
	count := 0
	for _, ch := range s {
		buf := make([]byte, utf8.UTFMax)
		n := utf8.EncodeRune(buf, ch)
		enc = append(enc, buf[:n]...)
		count++
	}
	return append(encInt(count), enc...)
}

func decString(data []byte) (string, int, error) {
	runeCount, n, err := decInt(data)
	if err != nil {
		return "", 0, fmt.Errorf("gramio: string rune count: %w", err)
	}
	data = data[n:]
	read := n

	buf := make([]rune, 0, runeCount)
	for i := 0; i < runeCount; i++ {
		ch, n := utf8.DecodeRune(data)
		if ch == utf8.RuneError && n <= 1 {
			return "", 0, fmt.Errorf("gramio: invalid UTF-8 in cached string")
		}
		buf = append(buf, ch)
		data = data[n:]
		read += n
	}
	return string(buf), read, nil
}

func encCompRef(r mcfg.CompRef) []byte {
	return append(encInt(r.Child), encInt(r.Component)...)
}

func decCompRef(data []byte) (mcfg.CompRef, int, error) {
	child, n1, err := decInt(data)
	if err != nil {
		return mcfg.CompRef{}, 0, err
	}
	comp, n2, err := decInt(data[n1:])
	if err != nil {
		return mcfg.CompRef{}, 0, err
	}
	return mcfg.CompRef{Child: child, Component: comp}, n1 + n2, nil
}

func encRuleVar(v mcfg.RuleVariable) []byte {
	return append(encString(v.NonTerminal), encInt(v.Arity)...)
}

func decRuleVar(data []byte) (mcfg.RuleVariable, int, error) {
	name, n1, err := decString(data)
	if err != nil {
		return mcfg.RuleVariable{}, 0, err
	}
	arity, n2, err := decInt(data[n1:])
	if err != nil {
		return mcfg.RuleVariable{}, 0, err
	}
	return mcfg.RuleVariable{NonTerminal: name, Arity: arity}, n1 + n2, nil
}

func encRule(r *mcfg.Rule) []byte {
	var data []byte
	if r.IsTerminal() {
		data = append(data, 1)
		data = append(data, encString(r.Head.NonTerminal)...)
		data = append(data, encString(r.Terminal)...)
		return data
	}

	data = append(data, 0)
	data = append(data, encRuleVar(r.Head)...)

	data = append(data, encInt(len(r.Pattern))...)
	for _, comp := range r.Pattern {
		data = append(data, encInt(len(comp))...)
		for _, ref := range comp {
			data = append(data, encCompRef(ref)...)
		}
	}

	data = append(data, encInt(len(r.Body))...)
	for _, bv := range r.Body {
		data = append(data, encRuleVar(bv)...)
	}

	return data
}

func decRule(data []byte) (*mcfg.Rule, int, error) {
	if len(data) < 1 {
		return nil, 0, fmt.Errorf("gramio: truncated rule record")
	}
	isTerminal := data[0] == 1
	read := 1
	data = data[1:]

	if isTerminal {
		nonTerminal, n1, err := decString(data)
		if err != nil {
			return nil, 0, err
		}
		data = data[n1:]
		token, n2, err := decString(data)
		if err != nil {
			return nil, 0, err
		}
		r, err := mcfg.NewTerminalRule(nonTerminal, token)
		if err != nil {
			return nil, 0, err
		}
		return r, read + n1 + n2, nil
	}

	head, n, err := decRuleVar(data)
	if err != nil {
		return nil, 0, err
	}
	data = data[n:]
	read += n

	compCount, n, err := decInt(data)
	if err != nil {
		return nil, 0, err
	}
	data = data[n:]
	read += n

	pattern := make(mcfg.Pattern, compCount)
	for ci := 0; ci < compCount; ci++ {
		refCount, n, err := decInt(data)
		if err != nil {
			return nil, 0, err
		}
		data = data[n:]
		read += n

		comp := make(mcfg.Component, refCount)
		for ri := 0; ri < refCount; ri++ {
			ref, n, err := decCompRef(data)
			if err != nil {
				return nil, 0, err
			}
			data = data[n:]
			read += n
			comp[ri] = ref
		}
		pattern[ci] = comp
	}

	bodyCount, n, err := decInt(data)
	if err != nil {
		return nil, 0, err
	}
	data = data[n:]
	read += n

	body := make([]mcfg.RuleVariable, bodyCount)
	for bi := 0; bi < bodyCount; bi++ {
		bv, n, err := decRuleVar(data)
		if err != nil {
			return nil, 0, err
		}
		data = data[n:]
		read += n
		body[bi] = bv
	}

	r, err := mcfg.NewRule(head, pattern, body)
	if err != nil {
		return nil, 0, err
	}
	return r, read, nil
}

// wireGrammar is the on-disk envelope for a cached Grammar: just enough to
// reconstruct one with NewGrammar + AddRule, not Grammar itself, so that
// the core engine type carries no serialization concerns of its own.
type wireGrammar struct {
	start []string
	rules []*mcfg.Rule
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (w wireGrammar) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, encInt(cacheVersion)...)

	data = append(data, encInt(len(w.start))...)
	for _, s := range w.start {
		data = append(data, encString(s)...)
	}

	data = append(data, encInt(len(w.rules))...)
	for _, r := range w.rules {
		enc := encRule(r)
		data = append(data, encInt(len(enc))...)
		data = append(data, enc...)
	}

	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (w *wireGrammar) UnmarshalBinary(data []byte) error {
	version, n, err := decInt(data)
	if err != nil {
		return fmt.Errorf("gramio: reading cache version: %w", err)
	}
	data = data[n:]
	if version != cacheVersion {
		return fmt.Errorf("gramio: cache format version %d is not supported (want %d)", version, cacheVersion)
	}

	startCount, n, err := decInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	w.start = make([]string, startCount)
	for i := 0; i < startCount; i++ {
		s, n, err := decString(data)
		if err != nil {
			return err
		}
		data = data[n:]
		w.start[i] = s
	}

	ruleCount, n, err := decInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	w.rules = make([]*mcfg.Rule, ruleCount)
	for i := 0; i < ruleCount; i++ {
		recLen, n, err := decInt(data)
		if err != nil {
			return err
		}
		data = data[n:]
		if len(data) < recLen {
			return fmt.Errorf("gramio: truncated rule record %d", i)
		}

		r, _, err := decRule(data[:recLen])
		if err != nil {
			return fmt.Errorf("gramio: rule %d: %w", i, err)
		}
		data = data[recLen:]
		w.rules[i] = r
	}

	return nil
}

// Save writes g to path as a binary cache file.
func Save(path string, g *mcfg.Grammar) error {
	w := wireGrammar{start: g.Start, rules: g.Rules()}
	enc := rezi.EncBinary(w)
	return os.WriteFile(path, enc, 0o644)
}

// Load reads back a grammar cache written by Save.
func Load(path string) (*mcfg.Grammar, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var w wireGrammar
	n, err := rezi.DecBinary(raw, &w)
	if err != nil {
		return nil, fmt.Errorf("gramio: REZI decode: %w", err)
	}
	if n != len(raw) {
		return nil, fmt.Errorf("gramio: decoded byte count mismatch; only consumed %d/%d bytes", n, len(raw))
	}

	g := mcfg.NewGrammar(w.start...)
	for _, r := range w.rules {
		g.AddRule(r)
	}
	return g, nil
}
