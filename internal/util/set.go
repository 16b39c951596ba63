// Package util provides small generic container helpers shared across the
// mcfg packages, adapted from tunaq's internal/util set implementation.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// ISet is a generic set of string elements.
type ISet interface {
	// Add adds the given element to the Set. If the element is already in
	// the set, no effect occurs.
	Add(element string)

	// Has returns whether the given set has the specified element.
	Has(element string) bool

	// Remove removes the given element from the Set, if present.
	Remove(element string)

	// Len returns the number of elements in the set.
	Len() int

	// Elements returns the elements of the set in unspecified order.
	Elements() []string

	// StringOrdered is a string with the contents of the set, alphabetized.
	StringOrdered() string
}

// VSet is a set that maps each of its string elements to a stored value.
type VSet[V any] interface {
	ISet

	// Set assigns the value of the element, adding it if not already
	// present.
	Set(element string, data V)

	// Get retrieves the value of an element, or the zero value of V if the
	// element is not present.
	Get(element string) V
}

// SVSet is a VSet backed directly by a Go map.
type SVSet[V any] map[string]V

// NewSVSet returns an empty SVSet, optionally seeded from existing maps.
func NewSVSet[V any](of ...map[string]V) SVSet[V] {
	s := SVSet[V](map[string]V{})
	for _, m := range of {
		for k := range m {
			s.Set(k, m[k])
		}
	}
	return s
}

func (s SVSet[V]) Add(idx string) {
	var zero V
	s[idx] = zero
}

func (s SVSet[V]) Set(idx string, val V) {
	s[idx] = val
}

func (s SVSet[V]) Get(idx string) V {
	return s[idx]
}

func (s SVSet[V]) Has(idx string) bool {
	_, ok := s[idx]
	return ok
}

func (s SVSet[V]) Remove(idx string) {
	delete(s, idx)
}

func (s SVSet[V]) Len() int {
	return len(s)
}

func (s SVSet[V]) Elements() []string {
	elems := make([]string, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	return elems
}

// StringOrdered shows the contents of the set. Items are guaranteed to be
// alphabetized.
func (s SVSet[V]) StringOrdered() string {
	keys := s.Elements()
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteRune('{')
	sb.WriteString(strings.Join(keys, ", "))
	sb.WriteRune('}')
	return sb.String()
}

// StringSet is a map[string]bool with methods added to fulfill ISet.
type StringSet map[string]bool

// NewStringSet returns an empty StringSet, optionally seeded from existing
// maps.
func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

func (s StringSet) Add(value string) {
	s[value] = true
}

func (s StringSet) Has(value string) bool {
	_, ok := s[value]
	return ok
}

func (s StringSet) Remove(value string) {
	delete(s, value)
}

func (s StringSet) Len() int {
	return len(s)
}

func (s StringSet) Elements() []string {
	elems := make([]string, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	return elems
}

func (s StringSet) StringOrdered() string {
	keys := s.Elements()
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteRune('{')
	sb.WriteString(strings.Join(keys, ", "))
	sb.WriteRune('}')
	return sb.String()
}

func (s StringSet) String() string {
	parts := make([]string, 0, len(s))
	for k := range s {
		parts = append(parts, fmt.Sprintf("%v", k))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// OrderedKeys returns the keys of m, sorted, for any map keyed by string.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InSlice returns whether item is present anywhere in sl.
func InSlice[E comparable](item E, sl []E) bool {
	for _, v := range sl {
		if v == item {
			return true
		}
	}
	return false
}
