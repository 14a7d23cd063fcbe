// Package collections wraps gods/v2 containers with the handful of
// deterministic-iteration helpers automaton, grammar and lexer all need
// (mark sets, symbol sets, composite-state member sets).
package collections

import (
	"sort"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/v2/sets/hashset"
)

// IntSet is a set of ints with deterministic (sorted) iteration, backed by
// gods/v2's hashset.
type IntSet struct {
	set *hashset.Set[int]
}

// NewIntSet builds a set from the given members.
func NewIntSet(vals ...int) *IntSet {
	s := &IntSet{set: hashset.New[int]()}
	s.set.Add(vals...)
	return s
}

func (s *IntSet) Add(vals ...int) {
	s.set.Add(vals...)
}

func (s *IntSet) Remove(vals ...int) {
	s.set.Remove(vals...)
}

func (s *IntSet) Contains(v int) bool {
	return s.set.Contains(v)
}

func (s *IntSet) Len() int {
	return s.set.Size()
}

func (s *IntSet) Empty() bool {
	return s.set.Empty()
}

func (s *IntSet) Clear() {
	s.set.Clear()
}

// Clone returns an independent copy.
func (s *IntSet) Clone() *IntSet {
	c := NewIntSet()
	c.set.Add(s.set.Values()...)
	return c
}

// Union adds every member of other into s.
func (s *IntSet) Union(other *IntSet) {
	if other == nil {
		return
	}
	s.set.Add(other.set.Values()...)
}

// Sorted returns the members in ascending order.
func (s *IntSet) Sorted() []int {
	vals := s.set.Values()
	sort.Ints(vals)
	return vals
}

// Equal reports whether s and other have exactly the same members.
func (s *IntSet) Equal(other *IntSet) bool {
	if other == nil {
		return s.Empty()
	}
	if s.Len() != other.Len() {
		return false
	}
	for _, v := range s.set.Values() {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// String renders the set as "{a, b, c}" or "EMPTY", the convention used by
// both the NFA and DFA serializers.
func (s *IntSet) String() string {
	if s.Empty() {
		return "EMPTY"
	}
	parts := make([]string, 0, s.Len())
	for _, v := range s.Sorted() {
		parts = append(parts, strconv.Itoa(v))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
