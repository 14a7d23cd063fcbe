package automaton

import (
	"fmt"
	"strings"
)

// Composite is an immutable ordered set of single-state indices together
// with a reference to the owning NFA. Equality and ordering are
// lexicographic on the underlying (always-sorted) member slice.
type Composite struct {
	nfa     *NFA
	members []State
}

// NewComposite wraps an already-sorted, duplicate-free member slice. Callers
// that build members from EpsilonClosure (which always returns sorted,
// deduplicated slices) can pass them directly.
func NewComposite(nfa *NFA, members []State) Composite {
	cp := make([]State, len(members))
	copy(cp, members)
	return Composite{nfa: nfa, members: cp}
}

// EpsilonClosureComposite returns the Composite for EpsilonClosure(members).
func (n *NFA) EpsilonClosureComposite(members []State) Composite {
	return NewComposite(n, n.EpsilonClosure(members))
}

// Members returns the ordered single-state indices.
func (c Composite) Members() []State { return c.members }

// Owner returns the NFA this composite's states belong to.
func (c Composite) Owner() *NFA { return c.nfa }

// Equal reports whether c and other contain exactly the same states.
func (c Composite) Equal(other Composite) bool {
	if len(c.members) != len(other.members) {
		return false
	}
	for i := range c.members {
		if c.members[i] != other.members[i] {
			return false
		}
	}
	return true
}

// Less implements the lexicographic ordering on the underlying member set.
func (c Composite) Less(other Composite) bool {
	for i := 0; i < len(c.members) && i < len(other.members); i++ {
		if c.members[i] != other.members[i] {
			return c.members[i] < other.members[i]
		}
	}
	return len(c.members) < len(other.members)
}

// IsStop reports whether the composite contains any NFA stop state.
func (c Composite) IsStop() bool {
	if c.nfa == nil {
		return false
	}
	return c.nfa.IsStopComposite(c.members)
}

// String renders the composite as "{a, b, c}", matching IntSet's convention.
func (c Composite) String() string {
	if len(c.members) == 0 {
		return "EMPTY"
	}
	parts := make([]string, len(c.members))
	for i, m := range c.members {
		parts[i] = fmt.Sprintf("%d", m)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
