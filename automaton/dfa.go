// Package automaton implements the byte-indexed deterministic and
// nondeterministic automata that the regex front end, lexer, and their
// subset-construction bridge are built on.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/minilang/frontend/internal/collections"
)

// Reject is the sentinel "no transition" state. Stepping from Reject always
// yields Reject.
const Reject State = -1

// State indexes a DFA state.
type State int

// DFA is a byte-indexed deterministic automaton: a numbered sequence of
// states (state 0 is the start state unless overridden), a partial
// byte-keyed transition table per state, a set of stop states, and a set of
// integer marks per state.
type DFA struct {
	transitions []map[byte]State
	stop        map[State]bool
	marks       []*collections.IntSet
	start       State
}

// New returns an empty DFA whose start state is 0; callers normally call
// AddState at least once before using it.
func New() *DFA {
	return &DFA{stop: map[State]bool{}}
}

// StartState returns the designated start state.
func (d *DFA) StartState() State { return d.start }

// SetStartState overrides the default (state 0).
func (d *DFA) SetStartState(s State) { d.start = s }

// StateCount returns the number of allocated states.
func (d *DFA) StateCount() int { return len(d.transitions) }

// AddState allocates a fresh state with no transitions and no marks,
// returning its index.
func (d *DFA) AddState() State {
	d.transitions = append(d.transitions, map[byte]State{})
	d.marks = append(d.marks, collections.NewIntSet())
	return State(len(d.transitions) - 1)
}

// SetJump installs (or overwrites) the transition from -> to on byte b.
func (d *DFA) SetJump(from State, b byte, to State) {
	if from == Reject {
		return
	}
	d.transitions[from][b] = to
}

// NextState returns the state reached from `from` on byte b, or Reject if
// from is Reject or no such edge exists.
func (d *DFA) NextState(from State, b byte) State {
	if from == Reject {
		return Reject
	}
	if to, ok := d.transitions[from][b]; ok {
		return to
	}
	return Reject
}

// SetStopState marks s as accepting.
func (d *DFA) SetStopState(s State) { d.stop[s] = true }

// IsStopState reports whether s is accepting.
func (d *DFA) IsStopState(s State) bool {
	if s == Reject {
		return false
	}
	return d.stop[s]
}

// StopStates returns the accepting states in ascending order.
func (d *DFA) StopStates() []State {
	out := make([]State, 0, len(d.stop))
	for s := range d.stop {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddStateMarkup attaches marks to state s.
func (d *DFA) AddStateMarkup(s State, marks ...int) {
	d.marks[s].Add(marks...)
}

// RemoveStateMarkup removes specific marks from s (the "single" form of
// removeStateMarkup); ClearStateMarkup is the "all" form.
func (d *DFA) RemoveStateMarkup(s State, marks ...int) {
	d.marks[s].Remove(marks...)
}

// ClearStateMarkup removes every mark from s (the "all" form of
// removeStateMarkup).
func (d *DFA) ClearStateMarkup(s State) {
	d.marks[s].Clear()
}

// StateMarkup returns the mark set attached to s.
func (d *DFA) StateMarkup(s State) *collections.IntSet {
	return d.marks[s]
}

// ImportAutomaton copies other's states into d, biasing every target index
// by d's current state count, and returns other's (shifted) start state and
// stop-state set.
func (d *DFA) ImportAutomaton(other *DFA) (importedStart State, importedStops []State) {
	bias := State(len(d.transitions))
	for s := 0; s < other.StateCount(); s++ {
		ns := d.AddState()
		for b, to := range other.transitions[s] {
			target := to
			if target != Reject {
				target += bias
			}
			d.transitions[ns][b] = target
		}
		d.marks[ns] = other.marks[s].Clone()
	}
	for _, s := range other.StopStates() {
		shifted := s + bias
		d.SetStopState(shifted)
		importedStops = append(importedStops, shifted)
	}
	importedStart = other.start + bias
	return importedStart, importedStops
}

// dfaPartitionClass tracks, for minimization, which representative state a
// given state currently belongs to.
type dfaPartitionClass struct {
	rep     State
	members map[State]bool
}

// Simplify performs partition-refinement minimization driven by marks (see
// spec §4.1): stop states sharing an identical mark set start in one class;
// every other distinct mark-set value gets its own class; non-stop states
// each start in a singleton class. States are split out of their class,
// one at a time, whenever they disagree with their class's representative
// on some outgoing byte (a missing edge, or an edge into a different
// current class) or on their mark set. Iterate to a fixed point, then
// compact classes into contiguous new state indices.
func (d *DFA) Simplify() {
	n := d.StateCount()
	if n == 0 {
		return
	}

	classOf := make([]State, n)
	byMarkKey := map[string]State{}
	for s := 0; s < n; s++ {
		if d.IsStopState(State(s)) {
			key := d.marks[s].String()
			if rep, ok := byMarkKey[key]; ok {
				classOf[s] = rep
			} else {
				byMarkKey[key] = State(s)
				classOf[s] = State(s)
			}
		} else {
			classOf[s] = State(s)
		}
	}

	agree := func(a, b State) bool {
		if !d.marks[a].Equal(d.marks[b]) {
			return false
		}
		seen := map[byte]bool{}
		for byt, ta := range d.transitions[a] {
			seen[byt] = true
			tb, ok := d.transitions[b][byt]
			if !ok || classOf[ta] != classOf[tb] {
				return false
			}
		}
		for byt := range d.transitions[b] {
			if !seen[byt] {
				return false
			}
		}
		return true
	}

	for {
		split := false
		for s := 0; s < n; s++ {
			rep := classOf[s]
			if rep == State(s) {
				continue
			}
			if agree(State(s), rep) {
				continue
			}
			// s disagrees with its class representative: split s out into
			// its own class, then pull back into s's new class every
			// member of the old class that still agrees with s.
			oldRep := rep
			classOf[s] = State(s)
			split = true
			for t := 0; t < n; t++ {
				if t == s || classOf[t] != oldRep {
					continue
				}
				if agree(State(t), State(s)) {
					classOf[t] = State(s)
				}
			}
		}
		if !split {
			break
		}
	}

	// Compact: assign contiguous indices to representatives.
	newIndex := map[State]State{}
	order := make([]State, 0, n)
	for s := 0; s < n; s++ {
		if classOf[s] == State(s) {
			order = append(order, State(s))
		}
	}
	for i, rep := range order {
		newIndex[rep] = State(i)
	}

	newD := New()
	for range order {
		newD.AddState()
	}
	for i, rep := range order {
		for byt, to := range d.transitions[rep] {
			target := Reject
			if to != Reject {
				target = newIndex[classOf[to]]
			}
			newD.transitions[i][byt] = target
		}
		newD.marks[i] = d.marks[rep].Clone()
	}
	for s := range d.stop {
		newD.SetStopState(newIndex[classOf[s]])
	}
	newD.start = newIndex[classOf[d.start]]

	*d = *newD
}

// Serialize renders a human-readable dump: printable bytes as 'x', others
// as \xHH, the START_STATE, STOP_STATES, per-state transitions and
// per-state mark set (explicit EMPTY when none).
func (d *DFA) Serialize() string {
	var b strings.Builder
	fmt.Fprintf(&b, "START_STATE = %d\n", d.start)
	fmt.Fprintf(&b, "STOP_STATES =")
	for _, s := range d.StopStates() {
		fmt.Fprintf(&b, " %d", s)
	}
	b.WriteByte('\n')

	for s := 0; s < d.StateCount(); s++ {
		fmt.Fprintf(&b, "STATE %d: {", s)
		bytes := make([]byte, 0, len(d.transitions[s]))
		for byt := range d.transitions[s] {
			bytes = append(bytes, byt)
		}
		sort.Slice(bytes, func(i, j int) bool { return bytes[i] < bytes[j] })
		for i, byt := range bytes {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s -> %d", formatByte(byt), d.transitions[s][byt])
		}
		b.WriteString("}\n")
		fmt.Fprintf(&b, "  MARKS: %s\n", d.marks[s].String())
	}
	return b.String()
}

// formatByte renders a byte the way the serialized dumps want it: a
// printable ASCII byte as 'x', anything else as \xHH.
func formatByte(b byte) string {
	if b >= 0x20 && b < 0x7f && b != '\'' && b != '\\' {
		return fmt.Sprintf("'%c'", b)
	}
	return fmt.Sprintf("'\\x%02x'", b)
}
