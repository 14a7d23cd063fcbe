package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/v2/queues/linkedlistqueue"
	"github.com/minilang/frontend/internal/collections"
)

// nfaState is one node of an NFA: a byte-keyed multimap (several targets
// per byte are allowed), a set of epsilon successors, and a mark set.
type nfaState struct {
	byteTrans map[byte][]State
	epsilon   *collections.IntSet
	marks     *collections.IntSet
}

func newNFAState() *nfaState {
	return &nfaState{
		byteTrans: map[byte][]State{},
		epsilon:   collections.NewIntSet(),
		marks:     collections.NewIntSet(),
	}
}

// NFA is a nondeterministic automaton over the 256-byte alphabet plus
// epsilon transitions: one single-state start index and a set of stop
// states.
type NFA struct {
	states []*nfaState
	start  State
	stop   map[State]bool
}

// NewNFA constructs an NFA with a single start state (index 0).
func NewNFA() *NFA {
	n := &NFA{stop: map[State]bool{}}
	n.start = n.AddState()
	return n
}

// StartState returns the single start state index.
func (n *NFA) StartState() State { return n.start }

// StateCount returns the number of allocated states.
func (n *NFA) StateCount() int { return len(n.states) }

// AddState allocates a fresh state and returns its index.
func (n *NFA) AddState() State {
	n.states = append(n.states, newNFAState())
	return State(len(n.states) - 1)
}

// AddJump adds an additional byte transition from -> to (additive:
// multiple targets per byte are allowed).
func (n *NFA) AddJump(from State, b byte, to State) {
	st := n.states[from]
	st.byteTrans[b] = append(st.byteTrans[b], to)
}

// AddEpsilonJump adds an epsilon transition from -> to.
func (n *NFA) AddEpsilonJump(from, to State) {
	n.states[from].epsilon.Add(int(to))
}

// SetStopState marks s as a stop state.
func (n *NFA) SetStopState(s State) { n.stop[s] = true }

// IsStopState reports whether the single state s is a stop state.
func (n *NFA) IsStopState(s State) bool { return n.stop[s] }

// IsStopComposite reports whether composite contains any stop single-state.
func (n *NFA) IsStopComposite(composite []State) bool {
	for _, s := range composite {
		if n.stop[s] {
			return true
		}
	}
	return false
}

// StopStates returns the stop states in ascending order.
func (n *NFA) StopStates() []State {
	out := make([]State, 0, len(n.stop))
	for s := range n.stop {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddStateMarkup attaches marks to state s.
func (n *NFA) AddStateMarkup(s State, marks ...int) {
	n.states[s].marks.Add(marks...)
}

// RemoveStateMarkup removes specific marks from s.
func (n *NFA) RemoveStateMarkup(s State, marks ...int) {
	n.states[s].marks.Remove(marks...)
}

// SetStateMarkups replaces s's mark set entirely.
func (n *NFA) SetStateMarkups(s State, marks ...int) {
	n.states[s].marks.Clear()
	n.states[s].marks.Add(marks...)
}

// AddEndStateMarkup applies mark to every current stop state.
func (n *NFA) AddEndStateMarkup(mark int) {
	for s := range n.stop {
		n.AddStateMarkup(s, mark)
	}
}

// StateMarkup returns the mark set attached to s.
func (n *NFA) StateMarkup(s State) *collections.IntSet {
	return n.states[s].marks
}

// EpsilonClosure returns the least superset of members closed under
// epsilon successors, found by depth-first traversal from every member.
func (n *NFA) EpsilonClosure(members []State) []State {
	seen := collections.NewIntSet()
	var stack []State
	for _, m := range members {
		if !seen.Contains(int(m)) {
			seen.Add(int(m))
			stack = append(stack, m)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range n.states[s].epsilon.Sorted() {
			if !seen.Contains(e) {
				seen.Add(e)
				stack = append(stack, State(e))
			}
		}
	}
	sorted := seen.Sorted()
	out := make([]State, len(sorted))
	for i, v := range sorted {
		out[i] = State(v)
	}
	return out
}

// CharacterTransitions returns the bytes on which any member of the
// composite has an outgoing byte edge.
func (n *NFA) CharacterTransitions(composite []State) []byte {
	set := map[byte]bool{}
	for _, s := range composite {
		for b := range n.states[s].byteTrans {
			set[b] = true
		}
	}
	out := make([]byte, 0, len(set))
	for b := range set {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NextState returns the epsilon-closure of the union of byte-successors of
// composite on byte b.
func (n *NFA) NextState(composite []State, b byte) []State {
	var union []State
	for _, s := range composite {
		union = append(union, n.states[s].byteTrans[b]...)
	}
	if len(union) == 0 {
		return nil
	}
	return n.EpsilonClosure(union)
}

// ImportAutomaton copies other's states into n, biasing targets by n's
// current state count; marks are preserved unchanged. Returns other's
// shifted start state and shifted stop-state set.
func (n *NFA) ImportAutomaton(other *NFA) (importedStart State, importedStops []State) {
	bias := State(len(n.states))
	for s := 0; s < other.StateCount(); s++ {
		ns := n.AddState()
		src := other.states[s]
		for b, targets := range src.byteTrans {
			shifted := make([]State, len(targets))
			for i, t := range targets {
				shifted[i] = t + bias
			}
			n.states[ns].byteTrans[b] = shifted
		}
		for _, e := range src.epsilon.Sorted() {
			n.states[ns].epsilon.Add(e + int(bias))
		}
		n.states[ns].marks = src.marks.Clone()
	}
	for _, s := range other.StopStates() {
		importedStops = append(importedStops, s+bias)
	}
	importedStart = other.start + bias
	return importedStart, importedStops
}

// AddAutomaton imports other (same bias discipline as DFA.ImportAutomaton),
// then adds an epsilon edge from fromState to the imported start; other's
// stop states become additional stop states of n. Returns the imported
// start state.
func (n *NFA) AddAutomaton(fromState State, other *NFA) State {
	importedStart, importedStops := n.ImportAutomaton(other)
	n.AddEpsilonJump(fromState, importedStart)
	for _, s := range importedStops {
		n.SetStopState(s)
	}
	return importedStart
}

// unifyStopSingleStates creates a new stop state and adds epsilon edges
// from every old stop state to it, leaving exactly one stop state. Every
// Thompson combinator below starts by calling this.
func (n *NFA) unifyStopSingleStates() State {
	newStop := n.AddState()
	for _, s := range n.StopStates() {
		n.AddEpsilonJump(s, newStop)
	}
	n.stop = map[State]bool{}
	n.SetStopState(newStop)
	return newStop
}

// RefactorToRepetitive turns n into n+ (Kleene plus): unify stops, then add
// an epsilon edge from the unified stop back to the start.
func (n *NFA) RefactorToRepetitive() {
	stop := n.unifyStopSingleStates()
	n.AddEpsilonJump(stop, n.start)
}

// RefactorToSkippable turns n into n? (optional): unify stops, then add an
// epsilon edge from the start directly to the unified stop.
func (n *NFA) RefactorToSkippable() {
	stop := n.unifyStopSingleStates()
	n.AddEpsilonJump(n.start, stop)
}

// Connect implements concatenation n·other: unify n's stops, import other,
// clear n's stop set, and epsilon-link the old unified stop to other's
// imported start (other's imported stops become n's new stops).
func (n *NFA) Connect(other *NFA) {
	stop := n.unifyStopSingleStates()
	importedStart, importedStops := n.ImportAutomaton(other)
	n.stop = map[State]bool{}
	n.AddEpsilonJump(stop, importedStart)
	for _, s := range importedStops {
		n.SetStopState(s)
	}
}

// MakeOriginBranch implements alternation n|other: unify n's stops, import
// other, add an epsilon edge from n.start to other's imported start, and
// other's imported stop states join n's stop states.
func (n *NFA) MakeOriginBranch(other *NFA) {
	n.unifyStopSingleStates()
	importedStart, importedStops := n.ImportAutomaton(other)
	n.AddEpsilonJump(n.start, importedStart)
	for _, s := range importedStops {
		n.SetStopState(s)
	}
}

// ToDeterministic performs subset construction: states are epsilon
// closures, explored breadth-first from the closure of the single start
// state, represented throughout as the Composite type (§3's immutable
// ordered-set-with-owning-NFA data model). Each reached composite S and
// byte b in CharacterTransitions(S) gets a DFA transition to
// state(NextState(S, b)), allocating a fresh DFA state the first time a
// composite is seen; a DFA state is a stop state iff IsStop() on its
// composite. After the BFS, every composite's union of NFA marks is
// copied onto its DFA state, and the result is minimized.
func (n *NFA) ToDeterministic() *DFA {
	d := New()

	startComposite := n.EpsilonClosureComposite([]State{n.start})
	compositeOf := map[State]Composite{}
	indexOf := map[string]State{}

	startDFA := d.AddState()
	d.SetStartState(startDFA)
	indexOf[startComposite.String()] = startDFA
	compositeOf[startDFA] = startComposite
	if startComposite.IsStop() {
		d.SetStopState(startDFA)
	}

	queue := linkedlistqueue.New[State]()
	queue.Enqueue(startDFA)

	for !queue.Empty() {
		cur, _ := queue.Dequeue()
		composite := compositeOf[cur]
		for _, b := range n.CharacterTransitions(composite.Members()) {
			next := NewComposite(n, n.NextState(composite.Members(), b))
			if len(next.Members()) == 0 {
				continue
			}
			key := next.String()
			target, ok := indexOf[key]
			if !ok {
				target = d.AddState()
				indexOf[key] = target
				compositeOf[target] = next
				if next.IsStop() {
					d.SetStopState(target)
				}
				queue.Enqueue(target)
			}
			d.SetJump(cur, b, target)
		}
	}

	for dState, composite := range compositeOf {
		marks := collections.NewIntSet()
		for _, s := range composite.Members() {
			marks.Union(n.StateMarkup(s))
		}
		d.marks[dState] = marks
	}

	d.Simplify()
	return d
}

// Serialize renders a human-readable dump: per state, epsilon transitions
// before byte transitions, marks as a sorted set or EMPTY, and a
// FINISH_STATES line.
func (n *NFA) Serialize() string {
	var b strings.Builder
	fmt.Fprintf(&b, "START_STATE = %d\n", n.start)
	fmt.Fprintf(&b, "FINISH_STATES =")
	for _, s := range n.StopStates() {
		fmt.Fprintf(&b, " %d", s)
	}
	b.WriteByte('\n')

	for s := 0; s < n.StateCount(); s++ {
		fmt.Fprintf(&b, "STATE %d: {", s)
		first := true
		for _, e := range n.states[s].epsilon.Sorted() {
			if !first {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "eps -> %d", e)
			first = false
		}
		bytes := make([]byte, 0, len(n.states[s].byteTrans))
		for byt := range n.states[s].byteTrans {
			bytes = append(bytes, byt)
		}
		sort.Slice(bytes, func(i, j int) bool { return bytes[i] < bytes[j] })
		for _, byt := range bytes {
			for _, t := range n.states[s].byteTrans[byt] {
				if !first {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%s -> %d", formatByte(byt), t)
				first = false
			}
		}
		b.WriteString("}\n")
		fmt.Fprintf(&b, "  MARKS: %s\n", n.states[s].marks.String())
	}
	return b.String()
}
