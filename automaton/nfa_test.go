package automaton

import "testing"

// buildAB builds an NFA for the language {"ab"}: start --a--> mid --b--> stop.
func buildAB() *NFA {
	n := NewNFA()
	mid := n.AddState()
	stop := n.AddState()
	n.AddJump(n.StartState(), 'a', mid)
	n.AddJump(mid, 'b', stop)
	n.SetStopState(stop)
	n.AddStateMarkup(stop, 7)
	return n
}

// buildAOrB builds an NFA for the language {"a", "b"} via two epsilon
// branches out of the start state, each with its own stop state and mark
// (so subset construction actually has to merge composites).
func buildAOrB() *NFA {
	n := NewNFA()
	start := n.StartState()

	aStart := n.AddState()
	aStop := n.AddState()
	n.AddEpsilonJump(start, aStart)
	n.AddJump(aStart, 'a', aStop)
	n.SetStopState(aStop)
	n.AddStateMarkup(aStop, 1)

	bStart := n.AddState()
	bStop := n.AddState()
	n.AddEpsilonJump(start, bStart)
	n.AddJump(bStart, 'b', bStop)
	n.SetStopState(bStop)
	n.AddStateMarkup(bStop, 2)

	return n
}

func run(d *DFA, in string) State {
	s := d.StartState()
	for i := 0; i < len(in) && s != Reject; i++ {
		s = d.NextState(s, in[i])
	}
	return s
}

func TestToDeterministicAcceptsExactlyTheNFALanguage(t *testing.T) {
	d := buildAB().ToDeterministic()

	if !d.IsStopState(run(d, "ab")) {
		t.Fatal("\"ab\" should be accepted")
	}
	for _, in := range []string{"a", "b", "ba", "abc", ""} {
		if d.IsStopState(run(d, in)) {
			t.Fatalf("%q should not be accepted", in)
		}
	}
}

func TestToDeterministicIsDeterministicUpToStateRenaming(t *testing.T) {
	// Two structurally identical NFAs (rebuilt from scratch, so the raw
	// state indices need not line up) must produce DFAs that accept the
	// same language and carry the same per-state mark sets when walked in
	// lockstep from their respective start states.
	d1 := buildAOrB().ToDeterministic()
	d2 := buildAOrB().ToDeterministic()

	if d1.StateCount() != d2.StateCount() {
		t.Fatalf("state counts differ: %d vs %d", d1.StateCount(), d2.StateCount())
	}

	for _, in := range []string{"a", "b", "ab", "", "c"} {
		s1, s2 := run(d1, in), run(d2, in)
		if d1.IsStopState(s1) != d2.IsStopState(s2) {
			t.Fatalf("acceptance of %q differs between runs", in)
		}
		if s1 != Reject && s2 != Reject && !d1.StateMarkup(s1).Equal(d2.StateMarkup(s2)) {
			t.Fatalf("mark sets for %q differ: %v vs %v", in, d1.StateMarkup(s1), d2.StateMarkup(s2))
		}
	}
}

func TestToDeterministicPreservesMarksOnAcceptingStates(t *testing.T) {
	d := buildAOrB().ToDeterministic()

	sA := run(d, "a")
	if !d.IsStopState(sA) || !d.StateMarkup(sA).Contains(1) {
		t.Fatalf("state reached on \"a\" should be a stop state marked {1}, marks=%v", d.StateMarkup(sA))
	}
	sB := run(d, "b")
	if !d.IsStopState(sB) || !d.StateMarkup(sB).Contains(2) {
		t.Fatalf("state reached on \"b\" should be a stop state marked {2}, marks=%v", d.StateMarkup(sB))
	}
}
