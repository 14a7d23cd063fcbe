package automaton

import "testing"

// buildRedundant builds a 3-state DFA over {"a", "b"} where the "a" and "b"
// branches lead to two distinct but behaviorally identical stop states
// (same outgoing edges - none - and the same mark set), so Simplify should
// merge them into one.
func buildRedundant() *DFA {
	d := New()
	start := d.AddState()
	stopA := d.AddState()
	stopB := d.AddState()
	d.SetJump(start, 'a', stopA)
	d.SetJump(start, 'b', stopB)
	d.SetStopState(stopA)
	d.SetStopState(stopB)
	d.AddStateMarkup(stopA, 5)
	d.AddStateMarkup(stopB, 5)
	return d
}

func TestSimplifyMergesBehaviorallyIdenticalStates(t *testing.T) {
	d := buildRedundant()
	if d.StateCount() != 3 {
		t.Fatalf("setup: want 3 states, got %d", d.StateCount())
	}
	d.Simplify()
	if d.StateCount() != 2 {
		t.Fatalf("Simplify() should merge the two equivalent stop states, got %d states", d.StateCount())
	}
}

func TestSimplifyPreservesLanguage(t *testing.T) {
	d := buildRedundant()
	d.Simplify()

	for _, in := range []string{"a", "b"} {
		if !d.IsStopState(run(d, in)) {
			t.Fatalf("%q should still be accepted after Simplify()", in)
		}
	}
	for _, in := range []string{"", "c", "ab"} {
		if d.IsStopState(run(d, in)) {
			t.Fatalf("%q should still be rejected after Simplify()", in)
		}
	}
}

func TestSimplifyPreservesMarks(t *testing.T) {
	d := buildRedundant()
	d.Simplify()

	for _, in := range []string{"a", "b"} {
		s := run(d, in)
		if !d.StateMarkup(s).Contains(5) {
			t.Fatalf("state reached on %q should keep mark 5 after Simplify(), got %v", in, d.StateMarkup(s))
		}
	}
}

func TestSimplifyKeepsStatesWithDifferentMarksDistinct(t *testing.T) {
	d := New()
	start := d.AddState()
	stopA := d.AddState()
	stopB := d.AddState()
	d.SetJump(start, 'a', stopA)
	d.SetJump(start, 'b', stopB)
	d.SetStopState(stopA)
	d.SetStopState(stopB)
	d.AddStateMarkup(stopA, 1)
	d.AddStateMarkup(stopB, 2)

	d.Simplify()

	if d.StateCount() != 3 {
		t.Fatalf("states with different marks must not merge, got %d states (want 3)", d.StateCount())
	}
	sA := run(d, "a")
	sB := run(d, "b")
	if sA == sB {
		t.Fatal("\"a\" and \"b\" should land on distinct states")
	}
	if !d.StateMarkup(sA).Contains(1) || !d.StateMarkup(sB).Contains(2) {
		t.Fatalf("marks not preserved: a=%v b=%v", d.StateMarkup(sA), d.StateMarkup(sB))
	}
}
