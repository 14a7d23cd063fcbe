package lexer

import (
	"log/slog"
	"sync"

	"github.com/minilang/frontend/automaton"
	"github.com/minilang/frontend/langspec"
	"github.com/minilang/frontend/regex"
	"github.com/minilang/frontend/token"
)

var (
	sharedOnce sync.Once
	sharedDFA  *automaton.DFA
)

// buildComposite builds the process-wide composite DFA described in §4.4:
// a start state with whitespace self-loops, one Thompson branch per
// non-empty token regex (with every state pre-marked so the accept/in-
// progress distinction survives subset construction), minimized, with the
// start state's marks cleared afterward.
func buildComposite() *automaton.DFA {
	n := automaton.NewNFA()
	s0 := n.StartState()
	n.AddJump(s0, ' ', s0)
	n.AddJump(s0, '\t', s0)
	n.AddStateMarkup(s0, 0)

	for tt := 0; tt < token.Count; tt++ {
		pattern := langspec.TokenRegex[tt]
		if pattern == "" {
			continue
		}
		sub, err := regex.Compile(pattern)
		if err != nil {
			panic("lexer: bundled token regex for " + token.Type(tt).String() + " failed to compile: " + err.Error())
		}
		for st := 0; st < sub.StateCount(); st++ {
			if sub.IsStopState(automaton.State(st)) {
				sub.AddStateMarkup(automaton.State(st), (tt<<1)|1)
			} else {
				sub.AddStateMarkup(automaton.State(st), tt<<1)
			}
		}
		n.AddAutomaton(s0, sub)
	}

	d := n.ToDeterministic()
	d.ClearStateMarkup(d.StartState())
	return d
}

// sharedComposite returns the process-wide composite DFA, building it on
// first use.
func sharedComposite() *automaton.DFA {
	sharedOnce.Do(func() {
		slog.Debug("lexer: building composite DFA")
		sharedDFA = buildComposite()
		slog.Debug("lexer: composite DFA built", "states", sharedDFA.StateCount())
	})
	return sharedDFA
}
