package lexer

import (
	"github.com/minilang/frontend/internal/collections"
	"github.com/minilang/frontend/token"
)

// procedureMarks returns, ascending, the token types a state with this
// mark set could still complete into: m>>1 for every even mark m.
func procedureMarks(marks *collections.IntSet) []token.Type {
	var out []token.Type
	for _, m := range marks.Sorted() {
		if m%2 == 0 {
			out = append(out, token.Type(m>>1))
		}
	}
	return out
}

// stopMarks returns, ascending, the token types a state with this mark set
// currently accepts: m>>1 for every odd mark m. Ascending order means the
// first element, if any, is the smallest-mark-wins winner.
func stopMarks(marks *collections.IntSet) []token.Type {
	var out []token.Type
	for _, m := range marks.Sorted() {
		if m%2 == 1 {
			out = append(out, token.Type(m>>1))
		}
	}
	return out
}
