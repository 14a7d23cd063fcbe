// Package lexer implements the maximal-munch scanner: a process-wide
// composite DFA built once from the bundled token regex table, and a
// per-input Lexer that feeds it one byte at a time, buffering raw tokens
// and lexical errors as it goes.
package lexer

import (
	"strings"

	"github.com/minilang/frontend/automaton"
	"github.com/minilang/frontend/token"
)

// Lexer scans one input stream into a RawToken sequence plus any lexical
// errors, against the shared composite DFA.
type Lexer struct {
	dfa   *automaton.DFA
	state automaton.State

	buf     []byte
	curLine strings.Builder
	lines   []string

	line int
	col  int

	tokens  []token.RawToken
	errors  []*Error
	stopped bool
}

// New returns a Lexer ready to scan, against the shared composite DFA
// (built once per process, on first call to New from any goroutine).
func New() *Lexer {
	d := sharedComposite()
	return &Lexer{
		dfa:   d,
		state: d.StartState(),
		line:  1,
		col:   1,
	}
}

// advance moves to s2 on byte b, applying the lexeme-buffering and
// line/column bookkeeping rules common to both the first attempt and the
// post-reset retry in FeedChar.
func (lx *Lexer) advance(s2 automaton.State, b byte) {
	lx.state = s2
	if s2 != lx.dfa.StartState() {
		lx.buf = append(lx.buf, b)
	}
	if b != '\r' && b != '\n' {
		lx.curLine.WriteByte(b)
	}
	lx.col++
}

// tryAcceptCurrent applies the smallest-mark-wins rule to the current
// state: if it is a valid accepting state, emits its token (NEWLINE
// additionally rolls the line counter and stored-line buffer, COMMENT is
// suppressed), resets the lexeme buffer, and jumps back to the start
// state. Returns whether the state was accepting at all, and whether a
// token was actually pushed (false for a suppressed COMMENT).
func (lx *Lexer) tryAcceptCurrent() (accepted, emitted bool) {
	if !lx.dfa.IsStopState(lx.state) {
		return false, false
	}
	sm := stopMarks(lx.dfa.StateMarkup(lx.state))
	if len(sm) == 0 {
		return false, false
	}
	tt := sm[0]
	lexeme := string(lx.buf)

	if tt == token.NEWLINE {
		lx.lines = append(lx.lines, lx.curLine.String())
		lx.curLine.Reset()
		lx.line++
		lx.col = 1
	}

	lx.buf = lx.buf[:0]
	lx.state = lx.dfa.StartState()

	if tt == token.COMMENT {
		return true, false
	}
	lx.tokens = append(lx.tokens, token.RawToken{Type: tt, Lexeme: lexeme})
	return true, true
}

// generateAndReset is tryAcceptCurrent's failure path wired to a
// READING_TOKEN error: used when a forced reject (not EOF) breaks a
// mid-token run. Returns whether a non-suppressed token was emitted.
func (lx *Lexer) generateAndReset() bool {
	accepted, emitted := lx.tryAcceptCurrent()
	if accepted {
		return emitted
	}
	if lx.state == lx.dfa.StartState() {
		return false
	}
	lx.pushError(&Error{
		Kind:          ReadingToken,
		Line:          lx.line,
		Column:        lx.col - len(lx.buf),
		Length:        len(lx.buf),
		PossibleTypes: procedureMarks(lx.dfa.StateMarkup(lx.state)),
		lexer:         lx,
	})
	lx.buf = lx.buf[:0]
	lx.state = lx.dfa.StartState()
	return false
}

// FeedChar scans one input byte. On a forced reject it generates whatever
// token the pre-reject state could complete (or a READING_TOKEN error),
// then retries the same byte once from the reset state; a second reject
// is an INVALID_CHAR error.
func (lx *Lexer) FeedChar(b byte) {
	if lx.stopped {
		return
	}
	if s2 := lx.dfa.NextState(lx.state, b); s2 != automaton.Reject {
		lx.advance(s2, b)
		return
	}

	lx.generateAndReset()

	s2 := lx.dfa.NextState(lx.state, b)
	if s2 == automaton.Reject {
		lx.pushError(&Error{
			Kind:   InvalidChar,
			Line:   lx.line,
			Column: lx.col,
			Length: 1,
			Byte:   b,
			lexer:  lx,
		})
		lx.state = lx.dfa.StartState()
		lx.buf = lx.buf[:0]
		return
	}
	lx.advance(s2, b)
}

// EOF signals end of input: the current state's pending run is either
// completed as a final token (smallest-mark rule) or reported as a
// NONSTOP_TOKEN error, a TOKEN_EOF token is appended unconditionally, and
// the lexer is marked stopped. Calling EOF or FeedChar again is a no-op.
func (lx *Lexer) EOF() {
	if lx.stopped {
		return
	}
	if accepted, _ := lx.tryAcceptCurrent(); !accepted && lx.state != lx.dfa.StartState() {
		lx.pushError(&Error{
			Kind:          NonstopToken,
			Line:          lx.line,
			Column:        lx.col - len(lx.buf),
			Length:        len(lx.buf),
			PossibleTypes: procedureMarks(lx.dfa.StateMarkup(lx.state)),
			lexer:         lx,
		})
		lx.buf = lx.buf[:0]
		lx.state = lx.dfa.StartState()
	}
	lx.lines = append(lx.lines, lx.curLine.String())
	lx.tokens = append(lx.tokens, token.RawToken{Type: token.TOKEN_EOF})
	lx.stopped = true
}

// LexAll feeds every byte of src followed by EOF, returning the resulting
// RawToken sequence and any lexical errors accumulated along the way.
func LexAll(src []byte) ([]token.RawToken, []*Error) {
	lx := New()
	for _, b := range src {
		lx.FeedChar(b)
	}
	lx.EOF()
	return lx.Tokens(), lx.Errors()
}

func (lx *Lexer) pushError(e *Error) {
	lx.errors = append(lx.errors, e)
}

// Tokens returns the RawToken sequence produced so far.
func (lx *Lexer) Tokens() []token.RawToken { return lx.tokens }

// Errors returns the lexical errors accumulated so far.
func (lx *Lexer) Errors() []*Error { return lx.errors }

// SourceLine returns the n-th (1-indexed) stored source line, or "" if n
// is out of range. Used only by error reporting.
func (lx *Lexer) SourceLine(n int) string {
	if n < 1 || n > len(lx.lines) {
		return ""
	}
	return lx.lines[n-1]
}
