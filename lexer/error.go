package lexer

import (
	"fmt"
	"strings"

	"github.com/minilang/frontend/token"
)

// ErrorKind is the three-way lexical error taxonomy of §7.
type ErrorKind int

const (
	// InvalidChar: the scanner was at the start state and the byte has no
	// outgoing transition at all.
	InvalidChar ErrorKind = iota
	// ReadingToken: the scanner was mid-token and the next byte breaks the
	// lex; PossibleTypes carries what it could still have completed into.
	ReadingToken
	// NonstopToken: EOF was reached while mid-token.
	NonstopToken
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidChar:
		return "INVALID_CHAR"
	case ReadingToken:
		return "READING_TOKEN"
	case NonstopToken:
		return "NONSTOP_TOKEN"
	default:
		return "LEX_ERROR_UNKNOWN"
	}
}

// Error is one lexical error record: enough to both report a one-line
// message and, given the owning Lexer's stored source lines, render a
// source-line-with-caret context.
type Error struct {
	Kind          ErrorKind
	Line          int // 1-indexed
	Column        int // 1-indexed, start of the offending run
	Length        int
	Byte          byte         // meaningful for InvalidChar only
	PossibleTypes []token.Type // meaningful for ReadingToken only

	lexer *Lexer
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidChar:
		return fmt.Sprintf("%s at line %d, column %d: byte %q has no transition", e.Kind, e.Line, e.Column, e.Byte)
	case ReadingToken:
		names := make([]string, len(e.PossibleTypes))
		for i, t := range e.PossibleTypes {
			names[i] = t.String()
		}
		return fmt.Sprintf("%s at line %d, column %d: while reading possible token { %s }", e.Kind, e.Line, e.Column, strings.Join(names, ", "))
	case NonstopToken:
		return fmt.Sprintf("%s at line %d, column %d: end of input reached mid-token", e.Kind, e.Line, e.Column)
	default:
		return e.Kind.String()
	}
}

// ReportTo writes a human-readable rendering of the error, including the
// offending source line and a caret under the affected run, matching the
// lexer's ErrorReport::reportErrorTo in spirit (minus terminal coloring).
func (e *Error) ReportTo(w *strings.Builder) {
	fmt.Fprintf(w, "%s\n", e.Error())
	if e.lexer == nil {
		return
	}
	line := e.lexer.SourceLine(e.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "%s\n", line)
	col := e.Column
	if col < 1 {
		col = 1
	}
	length := e.Length
	if length < 1 {
		length = 1
	}
	w.WriteString(strings.Repeat(" ", col-1))
	w.WriteString(strings.Repeat("^", length))
	w.WriteByte('\n')
}
