package parsetree

import (
	"fmt"

	"github.com/emirpasic/gods/v2/stacks/arraystack"

	"github.com/minilang/frontend/grammar"
	"github.com/minilang/frontend/token"
)

// ParseError is the single fatal error a parse can produce: the driver is
// fail-fast, so there is never more than one.
type ParseError struct {
	Offset      int // index into the token slice where the mismatch occurred
	Line        int
	TokenInLine int
	Lookahead   token.Type
	Expected    grammar.Symbol
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, token %d of line: unexpected %v while expecting %v",
		e.Line, e.TokenInLine, e.Lookahead, e.Expected)
}

// frame is one explicit-stack entry: a node already allocated in the tree,
// waiting for its subtree to be built.
type frame struct {
	node Handle
	sym  grammar.Symbol
}

// Parse runs the LL(1) predictive driver described by g's table over
// tokens, building an arena-backed parse tree as it goes. NEWLINE tokens
// are transparent to the grammar: they are skipped without ever being
// consulted against the table, and every skip resets the in-line token
// counter used for error reporting (not just the first skip at the start
// of a line), so TokenInLine always counts tokens since the most recently
// skipped NEWLINE rather than since the start of the file.
func Parse(g *grammar.Grammar, tokens []token.Token) (*Tree, *ParseError) {
	table := g.LLTable()
	a := newArena()

	root := a.alloc(g.Start())
	stack := arraystack.New[frame]()
	stack.Push(frame{node: root, sym: g.Start()})

	cursor := 0
	line := 1
	tokenInLine := 0

	skipNewlines := func() {
		for cursor < len(tokens) && tokens[cursor].Type == token.NEWLINE {
			cursor++
			line++
			tokenInLine = 0
		}
	}

	currentLookahead := func() token.Token {
		if cursor < len(tokens) {
			return tokens[cursor]
		}
		return token.Token{Type: token.TOKEN_EOF, Seman: token.NoSeman}
	}

	for !stack.Empty() {
		fr, _ := stack.Pop()
		skipNewlines()
		lookahead := currentLookahead()

		if !g.IsNonTerminal(fr.sym) {
			if grammar.Symbol(lookahead.Type) != fr.sym {
				return nil, &ParseError{
					Offset: cursor, Line: line, TokenInLine: tokenInLine,
					Lookahead: lookahead.Type, Expected: fr.sym,
				}
			}
			a.setToken(fr.node, lookahead)
			cursor++
			tokenInLine++
			continue
		}

		row := table[fr.sym]
		rhs, ok := row[grammar.Symbol(lookahead.Type)]
		if !ok {
			return nil, &ParseError{
				Offset: cursor, Line: line, TokenInLine: tokenInLine,
				Lookahead: lookahead.Type, Expected: fr.sym,
			}
		}

		children := make([]Handle, len(rhs))
		for i, sym := range rhs {
			children[i] = a.alloc(sym)
		}
		a.setChildren(fr.node, children)

		for i := len(children) - 1; i >= 0; i-- {
			stack.Push(frame{node: children[i], sym: rhs[i]})
		}
	}

	skipNewlines()
	if cursor < len(tokens) && tokens[cursor].Type != token.TOKEN_EOF {
		return nil, &ParseError{
			Offset: cursor, Line: line, TokenInLine: tokenInLine,
			Lookahead: tokens[cursor].Type, Expected: grammar.EPS,
		}
	}

	return &Tree{arena: a, root: root}, nil
}
