package parsetree

import (
	"fmt"
	"strings"

	"github.com/minilang/frontend/grammar"
	"github.com/minilang/frontend/token"
)

// Tree is an immutable, arena-backed parse tree produced by Parse.
type Tree struct {
	arena *arena
	root  Handle
}

// Root returns the tree's root node.
func (t *Tree) Root() Handle { return t.root }

// Symbol returns the grammar symbol a node was reduced from (or the
// terminal it matched).
func (t *Tree) Symbol(h Handle) grammar.Symbol { return t.arena.nodes[h].symbol }

// Token returns the token a leaf node matched, if any.
func (t *Tree) Token(h Handle) (tok token.Token, ok bool) {
	n := t.arena.nodes[h]
	return n.tok, n.hasToken
}

// Children returns a node's children in left-to-right order; a leaf has
// none.
func (t *Tree) Children(h Handle) []Handle { return t.arena.nodes[h].children }

// Serialize renders the tree depth-first as one line per node, indented
// with one "|" per depth level and the symbol's display name; a leaf that
// matched a token additionally reports its semantic index.
func (t *Tree) Serialize(name func(grammar.Symbol) string) string {
	var b strings.Builder
	t.serializeNode(&b, t.root, 0, name)
	return b.String()
}

func (t *Tree) serializeNode(b *strings.Builder, h Handle, depth int, name func(grammar.Symbol) string) {
	b.WriteString(strings.Repeat("|", depth))
	b.WriteString(name(t.Symbol(h)))
	if tok, ok := t.Token(h); ok {
		fmt.Fprintf(b, " with token seman %d", tok.Seman)
	}
	b.WriteByte('\n')
	for _, c := range t.Children(h) {
		t.serializeNode(b, c, depth+1, name)
	}
}
