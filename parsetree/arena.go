// Package parsetree implements the LL(1) predictive parse driver and the
// arena-backed N-ary tree it builds: nodes are addressed by integer
// Handle rather than by pointer, so the driver's explicit stack and a
// node's children are both plain handle slices with no ownership cycles to
// manage.
package parsetree

import "github.com/minilang/frontend/grammar"

import "github.com/minilang/frontend/token"

// Handle addresses a node inside an arena.
type Handle int

// NoHandle is the zero-value-distinct sentinel for "no node".
const NoHandle Handle = -1

type node struct {
	symbol   grammar.Symbol
	tok      token.Token
	hasToken bool
	children []Handle
}

// arena is a flat, append-only slab of nodes; a Handle is simply its index.
type arena struct {
	nodes []node
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) alloc(symbol grammar.Symbol) Handle {
	a.nodes = append(a.nodes, node{symbol: symbol})
	return Handle(len(a.nodes) - 1)
}

func (a *arena) setToken(h Handle, tok token.Token) {
	a.nodes[h].tok = tok
	a.nodes[h].hasToken = true
}

func (a *arena) setChildren(h Handle, children []Handle) {
	a.nodes[h].children = children
}
