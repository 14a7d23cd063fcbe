// Package grammar implements a context-free grammar over integer symbols:
// production storage, the empty-symbol fixpoint, FIRST/FOLLOW/SELECT set
// computation, and the LL(1) parsing table those sets drive.
package grammar

import (
	"sort"

	"github.com/minilang/frontend/internal/collections"
)

// Symbol is a non-negative integer identifying a terminal or non-terminal.
// Terminal symbols coincide with token.Type's numeric values (0..255 is
// reserved for terminal classes); non-terminals are allocated at 256+.
type Symbol int

// EPS is the reserved sentinel representing the empty string in FIRST/FOLLOW
// computations. It is never a real grammar symbol.
const EPS Symbol = -1

// Sentence is a right-hand side: an ordered sequence of symbols. The empty
// sentence (length 0) denotes an epsilon production.
type Sentence []Symbol

// Production is one left-part -> right-part rule.
type Production struct {
	Left  Symbol
	Right Sentence
}

func sentenceKey(s Sentence) string {
	b := make([]byte, 0, len(s)*4)
	for _, sym := range s {
		b = append(b, byte(sym), byte(sym>>8), byte(sym>>16), byte(sym>>24))
	}
	return string(b)
}

// Grammar accumulates productions for a single start symbol and computes
// the derived sets lazily, invalidating the caches whenever a production is
// added.
type Grammar struct {
	start Symbol
	end   Symbol

	productions []Production
	seen        map[Symbol]map[string]bool // left -> sentenceKey -> present, for addConduct's dedup
	symbols     map[Symbol]bool
	nonTerms    map[Symbol]bool

	emptyValid bool
	emptySet   map[Symbol]bool

	firstValid bool
	firstSets  map[Symbol]*collections.IntSet

	followValid bool
	followSets  map[Symbol]*collections.IntSet
}

// New returns an empty grammar rooted at start, whose FOLLOW(start) is
// seeded with the abstract EPS sentinel (no real end-of-input terminal).
func New(start Symbol) *Grammar {
	return NewWithEnd(start, EPS)
}

// NewWithEnd is like New, but seeds FOLLOW(start) with end instead of EPS.
// Use this when the token stream being parsed always ends in a genuine
// end-of-input terminal (e.g. TOKEN_EOF) rather than simply running out of
// tokens: the LL(1) driver's lookahead is always a real token type, so the
// production that lets the start symbol derive empty must be selectable on
// that real terminal, not on an abstract sentinel the driver never sees.
func NewWithEnd(start, end Symbol) *Grammar {
	return &Grammar{
		start:    start,
		end:      end,
		seen:     map[Symbol]map[string]bool{},
		symbols:  map[Symbol]bool{},
		nonTerms: map[Symbol]bool{},
	}
}

// AddProduction adds left -> right, unless an identical right-hand side has
// already been added for this left-hand side (duplicate-RHS rejection,
// matching addConduct's sentences-set check). Invalidates every derived-set
// cache.
func (g *Grammar) AddProduction(left Symbol, right Sentence) {
	g.firstValid = false
	g.emptyValid = false
	g.followValid = false

	g.symbols[left] = true
	g.nonTerms[left] = true
	for _, s := range right {
		g.symbols[s] = true
	}

	if g.seen[left] == nil {
		g.seen[left] = map[string]bool{}
	}
	key := sentenceKey(right)
	if g.seen[left][key] {
		return
	}
	g.seen[left][key] = true
	g.productions = append(g.productions, Production{Left: left, Right: right})
}

// Start returns the grammar's start symbol.
func (g *Grammar) Start() Symbol { return g.start }

// Symbols returns every symbol (terminal or non-terminal) that has appeared
// in an added production, in ascending order.
func (g *Grammar) Symbols() []Symbol {
	out := make([]Symbol, 0, len(g.symbols))
	for s := range g.symbols {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NonTerminals returns every symbol that has appeared on a left-hand side,
// in ascending order.
func (g *Grammar) NonTerminals() []Symbol {
	out := make([]Symbol, 0, len(g.nonTerms))
	for s := range g.nonTerms {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsNonTerminal reports whether s has appeared on a left-hand side.
func (g *Grammar) IsNonTerminal(s Symbol) bool { return g.nonTerms[s] }

// Productions returns the productions in the order they were added.
func (g *Grammar) Productions() []Production {
	return g.productions
}

// ProductionsFor returns the right-hand sides recorded for left, in the
// order they were added.
func (g *Grammar) ProductionsFor(left Symbol) []Sentence {
	var out []Sentence
	for _, p := range g.productions {
		if p.Left == left {
			out = append(out, p.Right)
		}
	}
	return out
}

// computeEmptySet computes, by fixpoint, which non-terminals can derive the empty
// string: a non-terminal is empty if some production of it has an
// all-empty (possibly zero-length) right-hand side.
func (g *Grammar) computeEmptySet() {
	g.emptySet = map[Symbol]bool{}
	for {
		changed := false
		for _, p := range g.productions {
			if g.emptySet[p.Left] {
				continue
			}
			allEmpty := true
			for _, s := range p.Right {
				if !g.nonTerms[s] || !g.emptySet[s] {
					allEmpty = false
					break
				}
			}
			if allEmpty {
				g.emptySet[p.Left] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	g.emptyValid = true
}

// IsEmptySymbol reports whether s can derive the empty string.
func (g *Grammar) IsEmptySymbol(s Symbol) bool {
	if !g.emptyValid {
		g.computeEmptySet()
	}
	return g.emptySet[s]
}

// computeFirstSets computes FIRST for every non-terminal by fixpoint:
// terminals contribute themselves, non-terminals contribute their own
// (possibly still-growing) FIRST set, and EPS propagates through a
// right-hand side only while every symbol consumed so far can derive empty.
func (g *Grammar) computeFirstSets() {
	if !g.emptyValid {
		g.computeEmptySet()
	}
	g.firstSets = map[Symbol]*collections.IntSet{}
	for nt := range g.nonTerms {
		g.firstSets[nt] = collections.NewIntSet()
	}

	for {
		changed := false
		for _, p := range g.productions {
			dest := g.firstSets[p.Left]
			before := dest.Len()
			epsStillFlowing := true
			for _, s := range p.Right {
				if !epsStillFlowing {
					break
				}
				if g.nonTerms[s] {
					for _, v := range g.firstSets[s].Sorted() {
						if v != int(EPS) {
							dest.Add(v)
						}
					}
				} else {
					dest.Add(int(s))
				}
				epsStillFlowing = g.nonTerms[s] && g.IsEmptySymbol(s)
			}
			if len(p.Right) == 0 || epsStillFlowing {
				dest.Add(int(EPS))
			}
			if dest.Len() != before {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	g.firstValid = true
}

// FirstSet returns FIRST(s) for a single symbol: {s} if s is terminal,
// else the computed set (which may contain EPS).
func (g *Grammar) FirstSet(s Symbol) *collections.IntSet {
	if g.nonTerms[s] {
		if !g.firstValid {
			g.computeFirstSets()
		}
		return g.firstSets[s].Clone()
	}
	return collections.NewIntSet(int(s))
}

// FirstSetOfSentence returns FIRST of an entire right-hand side: the union
// of each symbol's FIRST set until one is reached that cannot derive EPS;
// EPS remains in the result iff every symbol in the sentence can derive it.
func (g *Grammar) FirstSetOfSentence(sentence Sentence) *collections.IntSet {
	first := collections.NewIntSet(int(EPS))
	for _, s := range sentence {
		if !first.Contains(int(EPS)) {
			break
		}
		first.Remove(int(EPS))
		first.Union(g.FirstSet(s))
	}
	return first
}

// computeFollowSets computes FOLLOW for every non-terminal by fixpoint over
// every production's right-hand side, tracking the running FIRST of the
// remaining suffix.
func (g *Grammar) computeFollowSets() {
	if !g.firstValid {
		g.computeFirstSets()
	}
	g.followSets = map[Symbol]*collections.IntSet{}
	for nt := range g.nonTerms {
		g.followSets[nt] = collections.NewIntSet()
	}
	g.followSets[g.start].Add(int(g.end))

	for {
		changed := false
		for _, p := range g.productions {
			for i, s := range p.Right {
				if !g.nonTerms[s] {
					continue
				}
				before := g.followSets[s].Len()
				suffix := p.Right[i+1:]
				suffixFirst := g.FirstSetOfSentence(suffix)
				if suffixFirst.Contains(int(EPS)) {
					suffixFirst.Remove(int(EPS))
					suffixFirst.Union(g.followSets[p.Left])
				}
				g.followSets[s].Union(suffixFirst)
				if g.followSets[s].Len() != before {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	g.followValid = true
}

// FollowSet returns FOLLOW(s).
func (g *Grammar) FollowSet(s Symbol) *collections.IntSet {
	if !g.followValid {
		g.computeFollowSets()
	}
	return g.followSets[s].Clone()
}

// SelectSet computes the select set of a production left -> right: FIRST of
// right, with EPS (if present) replaced by FOLLOW(left).
func (g *Grammar) SelectSet(left Symbol, right Sentence) *collections.IntSet {
	symbols := g.FirstSetOfSentence(right)
	if symbols.Contains(int(EPS)) {
		symbols.Remove(int(EPS))
		symbols.Union(g.FollowSet(left))
	}
	return symbols
}

// Table is the LL(1) parsing table: for each non-terminal, the production
// to use on seeing each lookahead symbol.
type Table map[Symbol]map[Symbol]Sentence

// LLTable builds the LL(1) table by walking every production in the order
// productions were added and writing its select set into the table; a
// later production's entry overwrites an earlier one on a cell collision
// (last-writer-wins, the resolution adopted for ambiguous grammars).
func (g *Grammar) LLTable() Table {
	table := Table{}
	for _, p := range g.productions {
		row := table[p.Left]
		if row == nil {
			row = map[Symbol]Sentence{}
			table[p.Left] = row
		}
		for _, sym := range g.SelectSet(p.Left, p.Right).Sorted() {
			row[Symbol(sym)] = p.Right
		}
	}
	return table
}
