package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// A tiny classic grammar: E -> T E' ; E' -> + T E' | eps ; T -> id
const (
	symPlus Symbol = 1
	symID   Symbol = 2

	symE  Symbol = 256
	symEp Symbol = 257
	symT  Symbol = 258
)

func buildExprGrammar() *Grammar {
	g := New(symE)
	g.AddProduction(symE, Sentence{symT, symEp})
	g.AddProduction(symEp, Sentence{symPlus, symT, symEp})
	g.AddProduction(symEp, Sentence{})
	g.AddProduction(symT, Sentence{symID})
	return g
}

func TestEmptySymbol(t *testing.T) {
	g := buildExprGrammar()
	if !g.IsEmptySymbol(symEp) {
		t.Fatal("E' should derive empty")
	}
	if g.IsEmptySymbol(symE) {
		t.Fatal("E should not derive empty")
	}
}

func TestFirstSets(t *testing.T) {
	g := buildExprGrammar()
	require.ElementsMatch(t, []int{int(symID)}, g.FirstSet(symE).Sorted())
	require.ElementsMatch(t, []int{int(symPlus), int(EPS)}, g.FirstSet(symEp).Sorted())
}

func TestFollowSets(t *testing.T) {
	g := buildExprGrammar()
	require.Equal(t, []int{int(EPS)}, g.FollowSet(symEp).Sorted(), "FOLLOW(E') should be {EPS}: E' ends E's right-hand side and E is the start symbol")
	require.Contains(t, g.FollowSet(symT).Sorted(), int(symPlus))
}

func TestLLTableNoConflicts(t *testing.T) {
	g := buildExprGrammar()
	tbl := g.LLTable()
	if len(tbl[symEp]) != 2 {
		t.Fatalf("E' row has %d entries, want 2 (+ and FOLLOW(E'))", len(tbl[symEp]))
	}
}

func TestDuplicateProductionRejected(t *testing.T) {
	g := New(symE)
	g.AddProduction(symE, Sentence{symT})
	g.AddProduction(symE, Sentence{symT})
	if len(g.ProductionsFor(symE)) != 1 {
		t.Fatalf("duplicate right-hand side was not rejected: %v", g.ProductionsFor(symE))
	}
}

func TestLLTableLastWriterWins(t *testing.T) {
	g := New(symE)
	g.AddProduction(symE, Sentence{symID})
	g.AddProduction(symE, Sentence{symID, symPlus})
	tbl := g.LLTable()
	require.Equal(t, Sentence{symID, symPlus}, tbl[symE][symID])
}
