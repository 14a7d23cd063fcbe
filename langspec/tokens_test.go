package langspec

import (
	"testing"

	"github.com/minilang/frontend/grammar"
	"github.com/minilang/frontend/token"
)

func TestTokenRegexTableCoversEveryMatchedType(t *testing.T) {
	for tt := 0; tt < token.Count; tt++ {
		tp := token.Type(tt)
		if tp == token.TOKEN_EOF {
			if TokenRegex[tt] != "" {
				t.Fatalf("TOKEN_EOF should have no regex, got %q", TokenRegex[tt])
			}
			continue
		}
		if TokenRegex[tt] == "" {
			t.Fatalf("token type %s has no regex entry", tp)
		}
	}
}

func TestGrammarEmptyParameterListParses(t *testing.T) {
	g := Grammar()
	table := g.LLTable()
	row, ok := table[VIRTVARDEFS]
	if !ok {
		t.Fatal("no LL(1) row for VIRTVARDEFS")
	}
	if _, ok := row[grammar.Symbol(token.RSBRACKET)]; !ok {
		t.Fatal("VIRTVARDEFS has no entry on RSBRACKET lookahead, empty parameter lists would fail to parse")
	}
}

func TestGrammarTerminatesOnTokenEOF(t *testing.T) {
	g := Grammar()
	table := g.LLTable()
	row, ok := table[PROGRAM]
	if !ok {
		t.Fatal("no LL(1) row for PROGRAM")
	}
	rhs, ok := row[grammar.Symbol(token.TOKEN_EOF)]
	if !ok {
		t.Fatal("PROGRAM has no entry on TOKEN_EOF lookahead, parsing would fail at end of input")
	}
	if len(rhs) != 0 {
		t.Fatalf("PROGRAM on TOKEN_EOF should reduce to epsilon, got %v", rhs)
	}
}

func TestGrammarStartSymbolIsProgram(t *testing.T) {
	g := Grammar()
	if g.Start() != PROGRAM {
		t.Fatalf("grammar start = %v, want PROGRAM", g.Start())
	}
}

func TestSymbolNameRoundTrip(t *testing.T) {
	if SymbolName(grammar.Symbol(token.IF)) != "IF" {
		t.Fatalf("SymbolName(IF) = %q", SymbolName(grammar.Symbol(token.IF)))
	}
	if SymbolName(FNDEF) != "FNDEF" {
		t.Fatalf("SymbolName(FNDEF) = %q", SymbolName(FNDEF))
	}
	if SymbolName(grammar.EPS) != "EPS" {
		t.Fatalf("SymbolName(EPS) = %q", SymbolName(grammar.EPS))
	}
}
