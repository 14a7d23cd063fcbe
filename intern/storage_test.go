package intern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minilang/frontend/token"
)

func TestPushInternsSymbolsByLexeme(t *testing.T) {
	s := NewStorage()
	a := s.Push(token.RawToken{Type: token.SYMBOL, Lexeme: "foo"})
	b := s.Push(token.RawToken{Type: token.SYMBOL, Lexeme: "bar"})
	c := s.Push(token.RawToken{Type: token.SYMBOL, Lexeme: "foo"})

	if a.Seman == b.Seman {
		t.Fatal("distinct lexemes got the same seman")
	}
	if a.Seman != c.Seman {
		t.Fatal("repeated lexeme got a different seman")
	}
	if s.SymbolCount() != 2 {
		t.Fatalf("SymbolCount() = %d, want 2", s.SymbolCount())
	}
}

func TestPushNonPayloadTokenHasNoSeman(t *testing.T) {
	s := NewStorage()
	tok := s.Push(token.RawToken{Type: token.SEMICOLON, Lexeme: ";"})
	if tok.Seman != token.NoSeman {
		t.Fatalf("Seman = %d, want %d", tok.Seman, token.NoSeman)
	}
}

func TestPushKeepsNewlineAndEOF(t *testing.T) {
	s := NewStorage()
	s.Push(token.RawToken{Type: token.SYMBOL, Lexeme: "a"})
	s.Push(token.RawToken{Type: token.NEWLINE, Lexeme: "\n"})
	s.Push(token.RawToken{Type: token.TOKEN_EOF})

	require.Equal(t, []token.Token{
		{Type: token.SYMBOL, Seman: 0},
		{Type: token.NEWLINE, Seman: token.NoSeman},
		{Type: token.TOKEN_EOF, Seman: token.NoSeman},
	}, s.Tokens(), "NEWLINE and TOKEN_EOF must not be filtered")
}

func TestSerializeProducesThreeTables(t *testing.T) {
	s := NewStorage()
	s.Push(token.RawToken{Type: token.SYMBOL, Lexeme: "x"})
	s.Push(token.RawToken{Type: token.NUMBER, Lexeme: "1"})
	s.Push(token.RawToken{Type: token.STRING, Lexeme: `"hi"`})

	out := s.Serialize()
	for _, want := range []string{"Tokens >", "Symbols >", "Numbers >", "Strings >"} {
		if !strings.Contains(out, want) {
			t.Fatalf("serialized output missing section %q:\n%s", want, out)
		}
	}
}
