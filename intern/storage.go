// Package intern turns a raw token stream into the interned, indexable
// sequence the parser drives over: SYMBOL, NUMBER, and STRING lexemes are
// deduplicated into per-kind tables, every other token type is passed
// through unchanged, and NEWLINE/TOKEN_EOF are kept (not filtered) so the
// parser's own NEWLINE-skipping logic has something to skip.
package intern

import "github.com/minilang/frontend/token"

// table is an insertion-ordered string interner: the same lexeme always
// maps to the same index, and iteration order is insertion order.
type table struct {
	indexOf map[string]int
	values  []string
}

func newTable() *table {
	return &table{indexOf: map[string]int{}}
}

// intern returns lexeme's index, assigning a fresh one on first sight.
func (t *table) intern(lexeme string) int {
	if idx, ok := t.indexOf[lexeme]; ok {
		return idx
	}
	idx := len(t.values)
	t.indexOf[lexeme] = idx
	t.values = append(t.values, lexeme)
	return idx
}

// Get returns the lexeme stored at idx.
func (t *table) Get(idx int) string { return t.values[idx] }

// Len returns the number of distinct lexemes interned.
func (t *table) Len() int { return len(t.values) }

// Storage is the token storage / interner: an ordered token.Token sequence
// plus the three lexeme tables SYMBOL/NUMBER/STRING tokens were interned
// into.
type Storage struct {
	symbols *table
	numbers *table
	strings *table
	tokens  []token.Token
}

// NewStorage returns an empty token storage.
func NewStorage() *Storage {
	return &Storage{
		symbols: newTable(),
		numbers: newTable(),
		strings: newTable(),
	}
}

// Push interns raw (if its type carries a payload) and appends the
// resulting Token to the ordered sequence. NEWLINE and TOKEN_EOF tokens are
// appended like any other token type; nothing is filtered here.
func (s *Storage) Push(raw token.RawToken) token.Token {
	seman := token.NoSeman
	switch raw.Type {
	case token.SYMBOL:
		seman = s.symbols.intern(raw.Lexeme)
	case token.NUMBER:
		seman = s.numbers.intern(raw.Lexeme)
	case token.STRING:
		seman = s.strings.intern(raw.Lexeme)
	}
	tok := token.Token{Type: raw.Type, Seman: seman}
	s.tokens = append(s.tokens, tok)
	return tok
}

// Len returns the number of tokens in the ordered sequence.
func (s *Storage) Len() int { return len(s.tokens) }

// At returns the token at position i (0-indexed, insertion order).
func (s *Storage) At(i int) token.Token { return s.tokens[i] }

// Tokens returns the full ordered token sequence. Callers must not mutate
// the returned slice.
func (s *Storage) Tokens() []token.Token { return s.tokens }

// Symbol returns the identifier lexeme interned at idx.
func (s *Storage) Symbol(idx int) string { return s.symbols.Get(idx) }

// Number returns the numeric literal lexeme interned at idx.
func (s *Storage) Number(idx int) string { return s.numbers.Get(idx) }

// String returns the string literal lexeme interned at idx.
func (s *Storage) String(idx int) string { return s.strings.Get(idx) }

// SymbolCount, NumberCount, and StringCount report how many distinct
// lexemes were interned into each table.
func (s *Storage) SymbolCount() int { return s.symbols.Len() }
func (s *Storage) NumberCount() int { return s.numbers.Len() }
func (s *Storage) StringCount() int { return s.strings.Len() }
