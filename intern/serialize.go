package intern

import (
	"strconv"
	"strings"
)

// padTo pads s with spaces until it reaches at least width columns.
func padTo(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Serialize renders the fixed-column text dump: the token list (numeric
// type, type name, and seman, or '^' when the token carries no payload),
// then the symbol table, the number-literal table, and the string-literal
// table, each as an index/value listing.
func (s *Storage) Serialize() string {
	var b strings.Builder

	b.WriteString("Tokens >--------------------\n")
	b.WriteString("Type            Seman\n")
	for _, tok := range s.tokens {
		line := padTo(strconv.Itoa(int(tok.Type)), 2)
		line = padTo(line+"("+tok.Type.String()+")", 16)
		if tok.Seman == -1 {
			line += "^"
		} else {
			line += strconv.Itoa(tok.Seman)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	writeLiteralTable := func(title string, t *table) {
		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString("Index  Value\n")
		for i, v := range t.values {
			line := padTo(strconv.Itoa(i), 7)
			b.WriteString(line)
			b.WriteString(v)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	writeLiteralTable("Symbols >-------------------", s.symbols)
	writeLiteralTable("Numbers >-------------------", s.numbers)
	writeLiteralTable("Strings >-------------------", s.strings)

	return b.String()
}
