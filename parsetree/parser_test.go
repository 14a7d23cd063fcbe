package parsetree

import (
	"testing"

	"github.com/minilang/frontend/grammar"
	"github.com/minilang/frontend/intern"
	"github.com/minilang/frontend/langspec"
	"github.com/minilang/frontend/lexer"
	"github.com/minilang/frontend/token"
)

func mustTokens(t *testing.T, src string) []token.Token {
	t.Helper()
	raw, errs := lexer.LexAll([]byte(src))
	if len(errs) != 0 {
		t.Fatalf("unexpected lexical errors for %q: %v", src, errs)
	}
	store := intern.NewStorage()
	toks := make([]token.Token, len(raw))
	for i, r := range raw {
		toks[i] = store.Push(r)
	}
	return toks
}

func TestParseFunctionWithEmptyParameterList(t *testing.T) {
	g := langspec.Grammar()
	toks := mustTokens(t, "fn main() -> int { return 0; }")
	tree, err := Parse(g, toks)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if tree.Symbol(tree.Root()) != langspec.PROGRAM {
		t.Fatalf("root symbol = %v, want PROGRAM", tree.Symbol(tree.Root()))
	}
}

func TestParseConsecutiveVarDecls(t *testing.T) {
	// At PROGRAM level a VARDEF is terminated by a comma, not a semicolon;
	// the semicolon form only exists inside a STMT.
	g := langspec.Grammar()
	toks := mustTokens(t, "int a, int b,")
	if _, err := Parse(g, toks); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
}

func TestParseIfElse(t *testing.T) {
	g := langspec.Grammar()
	toks := mustTokens(t, "fn main() -> int { if (a < b) { a = b; } else { b = a; } }")
	tree, err := Parse(g, toks)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !containsSymbol(tree, tree.Root(), langspec.IFSTMT) {
		t.Fatal("tree has no IFSTMT node")
	}
	if !hasPopulatedSymbol(tree, tree.Root(), langspec.ELSECLAUSE) {
		t.Fatal("tree has no populated ELSECLAUSE node (else branch was dropped)")
	}
}

func containsSymbol(tree *Tree, h Handle, want grammar.Symbol) bool {
	if tree.Symbol(h) == want {
		return true
	}
	for _, c := range tree.Children(h) {
		if containsSymbol(tree, c, want) {
			return true
		}
	}
	return false
}

// hasPopulatedSymbol reports whether a node with symbol want exists and
// reduced to a non-empty right-hand side (as opposed to merely existing as
// an epsilon-reduced placeholder).
func hasPopulatedSymbol(tree *Tree, h Handle, want grammar.Symbol) bool {
	if tree.Symbol(h) == want {
		return len(tree.Children(h)) > 0
	}
	for _, c := range tree.Children(h) {
		if hasPopulatedSymbol(tree, c, want) {
			return true
		}
	}
	return false
}

func TestParseRejectsMismatchedTerminal(t *testing.T) {
	g := langspec.Grammar()
	toks := mustTokens(t, "int a, int b")
	_, err := Parse(g, toks)
	if err == nil {
		t.Fatal("expected a parse error for a top-level var decl missing its comma")
	}
}

func TestParseNewlineIsTransparentToTheGrammar(t *testing.T) {
	g := langspec.Grammar()
	withNewlines := mustTokens(t, "fn main() -> int {\nint a;\n\nint b;\nreturn 0;\n}\n")
	withoutNewlines := mustTokens(t, "fn main() -> int { int a; int b; return 0; }")

	treeA, errA := Parse(g, withNewlines)
	if errA != nil {
		t.Fatalf("parse with newlines failed: %v", errA)
	}
	treeB, errB := Parse(g, withoutNewlines)
	if errB != nil {
		t.Fatalf("parse without newlines failed: %v", errB)
	}
	nameOf := func(s grammar.Symbol) string { return langspec.SymbolName(s) }
	if treeA.Serialize(nameOf) != treeB.Serialize(nameOf) {
		t.Fatal("newline-bearing and newline-free input produced different trees")
	}
}

func TestParseErrorReportsTokenInLineSinceLastNewline(t *testing.T) {
	// No newline separates "int b" from the missing-semicolon mismatch
	// itself, so the reset-on-skip from the earlier line doesn't interfere
	// with the count this test is checking.
	g := langspec.Grammar()
	toks := mustTokens(t, "fn main() -> int {\nint a;\nint b return 0; }")
	_, err := Parse(g, toks)
	if err == nil {
		t.Fatal("expected a parse error for the second decl missing its semicolon")
	}
	if err.TokenInLine != 2 {
		t.Fatalf("TokenInLine = %d, want 2 (INT, SYMBOL consumed since the newline)", err.TokenInLine)
	}
}
