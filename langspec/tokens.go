// Package langspec bundles one concrete language into the lexer and
// grammar engines: the ordered token-regex table for the composite DFA, and
// the LL(1) grammar productions for the predictive parser. Swapping in a
// different language means writing a different langspec, not touching the
// engines themselves.
package langspec

import (
	"github.com/minilang/frontend/grammar"
	"github.com/minilang/frontend/token"
)

// TokenRegex is the ordered composite lexer regex table: index is the
// token's type value, so earlier entries win smallest-mark ties. An empty
// string means the type has no regex and is never produced by scanning
// (TOKEN_EOF is appended directly by the lexer at end of input).
var TokenRegex = [token.Count]string{
	token.COMMENT:   `//[^` + "\r\n" + `]*|/\*([^*/]|\*[^/]|[^*]/)*\*/`,
	token.FN:        `fn`,
	token.IF:        `if`,
	token.ELSE:      `else`,
	token.FOR:       `for`,
	token.WHILE:     `while`,
	token.BREAK:     `break`,
	token.RETURN:    `return`,
	token.CONTINUE:  `continue`,
	token.FLOAT:     `float`,
	token.INT:       `int`,
	token.CHAR:      `char`,
	token.SYMBOL:    `[_a-zA-Z][_a-zA-Z0-9]*`,
	token.NUMBER:    `0|[1-9][0-9]*|(0|[1-9][0-9]*)?.[0-9]+([eE][-+]?[0-9]+)?`,
	token.OP_PLUS:   `\+`,
	token.OP_SUB:    `-`,
	token.OP_MUL:    `\*`,
	token.OP_DIV:    `/`,
	token.OP_MOD:    `%`,
	token.OP_GT:     `>`,
	token.OP_GE:     `>=`,
	token.OP_LT:     `<`,
	token.OP_LE:     `<=`,
	token.OP_NEQ:    `!=`,
	token.OP_EQU:    `==`,
	token.OP_NOT:    `!`,
	token.OP_AND:    `&&`,
	token.OP_OR:     `\|\|`,
	token.COMMA:     `,`,
	token.ASSIGN:    `=`,
	token.LMBRACKET: `\[`,
	token.RMBRACKET: `\]`,
	token.LSBRACKET: `\(`,
	token.RSBRACKET: `\)`,
	token.LLBRACKET: `\{`,
	token.RLBRACKET: `\}`,
	token.SEMICOLON: `;`,
	token.DOT:       `\.`,
	token.NEWLINE:   "\r|\n|\r\n",
	token.TOKEN_EOF: ``,
	token.STRING:    `""|"([^"` + "\r\n" + `]|\\")*[^\\]"`,
	token.ARROW:     `->`,
}

// Non-terminal symbol numbers, allocated above the terminal range
// (0..255, which terminal symbols borrow from token.Type's values).
const (
	LITERAL grammar.Symbol = 256 + iota
	SINGLE_EXPR
	L5_EXPR
	L4_EXPR_P
	L4_EXPR
	L3_EXPR_P
	L3_EXPR
	L2_EXPR_P
	L2_EXPR
	L1_EXPR_P
	L1_EXPR
	EXPR
	SYM_OR_FCAL
	ARGS_E
	COMMA_SEP_E
	COMMA_SEP
	COMMA_SEP_P
	VARDEF
	STMT
	STMTS
	IFSTMT
	ELSECLAUSE
	WHILESTMT
	FNDEF
	VIRTVARDEFS
	VIRTVARDEFS_P
	PROGRAM_PART
	PROGRAM
	UNARY_OP
	BI_OP4
	BI_OP3
	BI_OP2
	BI_OP1
	TYPE
)

// SymbolNames maps every non-terminal symbol number to its name, for
// diagnostics and tree serialization.
var SymbolNames = map[grammar.Symbol]string{
	LITERAL:       "LITERAL",
	SINGLE_EXPR:   "SINGLE_EXPR",
	L5_EXPR:       "L5_EXPR",
	L4_EXPR_P:     "L4_EXPR_P",
	L4_EXPR:       "L4_EXPR",
	L3_EXPR_P:     "L3_EXPR_P",
	L3_EXPR:       "L3_EXPR",
	L2_EXPR_P:     "L2_EXPR_P",
	L2_EXPR:       "L2_EXPR",
	L1_EXPR_P:     "L1_EXPR_P",
	L1_EXPR:       "L1_EXPR",
	EXPR:          "EXPR",
	SYM_OR_FCAL:   "SYM_OR_FCAL",
	ARGS_E:        "ARGS_E",
	COMMA_SEP_E:   "COMMA_SEP_E",
	COMMA_SEP:     "COMMA_SEP",
	COMMA_SEP_P:   "COMMA_SEP_P",
	VARDEF:        "VARDEF",
	STMT:          "STMT",
	STMTS:         "STMTS",
	IFSTMT:        "IFSTMT",
	ELSECLAUSE:    "ELSECLAUSE",
	WHILESTMT:     "WHILESTMT",
	FNDEF:         "FNDEF",
	VIRTVARDEFS:   "VIRTVARDEFS",
	VIRTVARDEFS_P: "VIRTVARDEFS_P",
	PROGRAM_PART:  "PROGRAM_PART",
	PROGRAM:       "PROGRAM",
	UNARY_OP:      "UNARY_OP",
	BI_OP4:        "BI_OP4",
	BI_OP3:        "BI_OP3",
	BI_OP2:        "BI_OP2",
	BI_OP1:        "BI_OP1",
	TYPE:          "TYPE",
}

// SymbolName returns a terminal's token.Type name or a non-terminal's name
// from SymbolNames, falling back to "SYMBOL_UNKNOWN".
func SymbolName(s grammar.Symbol) string {
	if s == grammar.EPS {
		return "EPS"
	}
	if s >= 0 && int(s) < token.Count {
		return token.Type(s).String()
	}
	if name, ok := SymbolNames[s]; ok {
		return name
	}
	return "SYMBOL_UNKNOWN"
}

func t(tt token.Type) grammar.Symbol { return grammar.Symbol(tt) }

// Grammar builds the full LL(1) grammar for the FN/ARROW-bearing language
// variant: function definitions, typed variable declarations, the
// five-precedence-level binary-expression ladder, if/while control flow,
// and call expressions with comma-separated arguments.
func Grammar() *grammar.Grammar {
	g := grammar.NewWithEnd(PROGRAM, grammar.Symbol(token.TOKEN_EOF))

	g.AddProduction(LITERAL, grammar.Sentence{t(token.NUMBER)})
	g.AddProduction(LITERAL, grammar.Sentence{t(token.STRING)})

	g.AddProduction(UNARY_OP, grammar.Sentence{t(token.OP_NOT)})
	g.AddProduction(UNARY_OP, grammar.Sentence{t(token.OP_SUB)})
	g.AddProduction(UNARY_OP, grammar.Sentence{t(token.OP_PLUS)})

	g.AddProduction(BI_OP4, grammar.Sentence{t(token.OP_MUL)})
	g.AddProduction(BI_OP4, grammar.Sentence{t(token.OP_DIV)})
	g.AddProduction(BI_OP4, grammar.Sentence{t(token.OP_MOD)})

	g.AddProduction(BI_OP3, grammar.Sentence{t(token.OP_PLUS)})
	g.AddProduction(BI_OP3, grammar.Sentence{t(token.OP_SUB)})

	g.AddProduction(BI_OP2, grammar.Sentence{t(token.OP_GT)})
	g.AddProduction(BI_OP2, grammar.Sentence{t(token.OP_GE)})
	g.AddProduction(BI_OP2, grammar.Sentence{t(token.OP_LT)})
	g.AddProduction(BI_OP2, grammar.Sentence{t(token.OP_LE)})
	g.AddProduction(BI_OP2, grammar.Sentence{t(token.OP_NEQ)})
	g.AddProduction(BI_OP2, grammar.Sentence{t(token.OP_EQU)})

	g.AddProduction(BI_OP1, grammar.Sentence{t(token.OP_AND)})
	g.AddProduction(BI_OP1, grammar.Sentence{t(token.OP_OR)})

	g.AddProduction(TYPE, grammar.Sentence{t(token.INT)})
	g.AddProduction(TYPE, grammar.Sentence{t(token.FLOAT)})
	g.AddProduction(TYPE, grammar.Sentence{t(token.CHAR)})

	g.AddProduction(SINGLE_EXPR, grammar.Sentence{LITERAL})
	g.AddProduction(SINGLE_EXPR, grammar.Sentence{SYM_OR_FCAL})
	g.AddProduction(SINGLE_EXPR, grammar.Sentence{t(token.LSBRACKET), EXPR, t(token.RSBRACKET)})

	g.AddProduction(L5_EXPR, grammar.Sentence{SINGLE_EXPR})
	g.AddProduction(L5_EXPR, grammar.Sentence{UNARY_OP, SINGLE_EXPR})

	g.AddProduction(L4_EXPR_P, grammar.Sentence{})
	g.AddProduction(L4_EXPR_P, grammar.Sentence{BI_OP4, L4_EXPR})
	g.AddProduction(L4_EXPR, grammar.Sentence{L5_EXPR, L4_EXPR_P})

	g.AddProduction(L3_EXPR_P, grammar.Sentence{})
	g.AddProduction(L3_EXPR_P, grammar.Sentence{BI_OP3, L3_EXPR})
	g.AddProduction(L3_EXPR, grammar.Sentence{L4_EXPR, L3_EXPR_P})

	g.AddProduction(L2_EXPR_P, grammar.Sentence{})
	g.AddProduction(L2_EXPR_P, grammar.Sentence{BI_OP2, L2_EXPR})
	g.AddProduction(L2_EXPR, grammar.Sentence{L3_EXPR, L2_EXPR_P})

	g.AddProduction(L1_EXPR_P, grammar.Sentence{})
	g.AddProduction(L1_EXPR_P, grammar.Sentence{BI_OP1, L1_EXPR})
	g.AddProduction(L1_EXPR, grammar.Sentence{L2_EXPR, L1_EXPR_P})

	g.AddProduction(EXPR, grammar.Sentence{L1_EXPR})

	g.AddProduction(SYM_OR_FCAL, grammar.Sentence{t(token.SYMBOL), ARGS_E})

	g.AddProduction(ARGS_E, grammar.Sentence{})
	g.AddProduction(ARGS_E, grammar.Sentence{t(token.LSBRACKET), COMMA_SEP_E, t(token.RSBRACKET)})

	g.AddProduction(COMMA_SEP_E, grammar.Sentence{})
	g.AddProduction(COMMA_SEP_E, grammar.Sentence{COMMA_SEP})

	g.AddProduction(COMMA_SEP, grammar.Sentence{EXPR, COMMA_SEP_P})

	g.AddProduction(COMMA_SEP_P, grammar.Sentence{})
	g.AddProduction(COMMA_SEP_P, grammar.Sentence{t(token.COMMA), COMMA_SEP})

	g.AddProduction(VARDEF, grammar.Sentence{TYPE, t(token.SYMBOL)})

	g.AddProduction(STMT, grammar.Sentence{VARDEF, t(token.SEMICOLON)})
	g.AddProduction(STMT, grammar.Sentence{t(token.SYMBOL), t(token.ASSIGN), EXPR, t(token.SEMICOLON)})
	g.AddProduction(STMT, grammar.Sentence{t(token.LLBRACKET), STMTS, t(token.RLBRACKET)})
	g.AddProduction(STMT, grammar.Sentence{IFSTMT})
	g.AddProduction(STMT, grammar.Sentence{WHILESTMT})
	g.AddProduction(STMT, grammar.Sentence{t(token.RETURN), EXPR, t(token.SEMICOLON)})
	g.AddProduction(STMT, grammar.Sentence{t(token.BREAK), t(token.SEMICOLON)})
	g.AddProduction(STMT, grammar.Sentence{t(token.CONTINUE), t(token.SEMICOLON)})

	g.AddProduction(STMTS, grammar.Sentence{})
	g.AddProduction(STMTS, grammar.Sentence{STMT, STMTS})

	g.AddProduction(IFSTMT, grammar.Sentence{t(token.IF), t(token.LSBRACKET), EXPR, t(token.RSBRACKET), STMT, ELSECLAUSE})
	g.AddProduction(ELSECLAUSE, grammar.Sentence{})
	g.AddProduction(ELSECLAUSE, grammar.Sentence{t(token.ELSE), STMT})

	g.AddProduction(WHILESTMT, grammar.Sentence{t(token.WHILE), t(token.LSBRACKET), EXPR, t(token.RSBRACKET), STMT})

	g.AddProduction(FNDEF, grammar.Sentence{
		t(token.FN), t(token.SYMBOL), t(token.LSBRACKET), VIRTVARDEFS, t(token.RSBRACKET),
		t(token.ARROW), TYPE, STMT,
	})
	// VIRTVARDEFS is nullable (unlike the source grammar it is transcribed
	// from) so that an empty parameter list, e.g. "fn main() -> int {...}",
	// parses instead of failing on the immediate RSBRACKET.
	g.AddProduction(VIRTVARDEFS, grammar.Sentence{})
	g.AddProduction(VIRTVARDEFS, grammar.Sentence{VARDEF, VIRTVARDEFS_P})
	g.AddProduction(VIRTVARDEFS_P, grammar.Sentence{})
	g.AddProduction(VIRTVARDEFS_P, grammar.Sentence{t(token.COMMA), VIRTVARDEFS})

	g.AddProduction(PROGRAM_PART, grammar.Sentence{VARDEF, t(token.COMMA)})
	g.AddProduction(PROGRAM_PART, grammar.Sentence{FNDEF})
	g.AddProduction(PROGRAM, grammar.Sentence{})
	g.AddProduction(PROGRAM, grammar.Sentence{PROGRAM_PART, PROGRAM})

	return g
}
