package regex

// tokenize performs the single forward scan described in spec §4.3,
// producing the five-variant token stream with implicit concatenation and
// literal-run splitting already resolved.
func tokenize(s string) []regexToken {
	var tokens []regexToken
	var literal []byte
	lastClosing := false

	flushLiteral := func() {
		if len(literal) > 0 {
			tokens = append(tokens, regexToken{k: kindPlainString, literal: string(literal)})
			literal = nil
			lastClosing = true
		}
	}
	emitConcatIfNeeded := func() {
		if lastClosing {
			tokens = append(tokens, regexToken{k: kindOperator, op: concatOp})
			lastClosing = false
		}
	}
	// appendAtomByte handles one literal byte (possibly the result of an
	// escape). lookaheadPos is the index, in s, of the byte immediately
	// following this atom — used to decide whether to split the pending
	// literal run so this byte becomes its own single-byte operand of an
	// upcoming postfix operator.
	appendAtomByte := func(b byte, s string, lookaheadPos int) {
		if len(literal) == 0 {
			emitConcatIfNeeded()
		}
		if len(literal) > 0 && lookaheadPos < len(s) &&
			isOperatorByte(s[lookaheadPos]) && operatorPriority(s[lookaheadPos]) > priorityConcat {
			flushLiteral()
			tokens = append(tokens, regexToken{k: kindOperator, op: concatOp})
			tokens = append(tokens, regexToken{k: kindPlainString, literal: string(b)})
			lastClosing = true
			return
		}
		literal = append(literal, b)
	}

	i, n := 0, len(s)
	for i < n {
		c := s[i]
		switch {
		case c == '\\' && i+1 < n:
			appendAtomByte(s[i+1], s, i+2)
			i += 2
		case c == '(':
			flushLiteral()
			emitConcatIfNeeded()
			tokens = append(tokens, regexToken{k: kindLeftBracket})
			lastClosing = false
			i++
		case c == ')':
			flushLiteral()
			tokens = append(tokens, regexToken{k: kindRightBracket})
			lastClosing = true
			i++
		case c == '|':
			flushLiteral()
			tokens = append(tokens, regexToken{k: kindOperator, op: '|'})
			lastClosing = false
			i++
		case c == '+' || c == '?' || c == '*':
			flushLiteral()
			tokens = append(tokens, regexToken{k: kindOperator, op: c})
			lastClosing = true
			i++
		case c == '[':
			flushLiteral()
			emitConcatIfNeeded()
			j := i + 1
			for j < n {
				if s[j] == '\\' && j+1 < n {
					j += 2
					continue
				}
				if s[j] == ']' {
					break
				}
				j++
			}
			tokens = append(tokens, regexToken{k: kindCharSelector, sel: s[i+1 : j]})
			lastClosing = true
			i = j + 1
		default:
			appendAtomByte(c, s, i+1)
			i++
		}
	}
	flushLiteral()
	return tokens
}
