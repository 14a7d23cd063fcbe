package regex

import (
	"fmt"

	"github.com/emirpasic/gods/v2/stacks/arraystack"
	"github.com/minilang/frontend/automaton"
)

// Compile turns a regex source string into the NFA recognizing its
// language, via tokenize followed by a shunting-yard evaluation that
// assembles Thompson combinators over automaton.NFA.
func Compile(pattern string) (*automaton.NFA, error) {
	tokens := tokenize(pattern)

	operands := arraystack.New[*automaton.NFA]()
	operators := arraystack.New[byte]()
	// parenMarker marks stack slots pushed for '(' so popping past one
	// during an apply-loop is detectable; the operator stack only stores
	// bytes, so '(' is represented by 0xff, a byte value no real operator
	// ever uses.
	const parenMarker byte = 0xff

	apply := func(op byte) error {
		switch operandCount(op) {
		case 1:
			a, ok := operands.Pop()
			if !ok {
				return fmt.Errorf("regex: operator %q missing operand", op)
			}
			switch op {
			case '+':
				a.RefactorToRepetitive()
			case '?':
				a.RefactorToSkippable()
			case '*':
				a.RefactorToRepetitive()
				a.RefactorToSkippable()
			}
			operands.Push(a)
		default:
			b, ok1 := operands.Pop()
			a, ok2 := operands.Pop()
			if !ok1 || !ok2 {
				return fmt.Errorf("regex: operator %q missing operand", op)
			}
			switch op {
			case concatOp:
				a.Connect(b)
			case '|':
				a.MakeOriginBranch(b)
			}
			operands.Push(a)
		}
		return nil
	}

	for _, tok := range tokens {
		switch tok.k {
		case kindPlainString:
			operands.Push(stringAutomaton(tok.literal))
		case kindCharSelector:
			na, err := selectorAutomaton(tok.sel)
			if err != nil {
				return nil, err
			}
			operands.Push(na)
		case kindLeftBracket:
			operators.Push(parenMarker)
		case kindRightBracket:
			for {
				top, ok := operators.Peek()
				if !ok {
					return nil, fmt.Errorf("regex: unmatched ')'")
				}
				if top == parenMarker {
					operators.Pop()
					break
				}
				operators.Pop()
				if err := apply(top); err != nil {
					return nil, err
				}
			}
		case kindOperator:
			op := tok.op
			if operandCount(op) == 1 {
				if err := apply(op); err != nil {
					return nil, err
				}
				continue
			}
			for {
				top, ok := operators.Peek()
				if !ok || top == parenMarker || operatorPriority(top) < operatorPriority(op) {
					break
				}
				operators.Pop()
				if err := apply(top); err != nil {
					return nil, err
				}
			}
			operators.Push(op)
		}
	}

	for {
		top, ok := operators.Pop()
		if !ok {
			break
		}
		if top == parenMarker {
			return nil, fmt.Errorf("regex: unmatched '('")
		}
		if err := apply(top); err != nil {
			return nil, err
		}
	}

	result, ok := operands.Pop()
	if !ok {
		return nil, fmt.Errorf("regex: empty pattern")
	}
	if !operands.Empty() {
		return nil, fmt.Errorf("regex: leftover operands after evaluation")
	}
	return result, nil
}

// stringAutomaton builds the NFA that accepts exactly the literal byte
// sequence lit: a straight chain of single-byte transitions.
func stringAutomaton(lit string) *automaton.NFA {
	n := automaton.NewNFA()
	cur := n.StartState()
	for i := 0; i < len(lit); i++ {
		next := n.AddState()
		n.AddJump(cur, lit[i], next)
		cur = next
	}
	n.SetStopState(cur)
	return n
}

// selectorAutomaton builds the NFA that accepts any single byte matching
// the raw [...] interior sel: an optional leading '^' negates the whole
// class, escaped bytes are taken literally (an escaped '-' never starts a
// range), and an unescaped 'a-b' denotes an inclusive byte range whose
// endpoints may themselves be escaped.
func selectorAutomaton(sel string) (*automaton.NFA, error) {
	idx := 0
	negate := false
	if len(sel) > 0 && sel[0] == '^' {
		negate = true
		idx = 1
	}

	var singles []byte
	type byteRange struct{ lo, hi byte }
	var ranges []byteRange

	readAtom := func() (byte, error) {
		if idx >= len(sel) {
			return 0, fmt.Errorf("regex: truncated character selector")
		}
		if sel[idx] == '\\' {
			if idx+1 >= len(sel) {
				return 0, fmt.Errorf("regex: dangling escape in character selector")
			}
			b := sel[idx+1]
			idx += 2
			return b, nil
		}
		b := sel[idx]
		idx++
		return b, nil
	}

	for idx < len(sel) {
		lo, err := readAtom()
		if err != nil {
			return nil, err
		}
		if idx < len(sel) && sel[idx] == '-' && idx+1 < len(sel) {
			idx++ // consume the range dash
			hi, err := readAtom()
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, byteRange{lo, hi})
			continue
		}
		singles = append(singles, lo)
	}

	inSet := func(b byte) bool {
		for _, s := range singles {
			if s == b {
				return true
			}
		}
		for _, r := range ranges {
			if b >= r.lo && b <= r.hi {
				return true
			}
		}
		return false
	}

	n := automaton.NewNFA()
	stop := n.AddState()
	start := n.StartState()
	for b := 0; b < 256; b++ {
		if inSet(byte(b)) != negate {
			n.AddJump(start, byte(b), stop)
		}
	}
	n.SetStopState(stop)
	return n, nil
}
