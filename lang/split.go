package lang

import (
	"log/slog"
	"strings"
)

// Operator is the combinator that precedes a [Fragment].
type Operator int

const (
	// OpNone marks the first fragment of an expression.
	OpNone Operator = iota

	// OpIntersect marks a fragment preceded by '&'.
	OpIntersect

	// OpAlternate marks a fragment preceded by ','.
	OpAlternate
)

// String returns the operator's source character, or "" for [OpNone].
func (op Operator) String() string {
	switch op {
	case OpIntersect:
		return "&"
	case OpAlternate:
		return ","
	default:
		return ""
	}
}

// Fragment is one top-level piece of an expression.
type Fragment struct {
	Text   string   // Trimmed source text
	Op     Operator // Operator preceding the fragment
	Offset int      // Byte offset of the untrimmed fragment in the input
}

// Split breaks input at every top-level '&' and ','. Operators inside
// parentheses or square brackets stay in their fragment.
//
// Blank input yields no fragments and no error. A fragment left empty next
// to an operator is a [KindDanglingOperator] error, and a delimiter without
// its partner is a [KindUnbalancedGroup] error.
func Split(input string) ([]Fragment, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	var (
		frags []Fragment
		stack []byte // expected closing delimiters
		start int
		op    = OpNone
	)

	emit := func(end int, next Operator) {
		frags = append(frags, Fragment{
			Text:   strings.TrimSpace(input[start:end]),
			Op:     op,
			Offset: start,
		})
		start, op = end+1, next
	}

	for i := 0; i < len(input); i++ {
		switch ch := input[i]; ch {
		case '(':
			stack = append(stack, ')')
		case '[':
			stack = append(stack, ']')
		case ')', ']':
			if len(stack) == 0 || stack[len(stack)-1] != ch {
				return nil, ErrUnbalancedGroup.WithInput(input).
					With(slog.Int("offset", i), slog.String("delimiter", string(ch)))
			}

			stack = stack[:len(stack)-1]
		case '&', ',':
			if len(stack) == 0 {
				next := OpAlternate
				if ch == '&' {
					next = OpIntersect
				}

				emit(i, next)
			}
		}
	}

	if len(stack) > 0 {
		return nil, ErrUnbalancedGroup.WithInput(input).
			With(slog.String("expected", string(stack[len(stack)-1])))
	}

	emit(len(input), OpNone)

	for i, f := range frags {
		if f.Text != "" {
			continue
		}

		// The operator in front of an empty fragment has no right operand;
		// a leading empty fragment leaves the following operator without a
		// left operand.
		dangling := f.Op
		if i == 0 {
			dangling = frags[1].Op
		}

		return nil, ErrDanglingOperator.WithInput(input).
			With(slog.String("operator", dangling.String()), slog.Int("offset", f.Offset))
	}

	return frags, nil
}
