package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Kind classifies an expression [Error].
type Kind int

const (
	// KindUnbalancedGroup reports a bracket or parenthesis without a partner.
	KindUnbalancedGroup Kind = iota + 1

	// KindSyntax reports a fragment that cannot be structured.
	KindSyntax

	// KindUnknownTransform reports a head that is neither a registered alias
	// nor a percent-weighted command.
	KindUnknownTransform

	// KindDanglingOperator reports an operator with nothing to join.
	KindDanglingOperator

	// KindNoMatch reports an expression that yields no transform at all.
	KindNoMatch

	// KindEval reports a weight expression that fails to evaluate.
	KindEval

	// KindMaxDepth reports nesting beyond the configured limit.
	KindMaxDepth
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnbalancedGroup:
		return "UnbalancedGroup"
	case KindSyntax:
		return "Syntax"
	case KindUnknownTransform:
		return "UnknownTransform"
	case KindDanglingOperator:
		return "DanglingOperator"
	case KindNoMatch:
		return "NoMatch"
	case KindEval:
		return "Eval"
	case KindMaxDepth:
		return "MaxDepth"
	default:
		return "Unknown"
	}
}

// Predefined errors (sentinel values). Every [Error] matches the sentinel
// of its kind with [errors.Is].
var (
	ErrUnbalancedGroup  = NewError(KindUnbalancedGroup, "unbalanced group")
	ErrSyntax           = NewError(KindSyntax, "syntax error")
	ErrUnknownTransform = NewError(KindUnknownTransform, "unknown transform")
	ErrDanglingOperator = NewError(KindDanglingOperator, "dangling operator")
	ErrNoMatch          = NewError(KindNoMatch, "no transform matched")
	ErrEval             = NewError(KindEval, "weight evaluation failed")
	ErrMaxDepthExceeded = NewError(KindMaxDepth, "maximum nesting depth exceeded")
)

const nestedMessage = "invalid nested expression"

// Error is an expression error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind  Kind
	msg   string
	input string      // Offending expression text
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Kind returns the classification of e.
func (e *Error) Kind() Kind { return e.kind }

// Input returns the expression text e refers to, if any.
func (e *Error) Input() string { return e.input }

// Error implements the error interface.
func (e *Error) Error() string {
	// "<msg> <input>: <err>", omitting whichever parts are empty
	var sb strings.Builder

	sb.WriteString(e.msg)

	if e.input != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(strconv.Quote(e.input))
	}

	if e.err != nil {
		if sb.Len() > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(e.err.Error())
	}

	return sb.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.kind != 0 && t.kind == e.kind && t.input == "" && t.err == nil
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	attrs = append(attrs, slog.String("kind", e.kind.String()))

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.input != "" {
		attrs = append(attrs, slog.String("input", e.input))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// WithInput creates a new Error naming the offending expression text.
func (e *Error) WithInput(input string) *Error {
	c := *e
	c.input = input

	return &c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return &c
}

// wrapNested reports err, raised while building a sub-expression, as a
// failure of the outer input. The inner kind is kept so callers can still
// match it; any non-expression error is reported as a syntax error.
func wrapNested(input string, err error) error {
	var inner *Error
	if !errors.As(err, &inner) {
		return ErrSyntax.WithInput(input).Wrap(err)
	}

	// Re-wrapping at every level would repeat each enclosing expression;
	// report only the outermost input and the innermost cause.
	if inner.msg == nestedMessage && inner.err != nil {
		err = inner.err
	}

	return &Error{
		kind:  inner.kind,
		msg:   nestedMessage,
		input: input,
		err:   err,
	}
}
