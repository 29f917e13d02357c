package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("history index out of range")
	ErrNoEngine    = errors.New("no expression engine")
	ErrNoTree      = errors.New("no expression evaluated yet")
)
