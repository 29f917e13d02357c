package lang

import (
	"context"

	"github.com/ardnew/xform/transform"
)

// Nested builds a sub-expression one level deeper than the caller. The
// builder hands it to [Registry.Resolve] so that leaf transforms can take
// whole expressions as arguments.
type Nested func(ctx context.Context, input string) (*transform.Node, error)

// Registry resolves alias names into transform nodes.
type Registry interface {
	// HasAlias reports whether name is a registered alias.
	HasAlias(name string) bool

	// Resolve builds the transform for name with args. Errors returned by
	// nested are passed through unchanged; any other error makes the
	// operand an unknown transform.
	Resolve(ctx context.Context, name string, args []string, nested Nested) (*transform.Node, error)
}

// AliasLister is implemented by registries that can enumerate their
// aliases. Unknown-transform errors then carry suggestions.
type AliasLister interface {
	Aliases() []string
}

// Versioner is implemented by registries whose aliases can change after an
// engine is built. Version must change whenever an alias is added or
// removed; cached trees built under another version are not reused.
type Versioner interface {
	Version() uint64
}
