package cmd

import (
	"context"

	"github.com/ardnew/xform/cli/cmd/repl"
	"github.com/ardnew/xform/log"
)

// Repl starts an interactive expression session.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	cacheDir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok {
		panic("internal error: cache directory undefined")
	}

	eng, cat := newEngine(ctx)

	return repl.Run(ctx, eng, cat, cacheDir, log.Default())
}
