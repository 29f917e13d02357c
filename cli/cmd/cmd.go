package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/xform/catalog"
	"github.com/ardnew/xform/lang"
	"github.com/ardnew/xform/log"
)

type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// EngineOptions are the global settings for building expressions.
type EngineOptions struct {
	MaxDepth int
}

type engineKey struct{}

// WithEngineOptions returns a new context.Context carrying opts for
// [newEngine].
func WithEngineOptions(ctx context.Context, opts EngineOptions) context.Context {
	return context.WithValue(ctx, engineKey{}, opts)
}

// newEngine returns an expression engine over the built-in catalog, using
// the options stored in ctx.
func newEngine(ctx context.Context) (*lang.Engine, *catalog.Catalog) {
	opts, _ := ctx.Value(engineKey{}).(EngineOptions)

	cat := catalog.Default()

	engOpts := []lang.Option{
		lang.WithCache(lang.NewCache()),
		lang.WithLogger(log.Default()),
	}

	if opts.MaxDepth > 0 {
		engOpts = append(engOpts, lang.WithMaxDepth(opts.MaxDepth))
	}

	eng := lang.New(cat, engOpts...)

	return eng, cat
}

// stdio is the special path naming standard input or output.
const stdio = "-"

// openInput opens path for reading, or returns stdin for "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == stdio {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}

// openOutput creates path for writing, or returns stdout for "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == stdio {
		return nopWriteCloser{os.Stdout}, nil
	}

	return os.Create(path)
}

// closeOutput closes w and records a failure in err unless err already
// holds one. Buffered writes to a file may only fail at Close.
func closeOutput(err *error, w io.Closer, path string) {
	if cerr := w.Close(); cerr != nil && *err == nil {
		*err = ErrWriteOutput.With(slog.String("file", path)).Wrap(cerr)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
