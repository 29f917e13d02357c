package catalog

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/ardnew/xform/lang"
	"github.com/ardnew/xform/transform"
)

// Factory builds the transform for one operand.
type Factory func(ctx context.Context, call Call) (*transform.Node, error)

// Call is the invocation of an alias: its name, its arguments, and the
// means to evaluate them.
type Call struct {
	Name   string
	Args   []string
	Nested lang.Nested

	eval lang.Evaluator
}

// Float evaluates argument i as an arithmetic expression.
func (c Call) Float(ctx context.Context, i int) (float64, error) {
	if i < 0 || i >= len(c.Args) {
		return 0, ErrArgCount.With(slog.String("alias", c.Name), slog.Int("index", i))
	}

	f, err := c.eval.Evaluate(ctx, c.Args[i])
	if err != nil {
		return 0, ErrBadArg.With(slog.String("alias", c.Name), slog.String("arg", c.Args[i])).
			Wrap(err)
	}

	return f, nil
}

// Floats evaluates every argument.
func (c Call) Floats(ctx context.Context) ([]float64, error) {
	out := make([]float64, len(c.Args))

	for i := range c.Args {
		f, err := c.Float(ctx, i)
		if err != nil {
			return nil, err
		}

		out[i] = f
	}

	return out, nil
}

// Arity fails unless the call has between lo and hi arguments inclusive.
func (c Call) Arity(lo, hi int) error {
	if n := len(c.Args); n < lo || n > hi {
		return ErrArgCount.With(
			slog.String("alias", c.Name),
			slog.Int("got", n),
			slog.Int("min", lo),
			slog.Int("max", hi))
	}

	return nil
}

type entry struct {
	usage   string
	factory Factory
}

// Catalog maps alias names to transform factories. It is safe for
// concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]entry
	eval    lang.Evaluator
	version atomic.Uint64
}

// Option configures a [Catalog].
type Option func(*Catalog)

// WithEvaluator sets the evaluator for numeric arguments.
// Defaults to a [lang.ExprEvaluator].
func WithEvaluator(eval lang.Evaluator) Option {
	return func(c *Catalog) { c.eval = eval }
}

// New returns an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{entries: make(map[string]entry)}

	for _, opt := range opts {
		opt(c)
	}

	if c.eval == nil {
		c.eval = &lang.ExprEvaluator{}
	}

	return c
}

// Default returns a new catalog holding the built-in transforms.
func Default(opts ...Option) *Catalog {
	c := New(opts...)

	for _, b := range builtins {
		// builtin names are valid and distinct
		_ = c.Register(b.name, b.usage, b.factory)
	}

	return c
}

// Register adds an alias. Names must be a single word containing no
// expression syntax.
func (c *Catalog) Register(name, usage string, f Factory) error {
	if !validName(name) || f == nil {
		return ErrInvalidName.With(slog.String("alias", name))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[name]; ok {
		return ErrDuplicate.With(slog.String("alias", name))
	}

	c.entries[name] = entry{usage: usage, factory: f}
	c.version.Add(1)

	return nil
}

// Unregister removes an alias and reports whether it was present.
func (c *Catalog) Unregister(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[name]
	if ok {
		delete(c.entries, name)
		c.version.Add(1)
	}

	return ok
}

// Version implements [lang.Versioner]. It changes on every successful
// Register or Unregister.
func (c *Catalog) Version() uint64 { return c.version.Load() }

// HasAlias implements [lang.Registry].
func (c *Catalog) HasAlias(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.entries[name]

	return ok
}

// Aliases implements [lang.AliasLister]. The names are sorted.
func (c *Catalog) Aliases() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Usage returns the usage line registered for name.
func (c *Catalog) Usage(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[name]

	return e.usage, ok
}

// Resolve implements [lang.Registry].
func (c *Catalog) Resolve(
	ctx context.Context,
	name string,
	args []string,
	nested lang.Nested,
) (*transform.Node, error) {
	c.mu.RLock()
	e, ok := c.entries[name]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound.With(slog.String("alias", name))
	}

	return e.factory(ctx, Call{
		Name:   name,
		Args:   slices.Clone(args),
		Nested: nested,
		eval:   c.eval,
	})
}

func validName(name string) bool {
	if name == "" {
		return false
	}

	return !strings.ContainsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune("&,()[]", r)
	})
}
