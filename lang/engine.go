package lang

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/ardnew/xform/log"
	"github.com/ardnew/xform/transform"
)

// DefaultMaxDepth is the default limit on sub-expression nesting.
const DefaultMaxDepth = 64

// Engine builds transform trees from expression text.
//
// An Engine holds no per-call state; one value may build any number of
// expressions from any number of goroutines, provided its [Registry] and
// [Evaluator] allow it.
type Engine struct {
	registry Registry
	eval     Evaluator
	logger   log.Logger
	maxDepth int
	cache    *Cache
	scope    uint64 // cache key seed
}

// Option configures an [Engine].
type Option func(*Engine)

// WithEvaluator sets the evaluator for percent weights.
// Defaults to an [ExprEvaluator].
func WithEvaluator(e Evaluator) Option {
	return func(eng *Engine) {
		if e != nil {
			eng.eval = e
		}
	}
}

// WithMaxDepth sets the maximum sub-expression nesting depth.
func WithMaxDepth(depth int) Option {
	return func(eng *Engine) {
		eng.maxDepth = depth
	}
}

// WithCache memoizes built trees in c. Entries are keyed by the
// expression and the engine's registry, evaluator and depth limit, so a
// cache may be shared by differently configured engines. A registry that
// changes after the engine is built must implement [Versioner] for its
// changes to be seen.
func WithCache(c *Cache) Option {
	return func(eng *Engine) {
		eng.cache = c
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(eng *Engine) {
		eng.logger = logger
	}
}

// New returns an Engine resolving aliases through registry.
func New(registry Registry, opts ...Option) *Engine {
	eng := &Engine{
		registry: registry,
		eval:     new(ExprEvaluator),
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(eng)
	}

	eng.scope = scopeOf(eng)

	return eng
}

// Parse builds the transform tree described by input.
//
// Blank input is not an error: Parse returns a nil node and a nil error,
// meaning there is nothing to apply.
func (eng *Engine) Parse(ctx context.Context, input string) (*transform.Node, error) {
	if strings.TrimSpace(input) == "" {
		eng.logger.TraceContext(ctx, "empty expression")

		return nil, nil
	}

	if eng.cache != nil {
		return eng.cache.load(ctx, eng, input)
	}

	return eng.build(ctx, input, 0)
}

// build turns one (sub-)expression into a single node.
func (eng *Engine) build(
	ctx context.Context,
	input string,
	depth int,
) (*transform.Node, error) {
	if depth > eng.maxDepth {
		return nil, ErrMaxDepthExceeded.WithInput(input).
			With(slog.Int("max_depth", eng.maxDepth))
	}

	groups, err := Parse(input)
	if err != nil {
		return nil, err
	}

	eng.logger.TraceContext(ctx, "build expression",
		slog.String("input", input),
		slog.Int("depth", depth),
		slog.Int("groups", len(groups)))

	var (
		inter intersectionBuilder
		alt   alternationBuilder
	)

	for _, g := range groups {
		m, err := eng.resolve(ctx, g, depth)
		if err != nil {
			return nil, err
		}

		if g.Intersect {
			inter.add(m, true)

			continue
		}

		if err := inter.flush(&alt, input); err != nil {
			return nil, err
		}

		inter.add(m, false)
	}

	if err := inter.flush(&alt, input); err != nil {
		return nil, err
	}

	return alt.finish(input)
}

// resolve builds the node for one operand along with its weight.
func (eng *Engine) resolve(
	ctx context.Context,
	g Group,
	depth int,
) (transform.Member, error) {
	nested := func(ctx context.Context, sub string) (*transform.Node, error) {
		n, err := eng.build(ctx, sub, depth+1)
		if err != nil {
			return nil, wrapNested(g.Full, err)
		}

		return n, nil
	}

	// group made only of parenthesized content
	if g.Text == "" {
		n, err := nested(ctx, strings.Join(g.Args, ","))

		return transform.Member{Node: n, Weight: 1}, err
	}

	name, rest := g.Text, ""
	if i := strings.IndexFunc(g.Text, unicode.IsSpace); i >= 0 {
		name, rest = g.Text[:i], g.Text[i:]
	}

	if eng.registry != nil && eng.registry.HasAlias(name) {
		n, err := eng.resolveAlias(ctx, g, name, rest, nested)

		return transform.Member{Node: n, Weight: 1}, err
	}

	if i := strings.IndexByte(g.Text, '%'); i >= 0 {
		w, err := eng.evaluateWeight(ctx, g.Text[:i])
		if err != nil {
			return transform.Member{}, err
		}

		command := strings.TrimSpace(g.Text[i+1:])
		if len(g.Args) > 0 {
			command = strings.TrimSpace(command + " " + strings.Join(g.Args, " "))
		}

		eng.logger.TraceContext(ctx, "percent weight",
			slog.String("operand", g.Full),
			slog.Float64("weight", w),
			slog.String("command", command))

		n, err := nested(ctx, command)

		return transform.Member{Node: n, Weight: w}, err
	}

	return transform.Member{}, eng.unknown(g.Full, name)
}

func (eng *Engine) resolveAlias(
	ctx context.Context,
	g Group,
	name, rest string,
	nested Nested,
) (*transform.Node, error) {
	args := append(strings.Fields(rest), g.Args...)

	var nestedErr error

	trackNested := func(ctx context.Context, sub string) (*transform.Node, error) {
		n, err := nested(ctx, sub)
		if err != nil {
			nestedErr = err
		}

		return n, err
	}

	n, err := eng.registry.Resolve(ctx, name, args, trackNested)

	switch {
	case err != nil && nestedErr != nil:
		return nil, nestedErr

	case err != nil:
		return nil, ErrUnknownTransform.WithInput(g.Full).Wrap(err)

	case n == nil:
		return nil, ErrUnknownTransform.WithInput(g.Full).
			With(slog.String("issue", "registry returned no transform"))
	}

	eng.logger.TraceContext(ctx, "resolved alias",
		slog.String("name", name),
		slog.Any("args", args),
		slog.String("kind", n.Kind().String()))

	return n, nil
}

func (eng *Engine) unknown(full, name string) error {
	err := ErrUnknownTransform.WithInput(full)

	lister, ok := eng.registry.(AliasLister)
	if !ok {
		return err
	}

	if s := Suggest(name, lister.Aliases()); len(s) > 0 {
		return err.With(slog.Any("suggestions", s)).
			Wrap(&suggestion{aliases: s})
	}

	return err
}

// suggestion is the cause attached to an unknown transform when similar
// aliases exist.
type suggestion struct {
	aliases []string
}

func (s *suggestion) Error() string {
	return "did you mean " + strings.Join(s.aliases, ", ") + "?"
}
