package entity

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/xform/log"
	"github.com/ardnew/xform/transform"
	"github.com/ardnew/xform/vec"
)

// Copier copies entities into a destination space through a transform
// tree. Alternations in the tree are resolved once per entity.
//
// A Copier's own random source is not safe for concurrent use; call
// [Copier.Apply] and [Copier.Copy] from one goroutine, or use
// [Copier.CopyAll], which gives each worker its own source.
type Copier struct {
	dst      Space
	node     *transform.Node
	from, to vec.Vector3

	removing bool
	abort    bool
	combiner transform.Combiner
	seed     uint64
	rng      transform.Rand
	logger   log.Logger
}

// Option configures a [Copier].
type Option func(*Copier)

// WithRemoving removes each source entity after it is copied successfully.
func WithRemoving(remove bool) Option {
	return func(c *Copier) { c.removing = remove }
}

// WithAbortOnFailure makes [Copier.CopyAll] stop at the first entity that
// fails to copy. By default failures are counted and skipped.
func WithAbortOnFailure(abort bool) Option {
	return func(c *Copier) { c.abort = abort }
}

// WithCombiner sets how intersections blend their members.
// Defaults to [transform.Chain].
func WithCombiner(cb transform.Combiner) Option {
	return func(c *Copier) { c.combiner = cb }
}

// WithSeed seeds the copier's random sources, making alternation choices
// reproducible.
func WithSeed(seed uint64) Option {
	return func(c *Copier) {
		c.seed = seed
		c.rng = rand.New(rand.NewPCG(seed, 0))
	}
}

// WithRand sets the random source used by [Copier.Apply] and [Copier.Copy].
func WithRand(rng transform.Rand) Option {
	return func(c *Copier) { c.rng = rng }
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *Copier) { c.logger = logger }
}

// NewCopier returns a Copier that maps entities through node from the block
// at from to the block at to. A nil node copies entities unchanged.
func NewCopier(
	dst Space,
	node *transform.Node,
	from, to vec.Vector3,
	opts ...Option,
) *Copier {
	if node == nil {
		node = transform.Identity()
	}

	c := &Copier{
		dst:      dst,
		node:     node,
		from:     from,
		to:       to,
		combiner: transform.Chain,
		seed:     rand.Uint64(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(c.seed, 0))
	}

	return c
}

// Apply creates the transformed copy of e in the destination and reports
// whether the destination returned an entity. It never removes e.
func (c *Copier) Apply(ctx context.Context, e Entity) bool {
	return c.apply(ctx, e, c.rng)
}

// Copy applies e and, if the copy succeeded and removal is enabled,
// removes the source.
func (c *Copier) Copy(ctx context.Context, e Entity) bool {
	return c.copy(ctx, e, c.rng, nil)
}

func (c *Copier) apply(ctx context.Context, e Entity, rng transform.Rand) bool {
	st, ok := e.State()
	if !ok {
		c.logger.TraceContext(ctx, "entity has no state")

		return false
	}

	m := c.node.Pick(rng, c.combiner)
	loc, st := Transform(m, e.Location(), st, c.from, c.to)

	created := c.dst.CreateEntity(loc, st) != nil

	c.logger.TraceContext(ctx, "entity copied",
		slog.String("type", st.Type),
		slog.String("position", loc.Position.String()),
		slog.Bool("created", created))

	return created
}

func (c *Copier) copy(
	ctx context.Context,
	e Entity,
	rng transform.Rand,
	stats *statsCounter,
) bool {
	if !c.apply(ctx, e, rng) {
		stats.fail()

		return false
	}

	stats.copy()

	if c.removing {
		if e.Remove() {
			stats.remove()
		} else {
			c.logger.WarnContext(ctx, "failed to remove copied entity",
				slog.String("position", e.Location().Position.String()))
		}
	}

	return true
}

// Stats summarizes a batch copy.
type Stats struct {
	Copied  int
	Failed  int
	Removed int
}

type statsCounter struct {
	copied, failed, removed atomic.Int64
}

func (s *statsCounter) copy() {
	if s != nil {
		s.copied.Add(1)
	}
}

func (s *statsCounter) fail() {
	if s != nil {
		s.failed.Add(1)
	}
}

func (s *statsCounter) remove() {
	if s != nil {
		s.removed.Add(1)
	}
}

func (s *statsCounter) snapshot() Stats {
	return Stats{
		Copied:  int(s.copied.Load()),
		Failed:  int(s.failed.Load()),
		Removed: int(s.removed.Load()),
	}
}

// CopyAll copies entities using up to workers goroutines (at least one).
// Worker i draws from its own source seeded with (seed, i+1), so results
// are reproducible for a fixed seed and worker count only when workers is 1.
//
// With [WithAbortOnFailure], the first failure cancels the batch and is
// returned as [ErrCopyFailed]. Cancellation of ctx is returned as-is.
func (c *Copier) CopyAll(
	ctx context.Context,
	entities []Entity,
	workers int,
) (Stats, error) {
	workers = max(1, min(workers, len(entities)))

	var (
		stats statsCounter
		next  atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)

	for w := range workers {
		rng := rand.New(rand.NewPCG(c.seed, uint64(w)+1))

		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}

				i := int(next.Add(1)) - 1
				if i >= len(entities) {
					return nil
				}

				if !c.copy(gctx, entities[i], rng, &stats) && c.abort {
					return ErrCopyFailed.With(slog.Int("index", i))
				}
			}
		})
	}

	err := g.Wait()

	s := stats.snapshot()

	c.logger.DebugContext(ctx, "batch copy finished",
		slog.Int("entities", len(entities)),
		slog.Int("workers", workers),
		slog.Int("copied", s.Copied),
		slog.Int("failed", s.Failed),
		slog.Int("removed", s.Removed))

	return s, err
}
