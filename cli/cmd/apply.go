package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/xform/entity"
	"github.com/ardnew/xform/log"
	"github.com/ardnew/xform/vec"
)

// Apply copies the entities in a YAML file through an expression.
type Apply struct {
	Source  string `default:"-"                help:"Entity records (YAML) or '-' for stdin."   short:"s" type:"path"`
	Output  string `default:"-"                help:"Output file or '-' for stdout."            short:"o" type:"path"`
	From    string `default:"0,0,0"            help:"Block the transform pivots about."                            placeholder:"X,Y,Z"`
	To      string `default:"0,0,0"            help:"Block the pivot is copied to."                                placeholder:"X,Y,Z"`
	Seed    uint64 `                           help:"Seed for weighted choices; 0 picks one at random."`
	Workers int    `default:"${workers}"       help:"Number of concurrent workers."             short:"w"`
	Remove  bool   `                           help:"Remove each source entity once copied (move instead of copy)."`
	Abort   bool   `                           help:"Stop at the first entity that fails to copy."`

	Expr string `arg:"" help:"Transform expression." name:"expr"`
}

// WorkersIdentifier is the kong variable holding the default worker count.
const WorkersIdentifier = "workers"

// Run executes the apply command.
func (a *Apply) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	from, err := vec.ParseVector3(a.From)
	if err != nil {
		return ErrBadVector.With(slog.String("flag", "from")).Wrap(err)
	}

	to, err := vec.ParseVector3(a.To)
	if err != nil {
		return ErrBadVector.With(slog.String("flag", "to")).Wrap(err)
	}

	eng, _ := newEngine(ctx)

	node, err := eng.Parse(ctx, a.Expr)
	if err != nil {
		return ErrParseExpr.With(slog.String("expr", a.Expr)).Wrap(err)
	}

	recs, err := a.read(ctx)
	if err != nil {
		return err
	}

	src, dst := entity.NewMemory(nil), entity.NewMemory(nil)

	opts := []entity.Option{
		entity.WithRemoving(a.Remove),
		entity.WithAbortOnFailure(a.Abort),
		entity.WithLogger(log.Default()),
	}

	if a.Seed != 0 {
		opts = append(opts, entity.WithSeed(a.Seed))
	}

	stats, err := entity.NewCopier(dst, node, from, to, opts...).
		CopyAll(ctx, entity.Load(src, recs), a.Workers)
	if err != nil {
		return ErrCopy.With(slog.Int("copied", stats.Copied)).Wrap(err)
	}

	log.InfoContext(ctx, "entities copied",
		slog.Int("copied", stats.Copied),
		slog.Int("failed", stats.Failed),
		slog.Int("removed", stats.Removed))

	// sources that were not moved stay in the world alongside the copies
	out := append(snapshot(src.Entities()), snapshot(dst.Entities())...)

	return a.write(ctx, out)
}

func (a *Apply) read(ctx context.Context) ([]entity.Record, error) {
	r, err := openInput(a.Source)
	if err != nil {
		return nil, ErrReadInput.With(slog.String("file", a.Source)).Wrap(err)
	}
	defer r.Close()

	recs, err := entity.ReadRecords(ctx, r)
	if err != nil {
		return nil, ErrReadInput.With(slog.String("file", a.Source)).Wrap(err)
	}

	log.DebugContext(ctx, "entities loaded",
		slog.String("file", a.Source),
		slog.Int("count", len(recs)))

	return recs, nil
}

func (a *Apply) write(ctx context.Context, recs []entity.Record) (err error) {
	w, err := openOutput(a.Output)
	if err != nil {
		return ErrWriteOutput.With(slog.String("file", a.Output)).Wrap(err)
	}
	defer closeOutput(&err, w, a.Output)

	if err := entity.WriteRecords(ctx, w, recs); err != nil {
		return ErrWriteOutput.With(slog.String("file", a.Output)).Wrap(err)
	}

	return nil
}

func snapshot(entities []entity.Entity) []entity.Record {
	out := make([]entity.Record, 0, len(entities))

	for _, e := range entities {
		if r, ok := entity.Snapshot(e); ok {
			out = append(out, r)
		}
	}

	return out
}
