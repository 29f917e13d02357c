package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/xform/cli/cmd/repl"
	"github.com/ardnew/xform/log"
)

// Parse builds an expression and prints the resulting transform tree.
type Parse struct {
	Format string `default:"text" enum:"text,tree,json,yaml" help:"Output format (${enum})." short:"F"`
	Indent int    `default:"2"                               help:"Indent width for JSON and YAML; 0 is compact." short:"i"`
	Output string `default:"-"                               help:"Output file or '-' for stdout." short:"o" type:"path"`

	Expr string `arg:"" help:"Transform expression, e.g. \"rotate 90,flip&offset 0 1 0\"." name:"expr"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	eng, _ := newEngine(ctx)

	node, err := eng.Parse(ctx, p.Expr)
	if err != nil {
		return ErrParseExpr.With(slog.String("expr", p.Expr)).Wrap(err)
	}

	if node == nil {
		log.InfoContext(ctx, "empty expression")

		return nil
	}

	w, err := openOutput(p.Output)
	if err != nil {
		return ErrWriteOutput.With(slog.String("file", p.Output)).Wrap(err)
	}
	defer closeOutput(&err, w, p.Output)

	switch p.Format {
	case "json":
		err = node.FormatJSON(ctx, w, p.Indent)
	case "yaml":
		err = node.FormatYAML(ctx, w, p.Indent)
	case "tree":
		_, err = fmt.Fprintln(w, repl.RenderTree(node))
	default:
		err = node.Format(ctx, w)
	}

	if err != nil {
		return ErrWriteOutput.With(slog.String("format", p.Format)).Wrap(err)
	}

	log.DebugContext(ctx, "expression parsed",
		slog.String("expr", p.Expr),
		slog.String("kind", node.Kind().String()),
		slog.Float64("weight", node.Weight()))

	return nil
}
