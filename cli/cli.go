package cli

import (
	"context"
	"runtime"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/xform/cli/cmd"
	"github.com/ardnew/xform/pkg"
)

// CLI is the top-level command-line interface for xform.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	MaxDepth int `default:"64" help:"Maximum nesting depth of expressions." name:"max-depth"`

	Parse cmd.Parse `cmd:"" help:"Parse an expression and print its transform tree"`
	Apply cmd.Apply `cmd:"" help:"Copy entities through an expression"`
	Repl  cmd.Repl  `cmd:"" help:"Explore expressions interactively"`
	Init  cmd.Init  `cmd:"" help:"Initialize configuration file"`
}

// Run executes the xform CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier:  configFilePath,
		cmd.CacheIdentifier:   cacheDir(),
		cmd.WorkersIdentifier: strconv.Itoa(runtime.GOMAXPROCS(0)),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Boolean log flags never reach a TextUnmarshaler, so apply every log
	// flag before kong reports anything.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithEngineOptions(ctx, cmd.EngineOptions{MaxDepth: cli.MaxDepth})

	cli.Log.start(ctx)

	// no-op unless built with tag pprof and a mode is set
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
