package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/rinha/cli/cmd"
	"github.com/ardnew/rinha/lang"
	"github.com/ardnew/rinha/log"
	"github.com/ardnew/rinha/pkg"
)

// defaultSourcePath is the program source read when --file isn't given.
const defaultSourcePath = "/var/rinha/source.rinha.json"

// CLI is the top-level command-line interface for the interpreter.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	File string `default:"${defaultSource}" help:"Program source, JSON-encoded, or '-' for stdin" name:"file" short:"f" type:"path"`
}

// Run executes the interpreter CLI with the given context and arguments.
// The exit function is handed to kong, which calls it when kong itself ends
// the process (for example after printing help).
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		log.DebugContext(ctx, "create config and cache directories", slog.Any("error", err))
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		"defaultSource": defaultSourcePath,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

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
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(loadYAML, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	defer cli.Log.start(ctx)()
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}

// Run evaluates the configured program source and prints its output. It
// implements kong's Runnable interface, making CLI itself the default
// (and only) command.
func (cli *CLI) Run(ctx context.Context) error {
	src, err := cmd.OpenSource(cli.File)
	if err != nil {
		log.ErrorContext(ctx, "open source", slog.Any("error", err))

		return err
	}

	defer src.Close()

	program, err := lang.Decode(ctx, src)
	if err != nil {
		log.ErrorContext(ctx, "decode program", slog.Any("error", err))

		return err
	}

	cache := lang.NewCache()

	_, rerr := lang.Eval(ctx, program.Expression, lang.NewEnv(), os.Stdout, cache)
	if rerr != nil {
		log.ErrorContext(ctx, "evaluate program", slog.Any("error", rerr))

		fmt.Fprintln(os.Stderr, rerr.Message)
		fmt.Fprintln(os.Stderr, rerr.Detail)
		fmt.Fprintln(os.Stderr, rerr.Location.String())

		return rerr
	}

	return nil
}
