package cli

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/rinha/log"
)

// logFormat configures the logger format as a side effect of parsing, via
// encoding.TextUnmarshaler, early enough to affect error messages that
// happen later during flag parsing.
type logFormat string

func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing, via
// encoding.TextUnmarshaler.
type logLevel string

func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

// DefaultLogOutput is used for the "-" output path, meaning "write to
// stderr".
var DefaultLogOutput = os.Stderr //nolint:gochecknoglobals

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevelEnum}"  help:"Set log level (${enum})"`
	Format     logFormat `default:"json"    enum:"${logFormatEnum}" help:"Set log format (${enum})"`
	Output     logOutput `                                          help:"Log output file(s) ('-' for stderr)" placeholder:"PATH" short:"o" type:"path"`
	TimeLayout string    `default:"RFC3339"                         help:"Set timestamp format"`
	Caller     bool      `default:"false"                           help:"Include callsite information"                                                   negatable:""`
	Pretty     bool      `default:"true"                            help:"Enable colorized pretty printing"                                               negatable:""`
	Verbose    int       `                                          help:"Increment log verbosity"                               short:"v" type:"counter"`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start(ctx context.Context) func() {
	level := f.applyVerbosity()

	opts := []log.Option{
		log.WithLevel(level),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	}

	withOutput := func(path string) (io.Writer, string, bool, func() error) {
		flags := os.O_CREATE | os.O_WRONLY

		path = strings.TrimLeft(path, " \t")

		var ok bool
		if path, ok = strings.CutPrefix(path, ">>"); ok {
			path = strings.TrimLeft(path, " \t")
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}

		if strings.TrimSpace(path) == "-" {
			return DefaultLogOutput, "-", true, func() error {
				return nil
			}
		}

		file, err := os.OpenFile(path, flags, 0o644)
		if err != nil {
			log.ErrorContext(ctx, "open log output file",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}

		return file, path, (flags & os.O_APPEND) != 0, file.Close
	}

	cleanup := func() error { return nil }

	writers := make([]io.Writer, 0, len(f.Output))
	strs := make([]string, 0, len(f.Output))
	for _, path := range f.Output {
		w, str, app, cup := withOutput(path)
		if app {
			str += " (APPEND)"
		}

		writers = append(writers, w)
		strs = append(strs, str)

		prev := cleanup
		cleanup = func() error {
			if err := prev(); err != nil {
				return err
			}

			return cup()
		}
	}

	opts = append(opts, log.WithOutput(writers...))

	log.Config(opts...)

	logAttrs := []slog.Attr{
		slog.String("level", level.String()),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	}
	if f.Verbose > 0 {
		logAttrs = append(logAttrs, slog.Int("verbose", f.Verbose))
	}

	for _, str := range strs {
		logAttrs = append(logAttrs, slog.String("output", str))
	}

	log.DebugContext(ctx, "logger initialized", logAttrs...)

	return func() {
		if err := cleanup(); err != nil {
			log.ErrorContext(ctx, "close log output file", slog.String("error", err.Error()))
		}
	}
}

// scan performs an early pass over command-line arguments to apply logger
// configuration before Kong begins parsing, so the logger is set up
// correctly regardless of flag position.
func (f *logConfig) scan(args []string) {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		level    = fs.String("log-level", "", "")
		format   = fs.String("log-format", "", "")
		pretty   = fs.Bool("log-pretty", false, "")
		noPretty = fs.Bool("no-log-pretty", false, "")
		caller   = fs.Bool("log-caller", false, "")
		noCaller = fs.Bool("no-log-caller", false, "")
		verbose  = fs.Int("log-verbose", 0, "")
	)
	fs.IntVar(verbose, "v", 0, "")

	var output logOutput
	fs.Var(&output, "log-output", "")
	fs.Var(&output, "o", "")

	var logArgs []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		isLongLog := strings.HasPrefix(arg, "--log-") || strings.HasPrefix(arg, "--no-log-")
		isShortOutput := arg == "-o" || strings.HasPrefix(arg, "-o=")

		isVerbose := false

		if len(arg) > 1 && arg[0] == '-' && arg[1] == 'v' {
			allV := true

			for j := 1; j < len(arg); j++ {
				if arg[j] != 'v' {
					allV = false

					break
				}
			}

			if allV {
				f.Verbose = len(arg) - 1
				isVerbose = true
			} else if strings.HasPrefix(arg, "-v=") {
				isVerbose = true
			}
		}

		if isLongLog || isShortOutput || isVerbose {
			if !isVerbose || strings.Contains(arg, "=") {
				logArgs = append(logArgs, arg)
			}

			if !strings.Contains(arg, "=") &&
				i+1 < len(args) &&
				!strings.HasPrefix(args[i+1], "-") {
				i++
				logArgs = append(logArgs, args[i])
			}
		}
	}

	_ = fs.Parse(logArgs)

	if f.Verbose == 0 && *verbose > 0 {
		f.Verbose = *verbose
	}

	if *level != "" {
		_ = f.Level.UnmarshalText([]byte(*level))
	}

	lvl := f.applyVerbosity()
	log.Config(log.WithLevel(lvl))

	if *format != "" {
		_ = f.Format.UnmarshalText([]byte(*format))
	}

	if len(output) > 0 {
		f.Output = output
	}

	if *pretty {
		f.Pretty = true

		log.Config(log.WithPretty(true))
	}

	if *noPretty {
		f.Pretty = false

		log.Config(log.WithPretty(false))
	}

	if *caller {
		f.Caller = true

		log.Config(log.WithCaller(true))
	}

	if *noCaller {
		f.Caller = false

		log.Config(log.WithCaller(false))
	}
}

// levelStep is the numeric gap between adjacent named log levels.
const levelStep = 4

// applyVerbosity determines the effective log level by adjusting the
// configured level based on the verbosity count. Each -v flag increases
// verbosity by one named level.
func (f *logConfig) applyVerbosity() log.Level {
	base := log.ParseLevel(string(f.Level))
	adjusted := base - log.Level(f.Verbose*levelStep)

	if adjusted < log.LevelTrace {
		return log.LevelTrace
	}

	return adjusted
}

type logOutput []string

func (o *logOutput) String() string { return strings.Join(*o, ",") }

func (o *logOutput) Set(value string) error {
	*o = append(*o, value)

	return nil
}
