package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/CTAG07/randname/pkg/markov"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Process exit codes.
const (
	exitOK    = 0
	exitError = 1
)

const usage = `usage: randname [flags] <dictionary> <min-length> <max-length>
       randname [flags] -serve <addr> <dictionary>

The dictionary is a file with one word per line, "-" for standard input,
an s3://bucket/key URI, or a SQLite database file when -query is given.

flags:
`

// options holds the parsed command line.
type options struct {
	configPath string
	stats      bool
	version    bool
	dictionary string
	minLength  int
	maxLength  int
}

// parseFlags parses args into options and applies explicitly set flags on top
// of config.
func parseFlags(args []string, stderr io.Writer, config *Config) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("randname", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var (
		count       int
		logLevel    string
		seed        uint64
		maxAttempts int
		charset     string
		prune       int
		output      string
		query       string
		serve       string
	)
	fs.StringVar(&opts.configPath, "config", "", "path to a JSON or YAML config `file`")
	fs.BoolVar(&opts.stats, "stats", false, "print table statistics instead of generating words")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	fs.IntVar(&count, "n", config.Count, "number of words to generate")
	fs.StringVar(&logLevel, "log-level", config.LogLevel, "log level: debug, info, warn or error")
	fs.Uint64Var(&seed, "seed", config.Seed, "random seed; 0 picks one at random")
	fs.IntVar(&maxAttempts, "max-attempts", config.MaxAttempts, "attempts per word before giving up; 0 retries forever")
	fs.StringVar(&charset, "charset", config.CharPolicy, "character policy: ascii, skip or unicode")
	fs.IntVar(&prune, "prune", config.PruneBelow, "drop transitions seen this many times or fewer")
	fs.StringVar(&output, "o", config.OutputPath, "write words to `file` instead of stdout")
	fs.StringVar(&query, "query", config.DictionaryQuery, "read the dictionary from a SQLite database with this `sql`")
	fs.StringVar(&serve, "serve", config.Server.Addr, "serve generated words over HTTP on `addr`")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			config.Count = count
		case "log-level":
			config.LogLevel = logLevel
		case "seed":
			config.Seed = seed
		case "max-attempts":
			config.MaxAttempts = maxAttempts
		case "charset":
			config.CharPolicy = charset
		case "prune":
			config.PruneBelow = prune
		case "o":
			config.OutputPath = output
		case "query":
			config.DictionaryQuery = query
		case "serve":
			config.Server.Addr = serve
		}
	})

	if opts.version {
		return opts, nil
	}

	rest := fs.Args()
	if config.Server.Addr != "" || opts.stats {
		if len(rest) != 1 {
			fs.Usage()
			return nil, errors.New("expected exactly one dictionary argument")
		}
		opts.dictionary = rest[0]
		return opts, nil
	}

	if len(rest) != 3 {
		fs.Usage()
		return nil, errors.New("expected <dictionary> <min-length> <max-length>")
	}
	opts.dictionary = rest[0]

	var err error
	if opts.minLength, err = strconv.Atoi(rest[1]); err != nil {
		return nil, fmt.Errorf("%w: min-length %q is not a number", markov.ErrInvalidLength, rest[1])
	}
	if opts.maxLength, err = strconv.Atoi(rest[2]); err != nil {
		return nil, fmt.Errorf("%w: max-length %q is not a number", markov.ErrInvalidLength, rest[2])
	}
	if opts.minLength < 0 || opts.minLength > opts.maxLength {
		return nil, fmt.Errorf("%w: min %d, max %d", markov.ErrInvalidLength, opts.minLength, opts.maxLength)
	}
	return opts, nil
}

// configPathFromArgs finds the -config flag value ahead of the real parse,
// since the file supplies the defaults the other flags override.
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// loadConfiguration builds the effective configuration from the config file,
// environment and command line, in increasing order of precedence.
func loadConfiguration(args []string, stderr io.Writer) (*Config, *options, error) {
	// The configured level is not known until the config is loaded.
	startupLogger := newLogger(stderr, DefaultConfig().LogLevel)
	config, err := LoadConfig(configPathFromArgs(args), startupLogger)
	if err != nil {
		return nil, nil, err
	}
	if err = ApplyEnv(config); err != nil {
		return nil, nil, err
	}

	opts, err := parseFlags(args, stderr, config)
	if err != nil {
		return nil, nil, err
	}
	if err = config.Validate(); err != nil {
		return nil, nil, err
	}
	return config, opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	config, opts, err := loadConfiguration(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		_, _ = fmt.Fprintf(stderr, "randname: %v\n", err)
		return exitError
	}
	if opts.version {
		_, _ = fmt.Fprintf(stdout, "randname %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return exitOK
	}

	logger := newLogger(stderr, config.LogLevel)
	if err = execute(ctx, config, opts, afero.NewOsFs(), stdout, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Interrupted")
			return exitError
		}
		logger.Error("randname failed", slog.Any("error", err))
		_, _ = fmt.Fprintf(stderr, "randname: %v\n", err)
		return exitError
	}
	return exitOK
}

// execute trains a table from the dictionary and then prints its statistics,
// serves words over HTTP, or writes the requested number of words.
func execute(ctx context.Context, config *Config, opts *options, fs afero.Fs, stdout io.Writer, logger *slog.Logger) error {
	table, err := trainFromDictionary(ctx, config, fs, opts.dictionary, logger)
	if err != nil {
		return err
	}

	switch {
	case opts.stats:
		return printStats(stdout, table.Stats())

	case config.Server.Addr != "":
		server := NewServer(config, table, logger)
		return server.ListenAndServe(ctx)

	default:
		gen, err := newGenerator(table, config, logger)
		if err != nil {
			return err
		}
		return writeWords(ctx, gen, opts.minLength, opts.maxLength, config.Count, config.OutputPath, stdout)
	}
}

// newGenerator builds a generator with the configured seed and attempt
// budget. A zero seed leaves the generator randomly seeded.
func newGenerator(table *markov.Table, config *Config, logger *slog.Logger) (*markov.Generator, error) {
	genOpts := []markov.GeneratorOption{markov.WithMaxAttempts(config.MaxAttempts)}
	if config.Seed != 0 {
		genOpts = append(genOpts, markov.WithSeed(config.Seed))
	}
	gen, err := markov.NewGenerator(table, genOpts...)
	if err != nil {
		return nil, err
	}
	gen.SetLogger(logger)
	return gen, nil
}

func printStats(w io.Writer, stats markov.TableStats) error {
	_, err := fmt.Fprintf(w,
		"words:           %s\n"+
			"contexts:        %s\n"+
			"transitions:     %s\n"+
			"total frequency: %s\n"+
			"starting chars:  %d\n"+
			"alphabet size:   %d\n"+
			"widest context:  %d\n",
		humanize.Comma(int64(stats.Words)),
		humanize.Comma(int64(stats.Contexts)),
		humanize.Comma(int64(stats.Transitions)),
		humanize.Comma(int64(stats.TotalFrequency)),
		stats.StartingChars,
		stats.AlphabetSize,
		stats.LongestContext,
	)
	return err
}
