package markov

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
)

var (
	// ErrEmptyModel is returned when the start context of a table has no
	// observed continuation, usually because the training corpus was empty.
	ErrEmptyModel = errors.New("model has no starting transitions")
	// ErrInvalidLength is returned when the requested length bounds are
	// negative or minimum exceeds maximum.
	ErrInvalidLength = errors.New("invalid length bounds")
	// ErrAttemptsExhausted is returned when a Generator configured with
	// WithMaxAttempts restarts that many times without producing a word.
	ErrAttemptsExhausted = errors.New("generation attempts exhausted")
)

// RandSource is the source of randomness a Generator draws from.
// *math/rand/v2.Rand satisfies it.
type RandSource interface {
	// IntN returns a uniform integer in [0, n). n is always positive.
	IntN(n int) int
}

// Generator samples words from a Table. It holds the shared, read-only table
// and a private random source. A Generator is not safe for concurrent use;
// create one per goroutine over the same table instead.
type Generator struct {
	table       *Table
	rng         RandSource
	maxAttempts int
	logger      *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSeed seeds the generator's random source. Two generators built over
// the same table with the same seed produce the same words.
func WithSeed(seed uint64) GeneratorOption {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRandSource sets the random source directly.
func WithRandSource(src RandSource) GeneratorOption {
	return func(g *Generator) {
		if src != nil {
			g.rng = src
		}
	}
}

// WithMaxAttempts bounds the number of attempts a single Generate call may
// make before returning ErrAttemptsExhausted. A value of 0 or less means no
// bound, in which case a table that can never satisfy the requested bounds
// makes Generate run until its context is cancelled.
func WithMaxAttempts(n int) GeneratorOption {
	return func(g *Generator) { g.maxAttempts = n }
}

// NewGenerator creates a Generator over table. It returns ErrEmptyModel if
// the table's start context is absent or empty, since nothing could ever be
// generated from it.
func NewGenerator(table *Table, opts ...GeneratorOption) (*Generator, error) {
	if table == nil {
		return nil, ErrEmptyModel
	}
	if err := table.Ready(); err != nil {
		return nil, err
	}
	g := &Generator{
		table:  table,
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g, nil
}

// Table returns the table the generator samples from.
func (g *Generator) Table() *Table {
	return g.table
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
// Providing a `log/slog.Logger` will enable debug logs for abandoned attempts.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
