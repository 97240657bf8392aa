package markov

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// trainOptions Is used by Build and Train to configure default options.
type trainOptions struct {
	tokenizer Tokenizer
	logger    *slog.Logger
}

// TrainOption is a function that configures training. It's used as a variadic
// argument in Build and Train.
type TrainOption func(*trainOptions)

// WithTokenizer sets the tokenizer used to read and encode training words.
// Default: NewDefaultTokenizer()
func WithTokenizer(t Tokenizer) TrainOption {
	return func(o *trainOptions) { o.tokenizer = t }
}

// WithTrainLogger sets the logger used to report training progress. By
// default, all logs are discarded.
func WithTrainLogger(l *slog.Logger) TrainOption {
	return func(o *trainOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func newTrainOptions(opts []TrainOption) *trainOptions {
	options := &trainOptions{
		tokenizer: NewDefaultTokenizer(),
		logger:    discardLogger(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Build constructs a table from an in-memory list of words. Each word is
// encoded with the configured tokenizer exactly as given; no trimming is
// applied. An empty word records a single word-ending transition from the
// start context.
func Build(words []string, opts ...TrainOption) (*Table, error) {
	options := newTrainOptions(opts)
	table := newTable()
	for i, w := range words {
		symbols, err := options.tokenizer.Encode(w)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		table.addWord(symbols)
	}
	return table, nil
}

// Train processes a stream of text from an io.Reader, one word per line, and
// returns the resulting table. The context is checked between words so that
// very large dictionaries can be abandoned.
func Train(ctx context.Context, data io.Reader, opts ...TrainOption) (*Table, error) {
	options := newTrainOptions(opts)
	table := newTable()

	stream := options.tokenizer.NewStream(data)
	var wordCount, symbolCount int64
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		word, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("tokenizer error: %w", err)
		}
		table.addWord(word.Symbols)
		wordCount++
		symbolCount += int64(len(word.Symbols))
	}

	options.logger.InfoContext(ctx, "Training completed",
		slog.Int64("words_processed", wordCount),
		slog.Int64("symbols_processed", symbolCount),
		slog.Int("words_skipped", stream.Skipped()),
		slog.Int("contexts", table.Len()),
	)

	return table, nil
}
