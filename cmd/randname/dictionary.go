package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/CTAG07/randname/pkg/markov"
	"github.com/CTAG07/randname/pkg/wordsource"
)

// openDictionary picks a word source for path:
//   - with a dictionary query configured, path is a SQLite database file;
//   - s3://bucket/key reads an S3 object;
//   - "-" reads standard input;
//   - anything else is a file on fs.
func openDictionary(ctx context.Context, config *Config, fs afero.Fs, path string) (io.ReadCloser, int64, error) {
	switch {
	case config.DictionaryQuery != "":
		db, err := openDictionaryDB(path)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to open dictionary database: %w", err)
		}
		defer func(db *sql.DB) {
			_ = db.Close()
		}(db)
		return wordsource.Query(ctx, db, config.DictionaryQuery)

	case wordsource.IsS3URI(path):
		src, err := wordsource.NewS3Source(ctx, wordsource.S3Config{
			Region:         config.S3.Region,
			AccessKeyID:    config.S3.AccessKeyID,
			SecretKey:      config.S3.SecretKey,
			Endpoint:       config.S3.Endpoint,
			ForcePathStyle: config.S3.ForcePathStyle,
		})
		if err != nil {
			return nil, 0, err
		}
		return src.Open(ctx, path)

	default:
		return wordsource.OpenFile(fs, path)
	}
}

// trainFromDictionary opens the dictionary, trains a table from it and
// applies pruning.
func trainFromDictionary(ctx context.Context, config *Config, fs afero.Fs, path string, logger *slog.Logger) (*markov.Table, error) {
	policy, err := markov.ParseCharPolicy(config.CharPolicy)
	if err != nil {
		return nil, err
	}

	r, size, err := openDictionary(ctx, config, fs, path)
	if err != nil {
		return nil, err
	}
	defer func(r io.ReadCloser) {
		_ = r.Close()
	}(r)

	attrs := []any{slog.String("dictionary", path)}
	if size >= 0 {
		attrs = append(attrs, slog.String("size", humanize.Bytes(uint64(size))))
	}
	logger.InfoContext(ctx, "Reading dictionary", attrs...)

	table, err := markov.Train(ctx, r,
		markov.WithTokenizer(markov.NewDefaultTokenizer(markov.WithCharPolicy(policy))),
		markov.WithTrainLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to train on %s: %w", path, err)
	}

	if config.PruneBelow > 0 {
		before := table.Stats().Transitions
		table = table.Prune(config.PruneBelow)
		logger.InfoContext(ctx, "Table pruned",
			slog.Int("min_frequency", config.PruneBelow),
			slog.Int("transitions_removed", before-table.Stats().Transitions),
		)
	}

	stats := table.Stats()
	logger.InfoContext(ctx, "Table ready",
		slog.String("words", humanize.Comma(int64(stats.Words))),
		slog.String("transitions", humanize.Comma(int64(stats.Transitions))),
		slog.Int("contexts", stats.Contexts),
		slog.Int("alphabet_size", stats.AlphabetSize),
	)

	return table, nil
}
