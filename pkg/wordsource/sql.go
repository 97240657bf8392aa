package wordsource

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultQuery selects the first column of a table named words. Each value
// must be a single word: a value containing a line break would read back as
// several words, so Query rejects it with ErrMultilineWord.
const DefaultQuery = `SELECT word FROM words;`

var (
	// ErrEmptyQuery is returned when Query is called without a query string.
	ErrEmptyQuery = errors.New("empty dictionary query")
	// ErrMultilineWord is returned when a dictionary row contains '\n' or '\r'.
	ErrMultilineWord = errors.New("dictionary word contains a line break")
)

// Query runs query against db and returns its first column as a dictionary,
// one row per line. NULL values become blank lines, which train as empty
// words just like blank lines in a file. The returned size is the number of
// bytes buffered.
func Query(ctx context.Context, db *sql.DB, query string) (io.ReadCloser, int64, error) {
	if query == "" {
		return nil, 0, ErrEmptyQuery
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("could not query dictionary: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	cols, err := rows.Columns()
	if err != nil {
		return nil, 0, err
	}
	if len(cols) == 0 {
		return nil, 0, fmt.Errorf("dictionary query returned no columns")
	}

	// Scan only the first column; the rest are discarded.
	dest := make([]interface{}, len(cols))
	var word sql.NullString
	dest[0] = &word
	for i := 1; i < len(dest); i++ {
		dest[i] = new(sql.RawBytes)
	}

	var buf bytes.Buffer
	for row := 1; rows.Next(); row++ {
		if err = rows.Scan(dest...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan dictionary row: %w", err)
		}
		if word.Valid && strings.ContainsAny(word.String, "\r\n") {
			return nil, 0, fmt.Errorf("%w: row %d: %q", ErrMultilineWord, row, word.String)
		}
		if word.Valid {
			buf.WriteString(word.String)
		}
		buf.WriteByte('\n')
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return io.NopCloser(&buf), int64(buf.Len()), nil
}
