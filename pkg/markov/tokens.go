package markov

import (
	"io"
)

// Word is a single training word read from a stream. Text is the word after
// trimming and case folding, Symbols is its encoding in the model alphabet.
type Word struct {
	Text    string
	Symbols []Symbol
	Line    int
}

// Tokenizer is an interface that defines the contract for turning training
// input into words. This keeps the table construction independent of the
// input format and the character policy.
type Tokenizer interface {
	// NewStream returns a stateful WordStream for processing an io.Reader.
	NewStream(io.Reader) WordStream
	// Encode folds and encodes a single word. It returns an error if the word
	// contains characters the tokenizer does not accept.
	Encode(word string) ([]Symbol, error)
}

// WordStream is an interface for a stateful tokenizer that processes a
// stream of data, returning one word at a time.
type WordStream interface {
	// Next returns the next word from the stream. It returns io.EOF as the
	// error when the stream is fully consumed.
	Next() (*Word, error)
	// Skipped returns how many input lines were dropped by the character
	// policy so far.
	Skipped() int
}

// Decode renders symbols back into a string. Reserved symbols are dropped.
func Decode(symbols []Symbol) string {
	buf := make([]rune, 0, len(symbols))
	for _, s := range symbols {
		if s > Start {
			buf = append(buf, rune(s))
		}
	}
	return string(buf)
}
