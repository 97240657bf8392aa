package markov

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CharPolicy decides what happens to characters outside the accepted
// alphabet.
type CharPolicy int

const (
	// PolicyASCII accepts printable ASCII (space through '~') after case
	// folding and rejects everything else with ErrUnsupportedChar.
	PolicyASCII CharPolicy = iota
	// PolicySkip accepts the same alphabet as PolicyASCII, but drops words
	// with unsupported characters instead of failing.
	PolicySkip
	// PolicyUnicode accepts any valid code point except U+0000, which would
	// collide with Start.
	PolicyUnicode
)

// ErrUnsupportedChar is returned when a training word contains a character
// outside the tokenizer's alphabet.
var ErrUnsupportedChar = errors.New("unsupported character")

// ParseCharPolicy maps a policy name ("ascii", "skip", "unicode") to a CharPolicy.
func ParseCharPolicy(name string) (CharPolicy, error) {
	switch strings.ToLower(name) {
	case "", "ascii":
		return PolicyASCII, nil
	case "skip":
		return PolicySkip, nil
	case "unicode":
		return PolicyUnicode, nil
	}
	return PolicyASCII, fmt.Errorf("unknown character policy %q", name)
}

// String returns the policy name accepted by ParseCharPolicy.
func (p CharPolicy) String() string {
	switch p {
	case PolicySkip:
		return "skip"
	case PolicyUnicode:
		return "unicode"
	default:
		return "ascii"
	}
}

// DefaultTokenizer is a default implementation of the Tokenizer interface.
// It reads one word per line, trims surrounding whitespace, folds the word to
// lowercase and encodes every character as its code point.
// Its behavior can be customized with functional options.
type DefaultTokenizer struct {
	policy  CharPolicy
	maxLine int
}

// Option Is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithCharPolicy sets how characters outside the accepted alphabet are handled.
// Default: PolicyASCII
func WithCharPolicy(p CharPolicy) Option {
	return func(t *DefaultTokenizer) {
		t.policy = p
	}
}

// WithMaxLineLength sets the longest input line, in bytes, the stream will
// accept. Longer lines make Next return bufio.ErrTooLong.
// Default: bufio.MaxScanTokenSize
func WithMaxLineLength(n int) Option {
	return func(t *DefaultTokenizer) {
		t.maxLine = n
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		policy:  PolicyASCII,
		maxLine: bufio.MaxScanTokenSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Policy returns the configured character policy.
func (t *DefaultTokenizer) Policy() CharPolicy {
	return t.policy
}

// Encode folds word to lowercase and encodes it. Surrounding whitespace is
// not trimmed here; streams trim each line before encoding.
func (t *DefaultTokenizer) Encode(word string) ([]Symbol, error) {
	return t.encode(cases.Lower(language.Und), word)
}

// encode uses the given caser, which carries state and must not be shared
// between goroutines.
func (t *DefaultTokenizer) encode(caser cases.Caser, word string) ([]Symbol, error) {
	if !utf8.ValidString(word) {
		return nil, fmt.Errorf("%w: invalid UTF-8 in %q", ErrUnsupportedChar, word)
	}
	folded := caser.String(word)
	symbols := make([]Symbol, 0, len(folded))
	for i, r := range folded {
		if !t.accepts(r) {
			return nil, fmt.Errorf("%w: %q at byte %d of %q", ErrUnsupportedChar, r, i, word)
		}
		symbols = append(symbols, Symbol(r))
	}
	return symbols, nil
}

func (t *DefaultTokenizer) accepts(r rune) bool {
	if t.policy == PolicyUnicode {
		return r != 0 && r != utf8.RuneError
	}
	return r >= 0x20 && r <= 0x7e
}

// NewStream Returns the stream processor.
func (t *DefaultTokenizer) NewStream(r io.Reader) WordStream {
	scanner := bufio.NewScanner(r)
	if t.maxLine > bufio.MaxScanTokenSize {
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), t.maxLine)
	} else if t.maxLine > 0 {
		scanner.Buffer(make([]byte, 0, t.maxLine), t.maxLine)
	}
	return &DefaultWordStream{
		tokenizer: t,
		scanner:   scanner,
		caser:     cases.Lower(language.Und),
	}
}

// DefaultWordStream is the default implementation of the WordStream interface.
// It uses a bufio.Scanner to read the stream line by line.
type DefaultWordStream struct {
	tokenizer *DefaultTokenizer
	scanner   *bufio.Scanner
	caser     cases.Caser
	line      int
	skipped   int
}

// Next returns the next word from the stream. It returns a Word and a nil error on
// success. When the stream is exhausted, it returns a nil Word and io.EOF.
// Blank lines produce a Word with no symbols.
func (s *DefaultWordStream) Next() (*Word, error) {
	for {
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		s.line++

		text := strings.TrimSpace(s.scanner.Text())
		symbols, err := s.tokenizer.encode(s.caser, text)
		if err != nil {
			if s.tokenizer.policy == PolicySkip && errors.Is(err, ErrUnsupportedChar) {
				s.skipped++
				continue
			}
			return nil, fmt.Errorf("line %d: %w", s.line, err)
		}
		return &Word{Text: Decode(symbols), Symbols: symbols, Line: s.line}, nil
	}
}

// Skipped returns the number of lines dropped under PolicySkip.
func (s *DefaultWordStream) Skipped() int {
	return s.skipped
}
