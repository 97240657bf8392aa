package markov

import (
	"context"
	"fmt"
	"log/slog"
)

// Result is a single value produced by GenerateStream. Exactly one of Word
// and Err is meaningful; a Result with a non-nil Err is always the last one
// sent before the channel closes.
type Result struct {
	Word string
	Err  error
}

// GenerateStream generates count words in the background and returns a
// read-only channel of Results. A count of 0 or less streams words until the
// context is cancelled. The channel is closed once count words have been
// sent, after a generation error, or when the context is cancelled.
//
// The generator must not be used by anything else until the channel is
// closed.
func (g *Generator) GenerateStream(ctx context.Context, minLength, maxLength, count int) (<-chan Result, error) {
	if minLength < 0 || minLength > maxLength {
		return nil, fmt.Errorf("%w: min %d, max %d", ErrInvalidLength, minLength, maxLength)
	}

	resultChan := make(chan Result)

	go func() {
		defer close(resultChan)

		for i := 0; count <= 0 || i < count; i++ {
			word, err := g.Generate(ctx, minLength, maxLength)
			if err != nil {
				if ctx.Err() != nil {
					g.logger.DebugContext(ctx, "Generation stream cancelled by context",
						slog.Int("words_sent", i),
					)
					return
				}
				select {
				case <-ctx.Done():
				case resultChan <- Result{Err: err}:
				}
				return
			}

			select {
			case <-ctx.Done():
				return
			case resultChan <- Result{Word: word}:
			}
		}
	}()

	return resultChan, nil
}
