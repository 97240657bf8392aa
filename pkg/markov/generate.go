package markov

import (
	"context"
	"fmt"
	"log/slog"
)

// cancelCheckInterval is how many redraws at a single position happen between
// context checks.
const cancelCheckInterval = 1024

// wordCapacity is the initial capacity of the word buffer. The buffer grows
// past it only for words that are actually that long, so a huge maxLength
// costs nothing up front.
const wordCapacity = 64

// abandonReason explains why a generation attempt was restarted.
type abandonReason int

const (
	reasonNone abandonReason = iota
	// reasonDeadEnd: the current context was never observed.
	reasonDeadEnd
	// reasonTooShort: the word ended below the minimum length and the
	// context offers no continuation other than the end of the word.
	reasonTooShort
	// reasonTooLong: the maximum length was reached without the word ending.
	reasonTooLong
)

func (r abandonReason) String() string {
	switch r {
	case reasonDeadEnd:
		return "dead_end"
	case reasonTooShort:
		return "too_short"
	case reasonTooLong:
		return "too_long"
	default:
		return "none"
	}
}

// Generate samples one word whose length lies in [minLength, maxLength].
//
// Attempts that run into an unobserved context, end too early at a context
// whose only continuation is the end of the word, or reach maxLength without
// ending are discarded and generation restarts from the start context. When
// the end of the word is drawn too early at a context that has other
// continuations, the draw is repeated at the same position.
//
// Generate returns ErrInvalidLength for bad bounds, ErrAttemptsExhausted if
// the generator was configured with WithMaxAttempts and ran out, or the
// context's error if it is cancelled first.
func (g *Generator) Generate(ctx context.Context, minLength, maxLength int) (string, error) {
	if minLength < 0 || minLength > maxLength {
		return "", fmt.Errorf("%w: min %d, max %d", ErrInvalidLength, minLength, maxLength)
	}

	buf := make([]Symbol, 0, min(maxLength, wordCapacity))
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if g.maxAttempts > 0 && attempt > g.maxAttempts {
			return "", fmt.Errorf("%w: %d attempts for length %d-%d", ErrAttemptsExhausted, g.maxAttempts, minLength, maxLength)
		}

		word, reason, err := g.attempt(ctx, buf[:0], minLength, maxLength)
		if err != nil {
			return "", err
		}
		if reason == reasonNone {
			return symbolsToString(word), nil
		}
		// Keep whatever capacity the abandoned attempt grew.
		buf = word

		g.logger.DebugContext(ctx, "Generation attempt abandoned",
			slog.Int("attempt", attempt),
			slog.String("reason", reason.String()),
			slog.Int("min_length", minLength),
			slog.Int("max_length", maxLength),
		)
	}
}

// attempt runs a single walk from the start context, appending symbols to
// buf. The returned slice holds the word when reason is reasonNone.
func (g *Generator) attempt(ctx context.Context, buf []Symbol, minLength, maxLength int) ([]Symbol, abandonReason, error) {
	cur := StartContext
	redraws := 0

	for {
		dist, ok := g.table.Lookup(cur)
		if !ok || dist.total == 0 {
			return buf, reasonDeadEnd, nil
		}

		next := chooseNext(g.rng, dist)

		if next == Start {
			if len(buf) >= minLength {
				return buf, reasonNone, nil
			}
			if len(dist.entries) == 1 {
				// Ending is the only way out of this context.
				return buf, reasonTooShort, nil
			}
			// Draw again from the same context.
			redraws++
			if redraws%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return buf, reasonNone, err
				}
			}
			continue
		}

		if len(buf) == maxLength {
			return buf, reasonTooLong, nil
		}

		buf = append(buf, next)
		cur = Context{Prev: cur.Cur, Cur: next}
	}
}

// chooseNext performs a weighted draw over dist's entries in first-observed
// order. It panics if the entries sum to less than the recorded total, which
// would mean the table is corrupt.
func chooseNext(rng RandSource, dist *Distribution) Symbol {
	r := rng.IntN(dist.total)
	for _, e := range dist.entries {
		if r < e.Count {
			return e.Symbol
		}
		r -= e.Count
	}
	panic(fmt.Sprintf("markov: weighted draw ran past the last entry (total %d, %d entries)", dist.total, len(dist.entries)))
}

func symbolsToString(symbols []Symbol) string {
	runes := make([]rune, len(symbols))
	for i, s := range symbols {
		runes[i] = rune(s)
	}
	return string(runes)
}
