/*
Package markov provides a small, in-memory, second-order character Markov
model for generating pronounceable random words.

A Table is built once from a dictionary of example words, with Build for a
slice or Train for a stream with one word per line. Every character is
predicted from the two characters before it, and word boundaries are modelled
with the reserved Start symbol. The table is read-only after training and can
be shared freely.

A Generator samples words of a requested length range from a Table. Each
Generator owns its random source, so concurrent callers should create one
Generator per goroutine over the same Table. Seeding a Generator with WithSeed
makes its output reproducible.

	table, err := markov.Train(ctx, dictionary)
	if err != nil {
		return err
	}
	gen, err := markov.NewGenerator(table, markov.WithMaxAttempts(100000))
	if err != nil {
		return err // markov.ErrEmptyModel for an empty dictionary
	}
	word, err := gen.Generate(ctx, 4, 9)
*/
package markov
