package markov

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGenerateStream(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful stream", func(t *testing.T) {
		g := newTestGenerator(t, 5, testCorpus...)
		stream, err := g.GenerateStream(ctx, 3, 8, 10)
		if err != nil {
			t.Fatalf("GenerateStream failed: %v", err)
		}

		var words []string
		for result := range stream {
			if result.Err != nil {
				t.Fatalf("unexpected stream error: %v", result.Err)
			}
			words = append(words, result.Word)
		}
		if len(words) != 10 {
			t.Errorf("expected 10 words, got %d: %v", len(words), words)
		}
	})

	t.Run("Generation error ends the stream", func(t *testing.T) {
		g, err := NewGenerator(buildTable(t, "a"), WithSeed(1), WithMaxAttempts(10))
		if err != nil {
			t.Fatalf("NewGenerator() error = %v", err)
		}
		stream, err := g.GenerateStream(ctx, 2, 4, 3)
		if err != nil {
			t.Fatalf("GenerateStream failed: %v", err)
		}

		result, ok := <-stream
		if !ok {
			t.Fatal("expected an error result before the channel closed")
		}
		if !errors.Is(result.Err, ErrAttemptsExhausted) {
			t.Errorf("expected ErrAttemptsExhausted, got %v", result.Err)
		}
		if _, ok := <-stream; ok {
			t.Error("expected the channel to close after an error")
		}
	})

	t.Run("Invalid bounds", func(t *testing.T) {
		g := newTestGenerator(t, 1, "cat")
		if _, err := g.GenerateStream(ctx, 4, 2, 1); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("expected ErrInvalidLength, got %v", err)
		}
	})

	t.Run("Stream cancellation", func(t *testing.T) {
		ctxCancel, cancel := context.WithCancel(ctx)
		defer cancel()

		g := newTestGenerator(t, 9, testCorpus...)
		streamCancel, err := g.GenerateStream(ctxCancel, 3, 8, 0)
		if err != nil {
			t.Fatalf("GenerateStream failed: %v", err)
		}

		// Read one word, then cancel
		<-streamCancel
		cancel()

		// The channel may still deliver a word that was already being sent,
		// but it must close quickly.
		timeout := time.After(500 * time.Millisecond)
		for {
			select {
			case _, ok := <-streamCancel:
				if !ok {
					return
				}
			case <-timeout:
				t.Fatal("timed out waiting for stream channel to close after cancellation")
			}
		}
	})
}

func BenchmarkGenerateStream(b *testing.B) {
	table := buildTable(b, testCorpus...)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g, err := NewGenerator(table, WithSeed(uint64(i)))
		if err != nil {
			b.Fatal(err)
		}
		stream, err := g.GenerateStream(ctx, 3, 10, 50)
		if err != nil {
			b.Fatalf("GenerateStream() failed: %v", err)
		}
		// We must drain the channel to measure the full lifecycle
		var bytes int64
		for r := range stream {
			bytes += int64(len(r.Word))
		}
		b.SetBytes(bytes)
	}
}
