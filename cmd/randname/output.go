package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/natefinch/atomic"

	"github.com/CTAG07/randname/pkg/markov"
)

// writeWords generates count words and writes them one per line. With an
// output path the words are written atomically once all of them have been
// generated, so a failed run never leaves a partial file behind. Otherwise
// they stream to stdout as they are produced.
func writeWords(ctx context.Context, gen *markov.Generator, minLength, maxLength, count int, outputPath string, stdout io.Writer) error {
	var buf bytes.Buffer
	var w *bufio.Writer
	if outputPath != "" {
		w = bufio.NewWriter(&buf)
	} else {
		w = bufio.NewWriter(stdout)
	}

	stream, err := gen.GenerateStream(ctx, minLength, maxLength, count)
	if err != nil {
		return err
	}

	written := 0
	for result := range stream {
		if result.Err != nil {
			_ = w.Flush()
			return fmt.Errorf("failed to generate word %d of %d: %w", written+1, count, result.Err)
		}
		if _, err = fmt.Fprintln(w, result.Word); err != nil {
			return err
		}
		written++
	}
	if err = ctx.Err(); err != nil {
		_ = w.Flush()
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}

	if outputPath != "" {
		if err = atomic.WriteFile(outputPath, &buf); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}
	return nil
}
