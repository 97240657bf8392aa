package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/phsym/console-slog"
)

const timeFormat string = "2006-01-02 15:04:05.000"

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger returns a console logger writing to w. Generated words go to
// stdout, so logs are expected on stderr.
func newLogger(w io.Writer, level string) *slog.Logger {
	handler := console.NewHandler(w, &console.HandlerOptions{
		Level:      parseLogLevel(level),
		TimeFormat: timeFormat,
	})
	return slog.New(handler)
}
