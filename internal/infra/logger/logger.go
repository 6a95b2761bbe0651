package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// New returns a JSON logger appending to path. In dev the records are also
// mirrored to stderr and debug is enabled. The returned closer releases the file.
func New(env, path string) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level := slog.LevelInfo
	var w io.Writer = f
	if env == "dev" {
		level = slog.LevelDebug
		w = io.MultiWriter(f, os.Stderr)
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h), f, nil
}

// Discard drops every record; used by tests and when no log file is wanted.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
