// Package logging builds the logger handed to the pipeline components.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options configures New.
type Options struct {
	// File, if set, receives a copy of every record. It is opened in append mode.
	File  string
	Debug bool
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

// New returns a text logger writing to stderr and, optionally, a log file.
// The returned closer releases the file; it is never nil.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if opts.Stderr != nil {
		out = opts.Stderr
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = io.MultiWriter(out, f)
		closer = f
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
