// Package logging installs the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level      slog.Level
	File       string // empty disables the rotating file
	MaxSizeMB  int
	MaxBackups int
	Stderr     bool
}

// New builds a text logger writing to the rotating file and, if enabled,
// stderr. With neither output it discards. The returned closer releases the
// file.
func New(opts Options) (*slog.Logger, io.Closer) {
	var (
		writers []io.Writer
		closer  io.Closer = nopCloser{}
	)

	if opts.Stderr {
		writers = append(writers, os.Stderr)
	}

	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    opts.MaxSizeMB,
			MaxAge:     7,
			MaxBackups: opts.MaxBackups,
		}

		writers = append(writers, file)
		closer = file
	}

	out := io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: opts.Level})

	return slog.New(handler), closer
}

// Setup installs New's logger as the slog default.
func Setup(opts Options) io.Closer {
	logger, closer := New(opts)
	slog.SetDefault(logger)

	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
