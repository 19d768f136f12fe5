// Package logger builds the zerolog loggers used across the client. The
// terminal binary wants human-readable console output while tests capture
// structured JSON from a buffer, so construction is a small builder instead
// of a package-level global.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type Build struct {
	writer  io.Writer
	level   string
	console bool
}

func New() *Build {
	return &Build{}
}

// FromBuffer directs output to w instead of stderr.
func (b *Build) FromBuffer(w io.Writer) *Build {
	b.writer = w
	return b
}

// WithLevel sets the minimum level by name ("debug", "info", ...). An empty
// or unknown name falls back to info.
func (b *Build) WithLevel(level string) *Build {
	b.level = level
	return b
}

// Console switches to zerolog's human-readable console writer.
func (b *Build) Console() *Build {
	b.console = true
	return b
}

func (b *Build) Make() zerolog.Logger {
	w := b.writer
	if w == nil {
		w = os.Stderr
	}
	if b.console {
		w = zerolog.ConsoleWriter{Out: w}
	}
	lvl, err := zerolog.ParseLevel(b.level)
	if err != nil || b.level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
