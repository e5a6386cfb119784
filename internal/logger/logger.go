// Package logger builds the zerolog logger shared by the server and the admin tool.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour.
type Options struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	// Empty or unknown values fall back to info.
	Level string
	// Pretty switches to the coloured console writer instead of JSON.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

// New returns a logger configured from opts.
func New(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel converts a level name to a zerolog.Level.
//
//	"trace" → TraceLevel
//	"debug" → DebugLevel
//	"info"  → InfoLevel  ← default
//	"warn"  → WarnLevel
//	"error" → ErrorLevel
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
