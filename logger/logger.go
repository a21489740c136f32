package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZeroLogger wraps zerolog.Logger to implement the Logger interface.
// All string and interface fields pass through a credential redactor
// before being written.
type ZeroLogger struct {
	zlog   *zerolog.Logger
	redact *Redactor
}

// Ensure ZeroLogger implements the interface
var _ Logger = (*ZeroLogger)(nil)

// New creates a ZeroLogger writing to stdout at the given level.
// If pretty is true, output is formatted for human readability.
func New(level string, pretty bool) *ZeroLogger {
	return NewWithOutput(level, pretty, os.Stdout)
}

// NewWithOutput creates a ZeroLogger writing to the given destination.
func NewWithOutput(level string, pretty bool, out io.Writer) *ZeroLogger {
	var l zerolog.Logger

	if pretty {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	} else {
		l = zerolog.New(out).With().Timestamp().Logger()
	}

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		zLevel = zerolog.InfoLevel
	}
	l = l.Level(zLevel)

	return &ZeroLogger{zlog: &l, redact: NewRedactor(nil)}
}

// NewWithRedactor creates a ZeroLogger with a custom credential redactor.
// Passing nil disables redaction entirely.
func NewWithRedactor(level string, pretty bool, r *Redactor) *ZeroLogger {
	l := New(level, pretty)
	l.redact = r
	return l
}

// WithFields returns a logger with additional fields attached to all entries.
func (l *ZeroLogger) WithFields(fields map[string]any) Logger {
	if l.redact != nil {
		fields = l.redact.Fields(fields)
	}
	log := l.zlog.With().Fields(fields).Logger()
	return &ZeroLogger{zlog: &log, redact: l.redact}
}

// Debug creates a debug-level log event
func (l *ZeroLogger) Debug() LogEvent {
	return &eventAdapter{event: l.zlog.Debug(), redact: l.redact}
}

// Info creates an info-level log event
func (l *ZeroLogger) Info() LogEvent {
	return &eventAdapter{event: l.zlog.Info(), redact: l.redact}
}

// Warn creates a warning-level log event
func (l *ZeroLogger) Warn() LogEvent {
	return &eventAdapter{event: l.zlog.Warn(), redact: l.redact}
}

// Error creates an error-level log event
func (l *ZeroLogger) Error() LogEvent {
	return &eventAdapter{event: l.zlog.Error(), redact: l.redact}
}
