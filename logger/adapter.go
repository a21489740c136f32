package logger

import (
	"time"

	"github.com/rs/zerolog"
)

// eventAdapter adapts zerolog events to the LogEvent interface.
type eventAdapter struct {
	event  *zerolog.Event
	redact *Redactor
}

// Msg logs the message
func (ea *eventAdapter) Msg(msg string) {
	ea.event.Msg(msg)
}

// Msgf logs a formatted message
func (ea *eventAdapter) Msgf(format string, args ...any) {
	ea.event.Msgf(format, args...)
}

// Err adds an error to the log event
func (ea *eventAdapter) Err(err error) LogEvent {
	return &eventAdapter{event: ea.event.Err(err), redact: ea.redact}
}

// Str adds a string field, redacting credential material first.
func (ea *eventAdapter) Str(key, value string) LogEvent {
	if ea.redact != nil {
		value = ea.redact.String(key, value)
	}
	return &eventAdapter{event: ea.event.Str(key, value), redact: ea.redact}
}

// Int adds an integer field to the log event
func (ea *eventAdapter) Int(key string, value int) LogEvent {
	return &eventAdapter{event: ea.event.Int(key, value), redact: ea.redact}
}

// Int64 adds an int64 field to the log event
func (ea *eventAdapter) Int64(key string, value int64) LogEvent {
	return &eventAdapter{event: ea.event.Int64(key, value), redact: ea.redact}
}

// Dur adds a duration field to the log event
func (ea *eventAdapter) Dur(key string, d time.Duration) LogEvent {
	return &eventAdapter{event: ea.event.Dur(key, d), redact: ea.redact}
}

// Interface adds an arbitrary field, redacting credential material first.
func (ea *eventAdapter) Interface(key string, i any) LogEvent {
	if ea.redact != nil {
		i = ea.redact.Value(key, i)
	}
	return &eventAdapter{event: ea.event.Interface(key, i), redact: ea.redact}
}

// Bytes adds a byte slice field to the log event
func (ea *eventAdapter) Bytes(key string, val []byte) LogEvent {
	return &eventAdapter{event: ea.event.Bytes(key, val), redact: ea.redact}
}
