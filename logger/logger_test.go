package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T, level string, fn func(l Logger)) []map[string]any {
	t.Helper()
	var buf bytes.Buffer
	fn(NewWithOutput(level, false, &buf))

	var entries []map[string]any
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerLevels(t *testing.T) {
	entries := captureLog(t, "info", func(l Logger) {
		l.Debug().Msg("debug message")
		l.Info().Msg("info message")
		l.Warn().Msg("warn message")
		l.Error().Msg("error message")
	})

	require.Len(t, entries, 3)
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "warn", entries[1]["level"])
	assert.Equal(t, "error", entries[2]["level"])
}

func TestLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	entries := captureLog(t, "no-such-level", func(l Logger) {
		l.Debug().Msg("hidden")
		l.Info().Msg("visible")
	})

	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0]["message"])
}

func TestLoggerFields(t *testing.T) {
	entries := captureLog(t, "debug", func(l Logger) {
		l.Info().
			Str("method", "GET").
			Int("status", 200).
			Int64("count", 7).
			Dur("elapsed", 1500*time.Millisecond).
			Err(errors.New("boom")).
			Msg("request done")
	})

	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, float64(7), entry["count"])
	assert.Equal(t, "boom", entry["error"])
}

func TestWithFields(t *testing.T) {
	entries := captureLog(t, "info", func(l Logger) {
		l.WithFields(map[string]any{"component": "client"}).Info().Msg("hello")
	})

	require.Len(t, entries, 1)
	assert.Equal(t, "client", entries[0]["component"])
}

func TestLoggerRedactsSensitiveFields(t *testing.T) {
	entries := captureLog(t, "info", func(l Logger) {
		l.Info().
			Str("url", "https://gitlab.example.com/api/v4/projects?private_token=s3cret&per_page=20").
			Str("private_token", "s3cret").
			Interface("headers", map[string]string{"PRIVATE-TOKEN": "s3cret", "Accept": "application/json"}).
			Msg("outbound")
	})

	require.Len(t, entries, 1)
	raw, err := json.Marshal(entries[0])
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "s3cret")
	assert.Contains(t, entries[0]["url"], "per_page=20")
}
