package navhandlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/navkit/navmux"
)

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestLoggingMiddleware(t *testing.T) {
	t.Run("logs successful navigation", func(t *testing.T) {
		var buf bytes.Buffer
		mw := LoggingMiddleware(LoggingConfig{Logger: newJSONLogger(&buf)})

		_, err := dispatch(t, "/users/:id", "/users/7", mw,
			terminal(func(*navmux.Request, *navmux.Response) error { return nil }))
		require.NoError(t, err)

		rec := decodeRecord(t, &buf)
		assert.Equal(t, "INFO", rec["level"])
		assert.Equal(t, "navigation", rec["msg"])
		assert.Equal(t, "/users/7", rec["path"])
		assert.Equal(t, "/users/:id", rec["route"])
		assert.Contains(t, rec, "duration")
		assert.NotContains(t, rec, "id")
	})

	t.Run("configured level", func(t *testing.T) {
		var buf bytes.Buffer
		mw := LoggingMiddleware(LoggingConfig{Logger: newJSONLogger(&buf), Level: slog.LevelDebug})

		_, err := dispatch(t, "/a", "/a", mw, terminal(func(*navmux.Request, *navmux.Response) error { return nil }))
		require.NoError(t, err)
		assert.Equal(t, "DEBUG", decodeRecord(t, &buf)["level"])
	})

	t.Run("logs request id", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := dispatch(t, "/a", "/a",
			RequestIDMiddleware(RequestIDConfig{GenerateFunc: func(*navmux.Request) string { return "nav-1" }}),
			LoggingMiddleware(LoggingConfig{Logger: newJSONLogger(&buf)}),
			terminal(func(*navmux.Request, *navmux.Response) error { return nil }),
		)
		require.NoError(t, err)
		assert.Equal(t, "nav-1", decodeRecord(t, &buf)["id"])
	})

	t.Run("logs handler error", func(t *testing.T) {
		var buf bytes.Buffer
		mw := LoggingMiddleware(LoggingConfig{Logger: newJSONLogger(&buf)})

		_, err := dispatch(t, "/a", "/a", mw,
			terminal(func(*navmux.Request, *navmux.Response) error { return errors.New("boom") }))
		require.Error(t, err)

		rec := decodeRecord(t, &buf)
		assert.Equal(t, "ERROR", rec["level"])
		assert.Equal(t, "navigation failed", rec["msg"])
		assert.Equal(t, "boom", rec["error"])
	})

	t.Run("logs terminal response error key", func(t *testing.T) {
		var buf bytes.Buffer
		mw := LoggingMiddleware(LoggingConfig{Logger: newJSONLogger(&buf)})

		_, err := dispatch(t, "/a", "/a", mw,
			terminal(func(_ *navmux.Request, res *navmux.Response) error {
				res.NotAllowed()
				return nil
			}))
		require.NoError(t, err)

		rec := decodeRecord(t, &buf)
		assert.Equal(t, "WARN", rec["level"])
		assert.Equal(t, navmux.KeyNotAllowed, rec["key"])
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		assert.NotPanics(t, func() {
			_, err := dispatch(t, "/a", "/a", LoggingMiddleware(LoggingConfig{}),
				terminal(func(*navmux.Request, *navmux.Response) error { return nil }))
			require.NoError(t, err)
		})
	})
}
