package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(&buf, Options{Format: FormatJSON})
		require.NoError(t, err)

		logger.Warn("failed to rewrite file", zap.String("path", "a.txt"), zap.Error(errors.New("disk full")))
		require.NoError(t, logger.Sync())

		var entry map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		assert.Equal(t, "failed to rewrite file", entry["msg"])
		assert.Equal(t, "warn", entry["level"])
		assert.Equal(t, "a.txt", entry["path"])
		assert.Equal(t, "disk full", entry["error"])

		ts, ok := entry["timestamp"].(string)
		require.True(t, ok, "timestamp missing")
		logTime, err := time.Parse(time.RFC3339, ts)
		require.NoError(t, err)
		assert.Less(t, time.Since(logTime), time.Minute)
	})

	t.Run("ConsoleDefault", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(&buf, Options{})
		require.NoError(t, err)

		logger.Info("normalize started")
		logger.Debug("hidden")

		out := buf.String()
		assert.Contains(t, out, "INFO")
		assert.Contains(t, out, "normalize started")
		assert.NotContains(t, out, "hidden")
	})

	t.Run("Verbose", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(&buf, Options{Verbose: true})
		require.NoError(t, err)

		logger.Debug("converted file", zap.String("path", "b.txt"))

		out := buf.String()
		assert.True(t, strings.Contains(out, "DEBUG"), out)
		assert.Contains(t, out, "b.txt")
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := New(&bytes.Buffer{}, Options{Format: "xml"})
		assert.Error(t, err)
	})
}
