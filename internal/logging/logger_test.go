package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line %q", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger(t *testing.T) {
	t.Run("creates log file in directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs")

		logger, err := NewLogger(dir, LevelDebug)
		require.NoError(t, err)
		logger.Info("hello")
		require.NoError(t, logger.Close())

		data, err := os.ReadFile(filepath.Join(dir, LogFileName))
		require.NoError(t, err)
		entries := decodeLines(t, data)
		require.Len(t, entries, 1)
		assert.Equal(t, "hello", entries[0]["msg"])
	})

	t.Run("writes to stderr when dir is empty", func(t *testing.T) {
		logger, err := NewLogger("", LevelInfo)
		require.NoError(t, err)
		assert.Nil(t, logger.file)
		assert.NoError(t, logger.Close())
	})
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelWarn)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	entries := decodeLines(t, buf.Bytes())
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "ERROR", entries[1]["level"])
}

func TestWithRunCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriterLogger(&buf, LevelDebug)
	child := base.WithRun("run-123").With("input", "plan.yaml", 42, "skipped")

	child.Info("calculated", "subjects", 6)
	base.Info("plain")

	entries := decodeLines(t, buf.Bytes())
	require.Len(t, entries, 2)
	assert.Equal(t, "run-123", entries[0]["run_id"])
	assert.Equal(t, "plan.yaml", entries[0]["input"])
	assert.EqualValues(t, 6, entries[0]["subjects"])
	assert.NotContains(t, entries[1], "run_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel(" Warn "))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
	assert.True(t, IsValidLevel("error"))
	assert.False(t, IsValidLevel("trace"))
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Error("discarded")
	assert.NoError(t, logger.Close())
}
