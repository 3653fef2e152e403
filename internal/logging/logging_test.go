package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"bogus": slog.LevelInfo,
		"":      slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestBuildLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := BuildLogger("warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "page", "ls")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "page=ls")
}

func TestOpenFile(t *testing.T) {
	t.Run("empty path discards", func(t *testing.T) {
		w, err := OpenFile("")
		require.NoError(t, err)
		_, err = w.Write([]byte("x"))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	})

	t.Run("appends to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "manview.log")
		for range 2 {
			w, err := OpenFile(path)
			require.NoError(t, err)
			_, err = w.Write([]byte("line\n"))
			require.NoError(t, err)
			require.NoError(t, w.Close())
		}
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "line\nline\n", string(data))
	})
}
