package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":        slog.LevelWarn,
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"-4":      slog.LevelDebug,
		"loud":    slog.LevelWarn,
	} {
		assert.Equal(t, want, ParseLevel(in, slog.LevelWarn), in)
	}
}

func TestVerbose(t *testing.T) {
	var b bytes.Buffer

	l := To(&b, Settings{Level: "error"})
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))

	l = To(&b, Settings{Level: "error", Verbose: true})
	assert.True(t, l.Enabled(context.Background(), slog.LevelDebug))

	l.Debug("frame presented", "frame", 3)
	assert.Contains(t, b.String(), "frame=3")
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketch.log")

	l, closer := New(Settings{Filename: path, MaxSize: 1})
	l.Info("program started", "name", "rect")
	require.NoError(t, closer.Close())

	text, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(text), "program started")
}
