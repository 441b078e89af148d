package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/michaelmacinnis/sketch/internal/engine/scene"
	"github.com/michaelmacinnis/sketch/internal/system/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, c.Frames())
	assert.Equal(t, scene.Redraw, c.Policy())
	assert.Equal(t, Console, c.Sink())
	assert.Equal(t, "frames.yaml", c.SinkRecord())
	assert.Equal(t, "localhost:8080", c.SinkListen())

	l := c.Logging()
	assert.Equal(t, logging.DefaultFilename, l.Filename)
	assert.Equal(t, "info", l.Level)
	assert.False(t, l.Verbose)
	assert.True(t, l.Compress)
}

func TestFileEnvAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
run:
  frames: 10
scene:
  accumulate: true
sink:
  kind: record
  record: out.yaml
log:
  level: warn
`), 0o600))

	t.Setenv("SKETCH_SINK_LISTEN", ":9999")

	c, err := Load(path, map[string]interface{}{
		"sink.kind":   "ws",
		"log.verbose": true,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, c.Frames())
	assert.Equal(t, scene.Accumulate, c.Policy())
	assert.Equal(t, WS, c.Sink())
	assert.Equal(t, "out.yaml", c.SinkRecord())
	assert.Equal(t, ":9999", c.SinkListen())

	l := c.Logging()
	assert.Equal(t, "warn", l.Level)
	assert.True(t, l.Verbose)
}

func TestMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run: [frames\n"), 0o600))

	_, err := Load(path, nil)
	assert.Error(t, err)
}
