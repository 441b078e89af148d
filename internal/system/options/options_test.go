package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScripts(t *testing.T) {
	require.NoError(t, ParseArgs([]string{"-f", "5", "--sink=record", "a.sketch", "b.sketch"}))

	assert.Equal(t, []string{"a.sketch", "b.sketch"}, Scripts())
	assert.Equal(t, "", Command())
	assert.Equal(t, "sketch.yaml", Config())
	assert.False(t, Interactive())
	assert.False(t, List())

	assert.Equal(t, map[string]interface{}{
		"run.frames": 5,
		"sink.kind":  "record",
	}, Overrides())
}

func TestCommand(t *testing.T) {
	require.NoError(t, ParseArgs([]string{"-a", "-V", "--log=x.log", "-c", "log [1]"}))

	assert.Equal(t, "log [1]", Command())
	assert.Empty(t, Scripts())
	assert.False(t, Interactive())

	o := Overrides()
	assert.Equal(t, true, o["scene.accumulate"])
	assert.Equal(t, true, o["log.verbose"])
	assert.Equal(t, "x.log", o["log.filename"])
}

func TestStdin(t *testing.T) {
	require.NoError(t, ParseArgs([]string{"-s"}))
	assert.True(t, Interactive())

	require.NoError(t, ParseArgs([]string{"-i", "-s"}))
	assert.False(t, Interactive())
}

func TestList(t *testing.T) {
	require.NoError(t, ParseArgs([]string{"-l", "rect.sketch"}))

	assert.True(t, List())
	assert.Equal(t, []string{"rect.sketch"}, Scripts())
	assert.Empty(t, Overrides())
}

func TestBadFrames(t *testing.T) {
	err := ParseArgs([]string{"--frames=many", "a.sketch"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--frames")
}
