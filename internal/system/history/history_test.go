package history

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), Name)

	require.NoError(t, Save(path, func(w io.Writer) (int, error) {
		return io.WriteString(w, "update []\n")
	}))

	var b bytes.Buffer

	require.NoError(t, Load(path, func(r io.Reader) (int, error) {
		n, err := b.ReadFrom(r)
		return int(n), err
	}))

	assert.Equal(t, "update []\n", b.String())
}

func TestMissing(t *testing.T) {
	called := false

	err := Load(filepath.Join(t.TempDir(), "missing"), func(io.Reader) (int, error) {
		called = true
		return 0, nil
	})

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestPath(t *testing.T) {
	t.Setenv("HOME", "/home/sketch")

	assert.Equal(t, filepath.Join("/home/sketch", Name), Path())
}
