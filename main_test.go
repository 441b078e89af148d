package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/michaelmacinnis/sketch/internal/engine/scene"
	"github.com/michaelmacinnis/sketch/internal/render/record"
	"github.com/michaelmacinnis/sketch/internal/system/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rect.sketch")
	require.NoError(t, os.WriteFile(path, []byte(`
<- [SKETCH] [LIBRARY];
<- [make scene; update] [SKETCH];
`), 0o600))

	var b bytes.Buffer
	require.NoError(t, list(&b, path))

	out := b.String()
	assert.Contains(t, out, "Symbol")
	assert.Contains(t, out, "make scene")
	assert.Contains(t, out, "update")
	assert.NotContains(t, out, "make ellipse")
}

func TestUnknownSink(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"), map[string]interface{}{
		"sink.kind": "console,plotter",
	})
	require.NoError(t, err)

	g, ctx := errgroup.WithContext(context.Background())

	_, _, err = sinks(ctx, g, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plotter")
	assert.NoError(t, g.Wait())
}

func TestRecordSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.yaml")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"), map[string]interface{}{
		"sink.kind":   "record",
		"sink.record": path,
	})
	require.NoError(t, err)

	g, ctx := errgroup.WithContext(context.Background())

	sink, release, err := sinks(ctx, g, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	require.NoError(t, sink.Present(ctx, scene.Snapshot{Frame: 0, Width: 10, Height: 10}))
	release()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer f.Close()

	frames, err := record.Load(f)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, 10.0, frames[0].Width)
}
