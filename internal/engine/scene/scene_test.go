package scene

import (
	"math"
	"testing"

	"github.com/michaelmacinnis/sketch/internal/engine/shape"
	"github.com/michaelmacinnis/sketch/internal/type/errscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensions(t *testing.T) {
	_, err := New(0, 300, Redraw)
	assert.ErrorIs(t, err, errscript.ErrInvalidValue)

	_, err = New(300, -1, Redraw)
	assert.ErrorIs(t, err, errscript.ErrInvalidValue)

	sc, err := New(300, 200, Redraw)
	require.NoError(t, err)
	assert.Equal(t, -1, sc.Frame())
}

func TestPaintOrder(t *testing.T) {
	sc, err := New(10, 10, Redraw)
	require.NoError(t, err)

	sc.BeginFrame()

	a, b := shape.New(shape.Rectangle), shape.New(shape.Ellipse)
	require.NoError(t, sc.Add(a))
	require.NoError(t, sc.Add(b))

	snap := sc.Snapshot()
	require.Len(t, snap.Shapes, 2)
	assert.Equal(t, shape.Rectangle, snap.Shapes[0].Kind)
	assert.Equal(t, shape.Ellipse, snap.Shapes[1].Kind)
}

func TestSnapshotIsACopy(t *testing.T) {
	sc, err := New(10, 10, Redraw)
	require.NoError(t, err)

	sc.BeginFrame()
	sc.SetBackground("black")

	s := shape.New(shape.Rectangle)
	require.NoError(t, sc.Add(s))

	snap := sc.Snapshot()

	s.StrokeColor = "red"
	sc.SetBackground("white")

	assert.Equal(t, shape.Color("black"), snap.Background)
	assert.Equal(t, shape.Color(""), snap.Shapes[0].StrokeColor)
	assert.False(t, snap.Shapes[0].Committed())
}

func TestRedraw(t *testing.T) {
	sc, err := New(10, 10, Redraw)
	require.NoError(t, err)

	sc.BeginFrame()
	sc.SetBackground("black")
	require.NoError(t, sc.Add(shape.New(shape.Rectangle)))

	old := sc.Snapshot()

	sc.BeginFrame()
	assert.Equal(t, 1, sc.Frame())
	assert.Equal(t, 0, sc.Len())
	assert.Equal(t, shape.Color("black"), sc.Background())

	// Clearing must not disturb earlier snapshots.
	assert.Len(t, old.Shapes, 1)
}

func TestAccumulate(t *testing.T) {
	sc, err := New(10, 10, Accumulate)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		sc.BeginFrame()
		require.NoError(t, sc.Add(shape.New(shape.Ellipse)))
	}

	assert.Equal(t, 3, sc.Len())
	assert.Equal(t, 2, sc.Snapshot().Frame)
}

func TestSingleOwner(t *testing.T) {
	first, err := New(10, 10, Redraw)
	require.NoError(t, err)

	second, err := New(10, 10, Redraw)
	require.NoError(t, err)

	s := shape.New(shape.Rectangle)
	require.NoError(t, first.Add(s))

	err = second.Add(s)
	assert.ErrorIs(t, err, errscript.ErrInvalidValue)
	assert.Equal(t, 0, second.Len())
}

func TestNonFiniteDimensions(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := New(v, 300, Redraw)
		assert.ErrorIs(t, err, errscript.ErrInvalidValue, "%v", v)

		_, err = New(300, v, Accumulate)
		assert.ErrorIs(t, err, errscript.ErrInvalidValue, "%v", v)
	}
}
