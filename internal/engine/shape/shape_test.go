package shape

import (
	"math"
	"testing"

	"github.com/michaelmacinnis/sketch/internal/type/errscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := New(Rectangle)

	assert.Equal(t, Rectangle, s.Kind)
	assert.True(t, s.FillEnabled)
	assert.True(t, s.Visible)
	assert.Equal(t, DefaultLineWidth, s.LineWidth)
	assert.Equal(t, Point{}, s.Position)
	assert.False(t, s.Committed())
}

func TestTaggedLastWins(t *testing.T) {
	s, err := Construct(Rectangle, []Arg{
		Tagged(TagWidth, 0.5),
		Tagged(TagHeight, 0.5),
		Tagged(TagWidth, 1),
		Tagged(TagHeight, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, Rel(1), s.Width)
	assert.Equal(t, Rel(1), s.Height)
}

func TestPositional(t *testing.T) {
	s, err := Construct(Ellipse, []Arg{Positional(10), Positional(20)})
	require.NoError(t, err)
	assert.Equal(t, Abs(10), s.Width)
	assert.Equal(t, Abs(20), s.Height)

	s, err = Construct(Rectangle, []Arg{
		Positional(1), Positional(2), Positional(3), Positional(4),
	})
	require.NoError(t, err)
	assert.Equal(t, Point{X: Abs(1), Y: Abs(2)}, s.Position)
	assert.Equal(t, Abs(3), s.Width)
	assert.Equal(t, Abs(4), s.Height)
}

func TestMixed(t *testing.T) {
	s, err := Construct(Rectangle, []Arg{
		Positional(30), Positional(40), Tagged(TagWidth, 0.25),
	})
	require.NoError(t, err)
	assert.Equal(t, Rel(0.25), s.Width)
	assert.Equal(t, Abs(40), s.Height)
}

func TestArity(t *testing.T) {
	_, err := Construct(Rectangle, []Arg{Positional(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, errscript.ErrArityMismatch)
	assert.Contains(t, err.Error(), "0, 2, 4")
}

func TestInvalid(t *testing.T) {
	_, err := Construct(Rectangle, []Arg{Positional(-1), Positional(2)})
	assert.ErrorIs(t, err, errscript.ErrInvalidValue)

	_, err = Construct(Ellipse, []Arg{Tagged("depth", 1)})
	assert.ErrorIs(t, err, errscript.ErrInvalidValue)
}

func TestAttach(t *testing.T) {
	s := New(Ellipse)
	owner, other := new(int), new(int)

	require.NoError(t, s.Attach(owner))
	assert.True(t, s.Committed())
	require.NoError(t, s.Attach(owner))

	err := s.Attach(other)
	assert.ErrorIs(t, err, errscript.ErrInvalidValue)

	c := s.Clone()
	assert.False(t, c.Committed())
	assert.Equal(t, s.Kind, c.Kind)
}

func TestText(t *testing.T) {
	b, err := Ellipse.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ellipse", string(b))

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("ellipse")))
	assert.Equal(t, Ellipse, k)
	assert.Error(t, k.UnmarshalText([]byte("triangle")))

	var u Unit
	require.NoError(t, u.UnmarshalText([]byte("relative")))
	assert.Equal(t, Relative, u)

	assert.Equal(t, "0.5r", Rel(0.5).String())
	assert.Equal(t, "300", Abs(300).String())
}

func TestNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		for _, args := range [][]Arg{
			{Positional(v), Positional(2)},
			{Positional(2), Positional(v)},
			{Tagged(TagWidth, v)},
			{Positional(v), Positional(0), Positional(1), Positional(1)},
			{Positional(0), Positional(v), Positional(1), Positional(1)},
		} {
			_, err := Construct(Rectangle, args)
			assert.ErrorIs(t, err, errscript.ErrInvalidValue, "%v", args)
		}
	}

	assert.True(t, Finite(0))
	assert.False(t, Finite(math.NaN()))
	assert.False(t, Finite(math.Inf(-1)))
}
