package reader

import (
	"testing"

	"github.com/michaelmacinnis/sketch/internal/reader/ast"
	"github.com/michaelmacinnis/sketch/internal/type/errscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanced(t *testing.T) {
	for text, depth := range map[string]int{
		"":                          0,
		"update []":                 0,
		"make scene [300; 300; ->[": 2,
		`log ["[["]`:                0,
		`log ["\"[" ; [`:            2,
		";; [[[\nupdate [":          1,
		"]]":                        -2,
		`log ["abc`:                 1,
	} {
		assert.Equal(t, depth, Balanced(text), text)
	}
}

func TestReadLocatesErrors(t *testing.T) {
	_, err := Read("broken.sk", "update [] update []")
	require.Error(t, err)
	assert.ErrorIs(t, err, errscript.ErrSyntax)

	e := errscript.As(err)
	require.NotNil(t, e)
	assert.Equal(t, "broken.sk", e.Source.Name)
	assert.Equal(t, 1, e.Source.Line)
	assert.Equal(t, 11, e.Source.Char)
}

func TestScanWaitsForBalance(t *testing.T) {
	r := New("repl")

	s, err := r.Scan("make scene [300; 300; -> [..[")
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.True(t, r.Pending())

	s, err = r.Scan("  update []")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = r.Scan("]]]")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Len(t, s.Body, 1)
	assert.False(t, r.Pending())
}

func TestScanDiscardsBadUnits(t *testing.T) {
	r := New("repl")

	_, err := r.Scan("update [] ]")
	require.Error(t, err)
	assert.False(t, r.Pending())

	s, err := r.Scan("<- [SKETCH]")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Len(t, s.Imports, 1)
}

func TestReset(t *testing.T) {
	r := New("repl")

	_, err := r.Scan("..[")
	require.NoError(t, err)
	require.True(t, r.Pending())

	r.Reset()
	assert.False(t, r.Pending())
}

func TestReadRejectsUnterminatedString(t *testing.T) {
	_, err := Read("open.sk", `log [1]; "abc`)
	require.Error(t, err)
	assert.ErrorIs(t, err, errscript.ErrSyntax)

	e := errscript.As(err)
	require.NotNil(t, e)
	assert.Equal(t, 1, e.Source.Line)
	assert.Equal(t, 10, e.Source.Char)
}

func TestScanWaitsForString(t *testing.T) {
	r := New("repl")

	s, err := r.Scan(`"a`)
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.True(t, r.Pending())

	s, err = r.Scan(`b"`)
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Len(t, s.Body, 1)

	str, ok := s.Body[0].(*ast.String)
	require.True(t, ok)
	assert.Equal(t, "a\nb", str.Value)
}
