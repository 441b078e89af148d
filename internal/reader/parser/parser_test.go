package parser

import (
	"testing"

	"github.com/michaelmacinnis/sketch/internal/reader/ast"
	"github.com/michaelmacinnis/sketch/internal/reader/lexer"
	"github.com/michaelmacinnis/sketch/internal/type/errscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rect = `;; The motivating script.
<- ["SKETCH"; "MATH"; "CONSOLE"] [LIBRARY];
<- ["make scene"; "set fill"; "update"; "background"; "make rectangle"] [SKETCH];

make scene [300; 300; -> [..[
  background ["black"];
  |> [
    make rectangle [width [0.5]; height [0.5]; width [1]; height [1]];
    | no fill [];
    | setlinewidth [10];
    | set stroke ["crimson"]
  ];
  update []
]]]
`

func parse(t *testing.T, s string) (*ast.Script, error) {
	t.Helper()

	l := lexer.New("test")

	l.Scan(s)
	l.Scan("\n")
	l.Close()

	return New("test", l.Token).Parse()
}

// check parses s, prints it, and parses the printed form again. Both
// printed forms must match.
func check(t *testing.T, s string) {
	t.Helper()

	first, err := parse(t, s)
	if err != nil {
		t.Fatalf("Parse (%s) failed: %v", s, err)
	}

	p := first.Literal()

	second, err := parse(t, p)
	if err != nil {
		t.Fatalf("Reparse (%s) failed: %v", p, err)
	}

	if r := second.Literal(); p != r {
		t.Fatalf("Parsed (%s) and reparsed (%s) do not match", p, r)
	}
}

func TestDefinition(t *testing.T) {
	check(t, `:= [corner; -> [s; |> [s; | set position [0; 0]]]]`)
}

func TestEllipse(t *testing.T) {
	check(t, `make ellipse [10; 20; 30; 40]`)
}

func TestImportAll(t *testing.T) {
	check(t, `<- [SKETCH]`)
}

func TestNested(t *testing.T) {
	check(t, `..[..[..[update []]]; frame []]`)
}

func TestRect(t *testing.T) {
	check(t, rect)
}

func TestStringEscapes(t *testing.T) {
	check(t, `log ["tab\there \"quoted\""]`)
}

func TestRectStructure(t *testing.T) {
	s, err := parse(t, rect)
	require.NoError(t, err)

	require.Len(t, s.Imports, 2)
	assert.Equal(t, "LIBRARY", s.Imports[0].From)
	assert.Equal(t, []string{"SKETCH", "MATH", "CONSOLE"}, s.Imports[0].Names)
	assert.Equal(t, "SKETCH", s.Imports[1].From)
	assert.Contains(t, s.Imports[1].Names, "make rectangle")

	require.Len(t, s.Body, 1)

	call, ok := s.Body[0].(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "make scene", call.Name)
	require.Len(t, call.Args, 3)

	lambda, ok := call.Args[2].(*ast.Lambda)
	require.True(t, ok)
	assert.Empty(t, lambda.Params)

	block, ok := lambda.Body.(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Body, 3)

	pl, ok := block.Body[1].(*ast.Pipeline)
	require.True(t, ok)

	target, ok := pl.Target.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "make rectangle", target.Name)
	assert.Len(t, target.Args, 4)

	names := make([]string, len(pl.Steps))
	for i, st := range pl.Steps {
		names[i] = st.Name
	}

	assert.Equal(t, []string{"no fill", "setlinewidth", "set stroke"}, names)
}

func TestImportAllHasNilNames(t *testing.T) {
	s, err := parse(t, `<- [SKETCH]`)
	require.NoError(t, err)
	require.Len(t, s.Imports, 1)
	assert.Nil(t, s.Imports[0].Names)

	s, err = parse(t, `<- [] [SKETCH]`)
	require.NoError(t, err)
	require.Len(t, s.Imports, 1)
	assert.NotNil(t, s.Imports[0].Names)
	assert.Empty(t, s.Imports[0].Names)
}

func TestLambdaParams(t *testing.T) {
	s, err := parse(t, `-> [a; b; add [a; b]]`)
	require.NoError(t, err)

	l, ok := s.Body[0].(*ast.Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, l.Params)
}

func TestSyntaxErrors(t *testing.T) {
	for _, s := range []string{
		`make scene [300; 300`,
		`update [] update []`,
		`..[<- [SKETCH]]`,
		`|> [make rectangle []; no fill []]`,
		`-> [1; 2]`,
		`:= [1; 2]`,
		`a @ b`,
		`<- [[x]] [SKETCH]`,
		`log [1]; "abc`,
		`log ["abc]`,
	} {
		_, err := parse(t, s)
		require.Error(t, err, s)
		assert.ErrorIs(t, err, errscript.ErrSyntax, s)

		e := errscript.As(err)
		require.NotNil(t, e, s)
		assert.True(t, e.Source.Known(), s)
	}
}

func TestErrorMessages(t *testing.T) {
	for s, detail := range map[string]string{
		`log [@]`:       `unexpected character "@"`,
		`log [1]; "abc`: "unterminated string",
		`log [1 @]`:     `expected ';' got character "@"`,
	} {
		_, err := parse(t, s)
		require.Error(t, err, s)
		assert.Contains(t, err.Error(), detail, s)
		assert.NotContains(t, err.Error(), "unexpected unexpected", s)
	}
}
