package ui

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/michaelmacinnis/sketch/internal/reader/ast"
	"github.com/michaelmacinnis/sketch/internal/type/errscript"
	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	line string
	err  error
}

type script struct {
	history   []string
	prompts   []string
	responses []response
}

func (s *script) AppendHistory(item string) {
	s.history = append(s.history, item)
}

func (s *script) Prompt(p string) (string, error) {
	s.prompts = append(s.prompts, p)

	if len(s.responses) == 0 {
		return "", io.EOF
	}

	r := s.responses[0]
	s.responses = s.responses[1:]

	return r.line, r.err
}

type recorder struct {
	errors []error
	units  []*ast.Script
}

func (r *recorder) Evaluate(unit *ast.Script) {
	r.units = append(r.units, unit)
}

func (r *recorder) Names() []string {
	return []string{"make ellipse", "make rectangle", "make scene", "update"}
}

func (r *recorder) Report(err error) {
	r.errors = append(r.errors, err)
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoop(t *testing.T) {
	l := &script{responses: []response{
		{line: "make scene [10; 10; -> [..["},
		{line: "  update []"},
		{line: "]]]"},
		{line: "log [1]"},
	}}
	r := &recorder{}

	require.NoError(t, Loop(l, r, quiet()))

	assert.Len(t, r.units, 2)
	assert.Empty(t, r.errors)
	assert.Equal(t, []string{prompt, continuation, continuation, prompt, prompt}, l.prompts)
	assert.Len(t, l.history, 4)
}

func TestAbortDiscardsPartialUnit(t *testing.T) {
	l := &script{responses: []response{
		{line: "make scene ["},
		{err: liner.ErrPromptAborted},
		{line: "log [1]"},
	}}
	r := &recorder{}

	require.NoError(t, Loop(l, r, quiet()))

	assert.Len(t, r.units, 1)
	assert.Equal(t, []string{prompt, continuation, prompt, prompt}, l.prompts)
}

func TestSyntaxErrorsAreReported(t *testing.T) {
	l := &script{responses: []response{
		{line: "log [1]]"},
		{line: "log [2]"},
	}}
	r := &recorder{}

	require.NoError(t, Loop(l, r, quiet()))

	require.Len(t, r.errors, 1)
	assert.ErrorIs(t, r.errors[0], errscript.ErrSyntax)
	assert.Len(t, r.units, 1)
}

func TestPromptFailure(t *testing.T) {
	broken := errors.New("terminal gone")

	l := &script{responses: []response{{err: broken}}}

	assert.ErrorIs(t, Loop(l, &recorder{}, quiet()), broken)
}

func TestCompleter(t *testing.T) {
	c := Completer((&recorder{}).Names)

	head, cs, tail := c("make scene [10; 10; -> [make ", 29)
	assert.Equal(t, "make scene [10; 10; -> [", head)
	assert.Equal(t, []string{"make ellipse", "make rectangle", "make scene"}, cs)
	assert.Equal(t, "", tail)

	head, cs, tail = c("up []", 2)
	assert.Equal(t, "", head)
	assert.Equal(t, []string{"update"}, cs)
	assert.Equal(t, " []", tail)
}
