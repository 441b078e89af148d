// Released under an MIT license. See LICENSE.

// Package reader encapsulates the sketch lexer and parser.
package reader

import (
	"strings"

	"github.com/michaelmacinnis/sketch/internal/reader/ast"
	"github.com/michaelmacinnis/sketch/internal/reader/lexer"
	"github.com/michaelmacinnis/sketch/internal/reader/parser"
)

// Read parses the complete script text labelled name.
func Read(name, text string) (*ast.Script, error) {
	l := lexer.New(name)

	// A trailing newline terminates whatever token is last.
	l.Scan(text)
	l.Scan("\n")
	l.Close()

	return parser.New(name, l.Token).Parse()
}

// T (reader) accumulates lines until they form a complete unit.
type T struct {
	lines []string
	name  string
}

type reader = T

// New creates a new reader for name.
func New(name string) *T {
	return &T{name: name}
}

// Pending returns true if a partial unit is waiting for more lines.
func (r *reader) Pending() bool {
	return len(r.lines) > 0
}

// Reset discards any partial unit.
func (r *reader) Reset() {
	r.lines = nil
}

// Scan adds line to the current unit. It returns the parsed script once the
// brackets in the unit balance and no string is left open, or nil if more
// lines are needed.
// If the unit cannot be parsed, Scan returns the error and discards it.
func (r *reader) Scan(line string) (*ast.Script, error) {
	r.lines = append(r.lines, line)

	text := strings.Join(r.lines, "\n")
	if depth, quoted := balance(text); depth > 0 || (depth == 0 && quoted) {
		return nil, nil
	}

	r.Reset()

	return Read(r.name, text)
}

// Balanced returns the number of unclosed '[' in text. A negative result
// means there are more ']' than '['. Brackets inside strings and comments
// are ignored.
func Balanced(text string) int {
	depth, _ := balance(text)
	return depth
}

func balance(text string) (depth int, quoted bool) {
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case escaped:
			escaped = false
		case quoted && c == '\\':
			escaped = true
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == ';' && i+1 < len(text) && text[i+1] == ';':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case c == '[':
			depth++
		case c == ']':
			depth--
		}
	}

	return depth, quoted
}
