// Released under an MIT license. See LICENSE.

// Package lexer provides a lexical scanner for the sketch language.
//
// The sketch lexer adapts the state function approach used by Go's
// text/template lexer and described in detail in Rob Pike's talk "Lexical
// Scanning in Go". See https://talks.golang.org/2011/lex.slide for more
// information.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/michaelmacinnis/sketch/internal/reader/token"
	"github.com/michaelmacinnis/sketch/internal/type/loc"
)

// T holds the state of the scanner.
type T struct {
	bytes  string   // Buffer being scanned.
	closed bool     // No more buffers will be scanned.
	first  int      // Index of the current token's first byte.
	index  int      // Index of the current byte.
	queue  []string // Buffers waiting to be scanned.
	state  action   // Current action.

	source loc.T // Location of the current byte.
	start  loc.T // Location of the current token's first byte.

	tokens chan *token.T
}

// New creates a new T. Label can be a file name or other identifier.
func New(label string) *T {
	l := &T{
		source: loc.T{
			Char: 1,
			Line: 1,
			Name: label,
		},
	}

	l.start = l.source
	l.state = skipWhitespace

	return l
}

// Close marks the end of input. A token still waiting for more input,
// such as an unterminated string, is then returned as an Error token.
func (l *T) Close() {
	l.closed = true
	l.Scan("")
}

// Scan passes a text buffer to the lexer for scanning.
// If a buffer is currently being scanned, the new buffer will
// be appended to the list of buffers waiting to be scanned.
func (l *T) Scan(text string) {
	l.queue = append(l.queue, text)
}

// Text is used to return the text corresponding to the current token.
func (l *T) Text() string {
	return l.bytes[l.first:l.index]
}

// Token returns the next scanned token, or nil if no token is available.
func (l *T) Token() *token.T {
	for {
		l.gather()
		if len(l.bytes) == 0 {
			return nil
		}

		select {
		case t := <-l.tokens:
			return t
		default:
			state := l.state(l)
			if state != nil {
				l.state = state
			} else if l.closed && l.first < len(l.bytes) {
				l.index = len(l.bytes)
				l.emit(token.Error, l.Text())
				l.state = skipWhitespace
			} else {
				close(l.tokens)
			}
		}
	}
}

type action func(*T) action

const eof = -1

func (l *T) accept(r rune, w int) {
	if r == '\n' {
		l.source.Line++
		l.source.Char = 1
	} else {
		l.source.Char++
	}

	l.index += w
}

func (l *T) emit(c token.Class, v string) {
	l.tokens <- token.New(c, v, l.start)
	l.skip()
}

func (l *T) gather() {
	if len(l.queue) == 0 {
		return
	}

	bytes := strings.Join(l.queue, "")

	if l.first < len(l.bytes) {
		// Prepend leftover to new bytes.
		bytes = l.bytes[l.first:] + bytes
	}

	l.queue = nil
	l.bytes = bytes
	l.index -= l.first
	l.first = 0
	l.tokens = make(chan *token.T, 16)
}

func (l *T) next() rune {
	r, w := l.peek()
	if w > 0 {
		l.accept(r, w)
	}

	return r
}

func (l *T) peek() (rune, int) {
	r, w := rune(eof), 0
	if l.index < len(l.bytes) {
		r, w = utf8.DecodeRuneInString(l.bytes[l.index:])
	}

	return r, w
}

func (l *T) peekAfter() rune {
	_, w := l.peek()
	if l.index+w < len(l.bytes) {
		r, _ := utf8.DecodeRuneInString(l.bytes[l.index+w:])
		return r
	}

	return eof
}

func (l *T) skip() {
	l.start = l.source
	l.first = l.index
}

// T states.

func afterColon(l *T) action {
	r, w := l.peek()

	switch r {
	case eof:
		return nil
	case '=':
		l.accept(r, w)
		l.emit(token.Define, l.Text())
	default:
		l.emit(token.Error, l.Text())
	}

	return skipWhitespace
}

func afterDot(l *T) action {
	r, w := l.peek()

	switch {
	case r == eof:
		return nil
	case r == '.':
		l.accept(r, w)
		l.emit(token.Block, l.Text())
	case isDigit(r):
		return scanFraction
	default:
		l.emit(token.Error, l.Text())
	}

	return skipWhitespace
}

func afterLessThan(l *T) action {
	r, w := l.peek()

	switch r {
	case eof:
		return nil
	case '-':
		l.accept(r, w)
		l.emit(token.Import, l.Text())
	default:
		l.emit(token.Error, l.Text())
	}

	return skipWhitespace
}

func afterMinus(l *T) action {
	r, w := l.peek()

	switch {
	case r == eof:
		return nil
	case r == '>':
		l.accept(r, w)
		l.emit(token.Lambda, l.Text())
	case isDigit(r):
		return scanNumber
	case r == '.' && isDigit(l.peekAfter()):
		l.accept(r, w)
		return scanFraction
	default:
		l.emit(token.Error, l.Text())
	}

	return skipWhitespace
}

func afterPipe(l *T) action {
	r, w := l.peek()

	switch r {
	case eof:
		return nil
	case '>':
		l.accept(r, w)
		l.emit(token.Pipeline, l.Text())
	default:
		l.emit(token.Pipe, l.Text())
	}

	return skipWhitespace
}

func afterSemicolon(l *T) action {
	r, w := l.peek()

	switch r {
	case eof:
		return nil
	case ';':
		l.accept(r, w)
		return skipComment
	}

	l.emit(';', l.Text())

	return skipWhitespace
}

func scanExponent(l *T) action {
	r, w := l.peek()
	if r == '+' || r == '-' {
		l.accept(r, w)
	}

	for {
		r, w := l.peek()

		switch {
		case r == eof:
			return nil
		case isDigit(r):
			l.accept(r, w)
		default:
			l.emit(token.Number, l.Text())
			return skipWhitespace
		}
	}
}

func scanFraction(l *T) action {
	for {
		r, w := l.peek()

		switch {
		case r == eof:
			return nil
		case isDigit(r):
			l.accept(r, w)
		case r == 'e' || r == 'E':
			l.accept(r, w)
			return scanExponent
		default:
			l.emit(token.Number, l.Text())
			return skipWhitespace
		}
	}
}

func scanNumber(l *T) action {
	for {
		r, w := l.peek()

		switch {
		case r == eof:
			return nil
		case isDigit(r):
			l.accept(r, w)
		case r == '.' && isDigit(l.peekAfter()):
			l.accept(r, w)
			return scanFraction
		case r == 'e' || r == 'E':
			l.accept(r, w)
			return scanExponent
		default:
			l.emit(token.Number, l.Text())
			return skipWhitespace
		}
	}
}

func scanString(l *T) action {
	for {
		r := l.next()

		switch r {
		case eof:
			return nil
		case '"':
			l.emit(token.String, l.Text())
			return skipWhitespace
		case '\\':
			if l.next() == eof {
				return nil
			}
		}
	}
}

func scanWord(l *T) action {
	for {
		r, w := l.peek()

		switch {
		case r == eof:
			return nil
		case isWord(r) || isDigit(r):
			l.accept(r, w)
		default:
			l.emit(token.Word, l.Text())
			return skipWhitespace
		}
	}
}

func skipComment(l *T) action {
	for {
		r := l.next()

		switch r {
		case eof:
			return nil
		case '\n':
			l.skip()
			return skipWhitespace
		}
	}
}

func skipWhitespace(l *T) action {
	for {
		r := l.next()

		switch {
		case r == eof:
			return nil
		case unicode.IsSpace(r):
			l.skip()
			continue
		case r == '[', r == ']':
			l.emit(token.Class(r), l.Text())
			return skipWhitespace
		case r == ';':
			return afterSemicolon
		case r == '"':
			return scanString
		case r == '-':
			return afterMinus
		case r == '.':
			return afterDot
		case r == ':':
			return afterColon
		case r == '<':
			return afterLessThan
		case r == '|':
			return afterPipe
		case isDigit(r):
			return scanNumber
		case isWord(r):
			return scanWord
		default:
			l.emit(token.Error, l.Text())
			return skipWhitespace
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
