// Released under an MIT license. See LICENSE.

// Package errscript provides sketch's script error type.
//
// Every failure that reaches the caller of Load or Run is a *T whose Kind is
// one of the sentinel errors below, so callers can test with errors.Is.
package errscript

import (
	"errors"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/sketch/internal/type/loc"
)

// Error kinds.
var (
	ErrAmbiguousSymbol  = errors.New("ambiguous symbol")
	ErrArityMismatch    = errors.New("arity mismatch")
	ErrInvalidValue     = errors.New("invalid value")
	ErrSinkFailure      = errors.New("sink failure")
	ErrSyntax           = errors.New("syntax error")
	ErrUnresolvedSymbol = errors.New("unresolved symbol")
)

// NoFrame is the Frame value for errors raised outside of any frame.
const NoFrame = -1

// T (errscript) is an error raised while loading or running a script.
type T struct {
	Kind   error  // One of the Err* sentinels.
	Symbol string // The symbol involved, if any.
	Detail string // Human readable detail.
	Source loc.T  // Where in the script, if known.
	Frame  int    // Frame index or NoFrame.
	Err    error  // Underlying cause, if any.
}

// New creates a new error of kind k for symbol s.
func New(k error, s, detail string) *T {
	return &T{Kind: k, Symbol: s, Detail: detail, Frame: NoFrame}
}

// Wrap creates a new error of kind k caused by err.
func Wrap(k error, err error) *T {
	return &T{Kind: k, Detail: err.Error(), Frame: NoFrame, Err: err}
}

// At sets the source location of e, unless it is already set, and returns e.
func (e *T) At(l loc.T) *T {
	if !e.Source.Known() {
		e.Source = l
	}

	return e
}

// InFrame sets the frame index of e, unless it is already set, and returns e.
func (e *T) InFrame(n int) *T {
	if e.Frame == NoFrame {
		e.Frame = n
	}

	return e
}

// Error returns the text of the error e.
func (e *T) Error() string {
	var b strings.Builder

	if e.Source.Known() {
		b.WriteString(e.Source.String())
		b.WriteString(": ")
	}

	b.WriteString(e.Kind.Error())

	if e.Symbol != "" {
		b.WriteString(" '")
		b.WriteString(e.Symbol)
		b.WriteString("'")
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Frame != NoFrame {
		b.WriteString(" (frame ")
		b.WriteString(strconv.Itoa(e.Frame))
		b.WriteString(")")
	}

	return b.String()
}

// Unwrap exposes both the kind and the cause of e.
func (e *T) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// As returns the *T in err's chain, or nil.
func As(err error) *T {
	var e *T
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// Ensure returns err as a *T of kind k, wrapping it if necessary.
func Ensure(k error, err error) *T {
	if e := As(err); e != nil {
		return e
	}

	return Wrap(k, err)
}
