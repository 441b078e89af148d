// Released under an MIT license. See LICENSE.

// Package commands provides the host namespaces that scripts import from.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/michaelmacinnis/sketch/internal/engine/driver"
	"github.com/michaelmacinnis/sketch/internal/engine/namespace"
	"github.com/michaelmacinnis/sketch/internal/engine/shape"
	"github.com/michaelmacinnis/sketch/internal/type/errscript"
)

// Host namespace names.
const (
	Console = "CONSOLE"
	Math    = "MATH"
	Sketch  = "SKETCH"
)

// Callable is a script procedure that a builtin may receive as an argument.
type Callable interface {
	Params() int
}

// Runtime is what the evaluator exposes to builtins.
type Runtime interface {
	// Context returns the context of the current run.
	Context() context.Context

	// Frame returns the frame being evaluated, or an error outside a scene.
	Frame(name string) (*driver.Frame, error)

	// Pend records a freshly constructed shape. It joins the scene when
	// the statement that created it completes.
	Pend(s *shape.T)

	// Scene runs body once per frame on a new scene.
	Scene(width, height float64, body Callable) error

	// Console returns the writer used by the CONSOLE namespace.
	Console() io.Writer
}

// Builtin implements a host symbol.
type Builtin func(rt Runtime, args []interface{}) (interface{}, error)

type entry struct {
	arity   namespace.Arity
	builtin Builtin
	kind    namespace.Kind
}

//nolint:gochecknoglobals
var registry = map[string]map[string]entry{}

func define(ns, name string, k namespace.Kind, a namespace.Arity, b Builtin) {
	m, ok := registry[ns]
	if !ok {
		m = map[string]entry{}
		registry[ns] = m
	}

	m[name] = entry{arity: a, builtin: b, kind: k}
}

// Library returns a new library of every host namespace.
func Library() *namespace.Library {
	names := []string{Console, Math, Sketch}
	ns := make([]*namespace.T, 0, len(names))

	for _, name := range names {
		n := namespace.New(name)
		for k, e := range registry[name] {
			n.Define(k, e.kind, e.arity)
		}

		ns = append(ns, n)
	}

	return namespace.NewLibrary(ns...)
}

// Lookup returns the implementation of the symbol s.
func Lookup(s namespace.Symbol) (Builtin, bool) {
	e, ok := registry[s.Namespace][s.Name]
	if !ok || e.builtin == nil {
		return nil, false
	}

	return e.builtin, true
}

func invalid(name, detail string, v interface{}) error {
	return errscript.New(errscript.ErrInvalidValue, name, fmt.Sprintf("%s, got %v", detail, v))
}

func number(name string, v interface{}) (float64, error) {
	if n, ok := v.(float64); ok {
		return n, nil
	}

	return 0, invalid(name, "expected a number", v)
}

func numbers(name string, args []interface{}) ([]float64, error) {
	ns := make([]float64, len(args))

	for i, a := range args {
		n, err := number(name, a)
		if err != nil {
			return nil, err
		}

		ns[i] = n
	}

	return ns, nil
}
