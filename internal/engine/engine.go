// Released under an MIT license. See LICENSE.

// Package engine provides a facade for loading and running sketch scripts.
package engine

import (
	"context"
	"io"
	"log/slog"

	"github.com/michaelmacinnis/sketch/internal/engine/commands"
	"github.com/michaelmacinnis/sketch/internal/engine/driver"
	"github.com/michaelmacinnis/sketch/internal/engine/eval"
	"github.com/michaelmacinnis/sketch/internal/engine/namespace"
	"github.com/michaelmacinnis/sketch/internal/engine/scene"
	"github.com/michaelmacinnis/sketch/internal/reader"
	"github.com/michaelmacinnis/sketch/internal/reader/ast"
)

// Options configure an engine.
type Options struct {
	Console io.Writer
	Frames  int
	Logger  *slog.Logger
	Policy  scene.Policy
}

// T (engine) is a facade in front of the machinery for evaluating scripts.
//
// Every loaded script unit gets its own symbol table. An engine used
// interactively remembers the imports of units that loaded successfully
// and replays them for later units.
type T struct {
	imports []*ast.Import
	library *namespace.Library
	options Options
}

// New creates a new T.
func New(o Options) *T {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	return &T{library: commands.Library(), options: o}
}

// Load reads and resolves the script text labelled name.
func (e *T) Load(name, text string) (*eval.Program, error) {
	s, err := reader.Read(name, text)
	if err != nil {
		return nil, err
	}

	return e.Resolve(s)
}

// Resolve builds the symbol table for s, including any remembered imports.
func (e *T) Resolve(s *ast.Script) (*eval.Program, error) {
	unit := *s
	unit.Imports = append(append([]*ast.Import{}, e.imports...), s.Imports...)

	p, err := eval.Load(e.library, &unit)
	if err != nil {
		e.options.Logger.Debug("load failed", "name", s.Name, "error", err)
		return nil, err
	}

	e.imports = unit.Imports

	return p, nil
}

// Run evaluates p, presenting frames to sink through a new driver.
func (e *T) Run(ctx context.Context, p *eval.Program, sink driver.Sink) error {
	d := driver.New(sink, driver.Options{
		Frames: e.options.Frames,
		Logger: e.options.Logger,
		Policy: e.options.Policy,
	})

	return p.Run(ctx, d, eval.Options{
		Console: e.options.Console,
		Logger:  e.options.Logger,
	})
}

// Names returns the symbols visible to the next unit: those remembered
// from earlier imports and the namespaces in LIBRARY.
func (e *T) Names() []string {
	t := namespace.NewTable(e.library)

	for _, i := range e.imports {
		// Remembered imports already succeeded once.
		_ = t.Import(i.Names, i.From)
	}

	names := t.Names()

	if root, ok := e.library.Namespace(namespace.Root); ok {
		names = append(names, root.Names()...)
	}

	return names
}

// Library returns the host namespaces available to scripts.
func (e *T) Library() *namespace.Library {
	return e.library
}
