// Released under an MIT license. See LICENSE.

// Package eval loads and evaluates parsed sketch scripts.
//
// Loading processes the imports of a script unit into its own symbol table
// and resolves every name the script uses. A script that loads cannot fail
// later with an unresolved or ambiguous symbol.
package eval

import (
	"github.com/michaelmacinnis/sketch/internal/engine/namespace"
	"github.com/michaelmacinnis/sketch/internal/reader/ast"
	"github.com/michaelmacinnis/sketch/internal/type/errscript"
)

// Program is a loaded script unit.
type Program struct {
	Script *ast.Script
	Table  *namespace.Table
}

// Load builds the symbol table for s from l and resolves s against it.
func Load(l *namespace.Library, s *ast.Script) (*Program, error) {
	t := namespace.NewTable(l)

	for _, i := range s.Imports {
		if err := t.Import(i.Names, i.From); err != nil {
			return nil, errscript.Ensure(errscript.ErrUnresolvedSymbol, err).At(i.Source())
		}
	}

	t.Freeze()

	r := &resolver{table: t}
	top := newScope(nil)

	for _, n := range s.Body {
		if err := r.resolve(top, n); err != nil {
			return nil, err
		}
	}

	return &Program{Script: s, Table: t}, nil
}

type resolver struct {
	table *namespace.Table
}

func (r *resolver) all(sc *scope, ns []ast.Node) error {
	for _, n := range ns {
		if err := r.resolve(sc, n); err != nil {
			return err
		}
	}

	return nil
}

func (r *resolver) callable(sc *scope, n ast.Node, name string, ok func(namespace.Kind) bool) error {
	if sc.Visible(name) {
		return nil
	}

	s, found := r.table.Lookup(name)
	if !found {
		return errscript.New(errscript.ErrUnresolvedSymbol, name, "not imported").At(n.Source())
	}

	if !ok(s.Kind) {
		return errscript.New(errscript.ErrInvalidValue, name,
			s.Kind.String()+" cannot be used here").At(n.Source())
	}

	return nil
}

func (r *resolver) resolve(sc *scope, n ast.Node) error {
	switch n := n.(type) {
	case *ast.Number, *ast.String:
		return nil

	case *ast.Ref:
		return r.callable(sc, n, n.Name, func(k namespace.Kind) bool {
			if k != namespace.Action {
				return false
			}

			s, _ := r.table.Lookup(n.Name)

			return s.Arity.Accepts(0)
		})

	case *ast.Call:
		if err := r.callable(sc, n, n.Name, func(k namespace.Kind) bool {
			return k != namespace.Namespace
		}); err != nil {
			return err
		}

		return r.all(sc, n.Args)

	case *ast.Block:
		return r.all(newScope(sc), n.Body)

	case *ast.Define:
		if err := r.resolve(sc, n.Value); err != nil {
			return err
		}

		sc.Define(n.Name)

		return nil

	case *ast.Lambda:
		inner := newScope(sc)
		for _, p := range n.Params {
			inner.Define(p)
		}

		return r.resolve(inner, n.Body)

	case *ast.Pipeline:
		if err := r.resolve(sc, n.Target); err != nil {
			return err
		}

		for _, s := range n.Steps {
			if err := r.callable(sc, s, s.Name, func(k namespace.Kind) bool {
				return k == namespace.Mutator
			}); err != nil {
				return err
			}

			if err := r.all(sc, s.Args); err != nil {
				return err
			}
		}

		return nil
	}

	return errscript.New(errscript.ErrSyntax, "", "unknown node").At(n.Source())
}
