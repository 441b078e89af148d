// Released under an MIT license. See LICENSE.

// Package ast defines the syntax tree produced by the sketch parser.
package ast

import (
	"strconv"
	"strings"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/sketch/internal/type/loc"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Source() loc.T
	Literal() string
}

// Pos is embedded in nodes to record where they start.
type Pos struct {
	At loc.T
}

// Source returns the location of the node.
func (p Pos) Source() loc.T {
	return p.At
}

// Number is a numeric literal.
type Number struct {
	Pos
	Value float64
}

// String is a string literal (already unescaped).
type String struct {
	Pos
	Value string
}

// Ref is a reference to a name.
type Ref struct {
	Pos
	Name string
}

// Call applies the callable named Name to Args.
type Call struct {
	Pos
	Name string
	Args []Node
}

// Block is a ..[ ] sequence of statements.
type Block struct {
	Pos
	Body []Node
}

// Lambda is a -> [ ] procedure.
type Lambda struct {
	Pos
	Params []string
	Body   Node
}

// Step is one "| op [args]" stage of a pipeline.
type Step struct {
	Pos
	Name string
	Args []Node
}

// Pipeline is a |> [ ] chain of operations applied to Target.
type Pipeline struct {
	Pos
	Target Node
	Steps  []*Step
}

// Define is a := [name; value] binding.
type Define struct {
	Pos
	Name  string
	Value Node
}

// Import is a <- [names] [source] declaration. A nil Names imports
// every public symbol of From.
type Import struct {
	Pos
	Names []string
	From  string
}

// Script is a parsed unit.
type Script struct {
	Name    string
	Imports []*Import
	Body    []Node
}

// Literal returns the canonical text for n.
func (n *Number) Literal() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// Literal returns the canonical text for s.
func (s *String) Literal() string {
	return quote(s.Value)
}

// Literal returns the canonical text for r.
func (r *Ref) Literal() string {
	return r.Name
}

// Literal returns the canonical text for c.
func (c *Call) Literal() string {
	return c.Name + " " + list(c.Args)
}

// Literal returns the canonical text for b.
func (b *Block) Literal() string {
	return ".." + list(b.Body)
}

// Literal returns the canonical text for l.
func (l *Lambda) Literal() string {
	parts := make([]string, 0, len(l.Params)+1)
	for _, p := range l.Params {
		parts = append(parts, p)
	}

	parts = append(parts, l.Body.Literal())

	return "-> [" + strings.Join(parts, "; ") + "]"
}

// Literal returns the canonical text for s.
func (s *Step) Literal() string {
	return "| " + s.Name + " " + list(s.Args)
}

// Literal returns the canonical text for p.
func (p *Pipeline) Literal() string {
	parts := make([]string, 0, len(p.Steps)+1)
	parts = append(parts, p.Target.Literal())

	for _, s := range p.Steps {
		parts = append(parts, s.Literal())
	}

	return "|> [" + strings.Join(parts, "; ") + "]"
}

// Literal returns the canonical text for d.
func (d *Define) Literal() string {
	return ":= [" + d.Name + "; " + d.Value.Literal() + "]"
}

// Literal returns the canonical text for i.
func (i *Import) Literal() string {
	if i.Names == nil {
		return "<- [" + i.From + "]"
	}

	names := make([]string, len(i.Names))
	for n, v := range i.Names {
		names[n] = quote(v)
	}

	return "<- [" + strings.Join(names, "; ") + "] [" + i.From + "]"
}

// Literal returns the canonical text for the whole script.
func (s *Script) Literal() string {
	var b strings.Builder

	for _, i := range s.Imports {
		b.WriteString(i.Literal())
		b.WriteString(";\n")
	}

	for _, n := range s.Body {
		b.WriteString(n.Literal())
		b.WriteString(";\n")
	}

	return b.String()
}

func list(ns []Node) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = n.Literal()
	}

	return "[" + strings.Join(parts, "; ") + "]"
}

// quote converts the $'...' form used by adapted into a double-quoted string.
func quote(s string) string {
	c := adapted.CanonicalString(s)
	c = strings.TrimSuffix(strings.TrimPrefix(c, "$'"), "'")
	c = strings.ReplaceAll(c, `\'`, `'`)

	return `"` + strings.ReplaceAll(c, `"`, `\"`) + `"`
}
