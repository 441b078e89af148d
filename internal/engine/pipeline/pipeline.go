// Released under an MIT license. See LICENSE.

// Package pipeline applies ordered property operations to a shape.
//
// Operations are applied strictly in the order given. Each one overwrites
// the attribute it targets, so the last operation on an attribute decides
// its final value. Nothing is reordered, merged or batched.
package pipeline

import (
	"strconv"

	"github.com/michaelmacinnis/sketch/internal/engine/shape"
	"github.com/michaelmacinnis/sketch/internal/type/errscript"
)

// Operation is a single property mutation.
type Operation interface {
	Apply(s *shape.T) error
	Name() string
}

// SetPosition overwrites the position.
type SetPosition struct {
	X, Y shape.Scalar
}

// SetRotation overwrites the rotation. It is absolute, not cumulative.
type SetRotation struct {
	Theta float64
}

// SetFill sets the fill color and enables fill.
type SetFill struct {
	Color shape.Color
}

// NoFill disables fill but keeps the fill color.
type NoFill struct{}

// SetStroke sets the stroke color.
type SetStroke struct {
	Color shape.Color
}

// SetLineWidth overwrites the line width, which must be positive.
type SetLineWidth struct {
	W float64
}

// SetVisible shows or hides the shape.
type SetVisible struct {
	Visible bool
}

// Apply folds s through ops left to right, mutating s in place.
// It stops at the first failing operation. The returned shape is s.
func Apply(s *shape.T, ops ...Operation) (*shape.T, error) {
	if s.Committed() {
		return s, errscript.New(errscript.ErrInvalidValue, s.Kind.String(),
			"cannot apply a pipeline to a shape already in a scene")
	}

	for _, op := range ops {
		if err := op.Apply(s); err != nil {
			return s, err
		}
	}

	return s, nil
}

// Apply sets the position of s.
func (o SetPosition) Apply(s *shape.T) error {
	if !shape.Finite(o.X.Value) || !shape.Finite(o.Y.Value) {
		return errscript.New(errscript.ErrInvalidValue, o.Name(), "position must be finite")
	}

	s.Position = shape.Point{X: o.X, Y: o.Y}

	return nil
}

// Name returns the script name of the operation.
func (SetPosition) Name() string { return "set position" }

// Apply sets the rotation of s.
func (o SetRotation) Apply(s *shape.T) error {
	if !shape.Finite(o.Theta) {
		return errscript.New(errscript.ErrInvalidValue, o.Name(),
			"rotation must be finite, got "+strconv.FormatFloat(o.Theta, 'g', -1, 64))
	}

	s.Rotation = o.Theta

	return nil
}

// Name returns the script name of the operation.
func (SetRotation) Name() string { return "set rotation" }

// Apply sets and enables the fill of s.
func (o SetFill) Apply(s *shape.T) error {
	s.FillColor = o.Color
	s.FillEnabled = true

	return nil
}

// Name returns the script name of the operation.
func (SetFill) Name() string { return "set fill" }

// Apply disables the fill of s.
func (NoFill) Apply(s *shape.T) error {
	s.FillEnabled = false
	return nil
}

// Name returns the script name of the operation.
func (NoFill) Name() string { return "no fill" }

// Apply sets the stroke color of s.
func (o SetStroke) Apply(s *shape.T) error {
	s.StrokeColor = o.Color
	return nil
}

// Name returns the script name of the operation.
func (SetStroke) Name() string { return "set stroke" }

// Apply sets the line width of s.
func (o SetLineWidth) Apply(s *shape.T) error {
	if !(o.W > 0) || !shape.Finite(o.W) {
		return errscript.New(errscript.ErrInvalidValue, o.Name(),
			"line width must be positive and finite, got "+strconv.FormatFloat(o.W, 'g', -1, 64))
	}

	s.LineWidth = o.W

	return nil
}

// Name returns the script name of the operation.
func (SetLineWidth) Name() string { return "setlinewidth" }

// Apply sets the visibility of s.
func (o SetVisible) Apply(s *shape.T) error {
	s.Visible = o.Visible
	return nil
}

// Name returns the script name of the operation.
func (o SetVisible) Name() string {
	if o.Visible {
		return "show"
	}

	return "hide"
}
