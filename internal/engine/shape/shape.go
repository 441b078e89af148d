// Released under an MIT license. See LICENSE.

// Package shape provides the scene graph node type.
package shape

import (
	"fmt"
	"strconv"

	"github.com/michaelmacinnis/sketch/internal/type/errscript"
)

// DefaultLineWidth is the stroke width a shape starts with.
const DefaultLineWidth = 1.0

// Kind is the type of a shape.
type Kind uint8

// Shape kinds.
const (
	Rectangle Kind = iota
	Ellipse
)

var kindNames = [...]string{ //nolint:gochecknoglobals
	Rectangle: "rectangle",
	Ellipse:   "ellipse",
}

func (k Kind) String() string { return kindNames[k] }

// MarshalText lets sinks encode kinds by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind from its name.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}

	return fmt.Errorf("unknown shape kind %q", b)
}

// Unit says how the render sink should interpret a scalar.
type Unit uint8

// Units.
const (
	Absolute Unit = iota // Sink units.
	Relative             // Fraction of the canvas.
)

func (u Unit) String() string {
	if u == Relative {
		return "relative"
	}

	return "absolute"
}

// MarshalText lets sinks encode units by name.
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText decodes a unit from its name.
func (u *Unit) UnmarshalText(b []byte) error {
	switch string(b) {
	case "absolute":
		*u = Absolute
	case "relative":
		*u = Relative
	default:
		return fmt.Errorf("unknown unit %q", b)
	}

	return nil
}

// Scalar is a number together with its unit.
type Scalar struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  Unit    `json:"unit" yaml:"unit"`
}

// Abs returns an absolute scalar.
func Abs(v float64) Scalar {
	return Scalar{Value: v}
}

// Rel returns a relative scalar.
func Rel(v float64) Scalar {
	return Scalar{Value: v, Unit: Relative}
}

func (s Scalar) String() string {
	v := strconv.FormatFloat(s.Value, 'g', -1, 64)
	if s.Unit == Relative {
		return v + "r"
	}

	return v
}

// Color is passed through to the render sink untouched. Empty means unset.
type Color string

// Point is a position.
type Point struct {
	X Scalar `json:"x" yaml:"x"`
	Y Scalar `json:"y" yaml:"y"`
}

// T (shape) is a node in the scene graph.
type T struct {
	Kind        Kind    `json:"kind" yaml:"kind"`
	Width       Scalar  `json:"width" yaml:"width"`
	Height      Scalar  `json:"height" yaml:"height"`
	Position    Point   `json:"position" yaml:"position"`
	Rotation    float64 `json:"rotation" yaml:"rotation"`
	FillEnabled bool    `json:"fillEnabled" yaml:"fillEnabled"`
	FillColor   Color   `json:"fillColor,omitempty" yaml:"fillColor,omitempty"`
	StrokeColor Color   `json:"strokeColor,omitempty" yaml:"strokeColor,omitempty"`
	LineWidth   float64 `json:"lineWidth" yaml:"lineWidth"`
	Visible     bool    `json:"visible" yaml:"visible"`

	owner interface{}
}

type shape = T

// New creates a shape of kind k with every attribute at its default.
func New(k Kind) *T {
	return &T{
		Kind:        k,
		FillEnabled: true,
		LineWidth:   DefaultLineWidth,
		Visible:     true,
	}
}

// Attach records that owner holds s. A shape has at most one owner.
func (s *shape) Attach(owner interface{}) error {
	if s.owner != nil && s.owner != owner {
		return errscript.New(errscript.ErrInvalidValue, s.Kind.String(),
			"shape already belongs to another scene")
	}

	s.owner = owner

	return nil
}

// Clone returns a detached copy of s.
func (s *shape) Clone() *T {
	c := *s
	c.owner = nil

	return &c
}

// Committed returns true if s has been attached to a scene.
func (s *shape) Committed() bool {
	return s.owner != nil
}

func (s *shape) String() string {
	return fmt.Sprintf("%s %sx%s at (%s, %s)",
		s.Kind, s.Width, s.Height, s.Position.X, s.Position.Y)
}
