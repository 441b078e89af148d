// Released under an MIT license. See LICENSE.

// Package scene provides the retained scene graph owned by a frame driver.
package scene

import (
	"strconv"

	"github.com/michaelmacinnis/sketch/internal/engine/shape"
	"github.com/michaelmacinnis/sketch/internal/type/errscript"
)

// Policy decides what happens to shapes between frames.
type Policy uint8

// Policies.
const (
	Redraw     Policy = iota // Shapes are cleared at the start of each frame.
	Accumulate               // Shapes persist and the graph grows.
)

func (p Policy) String() string {
	if p == Accumulate {
		return "accumulate"
	}

	return "redraw"
}

// T (scene) is an ordered collection of shapes and a background color.
// Insertion order is paint order: later shapes draw over earlier ones.
type T struct {
	Width  float64
	Height float64

	background shape.Color
	frame      int
	policy     Policy
	shapes     []*shape.T
}

// Snapshot is an immutable copy of a scene handed to a render sink.
type Snapshot struct {
	Frame      int         `json:"frame" yaml:"frame"`
	Width      float64     `json:"width" yaml:"width"`
	Height     float64     `json:"height" yaml:"height"`
	Background shape.Color `json:"background,omitempty" yaml:"background,omitempty"`
	Shapes     []shape.T   `json:"shapes" yaml:"shapes"`
}

// New creates a scene of the given dimensions, which must be positive.
func New(width, height float64, p Policy) (*T, error) {
	if !(width > 0 && height > 0) || !shape.Finite(width) || !shape.Finite(height) {
		return nil, errscript.New(errscript.ErrInvalidValue, "make scene",
			"canvas dimensions must be positive and finite, got "+
				strconv.FormatFloat(width, 'g', -1, 64)+"x"+
				strconv.FormatFloat(height, 'g', -1, 64))
	}

	return &T{Width: width, Height: height, frame: -1, policy: p}, nil
}

// Add appends s to the scene and attaches it.
func (sc *T) Add(s *shape.T) error {
	if err := s.Attach(sc); err != nil {
		return err
	}

	sc.shapes = append(sc.shapes, s)

	return nil
}

// Background returns the current background color.
func (sc *T) Background() shape.Color {
	return sc.background
}

// BeginFrame starts the next frame. Under Redraw the shapes are cleared;
// the background is always retained until overwritten.
func (sc *T) BeginFrame() {
	sc.frame++

	if sc.policy == Redraw {
		sc.shapes = sc.shapes[:0:0]
	}
}

// Frame returns the index of the current frame, starting at zero.
func (sc *T) Frame() int {
	return sc.frame
}

// Len returns the number of shapes in the scene.
func (sc *T) Len() int {
	return len(sc.shapes)
}

// SetBackground sets the background color. The last call in a frame wins.
func (sc *T) SetBackground(c shape.Color) {
	sc.background = c
}

// Snapshot returns a deep copy of the scene.
func (sc *T) Snapshot() Snapshot {
	shapes := make([]shape.T, len(sc.shapes))
	for i, s := range sc.shapes {
		shapes[i] = *s.Clone()
	}

	return Snapshot{
		Frame:      sc.frame,
		Width:      sc.Width,
		Height:     sc.Height,
		Background: sc.background,
		Shapes:     shapes,
	}
}
