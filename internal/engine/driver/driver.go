// Released under an MIT license. See LICENSE.

// Package driver provides the frame driver that owns a scene, evaluates a
// scene body once per frame and presents the result to a render sink.
package driver

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/michaelmacinnis/sketch/internal/engine/scene"
	"github.com/michaelmacinnis/sketch/internal/engine/shape"
	"github.com/michaelmacinnis/sketch/internal/type/errscript"
)

// ErrBusy is returned when Run is called while a scene is being evaluated.
var ErrBusy = errors.New("driver is already running a scene")

// ErrStopped is returned when Run is called on a stopped driver.
var ErrStopped = errors.New("driver is stopped")

// State is the driver's position in its lifecycle.
type State uint8

// States.
const (
	Idle State = iota
	Evaluating
	Presenting
	Stopped
)

var stateNames = [...]string{ //nolint:gochecknoglobals
	Idle:       "idle",
	Evaluating: "evaluating",
	Presenting: "presenting",
	Stopped:    "stopped",
}

func (s State) String() string { return stateNames[s] }

// Sink consumes completed frames.
type Sink interface {
	Present(ctx context.Context, s scene.Snapshot) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, s scene.Snapshot) error

// Present calls f.
func (f SinkFunc) Present(ctx context.Context, s scene.Snapshot) error {
	return f(ctx, s)
}

// Body describes one frame of a scene.
type Body func(ctx context.Context, f *Frame) error

// Options configure a driver.
type Options struct {
	// Frames is the number of frames per scene. Zero means one frame;
	// negative means run until the context is cancelled or Stop is called.
	Frames int
	Logger *slog.Logger
	Policy scene.Policy
}

// T (driver) owns the scene and drives the frame loop.
type T struct {
	sync.Mutex

	logger    *slog.Logger
	options   Options
	presented int
	sink      Sink
	state     State
}

type driver = T

// New creates a driver presenting to sink.
func New(sink Sink, o Options) *T {
	if o.Frames == 0 {
		o.Frames = 1
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	return &T{logger: o.Logger, options: o, sink: sink}
}

// Presented returns the number of frames handed to the sink so far.
func (d *driver) Presented() int {
	d.Lock()
	defer d.Unlock()

	return d.presented
}

// Run evaluates body once per frame against a new scene of the given size.
func (d *driver) Run(ctx context.Context, width, height float64, body Body) error {
	switch d.State() {
	case Stopped:
		return ErrStopped
	case Evaluating, Presenting:
		return ErrBusy
	case Idle:
	}

	sc, err := scene.New(width, height, d.options.Policy)
	if err != nil {
		d.Stop()
		return err
	}

	d.logger.Debug("scene started",
		"width", width, "height", height,
		"frames", d.options.Frames, "policy", d.options.Policy.String())

	d.transition(Evaluating)

	for n := 0; d.options.Frames < 0 || n < d.options.Frames; n++ {
		if err := ctx.Err(); err != nil {
			d.Stop()
			return err
		}

		if d.State() == Stopped {
			return nil
		}

		sc.BeginFrame()

		err := body(ctx, &Frame{ctx: ctx, driver: d, scene: sc})
		if err != nil {
			d.Stop()

			if e := errscript.As(err); e != nil {
				e.InFrame(n)
				d.logger.Error("frame aborted", "frame", n, "error", e)

				return e
			}

			return err
		}
	}

	if d.State() != Stopped {
		d.transition(Idle)
	}

	d.logger.Debug("scene finished", "presented", d.Presented())

	return nil
}

// State returns the driver's current state.
func (d *driver) State() State {
	d.Lock()
	defer d.Unlock()

	return d.state
}

// Stop moves the driver to its terminal state. It is safe between frames.
func (d *driver) Stop() {
	d.transition(Stopped)
}

func (d *driver) present(ctx context.Context, sc *scene.T) error {
	if d.State() == Stopped {
		return ErrStopped
	}

	d.transition(Presenting)

	snapshot := sc.Snapshot()

	if err := d.sink.Present(ctx, snapshot); err != nil {
		d.Stop()
		d.logger.Error("sink rejected frame", "frame", snapshot.Frame, "error", err)

		return errscript.Wrap(errscript.ErrSinkFailure, err).InFrame(snapshot.Frame)
	}

	d.Lock()
	d.presented++
	d.Unlock()

	d.transition(Evaluating)

	d.logger.Debug("frame presented",
		"frame", snapshot.Frame, "shapes", len(snapshot.Shapes))

	return nil
}

func (d *driver) transition(s State) {
	d.Lock()
	defer d.Unlock()

	if d.state != Stopped {
		d.state = s
	}
}

// Frame is the view of the scene given to a body for one frame.
type Frame struct {
	ctx    context.Context
	driver *T
	scene  *scene.T
}

// Add appends s to the scene.
func (f *Frame) Add(s *shape.T) error {
	return f.scene.Add(s)
}

// Background sets the scene's background color.
func (f *Frame) Background(c shape.Color) {
	f.scene.SetBackground(c)
}

// Index returns the index of the frame, starting at zero.
func (f *Frame) Index() int {
	return f.scene.Frame()
}

// Size returns the scene's canvas dimensions.
func (f *Frame) Size() (float64, float64) {
	return f.scene.Width, f.scene.Height
}

// Update presents the frame's current state to the sink. The sink receives
// a copy, so later mutations in the same frame are never visible in it.
func (f *Frame) Update() error {
	return f.driver.present(f.ctx, f.scene)
}
