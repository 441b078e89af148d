// Released under an MIT license. See LICENSE.

// Package multi fans frames out to several render sinks.
package multi

import (
	"context"

	"github.com/michaelmacinnis/sketch/internal/engine/driver"
	"github.com/michaelmacinnis/sketch/internal/engine/scene"
)

// T (multi) presents each snapshot to every sink in order. The first
// error stops presentation of that snapshot.
type T []driver.Sink

// New creates a sink presenting to each of sinks. Nil sinks are skipped.
func New(sinks ...driver.Sink) T {
	t := make(T, 0, len(sinks))

	for _, s := range sinks {
		if s != nil {
			t = append(t, s)
		}
	}

	return t
}

// Present presents s to every sink.
func (t T) Present(ctx context.Context, s scene.Snapshot) error {
	for _, sink := range t {
		if err := sink.Present(ctx, s); err != nil {
			return err
		}
	}

	return nil
}
