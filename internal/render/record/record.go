// Released under an MIT license. See LICENSE.

// Package record writes presented frames as a stream of YAML documents.
package record

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/michaelmacinnis/sketch/internal/engine/scene"
	"gopkg.in/yaml.v3"
)

// T (record) encodes every presented snapshot as its own YAML document.
type T struct {
	sync.Mutex

	closer  io.Closer
	encoder *yaml.Encoder
	written int
}

// New creates a record sink writing to w. If w is an io.Closer it is
// closed by Close.
func New(w io.Writer) *T {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)

	r := &T{encoder: e}
	if c, ok := w.(io.Closer); ok {
		r.closer = c
	}

	return r
}

// Close flushes the encoder and closes the underlying writer.
func (r *T) Close() error {
	r.Lock()
	defer r.Unlock()

	var err error

	// An encoder that never wrote a document has no stream to end.
	if r.written > 0 {
		err = r.encoder.Close()
	}

	if r.closer != nil {
		err = errors.Join(err, r.closer.Close())
	}

	return err
}

// Present writes the snapshot s.
func (r *T) Present(ctx context.Context, s scene.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.Lock()
	defer r.Unlock()

	if err := r.encoder.Encode(s); err != nil {
		return err
	}

	r.written++

	return nil
}

// Load decodes every snapshot in a recording.
func Load(rd io.Reader) ([]scene.Snapshot, error) {
	d := yaml.NewDecoder(rd)

	var all []scene.Snapshot

	for {
		var s scene.Snapshot

		err := d.Decode(&s)
		if errors.Is(err, io.EOF) {
			return all, nil
		} else if err != nil {
			return all, err
		}

		all = append(all, s)
	}
}
