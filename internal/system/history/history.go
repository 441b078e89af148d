// Released under an MIT license. See LICENSE.

// Package history persists REPL history between sessions.
package history

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Name is the history file's name in the user's home directory.
const Name = ".sketch_history"

// Path returns the location of the history file.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return Name
	}

	return filepath.Join(home, Name)
}

// Load calls read with the contents of the history file at path.
// A missing file is not an error.
func Load(path string, read func(r io.Reader) (int, error)) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}

	_, err = read(f)

	return errors.Join(err, f.Close())
}

// Save calls write to replace the contents of the history file at path.
func Save(path string, write func(w io.Writer) (int, error)) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	_, err = write(f)

	return errors.Join(err, f.Close())
}
