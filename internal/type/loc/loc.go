// Released under an MIT license. See LICENSE.

// Package loc provides the type used to track the source of tokens and nodes.
package loc

import (
	"strconv"
)

// T (loc) is a lexical location.
type T struct {
	Char int    // Character position (column).
	Line int    // Line number (row).
	Name string // Label for the source of this token.
}

type loc = T

// String returns the location as name:line:char.
func (l loc) String() string {
	return l.Name + ":" + strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Char)
}

// Known returns true if l has been set.
func (l loc) Known() bool {
	return l.Line > 0
}
