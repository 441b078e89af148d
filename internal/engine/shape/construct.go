// Released under an MIT license. See LICENSE.

package shape

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/sketch/internal/type/errscript"
)

// Tags that name a logical parameter instead of using its slot.
const (
	TagHeight = "height"
	TagWidth  = "width"
)

// Arg is one constructor or operation argument. A Tag of "" makes it
// positional.
type Arg struct {
	Tag   string
	Value float64
}

// Positional returns a positional argument.
func Positional(v float64) Arg {
	return Arg{Value: v}
}

// Tagged returns an argument for the logical parameter tag.
func Tagged(tag string, v float64) Arg {
	return Arg{Tag: tag, Value: v}
}

type param uint8

const (
	paramX param = iota
	paramY
	paramWidth
	paramHeight
)

// Positional slot layouts by number of positional arguments.
var layouts = map[Kind]map[int][]param{ //nolint:gochecknoglobals
	Rectangle: {
		0: {},
		2: {paramWidth, paramHeight},
		4: {paramX, paramY, paramWidth, paramHeight},
	},
	Ellipse: {
		0: {},
		2: {paramWidth, paramHeight},
		4: {paramX, paramY, paramWidth, paramHeight},
	},
}

// Construct builds a shape of kind k from args, consumed left to right.
// When a logical parameter is supplied more than once the last value wins.
func Construct(k Kind, args []Arg) (*T, error) {
	positional := 0

	for _, a := range args {
		if a.Tag == "" {
			positional++
		}
	}

	layout, ok := layouts[k][positional]
	if !ok {
		return nil, errscript.New(errscript.ErrArityMismatch, "make "+k.String(),
			"expected "+slots(k)+" positional arguments, passed "+strconv.Itoa(positional))
	}

	s := New(k)
	slot := 0

	for _, a := range args {
		var (
			p param
			v Scalar
		)

		switch a.Tag {
		case "":
			p, v = layout[slot], Abs(a.Value)
			slot++
		case TagWidth:
			p, v = paramWidth, Rel(a.Value)
		case TagHeight:
			p, v = paramHeight, Rel(a.Value)
		default:
			return nil, errscript.New(errscript.ErrInvalidValue, a.Tag,
				"not a parameter of "+k.String())
		}

		switch p {
		case paramX:
			s.Position.X = v
		case paramY:
			s.Position.Y = v
		case paramWidth:
			s.Width = v
		case paramHeight:
			s.Height = v
		}
	}

	if !Finite(s.Position.X.Value) || !Finite(s.Position.Y.Value) {
		return nil, errscript.New(errscript.ErrInvalidValue, "make "+k.String(),
			"position must be finite")
	}

	if !size(s.Width.Value) || !size(s.Height.Value) {
		return nil, errscript.New(errscript.ErrInvalidValue, "make "+k.String(),
			"size must be finite and not negative")
	}

	return s, nil
}

func slots(k Kind) string {
	ns := make([]int, 0, len(layouts[k]))
	for n := range layouts[k] {
		ns = append(ns, n)
	}

	sort.Ints(ns)

	ss := make([]string, len(ns))
	for i, n := range ns {
		ss[i] = strconv.Itoa(n)
	}

	return strings.Join(ss, ", ")
}

func size(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// Finite returns true if v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
