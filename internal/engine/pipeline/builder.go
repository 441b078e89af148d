// Released under an MIT license. See LICENSE.

package pipeline

import (
	"fmt"
	"sort"

	"github.com/michaelmacinnis/sketch/internal/engine/shape"
	"github.com/michaelmacinnis/sketch/internal/type/errscript"
)

// Builder creates an operation from script argument values. Values are
// float64, string or shape.Arg (a tagged number).
type Builder func(args []interface{}) (Operation, error)

//nolint:gochecknoglobals
var builders = map[string]Builder{
	"hide": func(args []interface{}) (Operation, error) {
		return SetVisible{Visible: false}, fixed("hide", args, 0)
	},
	"no fill": func(args []interface{}) (Operation, error) {
		return NoFill{}, fixed("no fill", args, 0)
	},
	"set fill": func(args []interface{}) (Operation, error) {
		c, err := color("set fill", args)
		return SetFill{Color: c}, err
	},
	"set position": position,
	"set rotation": func(args []interface{}) (Operation, error) {
		v, err := number("set rotation", args)
		return SetRotation{Theta: v}, err
	},
	"set stroke": func(args []interface{}) (Operation, error) {
		c, err := color("set stroke", args)
		return SetStroke{Color: c}, err
	},
	"setlinewidth": func(args []interface{}) (Operation, error) {
		v, err := number("setlinewidth", args)
		return SetLineWidth{W: v}, err
	},
	"show": func(args []interface{}) (Operation, error) {
		return SetVisible{Visible: true}, fixed("show", args, 0)
	},
}

// Lookup returns the builder for the operation called name.
func Lookup(name string) (Builder, bool) {
	b, ok := builders[name]
	return b, ok
}

// Names returns the sorted names of every operation.
func Names() []string {
	names := make([]string, 0, len(builders))
	for k := range builders {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}

func color(name string, args []interface{}) (shape.Color, error) {
	if err := fixed(name, args, 1); err != nil {
		return "", err
	}

	switch v := args[0].(type) {
	case string:
		return shape.Color(v), nil
	case shape.Color:
		return v, nil
	}

	return "", invalid(name, "expected a color", args[0])
}

func fixed(name string, args []interface{}, n int) error {
	if len(args) == n {
		return nil
	}

	return errscript.New(errscript.ErrArityMismatch, name,
		fmt.Sprintf("expected %d argument(s), passed %d", n, len(args)))
}

func invalid(name, detail string, v interface{}) error {
	return errscript.New(errscript.ErrInvalidValue, name, fmt.Sprintf("%s, got %v", detail, v))
}

func number(name string, args []interface{}) (float64, error) {
	if err := fixed(name, args, 1); err != nil {
		return 0, err
	}

	if v, ok := args[0].(float64); ok {
		return v, nil
	}

	return 0, invalid(name, "expected a number", args[0])
}

// position binds [x; y] positionally or through the width and height tags,
// which give relative coordinates. Later arguments win.
func position(args []interface{}) (Operation, error) {
	const name = "set position"

	if err := fixed(name, args, 2); err != nil {
		return nil, err
	}

	var (
		op   SetPosition
		slot int
	)

	for _, a := range args {
		switch v := a.(type) {
		case float64:
			if slot == 0 {
				op.X = shape.Abs(v)
			} else {
				op.Y = shape.Abs(v)
			}

			slot++
		case shape.Arg:
			switch v.Tag {
			case shape.TagWidth:
				op.X = shape.Rel(v.Value)
			case shape.TagHeight:
				op.Y = shape.Rel(v.Value)
			default:
				return nil, invalid(name, "unknown tag", v.Tag)
			}
		default:
			return nil, invalid(name, "expected a coordinate", a)
		}
	}

	return op, nil
}
