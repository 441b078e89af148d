// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/sketch/internal/engine/namespace"
	"github.com/michaelmacinnis/sketch/internal/engine/pipeline"
	"github.com/michaelmacinnis/sketch/internal/engine/shape"
)

//nolint:gochecknoinits
func init() {
	variadic := namespace.Arity{Min: 0, Max: -1}

	define(Sketch, "make scene", namespace.Action, namespace.Fixed(3), makeScene)
	define(Sketch, "make rectangle", namespace.Constructor, variadic, constructor(shape.Rectangle))
	define(Sketch, "make ellipse", namespace.Constructor, variadic, constructor(shape.Ellipse))

	define(Sketch, "background", namespace.Action, namespace.Fixed(1), background)
	define(Sketch, "frame", namespace.Action, namespace.Fixed(0), frame)
	define(Sketch, "update", namespace.Action, namespace.Fixed(0), update)

	define(Sketch, shape.TagWidth, namespace.Action, namespace.Fixed(1), tag(shape.TagWidth))
	define(Sketch, shape.TagHeight, namespace.Action, namespace.Fixed(1), tag(shape.TagHeight))

	arities := map[string]int{
		"hide":         0,
		"no fill":      0,
		"set fill":     1,
		"set position": 2, //nolint:gomnd
		"set rotation": 1,
		"set stroke":   1,
		"setlinewidth": 1,
		"show":         0,
	}

	// Mutators are applied by the evaluator through the pipeline package.
	for _, name := range pipeline.Names() {
		define(Sketch, name, namespace.Mutator, namespace.Fixed(arities[name]), nil)
	}
}

func background(rt Runtime, args []interface{}) (interface{}, error) {
	f, err := rt.Frame("background")
	if err != nil {
		return nil, err
	}

	c, ok := args[0].(string)
	if !ok {
		return nil, invalid("background", "expected a color", args[0])
	}

	f.Background(shape.Color(c))

	return nil, nil
}

func constructor(k shape.Kind) Builtin {
	name := "make " + k.String()

	return func(rt Runtime, args []interface{}) (interface{}, error) {
		if _, err := rt.Frame(name); err != nil {
			return nil, err
		}

		as := make([]shape.Arg, len(args))

		for i, a := range args {
			switch v := a.(type) {
			case float64:
				as[i] = shape.Positional(v)
			case shape.Arg:
				as[i] = v
			default:
				return nil, invalid(name, "expected a number", a)
			}
		}

		s, err := shape.Construct(k, as)
		if err != nil {
			return nil, err
		}

		rt.Pend(s)

		return s, nil
	}
}

func frame(rt Runtime, _ []interface{}) (interface{}, error) {
	f, err := rt.Frame("frame")
	if err != nil {
		return nil, err
	}

	return float64(f.Index()), nil
}

func makeScene(rt Runtime, args []interface{}) (interface{}, error) {
	const name = "make scene"

	dims, err := numbers(name, args[:2])
	if err != nil {
		return nil, err
	}

	body, ok := args[2].(Callable)
	if !ok {
		return nil, invalid(name, "expected a procedure", args[2])
	}

	return nil, rt.Scene(dims[0], dims[1], body)
}

func tag(t string) Builtin {
	return func(_ Runtime, args []interface{}) (interface{}, error) {
		v, err := number(t, args[0])
		if err != nil {
			return nil, err
		}

		return shape.Tagged(t, v), nil
	}
}

func update(rt Runtime, _ []interface{}) (interface{}, error) {
	f, err := rt.Frame("update")
	if err != nil {
		return nil, err
	}

	return nil, f.Update()
}
