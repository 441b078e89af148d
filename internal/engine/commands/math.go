// Released under an MIT license. See LICENSE.

package commands

import (
	"math"

	"github.com/michaelmacinnis/sketch/internal/engine/namespace"
	"github.com/michaelmacinnis/sketch/internal/type/errscript"
)

//nolint:gochecknoinits
func init() {
	define(Math, "pi", namespace.Action, namespace.Fixed(0),
		func(Runtime, []interface{}) (interface{}, error) {
			return math.Pi, nil
		})

	unary := map[string]func(float64) float64{
		"cos":  math.Cos,
		"sin":  math.Sin,
		"sqrt": math.Sqrt,
	}
	for name, fn := range unary {
		define(Math, name, namespace.Action, namespace.Fixed(1), apply1(name, fn))
	}

	folds := map[string]func(a, b float64) float64{
		"add":      func(a, b float64) float64 { return a + b },
		"max":      math.Max,
		"min":      math.Min,
		"multiply": func(a, b float64) float64 { return a * b },
		"subtract": func(a, b float64) float64 { return a - b },
	}
	for name, fn := range folds {
		define(Math, name, namespace.Action, namespace.Arity{Min: 1, Max: -1}, fold(name, fn))
	}

	define(Math, "divide", namespace.Action, namespace.Fixed(2), divide)
}

func apply1(name string, fn func(float64) float64) Builtin {
	return func(_ Runtime, args []interface{}) (interface{}, error) {
		v, err := number(name, args[0])
		if err != nil {
			return nil, err
		}

		return fn(v), nil
	}
}

func divide(_ Runtime, args []interface{}) (interface{}, error) {
	ns, err := numbers("divide", args)
	if err != nil {
		return nil, err
	}

	if ns[1] == 0 {
		return nil, errscript.New(errscript.ErrInvalidValue, "divide", "division by zero")
	}

	return ns[0] / ns[1], nil
}

func fold(name string, fn func(a, b float64) float64) Builtin {
	return func(_ Runtime, args []interface{}) (interface{}, error) {
		ns, err := numbers(name, args)
		if err != nil {
			return nil, err
		}

		acc := ns[0]
		for _, n := range ns[1:] {
			acc = fn(acc, n)
		}

		return acc, nil
	}
}
