// Released under an MIT license. See LICENSE.

package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/sketch/internal/engine/namespace"
)

//nolint:gochecknoinits
func init() {
	define(Console, "log", namespace.Action, namespace.Arity{Min: 0, Max: -1}, logValues)
}

func logValues(rt Runtime, args []interface{}) (interface{}, error) {
	parts := make([]string, len(args))

	for i, a := range args {
		switch v := a.(type) {
		case float64:
			parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
		case nil:
			parts[i] = "()"
		default:
			parts[i] = fmt.Sprint(v)
		}
	}

	_, err := fmt.Fprintln(rt.Console(), strings.Join(parts, " "))

	return nil, err
}
