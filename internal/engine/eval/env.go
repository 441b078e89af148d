// Released under an MIT license. See LICENSE.

package eval

// env maps names bound by := and lambda parameters to values.
type env struct {
	previous *env
	values   map[string]interface{}
}

func newEnv(previous *env) *env {
	return &env{previous: previous, values: map[string]interface{}{}}
}

// Define associates the name k with the value v in the env e.
func (e *env) Define(k string, v interface{}) {
	e.values[k] = v
}

// Lookup retrieves the value associated with the name k in the env e or
// any enclosing env.
func (e *env) Lookup(k string) (interface{}, bool) {
	for ; e != nil; e = e.previous {
		if v, ok := e.values[k]; ok {
			return v, true
		}
	}

	return nil, false
}

// scope is the load-time counterpart of env. It only tracks names.
type scope struct {
	previous *scope
	names    map[string]bool
}

func newScope(previous *scope) *scope {
	return &scope{previous: previous, names: map[string]bool{}}
}

func (s *scope) Define(k string) {
	s.names[k] = true
}

func (s *scope) Visible(k string) bool {
	for ; s != nil; s = s.previous {
		if s.names[k] {
			return true
		}
	}

	return false
}
