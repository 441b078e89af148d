// Released under an MIT license. See LICENSE.

// Package namespace resolves which host symbols a script may call.
//
// Host namespaces are immutable sets of public symbols. A script unit builds
// its own Table from its import declarations; the Table is frozen before
// the script runs and is never shared between units.
package namespace

import (
	"sort"
	"strconv"

	"github.com/michaelmacinnis/sketch/internal/type/errscript"
)

// Root is the name of the synthetic namespace whose members are the host
// namespaces themselves.
const Root = "LIBRARY"

// Kind classifies a symbol.
type Kind uint8

// Symbol kinds.
const (
	Action Kind = iota
	Constructor
	Mutator
	Namespace
)

var kindNames = [...]string{ //nolint:gochecknoglobals
	Action:      "action",
	Constructor: "constructor",
	Mutator:     "mutator",
	Namespace:   "namespace",
}

func (k Kind) String() string { return kindNames[k] }

// Arity is the accepted number of arguments. Max < 0 means no upper bound.
type Arity struct {
	Min int
	Max int
}

// Fixed returns an Arity of exactly n arguments.
func Fixed(n int) Arity {
	return Arity{Min: n, Max: n}
}

// Accepts returns true if n arguments are acceptable.
func (a Arity) Accepts(n int) bool {
	return n >= a.Min && (a.Max < 0 || n <= a.Max)
}

func (a Arity) String() string {
	switch {
	case a.Max < 0:
		return strconv.Itoa(a.Min) + "+"
	case a.Min == a.Max:
		return strconv.Itoa(a.Min)
	}

	return strconv.Itoa(a.Min) + "-" + strconv.Itoa(a.Max)
}

// Symbol is a callable name exported by a namespace.
type Symbol struct {
	Name      string
	Namespace string
	Kind      Kind
	Arity     Arity
}

// T (namespace) is a named set of public symbols.
type T struct {
	name    string
	symbols map[string]Symbol
}

// New creates a namespace called name.
func New(name string) *T {
	return &T{name: name, symbols: map[string]Symbol{}}
}

// Define adds a public symbol to the namespace n.
func (n *T) Define(name string, k Kind, a Arity) {
	n.symbols[name] = Symbol{
		Name:      name,
		Namespace: n.name,
		Kind:      k,
		Arity:     a,
	}
}

// Get retrieves the symbol called name.
func (n *T) Get(name string) (Symbol, bool) {
	s, ok := n.symbols[name]
	return s, ok
}

// Name returns the name of the namespace n.
func (n *T) Name() string {
	return n.name
}

// Names returns the sorted names of all public symbols in n.
func (n *T) Names() []string {
	names := make([]string, 0, len(n.symbols))
	for k := range n.symbols {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}

// Library is the fixed set of host namespaces a script may import from.
type Library struct {
	root       *T
	namespaces map[string]*T
}

// NewLibrary creates a library of the namespaces ns under the Root namespace.
func NewLibrary(ns ...*T) *Library {
	l := &Library{root: New(Root), namespaces: map[string]*T{}}

	for _, n := range ns {
		l.namespaces[n.Name()] = n
		l.root.Define(n.Name(), Namespace, Fixed(0))
	}

	return l
}

// Namespace returns the host namespace called name.
func (l *Library) Namespace(name string) (*T, bool) {
	if name == Root {
		return l.root, true
	}

	n, ok := l.namespaces[name]

	return n, ok
}

// Table is the symbol table of one script unit.
type Table struct {
	frozen  bool
	library *Library
	sources map[string]bool
	symbols map[string]Symbol
}

// NewTable creates an empty table that imports from l.
// Only the Root namespace is a valid import source until host namespaces
// are imported from it.
func NewTable(l *Library) *Table {
	return &Table{
		library: l,
		sources: map[string]bool{Root: true},
		symbols: map[string]Symbol{},
	}
}

// Import makes names from source callable. A nil names imports every
// public symbol of source.
func (t *Table) Import(names []string, source string) error {
	if t.frozen {
		panic("import into frozen symbol table")
	}

	ns, ok := t.library.Namespace(source)
	if !ok || !t.sources[source] {
		return errscript.New(errscript.ErrUnresolvedSymbol, source, "unknown import source")
	}

	if names == nil {
		names = ns.Names()
	}

	for _, name := range names {
		s, ok := ns.Get(name)
		if !ok {
			return errscript.New(
				errscript.ErrUnresolvedSymbol, name,
				"not exported by "+source,
			)
		}

		if prev, ok := t.symbols[name]; ok && prev.Namespace != s.Namespace {
			return errscript.New(
				errscript.ErrAmbiguousSymbol, name,
				"imported from both "+prev.Namespace+" and "+s.Namespace,
			)
		}

		t.symbols[name] = s

		if s.Kind == Namespace {
			t.sources[name] = true
		}
	}

	return nil
}

// Freeze prevents further imports.
func (t *Table) Freeze() {
	t.frozen = true
}

// Frozen returns true once the table is frozen.
func (t *Table) Frozen() bool {
	return t.frozen
}

// Len returns the number of visible symbols.
func (t *Table) Len() int {
	return len(t.symbols)
}

// Lookup retrieves the visible symbol called name.
func (t *Table) Lookup(name string) (Symbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

// Names returns the sorted names of every visible symbol.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.symbols))
	for k := range t.symbols {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}

// Symbols returns every visible symbol sorted by name.
func (t *Table) Symbols() []Symbol {
	names := t.Names()
	symbols := make([]Symbol, len(names))

	for i, name := range names {
		symbols[i] = t.symbols[name]
	}

	return symbols
}
