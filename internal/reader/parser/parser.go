// Released under an MIT license. See LICENSE.

// Package parser provides a recursive descent parser for the sketch language.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/sketch/internal/reader/ast"
	"github.com/michaelmacinnis/sketch/internal/reader/token"
	"github.com/michaelmacinnis/sketch/internal/type/errscript"
)

// T holds the state of the parser.
type T struct {
	ahead int             // Lookahead count.
	item  func() *token.T // Function to call to get another token.
	last  *token.T        // Most recently consumed token.
	label string          // Label for the script.
	token *token.T        // Token lookahead.
}

// New creates a new parser that consumes tokens produced by item.
func New(name string, item func() *token.T) *T {
	return &T{item: item, label: name}
}

// failure is the panic value used to unwind on a syntax error.
type failure struct {
	err *errscript.T
}

// Parse consumes tokens until there are no more and returns the script.
func (p *T) Parse() (s *ast.Script, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		s = nil

		switch r := r.(type) {
		case failure:
			err = r.err
		case error:
			err = errscript.Wrap(errscript.ErrSyntax, r)
		case string:
			err = errscript.Wrap(errscript.ErrSyntax, errors.New(r))
		default:
			err = errscript.New(errscript.ErrSyntax, "", "unexpected error")
		}
	}()

	s = &ast.Script{Name: p.label}

	for t := p.peek(); t != nil; t = p.peek() {
		if t.Is(';') {
			p.consume()

			continue
		}

		if t.Is(token.Import) {
			s.Imports = append(s.Imports, p.importation())
		} else {
			s.Body = append(s.Body, p.expression())
		}

		p.separator()
	}

	return s, nil
}

func (p *T) consume() *token.T {
	if p.ahead == 0 {
		panic("nothing to consume")
	}

	t := p.token

	p.ahead = 0
	p.last = t
	p.token = nil

	return t
}

func (p *T) expect(cs ...token.Class) *token.T {
	t := p.peek()
	if t.Is(cs...) {
		return p.consume()
	}

	// Make a nice error message.
	n := len(cs)
	e := make([]string, n)

	for i, c := range cs {
		e[i] = c.String()
	}

	l := e[n-1]
	if n > 2 { //nolint:gomnd
		l = strings.Join(e[:n-1], ", ") + ", or " + l
	} else if n > 1 {
		l = e[0] + " or " + l
	}

	p.fail(t, "expected %s got %s", l, describe(t))

	return nil
}

func (p *T) fail(t *token.T, format string, args ...interface{}) {
	e := errscript.New(errscript.ErrSyntax, "", fmt.Sprintf(format, args...))
	if t == nil {
		t = p.last
	}

	if t != nil {
		e.At(t.Source())
	}

	panic(failure{e})
}

func (p *T) peek() *token.T {
	if p.ahead > 0 {
		return p.token
	}

	t := p.item()

	p.token = t
	p.ahead = 1

	return t
}

// separator consumes the ';' that ends a statement unless a ']' or the
// end of input follows.
func (p *T) separator() {
	t := p.peek()
	if t == nil || t.Is(']') {
		return
	}

	p.expect(';')
}

// T state functions.

// <importation> ::= '<-' <list> <list>? .
func (p *T) importation() *ast.Import {
	at := p.consume().Source()

	first := p.words(p.list())

	if !p.peek().Is('[') {
		if len(first) != 1 {
			p.fail(p.peek(), "expected a single source in import")
		}

		return &ast.Import{Pos: ast.Pos{At: at}, From: first[0]}
	}

	source := p.words(p.list())
	if len(source) != 1 {
		p.fail(p.peek(), "expected a single source in import")
	}

	if first == nil {
		first = []string{}
	}

	return &ast.Import{Pos: ast.Pos{At: at}, Names: first, From: source[0]}
}

// <expression> ::= Number | String | <name> <list>? | <block> | <lambda>
//
//	| <pipeline> | <definition> .
func (p *T) expression() ast.Node {
	t := p.peek()

	switch {
	case t == nil:
		p.fail(nil, "unexpected end of input")
	case t.Is(token.Number):
		p.consume()

		v, err := strconv.ParseFloat(t.Value(), 64)
		if err != nil {
			p.fail(t, "malformed number %q", t.Value())
		}

		return &ast.Number{Pos: ast.Pos{At: t.Source()}, Value: v}
	case t.Is(token.String):
		p.consume()

		return &ast.String{Pos: ast.Pos{At: t.Source()}, Value: p.unquote(t)}
	case t.Is(token.Word):
		at := t.Source()
		name := p.name()

		if p.peek().Is('[') {
			return &ast.Call{Pos: ast.Pos{At: at}, Name: name, Args: p.list()}
		}

		return &ast.Ref{Pos: ast.Pos{At: at}, Name: name}
	case t.Is(token.Block):
		p.consume()

		return &ast.Block{Pos: ast.Pos{At: t.Source()}, Body: p.list()}
	case t.Is(token.Lambda):
		return p.lambda()
	case t.Is(token.Pipeline):
		return p.pipeline()
	case t.Is(token.Define):
		return p.definition()
	case t.Is(token.Import):
		p.fail(t, "imports are only allowed at the top level")
	case t.Is(token.Error) && strings.HasPrefix(t.Value(), `"`):
		p.fail(t, "unterminated string")
	}

	p.fail(t, "unexpected %s", describe(t))

	return nil
}

// <definition> ::= ':=' '[' <name> ';' <expression> ';'? ']' .
func (p *T) definition() ast.Node {
	at := p.consume().Source()

	p.expect('[')

	if !p.peek().Is(token.Word) {
		p.fail(p.peek(), "expected a name got %s", describe(p.peek()))
	}

	name := p.name()

	p.expect(';')

	value := p.expression()

	if p.peek().Is(';') {
		p.consume()
	}

	p.expect(']')

	return &ast.Define{Pos: ast.Pos{At: at}, Name: name, Value: value}
}

// <lambda> ::= '->' <list> .
func (p *T) lambda() ast.Node {
	t := p.consume()

	elements := p.list()
	if len(elements) == 0 {
		p.fail(t, "lambda requires a body")
	}

	n := len(elements) - 1
	params := make([]string, 0, n)

	for _, e := range elements[:n] {
		r, ok := e.(*ast.Ref)
		if !ok {
			p.fail(t, "lambda parameters must be names")
		}

		params = append(params, r.Name)
	}

	return &ast.Lambda{
		Pos:    ast.Pos{At: t.Source()},
		Params: params,
		Body:   elements[n],
	}
}

// <list> ::= '[' (<expression> (';' <expression>)*)? ';'? ']' .
func (p *T) list() []ast.Node {
	p.expect('[')

	var ns []ast.Node

	for !p.peek().Is(']') {
		ns = append(ns, p.expression())

		p.separator()

		for p.peek().Is(';') {
			p.consume()
		}
	}

	p.consume()

	return ns
}

// <name> ::= Word+ .
func (p *T) name() string {
	words := []string{}

	for p.peek().Is(token.Word) {
		words = append(words, p.consume().Value())
	}

	return strings.Join(words, " ")
}

// <pipeline> ::= '|>' '[' <expression> (';' '|' <name> <list>)* ';'? ']' .
func (p *T) pipeline() ast.Node {
	at := p.consume().Source()

	p.expect('[')

	pl := &ast.Pipeline{Pos: ast.Pos{At: at}, Target: p.expression()}

	for {
		if p.peek().Is(';') {
			p.consume()
		}

		if p.peek().Is(']') {
			p.consume()
			break
		}

		t := p.expect(token.Pipe)

		if !p.peek().Is(token.Word) {
			p.fail(p.peek(), "expected an operation got %s", describe(p.peek()))
		}

		pl.Steps = append(pl.Steps, &ast.Step{
			Pos:  ast.Pos{At: t.Source()},
			Name: p.name(),
			Args: p.list(),
		})
	}

	return pl
}

func (p *T) unquote(t *token.T) string {
	v := t.Value()

	s, err := adapted.ActualBytes(v[1 : len(v)-1])
	if err != nil {
		p.fail(t, "malformed string %s", v)
	}

	return s
}

// words returns the names in an import list.
func (p *T) words(ns []ast.Node) []string {
	var ws []string

	for _, n := range ns {
		switch n := n.(type) {
		case *ast.String:
			ws = append(ws, n.Value)
		case *ast.Ref:
			ws = append(ws, n.Name)
		default:
			e := errscript.New(errscript.ErrSyntax, "", "import lists may only contain names")
			panic(failure{e.At(n.Source())})
		}
	}

	return ws
}

func describe(t *token.T) string {
	if t == nil {
		return "end of input"
	}

	if t.Is(token.Error) {
		if strings.HasPrefix(t.Value(), `"`) {
			return "unterminated string " + strconv.Quote(t.Value())
		}

		return "character " + strconv.Quote(t.Value())
	}

	return strconv.Quote(t.Value())
}
