// Released under an MIT license. See LICENSE.

package eval

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/michaelmacinnis/sketch/internal/engine/commands"
	"github.com/michaelmacinnis/sketch/internal/engine/driver"
	"github.com/michaelmacinnis/sketch/internal/engine/namespace"
	"github.com/michaelmacinnis/sketch/internal/engine/pipeline"
	"github.com/michaelmacinnis/sketch/internal/engine/shape"
	"github.com/michaelmacinnis/sketch/internal/reader/ast"
	"github.com/michaelmacinnis/sketch/internal/type/errscript"
)

// Options configure a run.
type Options struct {
	Console io.Writer
	Logger  *slog.Logger
}

// closure is a lambda together with the env it was created in.
type closure struct {
	body   ast.Node
	env    *env
	params []string
}

// Params returns the number of parameters c takes.
func (c *closure) Params() int {
	return len(c.params)
}

func (c *closure) String() string {
	return "-> [" + strconv.Itoa(len(c.params)) + " params]"
}

// machine evaluates one program. It implements commands.Runtime.
type machine struct {
	console io.Writer
	ctx     context.Context
	driver  *driver.T
	frame   *driver.Frame
	holding int
	logger  *slog.Logger
	pending []*shape.T
	program *Program
}

// Run evaluates the top-level statements of p. Each make scene call
// drives d for that scene's frames.
func (p *Program) Run(ctx context.Context, d *driver.T, o Options) error {
	if o.Console == nil {
		o.Console = os.Stdout
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	m := &machine{
		console: o.Console,
		ctx:     ctx,
		driver:  d,
		logger:  o.Logger,
		program: p,
	}

	m.logger.Debug("program started",
		"name", p.Script.Name, "symbols", p.Table.Len())

	top := newEnv(nil)

	for _, n := range p.Script.Body {
		if _, err := m.eval(top, n); err != nil {
			return err
		}
	}

	return nil
}

// Runtime interface.

func (m *machine) Console() io.Writer {
	return m.console
}

func (m *machine) Context() context.Context {
	return m.ctx
}

func (m *machine) Frame(name string) (*driver.Frame, error) {
	if m.frame == nil {
		return nil, errscript.New(errscript.ErrInvalidValue, name,
			"only valid inside a scene body")
	}

	return m.frame, nil
}

func (m *machine) Pend(s *shape.T) {
	m.pending = append(m.pending, s)
}

func (m *machine) Scene(width, height float64, body commands.Callable) error {
	if m.frame != nil {
		return errscript.New(errscript.ErrInvalidValue, "make scene", "scenes cannot be nested")
	}

	c, ok := body.(*closure)
	if !ok {
		return errscript.New(errscript.ErrInvalidValue, "make scene", "expected a procedure")
	}

	if c.Params() != 0 {
		return errscript.New(errscript.ErrArityMismatch, "make scene",
			fmt.Sprintf("scene body must take no arguments, takes %d", c.Params()))
	}

	return m.driver.Run(m.ctx, width, height, func(_ context.Context, f *driver.Frame) error {
		m.frame = f
		defer func() { m.frame = nil }()

		m.pending = m.pending[:0]

		if _, err := m.call(c, nil); err != nil {
			m.pending = m.pending[:0]
			return err
		}

		return m.commit(0)
	})
}

// Evaluation.

func (m *machine) args(e *env, ns []ast.Node) ([]interface{}, error) {
	vs := make([]interface{}, len(ns))

	for i, n := range ns {
		v, err := m.eval(e, n)
		if err != nil {
			return nil, err
		}

		vs[i] = v
	}

	return vs, nil
}

func (m *machine) call(c *closure, args []interface{}) (interface{}, error) {
	if len(args) != len(c.params) {
		return nil, errscript.New(errscript.ErrArityMismatch, "",
			fmt.Sprintf("expected %d argument(s), passed %d", len(c.params), len(args)))
	}

	inner := newEnv(c.env)
	for i, p := range c.params {
		inner.Define(p, args[i])
	}

	return m.eval(inner, c.body)
}

// commit adds the shapes pended since mark to the scene, in creation order.
func (m *machine) commit(mark int) error {
	fresh := m.pending[mark:]
	m.pending = m.pending[:mark]

	for _, s := range fresh {
		if s.Committed() {
			continue
		}

		if err := m.frame.Add(s); err != nil {
			return err
		}
	}

	return nil
}

func (m *machine) dispatch(e *env, name string, args []interface{}) (interface{}, error) {
	if v, ok := e.Lookup(name); ok {
		c, ok := v.(*closure)
		if !ok {
			return nil, errscript.New(errscript.ErrInvalidValue, name, "not a procedure")
		}

		return m.call(c, args)
	}

	s, ok := m.program.Table.Lookup(name)
	if !ok {
		// Load resolves every name, so this only happens for programs
		// that were not built by Load.
		return nil, errscript.New(errscript.ErrUnresolvedSymbol, name, "not imported")
	}

	if s.Kind == namespace.Mutator {
		if len(args) == 0 {
			return nil, errscript.New(errscript.ErrArityMismatch, name, "expected a shape")
		}

		return m.mutate(name, args[0], []step{{name: name, args: args[1:]}})
	}

	if !s.Arity.Accepts(len(args)) {
		return nil, errscript.New(errscript.ErrArityMismatch, name,
			fmt.Sprintf("expected %s argument(s), passed %d", s.Arity, len(args)))
	}

	b, ok := commands.Lookup(s)
	if !ok {
		return nil, errscript.New(errscript.ErrUnresolvedSymbol, name, "no implementation")
	}

	return b(m, args)
}

func (m *machine) eval(e *env, n ast.Node) (v interface{}, err error) {
	defer func() {
		if x := errscript.As(err); x != nil {
			x.At(n.Source())
		}
	}()

	if err := m.ctx.Err(); err != nil {
		return nil, err
	}

	switch n := n.(type) {
	case *ast.Number:
		return n.Value, nil

	case *ast.String:
		return n.Value, nil

	case *ast.Ref:
		if v, ok := e.Lookup(n.Name); ok {
			return v, nil
		}

		return m.dispatch(e, n.Name, nil)

	case *ast.Call:
		args, err := m.args(e, n.Args)
		if err != nil {
			return nil, err
		}

		return m.dispatch(e, n.Name, args)

	case *ast.Block:
		inner := newEnv(e)

		for _, s := range n.Body {
			mark := len(m.pending)

			v, err = m.eval(inner, s)
			if err != nil {
				return nil, err
			}

			if m.holding == 0 && m.frame != nil {
				if err := m.commit(mark); err != nil {
					return nil, err
				}
			}
		}

		return v, nil

	case *ast.Define:
		v, err := m.eval(e, n.Value)
		if err != nil {
			return nil, err
		}

		e.Define(n.Name, v)

		return v, nil

	case *ast.Lambda:
		return &closure{body: n.Body, env: e, params: n.Params}, nil

	case *ast.Pipeline:
		return m.pipeline(e, n)
	}

	return nil, errscript.New(errscript.ErrSyntax, "", "unknown node")
}

type step struct {
	name string
	args []interface{}
}

// mutate builds every operation in ops and applies them to target in order.
func (m *machine) mutate(name string, target interface{}, ops []step) (*shape.T, error) {
	s, ok := target.(*shape.T)
	if !ok {
		return nil, errscript.New(errscript.ErrInvalidValue, name,
			fmt.Sprintf("expected a shape, got %v", target))
	}

	built := make([]pipeline.Operation, 0, len(ops))

	for _, op := range ops {
		b, ok := pipeline.Lookup(op.name)
		if !ok {
			return nil, errscript.New(errscript.ErrUnresolvedSymbol, op.name, "not an operation")
		}

		o, err := b(op.args)
		if err != nil {
			return nil, err
		}

		built = append(built, o)
	}

	return pipeline.Apply(s, built...)
}

// pipeline evaluates the target of n once and applies each step to it.
// The target is only visible to the steps of n.
func (m *machine) pipeline(e *env, n *ast.Pipeline) (interface{}, error) {
	m.holding++

	target, err := m.eval(e, n.Target)

	m.holding--

	if err != nil {
		return nil, err
	}

	var ops []step

	flush := func() error {
		if len(ops) == 0 {
			return nil
		}

		_, err := m.mutate(ops[0].name, target, ops)
		ops = nil

		return err
	}

	for _, s := range n.Steps {
		args, err := m.args(e, s.Args)
		if err != nil {
			return nil, err
		}

		if v, ok := e.Lookup(s.Name); ok {
			c, ok := v.(*closure)
			if !ok {
				return nil, errscript.New(errscript.ErrInvalidValue, s.Name,
					"not a procedure").At(s.Source())
			}

			if err := flush(); err != nil {
				return nil, err
			}

			if _, err := m.call(c, append([]interface{}{target}, args...)); err != nil {
				return nil, err
			}

			continue
		}

		ops = append(ops, step{name: s.Name, args: args})
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return target, nil
}
