// Released under an MIT license. See LICENSE.

/*
Sketch evaluates scripts that build 2D scenes out of shapes and pipelines
of operations, and presents each frame of the scene to a render sink.

	<- [SKETCH] [LIBRARY];
	<- [SKETCH];

	make scene [300; 300; -> [..[
	    background ["black"];
	    |> [
	        make rectangle [width [1]; height [1]];
	        | no fill [];
	        | set stroke ["crimson"]
	    ];
	    update []
	]]]

Frames go to the console by default. They can also be recorded as YAML or
streamed to a browser over a websocket.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/michaelmacinnis/sketch/internal/engine"
	"github.com/michaelmacinnis/sketch/internal/engine/driver"
	"github.com/michaelmacinnis/sketch/internal/reader/ast"
	"github.com/michaelmacinnis/sketch/internal/render/console"
	"github.com/michaelmacinnis/sketch/internal/render/multi"
	"github.com/michaelmacinnis/sketch/internal/render/record"
	"github.com/michaelmacinnis/sketch/internal/render/ws"
	"github.com/michaelmacinnis/sketch/internal/system/config"
	"github.com/michaelmacinnis/sketch/internal/system/logging"
	"github.com/michaelmacinnis/sketch/internal/system/options"
	"github.com/michaelmacinnis/sketch/internal/ui"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := options.Parse(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(options.Config(), options.Overrides())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, closer := logging.New(cfg.Logging())
	defer closer.Close()

	slog.SetDefault(logger)

	// Interactive sessions interrupt one unit at a time.
	ctx, stop := context.Background(), func() {}
	if !options.Interactive() {
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt)
	}
	defer stop()

	err = run(ctx, cfg, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("sketch failed", "error", err)
		fmt.Fprintln(os.Stderr, err)

		stop()
		closer.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.T, logger *slog.Logger) error {
	if options.List() {
		paths := options.Scripts()
		if len(paths) != 1 {
			return errors.New("--list takes exactly one script")
		}

		return list(os.Stdout, paths[0])
	}

	g, ctx := errgroup.WithContext(ctx)

	sink, done, err := sinks(ctx, g, cfg, logger)
	if err != nil {
		return err
	}

	g.Go(func() error {
		defer done()

		return evaluate(ctx, cfg, logger, sink)
	})

	return g.Wait()
}

func evaluate(ctx context.Context, cfg *config.T, logger *slog.Logger, sink driver.Sink) error {
	o := engine.Options{
		Console: os.Stdout,
		Frames:  cfg.Frames(),
		Logger:  logger,
		Policy:  cfg.Policy(),
	}

	switch {
	case len(options.Scripts()) > 0:
		return scripts(ctx, o, sink, options.Scripts())
	case options.Command() != "":
		return source(ctx, engine.New(o), sink, "command", options.Command())
	case options.Interactive():
		return ui.Run(&session{ctx: ctx, engine: engine.New(o), sink: sink}, logger)
	}

	text, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}

	return source(ctx, engine.New(o), sink, "stdin", string(text))
}

// scripts runs every path independently. Each gets its own engine and so
// its own symbol tables and scenes.
func scripts(ctx context.Context, o engine.Options, sink driver.Sink, paths []string) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			text, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			return source(ctx, engine.New(o), sink, path, string(text))
		})
	}

	return g.Wait()
}

func source(ctx context.Context, e *engine.T, sink driver.Sink, name, text string) error {
	p, err := e.Load(name, text)
	if err != nil {
		return err
	}

	return e.Run(ctx, p, sink)
}

// sinks builds the configured render sinks. The returned function releases
// them once evaluation is finished.
func sinks(
	ctx context.Context, g *errgroup.Group, cfg *config.T, logger *slog.Logger,
) (driver.Sink, func(), error) {
	var (
		all     []driver.Sink
		closers []io.Closer
	)

	release := func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				logger.Warn("closing sink failed", "error", err)
			}
		}
	}

	for _, kind := range strings.Split(cfg.Sink(), ",") {
		switch strings.TrimSpace(kind) {
		case config.Console:
			all = append(all, console.New(os.Stdout, isatty.IsTerminal(os.Stdout.Fd())))

		case config.Record:
			f, err := os.Create(cfg.SinkRecord())
			if err != nil {
				release()
				return nil, nil, err
			}

			r := record.New(f)
			all = append(all, r)
			closers = append(closers, r)

		case config.WS:
			s := ws.New(logger)
			all = append(all, s)

			g.Go(func() error {
				return s.ListenAndServe(ctx, cfg.SinkListen())
			})

			logger.Info("serving frames until interrupted", "addr", cfg.SinkListen())

		default:
			release()
			return nil, nil, fmt.Errorf("unknown sink %q", kind)
		}
	}

	return multi.New(all...), release, nil
}

func list(w io.Writer, path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	p, err := engine.New(engine.Options{}).Load(path, string(text))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Symbol", "Namespace", "Kind", "Arity"})
	table.SetAutoFormatHeaders(false)

	for _, s := range p.Table.Symbols() {
		table.Append([]string{s.Name, s.Namespace, s.Kind.String(), s.Arity.String()})
	}

	table.Render()

	return nil
}

// session evaluates units typed at the REPL. Errors are reported and the
// session continues.
type session struct {
	ctx    context.Context
	engine *engine.T
	sink   driver.Sink
}

func (s *session) Evaluate(unit *ast.Script) {
	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt)
	defer stop()

	p, err := s.engine.Resolve(unit)
	if err == nil {
		err = s.engine.Run(ctx, p, s.sink)
	}

	if err != nil {
		s.Report(err)
	}
}

func (s *session) Names() []string {
	return s.engine.Names()
}

func (s *session) Report(err error) {
	fmt.Fprintln(os.Stderr, err)
}
