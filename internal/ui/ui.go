// Released under an MIT license. See LICENSE.

// Package ui provides an interactive command-line interface for sketch.
package ui

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/michaelmacinnis/sketch/internal/reader"
	"github.com/michaelmacinnis/sketch/internal/reader/ast"
	"github.com/michaelmacinnis/sketch/internal/system/history"
	"github.com/peterh/liner"
)

const (
	prompt       = "sketch> "
	continuation = "   ...> "
)

// Evaluator is the interface for things that want to process parsed units.
type Evaluator interface {
	Evaluate(unit *ast.Script)
	Names() []string
	Report(err error)
}

// Line is the subset of a line editor that Run needs.
type Line interface {
	AppendHistory(item string)
	Prompt(p string) (string, error)
}

// Run reads units with line editing and history until end of input.
func Run(e Evaluator, logger *slog.Logger) error {
	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)
	cli.SetWordCompleter(Completer(e.Names))

	path := history.Path()
	if err := history.Load(path, cli.ReadHistory); err != nil {
		logger.Warn("cannot read history", "path", path, "error", err)
	}

	err := Loop(cli, e, logger)

	if herr := history.Save(path, cli.WriteHistory); herr != nil {
		logger.Warn("cannot write history", "path", path, "error", herr)
	}

	return err
}

// Loop prompts for lines on l, passing each complete unit to e. Parse
// errors are reported to e and do not end the loop. Aborting a prompt
// discards any partial unit.
func Loop(l Line, e Evaluator, logger *slog.Logger) error {
	r := reader.New("sketch")

	for {
		p := prompt
		if r.Pending() {
			p = continuation
		}

		line, err := l.Prompt(p)

		switch {
		case err == nil:
			if strings.TrimSpace(line) != "" {
				l.AppendHistory(line)
			}
		case errors.Is(err, liner.ErrPromptAborted):
			r.Reset()
			continue
		case errors.Is(err, io.EOF):
			return nil
		default:
			return err
		}

		unit, err := r.Scan(line)
		if err != nil {
			logger.Debug("syntax error", "error", err)
			e.Report(err)

			continue
		}

		if unit != nil {
			e.Evaluate(unit)
		}
	}
}

// Completer returns a word completer offering the names returned by names.
func Completer(names func() []string) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		head, tail := line[:pos], line[pos:]

		start := strings.LastIndexAny(head, "[];\"") + 1
		word := strings.TrimLeft(head[start:], " \t")
		head = head[:len(head)-len(word)]

		var cs []string

		for _, n := range names() {
			if strings.HasPrefix(n, word) {
				cs = append(cs, n)
			}
		}

		return head, cs, tail
	}
}
