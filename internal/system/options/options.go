// Released under an MIT license. See LICENSE.

// Package options parses the sketch command line.
package options

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

// Version is printed by -v.
const Version = "sketch 0.1.0"

//nolint:gochecknoglobals
var (
	command     string
	config      string
	interactive bool
	list        bool
	overrides   map[string]interface{}
	scripts     []string
	usage       = `sketch

Usage:
  sketch [options] SCRIPT...
  sketch [options] -c COMMAND
  sketch [options] [-i] [-s]
  sketch -l SCRIPT
  sketch -h
  sketch -v

Arguments:
  SCRIPT  Path to a sketch script. Several scripts run independently.

Options:
  -c, --command=COMMAND  Run the specified command.
  -i, --interactive      Disable interactive mode.
  -s, --stdin            Read commands from stdin.
  -l, --list             Print the symbols a script imports and exit.
  -f, --frames=N         Frames per scene. Negative runs until interrupted.
  -a, --accumulate       Keep shapes from one frame to the next.
  --sink=KIND            Where frames go: console, record or ws.
  --record=FILE          File frames are recorded to.
  --listen=ADDR          Address the websocket sink listens on.
  --config=FILE          Configuration file [default: sketch.yaml].
  --log=FILE             Log file.
  -V, --verbose          Log debug messages.
  -h, --help             Display this help.
  -v, --version          Print sketch version.

If sketch's stdin is a TTY, and sketch was invoked with no scripts or
command, or was explicitly directed to evaluate commands from stdin,
interactive mode is enabled. Otherwise, it is disabled.
`
)

// Command returns the -c argument, if any.
func Command() string {
	return command
}

// Config returns the configuration file path.
func Config() string {
	return config
}

// Interactive returns true if commands should be read with line editing.
func Interactive() bool {
	return interactive
}

// List returns true if sketch should only print a script's symbols.
func List() bool {
	return list
}

// Overrides returns the configuration values set on the command line,
// keyed by configuration key.
func Overrides() map[string]interface{} {
	return overrides
}

// Parse parses os.Args.
func Parse() error {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv, which does not include the program name.
func ParseArgs(argv []string) error {
	parser := &docopt.Parser{HelpHandler: docopt.PrintHelpAndExit}

	opts, err := parser.ParseArgs(usage, argv, Version)
	if err != nil {
		return err
	}

	command, _ = opts.String("--command")
	config, _ = opts.String("--config")
	list, _ = opts.Bool("--list")

	scripts, _ = opts["SCRIPT"].([]string)

	interactive = false
	if len(scripts) == 0 && command == "" {
		stdin, _ := opts.Bool("--stdin")
		interactive = stdin || isatty.IsTerminal(os.Stdin.Fd())
	}

	invertInteractive, _ := opts.Bool("--interactive")
	interactive = interactive != invertInteractive

	overrides = map[string]interface{}{}

	if s, _ := opts.String("--frames"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("--frames: %w", err)
		}

		overrides["run.frames"] = n
	}

	if b, _ := opts.Bool("--accumulate"); b {
		overrides["scene.accumulate"] = true
	}

	if b, _ := opts.Bool("--verbose"); b {
		overrides["log.verbose"] = true
	}

	for flag, key := range map[string]string{
		"--listen": "sink.listen",
		"--log":    "log.filename",
		"--record": "sink.record",
		"--sink":   "sink.kind",
	} {
		if s, _ := opts.String(flag); s != "" {
			overrides[key] = s
		}
	}

	return nil
}

// Scripts returns the script paths given on the command line.
func Scripts() []string {
	return scripts
}
