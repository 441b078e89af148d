// Released under an MIT license. See LICENSE.

// Package logging builds the structured logger used by every component.
package logging

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultFilename is used when no log file is configured.
const DefaultFilename = ".sketch.log"

// Settings describe where and what to log.
type Settings struct {
	Filename   string
	Level      string
	Verbose    bool
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// New creates a text logger writing to a rotating log file.
func New(s Settings) (*slog.Logger, io.Closer) {
	if strings.TrimSpace(s.Filename) == "" {
		s.Filename = DefaultFilename
	}

	w := &lumberjack.Logger{
		Filename:   s.Filename,
		MaxSize:    s.MaxSize,
		MaxBackups: s.MaxBackups,
		MaxAge:     s.MaxAge,
		Compress:   s.Compress,
	}

	return To(w, s), w
}

// To creates a text logger writing to w.
func To(w io.Writer, s Settings) *slog.Logger {
	level := ParseLevel(s.Level, slog.LevelInfo)
	if s.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: s.Verbose,
		Level:     level,
	}))
}

// ParseLevel accepts level names or numeric slog levels.
func ParseLevel(value string, fallback slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))

	switch level {
	case "":
		return fallback
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return fallback
}
