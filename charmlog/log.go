// Package charmlog provides an implementation of todo.Logger using charmbracelet/log
package charmlog

import (
	"io"
	"os"
	"strings"

	"github.com/benjamonnguyen/todo"
	"github.com/charmbracelet/log"
)

type Options struct {
	Writer io.Writer
	Level  string
	Prefix string
	// Format is "text" (default), "logfmt" or "json".
	Format string
}

func NewLogger(opts Options) todo.Logger {
	return newLogger(opts)
}

func newLogger(opts Options) *log.Logger {
	var w io.Writer = os.Stdout
	if opts.Writer != nil {
		w = opts.Writer
	}

	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		Formatter:       formatter(opts.Format),
	})
}

func formatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "logfmt":
		return log.LogfmtFormatter
	case "json":
		return log.JSONFormatter
	default:
		return log.TextFormatter
	}
}
