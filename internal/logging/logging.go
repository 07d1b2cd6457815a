// Package logging builds the charmbracelet loggers shared by the commands.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Options controls logger construction.
type Options struct {
	Level      string // debug, info, warn or error; empty means info
	Prefix     string
	Timestamps bool
	JSON       bool
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = log.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	lo := log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.Timestamps,
		TimeFormat:      time.Kitchen,
	}
	if opts.JSON {
		lo.Formatter = log.JSONFormatter
		lo.TimeFormat = time.RFC3339Nano
	}
	return log.NewWithOptions(w, lo), nil
}

// Discard returns a logger that drops everything, for tests and library
// callers that pass no logger.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
