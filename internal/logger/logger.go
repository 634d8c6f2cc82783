// Package logger builds the charmbracelet/log loggers used by the xpa
// command-line tools and, optionally, by the client library itself.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// NewWithLevel creates a logger at an explicit level, parsed from its
// string form ("debug", "info", "warn", "error"). Unknown levels fall back
// to info.
func NewWithLevel(prefix, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           lvl,
	})
}
