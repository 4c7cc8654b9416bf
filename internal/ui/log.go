package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the process-wide diagnostic logger. It writes to stderr so it
// never mixes with JSON or YAML on stdout.
var Logger = NewLogger(os.Stderr, false)

// NewLogger creates a logger. Verbose enables debug level, timestamps and
// caller reporting.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		ReportCaller:    verbose,
		TimeFormat:      "15:04:05",
	})
}

// SetupLogging replaces Logger based on verbosity.
func SetupLogging(verbose bool) *log.Logger {
	Logger = NewLogger(os.Stderr, verbose)
	return Logger
}
