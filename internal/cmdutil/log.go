// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger returns a stderr-style logger for a command run.
// quiet drops everything below error and wins over verbose; verbose
// forces debug.
func NewLogger(dst io.Writer, level string, quiet, verbose bool) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	switch {
	case quiet:
		lvl = log.ErrorLevel
	case verbose:
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(dst, log.Options{
		Level:           lvl,
		Prefix:          "taxjoin",
		ReportTimestamp: false,
	}), nil
}

// Warnf logs a formatted warning unless l is nil.
func Warnf(l *log.Logger, format string, a ...any) {
	if l == nil {
		return
	}
	l.Warn(fmt.Sprintf(format, a...))
}
