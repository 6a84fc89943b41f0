// internal/writers/registry.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"syscall"

	"taxjoin/internal/output"
)

// Options tune individual writers.
type Options struct {
	Header bool // TSV header row
}

// WriteFunc renders one report in a given format.
type WriteFunc func(w io.Writer, rep output.Report, opt Options) error

// Writer registry (format → handler). Register in init() blocks.
var registry = map[string]WriteFunc{}

// Register installs fn for format (idempotent last-wins).
func Register(format string, fn WriteFunc) { registry[format] = fn }

// Registered lists the known formats in sorted order.
func Registered() []string {
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Write dispatches to the writer registered for format.
func Write(format string, w io.Writer, rep output.Report, opt Options) error {
	fn, ok := registry[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	if err := fn(w, rep, opt); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}

// IsBrokenPipe reports whether err comes from a closed downstream reader,
// e.g. `taxjoin ... -o tsv | head`.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
