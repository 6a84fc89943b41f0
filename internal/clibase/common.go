// internal/clibase/common.go
package clibase

import (
	"flag"
	"fmt"
	"strings"
)

// LogLevels accepted by --log-level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Common holds the miscellaneous flags every taxjoin command carries.
type Common struct {
	ConfigPath string
	LogLevel   string
	Verbose    bool
	Quiet      bool
	Progress   bool
	Version    bool
}

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.ConfigPath, "config", "", "config file (yaml|toml|json)")
	fs.StringVar(&c.LogLevel, "log-level", "info", "log level: debug | info | warn | error [info]")
	fs.BoolVar(&c.Verbose, "verbose", false, "shorthand for --log-level debug [false]")
	fs.BoolVar(&c.Quiet, "quiet", false, "only log errors [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Progress, "progress", false, "show read progress on stderr [false]")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
}

// Validate applies the shared invariants.
func Validate(c *Common) error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	for _, l := range LogLevels {
		if c.LogLevel == l {
			return nil
		}
	}
	return fmt.Errorf("invalid --log-level %q", c.LogLevel)
}
