package cmdutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	cases := []struct {
		level          string
		quiet, verbose bool
		want           log.Level
	}{
		{"info", false, false, log.InfoLevel},
		{"WARN", false, false, log.WarnLevel},
		{"info", false, true, log.DebugLevel},
		{"debug", true, true, log.ErrorLevel},
	}
	for _, c := range cases {
		l, err := NewLogger(&bytes.Buffer{}, c.level, c.quiet, c.verbose)
		if err != nil {
			t.Fatalf("%q: %v", c.level, err)
		}
		if l.GetLevel() != c.want {
			t.Errorf("%q q=%v v=%v: got %v want %v", c.level, c.quiet, c.verbose, l.GetLevel(), c.want)
		}
	}
	if _, err := NewLogger(&bytes.Buffer{}, "loud", false, false); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestWarnf(t *testing.T) {
	var buf bytes.Buffer
	l, _ := NewLogger(&buf, "info", false, false)
	Warnf(l, "skipped %d lines", 3)
	if !strings.Contains(buf.String(), "skipped 3 lines") {
		t.Fatalf("warning not logged: %q", buf.String())
	}
	Warnf(nil, "ignored")

	buf.Reset()
	l, _ = NewLogger(&buf, "info", true, false)
	Warnf(l, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("quiet logger wrote %q", buf.String())
	}
}
