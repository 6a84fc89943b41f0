package cliutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestSplitFlagsAndPositionals(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var b bool
	var s string
	fs.BoolVar(&b, "bool", false, "")
	fs.StringVar(&s, "output", "", "")
	flagArgs, posArgs := SplitFlagsAndPositionals(fs,
		[]string{"a.taxon", "--output", "json", "--bool", "-", "--top=3", "--", "-weird"})
	wantFlags := []string{"--output", "json", "--bool", "--top=3"}
	wantPos := []string{"a.taxon", "-", "-weird"}
	if len(flagArgs) != len(wantFlags) || len(posArgs) != len(wantPos) {
		t.Fatalf("unexpected split: %v / %v", flagArgs, posArgs)
	}
	for i := range wantFlags {
		if flagArgs[i] != wantFlags[i] {
			t.Fatalf("flag %d: got %q want %q", i, flagArgs[i], wantFlags[i])
		}
	}
	for i := range wantPos {
		if posArgs[i] != wantPos[i] {
			t.Fatalf("pos %d: got %q want %q", i, posArgs[i], wantPos[i])
		}
	}
}

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fasta")
	b := filepath.Join(dir, "b.fasta")
	_ = os.WriteFile(a, []byte(">a\nA\n"), 0o644)
	_ = os.WriteFile(b, []byte(">b\nA\n"), 0o644)
	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.fasta")})
	if err != nil || len(got) != 2 {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
	if _, err := ExpandPositionals([]string{filepath.Join(dir, "*.none")}); err == nil {
		t.Fatalf("expected error for unmatched glob")
	}
}

func TestPathPair(t *testing.T) {
	l, s, err := PathPair(nil)
	if err != nil || l != "" || s != "" {
		t.Fatalf("empty: %q %q %v", l, s, err)
	}
	l, s, err = PathPair([]string{"x.taxon", "-"})
	if err != nil || l != "x.taxon" || s != "-" {
		t.Fatalf("pair: %q %q %v", l, s, err)
	}
	if _, _, err := PathPair([]string{"only.taxon"}); err == nil {
		t.Fatalf("expected error for a single path")
	}
	if _, _, err := PathPair([]string{"a", "b", "c"}); err == nil {
		t.Fatalf("expected error for three paths")
	}
}
