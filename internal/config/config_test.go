package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c != Defaults() {
		t.Fatalf("got %+v, want defaults %+v", c, Defaults())
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxjoin.yaml")
	data := "lineage: data/x.taxon\nsequences: data/x.fasta\nnormalize: false\noutput: JSON\ntop_n: 5\nsqlite: out.db\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Lineage != "data/x.taxon" || c.Sequences != "data/x.fasta" || c.Normalize || c.Output != "json" || c.TopN != 5 || c.SQLite != "out.db" {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.Bins != 50 || c.LogLevel != "info" {
		t.Fatalf("unset keys must keep defaults: %+v", c)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxjoin.toml")
	if err := os.WriteFile(path, []byte("bins = 10\nnormalize = true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TAXJOIN_NORMALIZE", "false")
	t.Setenv("TAXJOIN_TOP_N", "3")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Normalize || c.TopN != 3 || c.Bins != 10 {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
