// internal/integration/integration_test.go
package integration

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taxjoin/internal/app"
	"taxjoin/internal/store"
	"taxjoin/pkg/api"
)

const taxon = "MZ123.1.100.200\tk__Animalia_1;p__Chordata_2;c__Aves_3;o__Passeriformes_4;f__Corvidae_5;g__Corvus_6;s__Corvus corax_7\n" +
	"AB999.2.1.50\tk__Animalia_1;p__Arthropoda_9;c__Insecta_10;o__Diptera_11;f__Culicidae_12;g__Aedes_13;s__Aedes aegypti_14\n" +
	"ZZ000.1\tk__Fungi_20;p__Ascomycota_21\n"

const fasta = ">MZ123.1.100.200\nACGT\nAC\n" +
	">AB999.2.1.50\nACGTACGT\n" +
	">NOPE.1\nAAAA\n"

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func writeGz(t *testing.T, name, data string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte(data))
	_ = zw.Close()
	return write(t, name, buf.String())
}

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(args, &out, &errBuf)
	return out.String(), errBuf.String(), code
}

func TestTextReport(t *testing.T) {
	lin, seq := write(t, "db.taxon", taxon), write(t, "db.fasta", fasta)
	out, errS, code := run(t, lin, seq)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errS)
	}
	for _, want := range []string{"DESCRIPTIVE STATISTICS", "corvus_corax", "aedes_aegypti"} {
		if !strings.Contains(out, want) {
			t.Fatalf("text report missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(errS, "tables joined") {
		t.Fatalf("expected join log on stderr, got %q", errS)
	}
}

func TestJSONReport(t *testing.T) {
	lin, seq := write(t, "db.taxon", taxon), write(t, "db.fasta", fasta)
	out, errS, code := run(t, "-l", lin, "-s", seq, "-o", "json", "-q")
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errS)
	}
	if errS != "" {
		t.Fatalf("--quiet must silence info logs, got %q", errS)
	}
	var rep api.ReportV1
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if rep.Schema != api.ReportSchema || !rep.Normalized {
		t.Fatalf("bad header %+v", rep)
	}
	if rep.Summary.TotalRecords != 2 || rep.Summary.UniqueSequences != 2 {
		t.Fatalf("bad summary %+v", rep.Summary)
	}
	if rep.Join.Sequences != 3 || rep.Join.Lineages != 3 || rep.Join.UnmatchedSequences != 1 {
		t.Fatalf("bad join %+v", rep.Join)
	}
	if rep.Summary.Length.Mean == nil || *rep.Summary.Length.Mean != 7 {
		t.Fatalf("bad mean %+v", rep.Summary.Length)
	}
}

func TestTSVRawNamesGzip(t *testing.T) {
	lin, seq := writeGz(t, "db.taxon.gz", taxon), writeGz(t, "db.fasta.gz", fasta)
	out, errS, code := run(t, lin, seq, "--output", "tsv", "--raw-names", "-q")
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errS)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header+2 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "sequence_id\t") {
		t.Fatalf("missing header: %q", lines[0])
	}
	want := "MZ123.1\tACGTAC\tAnimalia\tChordata\tAves\tPasseriformes\tCorvidae\tCorvus\tCorvus corax"
	if lines[1] != want {
		t.Fatalf("row 1:\n got %q\nwant %q", lines[1], want)
	}
}

func TestJSONL(t *testing.T) {
	lin, seq := write(t, "db.taxon", taxon), write(t, "db.fasta", fasta)
	out, errS, code := run(t, lin, seq, "-o", "jsonl", "-q", "--no-header")
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errS)
	}
	sc := bufio.NewScanner(strings.NewReader(out))
	var ids []string
	for sc.Scan() {
		var r api.RecordV1
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("decode %q: %v", sc.Text(), err)
		}
		ids = append(ids, r.SequenceID)
	}
	if len(ids) != 2 || ids[0] != "MZ123.1" || ids[1] != "AB999.2" {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestSQLite(t *testing.T) {
	lin, seq := write(t, "db.taxon", taxon), write(t, "db.fasta", fasta)
	db := filepath.Join(t.TempDir(), "runs.db")
	_, errS, code := run(t, lin, seq, "-o", "json", "--sqlite", db)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errS)
	}
	if !strings.Contains(errS, "run saved") {
		t.Fatalf("expected save log, got %q", errS)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, db)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()
	runs, err := st.Runs(ctx)
	if err != nil || len(runs) != 1 {
		t.Fatalf("runs: %v %v", runs, err)
	}
	recs, err := st.Records(ctx, runs[0].ID)
	if err != nil || len(recs) != 2 || recs[0].Species != "corvus_corax" {
		t.Fatalf("records: %+v %v", recs, err)
	}
}

func TestEmptyJoinExitCode(t *testing.T) {
	lin := write(t, "db.taxon", "X.1\tk__A_1\n")
	seq := write(t, "db.fasta", ">Y.1\nAC\n")
	out, _, code := run(t, lin, seq, "-q")
	if code != 0 {
		t.Fatalf("default empty exit should be 0, got %d", code)
	}
	if !strings.Contains(out, "no records joined") {
		t.Fatalf("expected empty notice:\n%s", out)
	}
	if _, _, code := run(t, lin, seq, "-q", "--empty-exit-code", "4"); code != 4 {
		t.Fatalf("want exit 4, got %d", code)
	}
}

func TestMissingFile(t *testing.T) {
	seq := write(t, "db.fasta", fasta)
	_, errS, code := run(t, filepath.Join(t.TempDir(), "missing.taxon"), seq)
	if code != 2 {
		t.Fatalf("want exit 2, got %d", code)
	}
	if !strings.Contains(errS, "missing.taxon") {
		t.Fatalf("error should name the file: %q", errS)
	}
}

func TestUsageHelpVersion(t *testing.T) {
	if _, errS, code := run(t, "--output", "xml", "a", "b"); code != 2 || !strings.Contains(errS, "invalid --output") {
		t.Fatalf("want usage exit 2, got %d %q", code, errS)
	}
	if out, _, code := run(t, "-h"); code != 0 || !strings.Contains(out, "--lineage") {
		t.Fatalf("help: %d %q", code, out)
	}
	if out, _, code := run(t); code != 0 || !strings.Contains(out, "Usage:") {
		t.Fatalf("no args: %d %q", code, out)
	}
	if out, _, code := run(t, "--version"); code != 0 || !strings.HasPrefix(out, "taxjoin version ") {
		t.Fatalf("version: %d %q", code, out)
	}
	if out, _, code := run(t, "--examples"); code != 0 || !strings.Contains(out, "quickstart") {
		t.Fatalf("examples: %d %q", code, out)
	}
}

func TestCanceledContext(t *testing.T) {
	lin, seq := write(t, "db.taxon", taxon), write(t, "db.fasta", fasta)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errBuf bytes.Buffer
	if code := app.RunContext(ctx, []string{lin, seq, "-q"}, &out, &errBuf); code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
