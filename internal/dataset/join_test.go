package dataset

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"taxjoin/internal/lineage"
)

func lin(id, kingdom string) LineageRecord {
	return LineageRecord{SequenceID: id, Lineage: lineage.Lineage{Kingdom: kingdom}}
}

func TestJoinFanOut(t *testing.T) {
	seqs := []SequenceRecord{{SequenceID: "X1", DNASequence: "ACGT"}}
	lins := []LineageRecord{lin("X1", "a"), lin("X1", "b")}

	out, rep := Join(seqs, lins)
	if len(out) != 2 {
		t.Fatalf("want 2 joined records, got %d", len(out))
	}
	if out[0].Kingdom != "a" || out[1].Kingdom != "b" || out[1].DNASequence != "ACGT" {
		t.Fatalf("unexpected rows: %+v", out)
	}
	if rep.DuplicateLineageIDs != 1 || rep.JoinedRows != 2 || rep.MatchRate != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestJoinCrossMultiplicative(t *testing.T) {
	seqs := []SequenceRecord{{SequenceID: "K", DNASequence: "A"}, {SequenceID: "K", DNASequence: "CC"}}
	lins := []LineageRecord{lin("K", "x"), lin("K", "y"), lin("K", "z")}
	out, rep := Join(seqs, lins)
	if len(out) != 6 {
		t.Fatalf("want 2x3=6 rows, got %d", len(out))
	}
	if out[0].DNASequence != "A" || out[3].DNASequence != "CC" || out[3].Kingdom != "x" {
		t.Fatalf("unexpected order: %+v", out)
	}
	if rep.DuplicateSequenceIDs != 1 || rep.MatchedLineages != 3 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestJoinDropsUnmatched(t *testing.T) {
	seqs := []SequenceRecord{{SequenceID: "A"}, {SequenceID: "B"}, {SequenceID: "C"}, {SequenceID: "D"}}
	lins := []LineageRecord{lin("B", "b"), lin("Z", "z")}
	out, rep := Join(seqs, lins)
	if len(out) != 1 || out[0].SequenceID != "B" {
		t.Fatalf("unexpected rows: %+v", out)
	}
	if rep.UnmatchedSequences != 3 || rep.UnmatchedLineages != 1 || rep.MatchedLineages != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if rep.MatchRate != 0.25 {
		t.Fatalf("match rate = %v", rep.MatchRate)
	}
}

func TestJoinEmpty(t *testing.T) {
	out, rep := Join(nil, []LineageRecord{lin("A", "a")})
	if len(out) != 0 || !math.IsNaN(rep.MatchRate) {
		t.Fatalf("unexpected: %+v %+v", out, rep)
	}
}

func TestJoinReportLogWarnings(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf)
	_, rep := Join([]SequenceRecord{{SequenceID: "A"}, {SequenceID: "B"}, {SequenceID: "C"}},
		[]LineageRecord{lin("A", "x"), lin("A", "y")})
	rep.Log(l)
	out := buf.String()
	if !strings.Contains(out, "low identifier match rate") {
		t.Fatalf("expected low match rate warning, got:\n%s", out)
	}
	if !strings.Contains(out, "duplicate identifiers") {
		t.Fatalf("expected duplicate warning, got:\n%s", out)
	}
}

func TestAssemble(t *testing.T) {
	taxon := write(t, "x.taxon",
		"MG559732.1.<1.>690\tk__Animalia_1;p__Chordata_2;s__Homo sapiens_9\n"+
			"MG000001.1.<1.>5\tk__Fungi_3\n")
	fasta := write(t, "x.fasta",
		">MG559732.1.<1.>690\nACGT\nAC\n>NOPE.1\nGG\n")

	res, err := Assemble(taxon, fasta, Options{Normalize: true})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("want 1 record, got %+v", res.Records)
	}
	r := res.Records[0]
	if r.SequenceID != "MG559732.1" || r.DNASequence != "ACGTAC" || r.Species != "homo_sapiens" || r.Length() != 6 {
		t.Fatalf("unexpected record: %+v", r)
	}
	if res.Lineage.Records != 2 || res.Sequence.Records != 2 || res.Join.MatchRate != 0.5 {
		t.Fatalf("unexpected stats: %+v", res)
	}
}

func TestAssembleDisjoint(t *testing.T) {
	taxon := write(t, "x.taxon", "A.1\tk__X_1\n")
	fasta := write(t, "x.fasta", ">B.1\nAC\n")
	res, err := Assemble(taxon, fasta, Options{Normalize: true})
	if err != nil {
		t.Fatalf("empty join must not fail: %v", err)
	}
	if len(res.Records) != 0 {
		t.Fatalf("want empty result, got %+v", res.Records)
	}
}

func TestAssembleMissing(t *testing.T) {
	fasta := write(t, "x.fasta", ">B.1\nAC\n")
	_, err := Assemble(fasta+".missing", fasta, Options{})
	if err == nil {
		t.Fatalf("expected missing lineage file error")
	}
}
