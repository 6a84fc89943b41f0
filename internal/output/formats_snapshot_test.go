package output

import "testing"

func TestFormats_Stable(t *testing.T) {
	if FormatText != "text" || FormatJSON != "json" || FormatTSV != "tsv" || FormatJSONL != "jsonl" {
		t.Fatalf("output format constants changed")
	}
}

func TestTSVHeader_Stable(t *testing.T) {
	const want = "sequence_id\tdna_sequence\tkingdom\tphylum\tclass\torder\tfamily\tgenus\tspecies"
	if TSVHeader != want {
		t.Fatalf("TSVHeader changed:\n got %q\nwant %q", TSVHeader, want)
	}
}
