package output

import (
	"taxjoin/internal/dataset"
	"taxjoin/internal/summary"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTSV   = "tsv"
	FormatJSONL = "jsonl"
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatJSON, FormatTSV, FormatJSONL}

// TSVHeader is the canonical header row for TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "sequence_id\tdna_sequence\tkingdom\tphylum\tclass\torder\tfamily\tgenus\tspecies"

// Report is everything one run produced, handed to a writer.
type Report struct {
	Normalized bool
	Result     dataset.Result
	Summary    summary.Summary
	Aggregates summary.Aggregates
}
