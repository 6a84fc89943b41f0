// pkg/api/records_v1.go
package api

// RecordV1 is the stable JSON/JSONL schema for one joined record.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RecordV1 struct {
	SequenceID  string `json:"sequence_id"`
	DNASequence string `json:"dna_sequence"`
	Length      int    `json:"length"`
	Kingdom     string `json:"kingdom"`
	Phylum      string `json:"phylum"`
	Class       string `json:"class"`
	Order       string `json:"order"`
	Family      string `json:"family"`
	Genus       string `json:"genus"`
	Species     string `json:"species"`
}
