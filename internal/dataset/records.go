// internal/dataset/records.go
package dataset

import (
	"unicode/utf8"

	"taxjoin/internal/lineage"
)

// SequenceRecord is one sequence block of the sequence file.
type SequenceRecord struct {
	SequenceID  string
	DNASequence string
}

// LineageRecord is one well-formed line of the lineage file.
type LineageRecord struct {
	SequenceID string
	lineage.Lineage
}

// JoinedRecord pairs a sequence with one lineage row sharing its id.
type JoinedRecord struct {
	SequenceID  string
	DNASequence string
	lineage.Lineage
}

// Length is the number of characters in the joined sequence.
func (r JoinedRecord) Length() int { return utf8.RuneCountInString(r.DNASequence) }
