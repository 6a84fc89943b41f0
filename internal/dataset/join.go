// internal/dataset/join.go
package dataset

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
)

// lowMatchRate triggers a warning about identifier reconciliation.
const lowMatchRate = 0.5

// JoinReport measures how well the two tables reconciled.
type JoinReport struct {
	Sequences            int
	Lineages             int
	JoinedRows           int
	MatchedSequences     int
	UnmatchedSequences   int
	MatchedLineages      int
	UnmatchedLineages    int
	DuplicateSequenceIDs int // ids appearing more than once in the sequence table
	DuplicateLineageIDs  int // ids appearing more than once in the lineage table
	MatchRate            float64
}

// Join is an inner equi-join on SequenceID. Output follows sequence order,
// then lineage order within one id. Duplicate keys on either side fan out.
func Join(seqs []SequenceRecord, lins []LineageRecord) ([]JoinedRecord, JoinReport) {
	rep := JoinReport{Sequences: len(seqs), Lineages: len(lins)}

	byID := make(map[string][]int, len(lins))
	for i, l := range lins {
		byID[l.SequenceID] = append(byID[l.SequenceID], i)
	}
	for _, idx := range byID {
		if len(idx) > 1 {
			rep.DuplicateLineageIDs++
		}
	}

	seqCount := make(map[string]int, len(seqs))
	var out []JoinedRecord
	for _, s := range seqs {
		seqCount[s.SequenceID]++
		idx := byID[s.SequenceID]
		if len(idx) == 0 {
			rep.UnmatchedSequences++
			continue
		}
		rep.MatchedSequences++
		for _, i := range idx {
			out = append(out, JoinedRecord{
				SequenceID:  s.SequenceID,
				DNASequence: s.DNASequence,
				Lineage:     lins[i].Lineage,
			})
		}
	}
	for _, n := range seqCount {
		if n > 1 {
			rep.DuplicateSequenceIDs++
		}
	}
	for id, idx := range byID {
		if seqCount[id] > 0 {
			rep.MatchedLineages += len(idx)
		} else {
			rep.UnmatchedLineages += len(idx)
		}
	}

	rep.JoinedRows = len(out)
	rep.MatchRate = math.NaN()
	if rep.Sequences > 0 {
		rep.MatchRate = float64(rep.MatchedSequences) / float64(rep.Sequences)
	}
	return out, rep
}

// Log writes the report to l, warning on a low match rate or fan-out.
func (r JoinReport) Log(l *log.Logger) {
	if l == nil {
		return
	}
	l.Info("tables joined",
		"sequences", r.Sequences, "lineages", r.Lineages, "rows", r.JoinedRows,
		"matched_sequences", r.MatchedSequences, "match_rate", formatRate(r.MatchRate))
	switch {
	case r.JoinedRows == 0:
		l.Warn("join produced no records; check identifier formats in both files")
	case r.MatchRate < lowMatchRate:
		l.Warn("low identifier match rate", "match_rate", formatRate(r.MatchRate),
			"unmatched_sequences", r.UnmatchedSequences, "unmatched_lineages", r.UnmatchedLineages)
	}
	if r.DuplicateSequenceIDs > 0 || r.DuplicateLineageIDs > 0 {
		l.Warn("duplicate identifiers fan out in the join",
			"duplicate_sequence_ids", r.DuplicateSequenceIDs, "duplicate_lineage_ids", r.DuplicateLineageIDs)
	}
}

func formatRate(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}
