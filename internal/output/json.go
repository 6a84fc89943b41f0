// internal/output/json.go
package output

import (
	"io"
	"math"

	"taxjoin/internal/dataset"
	"taxjoin/internal/jsonutil"
	"taxjoin/internal/lineage"
	"taxjoin/internal/summary"
	"taxjoin/pkg/api"
)

// ToAPIRecord converts a joined record to the stable wire schema (v1).
func ToAPIRecord(r dataset.JoinedRecord) api.RecordV1 {
	return api.RecordV1{
		SequenceID:  r.SequenceID,
		DNASequence: r.DNASequence,
		Length:      r.Length(),
		Kingdom:     r.Kingdom,
		Phylum:      r.Phylum,
		Class:       r.Class,
		Order:       r.Order,
		Family:      r.Family,
		Genus:       r.Genus,
		Species:     r.Species,
	}
}

// finite maps NaN/Inf to nil so it encodes as null.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func toAPILoad(st dataset.LoadStats) api.LoadV1 {
	return api.LoadV1{
		Path: st.Path, Lines: st.Lines, Blank: st.Blank, Malformed: st.Malformed,
		SegmentsSkipped: st.SegmentsSkipped, OrphanLines: st.Orphans,
		Records: st.Records, Bytes: st.Bytes,
	}
}

// ToAPIJoin converts a join report.
func ToAPIJoin(j dataset.JoinReport) api.JoinV1 {
	return api.JoinV1{
		Sequences: j.Sequences, Lineages: j.Lineages, JoinedRows: j.JoinedRows,
		MatchedSequences: j.MatchedSequences, UnmatchedSequences: j.UnmatchedSequences,
		MatchedLineages: j.MatchedLineages, UnmatchedLineages: j.UnmatchedLineages,
		DuplicateSequenceIDs: j.DuplicateSequenceIDs, DuplicateLineageIDs: j.DuplicateLineageIDs,
		MatchRate: finite(j.MatchRate),
	}
}

// ToAPISummary converts summary statistics.
func ToAPISummary(s summary.Summary) api.SummaryV1 {
	out := api.SummaryV1{
		TotalRecords:    s.TotalRecords,
		UniqueSequences: s.UniqueSequences,
		UniqueTaxa:      make(map[string]int, len(lineage.Ranks)),
		Length: api.LengthStatsV1{
			Mean:   finite(s.Length.Mean),
			Median: finite(s.Length.Median),
			Min:    finite(s.Length.Min),
			Max:    finite(s.Length.Max),
			StdDev: finite(s.Length.StdDev),
		},
	}
	for i, r := range lineage.Ranks {
		out.UniqueTaxa[string(r)] = s.UniqueTaxa[i]
	}
	return out
}

func toAPIAggregates(a summary.Aggregates) api.AggregatesV1 {
	out := api.AggregatesV1{
		TopValues: make(map[string][]api.ValueCountV1, len(a.TopValues)),
		KingdomPhylum: api.CrossTabV1{
			RowRank: string(a.KingdomPhylum.RowRank),
			ColRank: string(a.KingdomPhylum.ColRank),
			Rows:    nonNil(a.KingdomPhylum.Rows),
			Cols:    nonNil(a.KingdomPhylum.Cols),
			Counts:  a.KingdomPhylum.Counts,
		},
		Histogram: api.HistogramV1{
			Edges:  nonNil(a.Lengths.Edges),
			Counts: nonNil(a.Lengths.Counts),
		},
		ByKingdom: make([]api.LengthGroupV1, 0, len(a.ByKingdom)),
	}
	if out.KingdomPhylum.Counts == nil {
		out.KingdomPhylum.Counts = [][]int{}
	}
	for _, rc := range a.TopValues {
		vals := make([]api.ValueCountV1, 0, len(rc.Values))
		for _, vc := range rc.Values {
			vals = append(vals, api.ValueCountV1{Value: vc.Value, Count: vc.Count})
		}
		out.TopValues[string(rc.Rank)] = vals
	}
	for _, g := range a.ByKingdom {
		out.ByKingdom = append(out.ByKingdom, api.LengthGroupV1{Value: g.Value, Lengths: g.Lengths})
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ToAPIReport converts a full run.
func ToAPIReport(r Report) api.ReportV1 {
	return api.ReportV1{
		Schema:     api.ReportSchema,
		Normalized: r.Normalized,
		Lineage:    toAPILoad(r.Result.Lineage),
		Sequences:  toAPILoad(r.Result.Sequence),
		Join:       ToAPIJoin(r.Result.Join),
		Summary:    ToAPISummary(r.Summary),
		Aggregates: toAPIAggregates(r.Aggregates),
	}
}

// WriteJSON writes the report as one pretty-indented JSON document.
func WriteJSON(w io.Writer, r Report) error {
	return jsonutil.EncodePretty(w, ToAPIReport(r))
}
