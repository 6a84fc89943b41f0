// internal/summary/aggregate.go
package summary

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"taxjoin/internal/dataset"
	"taxjoin/internal/lineage"
)

// Defaults used by BuildAggregates for the fixed-size views.
const (
	CrossTabColumns = 10
	LengthGroups    = 10
)

// ValueCount is how many records carry Value at some rank.
type ValueCount struct {
	Value string
	Count int
}

// CrossTab is a contingency table of two ranks. Counts[i][j] is the number of
// records with row value Rows[i] and column value Cols[j].
type CrossTab struct {
	RowRank lineage.Rank
	ColRank lineage.Rank
	Rows    []string
	Cols    []string
	Counts  [][]int
}

// Histogram has len(Edges) == len(Counts)+1. Bin i covers [Edges[i], Edges[i+1]).
type Histogram struct {
	Edges  []float64
	Counts []float64
}

// LengthGroup holds the sequence lengths of records sharing one rank value.
type LengthGroup struct {
	Value   string
	Lengths []int
}

// RankCounts pairs a rank with its most frequent values.
type RankCounts struct {
	Rank   lineage.Rank
	Values []ValueCount
}

// Aggregates bundles the chart-ready views of a joined dataset.
type Aggregates struct {
	TopValues     []RankCounts
	KingdomPhylum CrossTab
	Lengths       Histogram
	ByKingdom     []LengthGroup
}

// BuildAggregates computes every view; topN <= 0 keeps all values.
func BuildAggregates(records []dataset.JoinedRecord, topN, bins int) Aggregates {
	agg := Aggregates{
		KingdomPhylum: BuildCrossTab(records, lineage.Kingdom, lineage.Phylum, CrossTabColumns),
		Lengths:       LengthHistogram(records, bins),
		ByKingdom:     LengthsByRank(records, lineage.Kingdom, LengthGroups),
	}
	for _, r := range lineage.Ranks {
		agg.TopValues = append(agg.TopValues, RankCounts{Rank: r, Values: ValueCounts(records, r, topN)})
	}
	return agg
}

// ValueCounts counts values of rank r, most frequent first, ties by value.
// The empty name is counted like any other value.
func ValueCounts(records []dataset.JoinedRecord, r lineage.Rank, topN int) []ValueCount {
	counts := map[string]int{}
	for _, rec := range records {
		counts[rec.Get(r)]++
	}
	return topCounts(counts, topN)
}

func topCounts(counts map[string]int, topN int) []ValueCount {
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b ValueCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// BuildCrossTab counts records with both ranks set. Columns are the topCols
// most frequent column values; rows are sorted by name.
func BuildCrossTab(records []dataset.JoinedRecord, row, col lineage.Rank, topCols int) CrossTab {
	ct := CrossTab{RowRank: row, ColRank: col}
	colCounts := map[string]int{}
	rowSet := map[string]struct{}{}
	var kept []dataset.JoinedRecord
	for _, rec := range records {
		rv, cv := rec.Get(row), rec.Get(col)
		if rv == "" || cv == "" {
			continue
		}
		kept = append(kept, rec)
		colCounts[cv]++
		rowSet[rv] = struct{}{}
	}
	for _, vc := range topCounts(colCounts, topCols) {
		ct.Cols = append(ct.Cols, vc.Value)
	}
	for rv := range rowSet {
		ct.Rows = append(ct.Rows, rv)
	}
	slices.Sort(ct.Rows)

	rowIdx := index(ct.Rows)
	colIdx := index(ct.Cols)
	ct.Counts = make([][]int, len(ct.Rows))
	for i := range ct.Counts {
		ct.Counts[i] = make([]int, len(ct.Cols))
	}
	for _, rec := range kept {
		j, ok := colIdx[rec.Get(col)]
		if !ok {
			continue
		}
		ct.Counts[rowIdx[rec.Get(row)]][j]++
	}
	return ct
}

func index(vals []string) map[string]int {
	m := make(map[string]int, len(vals))
	for i, v := range vals {
		m[v] = i
	}
	return m
}

// LengthHistogram bins sequence lengths into equal-width bins spanning
// [min, max+1). Returns an empty Histogram for no records or bins < 1.
func LengthHistogram(records []dataset.JoinedRecord, bins int) Histogram {
	if len(records) == 0 || bins < 1 {
		return Histogram{}
	}
	xs := make([]float64, len(records))
	for i, r := range records {
		xs[i] = float64(r.Length())
	}
	slices.Sort(xs)
	lo, hi := xs[0], xs[len(xs)-1]+1
	edges := floats.Span(make([]float64, bins+1), lo, hi)
	edges[bins] = hi
	return Histogram{Edges: edges, Counts: stat.Histogram(nil, edges, xs, nil)}
}

// LengthsByRank groups lengths by the topN most frequent non-empty values of r.
func LengthsByRank(records []dataset.JoinedRecord, r lineage.Rank, topN int) []LengthGroup {
	counts := map[string]int{}
	for _, rec := range records {
		if v := rec.Get(r); v != "" {
			counts[v]++
		}
	}
	top := topCounts(counts, topN)
	groups := make([]LengthGroup, len(top))
	pos := make(map[string]int, len(top))
	for i, vc := range top {
		groups[i] = LengthGroup{Value: vc.Value, Lengths: make([]int, 0, vc.Count)}
		pos[vc.Value] = i
	}
	for _, rec := range records {
		if i, ok := pos[rec.Get(r)]; ok {
			groups[i].Lengths = append(groups[i].Lengths, rec.Length())
		}
	}
	return groups
}
