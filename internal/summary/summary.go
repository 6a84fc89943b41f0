// internal/summary/summary.go
package summary

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"taxjoin/internal/dataset"
	"taxjoin/internal/lineage"
)

// LengthStats describes the distribution of sequence lengths. StdDev is the
// sample standard deviation (n-1). Every field is NaN for an empty input;
// StdDev is also NaN for a single record.
type LengthStats struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
	StdDev float64
}

// Summary is a snapshot of counts and length moments over joined records.
type Summary struct {
	TotalRecords    int
	UniqueSequences int
	// UniqueTaxa holds the number of distinct values per rank, indexed like
	// lineage.Ranks. The empty name counts as a value.
	UniqueTaxa [len(lineage.Ranks)]int
	Length     LengthStats
}

// Unique returns the distinct value count for r.
func (s Summary) Unique(r lineage.Rank) int {
	for i, rr := range lineage.Ranks {
		if rr == r {
			return s.UniqueTaxa[i]
		}
	}
	return 0
}

// Compute never fails; an empty input yields zero counts and NaN lengths.
func Compute(records []dataset.JoinedRecord) Summary {
	s := Summary{TotalRecords: len(records)}

	ids := make(map[string]struct{}, len(records))
	var taxa [len(lineage.Ranks)]map[string]struct{}
	for i := range taxa {
		taxa[i] = make(map[string]struct{})
	}
	lengths := make([]float64, 0, len(records))
	for _, r := range records {
		ids[r.SequenceID] = struct{}{}
		for i, v := range r.Values() {
			taxa[i][v] = struct{}{}
		}
		lengths = append(lengths, float64(r.Length()))
	}
	s.UniqueSequences = len(ids)
	for i := range taxa {
		s.UniqueTaxa[i] = len(taxa[i])
	}
	s.Length = ComputeLengthStats(lengths)
	return s
}

// ComputeLengthStats summarizes xs. xs is sorted in place.
func ComputeLengthStats(xs []float64) LengthStats {
	nan := math.NaN()
	if len(xs) == 0 {
		return LengthStats{Mean: nan, Median: nan, Min: nan, Max: nan, StdDev: nan}
	}
	slices.Sort(xs)
	return LengthStats{
		Mean:   stat.Mean(xs, nil),
		Median: median(xs),
		Min:    xs[0],
		Max:    xs[len(xs)-1],
		StdDev: stdDev(xs),
	}
}

// median of sorted xs; the two middle values are averaged for even n.
func median(xs []float64) float64 {
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}
	return (xs[n/2-1] + xs[n/2]) / 2
}

func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.StdDev(xs, nil)
}
