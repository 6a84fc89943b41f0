// pkg/api/report_v1.go
package api

// ReportSchema identifies the ReportV1 layout.
const ReportSchema = "taxjoin.report/v1"

// ReportV1 is the stable schema of the json output. Undefined statistics
// (NaN) are encoded as null.
type ReportV1 struct {
	Schema     string       `json:"schema"`
	Normalized bool         `json:"normalized"`
	Lineage    LoadV1       `json:"lineage"`
	Sequences  LoadV1       `json:"sequences"`
	Join       JoinV1       `json:"join"`
	Summary    SummaryV1    `json:"summary"`
	Aggregates AggregatesV1 `json:"aggregates"`
}

// LoadV1 describes one pass over a source file.
type LoadV1 struct {
	Path            string `json:"path"`
	Lines           int    `json:"lines"`
	Blank           int    `json:"blank"`
	Malformed       int    `json:"malformed"`
	SegmentsSkipped int    `json:"segments_skipped"`
	OrphanLines     int    `json:"orphan_lines"`
	Records         int    `json:"records"`
	Bytes           int64  `json:"bytes"`
}

// JoinV1 reports how well the two tables reconciled.
type JoinV1 struct {
	Sequences            int      `json:"sequences"`
	Lineages             int      `json:"lineages"`
	JoinedRows           int      `json:"joined_rows"`
	MatchedSequences     int      `json:"matched_sequences"`
	UnmatchedSequences   int      `json:"unmatched_sequences"`
	MatchedLineages      int      `json:"matched_lineages"`
	UnmatchedLineages    int      `json:"unmatched_lineages"`
	DuplicateSequenceIDs int      `json:"duplicate_sequence_ids"`
	DuplicateLineageIDs  int      `json:"duplicate_lineage_ids"`
	MatchRate            *float64 `json:"match_rate"`
}

// SummaryV1 mirrors summary.Summary.
type SummaryV1 struct {
	TotalRecords    int            `json:"total_records"`
	UniqueSequences int            `json:"unique_sequences"`
	UniqueTaxa      map[string]int `json:"unique_taxa"`
	Length          LengthStatsV1  `json:"length"`
}

// LengthStatsV1 uses sample standard deviation.
type LengthStatsV1 struct {
	Mean   *float64 `json:"mean"`
	Median *float64 `json:"median"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	StdDev *float64 `json:"std"`
}

// AggregatesV1 carries the chart-ready views.
type AggregatesV1 struct {
	TopValues     map[string][]ValueCountV1 `json:"top_values"`
	KingdomPhylum CrossTabV1                `json:"kingdom_phylum"`
	Histogram     HistogramV1               `json:"length_histogram"`
	ByKingdom     []LengthGroupV1           `json:"lengths_by_kingdom"`
}

type ValueCountV1 struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type CrossTabV1 struct {
	RowRank string   `json:"row_rank"`
	ColRank string   `json:"col_rank"`
	Rows    []string `json:"rows"`
	Cols    []string `json:"cols"`
	Counts  [][]int  `json:"counts"`
}

type HistogramV1 struct {
	Edges  []float64 `json:"edges"`
	Counts []float64 `json:"counts"`
}

type LengthGroupV1 struct {
	Value   string `json:"value"`
	Lengths []int  `json:"lengths"`
}
