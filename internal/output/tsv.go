// internal/output/tsv.go
package output

import (
	"bufio"
	"io"
	"strings"

	"taxjoin/internal/dataset"
)

// FormatRowTSV returns one joined record as a TSV row (no trailing newline).
func FormatRowTSV(r dataset.JoinedRecord) string {
	v := r.Values()
	cols := make([]string, 0, 2+len(v))
	cols = append(cols, r.SequenceID, r.DNASequence)
	cols = append(cols, v[:]...)
	return strings.Join(cols, "\t")
}

// WriteTSV writes the header (optional) and one row per record in join order.
func WriteTSV(w io.Writer, list []dataset.JoinedRecord, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := bw.WriteString(TSVHeader + "\n"); err != nil {
			return err
		}
	}
	for _, r := range list {
		if _, err := bw.WriteString(FormatRowTSV(r) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
