// internal/dataset/load.go
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"taxjoin/internal/ident"
	"taxjoin/internal/lineage"
	"taxjoin/internal/seqio"
)

// maxLine allows very long single-line sequences (64 MiB).
const maxLine = 64 * 1024 * 1024

// Options is threaded through every loading entry point. Normalize must be
// chosen once for the whole dataset.
type Options struct {
	Normalize bool
	// Progress, when non-nil, receives byte progress bars while reading.
	Progress io.Writer
	// Logger receives per-file statistics. Nil disables logging.
	Logger *log.Logger
}

// LoadStats describes one pass over a source file.
type LoadStats struct {
	Path            string
	Lines           int
	Blank           int
	Malformed       int // lineage lines with fewer than two tab fields
	SegmentsSkipped int // lineage segments that did not match the rank pattern
	Orphans         int // sequence lines seen before any header
	Records         int
	Bytes           int64
}

func open(path, label string, opt Options) (*seqio.Reader, error) {
	r, err := seqio.Open(path, seqio.Options{Progress: opt.Progress, Label: label})
	if errors.Is(err, seqio.ErrBadGzip) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err != nil {
		return nil, &MissingFileError{Path: path, Err: err}
	}
	return r, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return sc
}

// LoadLineageTable reads "<raw-id>\t<lineage>" lines in file order.
// Duplicate ids are kept.
func LoadLineageTable(path string, opt Options) ([]LineageRecord, LoadStats, error) {
	st := LoadStats{Path: path}
	r, err := open(path, "lineage", opt)
	if err != nil {
		return nil, st, err
	}
	defer r.Close()

	recs, err := ReadLineage(r, opt.Normalize, &st)
	st.Bytes = r.BytesRead()
	if err != nil {
		return nil, st, fmt.Errorf("%s: %w", path, err)
	}
	logStats(opt.Logger, "lineage table loaded", st)
	return recs, st, nil
}

// ReadLineage parses lineage lines from r. st may be nil.
func ReadLineage(r io.Reader, normalize bool, st *LoadStats) ([]LineageRecord, error) {
	if st == nil {
		st = &LoadStats{}
	}
	var out []LineageRecord
	sc := newScanner(r)
	for sc.Scan() {
		st.Lines++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			st.Blank++
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) < 2 {
			st.Malformed++
			continue
		}
		lin, skipped := lineage.Parse(f[1], normalize)
		st.SegmentsSkipped += skipped
		out = append(out, LineageRecord{
			SequenceID: ident.ExtractBaseID(f[0]),
			Lineage:    lin,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	st.Records = len(out)
	return out, nil
}

// LoadSequenceTable reads header/sequence blocks in file order.
func LoadSequenceTable(path string, opt Options) ([]SequenceRecord, LoadStats, error) {
	st := LoadStats{Path: path}
	r, err := open(path, "sequences", opt)
	if err != nil {
		return nil, st, err
	}
	defer r.Close()

	recs, err := ReadSequences(r, &st)
	st.Bytes = r.BytesRead()
	if err != nil {
		return nil, st, fmt.Errorf("%s: %w", path, err)
	}
	logStats(opt.Logger, "sequence table loaded", st)
	return recs, st, nil
}

// ReadSequences parses sequence blocks from r. A record is emitted when the
// next header or the end of input is reached; lines before the first header
// are ignored. st may be nil.
func ReadSequences(r io.Reader, st *LoadStats) ([]SequenceRecord, error) {
	if st == nil {
		st = &LoadStats{}
	}
	var (
		out     []SequenceRecord
		id      string
		inBlock bool
		seq     strings.Builder
	)
	flush := func() {
		if !inBlock {
			return
		}
		out = append(out, SequenceRecord{SequenceID: id, DNASequence: seq.String()})
		seq.Reset()
	}

	sc := newScanner(r)
	for sc.Scan() {
		st.Lines++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			st.Blank++
			continue
		}
		if line[0] == ident.HeaderMarker {
			flush()
			id = ident.ExtractBaseID(line[1:])
			inBlock = true
			continue
		}
		if !inBlock {
			st.Orphans++
			continue
		}
		seq.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	flush()
	st.Records = len(out)
	return out, nil
}

func logStats(l *log.Logger, msg string, st LoadStats) {
	if l == nil {
		return
	}
	kv := []any{"path", st.Path, "lines", st.Lines, "records", st.Records, "bytes", humanBytes(st.Bytes)}
	if st.Blank > 0 {
		kv = append(kv, "blank", st.Blank)
	}
	if st.Malformed > 0 {
		kv = append(kv, "malformed", st.Malformed)
	}
	if st.SegmentsSkipped > 0 {
		kv = append(kv, "segments_skipped", st.SegmentsSkipped)
	}
	if st.Orphans > 0 {
		kv = append(kv, "orphan_lines", st.Orphans)
	}
	l.Info(msg, kv...)
}

func humanBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
