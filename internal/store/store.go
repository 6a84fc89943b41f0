// internal/store/store.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"taxjoin/internal/dataset"
	"taxjoin/internal/lineage"
	"taxjoin/internal/output"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	created_at      TEXT NOT NULL,
	lineage_path    TEXT NOT NULL,
	sequence_path   TEXT NOT NULL,
	normalized      INTEGER NOT NULL,
	sequences       INTEGER NOT NULL,
	lineages        INTEGER NOT NULL,
	joined_rows     INTEGER NOT NULL,
	match_rate      REAL
);
CREATE TABLE IF NOT EXISTS records (
	run_id       TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	sequence_id  TEXT NOT NULL,
	dna_sequence TEXT NOT NULL,
	length       INTEGER NOT NULL,
	kingdom      TEXT NOT NULL,
	phylum       TEXT NOT NULL,
	class        TEXT NOT NULL,
	"order"      TEXT NOT NULL,
	family       TEXT NOT NULL,
	genus        TEXT NOT NULL,
	species      TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
CREATE INDEX IF NOT EXISTS records_sequence_id ON records(sequence_id);
CREATE TABLE IF NOT EXISTS summaries (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	metric TEXT NOT NULL,
	value  REAL,
	PRIMARY KEY (run_id, metric)
);
`

// Store writes runs into a SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores one run in a single transaction and returns its id.
func (s *Store) SaveRun(ctx context.Context, rep output.Report) (string, error) {
	id := uuid.NewString()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	j := rep.Result.Join
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, lineage_path, sequence_path, normalized, sequences, lineages, joined_rows, match_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, s.now().UTC().Format(time.RFC3339), rep.Result.Lineage.Path, rep.Result.Sequence.Path,
		rep.Normalized, j.Sequences, j.Lineages, j.JoinedRows, nullable(j.MatchRate),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	if err := insertRecords(ctx, tx, id, rep.Result.Records); err != nil {
		return "", err
	}
	if err := insertSummary(ctx, tx, id, rep); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func insertRecords(ctx context.Context, tx *sql.Tx, runID string, recs []dataset.JoinedRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (run_id, position, sequence_id, dna_sequence, length, kingdom, phylum, class, "order", family, genus, species)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare records: %w", err)
	}
	defer stmt.Close()
	for i, r := range recs {
		if _, err := stmt.ExecContext(ctx, runID, i, r.SequenceID, r.DNASequence, r.Length(),
			r.Kingdom, r.Phylum, r.Class, r.Order, r.Family, r.Genus, r.Species); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	return nil
}

func insertSummary(ctx context.Context, tx *sql.Tx, runID string, rep output.Report) error {
	s := rep.Summary
	metrics := []struct {
		name  string
		value float64
	}{
		{"total_records", float64(s.TotalRecords)},
		{"unique_sequences", float64(s.UniqueSequences)},
		{"length_mean", s.Length.Mean},
		{"length_median", s.Length.Median},
		{"length_min", s.Length.Min},
		{"length_max", s.Length.Max},
		{"length_std", s.Length.StdDev},
	}
	for i, r := range lineage.Ranks {
		metrics = append(metrics, struct {
			name  string
			value float64
		}{"unique_" + string(r), float64(s.UniqueTaxa[i])})
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO summaries (run_id, metric, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare summaries: %w", err)
	}
	defer stmt.Close()
	for _, m := range metrics {
		if _, err := stmt.ExecContext(ctx, runID, m.name, nullable(m.value)); err != nil {
			return fmt.Errorf("insert summary %s: %w", m.name, err)
		}
	}
	return nil
}

// nullable stores NaN as NULL.
func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

// Run is a stored run header.
type Run struct {
	ID         string
	CreatedAt  time.Time
	Normalized bool
	JoinedRows int
	MatchRate  sql.NullFloat64
}

// Runs lists stored runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, normalized, joined_rows, match_rate
		FROM runs
		ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			created string
		)
		if err := rows.Scan(&r.ID, &created, &r.Normalized, &r.JoinedRows, &r.MatchRate); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Records returns the joined records of one run in join order.
func (s *Store) Records(ctx context.Context, runID string) ([]dataset.JoinedRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sequence_id, dna_sequence, kingdom, phylum, class, "order", family, genus, species
		FROM records
		WHERE run_id = ?
		ORDER BY position ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []dataset.JoinedRecord
	for rows.Next() {
		var r dataset.JoinedRecord
		if err := rows.Scan(&r.SequenceID, &r.DNASequence, &r.Kingdom, &r.Phylum, &r.Class,
			&r.Order, &r.Family, &r.Genus, &r.Species); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Metric returns one stored summary value; NULL (undefined) yields Valid=false.
func (s *Store) Metric(ctx context.Context, runID, metric string) (sql.NullFloat64, error) {
	var v sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM summaries WHERE run_id = ? AND metric = ?`, runID, metric).Scan(&v)
	if err != nil {
		return v, fmt.Errorf("query metric %s: %w", metric, err)
	}
	return v, nil
}
