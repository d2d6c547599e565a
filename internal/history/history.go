// Package history persists analysis runs to a local SQLite database so
// score trends for a page can be compared across re-runs.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;

CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL,
    source TEXT NOT NULL,
    query TEXT,
    word_count INTEGER NOT NULL,
    overall REAL NOT NULL,
    extractability REAL NOT NULL,
    readability REAL NOT NULL,
    citability REAL NOT NULL,
    report_path TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
`

// Run is one recorded analysis.
type Run struct {
	ID             int64
	CreatedAt      time.Time
	Source         string
	Query          string
	WordCount      int
	Overall        float64
	Extractability float64
	Readability    float64
	Citability     float64
	ReportPath     string
}

// Store wraps the runs database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Insert records a run and returns its id.
func (s *Store) Insert(r Run) (int64, error) {
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	res, err := s.db.Exec(`
		INSERT INTO runs (created_at, source, query, word_count, overall, extractability, readability, citability, report_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, created.UTC().Format(time.RFC3339), r.Source, r.Query, r.WordCount,
		r.Overall, r.Extractability, r.Readability, r.Citability, r.ReportPath)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT run_id, created_at, source, query, word_count, overall, extractability, readability, citability, report_path
		FROM runs ORDER BY run_id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// BySource returns every run recorded for one source, newest first.
func (s *Store) BySource(source string) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT run_id, created_at, source, query, word_count, overall, extractability, readability, citability, report_path
		FROM runs WHERE source = ? ORDER BY run_id DESC
	`, source)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var out []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Source, &r.Query, &r.WordCount,
			&r.Overall, &r.Extractability, &r.Readability, &r.Citability, &r.ReportPath); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		t, err := time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		r.CreatedAt = t
		out = append(out, r)
	}
	return out, rows.Err()
}
