// Package storage keeps a journal of finished runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal lives in memory: it is shared by everything in one process
// and gone when the process exits.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Journal records finished runs.
type Journal struct {
	db *sql.DB
}

// RunRecord is a single finished run.
type RunRecord struct {
	ID        int64
	Source    string // "play", "ssh:<user>", "sim:<pilot>"
	Seed      int64
	Score     int
	Frames    int
	Hits      int
	Bounces   int
	CreatedAt time.Time
}

// Summary aggregates the runs of one source.
type Summary struct {
	Source     string
	Runs       int
	Best       int
	MeanScore  float64
	MeanFrames float64
	Hits       int
	Bounces    int
}

// OpenJournal creates an empty in-memory journal.
func OpenJournal() (*Journal, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is a separate database; keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return j, nil
}

// migrate creates the database schema.
func (j *Journal) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			bounces INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(source, score DESC);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Close closes the database connection. The journal's contents are lost.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// RecordRun stores a finished run and returns its ID.
func (j *Journal) RecordRun(r RunRecord) (int64, error) {
	result, err := j.db.Exec(
		`INSERT INTO runs (source, seed, score, frames, hits, bounces)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Source, r.Seed, r.Score, r.Frames, r.Hits, r.Bounces,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Best returns the highest score for source, or across all sources when
// source is empty. Returns 0 if nothing was recorded.
func (j *Journal) Best(source string) (int, error) {
	var score sql.NullInt64
	var err error
	if source == "" {
		err = j.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score)
	} else {
		err = j.db.QueryRow("SELECT MAX(score) FROM runs WHERE source = ?", source).Scan(&score)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Summaries aggregates every source that has runs, sorted by source.
func (j *Journal) Summaries() ([]Summary, error) {
	rows, err := j.db.Query(
		`SELECT source, COUNT(*), MAX(score), AVG(score), AVG(frames), SUM(hits), SUM(bounces)
		 FROM runs
		 GROUP BY source
		 ORDER BY source`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot summarize runs: %w", err)
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Source, &s.Runs, &s.Best, &s.MeanScore, &s.MeanFrames, &s.Hits, &s.Bounces); err != nil {
			return nil, fmt.Errorf("storage: cannot scan summary row: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return result, nil
}

// Recent returns the latest runs, newest first.
func (j *Journal) Recent(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := j.db.Query(
		`SELECT id, source, seed, score, frames, hits, bounces, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Source, &r.Seed, &r.Score, &r.Frames, &r.Hits, &r.Bounces, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
