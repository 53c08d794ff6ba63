// Package store persists site build history in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"proofsite/internal/logging"
	"proofsite/internal/proof"
)

// HistoryStore records one row per site build plus a theorem snapshot table.
type HistoryStore struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// BuildRecord is one completed site build.
type BuildRecord struct {
	BuildID    string
	BuiltAt    time.Time
	Theorems   int
	Verified   int
	Pages      int
	DurationMS int64
}

// TheoremSnapshot captures a theorem's state at build time.
type TheoremSnapshot struct {
	BuildID string
	ID      string
	Name    string
	Status  string
	Steps   int
}

// Open initializes the SQLite database at the given path.
func Open(path string) (*HistoryStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &HistoryStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("history store opened: %s", path)
	return s, nil
}

// initialize creates the required tables.
func (s *HistoryStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		build_id TEXT PRIMARY KEY,
		built_at DATETIME NOT NULL,
		theorems INTEGER NOT NULL,
		verified INTEGER NOT NULL,
		pages INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS theorem_snapshots (
		build_id TEXT NOT NULL,
		theorem_id TEXT NOT NULL,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		steps INTEGER NOT NULL,
		PRIMARY KEY (build_id, theorem_id),
		FOREIGN KEY (build_id) REFERENCES builds(build_id)
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_theorem ON theorem_snapshots(theorem_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// RecordBuild stores a build row and a snapshot of every theorem in it.
func (s *HistoryStore) RecordBuild(rec BuildRecord, theorems []*proof.Theorem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO builds (build_id, built_at, theorems, verified, pages, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.BuildID, rec.BuiltAt.UTC(), rec.Theorems, rec.Verified, rec.Pages, rec.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("failed to insert build %s: %w", rec.BuildID, err)
	}

	for _, t := range theorems {
		_, err = tx.Exec(
			`INSERT INTO theorem_snapshots (build_id, theorem_id, name, status, steps)
			 VALUES (?, ?, ?, ?, ?)`,
			rec.BuildID, t.ID, t.Name, string(t.Status), t.StepCount(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot for %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit build %s: %w", rec.BuildID, err)
	}

	logging.Store("recorded build %s (%d theorems)", rec.BuildID, rec.Theorems)
	return nil
}

// RecentBuilds returns the newest builds first, at most limit rows.
func (s *HistoryStore) RecentBuilds(limit int) ([]BuildRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT build_id, built_at, theorems, verified, pages, duration_ms
		 FROM builds ORDER BY built_at DESC, build_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query builds: %w", err)
	}
	defer rows.Close()

	var out []BuildRecord
	for rows.Next() {
		var rec BuildRecord
		if err := rows.Scan(&rec.BuildID, &rec.BuiltAt, &rec.Theorems, &rec.Verified, &rec.Pages, &rec.DurationMS); err != nil {
			return nil, fmt.Errorf("failed to scan build row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Snapshots returns the theorem snapshots of one build, ordered by id.
func (s *HistoryStore) Snapshots(buildID string) ([]TheoremSnapshot, error) {
	rows, err := s.db.Query(
		`SELECT build_id, theorem_id, name, status, steps
		 FROM theorem_snapshots WHERE build_id = ? ORDER BY theorem_id`, buildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var out []TheoremSnapshot
	for rows.Next() {
		var snap TheoremSnapshot
		if err := rows.Scan(&snap.BuildID, &snap.ID, &snap.Name, &snap.Status, &snap.Steps); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// StatusHistory returns the recorded statuses of one theorem, newest first.
func (s *HistoryStore) StatusHistory(theoremID string, limit int) ([]TheoremSnapshot, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT ts.build_id, ts.theorem_id, ts.name, ts.status, ts.steps
		 FROM theorem_snapshots ts
		 JOIN builds b ON b.build_id = ts.build_id
		 WHERE ts.theorem_id = ?
		 ORDER BY b.built_at DESC LIMIT ?`, theoremID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	var out []TheoremSnapshot
	for rows.Next() {
		var snap TheoremSnapshot
		if err := rows.Scan(&snap.BuildID, &snap.ID, &snap.Name, &snap.Status, &snap.Steps); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
