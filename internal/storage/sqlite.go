// Package storage provides the SQLite-backed run ledger.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// The ledger lives in memory for the lifetime of the process.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite connection holding finished runs.
// It is safe for concurrent use by multiple sessions.
type Store struct {
	db *sql.DB
}

// RunRecord is a single finished run.
type RunRecord struct {
	ID            int64
	RunID         string // UUID, assigned by SaveRun when empty
	Player        string
	FloorReached  int
	FloorsCleared int
	Score         int
	EndReason     string // "captured", "timeout", "quit"
	Timeouts      int
	Duration      time.Duration // Stored with second precision
	CreatedAt     time.Time
}

// RunStats contains aggregated statistics over the ledger.
type RunStats struct {
	Runs         int
	BestScore    int
	AvgScore     float64
	DeepestFloor int
	Captures     int
	TimedOut     int
	LastPlayed   time.Time
}

// OpenMemory creates a private in-memory ledger.
// Each call gets its own database; connections of one Store share it.
func OpenMemory() (*Store, error) {
	return Open(fmt.Sprintf("file:heist-%s?mode=memory&cache=shared", uuid.NewString()))
}

// Open opens a ledger at the given SQLite DSN and runs migrations.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// A single connection keeps the in-memory database alive and serializes writers
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			floor_reached INTEGER NOT NULL,
			floors_cleared INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			end_reason TEXT NOT NULL,
			timeouts INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection. The in-memory ledger is discarded.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its run ID.
func (s *Store) SaveRun(rec RunRecord) (string, error) {
	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}
	if rec.Player == "" {
		rec.Player = "anonymous"
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, player, floor_reached, floors_cleared, score, end_reason, timeouts, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Player,
		rec.FloorReached,
		rec.FloorsCleared,
		rec.Score,
		rec.EndReason,
		rec.Timeouts,
		int64(rec.Duration/time.Second),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return rec.RunID, nil
}

const runColumns = `id, run_id, player, floor_reached, floors_cleared, score, end_reason, timeouts, duration_secs, created_at`

// TopRuns retrieves the best N runs ordered by score, then floor reached.
func (s *Store) TopRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY score DESC, floor_reached DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// PlayerRuns retrieves the most recent runs of one player.
func (s *Store) PlayerRuns(player string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player runs: %w", err)
	}
	return scanRuns(rows)
}

// RunByID retrieves a run by its run ID. Returns nil if not found.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)

	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &rec, nil
}

// BestScore returns the highest recorded score, or 0 if the ledger is empty.
func (s *Store) BestScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats retrieves aggregated statistics over all runs.
func (s *Store) Stats() (*RunStats, error) {
	stats := &RunStats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(MAX(floor_reached), 0),
		        COALESCE(SUM(CASE WHEN end_reason = 'captured' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN end_reason = 'timeout' THEN 1 ELSE 0 END), 0),
		        MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.BestScore, &stats.AvgScore, &stats.DeepestFloor, &stats.Captures, &stats.TimedOut, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// Clear deletes every run.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var rec RunRecord
	var durationSecs int64
	var createdAt any

	err := row.Scan(
		&rec.ID,
		&rec.RunID,
		&rec.Player,
		&rec.FloorReached,
		&rec.FloorsCleared,
		&rec.Score,
		&rec.EndReason,
		&rec.Timeouts,
		&durationSecs,
		&createdAt,
	)
	if err != nil {
		return RunRecord{}, err
	}

	rec.Duration = time.Duration(durationSecs) * time.Second
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
