// Package storage keeps the run history in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The history is an outcome log: it records how runs ended and is never used
// to restore a session.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Run results.
const (
	ResultWin       = "win"
	ResultCaught    = "caught"
	ResultAbandoned = "abandoned"
)

// Store manages the SQLite connection for the run log.
type Store struct {
	db *sql.DB
}

// Run is one finished or abandoned run.
type Run struct {
	ID        string // UUID, assigned by SaveRun when empty
	Variant   string
	Player    string // SSH user or local user name
	Seed      int64
	Result    string
	Stage     int
	Score     int
	Duration  float64 // Simulated seconds
	PeakNoise float64
	CreatedAt time.Time
}

// RunStats aggregates the log for one variant.
type RunStats struct {
	Runs       int
	Wins       int
	Caught     int
	BestScore  int
	FastestWin float64 // Zero when there are no wins
	PeakNoise  float64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			result TEXT NOT NULL,
			stage INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			duration_secs REAL NOT NULL DEFAULT 0,
			peak_noise REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(variant, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and returns its ID.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.Variant == "" {
		return "", errors.New("storage: run has no variant")
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Result == "" {
		r.Result = ResultAbandoned
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, variant, player, seed, result, stage, score, duration_secs, peak_noise)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Variant, r.Player, r.Seed, r.Result, r.Stage, r.Score, r.Duration, r.PeakNoise,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, variant, player, seed, result, stage, score, duration_secs, peak_noise, created_at`

// RecentRuns returns the latest runs, newest first. An empty variant
// matches every variant.
func (s *Store) RecentRuns(variant string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR variant = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// BestRuns returns the best runs of a variant: wins first, fastest win
// first, then by score and survival time.
func (s *Store) BestRuns(variant string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE variant = ?
		 ORDER BY result = 'win' DESC,
		          CASE WHEN result = 'win' THEN duration_secs END ASC,
		          score DESC,
		          duration_secs DESC
		 LIMIT ?`,
		variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best runs: %w", err)
	}
	return scanRuns(rows)
}

// Stats aggregates every run of a variant.
func (s *Store) Stats(variant string) (RunStats, error) {
	var st RunStats
	var best sql.NullInt64
	var fastest, peak sql.NullFloat64

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(result = 'win'), 0),
		        COALESCE(SUM(result = 'caught'), 0),
		        MAX(score),
		        MIN(CASE WHEN result = 'win' THEN duration_secs END),
		        MAX(peak_noise)
		 FROM runs
		 WHERE variant = ?`,
		variant,
	).Scan(&st.Runs, &st.Wins, &st.Caught, &best, &fastest, &peak)
	if err != nil {
		return RunStats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	st.BestScore = int(best.Int64)
	st.FastestWin = fastest.Float64
	st.PeakNoise = peak.Float64
	return st, nil
}

// ClearRuns deletes every run of a variant.
func (s *Store) ClearRuns(variant string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE variant = ?", variant); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Variant, &r.Player, &r.Seed, &r.Result,
			&r.Stage, &r.Score, &r.Duration, &r.PeakNoise, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both driver representations of DATETIME.
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
