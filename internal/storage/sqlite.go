// Package storage provides SQLite-based persistence for checkpoints, stats
// and progress records. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
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

// Record keys in the records table.
const (
	RecordBestGameDeaths    = "best_game_deaths"
	RecordGravitronBestRank = "gravitron_best_rank"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// CheckpointEntry is one saved checkpoint.
type CheckpointEntry struct {
	ID             int64
	RunID          string
	ScenarioID     string
	SavePoint      int
	X, Y           int
	GravityControl int
	RoomX, RoomY   int
	Dir            int
	CreatedAt      time.Time
}

// StatsEntry holds the lifetime counters of one scenario.
type StatsEntry struct {
	ScenarioID string
	Trinkets   int
	Flips      int
	Deaths     int
	UpdatedAt  time.Time
}

// RunEntry is one play session.
type RunEntry struct {
	ID         string
	ScenarioID string
	Frames     int
	Deaths     int
	Flips      int
	Trinkets   int
	Finished   bool
	StartedAt  time.Time
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			scenario_id TEXT NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			deaths INTEGER NOT NULL DEFAULT 0,
			flips INTEGER NOT NULL DEFAULT 0,
			trinkets INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario_id);

		CREATE TABLE IF NOT EXISTS checkpoints (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			scenario_id TEXT NOT NULL,
			save_point INTEGER NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			gravity INTEGER NOT NULL,
			room_x INTEGER NOT NULL,
			room_y INTEGER NOT NULL,
			dir INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_checkpoints_scenario ON checkpoints(scenario_id, id DESC);

		CREATE TABLE IF NOT EXISTS stats (
			scenario_id TEXT PRIMARY KEY,
			trinkets INTEGER NOT NULL DEFAULT 0,
			flips INTEGER NOT NULL DEFAULT 0,
			deaths INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS collected (
			scenario_id TEXT NOT NULL,
			slot INTEGER NOT NULL,
			PRIMARY KEY (scenario_id, slot)
		);

		CREATE TABLE IF NOT EXISTS unlocks (
			id INTEGER PRIMARY KEY,
			unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS trial_ranks (
			trial INTEGER PRIMARY KEY,
			rank INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS records (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);
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

// StartRun opens a new play session for a scenario.
func (s *Store) StartRun(scenarioID string) (*Run, error) {
	id := uuid.NewString()
	if _, err := s.db.Exec(
		"INSERT INTO runs (id, scenario_id) VALUES (?, ?)",
		id, scenarioID,
	); err != nil {
		return nil, fmt.Errorf("storage: cannot start run: %w", err)
	}
	return &Run{store: s, id: id, scenarioID: scenarioID}, nil
}

// LatestCheckpoint returns the most recent checkpoint of a scenario.
// The bool is false when none was saved yet.
func (s *Store) LatestCheckpoint(scenarioID string) (CheckpointEntry, bool, error) {
	var e CheckpointEntry
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, run_id, scenario_id, save_point, x, y, gravity, room_x, room_y, dir, created_at
		 FROM checkpoints
		 WHERE scenario_id = ?
		 ORDER BY id DESC
		 LIMIT 1`,
		scenarioID,
	).Scan(&e.ID, &e.RunID, &e.ScenarioID, &e.SavePoint, &e.X, &e.Y,
		&e.GravityControl, &e.RoomX, &e.RoomY, &e.Dir, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return CheckpointEntry{}, false, nil
	}
	if err != nil {
		return CheckpointEntry{}, false, fmt.Errorf("storage: cannot query checkpoint: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	return e, true, nil
}

// Checkpoints lists the saved checkpoints of a scenario, newest first.
func (s *Store) Checkpoints(scenarioID string, limit int) ([]CheckpointEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, scenario_id, save_point, x, y, gravity, room_x, room_y, dir, created_at
		 FROM checkpoints
		 WHERE scenario_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		scenarioID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query checkpoints: %w", err)
	}
	defer rows.Close()

	var entries []CheckpointEntry
	for rows.Next() {
		var e CheckpointEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.ScenarioID, &e.SavePoint, &e.X, &e.Y,
			&e.GravityControl, &e.RoomX, &e.RoomY, &e.Dir, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats returns the lifetime counters of a scenario. The bool is false when
// nothing was saved yet.
func (s *Store) Stats(scenarioID string) (StatsEntry, bool, error) {
	e := StatsEntry{ScenarioID: scenarioID}
	var updatedAt any
	err := s.db.QueryRow(
		"SELECT trinkets, flips, deaths, updated_at FROM stats WHERE scenario_id = ?",
		scenarioID,
	).Scan(&e.Trinkets, &e.Flips, &e.Deaths, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return e, false, nil
	}
	if err != nil {
		return e, false, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	e.UpdatedAt = parseTime(updatedAt)
	return e, true, nil
}

// AllStats returns the counters of every scenario that saved any.
func (s *Store) AllStats() (map[string]StatsEntry, error) {
	rows, err := s.db.Query("SELECT scenario_id, trinkets, flips, deaths, updated_at FROM stats")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]StatsEntry)
	for rows.Next() {
		var e StatsEntry
		var updatedAt any
		if err := rows.Scan(&e.ScenarioID, &e.Trinkets, &e.Flips, &e.Deaths, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		stats[e.ScenarioID] = e
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Runs lists the play sessions of a scenario, newest first.
func (s *Store) Runs(scenarioID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, scenario_id, frames, deaths, flips, trinkets, finished, started_at
		 FROM runs
		 WHERE scenario_id = ?
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		scenarioID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunEntry
	for rows.Next() {
		var r RunEntry
		var startedAt any
		if err := rows.Scan(&r.ID, &r.ScenarioID, &r.Frames, &r.Deaths, &r.Flips,
			&r.Trinkets, &r.Finished, &startedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(startedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// MarkCollected remembers a collected pickup slot for a scenario.
func (s *Store) MarkCollected(scenarioID string, slot int) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO collected (scenario_id, slot) VALUES (?, ?)",
		scenarioID, slot,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot mark collected: %w", err)
	}
	return nil
}

// Collected returns the collected pickup slots of a scenario in order.
func (s *Store) Collected(scenarioID string) ([]int, error) {
	rows, err := s.db.Query(
		"SELECT slot FROM collected WHERE scenario_id = ? ORDER BY slot",
		scenarioID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query collected: %w", err)
	}
	defer rows.Close()

	var slots []int
	for rows.Next() {
		var slot int
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// Unlock records an unlock id.
func (s *Store) Unlock(id int) error {
	if _, err := s.db.Exec("INSERT OR IGNORE INTO unlocks (id) VALUES (?)", id); err != nil {
		return fmt.Errorf("storage: cannot unlock %d: %w", id, err)
	}
	return nil
}

// IsUnlocked reports whether an unlock id was recorded.
func (s *Store) IsUnlocked(id int) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM unlocks WHERE id = ?", id).Scan(&n); err != nil {
		return false, fmt.Errorf("storage: cannot query unlock: %w", err)
	}
	return n > 0, nil
}

// SetTrialRank stores the best rank of a time trial.
func (s *Store) SetTrialRank(trial, rank int) error {
	_, err := s.db.Exec(
		`INSERT INTO trial_ranks (trial, rank) VALUES (?, ?)
		 ON CONFLICT(trial) DO UPDATE SET rank = excluded.rank`,
		trial, rank,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save trial rank: %w", err)
	}
	return nil
}

// TrialRank returns the best rank of a time trial, 0 when none.
func (s *Store) TrialRank(trial int) (int, error) {
	var rank sql.NullInt64
	err := s.db.QueryRow("SELECT rank FROM trial_ranks WHERE trial = ?", trial).Scan(&rank)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query trial rank: %w", err)
	}
	return int(rank.Int64), nil
}

// SetRecord stores a named integer record.
func (s *Store) SetRecord(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO records (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save record %s: %w", key, err)
	}
	return nil
}

// Record returns a named integer record, or def when it was never set.
func (s *Store) Record(key string, def int) (int, error) {
	var v int
	err := s.db.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("storage: cannot query record %s: %w", key, err)
	}
	return v, nil
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
