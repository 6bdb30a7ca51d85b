package storage

import (
	"fmt"

	"github.com/vovakirdan/flipsim/internal/sim"
)

// Run is one play session. It implements sim.Persistence, tagging every
// save with the run id and scenario.
type Run struct {
	store      *Store
	id         string
	scenarioID string
}

var _ sim.Persistence = (*Run)(nil)

// ID returns the run's uuid.
func (r *Run) ID() string {
	return r.id
}

// SaveCheckpoint records the resume point.
func (r *Run) SaveCheckpoint(cp sim.Checkpoint) error {
	_, err := r.store.db.Exec(
		`INSERT INTO checkpoints
		 (run_id, scenario_id, save_point, x, y, gravity, room_x, room_y, dir)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.id, r.scenarioID, cp.SavePoint, cp.X, cp.Y, cp.GravityControl,
		cp.RoomX, cp.RoomY, cp.Dir,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save checkpoint: %w", err)
	}
	return nil
}

// SaveStats upserts the scenario's lifetime counters.
func (r *Run) SaveStats(st sim.Stats) error {
	_, err := r.store.db.Exec(
		`INSERT INTO stats (scenario_id, trinkets, flips, deaths, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(scenario_id) DO UPDATE SET
		   trinkets = excluded.trinkets,
		   flips = excluded.flips,
		   deaths = excluded.deaths,
		   updated_at = excluded.updated_at`,
		r.scenarioID, st.Trinkets, st.Flips, st.Deaths,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save stats: %w", err)
	}
	return nil
}

// BestRank returns the best time-trial rank, 0 on error or when unranked.
func (r *Run) BestRank(trial int) int {
	rank, err := r.store.TrialRank(trial)
	if err != nil {
		return 0
	}
	return rank
}

// Unlocked reports whether an unlock id was recorded.
func (r *Run) Unlocked(id int) bool {
	ok, err := r.store.IsUnlocked(id)
	return err == nil && ok
}

// BestGameDeaths returns the fewest deaths in a completed game, -1 when none.
func (r *Run) BestGameDeaths() int {
	v, err := r.store.Record(RecordBestGameDeaths, -1)
	if err != nil {
		return -1
	}
	return v
}

// GravitronBestRank returns the best super gravitron rank.
func (r *Run) GravitronBestRank() int {
	v, err := r.store.Record(RecordGravitronBestRank, 0)
	if err != nil {
		return 0
	}
	return v
}

// MarkCollected remembers a collected pickup for the run's scenario.
func (r *Run) MarkCollected(slot int) error {
	return r.store.MarkCollected(r.scenarioID, slot)
}

// Finish stores the session's final counters.
func (r *Run) Finish(frames, deaths, flips, trinkets int) error {
	_, err := r.store.db.Exec(
		`UPDATE runs SET frames = ?, deaths = ?, flips = ?, trinkets = ?, finished = 1
		 WHERE id = ?`,
		frames, deaths, flips, trinkets, r.id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	return nil
}
