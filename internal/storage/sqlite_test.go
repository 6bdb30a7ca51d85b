package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/flipsim/internal/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestRunCheckpoints(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.LatestCheckpoint("lab"); err != nil || ok {
		t.Fatalf("LatestCheckpoint on empty store = (%v, %v)", ok, err)
	}

	run, err := store.StartRun("lab")
	if err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}
	if run.ID() == "" {
		t.Fatal("run id is empty")
	}

	saves := []sim.Checkpoint{
		{SavePoint: 1, X: 46, Y: 93, GravityControl: 0, Dir: 1},
		{SavePoint: 2, X: 200, Y: 98, GravityControl: 1, Dir: 0},
	}
	for _, cp := range saves {
		if err := run.SaveCheckpoint(cp); err != nil {
			t.Fatalf("SaveCheckpoint() failed: %v", err)
		}
	}

	// Another scenario must not leak into lab.
	other, _ := store.StartRun("gravitron")
	other.SaveCheckpoint(sim.Checkpoint{SavePoint: 9})

	latest, ok, err := store.LatestCheckpoint("lab")
	if err != nil || !ok {
		t.Fatalf("LatestCheckpoint() = (%v, %v)", ok, err)
	}
	if latest.SavePoint != 2 || latest.X != 200 || latest.Y != 98 || latest.GravityControl != 1 {
		t.Errorf("latest checkpoint = %+v", latest)
	}
	if latest.RunID != run.ID() {
		t.Errorf("RunID = %q, expected %q", latest.RunID, run.ID())
	}

	all, err := store.Checkpoints("lab", 10)
	if err != nil {
		t.Fatalf("Checkpoints() failed: %v", err)
	}
	if len(all) != 2 || all[0].SavePoint != 2 || all[1].SavePoint != 1 {
		t.Errorf("Checkpoints() = %+v, expected newest first", all)
	}
}

func TestRunStatsUpsert(t *testing.T) {
	store := openTestStore(t)
	run, _ := store.StartRun("lab")

	if err := run.SaveStats(sim.Stats{Trinkets: 1, Flips: 10, Deaths: 2}); err != nil {
		t.Fatalf("SaveStats() failed: %v", err)
	}
	if err := run.SaveStats(sim.Stats{Trinkets: 2, Flips: 15, Deaths: 3}); err != nil {
		t.Fatalf("SaveStats() failed: %v", err)
	}

	st, ok, err := store.Stats("lab")
	if err != nil || !ok {
		t.Fatalf("Stats() = (%v, %v)", ok, err)
	}
	if st.Trinkets != 2 || st.Flips != 15 || st.Deaths != 3 {
		t.Errorf("Stats() = %+v", st)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("AllStats() has %d entries, expected 1", len(all))
	}
}

func TestRunProgressQueries(t *testing.T) {
	store := openTestStore(t)
	run, _ := store.StartRun("gravitron")

	if run.BestGameDeaths() != -1 {
		t.Errorf("BestGameDeaths() = %d on empty store, expected -1", run.BestGameDeaths())
	}
	if run.Unlocked(sim.UnlockGameComplete) {
		t.Error("Unlocked() = true on empty store")
	}

	store.Unlock(sim.UnlockGameComplete)
	store.Unlock(sim.UnlockGameComplete)
	store.SetTrialRank(3, 2)
	store.SetTrialRank(3, 3)
	store.SetRecord(RecordBestGameDeaths, 12)
	store.SetRecord(RecordGravitronBestRank, 5)

	tests := []struct {
		name     string
		got      int
		expected int
	}{
		{"trial rank", run.BestRank(3), 3},
		{"unranked trial", run.BestRank(4), 0},
		{"best game deaths", run.BestGameDeaths(), 12},
		{"gravitron rank", run.GravitronBestRank(), 5},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s = %d, expected %d", tt.name, tt.got, tt.expected)
		}
	}
	if !run.Unlocked(sim.UnlockGameComplete) {
		t.Error("Unlocked() = false after Unlock")
	}
}

func TestCollectedSlots(t *testing.T) {
	store := openTestStore(t)
	run, _ := store.StartRun("lab")

	for _, slot := range []int{7, 2, 7} {
		if err := run.MarkCollected(slot); err != nil {
			t.Fatalf("MarkCollected(%d) failed: %v", slot, err)
		}
	}

	slots, err := store.Collected("lab")
	if err != nil {
		t.Fatalf("Collected() failed: %v", err)
	}
	if len(slots) != 2 || slots[0] != 2 || slots[1] != 7 {
		t.Errorf("Collected() = %v, expected [2 7]", slots)
	}
}

func TestRunFinish(t *testing.T) {
	store := openTestStore(t)
	run, _ := store.StartRun("lab")

	if err := run.Finish(900, 4, 30, 1); err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}

	runs, err := store.Runs("lab", 10)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Runs() returned %d runs, expected 1", len(runs))
	}
	r := runs[0]
	if r.ID != run.ID() || !r.Finished || r.Frames != 900 || r.Deaths != 4 || r.Flips != 30 || r.Trinkets != 1 {
		t.Errorf("run = %+v", r)
	}
}
