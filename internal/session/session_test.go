package session

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/flipsim/internal/core"
	_ "github.com/vovakirdan/flipsim/internal/scenario"
	"github.com/vovakirdan/flipsim/internal/sim"
	"github.com/vovakirdan/flipsim/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenUnknownScenario(t *testing.T) {
	if _, err := Open("nope", Options{}); err == nil {
		t.Fatal("expected an error for an unknown scenario")
	}
}

func TestOpenWithoutStore(t *testing.T) {
	s, err := Open("lab", Options{})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if s.Run != nil {
		t.Error("Run should be nil without a store")
	}
	if !s.Scripts.Has("intro") {
		t.Error("builtin scripts not loaded")
	}

	s.Scenario.Reset(core.RuntimeConfig{Seed: 7})
	for i := 0; i < 10; i++ {
		s.Scenario.Step(core.NewInputFrame())
	}
	if s.Audio.Frames() != 10 {
		t.Errorf("audio clock at %d, expected 10", s.Audio.Frames())
	}
}

func TestCloseFinishesRun(t *testing.T) {
	store := openStore(t)

	s, err := Open("lab", Options{Store: store})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if s.Run == nil {
		t.Fatal("no run was started")
	}
	s.Scenario.Reset(core.RuntimeConfig{Seed: 7})
	for i := 0; i < 20; i++ {
		s.Scenario.Step(core.NewInputFrame())
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}

	runs, err := store.Runs("lab", 10)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 1 || !runs[0].Finished || runs[0].Frames != 20 {
		t.Errorf("runs = %+v, expected one finished run of 20 frames", runs)
	}
	if _, ok, _ := store.Stats("lab"); !ok {
		t.Error("stats were not saved")
	}
}

func TestResumeFromLatestCheckpoint(t *testing.T) {
	store := openStore(t)

	run, err := store.StartRun("lab")
	if err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}
	if err := run.SaveCheckpoint(sim.Checkpoint{SavePoint: 2, X: 260, Y: 20, GravityControl: 1, Dir: 0}); err != nil {
		t.Fatalf("SaveCheckpoint() failed: %v", err)
	}
	if err := run.MarkCollected(1); err != nil {
		t.Fatalf("MarkCollected() failed: %v", err)
	}

	s, err := Open("lab", Options{Store: store, Resume: true})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()
	s.Scenario.Reset(core.RuntimeConfig{Seed: 7})

	w := s.Scenario.World()
	p, ok := w.Entity(w.Player())
	if !ok {
		t.Fatal("no player")
	}
	if p.X != 260 || p.Y != 20 {
		t.Errorf("player at (%v, %v), expected (260, 20)", p.X, p.Y)
	}
	if w.State.GravityControl != 1 || w.State.SavePoint != 2 {
		t.Errorf("gravity %d savepoint %d, expected 1 and 2", w.State.GravityControl, w.State.SavePoint)
	}
	if !w.State.Collect[1] {
		t.Error("collected pickup was not restored")
	}
}
