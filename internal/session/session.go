// Package session opens a room together with its collaborators: the Lua
// script engine, the audio recorder and, when a store is available, a
// persisted run.
package session

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flipsim/internal/audio"
	"github.com/vovakirdan/flipsim/internal/config"
	"github.com/vovakirdan/flipsim/internal/registry"
	"github.com/vovakirdan/flipsim/internal/script"
	"github.com/vovakirdan/flipsim/internal/sim"
	"github.com/vovakirdan/flipsim/internal/storage"
)

// Options configure Open.
type Options struct {
	Sim        config.SimConfig
	Store      *storage.Store // nil plays without saving
	ScriptsDir string
	Logger     *log.Logger
	// Resume starts from the room's latest saved checkpoint, if any.
	Resume bool
}

// resumer is implemented by rooms that can start from a checkpoint.
type resumer interface {
	Resume(cp sim.Checkpoint, collected []int)
}

// Session is one room being played.
type Session struct {
	Scenario registry.Scenario
	Audio    *audio.Recorder
	Scripts  *script.Engine
	Run      *storage.Run // nil without a store

	log      *log.Logger
	finished bool
	closed   bool
}

// Open creates the room id and wires its collaborators. The caller must
// Reset the scenario before stepping it and Close the session afterwards.
func Open(id string, opts Options) (*Session, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("session: unknown scenario %q", id)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	scripts, err := script.NewEngine(opts.ScriptsDir, logger)
	if err != nil {
		return nil, fmt.Errorf("session: cannot load scripts: %w", err)
	}

	s := &Session{
		Audio:   audio.NewRecorder(),
		Scripts: scripts,
		log:     logger,
	}
	env := registry.Env{
		Sim:     opts.Sim,
		Logger:  logger,
		Audio:   s.Audio,
		Scripts: scripts,
	}

	if opts.Store != nil {
		run, err := opts.Store.StartRun(id)
		if err != nil {
			logger.Warn("playing without saves", "scenario", id, "err", err)
		} else {
			s.Run = run
			env.Store = run
		}
	}

	sc, err := registry.Create(id, env)
	if err != nil {
		scripts.Close()
		return nil, err
	}
	s.Scenario = sc

	if opts.Resume && opts.Store != nil {
		s.resume(opts.Store, id)
	}
	return s, nil
}

func (s *Session) resume(store *storage.Store, id string) {
	r, ok := s.Scenario.(resumer)
	if !ok {
		return
	}
	cp, found, err := store.LatestCheckpoint(id)
	if err != nil {
		s.log.Warn("cannot load checkpoint", "scenario", id, "err", err)
		return
	}
	if !found {
		return
	}
	collected, err := store.Collected(id)
	if err != nil {
		s.log.Warn("cannot load collected pickups", "scenario", id, "err", err)
	}
	r.Resume(sim.Checkpoint{
		SavePoint:      cp.SavePoint,
		X:              cp.X,
		Y:              cp.Y,
		GravityControl: cp.GravityControl,
		RoomX:          cp.RoomX,
		RoomY:          cp.RoomY,
		Dir:            cp.Dir,
	}, collected)
	s.log.Info("resuming", "scenario", id, "savepoint", cp.SavePoint)
}

// Finish stores the run's final counters and the room's lifetime stats.
// Only the first call writes.
func (s *Session) Finish() error {
	if s.finished || s.Run == nil {
		return nil
	}
	w := s.Scenario.World()
	if w == nil {
		return nil
	}
	s.finished = true

	st := w.State
	if err := s.Run.SaveStats(sim.Stats{
		Trinkets: st.Trinkets(),
		Flips:    st.TotalFlips,
		Deaths:   st.Deaths,
	}); err != nil {
		return err
	}
	return s.Run.Finish(int(w.Frame()), st.Deaths, st.TotalFlips, st.Trinkets())
}

// Close finishes the run and releases the script engine. It is safe to call
// more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	defer s.Scripts.Close()
	return s.Finish()
}
