package scenario

import (
	"strings"
	"testing"

	"github.com/vovakirdan/flipsim/internal/audio"
	"github.com/vovakirdan/flipsim/internal/core"
	"github.com/vovakirdan/flipsim/internal/registry"
	"github.com/vovakirdan/flipsim/internal/sim"
)

// floorRoom is an open room with a two-row floor.
func floorRoom(populate func(w *sim.World)) Definition {
	rows := make([]string, GridH)
	rows[GridH-2] = strings.Repeat("#", GridW)
	rows[GridH-1] = strings.Repeat("#", GridW)
	return Definition{
		ID:       "test",
		Title:    "Test",
		Tiles:    rows,
		Start:    Spawn{X: 100, Y: 201, Dir: 1},
		Populate: populate,
	}
}

func newTestRoom(def Definition, env registry.Env) *Room {
	r := NewRoom(def, env)
	r.Reset(core.RuntimeConfig{ScreenW: ViewW, ScreenH: ViewH, TickRate: 30, Seed: 1})
	return r
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func press(a core.Action) core.InputFrame {
	f := core.NewInputFrame()
	f.Set(a)
	return f
}

type collectorStore struct {
	sim.NopPersistence
	slots []int
}

func (c *collectorStore) MarkCollected(slot int) error {
	c.slots = append(c.slots, slot)
	return nil
}

type talkingScripts struct {
	ran  []string
	said []string
}

func (s *talkingScripts) Run(_ *sim.World, name string) error {
	s.ran = append(s.ran, name)
	s.said = append(s.said, "hello from "+name)
	return nil
}

func (s *talkingScripts) Messages() []string {
	out := s.said
	s.said = nil
	return out
}

func TestTilesQueries(t *testing.T) {
	tiles := ParseTiles([]string{"#^v:"})

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"solid", tiles.Collide(0, 0, false), true},
		{"spike passable", tiles.Collide(1, 0, false), false},
		{"spike solid when invincible", tiles.Collide(1, 0, true), true},
		{"background passable", tiles.Collide(3, 0, false), false},
		{"padding passable", tiles.Collide(10, 5, false), false},
		{"outside passable", tiles.Collide(-1, 0, false), false},
		{"tower spike up", tiles.TowerSpikeCollide(1, 0), true},
		{"tower spike down", tiles.TowerSpikeCollide(2, 0), true},
		{"tower solid", tiles.TowerSpikeCollide(0, 0), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, expected %v", tt.name, tt.got, tt.want)
		}
	}

	if tiles.At(10, 5) != TileEmpty {
		t.Errorf("At(10, 5) = %q, expected %q", tiles.At(10, 5), TileEmpty)
	}
	if tiles.At(GridW, 0) != 0 {
		t.Errorf("At(GridW, 0) = %q, expected 0", tiles.At(GridW, 0))
	}
}

func TestSpikeBlocks(t *testing.T) {
	r := newTestRoom(Definition{ID: "spikes", Tiles: []string{"", "^v"}}, registry.Env{})
	w := r.World()

	// The player is the only entity; the two spikes are blocks.
	if w.BlockCount() != 2 {
		t.Fatalf("BlockCount = %d, expected 2", w.BlockCount())
	}
	expected := []core.Rect{
		core.NewRect(0, 12, 8, 4),
		core.NewRect(8, 8, 8, 4),
	}
	for i, want := range expected {
		b, ok := w.Block(i)
		if !ok {
			t.Fatalf("block %d missing", i)
		}
		if b.Type != sim.BlockDamage || b.Rect != want {
			t.Errorf("block %d = %v %+v, expected damage %+v", i, b.Type, b.Rect, want)
		}
	}
}

func TestFlipFromFloor(t *testing.T) {
	rec := audio.NewRecorder()
	r := newTestRoom(floorRoom(nil), registry.Env{Audio: rec})
	w := r.World()

	r.Step(idle())
	p, _ := w.Entity(w.Player())
	if p.OnGround == 0 {
		t.Fatal("player is not standing on the floor")
	}

	res := r.Step(press(core.ActionFlip))
	if w.State.GravityControl != 1 {
		t.Errorf("GravityControl = %d, expected 1", w.State.GravityControl)
	}
	if res.State.Flips != 1 {
		t.Errorf("Flips = %d, expected 1", res.State.Flips)
	}
	if got := rec.Counts()[sim.SoundFlip]; got != 1 {
		t.Errorf("flip sounds = %d, expected 1", got)
	}
	if rec.Frames() != 2 {
		t.Errorf("audio clock at %d, expected 2", rec.Frames())
	}

	// Airborne flips are ignored.
	r.Step(press(core.ActionFlip))
	if w.State.TotalFlips != 1 {
		t.Errorf("TotalFlips = %d after a mid-air flip, expected 1", w.State.TotalFlips)
	}
}

func TestWalkSetsDirection(t *testing.T) {
	r := newTestRoom(floorRoom(nil), registry.Env{})
	w := r.World()

	r.Step(press(core.ActionLeft))
	p, _ := w.Entity(w.Player())
	if p.Dir != 0 || p.X >= 100 {
		t.Errorf("after left: dir %d x %v", p.Dir, p.X)
	}

	r.Step(press(core.ActionRight))
	if p.Dir != 1 {
		t.Errorf("after right: dir %d", p.Dir)
	}
}

func TestDeathAndRespawn(t *testing.T) {
	rec := audio.NewRecorder()
	def := floorRoom(func(w *sim.World) {
		w.CreateBlock(sim.BlockDamage, 200, 150, 16, 16, 0, "", false)
	})
	r := newTestRoom(def, registry.Env{Audio: rec})
	w := r.World()

	p, _ := w.Entity(w.Player())
	p.X, p.Y = 200, 140
	p.OldX, p.OldY = 200, 140

	for i := 0; i < 29; i++ {
		r.Step(idle())
	}
	if !r.Dying() {
		t.Fatal("player should still be dying after 29 frames")
	}
	if w.State.Deaths != 1 {
		t.Errorf("Deaths = %d while dying, expected 1", w.State.Deaths)
	}

	res := r.Step(idle())
	if r.Dying() || w.State.DeathSeq != -1 {
		t.Fatalf("player not respawned: dying %v seq %d", r.Dying(), w.State.DeathSeq)
	}
	p, _ = w.Entity(w.Player())
	if p.X != 100 || p.Y != 201 {
		t.Errorf("respawned at (%v, %v), expected (100, 201)", p.X, p.Y)
	}
	if res.State.Deaths != 1 {
		t.Errorf("Deaths = %d, expected 1", res.State.Deaths)
	}
	if got := rec.Counts()[sim.SoundHurt]; got != 1 {
		t.Errorf("hurt sounds = %d, expected 1", got)
	}
}

func TestRestartRespawns(t *testing.T) {
	r := newTestRoom(floorRoom(nil), registry.Env{})
	w := r.World()

	for i := 0; i < 5; i++ {
		r.Step(press(core.ActionRight))
	}
	r.Step(press(core.ActionRestart))

	p, _ := w.Entity(w.Player())
	if p.X != 100 {
		t.Errorf("X = %v after restart, expected 100", p.X)
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	r := newTestRoom(floorRoom(nil), registry.Env{})
	w := r.World()

	r.Step(press(core.ActionPause))
	frame := w.Frame()
	res := r.Step(press(core.ActionRight))
	if !res.State.Paused || w.Frame() != frame {
		t.Errorf("paused room advanced: paused %v frame %d -> %d", res.State.Paused, frame, w.Frame())
	}

	r.Step(press(core.ActionPause))
	if r.State().Paused || w.Frame() != frame+1 {
		t.Errorf("unpause did not step: paused %v frame %d", r.State().Paused, w.Frame())
	}
}

func TestCollectedSlotsPersisted(t *testing.T) {
	store := &collectorStore{}
	def := floorRoom(func(w *sim.World) {
		w.CreateEntity(104, 208, sim.KindCoin, 5)
	})
	r := newTestRoom(def, registry.Env{Store: store})

	r.Step(idle())
	r.Step(idle())

	if !r.World().State.Collect[5] {
		t.Fatal("coin was not collected")
	}
	if len(store.slots) != 1 || store.slots[0] != 5 {
		t.Errorf("persisted slots = %v, expected [5]", store.slots)
	}
	if r.State().Score != 1 {
		t.Errorf("Score = %d, expected 1", r.State().Score)
	}
}

func TestResumeFromCheckpoint(t *testing.T) {
	store := &collectorStore{}
	def := floorRoom(func(w *sim.World) {
		w.CreateEntity(104, 208, sim.KindCoin, 5)
	})
	r := NewRoom(def, registry.Env{Store: store})
	r.Resume(sim.Checkpoint{SavePoint: 3, X: 60, Y: 201, Dir: 0}, []int{5})
	r.Reset(core.RuntimeConfig{Seed: 1})
	w := r.World()

	p, _ := w.Entity(w.Player())
	if p.X != 60 || p.Dir != 0 {
		t.Errorf("player at x %v dir %d, expected x 60 dir 0", p.X, p.Dir)
	}
	if w.State.SavePoint != 3 {
		t.Errorf("SavePoint = %d, expected 3", w.State.SavePoint)
	}
	if w.EntityCount() != 1 {
		t.Errorf("EntityCount = %d, expected only the player", w.EntityCount())
	}

	r.Step(idle())
	if len(store.slots) != 0 {
		t.Errorf("restored slots persisted again: %v", store.slots)
	}
}

func TestActivityRunsScript(t *testing.T) {
	scripts := &talkingScripts{}
	def := floorRoom(func(w *sim.World) {
		w.CreateBlock(sim.BlockActivity, 80, 180, 48, 48, 1, "", false)
	})
	r := newTestRoom(def, registry.Env{Scripts: scripts})

	r.Step(idle())
	screen := core.NewScreen(ViewW, ViewH)
	r.Render(screen)
	if !strings.Contains(screen.String(), "Press Enter to talk to Violet") {
		t.Errorf("activity prompt not shown:\n%s", screen.String())
	}

	r.Step(press(core.ActionConfirm))
	if len(scripts.ran) != 1 || scripts.ran[0] != "talkpurple" {
		t.Fatalf("scripts run = %v, expected [talkpurple]", scripts.ran)
	}
	if r.Message() != "hello from talkpurple" {
		t.Errorf("Message() = %q", r.Message())
	}

	for i := 0; i < messageTicks; i++ {
		r.Step(idle())
	}
	if r.Message() != "" {
		t.Errorf("message still shown after %d frames: %q", messageTicks, r.Message())
	}
}

func TestDoneEndsRun(t *testing.T) {
	def := floorRoom(nil)
	def.Done = func(w *sim.World) bool { return w.Frame() >= 3 }
	r := newTestRoom(def, registry.Env{})

	for i := 0; i < 3; i++ {
		r.Step(idle())
	}
	if !r.State().GameOver {
		t.Fatal("run did not end")
	}
	frame := r.World().Frame()
	r.Step(idle())
	if r.World().Frame() != frame {
		t.Error("finished room kept stepping")
	}
}

func TestKeepInside(t *testing.T) {
	def := floorRoom(nil)
	def.KeepInside = true
	r := newTestRoom(def, registry.Env{})
	w := r.World()

	p, _ := w.Entity(w.Player())
	p.X, p.OldX = -40, -40
	r.Step(idle())
	if p.X != float64(-p.CX) {
		t.Errorf("X = %v, expected %d", p.X, -p.CX)
	}
}

func TestRegisteredRooms(t *testing.T) {
	for _, id := range []string{"lab", "station", "gravitron", "super-gravitron"} {
		if !registry.Exists(id) {
			t.Errorf("room %q not registered", id)
		}
	}

	list := registry.List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
	for _, info := range list {
		if info.Title == "" {
			t.Errorf("room %q has no title", info.ID)
		}
	}
}

func TestRoomsAreDeterministic(t *testing.T) {
	for _, id := range []string{"lab", "station", "super-gravitron"} {
		t.Run(id, func(t *testing.T) {
			a, err := registry.Create(id, registry.Env{})
			if err != nil {
				t.Fatalf("Create() failed: %v", err)
			}
			b, _ := registry.Create(id, registry.Env{})
			cfg := core.RuntimeConfig{Seed: 42}
			a.Reset(cfg)
			b.Reset(cfg)

			inputs := core.ParseInputScript(strings.Repeat("rr.f..ll.R", 20))
			for i, in := range inputs {
				ha := a.Step(in).Hash
				hb := b.Step(in).Hash
				if ha != hb {
					t.Fatalf("frame %d: hashes differ", i)
				}
			}
		})
	}
}

func TestRenderDrawsRoom(t *testing.T) {
	r := newTestRoom(floorRoom(nil), registry.Env{})
	r.Step(idle())

	screen := core.NewScreen(ViewW, ViewH)
	r.Render(screen)
	out := screen.String()

	for _, want := range []string{"V", "█", "Test", "Deaths: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("render is missing %q", want)
		}
	}
}
