package sim

import (
	"testing"

	"github.com/vovakirdan/flipsim/internal/config"
)

func countGravitron(w *World) int {
	n := 0
	w.EachEntity(func(_ int, e *Entity) bool {
		if e.Type == TypeGravitronEnemy {
			n++
		}
		return true
	})
	return n
}

func TestClassicDecision(t *testing.T) {
	tests := []struct {
		name      string
		timer     int
		counter   int
		deaths    int
		wantState int
		wantDelay int
	}{
		{"opening zigzag", 0, 0, 0, 9, 8},
		{"middle pairs", 200, 0, 0, 6, 12},
		{"alternating", 320, 1, 0, 6, 15},
		{"late singles", 1700, 0, 0, 1, 25},
		{"past the schedule", 5000, 0, 0, 1, 5},
		{"death bump", 0, 0, 8, 9, 10},
		{"all death bumps", 0, 0, 30, 9, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			w.StartWave(WaveClassic, 0)
			wave := &w.State.Wave
			wave.Timer = tt.timer
			wave.Counter = tt.counter
			w.State.Deaths = tt.deaths

			w.GenerateWave(WaveClassic)

			if wave.State != tt.wantState || wave.Delay != tt.wantDelay {
				t.Errorf("state %d delay %d, expected %d and %d", wave.State, wave.Delay, tt.wantState, tt.wantDelay)
			}
		})
	}
}

func TestClassicSpawns(t *testing.T) {
	tests := []struct {
		name        string
		state       int
		wantX       []float64
		wantY       []float64
		wantCounter int
	}{
		{"top and bottom from the left", 5, []float64{-150, -150}, []float64{58, 158}, 1},
		{"middle from the left", 6, []float64{-150, -150}, []float64{98, 118}, 0},
		{"top and bottom from the right", 7, []float64{470, 470}, []float64{58, 158}, 1},
		{"middle from the right", 8, []float64{470, 470}, []float64{98, 118}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			w.StartWave(WaveClassic, 0)
			w.State.Wave.State = tt.state

			w.GenerateWave(WaveClassic)

			if countGravitron(w) != len(tt.wantX) {
				t.Fatalf("spawned %d enemies, expected %d", countGravitron(w), len(tt.wantX))
			}
			for i := range tt.wantX {
				e, _ := w.Entity(i)
				if e.X != tt.wantX[i] || e.Y != tt.wantY[i] {
					t.Errorf("enemy %d at (%v, %v), expected (%v, %v)", i, e.X, e.Y, tt.wantX[i], tt.wantY[i])
				}
				if e.Para != 7 {
					t.Errorf("enemy %d speed = %v, expected 7", i, e.Para)
				}
			}
			wave := w.State.Wave
			if wave.State != 0 || wave.Delay != 0 || wave.Counter != tt.wantCounter {
				t.Errorf("wave = state %d delay %d counter %d", wave.State, wave.Delay, wave.Counter)
			}
		})
	}
}

func TestZigzagBounces(t *testing.T) {
	w := newTestWorld()
	w.StartWave(WaveClassic, 0)
	var rows []int
	for i := 0; i < 12; i++ {
		w.zigzag()
		rows = append(rows, w.State.Wave.Counter)
	}
	expected := []int{1, 2, 3, 4, 5, 5, 4, 3, 2, 1, 0, 0}
	for i := range expected {
		if rows[i] != expected[i] {
			t.Fatalf("zigzag rows = %v, expected %v", rows, expected)
		}
	}
}

func TestWaveDelayGatesGenerator(t *testing.T) {
	w := newTestWorld()
	w.StartWave(WaveClassic, 0)
	w.State.Wave.State = 5
	w.State.Wave.Delay = 2

	w.GenerateWave(WaveClassic)
	w.GenerateWave(WaveClassic)
	if countGravitron(w) != 0 {
		t.Fatal("generator ran during its delay")
	}
	w.GenerateWave(WaveClassic)
	if countGravitron(w) != 2 {
		t.Errorf("spawned %d enemies after the delay, expected 2", countGravitron(w))
	}
}

// runUntilSpawn ticks the super generator until enemies appear.
func runUntilSpawn(t *testing.T, w *World, limit int) {
	t.Helper()
	for i := 0; i < limit; i++ {
		w.GenerateWave(WaveSuper)
		if countGravitron(w) > 0 {
			return
		}
	}
	t.Fatalf("no enemies after %d ticks", limit)
}

func TestSuperPracticePattern(t *testing.T) {
	w := newTestWorld(WithSeed(3))
	w.StartWave(WaveSuper, 100)

	runUntilSpawn(t, w, 40)

	wave := w.State.Wave
	if got := countGravitron(w); got != 21 {
		t.Errorf("pattern 100 spawned %d enemies, expected 21", got)
	}
	if wave.State != 0 || wave.Delay != 90 {
		t.Errorf("after pattern: state %d delay %d, expected 0 and 90", wave.State, wave.Delay)
	}
	if wave.PatternName != "^v^" || !wave.Seen[100] {
		t.Errorf("pattern name %q seen %v", wave.PatternName, wave.Seen[100])
	}
	if wave.RandDelay {
		t.Error("random delay should be consumed on the first choice")
	}
}

func TestSuperWeightedChoice(t *testing.T) {
	w := newTestWorld(WithSeed(11))
	w.StartWave(WaveSuper, 0)
	valid := map[int]bool{}
	for _, ids := range w.cfg.Gravitron.Tiers {
		for _, id := range ids {
			valid[id] = true
		}
	}

	for i := 0; i < 50; i++ {
		w.State.Wave.State = 0
		w.State.Wave.Delay = 0
		w.GenerateWave(WaveSuper)
		if !valid[w.State.Wave.State] {
			t.Fatalf("chose pattern %d, not in any tier", w.State.Wave.State)
		}
	}
}

func TestPatternWarmup(t *testing.T) {
	w := newTestWorld(WithSeed(5))
	w.StartWave(WaveSuper, 101)
	w.State.Wave.RandDelay = false
	w.GenerateWave(WaveSuper)
	wave := &w.State.Wave
	if wave.State != 101 {
		t.Fatalf("practice choice = %d, expected 101", wave.State)
	}

	w.GenerateWave(WaveSuper)
	if len(wave.Warnings) != 12 || wave.Counter != 1 {
		t.Fatalf("tick 0: %d warnings counter %d", len(wave.Warnings), wave.Counter)
	}
	for wave.Counter < 16 {
		w.GenerateWave(WaveSuper)
	}
	if wave.Warnings != nil {
		t.Errorf("warnings still shown at counter %d", wave.Counter)
	}
	if countGravitron(w) != 0 {
		t.Fatal("enemies spawned during warmup")
	}

	for wave.State == 101 {
		w.GenerateWave(WaveSuper)
	}
	n := countGravitron(w)
	if n < 12+10*2 || n > 12+10*4 {
		t.Errorf("cavern spawned %d enemies, expected 32..52", n)
	}
	if wave.Delay != 360 {
		t.Errorf("closing delay = %d, expected 360", wave.Delay)
	}
}

func TestGroupMutators(t *testing.T) {
	w := newTestWorld()
	for id := 1; id <= 3; id++ {
		if _, ok := w.GravCreate(id, 2, 10*id, 0, 5, id); !ok {
			t.Fatalf("GravCreate id %d failed", id)
		}
	}
	byID := func(id int) *Entity {
		var found *Entity
		w.EachEntity(func(_ int, e *Entity) bool {
			if e.ID == id {
				found = e
				return false
			}
			return true
		})
		return found
	}

	w.Freeze(2)
	if byID(1).Freeze || !byID(2).Freeze || byID(3).Freeze {
		t.Error("Freeze(2) touched the wrong enemies")
	}
	w.Freeze()
	if !byID(1).Freeze || !byID(3).Freeze {
		t.Error("Freeze() did not freeze every enemy")
	}
	w.Unfreeze(1, 3)
	if byID(1).Freeze || !byID(2).Freeze || byID(3).Freeze {
		t.Error("Unfreeze(1, 3) touched the wrong enemies")
	}

	w.Reverse()
	w.Unreverse(2)
	if !byID(1).Reverse || byID(2).Reverse || !byID(3).Reverse {
		t.Error("reverse flags wrong")
	}

	w.SpeedChange(4, 1, 3)
	if byID(1).Para != 4 || byID(2).Para != 5 || byID(3).Para != 4 {
		t.Errorf("speeds = %v %v %v", byID(1).Para, byID(2).Para, byID(3).Para)
	}

	w.MoveGroup(-100, 1)
	w.MoveGroup(200, 3)
	w.MoveGroup(-20, 2)
	if byID(1).Y != 48 || byID(3).Y != 168 || byID(2).Y != 78 {
		t.Errorf("moved y = %v %v %v, expected 48 168 78", byID(1).Y, byID(2).Y, byID(3).Y)
	}

	w.DeleteGroup(2)
	if countGravitron(w) != 2 || byID(2) != nil {
		t.Errorf("after DeleteGroup(2): %d enemies", countGravitron(w))
	}
	w.DeleteGroup()
	if countGravitron(w) != 0 {
		t.Errorf("after DeleteGroup(): %d enemies", countGravitron(w))
	}
}

func TestToggleFreezeEvent(t *testing.T) {
	tests := []struct {
		name      string
		ev        config.EventConfig
		first     map[int]bool
		second    map[int]bool
		wantDelay [2]int
	}{
		{
			name:      "all enemies",
			ev:        config.EventConfig{Op: "toggle_freeze", Delays: []int{30, 15}},
			first:     map[int]bool{1: true, 3: true},
			second:    map[int]bool{1: false, 3: false},
			wantDelay: [2]int{30, 15},
		},
		{
			name:   "swapping groups",
			ev:     config.EventConfig{Op: "toggle_freeze", IDs: []int{3}, SwapIDs: []int{1}},
			first:  map[int]bool{1: false, 3: true},
			second: map[int]bool{1: true, 3: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			idx := map[int]int{}
			for _, id := range []int{1, 3} {
				i, _ := w.GravCreate(0, 0, 0, 0, 7, id)
				idx[id] = i
			}
			check := func(want map[int]bool, delay int) {
				t.Helper()
				for id, frozen := range want {
					e, _ := w.Entity(idx[id])
					if e.Freeze != frozen {
						t.Errorf("enemy %d frozen = %v, expected %v", id, e.Freeze, frozen)
					}
				}
				if w.State.Wave.Delay != delay {
					t.Errorf("delay = %d, expected %d", w.State.Wave.Delay, delay)
				}
			}

			w.applyEvent(tt.ev)
			check(tt.first, tt.wantDelay[0])
			w.applyEvent(tt.ev)
			check(tt.second, tt.wantDelay[1])
		})
	}
}

func TestGravitronEnemyDespawnsWhenWaveIdle(t *testing.T) {
	w := newTestWorld()
	w.StartWave(WaveSuper, 0)
	w.State.Wave.Delay = 5
	i, _ := w.GravCreate(0, 0, 0, 0, 7, 1)

	w.UpdateEntity(i)
	e, _ := w.Entity(i)
	if e.VX != 7 || e.Despawn {
		t.Fatalf("moving enemy vx %v despawn %v", e.VX, e.Despawn)
	}

	w.State.Wave.Delay = 0
	if gone := w.UpdateEntity(i); !gone {
		t.Error("off-screen enemy should despawn when the wave is idle")
	}
}

func TestSetGravitronColours(t *testing.T) {
	w := newTestWorld()
	w.GravCreate(0, 0, 0, 0, 7, 1)
	w.GravCreate(1, 1, 0, 0, 7, 2)
	w.CreateEntity(10, 10, KindCoin, 0)

	w.SetGravitronColours(3)

	w.EachEntity(func(_ int, e *Entity) bool {
		if e.Type == TypeGravitronEnemy && e.Colour != ColourEnemyBlue {
			t.Errorf("enemy colour = %d, expected blue", e.Colour)
		}
		if e.Type == TypeCoin && e.Colour != ColourCoin {
			t.Error("coin was recoloured")
		}
		return true
	})
	if w.State.Wave.ColourState != 3 {
		t.Errorf("ColourState = %d, expected 3", w.State.Wave.ColourState)
	}
}
