package sim

import "testing"

func TestGravityLineCrossing(t *testing.T) {
	tests := []struct {
		name       string
		oldY, newY float64
		flips      bool
	}{
		{"crosses downwards", 50, 70, true},
		{"crosses upwards", 90, 70, true},
		{"stays above", 20, 30, false},
		{"stays below", 90, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audio := &recordingAudio{}
			w := newTestWorld(WithAudio(audio))
			p, _ := w.CreateEntity(100, 0, KindPlayer)
			l, _ := w.CreateEntity(90, 80, KindHorizontalLine, 40)

			pl, _ := w.Entity(p)
			pl.OldY, pl.Y = tt.oldY, tt.newY

			w.CheckCollisions()

			line, _ := w.Entity(l)
			flipped := w.State.GravityControl == 1
			if flipped != tt.flips {
				t.Fatalf("GravityControl = %d, flip expected %v", w.State.GravityControl, tt.flips)
			}
			if !tt.flips {
				if line.State != 0 || len(audio.played) != 0 {
					t.Errorf("line state %d, sounds %v", line.State, audio.played)
				}
				return
			}
			if w.State.TotalFlips != 1 {
				t.Errorf("TotalFlips = %d, expected 1", w.State.TotalFlips)
			}
			if pl.VY != -1 {
				t.Errorf("VY = %v, expected -1", pl.VY)
			}
			if line.State != 1 || line.Life != 6 {
				t.Errorf("line state %d life %d, expected 1 and 6", line.State, line.Life)
			}
			if len(audio.played) != 1 || audio.played[0] != SoundGravityLine {
				t.Errorf("played = %v", audio.played)
			}
		})
	}
}

func TestGravityLineCooldown(t *testing.T) {
	w := newTestWorld()
	p, _ := w.CreateEntity(100, 0, KindPlayer)
	l, _ := w.CreateEntity(90, 80, KindHorizontalLine, 40)
	pl, _ := w.Entity(p)
	pl.OldY, pl.Y = 50, 70

	w.CheckCollisions()
	w.UpdateEntity(l)

	line, _ := w.Entity(l)
	if line.OnEntity != 0 || line.Life != 5 {
		t.Fatalf("line onentity %d life %d after first tick", line.OnEntity, line.Life)
	}

	// While cooling down the line ignores further crossings.
	pl.OldY, pl.Y = 90, 70
	w.CheckCollisions()
	if w.State.TotalFlips != 1 {
		t.Errorf("TotalFlips = %d during cooldown, expected 1", w.State.TotalFlips)
	}

	for i := 0; i < 5; i++ {
		w.UpdateEntity(l)
	}
	if line.State != 0 || line.OnEntity != 1 {
		t.Errorf("line state %d onentity %d after cooldown", line.State, line.OnEntity)
	}
}

func TestEnemyContactStartsDeath(t *testing.T) {
	tests := []struct {
		name       string
		invincible bool
		expected   int
	}{
		{"vulnerable", false, deathSeqStart},
		{"invincible", true, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			w.State.Invincible = tt.invincible
			w.CreateEntity(100, 100, KindPlayer)
			w.CreateEntity(104, 104, KindEnemy, 4, 0)

			w.CheckCollisions()
			if w.State.DeathSeq != tt.expected {
				t.Errorf("DeathSeq = %d, expected %d", w.State.DeathSeq, tt.expected)
			}
		})
	}
}

func TestDamageBlockStartsDeath(t *testing.T) {
	w := newTestWorld()
	w.CreateEntity(100, 100, KindPlayer)
	w.CreateBlock(BlockDamage, 100, 100, 16, 16, 0, "", false)

	w.CheckCollisions()
	if w.State.DeathSeq != deathSeqStart {
		t.Errorf("DeathSeq = %d, expected %d", w.State.DeathSeq, deathSeqStart)
	}
}

func TestTouchPickup(t *testing.T) {
	w := newTestWorld()
	w.CreateEntity(100, 100, KindPlayer)
	c, _ := w.CreateEntity(108, 110, KindCoin, 2)
	far, _ := w.CreateEntity(10, 10, KindCoin, 3)

	w.CheckCollisions()

	if e, _ := w.Entity(c); e.State != 1 {
		t.Errorf("touched coin state = %d, expected 1", e.State)
	}
	if e, _ := w.Entity(far); e.State != 0 {
		t.Errorf("distant coin state = %d, expected 0", e.State)
	}
}

func TestTriggerBlocks(t *testing.T) {
	tests := []struct {
		name          string
		trigger       int
		script        string
		wantScript    bool
		wantRequested int
		wantBlocks    int
	}{
		{"script trigger", 5, "intro", true, 0, 0},
		{"state trigger", 310, "ignored", false, 310, 1},
		{"bare trigger", 7, "", false, 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			w.CreateEntity(100, 100, KindPlayer)
			w.CreateBlock(BlockTrigger, 0, 0, 320, 240, tt.trigger, tt.script, false)

			w.CheckCollisions()

			st := w.State
			if st.StartScript != tt.wantScript {
				t.Errorf("StartScript = %v, expected %v", st.StartScript, tt.wantScript)
			}
			if tt.wantScript && st.NewScript != tt.script {
				t.Errorf("NewScript = %q, expected %q", st.NewScript, tt.script)
			}
			if st.RequestedState != tt.wantRequested {
				t.Errorf("RequestedState = %d, expected %d", st.RequestedState, tt.wantRequested)
			}
			if w.BlockCount() != tt.wantBlocks {
				t.Errorf("BlockCount = %d, expected %d", w.BlockCount(), tt.wantBlocks)
			}
		})
	}
}

func TestCheckActivity(t *testing.T) {
	w := newTestWorld()
	if w.CheckActivity() != -1 {
		t.Error("activity found with no player")
	}
	w.CreateEntity(100, 100, KindPlayer)
	w.CreateBlock(BlockActivity, 200, 0, 20, 20, 1, "", false)
	if got := w.CheckActivity(); got != -1 {
		t.Errorf("CheckActivity = %d away from the zone", got)
	}
	b := w.CreateBlock(BlockActivity, 90, 90, 40, 40, 1, "", false)
	if got := w.CheckActivity(); got != b {
		t.Errorf("CheckActivity = %d, expected %d", got, b)
	}
	zone, _ := w.Block(b)
	if zone.Script != "talkpurple" {
		t.Errorf("activity script = %q, expected talkpurple", zone.Script)
	}
}

func TestTowerSpikes(t *testing.T) {
	grid := solidGrid{{13, 13}: true}
	w := newTestWorld(WithTiles(grid))
	p, _ := w.CreateEntity(100, 100, KindPlayer)

	if !w.CheckTowerSpikes(p) {
		t.Error("spike under the player not detected")
	}
	w.State.Invincible = true
	if w.CheckTowerSpikes(p) {
		t.Error("invincible player hit spikes")
	}
}
