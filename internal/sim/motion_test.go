package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/flipsim/internal/core"
)

func TestDecayNeverOvershoots(t *testing.T) {
	tests := []struct {
		v, rate, limit float64
		expected       float64
	}{
		{0, 1.1, 6, 0},
		{0.5, 1.1, 6, 0},
		{-0.5, 1.1, 6, 0},
		{1.5, 1.1, 6, 0},
		{3, 1.1, 6, 1.9},
		{-3, 1.1, 6, -1.9},
		{20, 1.1, 6, 6},
		{-20, 1.1, 6, -6},
		{10, 0.25, 10, 9.75},
		{12, 0.25, 10, 10},
	}

	for _, tt := range tests {
		got := decay(tt.v, tt.rate, tt.limit)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("decay(%v, %v, %v) = %v, expected %v", tt.v, tt.rate, tt.limit, got, tt.expected)
		}
		if tt.v > 0 && got < 0 || tt.v < 0 && got > 0 {
			t.Errorf("decay(%v, %v, %v) = %v changed sign", tt.v, tt.rate, tt.limit, got)
		}
	}
}

func TestGravityDirection(t *testing.T) {
	tests := []struct {
		name    string
		rule    int
		gc      int
		upwards bool
	}{
		{"player normal", RulePlayer, 0, false},
		{"player flipped", RulePlayer, 1, true},
		{"crew ignores player gravity", RuleCrew, 1, false},
		{"inverted crew", RuleCrewInverted, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			w.State.GravityControl = tt.gc
			e := newEntity(100, 100)
			e.Rule = tt.rule
			e.Gravity = true

			w.integrate(&e)
			if (e.AY < 0) != tt.upwards {
				t.Errorf("AY = %v after first frame, upwards expected %v", e.AY, tt.upwards)
			}
			w.integrate(&e)
			if (e.VY < 0) != tt.upwards || e.VY == 0 {
				t.Errorf("VY = %v after second frame, upwards expected %v", e.VY, tt.upwards)
			}
			if math.Abs(e.VY) != 2.75 {
				t.Errorf("|VY| = %v, expected 2.75", math.Abs(e.VY))
			}
		})
	}
}

func TestIntegrateConsumesHorizontalImpulse(t *testing.T) {
	w := newTestWorld()
	e := newEntity(10, 10)
	e.AX = 2

	w.integrate(&e)
	if e.VX != 2 || e.AX != 0 {
		t.Errorf("after impulse: vx %v ax %v", e.VX, e.AX)
	}
	if e.OldX != 10 || e.NewX != 12 {
		t.Errorf("old %v new %v, expected 10 and 12", e.OldX, e.NewX)
	}
}

func TestWallStopsEntity(t *testing.T) {
	w := newTestWorld()
	w.CreateBlock(BlockSolid, 37, 0, 8, 240, 0, "", false)

	e := newEntity(21, 100)
	e.Rule = RuleHarmful
	e.Type = TypeMoving
	e.VX = 3
	e.State = 1
	e.OnWall = 2
	i := spawn(w, e)

	p, _ := w.Entity(i)
	w.integrate(p)
	w.ResolveWalls(i)

	if p.X != 21 {
		t.Errorf("X = %v, expected 21 (flush with the wall)", p.X)
	}
	if p.VX != 0 {
		t.Errorf("VX = %v, expected 0", p.VX)
	}
	if p.State != 2 {
		t.Errorf("State = %d, expected onwall state 2", p.State)
	}
}

func TestWallShortensMove(t *testing.T) {
	w := newTestWorld()
	w.CreateBlock(BlockSolid, 40, 0, 8, 240, 0, "", false)

	e := newEntity(20, 100)
	e.Rule = RuleHarmful
	e.VX = 4
	i := spawn(w, e)

	p, _ := w.Entity(i)
	w.integrate(p)
	w.ResolveWalls(i)

	if p.X != 24 || p.VX != 4 {
		t.Errorf("unobstructed move: x %v vx %v", p.X, p.VX)
	}

	w.integrate(p)
	w.ResolveWalls(i)
	if p.X != 24 || p.VX != 0 {
		t.Errorf("flush move: x %v vx %v, expected 24 and 0", p.X, p.VX)
	}
}

func TestWallSingleAttempt(t *testing.T) {
	tests := []struct {
		name   string
		blockX int
		x, vx  float64
	}{
		{"flush right", 40, 24, 1},
		{"flush left", 0, 8, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			w.CreateBlock(BlockSolid, tt.blockX, 0, 8, 240, 0, "", false)

			e := newEntity(tt.x, 100)
			e.Rule = RuleHarmful
			e.VX = tt.vx
			i := spawn(w, e)

			p, _ := w.Entity(i)
			w.integrate(p)
			w.ResolveWalls(i)

			if p.X != tt.x {
				t.Errorf("X = %v, expected %v (move rejected)", p.X, tt.x)
			}
			if p.VX != 0 {
				t.Errorf("VX = %v, expected 0", p.VX)
			}
		})
	}
}

func TestTileWallStopsFall(t *testing.T) {
	// Row 15 (y 120..127) is solid below the entity.
	grid := solidGrid{}
	for gx := 0; gx < 40; gx++ {
		grid[[2]int{gx, 15}] = true
	}
	w := newTestWorld(WithTiles(grid))

	e := newEntity(100, 102)
	e.VY = 5
	i := spawn(w, e)

	p, _ := w.Entity(i)
	w.integrate(p)
	w.ResolveWalls(i)

	if p.Y != 104 {
		t.Errorf("Y = %v, expected 104 (resting on the tile row)", p.Y)
	}
	// The speed is only shortened until the move fits.
	if p.VY != 2 {
		t.Errorf("VY = %v, expected 2", p.VY)
	}
	if !w.CollideFloor(i) {
		t.Error("CollideFloor = false while resting on tiles")
	}
	if w.CollideRoof(i) {
		t.Error("CollideRoof = true with nothing above")
	}
}

func TestDirectionalBlocks(t *testing.T) {
	tests := []struct {
		name     string
		side     int
		dx, dy   float64
		expected bool
	}{
		{"down blocks falling", DirBlocksDown, 0, 2, true},
		{"down lets rise", DirBlocksDown, 0, -2, false},
		{"up blocks rising", DirBlocksUp, 0, -2, true},
		{"up blocks standing", DirBlocksUp, 0, 0, true},
		{"right blocks right", DirBlocksRight, 2, 0, true},
		{"right lets left", DirBlocksRight, -2, 0, false},
		{"left blocks left", DirBlocksLeft, -2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			w.CreateBlock(BlockDirectional, 0, 0, 100, 100, tt.side, "", false)
			p := wallProbe{dx: tt.dx, dy: tt.dy, withBlocks: true}
			if got := w.checkBlocks(core.NewRect(10, 10, 8, 8), p); got != tt.expected {
				t.Errorf("checkBlocks = %v, expected %v", got, tt.expected)
			}
			p.skipDirBlocks = true
			if w.checkBlocks(core.NewRect(10, 10, 8, 8), p) {
				t.Error("skipped directional block still blocked")
			}
		})
	}
}

func TestSafeBlocksOnlyStopEnemies(t *testing.T) {
	w := newTestWorld()
	w.CreateBlock(BlockSafe, 0, 0, 50, 50, 0, "", false)

	if w.checkBlocks(core.NewRect(10, 10, 8, 8), wallProbe{rule: RulePlayer}) {
		t.Error("safe block stopped the player")
	}
	if !w.checkBlocks(core.NewRect(10, 10, 8, 8), wallProbe{rule: RuleHarmful}) {
		t.Error("safe block did not stop an enemy")
	}
}
