package sim

import "github.com/vovakirdan/flipsim/internal/core"

// Sound is a one-shot sound effect.
type Sound int

const (
	SoundFlip Sound = iota
	SoundHurt
	SoundCoin
	SoundTrinket
	SoundNewRecord
	SoundCheckpoint
	SoundGravityLine
	SoundTeleport
	SoundTerminalTouch
	SoundRescue
	SoundGameSaved
	SoundDisappear
	SoundCrumble
)

var soundNames = [...]string{
	"flip", "hurt", "coin", "trinket", "newrecord", "checkpoint", "gravityline",
	"teleport", "terminaltouch", "rescue", "gamesaved", "disappear", "crumble",
}

func (s Sound) String() string {
	if s >= 0 && int(s) < len(soundNames) {
		return soundNames[s]
	}
	return "unknown"
}

// TileCollisionOracle answers static collision queries against the tile map.
// Coordinates are grid cells.
type TileCollisionOracle interface {
	Collide(gx, gy int, invincible bool) bool
	TowerSpikeCollide(gx, gy int) bool
}

// AudioSink plays sound effects. Calls are fire-and-forget.
type AudioSink interface {
	PlayEffect(s Sound)
}

// SpriteHitTester does pixel-exact sprite overlap tests.
type SpriteHitTester interface {
	Hit(frameA int, a core.Point, frameB int, b core.Point) bool
}

// ScriptRunner runs a named script requested by a trigger or activity zone.
type ScriptRunner interface {
	Run(w *World, name string) error
}

// Persistence commits saves and answers progress queries.
type Persistence interface {
	SaveCheckpoint(cp Checkpoint) error
	SaveStats(st Stats) error
	BestRank(trial int) int
	Unlocked(id int) bool
	BestGameDeaths() int
	GravitronBestRank() int
}

// Checkpoint is the resume record written when a checkpoint is touched.
type Checkpoint struct {
	SavePoint      int
	X, Y           int
	GravityControl int
	RoomX, RoomY   int
	Dir            int
}

// Stats are the lifetime counters saved alongside checkpoints.
type Stats struct {
	Trinkets int
	Flips    int
	Deaths   int
}

// Unlock ids queried through Persistence.Unlocked.
const (
	UnlockGameComplete     = 5
	UnlockFlipModeComplete = 19
	UnlockNoDeathComplete  = 20
)

// EmptyMap is a tile map with no solid cells.
type EmptyMap struct{}

func (EmptyMap) Collide(gx, gy int, invincible bool) bool { return false }
func (EmptyMap) TowerSpikeCollide(gx, gy int) bool        { return false }

// NopAudio discards every sound.
type NopAudio struct{}

func (NopAudio) PlayEffect(Sound) {}

// BoxHitTester treats every sprite as its full bounding box, so a hit test
// after a bounding-box overlap always succeeds.
type BoxHitTester struct{}

func (BoxHitTester) Hit(int, core.Point, int, core.Point) bool { return true }

// Mask is the solid pixels of one sprite frame, indexed [y][x].
type Mask [][]bool

// MaskHitTester compares per-frame solid masks. Frames without a mask never
// hit.
type MaskHitTester struct {
	Masks map[int]Mask
}

// Hit reports whether any solid pixel of frame A at a overlaps a solid pixel
// of frame B at b.
func (m MaskHitTester) Hit(frameA int, a core.Point, frameB int, b core.Point) bool {
	ma, ok := m.Masks[frameA]
	if !ok {
		return false
	}
	mb, ok := m.Masks[frameB]
	if !ok {
		return false
	}
	for y, row := range ma {
		by := a.Y + y - b.Y
		if by < 0 || by >= len(mb) {
			continue
		}
		for x, solid := range row {
			if !solid {
				continue
			}
			bx := a.X + x - b.X
			if bx >= 0 && bx < len(mb[by]) && mb[by][bx] {
				return true
			}
		}
	}
	return false
}

// NopPersistence saves nothing and reports no progress.
type NopPersistence struct{}

func (NopPersistence) SaveCheckpoint(Checkpoint) error { return nil }
func (NopPersistence) SaveStats(Stats) error           { return nil }
func (NopPersistence) BestRank(int) int                { return 0 }
func (NopPersistence) Unlocked(int) bool               { return false }
func (NopPersistence) BestGameDeaths() int             { return -1 }
func (NopPersistence) GravitronBestRank() int          { return 0 }
