// Package sim is the per-frame entity and block simulation: the entity and
// block stores, motion integration, wall resolution against blocks and the
// tile map, entity collision dispatch, and the per-type behavior and
// animation state machines.
//
// A World owns all of it. Collaborators outside the simulation (tile map,
// audio, sprite hit tests, scripts, persistence) are injected as interfaces.
package sim

import (
	"github.com/vovakirdan/flipsim/internal/core"
)

// EntityType tags what an entity is.
type EntityType int

const (
	TypeInvalid EntityType = iota
	TypePlayer
	TypeMoving
	TypeDisappearingPlatform
	TypeQuicksand
	TypeGravityToken
	TypeParticle
	TypeCoin
	TypeTrinket
	TypeCheckpoint
	TypeHorizontalGravityLine
	TypeVerticalGravityLine
	TypeWarpToken
	TypeCrewmate
	TypeTerminal
	TypeSuperCrewmate
	TypeTrophy
	TypeGravitronEnemy
	TypeWarpLineLeft
	TypeWarpLineRight
	TypeWarpLineTop
	TypeWarpLineBottom
	TypeCollectableCrewmate
	TypeTeleporter
)

var typeNames = map[EntityType]string{
	TypeInvalid:               "invalid",
	TypePlayer:                "player",
	TypeMoving:                "moving",
	TypeDisappearingPlatform:  "disappearing_platform",
	TypeQuicksand:             "quicksand",
	TypeGravityToken:          "gravity_token",
	TypeParticle:              "particle",
	TypeCoin:                  "coin",
	TypeTrinket:               "trinket",
	TypeCheckpoint:            "checkpoint",
	TypeHorizontalGravityLine: "horizontal_gravity_line",
	TypeVerticalGravityLine:   "vertical_gravity_line",
	TypeWarpToken:             "warp_token",
	TypeCrewmate:              "crewmate",
	TypeTerminal:              "terminal",
	TypeSuperCrewmate:         "super_crewmate",
	TypeTrophy:                "trophy",
	TypeGravitronEnemy:        "gravitron_enemy",
	TypeWarpLineLeft:          "warp_line_left",
	TypeWarpLineRight:         "warp_line_right",
	TypeWarpLineTop:           "warp_line_top",
	TypeWarpLineBottom:        "warp_line_bottom",
	TypeCollectableCrewmate:   "collectable_crewmate",
	TypeTeleporter:            "teleporter",
}

func (t EntityType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Interaction rules. Rule 6 doubles as the crumbling-block rule and rule 7
// as the horizontal warp line rule in the collision dispatcher.
const (
	RulePlayer       = 0
	RuleHarmful      = 1
	RulePlatform     = 2
	RuleTouch        = 3
	RuleHLine        = 4
	RuleVLine        = 5
	RuleCrew         = 6
	RuleCrewInverted = 7
)

// Kind selects a factory recipe in CreateEntity.
type Kind int

const (
	KindPlayer               Kind = 0
	KindEnemy                Kind = 1
	KindMovingPlatform       Kind = 2
	KindDisappearingPlatform Kind = 3
	KindBreakableBlock       Kind = 4
	KindGravityToken         Kind = 5
	KindParticleRed          Kind = 6
	KindParticleCyan         Kind = 7
	KindCoin                 Kind = 8
	KindTrinket              Kind = 9
	KindCheckpoint           Kind = 10
	KindHorizontalLine       Kind = 11
	KindVerticalLine         Kind = 12
	KindWarpToken            Kind = 13
	KindTeleporter           Kind = 14
	KindCrewGreen            Kind = 15
	KindCrewYellow           Kind = 16
	KindCrewBlue             Kind = 17
	KindCrewScripted         Kind = 18
	KindCrewRed              Kind = 19
	KindTerminal             Kind = 20
	KindTerminalQuiet        Kind = 21
	KindFakeTrinket          Kind = 22
	KindGravitronEnemy       Kind = 23
	KindSuperCrewmate        Kind = 24
	KindTrophy               Kind = 25
	KindSuperWarpToken       Kind = 26
	KindWarpLineLeft         Kind = 51
	KindWarpLineRight        Kind = 52
	KindWarpLineTop          Kind = 53
	KindWarpLineBottom       Kind = 54
	KindCollectableCrewmate  Kind = 55
	KindCustomEnemy          Kind = 56
	KindTeleporterStub       Kind = 100
)

// Sizes used by collision and rendering.
const (
	SizeSprite      = 0
	SizeTile        = 1
	SizePlatform    = 2
	SizeParticle    = 3
	SizeCoin        = 4
	SizeHLine       = 5
	SizeVLine       = 6
	SizeTeleporter  = 7
	SizeTreadmill   = 8
	SizeBigSprite   = 9
	SizeCloud       = 10
	SizeGravitron   = 12
	SizeLargeTrophy = 13
)

// Entity is one dynamic game object.
type Entity struct {
	Type EntityType
	Rule int
	Size int

	Behave     int
	State      int
	Animate    int
	StateDelay int
	FrameDelay int

	X, Y           float64
	NewX, NewY     float64
	OldX, OldY     float64
	LerpOldX       float64
	LerpOldY       float64
	CX, CY, W, H   int
	VX, VY         float64
	AX, AY         float64
	Gravity        bool
	Para           float64
	Colour         Colour
	Tile           int
	DrawFrame      int
	WalkingFrame   int
	ActionFrame    int
	Dir            int
	Life           int
	ID             int
	Timer          int
	Freeze         bool
	Reverse        bool
	Despawn        bool
	Harmful        bool
	Invis          bool
	IsPlatform     bool
	OnEntity       int
	OnWall         int
	OnXWall        int
	OnYWall        int
	OnGround       int
	OnRoof         int
	VisualOnGround int
	VisualOnRoof   int
	X1, Y1, X2, Y2 int

	// Collision frame state, advanced separately from the visual frame.
	CollisionDrawFrame    int
	CollisionWalkingFrame int
	CollisionFrameDelay   int
}

// newEntity returns an entity with the reset defaults every recipe starts
// from: a 16x16 box bounded by the 320x240 room.
func newEntity(x, y float64) Entity {
	return Entity{
		X: x, Y: y,
		W: 16, H: 16,
		X2: 320, Y2: 240,
	}
}

// Box returns the collision rectangle at the current position.
func (e *Entity) Box() core.Rect {
	return e.BoxAt(e.X, e.Y)
}

// BoxAt returns the collision rectangle as if the entity stood at (x, y).
func (e *Entity) BoxAt(x, y float64) core.Rect {
	return core.NewRect(int(x+float64(e.CX)), int(y+float64(e.CY)), e.W, e.H)
}

// IsHumanoid reports whether the entity walks and uses collision frames.
func (e *Entity) IsHumanoid() bool {
	switch e.Type {
	case TypePlayer, TypeCrewmate, TypeSuperCrewmate, TypeCollectableCrewmate:
		return true
	}
	return false
}

// Outside reports whether the entity has left its bounce bounds, clamping
// it back inside when it has.
func (e *Entity) Outside() bool {
	switch {
	case e.X < float64(e.X1):
		e.X = float64(e.X1)
	case e.Y < float64(e.Y1):
		e.Y = float64(e.Y1)
	case e.X+float64(e.W) > float64(e.X2):
		e.X = float64(e.X2 - e.W)
	case e.Y+float64(e.H) > float64(e.Y2):
		e.Y = float64(e.Y2 - e.H)
	default:
		return false
	}
	return true
}

// BlockType is the kind of a block overlay.
type BlockType int

const (
	BlockSolid BlockType = iota
	BlockTrigger
	BlockDamage
	BlockDirectional
	BlockSafe
	BlockActivity
)

func (t BlockType) String() string {
	switch t {
	case BlockSolid:
		return "block"
	case BlockTrigger:
		return "trigger"
	case BlockDamage:
		return "damage"
	case BlockDirectional:
		return "directional"
	case BlockSafe:
		return "safe"
	case BlockActivity:
		return "activity"
	default:
		return "unknown"
	}
}

// Directional block sides, stored in Block.Trigger.
const (
	DirBlocksDown  = 0
	DirBlocksUp    = 1
	DirBlocksRight = 2
	DirBlocksLeft  = 3
)

// Block is a static rectangle overlaid on the tile grid.
//
// Solid and safe blocks are anchored at (X, Y) so a moving platform can find
// its companion block by coordinate. Other block types only have a Rect.
type Block struct {
	Type      BlockType
	X, Y      int
	Anchored  bool
	Rect      core.Rect
	Trigger   int
	Script    string
	Prompt    string
	GetText   bool
	Colour    string
	ActivityY int
}
