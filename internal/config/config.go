// Package config provides YAML-based simulation tables: physics constants,
// activity zones, per-room enemy styles and the gravitron wave data.
package config

// SimConfig contains every data table the simulation reads.
type SimConfig struct {
	Physics    PhysicsConfig          `yaml:"physics"`
	Activities map[int]ActivityConfig `yaml:"activities"`
	EnemyRooms []EnemyRoomConfig      `yaml:"enemy_rooms"`
	Gravitron  GravitronConfig        `yaml:"gravitron"`
}

// PhysicsConfig defines the motion integrator constants.
type PhysicsConfig struct {
	Inertia   float64 `yaml:"inertia"`    // Horizontal friction per frame
	FrictionY float64 `yaml:"friction_y"` // Vertical friction per frame
	Gravity   float64 `yaml:"gravity"`    // Magnitude of vertical acceleration
	MaxVX     float64 `yaml:"max_vx"`
	MaxVY     float64 `yaml:"max_vy"`
}

// ActivityConfig describes an activity zone selected by its trigger id.
type ActivityConfig struct {
	Prompt string `yaml:"prompt"`
	Script string `yaml:"script"`
	Colour string `yaml:"colour"`
}

// EnemyRoomConfig overrides the sprite of plain enemies created in one room.
type EnemyRoomConfig struct {
	RoomX   int    `yaml:"room_x"`
	RoomY   int    `yaml:"room_y"`
	Tile    int    `yaml:"tile"`
	Colour  string `yaml:"colour"`
	Animate int    `yaml:"animate"`
	Size    int    `yaml:"size"` // 0 keeps the default 16x16 box
	W       int    `yaml:"w"`
	H       int    `yaml:"h"`
}

// GravitronConfig holds both wave generator modes.
type GravitronConfig struct {
	Classic  ClassicConfig    `yaml:"classic"`
	Weights  RarityWeights    `yaml:"weights"`
	Tiers    map[string][]int `yaml:"tiers"`
	Patterns []PatternConfig  `yaml:"patterns"`
}

// ClassicConfig drives the timer-based mode.
type ClassicConfig struct {
	Speed      int            `yaml:"speed"`
	Schedule   []ScheduleStep `yaml:"schedule"`
	Fallback   ScheduleStep   `yaml:"fallback"`
	DeathBumps []DeathBump    `yaml:"death_bumps"`
}

// ScheduleStep picks a wave shape while the survival timer is <= Until.
// Alternate adds the generator's alternating counter to State.
type ScheduleStep struct {
	Until     int  `yaml:"until"`
	State     int  `yaml:"state"`
	Delay     int  `yaml:"delay"`
	Alternate bool `yaml:"alternate"`
}

// DeathBump adds Add frames of delay once recent deaths exceed Over.
type DeathBump struct {
	Over int `yaml:"over"`
	Add  int `yaml:"add"`
}

// RarityWeights are the relative odds of each pattern tier.
type RarityWeights struct {
	Common   int `yaml:"common"`
	Standard int `yaml:"standard"`
	Unusual  int `yaml:"unusual"`
	Rare     int `yaml:"rare"`
	Exotic   int `yaml:"exotic"`
}

// PatternConfig is one scripted super-gravitron wave.
//
// The pattern counter starts at 0 when the pattern is chosen. While it is
// below Warmup the wall warnings blink every 15 ticks. When it equals Warmup
// the spawns are created. Events fire on matching counter values, and once
// the counter reaches End the generator returns to the decision state with
// Delay frames of rest.
type PatternConfig struct {
	ID          int            `yaml:"id"`
	Name        string         `yaml:"name"`
	Tier        string         `yaml:"tier"`
	Warmup      int            `yaml:"warmup"`
	End         int            `yaml:"end"`
	Delay       int            `yaml:"delay"`
	HomingTimer int            `yaml:"homing_timer"`
	Warnings    [][2]int       `yaml:"warnings"`
	AltWarnings [][2]int       `yaml:"alt_warnings"`
	Scatter     *ScatterConfig `yaml:"scatter"`
	Events      []EventConfig  `yaml:"events"`
	Spawns      []SpawnConfig  `yaml:"spawns"`
}

// SpawnConfig places one gravitron enemy. Alt replaces it when the wave is
// not bidirectional.
type SpawnConfig struct {
	Row   int          `yaml:"row"`
	Dir   int          `yaml:"dir"`
	XOff  int          `yaml:"xoff"`
	YOff  int          `yaml:"yoff"`
	Speed int          `yaml:"speed"`
	ID    int          `yaml:"id"`
	Alt   *SpawnConfig `yaml:"alt"`
}

// ScatterConfig generates random stalactite/stalagmite columns.
type ScatterConfig struct {
	Columns   int `yaml:"columns"`
	Step      int `yaml:"step"`
	MinHeight int `yaml:"min_height"`
	MaxHeight int `yaml:"max_height"`
	Speed     int `yaml:"speed"`
}

// EventConfig is a timed group mutation. It fires when the counter equals
// At, or when Every > 0 and From <= counter <= Until with
// counter%Every == Offset.
type EventConfig struct {
	Op      string `yaml:"op"`
	At      *int   `yaml:"at"`
	From    int    `yaml:"from"`
	Until   int    `yaml:"until"`
	Every   int    `yaml:"every"`
	Offset  int    `yaml:"offset"`
	IDs     []int  `yaml:"ids"`
	SwapIDs []int  `yaml:"swap_ids"`
	Speed   int    `yaml:"speed"`
	Amount  int    `yaml:"amount"`
	Delays  []int  `yaml:"delays"`
}

// Matches reports whether the event fires on counter value c.
func (e EventConfig) Matches(c int) bool {
	if e.At != nil {
		return *e.At == c
	}
	if e.Every <= 0 || c < e.From || c > e.Until {
		return false
	}
	return c%e.Every == e.Offset
}

// Pattern returns the pattern with the given id.
func (g GravitronConfig) Pattern(id int) (PatternConfig, bool) {
	for _, p := range g.Patterns {
		if p.ID == id {
			return p, true
		}
	}
	return PatternConfig{}, false
}
