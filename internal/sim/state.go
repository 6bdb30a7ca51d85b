package sim

import "github.com/vovakirdan/flipsim/internal/core"

// CollectSlots is the number of collectible and custom-crewmate flags.
const CollectSlots = 100

// Glitchrunner selects legacy physics quirks. None disables them.
type Glitchrunner int

const (
	GlitchrunnerNone Glitchrunner = iota
	Glitchrunner20
	Glitchrunner22
)

// Wave modes.
const (
	WaveClassic = 0
	WaveSuper   = 1
)

// State is the game-state register shared between the simulation and the
// surrounding game loop.
type State struct {
	GravityControl int // 1 when gravity points up
	DeathSeq       int // -1 when alive
	SCMHurt        bool
	TotalFlips     int
	Deaths         int
	StatTrinkets   int

	SavePoint int
	SaveX     int
	SaveY     int
	SaveGC    int
	SaveRX    int
	SaveRY    int
	SaveDir   int

	RoomX, RoomY int
	CustomMode   bool
	CustomGray   bool // gray warp zone tileset in a custom level
	NoDeathMode  bool
	InTimeTrial  bool
	Invincible   bool
	Glitchrunner Glitchrunner
	NoFlashing   bool

	SuperCrewmate bool
	SCMProgress   int

	Collect         [CollectSlots]bool
	CustomCollect   [CollectSlots]bool
	CustomCrewMoods [CollectSlots]bool

	// Requests for the game loop.
	StartScript    bool
	NewScript      string
	RequestedState int // -1 when nothing is requested
	ScriptRunning  bool

	Teleport      bool
	TeleportXPos  int
	EdTeleportEnt int
	ActiveTele    bool
	TeleBlock     core.Rect

	TrophyText int
	TrophyType int

	WarpX, WarpY      bool
	CustomWarpMode    bool
	CustomWarpModeVOn bool
	CustomWarpModeHOn bool
	VertPlatforms     bool
	HorPlatforms      bool

	PlatformTile       int
	CustomPlatformTile int
	CustomEnemy        int
	CustomScript       string

	// One-shot overrides consumed by the next CreateBlock.
	CustomActivityText      string
	CustomActivityColour    string
	CustomActivityPositionY int

	Wave Wave
}

// Wave is the gravitron wave generator state.
type Wave struct {
	Active        bool
	Mode          int
	State         int
	Delay         int
	Counter       int
	Toggle        int
	Offset        int
	Timer         int
	HomingTimer   int
	StartDeaths   int
	ColourState   int
	Practice      int
	RandDelay     bool
	Bidirectional bool
	PatternName   string
	Seen          map[int]bool
	Warnings      [][2]int
}

// NewState returns a register in its reset state.
func NewState() *State {
	s := &State{
		DeathSeq:                -1,
		RequestedState:          -1,
		CustomActivityPositionY: -1,
	}
	for i := range s.CustomCrewMoods {
		s.CustomCrewMoods[i] = true
	}
	s.Wave.Seen = make(map[int]bool)
	return s
}

// Trinkets counts collected trinkets and coins.
func (s *State) Trinkets() int {
	n := 0
	for _, c := range s.Collect {
		if c {
			n++
		}
	}
	return n
}

// RequestState asks the game loop to enter state n.
func (s *State) RequestState(n int) {
	s.RequestedState = n
}

// FlipGravity toggles gravity and counts the flip.
func (s *State) FlipGravity() {
	s.GravityControl = (s.GravityControl + 1) % 2
	s.TotalFlips++
}

// collectIndex converts a float parameter into a collect slot, reporting
// whether it is in range.
func collectIndex(p float64) (int, bool) {
	i := int(p)
	return i, i >= 0 && i < CollectSlots
}
