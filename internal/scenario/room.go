// Package scenario holds the playable rooms. Each room is a tile layout plus
// a population of entities and blocks built on a sim.World; the room maps
// player input onto the simulation and runs the death and respawn loop.
package scenario

import (
	"github.com/vovakirdan/flipsim/internal/config"
	"github.com/vovakirdan/flipsim/internal/core"
	"github.com/vovakirdan/flipsim/internal/registry"
	"github.com/vovakirdan/flipsim/internal/sim"
)

// Player control constants.
const (
	walkImpulse  = 3.0
	flipVelocity = 4.0
	flipAccel    = 3.0
	messageTicks = 90
)

// Spawn is where the player starts and respawns until a checkpoint is hit.
type Spawn struct {
	X, Y    int
	Gravity int // 1 starts on the ceiling
	Dir     int
}

// Definition describes a room.
type Definition struct {
	ID    string
	Title string

	Tiles        []string
	RoomX, RoomY int
	Start        Spawn
	// KeepInside stops the player at the room's left and right edges, for
	// rooms whose sides are open to enemies.
	KeepInside bool

	// Populate creates the room's entities and blocks. The player is added
	// afterwards.
	Populate func(w *sim.World)
	// OnRespawn runs after the player is put back at the save point.
	OnRespawn func(w *sim.World)
	// Done ends the run when it reports true.
	Done func(w *sim.World) bool
}

// Optional capabilities of the injected collaborators.
type (
	frameClock interface{ Advance() }
	messenger  interface{ Messages() []string }
	collector  interface{ MarkCollected(slot int) error }
)

// Room implements registry.Scenario for one Definition.
type Room struct {
	def   Definition
	env   registry.Env
	audio sim.AudioSink

	cfg   core.RuntimeConfig
	tiles *Tiles
	world *sim.World

	resume   *sim.Checkpoint
	restored []int

	collected    [sim.CollectSlots]bool
	dying        bool
	paused       bool
	gameOver     bool
	message      string
	messageTimer int
}

var _ registry.Scenario = (*Room)(nil)

// NewRoom creates a room; call Reset before stepping it.
func NewRoom(def Definition, env registry.Env) *Room {
	if env.Sim.Physics.Inertia == 0 {
		env.Sim = config.DefaultSimConfig()
	}
	audio := env.Audio
	if audio == nil {
		audio = sim.NopAudio{}
	}
	return &Room{def: def, env: env, audio: audio}
}

// ID returns the room's identifier.
func (r *Room) ID() string {
	return r.def.ID
}

// Title returns the room's display name.
func (r *Room) Title() string {
	return r.def.Title
}

// World exposes the simulation.
func (r *Room) World() *sim.World {
	return r.world
}

// Resume makes the next Reset start from a saved checkpoint with the given
// pickups already collected.
func (r *Room) Resume(cp sim.Checkpoint, collected []int) {
	r.resume = &cp
	r.restored = append([]int(nil), collected...)
}

// Reset rebuilds the room from its definition.
func (r *Room) Reset(cfg core.RuntimeConfig) {
	r.cfg = cfg
	r.tiles = ParseTiles(r.def.Tiles)

	opts := append(r.env.WorldOptions(cfg.Seed), sim.WithTiles(r.tiles))
	r.world = sim.NewWorld(r.env.Sim, opts...)

	st := r.world.State
	st.RoomX, st.RoomY = r.def.RoomX, r.def.RoomY
	for _, slot := range r.restored {
		if slot >= 0 && slot < sim.CollectSlots {
			st.Collect[slot] = true
		}
	}
	r.collected = st.Collect

	st.SaveX, st.SaveY = r.def.Start.X, r.def.Start.Y
	st.SaveGC, st.SaveDir = r.def.Start.Gravity, r.def.Start.Dir
	if cp := r.resume; cp != nil {
		st.SavePoint = cp.SavePoint
		st.SaveX, st.SaveY = cp.X, cp.Y
		st.SaveGC, st.SaveDir = cp.GravityControl, cp.Dir
	}

	r.tiles.SpikeBlocks(r.world)
	if r.def.Populate != nil {
		r.def.Populate(r.world)
	}
	r.world.CreateEntity(st.SaveX, st.SaveY, sim.KindPlayer)
	r.placePlayer()

	r.dying = false
	r.paused = false
	r.gameOver = false
	r.message = ""
	r.messageTimer = 0
}

// placePlayer puts the player at the save point, at rest.
func (r *Room) placePlayer() {
	st := r.world.State
	p, ok := r.world.Entity(r.world.Player())
	if !ok {
		return
	}
	x, y := float64(st.SaveX), float64(st.SaveY)
	p.X, p.Y = x, y
	p.OldX, p.OldY = x, y
	p.NewX, p.NewY = x, y
	p.VX, p.VY, p.AX, p.AY = 0, 0, 0, 0
	p.Dir = st.SaveDir
	st.GravityControl = st.SaveGC
}

// Step advances the room by one frame.
func (r *Room) Step(in core.InputFrame) core.StepResult {
	if r.gameOver {
		return r.result()
	}

	if in.Has(core.ActionPause) {
		r.paused = !r.paused
	}
	if r.paused {
		return r.result()
	}

	st := r.world.State
	if in.Has(core.ActionRestart) {
		r.respawn()
	}
	if st.DeathSeq == -1 {
		r.control(in)
	}

	deathSeq := st.DeathSeq
	r.world.Step()
	if r.dying {
		// Hazards touched while dying do not restart the sequence.
		st.DeathSeq = deathSeq
	}
	if c, ok := r.env.Audio.(frameClock); ok {
		c.Advance()
	}

	r.afterStep()
	return r.result()
}

// control maps input onto the player entity.
func (r *Room) control(in core.InputFrame) {
	w := r.world
	st := w.State
	p, ok := w.Entity(w.Player())
	if !ok {
		return
	}

	switch {
	case in.Has(core.ActionLeft):
		p.AX = -walkImpulse
		p.Dir = 0
	case in.Has(core.ActionRight):
		p.AX = walkImpulse
		p.Dir = 1
	}

	if in.Has(core.ActionFlip) {
		switch {
		case p.OnGround > 0 && st.GravityControl == 0:
			st.FlipGravity()
			p.VY, p.AY = -flipVelocity, -flipAccel
			r.audio.PlayEffect(sim.SoundFlip)
		case p.OnRoof > 0 && st.GravityControl == 1:
			st.FlipGravity()
			p.VY, p.AY = flipVelocity, flipAccel
			r.audio.PlayEffect(sim.SoundFlip)
		}
	}

	if in.Has(core.ActionConfirm) {
		if b, ok := w.Block(w.CheckActivity()); ok && b.Script != "" {
			st.StartScript = true
			st.NewScript = b.Script
		}
	}
}

func (r *Room) afterStep() {
	w := r.world
	st := w.State

	if st.DeathSeq > -1 {
		if !r.dying {
			r.dying = true
			st.Deaths++
			r.audio.PlayEffect(sim.SoundHurt)
		}
		st.DeathSeq--
		if st.DeathSeq <= 0 {
			r.respawn()
		}
	}

	switch st.RequestedState {
	case sim.StateTrinketCollected:
		r.say("You found a shiny trinket!")
	case sim.StateCrewmateRescued:
		r.say("Crewmate rescued!")
	case sim.StateTeleporterReached:
		r.say("Teleporter reached.")
		r.gameOver = true
	}
	st.RequestedState = -1

	r.syncCollected()

	if m, ok := r.env.Scripts.(messenger); ok {
		for _, msg := range m.Messages() {
			r.say(msg)
		}
	}
	if r.messageTimer > 0 {
		r.messageTimer--
		if r.messageTimer == 0 {
			r.message = ""
		}
	}

	if r.def.KeepInside {
		r.keepInside()
	}

	if r.def.Done != nil && r.def.Done(w) {
		r.gameOver = true
	}
}

func (r *Room) keepInside() {
	p, ok := r.world.Entity(r.world.Player())
	if !ok {
		return
	}
	minX := float64(-p.CX)
	maxX := float64(GridW*8 - p.CX - p.W)
	switch {
	case p.X < minX:
		p.X, p.VX = minX, 0
	case p.X > maxX:
		p.X, p.VX = maxX, 0
	}
}

// respawn returns the player to the save point.
func (r *Room) respawn() {
	st := r.world.State
	st.DeathSeq = -1
	r.dying = false
	r.placePlayer()
	if r.def.OnRespawn != nil {
		r.def.OnRespawn(r.world)
	}
}

// syncCollected stores pickups collected since the last frame.
func (r *Room) syncCollected() {
	st := r.world.State
	c, persist := r.env.Store.(collector)
	for slot, got := range st.Collect {
		if !got || r.collected[slot] {
			continue
		}
		r.collected[slot] = true
		if !persist {
			continue
		}
		if err := c.MarkCollected(slot); err != nil {
			r.world.Logger().Error("mark collected failed", "slot", slot, "err", err)
		}
	}
}

func (r *Room) say(msg string) {
	r.message = msg
	r.messageTimer = messageTicks
}

// Message returns the line currently shown to the player.
func (r *Room) Message() string {
	return r.message
}

// Dying reports whether the death sequence is playing.
func (r *Room) Dying() bool {
	return r.dying
}

func (r *Room) result() core.StepResult {
	snap := r.world.Snapshot()
	return core.StepResult{State: r.State(), Hash: snap.Hash()}
}

// State returns the current run state.
func (r *Room) State() core.GameState {
	st := r.world.State
	return core.GameState{
		Score:    st.Trinkets(),
		Deaths:   st.Deaths,
		Flips:    st.TotalFlips,
		GameOver: r.gameOver,
		Paused:   r.paused,
	}
}
