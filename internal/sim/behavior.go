package sim

import "github.com/vovakirdan/flipsim/internal/core"

// Requested game states.
const (
	StateTrinketCollected  = 1000
	StateCrewmateRescued   = 1010
	StateTeleporterReached = 2000
)

// follow thresholds: turn to face a target beyond turnRange and walk toward
// it beyond walkRange.
const (
	turnRange = 5
	walkRange = 45
	walkForce = 3
)

// UpdateEntity runs one behavior step for entity i and reports whether the
// entity is gone afterwards. Out-of-range indices count as gone.
func (w *World) UpdateEntity(i int) bool {
	return w.updateEntity(i)
}

func (w *World) updateEntity(i int) bool {
	e, ok := w.entities.Get(i)
	if !ok {
		w.log.Warn("update entity out of range", "index", i)
		return true
	}

	if e.StateDelay > 0 {
		e.StateDelay--
		return false
	}

	switch e.Type {
	case TypeMoving:
		return w.updateMoving(i, e)
	case TypeDisappearingPlatform:
		w.updateDisappearing(e)
	case TypeQuicksand:
		return w.updateQuicksand(i, e)
	case TypeGravityToken:
		if e.State == 1 {
			w.State.FlipGravity()
			return w.disable(i)
		}
	case TypeParticle:
		if e.State == 0 {
			e.Life--
			if e.Life < 0 {
				return w.disable(i)
			}
		}
	case TypeCoin:
		if e.State == 1 {
			w.playEffect(SoundCoin)
			if c, ok := collectIndex(e.Para); ok {
				w.State.Collect[c] = true
			}
			return w.disable(i)
		}
	case TypeTrinket:
		if e.State == 1 {
			w.collectTrinket(e)
			return w.disable(i)
		}
	case TypeCheckpoint:
		if e.State == 1 {
			w.activateCheckpoint(e)
		}
	case TypeHorizontalGravityLine:
		if e.State == 1 {
			e.Life--
			e.OnEntity = 0
			if e.Life <= 0 {
				e.State = 0
				e.OnEntity = 1
			}
		}
	case TypeVerticalGravityLine:
		w.updateVerticalLine(e)
	case TypeWarpToken:
		if e.State == 1 {
			w.enterWarpToken(i, e)
		}
	case TypeCrewmate:
		w.updateCrewmate(e)
	case TypeTerminal:
		if e.State == 1 {
			e.Colour = ColourActiveEntity
			e.OnEntity = 0
			w.playEffect(SoundTerminalTouch)
			e.State = 0
		}
	case TypeSuperCrewmate:
		if e.State == 0 {
			return w.updateSuperCrewmate(i, e)
		}
	case TypeTrophy:
		if e.State == 1 {
			if !w.State.ScriptRunning {
				w.State.TrophyText += 2
			}
			if w.State.TrophyText > 30 {
				w.State.TrophyText = 30
			}
			w.State.TrophyType = int(e.Para)
			e.State = 0
		}
	case TypeGravitronEnemy:
		return w.updateGravitronEnemy(i, e)
	case TypeWarpLineLeft, TypeWarpLineRight:
		w.updateWarpLine(e, &w.State.CustomWarpModeVOn, true)
	case TypeWarpLineTop, TypeWarpLineBottom:
		w.updateWarpLine(e, &w.State.CustomWarpModeHOn, false)
	case TypeCollectableCrewmate:
		return w.updateCollectableCrewmate(i, e)
	case TypeTeleporter:
		w.updateTeleporter(e)
	}
	return false
}

// bounce handles the shared states 1 to 3 of the bouncing enemies: wait in
// state 1 until the bounds are left, then states 2 and 3 launch in the
// directions given by vel2 and vel3.
func bounce(e *Entity, horizontal bool, vel2, vel3 float64) {
	set := func(v float64) {
		if horizontal {
			e.VX = v
		} else {
			e.VY = v
		}
	}
	switch e.State {
	case 1:
		if e.Outside() {
			e.State = e.OnWall
		}
	case 2:
		set(vel2)
		e.OnWall = 3
		e.State = 1
	case 3:
		set(vel3)
		e.OnWall = 2
		e.State = 1
	}
}

func (w *World) updateMoving(i int, e *Entity) bool {
	p := e.Para
	switch e.Behave {
	case 0, 1:
		// State 0 picks the launch state and runs it in the same frame.
		if e.State == 0 {
			e.State = 3
			if e.Behave == 1 {
				e.State = 2
			}
		}
		bounce(e, false, -p, p)
	case 2, 3:
		if e.State == 0 {
			e.State = 3
		}
		if e.Behave == 2 {
			bounce(e, true, p, -p)
		} else {
			bounce(e, true, -p, p)
		}
	case 4:
		if e.State == 0 {
			e.VX = p
		}
	case 5:
		switch e.State {
		case 0:
			e.VX = float64(int(p))
			e.State = 1
			e.OnWall = 2
		case 2:
			e.VX = 0
			e.OnWall = 0
			e.X -= float64(int(p))
			e.StateDelay = 8
			e.State = 0
		}
	case 6:
		switch e.State {
		case 0:
			e.VY = float64(int(p))
			e.State = 1
			e.OnWall = 2
		case 2:
			e.VY = float64(int(-p))
			e.OnWall = 0
			e.Y -= p
			e.StateDelay = 8
			e.State = 0
		}
	case 7:
		if e.State == 0 {
			e.VX = float64(int(p))
		}
	case 8, 9:
		if e.State == 0 {
			e.VX = 0
			e.State = 1
			e.OnWall = 0
		}
	case 10:
		return w.emit(i, e, 28, 10, 12)
	case 11:
		switch e.State {
		case 0:
			e.VX = p
			e.State = 1
		case 1:
			if e.X >= 335 {
				return w.disable(i)
			}
			if w.State.RoomX == 117 && e.X >= 33*8-32 {
				return w.disable(i)
			}
		}
	case 12:
		return w.emit(i, e, 0, 12, 16)
	case 13:
		switch e.State {
		case 0:
			e.VY = p
			e.State = 1
		case 1:
			if e.Y <= -60 {
				return w.disable(i)
			}
			if w.State.RoomX == 113 && w.State.RoomY == 108 && e.Y <= 60 {
				return w.disable(i)
			}
		}
	case 14, 15:
		if e.State == 0 {
			w.waitForPlatform(e)
		}
		if e.Behave == 14 {
			bounce(e, true, p, -p)
		} else {
			bounce(e, true, -p, p)
		}
	case 16:
		if e.State == 0 {
			w.launchMaverick(e)
		}
		bounce(e, true, float64(int(p)), float64(int(-p)))
	case 17, 18:
		if e.State == 0 {
			step := float64(int(p))
			if e.Behave == 17 {
				step = -step
			}
			e.StateDelay = 6
			e.X += step
			e.LerpOldX += step
		}
	}
	return false
}

// emit spawns a projectile from an emitter and rests for delay frames.
func (w *World) emit(i int, e *Entity, dx, behave, delay int) bool {
	switch e.State {
	case 0:
		x, y := int(e.X)+dx, int(e.Y)
		w.CreateEntity(x, y, KindEnemy, behave, 1)
		// The arena may have grown.
		e, _ = w.entities.Get(i)
		e.State = 1
		e.StateDelay = delay
	case 1:
		e.State = 0
	}
	return false
}

// waitForPlatform holds a behave 14/15 enemy in state 0 until the
// disappearing platform beside it has vanished.
func (w *World) waitForPlatform(e *Entity) {
	side := -32.0
	if e.Behave == 15 {
		side = 32
	}
	x := e.X + side
	triggered := false
	w.entities.Each(func(_ int, o *Entity) bool {
		if o.Type == TypeDisappearingPlatform && o.State == 3 && o.X == x {
			triggered = true
			return false
		}
		return true
	})
	if triggered {
		e.State = 3
	}
}

// launchMaverick places the bus on the side and level away from the player.
func (w *World) launchMaverick(e *Entity) {
	player, ok := w.entities.Get(w.Player())

	if ok && player.Y > 14*8 {
		e.Tile = 120
		e.Y = 28*8 - 62
	} else {
		e.Tile = 96
		e.Y = 24
	}
	e.LerpOldY = e.Y

	if ok && player.X > 20*8 {
		e.X = -64
		e.State = 2
	} else {
		e.X = 320
		e.State = 3
	}
	e.LerpOldX = e.X
}

func (w *World) updateDisappearing(e *Entity) {
	switch e.State {
	case 1:
		e.Life = 12
		e.State = 2
		e.OnEntity = 0
		w.playEffect(SoundDisappear)
	case 2:
		e.Life--
		if e.Life%3 == 0 {
			e.WalkingFrame++
		}
		if e.Life <= 0 {
			w.DisableBlockAt(int(e.X), int(e.Y))
			e.State = 3
			e.Invis = true
		}
	case 4:
		w.CreateBlock(BlockSolid, int(e.X), int(e.Y), 32, 8, 0, "", false)
		e.Invis = false
		e.WalkingFrame--
		e.State = 5
		e.OnEntity = 1
	case 5:
		e.Life += 3
		if e.Life%3 == 0 {
			e.WalkingFrame--
		}
		if e.Life >= 12 {
			e.Life = 12
			e.State = 0
			e.WalkingFrame++
		}
	}
}

func (w *World) updateQuicksand(i int, e *Entity) bool {
	switch e.State {
	case 1:
		e.Life = 4
		e.State = 2
		e.OnEntity = 0
		w.playEffect(SoundCrumble)
	case 2:
		e.Life--
		e.Tile++
		if e.Life <= 0 {
			w.DisableBlockAt(int(e.X), int(e.Y))
			return w.disable(i)
		}
	}
	return false
}

func (w *World) collectTrinket(e *Entity) {
	st := w.State
	if c, ok := collectIndex(e.Para); ok {
		st.Collect[c] = true
	}
	if st.InTimeTrial {
		w.playEffect(SoundNewRecord)
		return
	}
	st.RequestState(StateTrinketCollected)
	w.playEffect(SoundTrinket)
	if n := st.Trinkets(); n > st.StatTrinkets && !st.CustomMode {
		st.StatTrinkets = n
		w.saveStats()
	}
}

func (w *World) saveStats() {
	st := w.State
	err := w.store.SaveStats(Stats{
		Trinkets: st.StatTrinkets,
		Flips:    st.TotalFlips,
		Deaths:   st.Deaths,
	})
	if err != nil {
		w.log.Error("save stats failed", "err", err)
	}
}

// deactivateCheckpoints turns every checkpoint back on.
func (w *World) deactivateCheckpoints() {
	w.entities.Each(func(_ int, o *Entity) bool {
		if o.Type == TypeCheckpoint {
			o.Colour = ColourInactiveEntity
			o.OnEntity = 1
		}
		return true
	})
}

func (w *World) activateCheckpoint(e *Entity) {
	st := w.State
	w.deactivateCheckpoints()
	e.Colour = ColourActiveEntity
	e.OnEntity = 0
	st.SavePoint = int(e.Para)
	w.playEffect(SoundCheckpoint)

	st.SaveX = int(e.X) - 4
	switch e.Tile {
	case 20:
		st.SaveY = int(e.Y) - 2
		st.SaveGC = 1
	case 21:
		st.SaveY = int(e.Y) - 7
		st.SaveGC = 0
	}
	st.SaveRX, st.SaveRY = st.RoomX, st.RoomY
	if p, ok := w.entities.Get(w.Player()); ok {
		st.SaveDir = p.Dir
	}
	e.State = 0

	err := w.store.SaveCheckpoint(Checkpoint{
		SavePoint:      st.SavePoint,
		X:              st.SaveX,
		Y:              st.SaveY,
		GravityControl: st.SaveGC,
		RoomX:          st.SaveRX,
		RoomY:          st.SaveRY,
		Dir:            st.SaveDir,
	})
	if err != nil {
		w.log.Error("save checkpoint failed", "savepoint", st.SavePoint, "err", err)
	}
}

func (w *World) updateVerticalLine(e *Entity) {
	switch e.State {
	case 1:
		e.OnEntity = 3
		e.State = 2
		w.playEffect(SoundGravityLine)
		w.State.FlipGravity()
		if p, ok := w.entities.Get(w.Player()); ok {
			if w.State.GravityControl == 0 {
				if p.VY < 3 {
					p.VY = 3
				}
			} else if p.VY > -3 {
				p.VY = -3
			}
		}
	case 2:
		e.Life--
		if e.Life <= 0 {
			e.State = 0
			e.OnEntity = 1
		}
	case 3:
		e.State = 2
		e.Life = 4
		e.OnEntity = 3
	case 4:
		// Room load: arm without flipping.
		e.OnEntity = 3
		e.State = 2
	}
}

func (w *World) enterWarpToken(i int, e *Entity) {
	st := w.State
	e.OnEntity = 0
	w.playEffect(SoundTeleport)
	st.Teleport = true
	st.EdTeleportEnt = i
	switch int(e.X) {
	case 12 * 8:
		st.TeleportXPos = 1
	case 5 * 8:
		st.TeleportXPos = 2
	case 28 * 8:
		st.TeleportXPos = 3
	case 21 * 8:
		st.TeleportXPos = 4
	}
}

// follow turns e toward x and pushes it there when far enough away.
func follow(e *Entity, x float64) {
	switch {
	case x > e.X+turnRange:
		e.Dir = 1
	case x < e.X-turnRange:
		e.Dir = 0
	}
	switch {
	case x > e.X+walkRange:
		e.AX = walkForce
	case x < e.X-walkRange:
		e.AX = -walkForce
	}
}

// face turns e toward x without moving it.
func face(e *Entity, x float64) {
	switch {
	case x > e.X+turnRange:
		e.Dir = 1
	case x < e.X-turnRange:
		e.Dir = 0
	}
}

// crewTargets maps the cutscene follow states to the crewmate they follow.
var crewTargets = map[int]Colour{
	11: ColourCrewPurple,
	12: ColourCrewYellow,
	13: ColourCrewRed,
	14: ColourCrewGreen,
	15: ColourCrewBlue,
}

// crewTarget resolves the x position a crewmate in state s walks toward.
func (w *World) crewTarget(e *Entity) (float64, bool) {
	switch e.State {
	case 1, 2, 10:
		if p, ok := w.entities.Get(w.Player()); ok {
			return p.X, true
		}
	case 11, 12, 13, 14, 15:
		if c, ok := w.entities.Get(w.Crewman(crewTargets[e.State])); ok {
			return c.X, true
		}
	case 16:
		return e.Para, true
	}
	return 0, false
}

func (w *World) updateCrewmate(e *Entity) {
	switch e.State {
	case 1, 2, 10, 11, 12, 13, 14, 15, 16:
		if e.State == 1 {
			// Happy face.
			switch e.Rule {
			case RuleCrew:
				e.Tile = 0
			case RuleCrewInverted:
				e.Tile = 6
			}
		}
		if x, ok := w.crewTarget(e); ok {
			follow(e, x)
		}
		st := w.State
		if e.State == 1 && st.RoomX == 110 && st.RoomY == 105 && !st.CustomMode {
			if e.X < 155 && e.AX < 0 {
				e.AX = 0
			}
		}
	case 18:
		if p, ok := w.entities.Get(w.Player()); ok {
			face(e, p.X)
		}
	case 19:
		if e.Para <= 0 {
			e.Dir = 1
			e.AX = walkForce
		} else {
			e.Para--
		}
	case 20:
		w.pace(e)
	}
}

// pace walks a crewmate between x=40 and x=280 with short pauses. Life
// holds the phase: 0 walk left, 1 rest, 2 walk right, 3 rest.
func (w *World) pace(e *Entity) {
	walk := func(x float64, next int) {
		e.AX = 0
		follow(e, x)
		if e.AX == 0 {
			e.Life = next
			e.Para = 30
		}
	}
	rest := func(next int) {
		e.Para--
		if e.Para <= 0 {
			e.Life = next
		}
	}
	switch e.Life {
	case 0:
		walk(40, 1)
	case 1:
		rest(2)
	case 2:
		walk(280, 3)
	case 3:
		rest(0)
	}
}

func (w *World) updateSuperCrewmate(i int, e *Entity) bool {
	p, ok := w.entities.Get(w.Player())
	if ok && p.OnGround > 0 {
		switch {
		case p.X > e.X+turnRange:
			e.Dir = 1
		case p.X > 15 && p.X < e.X-turnRange:
			e.Dir = 0
		}
		switch {
		case p.X > e.X+walkRange:
			e.AX = walkForce
		case p.X < e.X-walkRange:
			e.AX = -walkForce
		}
		if e.AX < 0 && e.X < 60 {
			e.AX = 0
		}
	} else {
		if ok {
			face(e, p.X)
		}
		e.AX = 0
	}

	if e.X > 240 {
		e.AX = walkForce
		e.Dir = 1
	}
	if e.X >= 310 {
		w.State.SCMProgress++
		return w.disable(i)
	}
	return false
}

// sign is -1 for a reversed gravitron enemy and 1 otherwise.
func (e *Entity) sign() float64 {
	if e.Reverse {
		return -1
	}
	return 1
}

func (w *World) updateGravitronEnemy(i int, e *Entity) bool {
	wave := &w.State.Wave
	if wave.State == 0 && wave.Delay == 0 {
		e.Despawn = true
	}
	if e.State != 0 {
		return false
	}

	offscreen := e.X < -20 || e.X > 324
	speed := e.Para * e.sign()
	if e.Freeze {
		speed = 0
	}

	switch e.Behave {
	case 0:
		e.VX = speed
		if e.Despawn && offscreen {
			return w.disable(i)
		}
	case 1:
		e.VX = -speed
		if e.Despawn && offscreen {
			return w.disable(i)
		}
	case 2:
		if e.Despawn {
			return w.disable(i)
		}
	case 3:
		w.home(e)
		if e.Timer-wave.Timer == 0 {
			return w.disable(i)
		}
	}
	return false
}

// home steers a homing enemy one unit per frame toward the player.
func (w *World) home(e *Entity) {
	if e.Freeze {
		e.VX, e.VY = 0, 0
		return
	}
	p, ok := w.entities.Get(w.Player())
	if !ok {
		return
	}
	s := e.sign()
	limit := e.Para * s
	if e.X < p.X {
		if e.VX != limit {
			e.VX += s
		}
	} else if e.VX != -limit {
		e.VX -= s
	}
	if e.Y < p.Y {
		if e.VY != limit {
			e.VY += s
		}
	} else if e.VY != -limit {
		e.VY -= s
	}
}

// updateWarpLine latches the custom warp flag while the player crosses a
// warp line. Vertical lines release once the player is back on screen.
func (w *World) updateWarpLine(e *Entity, on *bool, vertical bool) {
	switch e.State {
	case 1:
		e.State = 2
		e.StateDelay = 2
		e.OnEntity = 1
		*on = true
	case 2:
		if vertical {
			p, ok := w.entities.Get(w.Player())
			if !ok || p.X > 307 {
				return
			}
		}
		*on = false
		e.State = 0
	}
}

func (w *World) updateCollectableCrewmate(i int, e *Entity) bool {
	st := w.State
	switch e.State {
	case 0:
		if p, ok := w.entities.Get(w.Player()); ok {
			face(e, p.X)
		}
	case 1:
		if c, ok := collectIndex(e.Para); ok {
			st.CustomCollect[c] = true
		}
		if !st.InTimeTrial {
			st.RequestState(StateCrewmateRescued)
		}
		w.playEffect(SoundRescue)
		return w.disable(i)
	}
	return false
}

func (w *World) teleportZone(e *Entity) {
	w.State.ActiveTele = true
	w.State.TeleBlock = core.NewRect(int(e.X)-32, int(e.Y)-32, 160, 160)
}

func (w *World) updateTeleporter(e *Entity) {
	st := w.State
	switch e.State {
	case 1:
		if e.Tile == 1 {
			w.playEffect(SoundGameSaved)
			e.Tile = 2
			e.Colour = ColourTeleporterActive
			if !st.InTimeTrial && !st.NoDeathMode {
				st.RequestState(StateTeleporterReached)
			}
			w.teleportZone(e)

			w.deactivateCheckpoints()
			st.SavePoint = int(e.Para)
			st.SaveX = int(e.X) + 44
			st.SaveY = int(e.Y) + 44
			st.SaveGC = 0
			st.SaveRX, st.SaveRY = st.RoomX, st.RoomY
			if p, ok := w.entities.Get(w.Player()); ok {
				st.SaveDir = p.Dir
			}
		}
		e.OnEntity = 0
		e.State = 0
	case 2:
		// Room load: show the active teleporter without saving.
		e.OnEntity = 0
		e.Tile = 6
		e.Colour = ColourTeleporterFlashing
		w.teleportZone(e)
		e.State = 0
	}
}
