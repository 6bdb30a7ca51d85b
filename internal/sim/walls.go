package sim

import (
	"github.com/vovakirdan/flipsim/internal/core"
)

// noPlatform is returned by the platform velocity queries when nothing
// carries the entity.
const noPlatform = -1000

// wallProbe describes one wall test: the motion that decides which
// directional blocks apply, the entity rule for safe blocks and which block
// kinds are considered at all.
type wallProbe struct {
	dx, dy        float64
	rule          int
	withBlocks    bool
	skipDirBlocks bool
}

// checkBlocks reports whether r overlaps a block that stops the probe.
func (w *World) checkBlocks(r core.Rect, p wallProbe) bool {
	hit := false
	w.blocks.Each(func(_ int, b *Block) bool {
		if !b.Rect.Intersects(r) {
			return true
		}
		switch b.Type {
		case BlockSolid:
			hit = true
		case BlockSafe:
			hit = p.rule == RuleHarmful
		case BlockDirectional:
			if p.skipDirBlocks {
				return true
			}
			switch b.Trigger {
			case DirBlocksDown:
				hit = p.dy > 0
			case DirBlocksUp:
				hit = p.dy <= 0
			case DirBlocksRight:
				hit = p.dx > 0
			case DirBlocksLeft:
				hit = p.dx <= 0
			}
		}
		return !hit
	})
	return hit
}

// checkWall reports whether r is blocked by blocks (when the probe asks for
// them) or by the tile map.
func (w *World) checkWall(invincible bool, r core.Rect, p wallProbe) bool {
	if p.withBlocks && w.checkBlocks(r, p) {
		return true
	}
	return core.ProbeEdges(r, func(gx, gy int) bool {
		return w.tiles.Collide(gx, gy, invincible)
	})
}

// checkWallDefault is checkWall with every block kind and no motion.
func (w *World) checkWallDefault(invincible bool, r core.Rect) bool {
	return w.checkWall(invincible, r, wallProbe{withBlocks: true})
}

func (w *World) invincibleFor(e *Entity) bool {
	return w.State.Invincible && e.IsHumanoid()
}

func (w *World) probeFor(e *Entity, dx, dy float64) wallProbe {
	return wallProbe{
		dx:         dx,
		dy:         dy,
		rule:       e.Rule,
		withBlocks: e.Rule < RulePlatform || e.Type == TypeSuperCrewmate,
	}
}

// testWallsX reports whether e can stand at (tx, ty). On a hit the
// horizontal speed decays by one unit and the shorter move is retried until
// it fits or the speed is spent, in which case VX is zeroed.
func (w *World) testWallsX(e *Entity, tx, ty int, skipDirBlocks bool) bool {
	r := core.NewRect(tx+e.CX, ty+e.CY, e.W, e.H)
	dx := 0.0
	if e.Rule == RulePlayer {
		dx = e.VX
	}
	p := w.probeFor(e, dx, 0)
	p.skipDirBlocks = skipDirBlocks

	if !w.checkWall(w.invincibleFor(e), r, p) {
		return true
	}
	switch {
	case e.VX > 1:
		e.VX--
	case e.VX < -1:
		e.VX++
	default:
		e.VX = 0
		return false
	}
	e.NewX = e.X + e.VX
	return w.testWallsX(e, int(e.NewX), int(e.Y), skipDirBlocks)
}

// testWallsY is the vertical counterpart of testWallsX.
func (w *World) testWallsY(e *Entity, tx, ty int) bool {
	r := core.NewRect(tx+e.CX, ty+e.CY, e.W, e.H)
	dy := 0.0
	if e.Rule == RulePlayer {
		dy = e.VY
	}

	if !w.checkWall(w.invincibleFor(e), r, w.probeFor(e, 0, dy)) {
		return true
	}
	switch {
	case e.VY > 1:
		e.VY--
	case e.VY < -1:
		e.VY++
	default:
		e.VY = 0
		return false
	}
	e.NewY = float64(int(e.Y + e.VY))
	return w.testWallsY(e, int(e.X), int(e.NewY))
}

// mapCollision commits the proposed position axis by axis, x first. A
// blocked axis moves the entity to its wall state.
func (w *World) mapCollision(e *Entity) {
	if w.testWallsX(e, int(e.NewX), int(e.Y), false) {
		e.X = e.NewX
	} else {
		if e.OnWall > 0 {
			e.State = e.OnWall
		}
		if e.OnXWall > 0 {
			e.State = e.OnXWall
		}
	}

	if w.testWallsY(e, int(e.X), int(e.NewY)) {
		e.Y = e.NewY
	} else {
		if e.OnWall > 0 {
			e.State = e.OnWall
		}
		if e.OnYWall > 0 {
			e.State = e.OnYWall
		}
	}
}

// ResolveWalls commits entity i's proposed position against walls.
func (w *World) ResolveWalls(i int) {
	e, ok := w.entities.Get(i)
	if !ok {
		w.log.Warn("resolve walls out of range", "index", i)
		return
	}
	w.mapCollision(e)
}

// CheckTowerSpikes reports whether entity i touches tower spikes.
func (w *World) CheckTowerSpikes(i int) bool {
	if w.State.Invincible {
		return false
	}
	e, ok := w.entities.Get(i)
	if !ok {
		w.log.Warn("check tower spikes out of range", "index", i)
		return false
	}
	return core.ProbeSides(e.Box(), w.tiles.TowerSpikeCollide)
}

// CollideFloor reports whether entity i has ground one pixel below it.
func (w *World) CollideFloor(i int) bool {
	return w.collideOffset(i, 1)
}

// CollideRoof reports whether entity i has a ceiling one pixel above it.
func (w *World) CollideRoof(i int) bool {
	return w.collideOffset(i, -1)
}

func (w *World) collideOffset(i, dy int) bool {
	e, ok := w.entities.Get(i)
	if !ok {
		w.log.Warn("collide floor/roof out of range", "index", i)
		return false
	}
	return w.checkWallDefault(w.invincibleFor(e), e.Box().Offset(0, dy))
}

// PlatformFloorVelocity returns the horizontal speed of the platform entity
// i stands on, or -1000 when there is none.
func (w *World) PlatformFloorVelocity(i int) float64 {
	return w.platformVelocity(i, 1)
}

// PlatformRoofVelocity is PlatformFloorVelocity for a platform overhead.
func (w *World) PlatformRoofVelocity(i int) float64 {
	return w.platformVelocity(i, -1)
}

func (w *World) platformVelocity(i, dy int) float64 {
	e, ok := w.entities.Get(i)
	if !ok {
		w.log.Warn("platform velocity out of range", "index", i)
		return noPlatform
	}
	px, py, found := w.checkPlatform(e.Box().Offset(0, dy))
	if !found {
		return noPlatform
	}
	return w.hPlatformAt(px, py)
}

// checkPlatform returns the anchor of the first solid block overlapping r.
func (w *World) checkPlatform(r core.Rect) (int, int, bool) {
	px, py, found := 0, 0, false
	w.blocks.Each(func(_ int, b *Block) bool {
		if b.Type == BlockSolid && b.Rect.Intersects(r) {
			px, py, found = b.X, b.Y, true
			return false
		}
		return true
	})
	return px, py, found
}

// hPlatformAt returns the carrying speed of the horizontal platform or
// treadmill at (px, py), or -1000.
func (w *World) hPlatformAt(px, py int) float64 {
	v := float64(noPlatform)
	w.entities.Each(func(_ int, e *Entity) bool {
		if e.Rule != RulePlatform || e.Behave < 2 || e.X != float64(px) || e.Y != float64(py) {
			return true
		}
		switch e.Behave {
		case 8:
			v = e.Para
		case 9:
			v = -e.Para
		default:
			v = e.VX
		}
		return false
	})
	return v
}

// MovingPlatformFix keeps rider j on vertical platform t. If the two still
// overlap after the rider's own move, the rider takes the platform's speed
// and is snapped to its top or bottom face.
func (w *World) MovingPlatformFix(t, j int) {
	pl, ok1 := w.entities.Get(t)
	r, ok2 := w.entities.Get(j)
	if !ok1 || !ok2 {
		w.log.Warn("moving platform fix out of range", "platform", t, "rider", j)
		return
	}
	if !pl.Box().Intersects(r.Box()) {
		return
	}

	r.Y += float64(int(r.VY))
	if !pl.Box().Intersects(r.Box()) {
		return
	}
	r.Y -= float64(int(r.VY))
	r.VY = pl.VY
	r.NewY = r.Y + float64(int(r.VY))

	if !w.testWallsY(r, int(r.X), int(r.NewY)) {
		pl.State = pl.OnWall
		return
	}
	r.VY = 0
	if pl.VY > 0 {
		r.Y = pl.Y + float64(pl.H)
		r.OnRoof = 2
		r.VisualOnRoof = 1
	} else {
		r.Y = pl.Y - float64(r.H) - float64(r.CY)
		r.OnGround = 2
		r.VisualOnGround = 1
	}
}

// stuckPrevention nudges entity i three pixels along gravity when it is
// embedded in a wall.
func (w *World) stuckPrevention(i int) {
	e, ok := w.entities.Get(i)
	if !ok {
		w.log.Warn("stuck prevention out of range", "index", i)
		return
	}
	if w.testWallsX(e, int(e.X), int(e.Y), true) {
		return
	}
	if w.State.GravityControl == 0 {
		e.Y -= 3
	} else {
		e.Y += 3
	}
}
