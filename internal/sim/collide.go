package sim

import "github.com/vovakirdan/flipsim/internal/core"

// Trigger ids in this range select a game state directly instead of loading
// the trigger's script.
const (
	stateTriggerMin = 300
	stateTriggerMax = 336
)

const (
	deathSeqStart  = 30
	proximityRange = 30
)

// side returns -1 when a lies before line and 1 otherwise. Both are
// compared as whole pixels.
func side(a, line float64) int {
	if int(a) < int(line) {
		return -1
	}
	return 1
}

// crossed reports whether the four samples do not all lie on one side.
func crossed(sum int) bool {
	return sum > -4 && sum < 4
}

// hLineCross reports whether t crossed horizontal line l between its old
// and current position, even if neither box touches the line.
func hLineCross(t, l *Entity) bool {
	left := t.X + float64(t.CX)
	if left+float64(t.W) < l.X || left > l.X+float64(l.W) {
		return false
	}
	h := float64(t.H)
	sum := side(t.Y, l.Y) + side(t.Y+h, l.Y) + side(t.OldY, l.Y) + side(t.OldY+h, l.Y)
	return crossed(sum)
}

// vLineCross is hLineCross for a vertical line.
func vLineCross(t, l *Entity) bool {
	top := t.Y + float64(t.CY)
	if top+float64(t.H) < l.Y || top > l.Y+float64(l.H) {
		return false
	}
	x := t.X + float64(t.CX) + 1
	ox := t.OldX + float64(t.CX) + 1
	w := float64(t.W)
	sum := side(x, l.X) + side(x+w, l.X) + side(ox, l.X) + side(ox+w, l.X)
	return crossed(sum)
}

// warpHLineHit reports whether t is within ten pixels past a horizontal warp
// line while moving toward the screen edge it guards.
func warpHLineHit(t, l *Entity) bool {
	left := t.X + float64(t.CX)
	if left+float64(t.W) < l.X || left > l.X+float64(l.W) {
		return false
	}
	h := float64(t.H)
	ys := [...]float64{t.Y, t.Y + h, t.OldY, t.OldY + h}
	top := l.Y < 120
	for _, y := range ys {
		switch {
		case top && t.VY < 0 && y < l.Y+10:
			return true
		case !top && t.VY > 0 && y > l.Y-10:
			return true
		}
	}
	return false
}

// warpVLineHit is warpHLineHit for a vertical warp line. It ignores velocity.
func warpVLineHit(t, l *Entity) bool {
	top := t.Y + float64(t.CY)
	if top+float64(t.H) < l.Y || top > l.Y+float64(l.H) {
		return false
	}
	x := t.X + float64(t.CX) + 1
	ox := t.OldX + float64(t.CX) + 1
	w := float64(t.W)
	xs := [...]float64{x, x + w, ox, ox + w}
	left := l.X < 160
	for _, v := range xs {
		if left && v < l.X+10 || !left && v > l.X-10 {
			return true
		}
	}
	return false
}

// CheckCollisions runs the entity collision pass: every player and active
// super crewmate is tested against every other entity. Afterwards the player
// is freed from walls, damage blocks are applied and the first trigger block
// under the player fires.
func (w *World) CheckCollisions() {
	st := w.State
	for i := 0; i < w.entities.Len(); i++ {
		e, ok := w.entities.Get(i)
		if !ok {
			continue
		}
		player := e.Rule == RulePlayer
		scm := st.SuperCrewmate && e.Type == TypeSuperCrewmate
		if !player && !scm {
			continue
		}
		for j := 0; j < w.entities.Len(); j++ {
			if i != j {
				w.collisionCheck(i, j, scm)
			}
		}
	}

	if p := w.Player(); p >= 0 {
		w.stuckPrevention(p)
	}
	if st.SuperCrewmate {
		w.stuckPrevention(w.SuperCrewmate())
	}

	if w.CheckDamage(false) && !st.Invincible {
		st.DeathSeq = deathSeqStart
	}
	if st.SuperCrewmate && w.CheckDamage(true) && !st.Invincible {
		st.SCMHurt = true
		st.DeathSeq = deathSeqStart
	}

	trig, bi := w.CheckTrigger()
	if trig < 0 {
		return
	}
	b, ok := w.blocks.Get(bi)
	if !ok {
		return
	}
	if b.Script != "" && (trig < stateTriggerMin || trig > stateTriggerMax) {
		st.StartScript = true
		st.NewScript = b.Script
		w.RemoveTrigger(trig)
		st.RequestState(0)
	} else {
		st.RequestState(trig)
	}
}

func (w *World) collisionCheck(i, j int, scm bool) {
	a, ok1 := w.entities.Get(i)
	b, ok2 := w.entities.Get(j)
	if !ok1 || !ok2 {
		return
	}
	st := w.State
	alive := st.DeathSeq == -1

	switch b.Rule {
	case RuleHarmful:
		if !b.Harmful || st.Invincible || !a.Box().Intersects(b.Box()) {
			return
		}
		if a.Size == SizeSprite && (b.Size == SizeSprite || b.Size == SizeGravitron) {
			pa := core.Point{X: int(a.X), Y: int(a.Y)}
			pb := core.Point{X: int(b.X), Y: int(b.Y)}
			if !w.hits.Hit(a.CollisionDrawFrame, pa, b.DrawFrame, pb) {
				return
			}
		}
		st.DeathSeq = deathSeqStart
		st.SCMHurt = scm

	case RulePlatform:
		// Treadmills never carry their rider out of the block.
		if b.Behave >= 8 && b.Behave < 10 {
			return
		}
		if a.Box().Intersects(b.Box()) {
			w.DisableBlockAt(int(b.X), int(b.Y))
		}

	case RuleTouch:
		if b.OnEntity > 0 && a.Box().Intersects(b.Box()) {
			b.State = b.OnEntity
		}

	case RuleHLine:
		if !alive || b.OnEntity <= 0 || !hLineCross(a, b) {
			return
		}
		w.playEffect(SoundGravityLine)
		st.FlipGravity()
		if st.GravityControl == 0 {
			if a.VY < 1 {
				a.VY = 1
			}
		} else if a.VY > -1 {
			a.VY = -1
		}
		b.State = b.OnEntity
		b.Life = 6

	case RuleVLine:
		if alive && b.OnEntity > 0 && vLineCross(a, b) {
			b.State = b.OnEntity
			b.Life = 4
		}

	case RuleCrew:
		if b.OnEntity <= 0 {
			return
		}
		dy := int(a.Y - b.Y)
		dx := int(a.X - b.X)
		if dy > -proximityRange && dy < proximityRange &&
			dx > -proximityRange && dx < proximityRange &&
			a.Box().Intersects(b.Box()) {
			b.State = b.OnEntity
		}

	case RuleCrewInverted:
		legacy := st.Glitchrunner != GlitchrunnerNone && st.Glitchrunner <= Glitchrunner20
		if legacy && alive && b.OnEntity > 0 && hLineCross(a, b) {
			b.State = b.OnEntity
		}
	}
}

// CustomWarpLineCheck latches the custom warp flags when player i touches a
// warp line.
func (w *World) CustomWarpLineCheck(i int) {
	e, ok := w.entities.Get(i)
	if !ok {
		w.log.Warn("custom warp line check out of range", "index", i)
		return
	}
	if e.Rule != RulePlayer {
		return
	}
	st := w.State
	w.entities.Each(func(j int, l *Entity) bool {
		if j == i {
			return true
		}
		switch l.Type {
		case TypeWarpLineLeft, TypeWarpLineRight:
			if l.Rule == RuleVLine && warpVLineHit(e, l) {
				st.CustomWarpModeVOn = true
			}
		case TypeWarpLineTop, TypeWarpLineBottom:
			if l.Rule == RuleCrewInverted && warpHLineHit(e, l) {
				st.CustomWarpModeHOn = true
			}
		}
		return true
	})
}

// CheckDamage reports whether the player, or the super crewmate when scm is
// set, overlaps a damage block.
func (w *World) CheckDamage(scm bool) bool {
	hit := false
	w.entities.Each(func(_ int, e *Entity) bool {
		if scm && e.Type != TypeSuperCrewmate || !scm && e.Rule != RulePlayer {
			return true
		}
		_, hit = w.firstBlock(e.Box(), BlockDamage)
		return !hit
	})
	return hit
}

// CheckTrigger returns the trigger id and block index of the first trigger
// block under the player, or -1 and -1.
func (w *World) CheckTrigger() (int, int) {
	trig, idx := -1, -1
	w.entities.Each(func(_ int, e *Entity) bool {
		if e.Rule != RulePlayer {
			return true
		}
		i, ok := w.firstBlock(e.Box(), BlockTrigger)
		if !ok {
			return true
		}
		b, _ := w.blocks.Get(i)
		trig, idx = b.Trigger, i
		return false
	})
	return trig, idx
}

// CheckActivity returns the index of the first activity zone under the
// player, or -1.
func (w *World) CheckActivity() int {
	idx := -1
	w.entities.Each(func(_ int, e *Entity) bool {
		if e.Rule != RulePlayer {
			return true
		}
		if i, ok := w.firstBlock(e.Box(), BlockActivity); ok {
			idx = i
			return false
		}
		return true
	})
	return idx
}

func (w *World) firstBlock(r core.Rect, t BlockType) (int, bool) {
	idx := -1
	w.blocks.Each(func(i int, b *Block) bool {
		if b.Type == t && b.Rect.Intersects(r) {
			idx = i
			return false
		}
		return true
	})
	return idx, idx >= 0
}
