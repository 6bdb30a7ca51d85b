package sim

// loopAnim is one looping animation: frames cycle 0..count-1 (or down from
// count-1 when reverse), advancing every delay frames, and each frame steps
// the tile by stride.
type loopAnim struct {
	count   int
	delay   int
	stride  int
	reverse bool
}

var loopAnims = map[int]loopAnim{
	1:  {count: 4, delay: 8, stride: 1},
	2:  {count: 2, delay: 2, stride: 1},
	3:  {count: 2, delay: 2, stride: 2},
	4:  {count: 2, delay: 6, stride: 2},
	5:  {count: 2, delay: 6, stride: 1},
	6:  {count: 4, delay: 4, stride: 2},
	7:  {count: 2, delay: 6, stride: 1},
	10: {count: 4, delay: 3, stride: 1, reverse: true},
	11: {count: 4, delay: 3, stride: 1},
}

func (a loopAnim) step(e *Entity) {
	e.FrameDelay--
	if e.FrameDelay <= 0 {
		e.FrameDelay = a.delay
		if a.reverse {
			e.WalkingFrame--
			if e.WalkingFrame == -1 {
				e.WalkingFrame = a.count - 1
			}
		} else {
			e.WalkingFrame++
			if e.WalkingFrame == a.count {
				e.WalkingFrame = 0
			}
		}
	}
	e.DrawFrame = e.Tile + e.WalkingFrame*a.stride
}

// Animate advances the visual frame of entity i.
func (w *World) Animate(i int) {
	e, ok := w.entities.Get(i)
	if !ok {
		w.log.Warn("animate out of range", "index", i)
		return
	}
	if e.StateDelay >= 1 {
		return
	}

	switch e.Type {
	case TypePlayer:
		w.animatePlayer(e)
	case TypeMoving, TypeGravitronEnemy:
		animateEnemy(e)
	case TypeDisappearingPlatform:
		e.DrawFrame = e.Tile + e.WalkingFrame
	case TypeWarpToken:
		e.DrawFrame = e.Tile
		if e.Animate == 2 {
			loopAnim{count: 2, delay: 10, stride: 1}.step(e)
		}
	case TypeCrewmate, TypeCollectableCrewmate, TypeSuperCrewmate:
		w.animateCrew(e)
	case TypeTeleporter:
		w.animateTeleporter(e)
	default:
		e.DrawFrame = e.Tile
	}
}

func (w *World) animatePlayer(e *Entity) {
	gc := w.State.GravityControl
	e.FrameDelay--
	e.DrawFrame = e.Tile
	if e.Dir != 1 {
		e.DrawFrame += 3
	}

	if e.VisualOnGround > 0 || e.VisualOnRoof > 0 {
		if e.VX != 0 {
			if e.FrameDelay <= 1 {
				e.FrameDelay = 4
				e.WalkingFrame++
			}
			if e.WalkingFrame >= 2 {
				e.WalkingFrame = 0
			}
			e.DrawFrame += e.WalkingFrame + 1
		}
		if e.VisualOnRoof > 0 {
			e.DrawFrame += 6
		}
		// Wedged between floor and ceiling: follow gravity.
		if e.VisualOnGround > 0 && e.VisualOnRoof > 0 && gc == 0 {
			e.DrawFrame -= 6
		}
	} else {
		e.DrawFrame++
		if gc == 1 {
			e.DrawFrame += 6
		}
	}

	if w.State.DeathSeq > -1 {
		e.DrawFrame = deathFrame(e.Dir, gc == 1)
	}
}

func deathFrame(dir int, flipped bool) int {
	f := 13
	if dir == 1 {
		f = 12
	}
	if flipped {
		f += 2
	}
	return f
}

func animateEnemy(e *Entity) {
	switch e.Animate {
	case 0:
		// Ping-pong over four frames.
		e.FrameDelay--
		if e.FrameDelay <= 0 {
			e.FrameDelay = 8
			if e.ActionFrame == 0 {
				e.WalkingFrame++
				if e.WalkingFrame == 4 {
					e.WalkingFrame = 2
					e.ActionFrame = 1
				}
			} else {
				e.WalkingFrame--
				if e.WalkingFrame == -1 {
					e.WalkingFrame = 1
					e.ActionFrame = 0
				}
			}
		}
		e.DrawFrame = e.Tile + e.WalkingFrame
	default:
		a, ok := loopAnims[e.Animate]
		if !ok {
			e.DrawFrame = e.Tile
			return
		}
		a.step(e)
		if e.Animate == 7 && e.VX > 0 {
			e.DrawFrame += 2
		}
	}
}

func (w *World) animateCrew(e *Entity) {
	e.FrameDelay--
	e.DrawFrame = e.Tile
	if e.Dir != 1 {
		e.DrawFrame += 3
	}

	if e.VisualOnGround > 0 || e.VisualOnRoof > 0 {
		if e.VX != 0 {
			if e.FrameDelay <= 0 {
				e.FrameDelay = 4
				e.WalkingFrame++
			}
			if e.WalkingFrame >= 2 {
				e.WalkingFrame = 0
			}
			e.DrawFrame += e.WalkingFrame + 1
		}
	} else {
		e.DrawFrame++
	}

	if w.State.DeathSeq > -1 {
		e.DrawFrame = deathFrame(e.Dir, e.Rule == RuleCrewInverted)
	}
}

func (w *World) animateTeleporter(e *Entity) {
	e.DrawFrame = e.Tile
	if e.Tile == 1 || w.State.NoFlashing {
		return
	}

	var delay, idle int
	switch e.Tile {
	case 2:
		delay, idle = 1, -1
	case 6:
		delay, idle = 2, -5
	default:
		return
	}

	e.FrameDelay--
	if e.FrameDelay <= 0 {
		e.FrameDelay = delay
		e.WalkingFrame = int(w.Rand() * 6)
		if e.WalkingFrame >= 4 {
			e.WalkingFrame = idle
			e.FrameDelay = 4
		}
	}
	e.DrawFrame = e.Tile + e.WalkingFrame
}

// AnimateCollision advances the collision frame of humanoid entity i. It is
// tracked apart from the visual frame so hit tests do not depend on how the
// sprite is drawn. The result is then copied into the visual frame fields.
func (w *World) AnimateCollision(i int) {
	e, ok := w.entities.Get(i)
	if !ok {
		w.log.Warn("animate collision out of range", "index", i)
		return
	}
	if !e.IsHumanoid() || e.StateDelay > 0 {
		return
	}
	gc := w.State.GravityControl
	player := e.Type == TypePlayer

	e.CollisionFrameDelay--
	e.CollisionDrawFrame = e.Tile
	if e.Dir != 1 {
		e.CollisionDrawFrame += 3
	}

	if e.VisualOnGround > 0 || e.VisualOnRoof > 0 {
		if e.VX != 0 {
			if e.CollisionFrameDelay <= 1 {
				e.CollisionFrameDelay = 4
				e.CollisionWalkingFrame++
			}
			if e.CollisionWalkingFrame >= 2 {
				e.CollisionWalkingFrame = 0
			}
			e.CollisionDrawFrame += e.CollisionWalkingFrame + 1
		}
		if e.VisualOnRoof > 0 {
			e.CollisionDrawFrame += 6
		}
	} else {
		e.CollisionDrawFrame++
		if player && gc == 1 {
			e.CollisionDrawFrame += 6
		}
	}

	if w.State.DeathSeq > -1 {
		flipped := (player && gc == 1) || (!player && e.Rule == RuleCrewInverted)
		e.CollisionDrawFrame = deathFrame(e.Dir, flipped)
	}

	e.FrameDelay = e.CollisionFrameDelay
	e.DrawFrame = e.CollisionDrawFrame
	e.WalkingFrame = e.CollisionWalkingFrame
}
