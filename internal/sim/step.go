package sim

// Step advances the world by one frame.
func (w *World) Step() {
	w.stepPlatforms()

	for i := 0; i < w.entities.Len(); i++ {
		e, ok := w.entities.Get(i)
		if !ok || e.IsPlatform {
			continue
		}
		w.integrate(e)
		w.mapCollision(e)
	}

	w.updateContacts()

	w.CheckCollisions()
	if w.State.CustomWarpMode {
		if p := w.Player(); p >= 0 {
			w.CustomWarpLineCheck(p)
		}
	}

	for i := 0; i < w.entities.Len(); i++ {
		if e, ok := w.entities.Get(i); ok && !e.IsPlatform {
			w.updateEntity(i)
		}
	}

	for i := 0; i < w.entities.Len(); i++ {
		if !w.entities.Live(i) {
			continue
		}
		w.AnimateCollision(i)
		w.Animate(i)
	}

	if w.State.Wave.Active {
		w.stepWave()
	}

	w.runRequestedScript()
	w.frame++
}

// stepPlatforms moves every platform together with its solid block. The
// block is lifted before the platform moves so the platform does not
// collide with itself.
func (w *World) stepPlatforms() {
	for i := 0; i < w.entities.Len(); i++ {
		e, ok := w.entities.Get(i)
		if !ok || !e.IsPlatform {
			continue
		}
		px, py := int(e.X), int(e.Y)
		w.DisableBlockAt(px, py)

		if w.updateEntity(i) {
			continue
		}
		// The behavior may have created entities and moved storage.
		e, ok = w.entities.Get(i)
		if !ok {
			continue
		}
		w.integrate(e)
		w.mapCollision(e)
		w.MoveBlockTo(px, py, int(e.X), int(e.Y), e.W, e.H)

		if !e.verticalPlatform() {
			continue
		}
		for j := 0; j < w.entities.Len(); j++ {
			if r, ok := w.entities.Get(j); ok && r.IsHumanoid() {
				w.MovingPlatformFix(i, j)
			}
		}
	}
}

func (e *Entity) verticalPlatform() bool {
	switch e.Behave {
	case 0, 1, 6, 7:
		return true
	}
	return false
}

// updateContacts refreshes the ground and roof flags of humanoids and lets
// horizontal platforms carry their riders.
func (w *World) updateContacts() {
	for i := 0; i < w.entities.Len(); i++ {
		e, ok := w.entities.Get(i)
		if !ok || !e.IsHumanoid() {
			continue
		}
		e.OnGround, e.VisualOnGround = contact(w.CollideFloor(i), e.OnGround)
		e.OnRoof, e.VisualOnRoof = contact(w.CollideRoof(i), e.OnRoof)

		if !w.State.HorPlatforms {
			continue
		}
		if v := w.PlatformFloorVelocity(i); v > noPlatform {
			w.carry(e, v)
		}
		if v := w.PlatformRoofVelocity(i); v > noPlatform {
			w.carry(e, v)
		}
	}
}

// contact returns the next frame counter and visual flag for one side. A
// touching side holds for two frames after contact is lost.
func contact(touching bool, on int) (int, int) {
	if touching {
		return 2, 1
	}
	if on > 0 {
		on--
	}
	if on > 0 {
		return on, 1
	}
	return on, 0
}

func (w *World) carry(e *Entity, v float64) {
	e.NewX = e.X + v
	e.NewY = e.Y
	w.mapCollision(e)
}

func (w *World) runRequestedScript() {
	st := w.State
	if !st.StartScript || w.scripts == nil {
		return
	}
	name := st.NewScript
	st.StartScript = false
	st.ScriptRunning = true
	if err := w.scripts.Run(w, name); err != nil {
		w.log.Error("script failed", "script", name, "err", err)
	}
	st.ScriptRunning = false
}
