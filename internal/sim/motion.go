package sim

import "math"

// integrate advances velocity by acceleration and proposes the next position
// in NewX/NewY. Horizontal acceleration is an impulse and is consumed here.
// Gravity-affected entities get their vertical pull re-derived every frame.
func (w *World) integrate(e *Entity) {
	e.OldX, e.OldY = e.X, e.Y

	e.VX += e.AX
	e.VY += e.AY
	e.AX = 0

	if e.Gravity {
		g := w.cfg.Physics.Gravity
		switch {
		case e.Rule == RulePlayer && w.State.GravityControl != 0:
			e.AY = -g
		case e.Rule == RulePlayer:
			e.AY = g
		case e.Rule == RuleCrewInverted:
			e.AY = -g
		default:
			e.AY = g
		}
		w.applyFriction(e, w.cfg.Physics.Inertia, w.cfg.Physics.FrictionY)
	}

	e.NewX = e.X + e.VX
	e.NewY = e.Y + e.VY
}

// applyFriction slows e toward rest, caps its speed and snaps small
// velocities to zero so they never oscillate around it.
func (w *World) applyFriction(e *Entity, xrate, yrate float64) {
	p := w.cfg.Physics
	e.VX = decay(e.VX, xrate, p.MaxVX)
	e.VY = decay(e.VY, yrate, p.MaxVY)
}

func decay(v, rate, limit float64) float64 {
	switch {
	case v > 0:
		v -= rate
	case v < 0:
		v += rate
	}
	if limit > 0 {
		v = math.Max(-limit, math.Min(limit, v))
	}
	if math.Abs(v) < rate {
		return 0
	}
	return v
}
