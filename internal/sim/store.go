package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrPlayerProtected is returned when asked to disable the player.
	ErrPlayerProtected = errors.New("sim: the player entity cannot be disabled")
	// ErrOutOfBounds is returned for an index that names no live entity.
	ErrOutOfBounds = errors.New("sim: entity index out of bounds")
)

// DisableEntity frees entity i. The player is refused with
// ErrPlayerProtected; a stale or invalid index returns ErrOutOfBounds.
func (w *World) DisableEntity(i int) error {
	e, ok := w.entities.Get(i)
	if !ok {
		w.log.Warn("disable entity out of range", "index", i)
		return fmt.Errorf("%w: %d", ErrOutOfBounds, i)
	}
	if e.Rule == RulePlayer && i == w.Player() {
		return ErrPlayerProtected
	}
	if err := w.entities.Release(i); err != nil {
		return fmt.Errorf("sim: cannot disable entity %d: %w", i, err)
	}
	return nil
}

// disable frees entity i and reports whether it is gone, which is what
// behavior code needs to stop processing it.
func (w *World) disable(i int) bool {
	err := w.DisableEntity(i)
	return err == nil || errors.Is(err, ErrOutOfBounds)
}

// Player returns the index of the first player entity, or -1.
func (w *World) Player() int {
	return w.find(func(e *Entity) bool { return e.Type == TypePlayer }, -1)
}

// Companion returns the first crew companion (rule 6 or 7), or -1.
func (w *World) Companion() int {
	return w.find(func(e *Entity) bool {
		return e.Rule == RuleCrew || e.Rule == RuleCrewInverted
	}, -1)
}

// SuperCrewmate returns the super crewmate, or 0 when there is none.
func (w *World) SuperCrewmate() int {
	return w.find(func(e *Entity) bool { return e.Type == TypeSuperCrewmate }, 0)
}

// LineAt returns the horizontal line at height y, or 0.
func (w *World) LineAt(y int) int {
	return w.find(func(e *Entity) bool {
		return e.Size == SizeHLine && int(e.Y) == y
	}, 0)
}

// Crewman returns the crewmate with colour c. Missing crewmates fall back to
// entity 0, which levels rely on to target the player.
func (w *World) Crewman(c Colour) int {
	return w.find(func(e *Entity) bool {
		return (e.Type == TypeCrewmate || e.Type == TypeSuperCrewmate) &&
			(e.Rule == RuleCrew || e.Rule == RuleCrewInverted) &&
			e.Colour == c
	}, 0)
}

// CustomCrewman returns the collectable crewmate with colour c, or 0.
func (w *World) CustomCrewman(c Colour) int {
	return w.find(func(e *Entity) bool {
		return e.Type == TypeCollectableCrewmate && e.Colour == c
	}, 0)
}

// Teleporter returns the first teleporter, or -1.
func (w *World) Teleporter() int {
	return w.find(func(e *Entity) bool { return e.Type == TypeTeleporter }, -1)
}

func (w *World) find(match func(e *Entity) bool, fallback int) int {
	found := fallback
	w.entities.Each(func(i int, e *Entity) bool {
		if match(e) {
			found = i
			return false
		}
		return true
	})
	return found
}

// CopyLineCross returns a copy of entity t for a later RevertLineCross.
func (w *World) CopyLineCross(t int) (Entity, bool) {
	e, ok := w.entities.Get(t)
	if !ok {
		w.log.Warn("copy line cross out of range", "index", t)
		return Entity{}, false
	}
	return *e, true
}

// RevertLineCross restores the line-crossing fields of entity t from saved.
func (w *World) RevertLineCross(t int, saved Entity) {
	e, ok := w.entities.Get(t)
	if !ok {
		w.log.Warn("revert line cross out of range", "index", t)
		return
	}
	e.OnEntity = saved.OnEntity
	e.State = saved.State
	e.Life = saved.Life
}

// entityCollide reports whether entities a and b overlap.
func (w *World) entityCollide(a, b int) bool {
	ea, ok1 := w.entities.Get(a)
	eb, ok2 := w.entities.Get(b)
	if !ok1 || !ok2 {
		return false
	}
	return ea.Box().Intersects(eb.Box())
}
