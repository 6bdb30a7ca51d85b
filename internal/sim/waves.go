package sim

import (
	"github.com/vovakirdan/flipsim/internal/config"
)

// Gravitron arena geometry: lane 0 is at laneTop and lanes are laneStep
// apart. Enemies entering from the left start at offLeft, from the right at
// offRight.
const (
	laneTop   = 58
	laneStep  = 20
	lanes     = 6
	offLeft   = -150
	offRight  = 470
	moveMinY  = 48
	moveMaxY  = 168
	warnBlink = 15

	// Super-gravitron enemies change colour every colourPeriod wave ticks.
	colourPeriod = 30
	colourStates = 6

	maxRandDelay = 31
)

// GenerateWave advances the wave generator of the given mode by one tick.
// While the rest delay runs nothing else happens.
func (w *World) GenerateWave(mode int) {
	wave := &w.State.Wave
	if wave.Delay > 0 {
		wave.Delay--
		return
	}
	switch mode {
	case WaveClassic:
		w.classicWave()
	case WaveSuper:
		w.superWave()
	default:
		w.log.Warn("unknown wave mode", "mode", mode)
	}
}

func (w *World) laneY(row int) int {
	return laneTop + row*laneStep
}

// classicWave runs the timer-driven mode. State 0 decides the next shape
// from the survival timer, states 1..9 spawn it and return to 0.
func (w *World) classicWave() {
	wave := &w.State.Wave
	cfg := w.cfg.Gravitron.Classic
	speed := cfg.Speed

	switch wave.State {
	case 0:
		step := cfg.Fallback
		for _, s := range cfg.Schedule {
			if wave.Timer <= s.Until {
				step = s
				break
			}
		}
		wave.State = step.State
		if step.Alternate {
			wave.State += wave.Counter
		}
		wave.Delay = step.Delay
		recent := w.State.Deaths - wave.StartDeaths
		for _, b := range cfg.DeathBumps {
			if recent > b.Over {
				wave.Delay += b.Add
			}
		}
		return

	case 1:
		w.gravEnemy(offLeft, w.laneY(w.randLane()), 0, speed)
	case 2:
		w.zigzag()
		w.gravEnemy(offLeft, w.laneY(wave.Counter), 0, speed)
	case 3:
		w.gravEnemy(offRight, w.laneY(w.randLane()), 1, speed)
	case 4:
		// Complementary pair: left-mover on row r, right-mover on 5-r.
		r := w.randLane()
		w.gravEnemy(offLeft, w.laneY(r), 0, speed)
		w.gravEnemy(offRight, w.laneY(lanes-1-r), 1, speed)
		wave.Counter = 0
	case 5:
		w.gravEnemy(offLeft, w.laneY(0), 0, speed)
		w.gravEnemy(offLeft, w.laneY(5), 0, speed)
		wave.Counter = 1
	case 6:
		w.gravEnemy(offLeft, w.laneY(2), 0, speed)
		w.gravEnemy(offLeft, w.laneY(3), 0, speed)
		wave.Counter = 0
	case 7:
		w.gravEnemy(offRight, w.laneY(0), 1, speed)
		w.gravEnemy(offRight, w.laneY(5), 1, speed)
		wave.Counter = 1
	case 8:
		w.gravEnemy(offRight, w.laneY(2), 1, speed)
		w.gravEnemy(offRight, w.laneY(3), 1, speed)
		wave.Counter = 0
	case 9:
		w.zigzag()
		w.gravEnemy(offRight, w.laneY(wave.Counter), 1, speed)
	default:
		w.log.Warn("unknown classic wave state", "state", wave.State)
	}
	wave.State = 0
	wave.Delay = 0
}

func (w *World) randLane() int {
	return int(w.Rand() * lanes)
}

// zigzag walks the lane counter up to the last lane and back down.
func (w *World) zigzag() {
	wave := &w.State.Wave
	if wave.Toggle == 0 {
		wave.Counter++
		if wave.Counter >= lanes {
			wave.Toggle = 1
			wave.Counter--
		}
		return
	}
	wave.Counter--
	if wave.Counter < 0 {
		wave.Toggle = 0
		wave.Counter++
	}
}

func (w *World) gravEnemy(x, y, behave, speed int) {
	w.CreateEntity(x, y, KindGravitronEnemy, behave, speed)
}

// superWave runs the pattern mode. State 0 picks a weighted pattern, any
// other state interprets the pattern with that id.
func (w *World) superWave() {
	wave := &w.State.Wave
	g := w.cfg.Gravitron

	p, ok := g.Pattern(wave.State)
	if ok {
		wave.PatternName = p.Name
		wave.Seen[p.ID] = true
	}

	if wave.State == 0 {
		w.choosePattern()
		return
	}
	if !ok {
		w.log.Warn("unknown gravitron pattern", "id", wave.State)
		wave.State = 0
		return
	}
	w.runPattern(p)
}

func (w *World) choosePattern() {
	wave := &w.State.Wave
	g := w.cfg.Gravitron

	wave.Counter = 0
	wave.Toggle = 0
	wave.Offset = 0

	tiers := []struct {
		name   string
		weight int
	}{
		{"common", g.Weights.Common},
		{"standard", g.Weights.Standard},
		{"unusual", g.Weights.Unusual},
		{"rare", g.Weights.Rare},
		{"exotic", g.Weights.Exotic},
	}
	total := 0
	for _, t := range tiers {
		total += t.weight
	}
	roll := w.Rand() * float64(total)
	acc := 0
	for _, t := range tiers {
		acc += t.weight
		if roll >= float64(acc) {
			continue
		}
		if ids := g.Tiers[t.name]; len(ids) > 0 {
			wave.State = ids[int(w.Rand()*float64(len(ids)))]
		}
		break
	}

	if wave.Practice != 0 {
		wave.State = wave.Practice
		if wave.RandDelay {
			wave.Delay = int(w.Rand() * maxRandDelay)
			wave.RandDelay = false
		}
	}
	wave.Bidirectional = int(w.Rand()*2) != 0
}

// runPattern advances pattern p by one tick.
func (w *World) runPattern(p config.PatternConfig) {
	wave := &w.State.Wave
	c := wave.Counter

	if c < p.Warmup {
		if c%warnBlink == 0 {
			wave.Warnings = nil
			if c%2 == 0 {
				wave.Warnings = p.Warnings
				if !wave.Bidirectional && p.AltWarnings != nil {
					wave.Warnings = p.AltWarnings
				}
			}
		}
		wave.Counter++
		wave.Delay = 0
		return
	}

	if c == p.Warmup {
		wave.Warnings = nil
		if p.HomingTimer > 0 {
			wave.HomingTimer = p.HomingTimer
		}
		for _, s := range p.Spawns {
			if !wave.Bidirectional && s.Alt != nil {
				s = *s.Alt
			}
			w.GravCreate(s.Row, s.Dir, s.XOff, s.YOff, s.Speed, s.ID)
		}
		if p.Scatter != nil {
			w.scatter(*p.Scatter)
		}
	}

	wave.Delay = 0
	for _, ev := range p.Events {
		if ev.Matches(c) {
			w.applyEvent(ev)
		}
	}

	if c >= p.End {
		wave.State = 0
		wave.Delay = p.Delay
		return
	}
	wave.Counter++
}

// scatter builds random columns hanging from the ceiling or rising from the
// floor, marching in from one side.
func (w *World) scatter(s config.ScatterConfig) {
	wave := &w.State.Wave
	dir := int(w.Rand() * 2)
	span := s.MaxHeight - s.MinHeight + 1
	for col := 0; col < s.Columns; col++ {
		h := int(w.Rand()*float64(span)) + s.MinHeight
		top := int(w.Rand()*2) == 0
		for j := 0; j < h; j++ {
			row := j
			if !top {
				row = lanes - 1 - j
			}
			w.GravCreate(row, dir, wave.Offset, 0, s.Speed, 0)
		}
		wave.Offset += s.Step
	}
}

func (w *World) applyEvent(ev config.EventConfig) {
	wave := &w.State.Wave
	switch ev.Op {
	case "speed":
		w.SpeedChange(ev.Speed, ev.IDs...)
	case "freeze":
		w.Freeze(ev.IDs...)
	case "unfreeze":
		w.Unfreeze(ev.IDs...)
	case "reverse":
		w.Reverse(ev.IDs...)
	case "unreverse":
		w.Unreverse(ev.IDs...)
	case "delete":
		w.DeleteGroup(ev.IDs...)
	case "move":
		w.MoveGroup(ev.Amount, ev.IDs...)
	case "toggle_freeze":
		// Alternates between freezing IDs and freezing SwapIDs. Without
		// swap ids the second half simply unfreezes IDs.
		if wave.Toggle == 0 {
			wave.Toggle = 1
			w.Freeze(ev.IDs...)
			if len(ev.SwapIDs) > 0 {
				w.Unfreeze(ev.SwapIDs...)
			}
			wave.Delay = eventDelay(ev, 0)
		} else {
			wave.Toggle = 0
			if len(ev.SwapIDs) > 0 {
				w.Freeze(ev.SwapIDs...)
			}
			w.Unfreeze(ev.IDs...)
			wave.Delay = eventDelay(ev, 1)
		}
	default:
		w.log.Warn("unknown gravitron event", "op", ev.Op)
	}
}

func eventDelay(ev config.EventConfig, i int) int {
	if i < len(ev.Delays) {
		return ev.Delays[i]
	}
	return 0
}

// GravCreate spawns a gravitron enemy on lane row. Directions 0 and 1 enter
// from the left and right edges pushed back by xoff; 2 (static) and 3
// (homing) are placed at xoff directly.
func (w *World) GravCreate(row, dir, xoff, yoff, speed, id int) (int, bool) {
	y := w.laneY(row) + yoff
	var x int
	switch dir {
	case 0:
		x = offLeft - xoff
	case 1:
		x = offRight + xoff
	case 2, 3:
		x = xoff
	default:
		w.log.Warn("unknown gravitron direction", "dir", dir)
		return -1, false
	}
	return w.CreateEntity(x, y, KindGravitronEnemy, dir, speed, id)
}

// eachGravitron visits live gravitron enemies whose id is in ids, or all of
// them when ids is empty.
func (w *World) eachGravitron(ids []int, fn func(i int, e *Entity)) {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	w.entities.Each(func(i int, e *Entity) bool {
		if e.Type == TypeGravitronEnemy && (len(ids) == 0 || want[e.ID]) {
			fn(i, e)
		}
		return true
	})
}

// Freeze stops the selected gravitron enemies in place.
func (w *World) Freeze(ids ...int) {
	w.eachGravitron(ids, func(_ int, e *Entity) { e.Freeze = true })
}

// Unfreeze releases frozen gravitron enemies.
func (w *World) Unfreeze(ids ...int) {
	w.eachGravitron(ids, func(_ int, e *Entity) { e.Freeze = false })
}

// Reverse flips the travel direction of the selected enemies.
func (w *World) Reverse(ids ...int) {
	w.eachGravitron(ids, func(_ int, e *Entity) { e.Reverse = true })
}

// Unreverse restores the travel direction.
func (w *World) Unreverse(ids ...int) {
	w.eachGravitron(ids, func(_ int, e *Entity) { e.Reverse = false })
}

// DeleteGroup disables the selected enemies.
func (w *World) DeleteGroup(ids ...int) {
	var doomed []int
	w.eachGravitron(ids, func(i int, _ *Entity) { doomed = append(doomed, i) })
	for _, i := range doomed {
		w.disable(i)
	}
}

// SpeedChange sets the travel speed of the selected enemies.
func (w *World) SpeedChange(speed int, ids ...int) {
	w.eachGravitron(ids, func(_ int, e *Entity) { e.Para = float64(speed) })
}

// MoveGroup shifts the selected enemies vertically by amount, staying inside
// the arena lanes.
func (w *World) MoveGroup(amount int, ids ...int) {
	w.eachGravitron(ids, func(_ int, e *Entity) {
		y := e.Y + float64(amount)
		e.Y = min(max(y, moveMinY), moveMaxY)
	})
}

// SetGravitronColours switches the colour state and repaints every
// gravitron enemy.
func (w *World) SetGravitronColours(t int) {
	w.State.Wave.ColourState = t
	c := GravitronColour(t)
	w.eachGravitron(nil, func(_ int, e *Entity) { e.Colour = c })
}

// stepWave runs one generator tick and advances the survival timer.
func (w *World) stepWave() {
	wave := &w.State.Wave
	w.GenerateWave(wave.Mode)
	wave.Timer++
	if wave.Mode == WaveSuper && wave.Timer%colourPeriod == 0 {
		w.SetGravitronColours((wave.ColourState + 1) % colourStates)
	}
}

// StartWave resets the generator and activates it in the given mode.
func (w *World) StartWave(mode int, practice int) {
	seen := w.State.Wave.Seen
	if seen == nil {
		seen = make(map[int]bool)
	}
	w.State.Wave = Wave{
		Active:      true,
		Mode:        mode,
		Practice:    practice,
		RandDelay:   practice != 0,
		StartDeaths: w.State.Deaths,
		Seen:        seen,
	}
}
