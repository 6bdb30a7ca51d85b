package sim

import "math"

// Snapshot is a flattened copy of the world used for determinism checks and
// run summaries.
type Snapshot struct {
	Frame uint64

	// Each live entity is 12 values: slot, type, rule, state, behave,
	// x, y, vx, vy, drawframe, colour, para.
	EntityCount int
	EntityData  []float64

	// Each live block is 6 ints: slot, type, x, y, w, h.
	BlockCount int
	BlockData  []int

	GravityControl int
	DeathSeq       int
	TotalFlips     int
	Deaths         int
	Trinkets       int
	SavePoint      int
	Requested      int

	WaveState   int
	WaveCounter int
	WaveTimer   int
}

// Snapshot captures the current world.
func (w *World) Snapshot() Snapshot {
	st := w.State
	snap := Snapshot{
		Frame:          w.frame,
		GravityControl: st.GravityControl,
		DeathSeq:       st.DeathSeq,
		TotalFlips:     st.TotalFlips,
		Deaths:         st.Deaths,
		Trinkets:       st.Trinkets(),
		SavePoint:      st.SavePoint,
		Requested:      st.RequestedState,
		WaveState:      st.Wave.State,
		WaveCounter:    st.Wave.Counter,
		WaveTimer:      st.Wave.Timer,
	}

	w.entities.Each(func(i int, e *Entity) bool {
		snap.EntityCount++
		snap.EntityData = append(snap.EntityData,
			float64(i), float64(e.Type), float64(e.Rule), float64(e.State), float64(e.Behave),
			e.X, e.Y, e.VX, e.VY, float64(e.DrawFrame), float64(e.Colour), e.Para)
		return true
	})
	w.blocks.Each(func(i int, b *Block) bool {
		snap.BlockCount++
		snap.BlockData = append(snap.BlockData, i, int(b.Type), b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H)
		return true
	})
	return snap
}

// Hash returns a rolling hash of the snapshot. Equal worlds hash equal.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frame
	for _, v := range []int{
		snap.EntityCount, snap.BlockCount,
		snap.GravityControl, snap.DeathSeq, snap.TotalFlips, snap.Deaths,
		snap.Trinkets, snap.SavePoint, snap.Requested,
		snap.WaveState, snap.WaveCounter, snap.WaveTimer,
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.EntityData {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.BlockData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
