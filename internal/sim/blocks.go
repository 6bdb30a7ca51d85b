package sim

import (
	"github.com/vovakirdan/flipsim/internal/core"
)

// customActivityID is the activity trigger reserved for level-defined
// scripts named by State.CustomScript.
const customActivityID = 35

// CreateBlock adds a block and returns its index. trig is the trigger id for
// trigger blocks, the side for directional blocks and the activity table key
// for activity zones. custom marks an activity zone placed by a custom level.
//
// The pending custom activity overrides in State apply to whichever block is
// created next and are consumed here.
func (w *World) CreateBlock(t BlockType, x, y, wd, ht int, trig int, script string, custom bool) int {
	b := Block{
		Type: t,
		Rect: core.NewRect(x, y, wd, ht),
	}

	switch t {
	case BlockSolid, BlockSafe:
		b.X, b.Y = x, y
		b.Anchored = true
	case BlockTrigger:
		b.Trigger = trig
		b.Script = script
	case BlockDirectional:
		b.Trigger = trig
	case BlockActivity:
		w.applyActivity(&b, trig, custom)
	}

	st := w.State
	if st.CustomActivityText != "" {
		b.Prompt = st.CustomActivityText
		b.GetText = false
		st.CustomActivityText = ""
	} else {
		b.GetText = true
	}
	if st.CustomActivityColour != "" {
		b.Colour = st.CustomActivityColour
		st.CustomActivityColour = ""
	}
	if st.CustomActivityPositionY != -1 {
		b.ActivityY = st.CustomActivityPositionY
		st.CustomActivityPositionY = -1
	}

	return w.blocks.Allocate(b)
}

// applyActivity fills an activity zone from the activity table. Unknown ids
// leave the prompt and script empty.
func (w *World) applyActivity(b *Block, trig int, custom bool) {
	if trig == customActivityID {
		if custom {
			b.Prompt = "Press {button} to interact"
		} else {
			b.Prompt = "Press {button} to activate terminal"
		}
		b.Script = "custom_" + w.State.CustomScript
		b.Colour = "orange"
		return
	}
	a, ok := w.cfg.Activities[trig]
	if !ok {
		w.log.Warn("unknown activity zone", "trigger", trig)
		return
	}
	b.Prompt = a.Prompt
	b.Script = a.Script
	b.Colour = a.Colour
}

// DisableBlock frees block i.
func (w *World) DisableBlock(i int) error {
	if err := w.blocks.Release(i); err != nil {
		w.log.Warn("disable block failed", "index", i, "err", err)
		return err
	}
	return nil
}

// DisableBlockAt frees every live block anchored at (x, y).
func (w *World) DisableBlockAt(x, y int) {
	for i := 0; i < w.blocks.Len(); i++ {
		b, ok := w.blocks.Get(i)
		if !ok || !b.Anchored || b.X != x || b.Y != y {
			continue
		}
		_ = w.blocks.Release(i)
	}
}

// MoveBlockTo moves the first block anchored at (x1, y1) to (x2, y2) and
// resizes it. A block that was freed at (x1, y1) and not yet reused comes
// back to life, which is how a platform's companion block is restored after
// a rider temporarily disabled it.
func (w *World) MoveBlockTo(x1, y1, x2, y2, wd, ht int) bool {
	for i := 0; i < w.blocks.Len(); i++ {
		b := w.blocks.At(i)
		if !b.Anchored || b.X != x1 || b.Y != y1 {
			continue
		}
		if !w.blocks.Live(i) {
			w.blocks.Revive(i)
		}
		b.X, b.Y = x2, y2
		b.Rect = core.NewRect(x2, y2, wd, ht)
		return true
	}
	return false
}

// RemoveTrigger frees every trigger block with id t.
func (w *World) RemoveTrigger(t int) {
	w.blocks.Each(func(i int, b *Block) bool {
		if b.Type == BlockTrigger && b.Trigger == t {
			_ = w.blocks.Release(i)
		}
		return true
	})
}

// RemoveAllBlocks drops every block.
func (w *World) RemoveAllBlocks() {
	w.blocks.Reset()
}
