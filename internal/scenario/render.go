package scenario

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/flipsim/internal/core"
	"github.com/vovakirdan/flipsim/internal/sim"
)

// One screen cell covers 4x8 room pixels, so the 320x240 room fills 80x30
// cells. Two HUD rows sit below it.
const (
	cellW = 4
	cellH = 8

	ViewW = GridW * 8 / cellW
	ViewH = GridH*8/cellH + 2
)

var colourMap = map[sim.Colour]core.Color{
	sim.ColourCrewCyan:            core.ColorViridian,
	sim.ColourCrewGreen:           core.ColorVerdigris,
	sim.ColourCrewYellow:          core.ColorVitellary,
	sim.ColourCrewRed:             core.ColorVermilion,
	sim.ColourCrewBlue:            core.ColorVictoria,
	sim.ColourCrewPurple:          core.ColorViolet,
	sim.ColourGray:                core.ColorInactive,
	sim.ColourEnemyPink:           core.ColorEnemyPink,
	sim.ColourEnemyRed:            core.ColorEnemyRed,
	sim.ColourEnemyYellow:         core.ColorEnemyYellow,
	sim.ColourEnemyCyan:           core.ColorEnemyCyan,
	sim.ColourEnemyGreen:          core.ColorEnemyGreen,
	sim.ColourEnemyBlue:           core.ColorEnemyBlue,
	sim.ColourEnemyOrange:         core.ColorEnemyOrange,
	sim.ColourEnemyGray:           core.ColorInactive,
	sim.ColourEnemyGravitron:      core.ColorGravitron,
	sim.ColourParticleRed:         core.ColorEnemyRed,
	sim.ColourCoin:                core.ColorCoin,
	sim.ColourTrinket:             core.ColorTrinket,
	sim.ColourInactiveEntity:      core.ColorInactive,
	sim.ColourActiveEntity:        core.ColorActive,
	sim.ColourGravityLineActive:   core.ColorGravityLine,
	sim.ColourGravityLineInactive: core.ColorInactive,
	sim.ColourWarpToken:           core.ColorWarp,
	sim.ColourTeleporterInactive:  core.ColorInactive,
	sim.ColourTeleporterActive:    core.ColorActive,
	sim.ColourTeleporterFlashing:  core.ColorFlash,
}

func cellColor(c sim.Colour) core.Color {
	if col, ok := colourMap[c]; ok {
		return col
	}
	return core.ColorDefault
}

// glyph picks the rune an entity is drawn with.
func glyph(e *sim.Entity, flipped bool) rune {
	switch e.Type {
	case sim.TypePlayer:
		if flipped {
			return 'A'
		}
		return 'V'
	case sim.TypeCrewmate, sim.TypeSuperCrewmate, sim.TypeCollectableCrewmate:
		return 'v'
	case sim.TypeMoving:
		if e.IsPlatform {
			return '='
		}
		return 'X'
	case sim.TypeGravitronEnemy:
		if e.Behave == 1 {
			return '<'
		}
		return '>'
	case sim.TypeDisappearingPlatform:
		return '~'
	case sim.TypeQuicksand:
		return '%'
	case sim.TypeCoin:
		return 'o'
	case sim.TypeTrinket:
		return '*'
	case sim.TypeCheckpoint:
		return 'C'
	case sim.TypeHorizontalGravityLine:
		return '-'
	case sim.TypeVerticalGravityLine:
		return '|'
	case sim.TypeTerminal:
		return 'T'
	case sim.TypeTeleporter:
		return 'O'
	case sim.TypeWarpToken:
		return '@'
	case sim.TypeParticle:
		return '.'
	}
	return '?'
}

// Render draws the room, its entities and the HUD.
func (r *Room) Render(dst *core.Screen) {
	if r.world == nil {
		return
	}
	ox := (dst.Width() - ViewW) / 2
	if ox < 0 {
		ox = 0
	}

	r.drawTiles(dst, ox)
	r.drawEntities(dst, ox)
	r.drawHUD(dst, ox)

	if r.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if r.gameOver {
		st := r.State()
		drawCenteredMessage(dst, "ROOM CLEAR",
			fmt.Sprintf("Trinkets %d  Deaths %d  |  Press Esc for menu", st.Score, st.Deaths))
	}
}

func (r *Room) drawTiles(dst *core.Screen, ox int) {
	for gy := 0; gy < GridH; gy++ {
		for gx := 0; gx < GridW; gx++ {
			var ch rune
			col := core.ColorBackdrop
			switch c := r.tiles.At(gx, gy); c {
			case TileSolid:
				ch, col = '█', core.ColorWall
			case TileSpikeUp:
				ch, col = '▲', core.ColorSpike
			case TileSpikeDown:
				ch, col = '▼', core.ColorSpike
			case TileBackground:
				ch = '·'
			default:
				continue
			}
			dst.SetColored(ox+gx*2, gy, ch, col)
			dst.SetColored(ox+gx*2+1, gy, ch, col)
		}
	}
}

func (r *Room) drawEntities(dst *core.Screen, ox int) {
	flipped := r.world.State.GravityControl == 1
	r.world.EachEntity(func(_ int, e *sim.Entity) bool {
		if e.Invis {
			return true
		}
		if e.Type == sim.TypePlayer && r.dying && r.world.State.DeathSeq%4 < 2 {
			return true
		}
		box := e.Box()
		cw := max(1, box.W/cellW)
		ch := max(1, box.H/cellH)
		x0 := ox + box.X/cellW
		y0 := box.Y / cellH
		g, col := glyph(e, flipped), cellColor(e.Colour)
		for y := max(y0, 0); y < y0+ch && y < GridH; y++ {
			for x := max(x0, ox); x < x0+cw && x < ox+ViewW; x++ {
				dst.SetColored(x, y, g, col)
			}
		}
		return true
	})
}

func (r *Room) drawHUD(dst *core.Screen, ox int) {
	st := r.world.State
	hud := fmt.Sprintf(" %s  Trinkets: %d  Deaths: %d  Flips: %d ",
		r.def.Title, st.Trinkets(), st.Deaths, st.TotalFlips)
	if st.Wave.Active {
		hud += fmt.Sprintf(" Time: %d.%02d ", st.Wave.Timer/30, st.Wave.Timer%30*100/30)
		if st.Wave.PatternName != "" {
			hud += " [" + st.Wave.PatternName + "] "
		}
	}
	dst.DrawText(ox, GridH, hud, core.ColorHUD)

	line := r.message
	if line == "" {
		if b, ok := r.world.Block(r.world.CheckActivity()); ok && b.Prompt != "" {
			line = strings.ReplaceAll(b.Prompt, "{button}", "Enter")
		}
	}
	if line != "" {
		dst.DrawText(ox+1, GridH+1, line, core.ColorPrompt)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	rect := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(rect, ' ', core.ColorDefault)
	dst.DrawBox(rect, core.ColorHUD)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorHUD)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorDefault)
}
