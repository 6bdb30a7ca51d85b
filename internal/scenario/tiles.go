package scenario

import (
	"github.com/vovakirdan/flipsim/internal/sim"
)

// Room grid size in 8x8 cells.
const (
	GridW = 40
	GridH = 30
)

// Tile glyphs used in room layouts.
const (
	TileEmpty      = '.'
	TileSolid      = '#'
	TileSpikeUp    = '^' // floor spike
	TileSpikeDown  = 'v' // ceiling spike
	TileBackground = ':'
)

// Tiles is a parsed room layout. It answers tile collision queries for the
// simulation.
type Tiles struct {
	cells [GridH][GridW]byte
}

var _ sim.TileCollisionOracle = (*Tiles)(nil)

// ParseTiles reads a layout of up to GridH rows of up to GridW glyphs.
// Missing cells are empty.
func ParseTiles(rows []string) *Tiles {
	t := &Tiles{}
	for y := range t.cells {
		for x := range t.cells[y] {
			t.cells[y][x] = TileEmpty
		}
	}
	for y, row := range rows {
		if y >= GridH {
			break
		}
		for x := 0; x < len(row) && x < GridW; x++ {
			t.cells[y][x] = row[x]
		}
	}
	return t
}

// At returns the glyph at a cell, or 0 outside the room.
func (t *Tiles) At(gx, gy int) byte {
	if gx < 0 || gy < 0 || gx >= GridW || gy >= GridH {
		return 0
	}
	return t.cells[gy][gx]
}

func isSpike(c byte) bool {
	return c == TileSpikeUp || c == TileSpikeDown
}

// Collide reports whether a cell is solid. Spikes are solid only to
// invincible entities, which would otherwise fall through them.
func (t *Tiles) Collide(gx, gy int, invincible bool) bool {
	c := t.At(gx, gy)
	if c == TileSolid {
		return true
	}
	return invincible && isSpike(c)
}

// TowerSpikeCollide reports whether a cell holds a spike.
func (t *Tiles) TowerSpikeCollide(gx, gy int) bool {
	return isSpike(t.At(gx, gy))
}

// SpikeBlocks creates the damage blocks covering the sharp half of every
// spike cell.
func (t *Tiles) SpikeBlocks(w *sim.World) int {
	n := 0
	for gy := 0; gy < GridH; gy++ {
		for gx := 0; gx < GridW; gx++ {
			switch t.cells[gy][gx] {
			case TileSpikeUp:
				w.CreateBlock(sim.BlockDamage, gx*8, gy*8+4, 8, 4, 0, "", false)
			case TileSpikeDown:
				w.CreateBlock(sim.BlockDamage, gx*8, gy*8, 8, 4, 0, "", false)
			default:
				continue
			}
			n++
		}
	}
	return n
}
