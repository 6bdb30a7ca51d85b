package sim

import "strings"

// Colour is an entity palette index. Crew colours keep the small values
// scripts use to address crewmates; the rest start at 30.
type Colour int

const (
	ColourCrewCyan   Colour = 0
	ColourCrewGreen  Colour = 13
	ColourCrewYellow Colour = 14
	ColourCrewRed    Colour = 15
	ColourCrewBlue   Colour = 16
	ColourGray       Colour = 19
	ColourCrewPurple Colour = 20
)

const (
	ColourEnemyPink Colour = iota + 30
	ColourEnemyRed
	ColourEnemyYellow
	ColourEnemyCyan
	ColourEnemyGreen
	ColourEnemyBlue
	ColourEnemyOrange
	ColourEnemyGray
	ColourEnemyGravitron
	ColourParticleRed
	ColourCoin
	ColourTrinket
	ColourInactiveEntity
	ColourActiveEntity
	ColourGravityLineActive
	ColourGravityLineInactive
	ColourWarpToken
	ColourTeleporterInactive
	ColourTeleporterActive
	ColourTeleporterFlashing
	ColourTrophySpaceStation1
	ColourTrophyLaboratory
	ColourTrophyTower
	ColourTrophySpaceStation2
	ColourTrophyWarpZone
	ColourTrophyFinalLevel
	ColourTrophyGameComplete
	ColourTrophyFlashy
	ColourTrophyGold
	ColourTrophySilver
	ColourTrophyBronze
)

var enemyColourNames = map[string]Colour{
	"pink":      ColourEnemyPink,
	"red":       ColourEnemyRed,
	"yellow":    ColourEnemyYellow,
	"cyan":      ColourEnemyCyan,
	"green":     ColourEnemyGreen,
	"blue":      ColourEnemyBlue,
	"orange":    ColourEnemyOrange,
	"gray":      ColourEnemyGray,
	"purple":    ColourCrewPurple,
	"gravitron": ColourEnemyGravitron,
}

// EnemyColour maps a config colour name to an enemy colour. Unknown names
// fall back to pink, the plain enemy colour.
func EnemyColour(name string) Colour {
	if c, ok := enemyColourNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return ColourEnemyPink
}

// CrewColour returns the colour of crew member i in crew order
// (cyan, purple, yellow, red, green, blue). Out-of-range indices are cyan.
func CrewColour(i int) Colour {
	switch i {
	case 1:
		return ColourCrewPurple
	case 2:
		return ColourCrewYellow
	case 3:
		return ColourCrewRed
	case 4:
		return ColourCrewGreen
	case 5:
		return ColourCrewBlue
	default:
		return ColourCrewCyan
	}
}

// GravitronColour returns the super-gravitron enemy colour for colour state t.
func GravitronColour(t int) Colour {
	switch t {
	case 0:
		return ColourEnemyCyan
	case 1:
		return ColourEnemyRed
	case 2:
		return ColourEnemyPink
	case 3:
		return ColourEnemyBlue
	case 4:
		return ColourEnemyYellow
	case 5:
		return ColourEnemyGreen
	default:
		return ColourCrewCyan
	}
}

// customEnemyColour picks an enemy colour from a level's custom platform
// tile, grouped by tileset column.
func customEnemyColour(platformTile int) Colour {
	switch platformTile / 12 {
	case 3, 7, 12, 23, 28, 34, 42, 48, 58:
		return ColourEnemyRed
	case 5, 9, 22, 25, 29, 31, 38, 46, 52, 53:
		return ColourEnemyGreen
	case 1, 6, 14, 27, 33, 44, 50, 57:
		return ColourEnemyBlue
	case 4, 17, 24, 30, 37, 45, 51, 55:
		return ColourEnemyYellow
	case 2, 11, 15, 19, 32, 36, 49:
		return ColourCrewPurple
	case 8, 10, 13, 18, 26, 35, 41, 47, 54:
		return ColourEnemyCyan
	case 16, 20, 39, 43, 56:
		return ColourEnemyPink
	case 21, 40:
		return ColourEnemyOrange
	default:
		return ColourEnemyRed
	}
}
