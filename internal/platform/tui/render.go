package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flipsim/internal/core"
)

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// colorStyles maps the room palette to ANSI 256 styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorWall:     fg("61"),
	core.ColorSpike:    fg("252"),
	core.ColorBackdrop: fg("236"),
	core.ColorHUD:      fg("15"),
	core.ColorPrompt:   fg("11"),

	core.ColorViridian:  fg("87"),
	core.ColorVerdigris: fg("120"),
	core.ColorVitellary: fg("228"),
	core.ColorVermilion: fg("203"),
	core.ColorVictoria:  fg("75"),
	core.ColorViolet:    fg("177"),

	core.ColorEnemyPink:   fg("213"),
	core.ColorEnemyRed:    fg("1"),
	core.ColorEnemyYellow: fg("3"),
	core.ColorEnemyCyan:   fg("6"),
	core.ColorEnemyGreen:  fg("2"),
	core.ColorEnemyBlue:   fg("4"),
	core.ColorEnemyOrange: fg("208"),
	core.ColorGravitron:   fg("9"),

	core.ColorCoin:        fg("220"),
	core.ColorTrinket:     fg("231"),
	core.ColorActive:      fg("15"),
	core.ColorInactive:    fg("245"),
	core.ColorGravityLine: fg("7"),
	core.ColorWarp:        fg("13"),
	core.ColorFlash:       fg("226"),
}

// RenderScreen converts a Screen buffer to a styled string. Runs of cells
// sharing a color are styled together.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
