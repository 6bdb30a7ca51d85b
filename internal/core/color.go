package core

// Color is the foreground of a screen cell. Values name what is drawn, the
// platform layer picks the terminal color for each.
type Color uint8

const (
	ColorDefault Color = iota

	// Room tiles and text.
	ColorWall
	ColorSpike
	ColorBackdrop
	ColorHUD
	ColorPrompt

	// Crew, one per crewmate.
	ColorViridian
	ColorVerdigris
	ColorVitellary
	ColorVermilion
	ColorVictoria
	ColorViolet

	ColorEnemyPink
	ColorEnemyRed
	ColorEnemyYellow
	ColorEnemyCyan
	ColorEnemyGreen
	ColorEnemyBlue
	ColorEnemyOrange
	ColorGravitron

	// Pickups, checkpoints, lines and teleporters.
	ColorCoin
	ColorTrinket
	ColorActive
	ColorInactive
	ColorGravityLine
	ColorWarp
	ColorFlash
)
