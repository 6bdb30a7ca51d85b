package sim

import (
	"github.com/vovakirdan/flipsim/internal/config"
)

// treadmillTile is the base conveyor tile for levels without a custom
// platform tile.
const treadmillTile = 791

// CreateEntity builds an entity of the given kind at (x, y) and returns its
// index. Optional args are meta1, meta2, p1, p2, p3 and p4 in that order;
// missing ones default to 0, 0, 0, 0, 320 and 240.
//
// Some kinds legitimately produce nothing, for example a coin that was
// already collected. Then it returns (-1, false) and the store is unchanged.
func (w *World) CreateEntity(x, y int, kind Kind, args ...int) (int, bool) {
	a := [6]int{0, 0, 0, 0, 320, 240}
	copy(a[:], args)
	meta1, meta2 := a[0], a[1]
	p1, p2, p3, p4 := a[2], a[3], a[4], a[5]

	st := w.State
	e := newEntity(float64(x), float64(y))

	switch kind {
	case KindPlayer:
		e.Rule = RulePlayer
		e.Type = TypePlayer
		e.Colour = ColourCrewCyan
		e.CX, e.CY, e.W, e.H = 6, 2, 12, 21
		e.Dir = 1
		e.NewX, e.NewY = e.X, e.Y
		e.Invis = meta1 == 1
		e.Gravity = true

	case KindEnemy:
		e.Rule = RuleHarmful
		e.Type = TypeMoving
		e.Behave = meta1
		e.Para = float64(meta2)
		e.X1, e.Y1, e.X2, e.Y2 = p1, p2, p3, p4
		e.Harmful = true
		e.Tile = 24
		e.Colour = ColourEnemyPink
		switch {
		case st.RoomY == 111 && st.RoomX >= 113 && st.RoomX <= 117:
			setEnemy(&e, 0)
			w.setEnemyRoom(&e, st.RoomX, st.RoomY, true)
		case st.RoomX == 113 && st.RoomY >= 108 && st.RoomY <= 110:
			setEnemy(&e, 1)
			w.setEnemyRoom(&e, st.RoomX, st.RoomY, true)
		case st.RoomX == 113 && st.RoomY == 107:
			w.setEnemyRoom(&e, st.RoomX, st.RoomY, false)
		default:
			w.setEnemyRoom(&e, st.RoomX, st.RoomY, false)
			w.cloneFix(&e)
		}

	case KindMovingPlatform:
		e.Rule = RulePlatform
		e.Type = TypeMoving
		e.Size = SizePlatform
		e.Tile = platformTile(st, p1, p2, p3, p4)
		e.W, e.H = 32, 8

		switch {
		case meta1 <= 1, meta1 == 6, meta1 == 7:
			st.VertPlatforms = true
		case meta1 >= 2 && meta1 <= 5, meta1 == 14, meta1 == 15:
			st.HorPlatforms = true
		}
		if meta1 == 10 || meta1 == 11 {
			e.W = 64
			meta1 -= 2
			e.Size = SizeTreadmill
		}
		e.Behave = meta1
		e.Para = float64(meta2)

		if meta1 == 8 || meta1 == 9 {
			st.HorPlatforms = true
			e.Animate = 10
			if st.CustomPlatformTile > 0 {
				e.Tile = st.CustomPlatformTile + 4
				if meta1 == 8 {
					e.Tile += 4
				}
			} else {
				e.Tile = treadmillTile
				if meta1 == 8 {
					e.Tile += 40
				}
			}
			if meta1 == 9 {
				e.Animate = 11
			}
		} else {
			e.Animate = 100
		}
		e.X1, e.Y1, e.X2, e.Y2 = p1, p2, p3, p4
		e.IsPlatform = true
		w.CreateBlock(BlockSolid, x, y, 32, 8, 0, "", false)

	case KindDisappearingPlatform:
		e.Rule = RuleTouch
		e.Type = TypeDisappearingPlatform
		e.Size = SizePlatform
		e.Tile = 2
		switch {
		case st.CustomPlatformTile > 0:
			e.Tile = st.CustomPlatformTile
		case meta1 > 0:
			e.Tile = meta1
		case st.RoomX == 49 && st.RoomY == 52:
			e.Tile = 18
		case st.RoomX == 50 && st.RoomY == 52:
			e.Tile = 22
		}
		e.CY = -1
		e.W, e.H = 32, 10
		e.Behave = meta1
		e.Para = float64(meta2)
		e.OnEntity = 1
		e.Animate = 100
		w.CreateBlock(BlockSolid, x, y, 32, 8, 0, "", false)

	case KindBreakableBlock:
		e.Rule = RuleCrew
		e.Type = TypeQuicksand
		e.Size = SizeTile
		e.Tile = 10
		e.CY = -1
		e.W, e.H = 8, 10
		e.Behave = meta1
		e.Para = float64(meta2)
		e.OnEntity = 1
		e.Animate = 100
		w.CreateBlock(BlockSolid, x, y, 8, 8, 0, "", false)

	case KindGravityToken:
		e.Rule = RuleTouch
		e.Type = TypeGravityToken
		e.Tile = 11
		e.Behave = meta1
		e.Para = float64(meta2)
		e.OnEntity = 1
		e.Animate = 100

	case KindParticleRed, KindParticleCyan:
		e.Rule = RulePlatform
		e.Type = TypeParticle
		e.Colour = ColourParticleRed
		if kind == KindParticleCyan {
			e.Colour = ColourCrewCyan
		}
		e.Size = SizeParticle
		e.VX = float64(meta1)
		e.VY = float64(meta2)
		e.Life = 12

	case KindCoin:
		e.Rule = RuleTouch
		e.Type = TypeCoin
		e.Size = SizeCoin
		e.Colour = ColourCoin
		e.Tile = 48
		e.W, e.H = 8, 8
		e.OnEntity = 1
		e.Animate = 100
		e.Para = float64(meta1)
		if meta1 < 0 || meta1 >= CollectSlots || st.Collect[meta1] {
			return -1, false
		}

	case KindTrinket:
		e.Rule = RuleTouch
		e.Type = TypeTrinket
		e.Tile = 22
		e.Colour = ColourTrinket
		e.OnEntity = 1
		e.Animate = 100
		e.Para = float64(meta1)
		if meta1 < 0 || meta1 >= CollectSlots || st.Collect[meta1] {
			return -1, false
		}

	case KindCheckpoint:
		e.Rule = RuleTouch
		e.Type = TypeCheckpoint
		e.Tile = 20 + meta1
		e.Colour = ColourInactiveEntity
		e.OnEntity = 1
		e.Animate = 100
		e.Para = float64(meta2)
		if st.SavePoint == meta2 {
			e.Colour = ColourActiveEntity
			e.OnEntity = 0
		}
		if st.NoDeathMode {
			return -1, false
		}

	case KindHorizontalLine:
		e.Rule = RuleHLine
		e.Type = TypeHorizontalGravityLine
		e.Size = SizeHLine
		e.Colour = ColourGravityLineActive
		e.W, e.H = meta1, 1
		e.OnEntity = 1

	case KindVerticalLine:
		e.Rule = RuleVLine
		e.Type = TypeVerticalGravityLine
		e.Size = SizeVLine
		e.Colour = ColourGravityLineActive
		e.W, e.H = 1, meta1
		e.OnEntity = 1

	case KindWarpToken:
		e.Rule = RuleTouch
		e.Type = TypeWarpToken
		e.Tile = 18
		e.Colour = ColourWarpToken
		e.OnEntity = 1
		e.Animate = 2
		e.Behave = meta1
		e.Para = float64(meta2)

	case KindTeleporter:
		e.Rule = RuleTouch
		e.Type = TypeTeleporter
		e.Size = SizeTeleporter
		e.Tile = 1
		e.W, e.H = 96, 96
		e.Colour = ColourTeleporterInactive
		e.OnEntity = 1
		e.Animate = 100
		e.Para = float64(meta2)

	case KindCrewGreen, KindCrewYellow, KindCrewBlue, KindCrewRed:
		humanoid(&e)
		e.Type = TypeCrewmate
		e.Rule = RuleCrew
		e.State = meta1
		switch kind {
		case KindCrewGreen:
			e.Tile, e.Colour, e.Dir = 144, ColourCrewGreen, 0
		case KindCrewYellow:
			e.Rule = RuleCrewInverted
			e.Tile, e.Colour, e.Dir = 150, ColourCrewYellow, 1
		case KindCrewBlue:
			e.Tile, e.Colour, e.Dir = 144, ColourCrewBlue, 1
		case KindCrewRed:
			e.Tile, e.Colour, e.Dir = 0, ColourEnemyRed, 1
		}

	case KindCrewScripted:
		humanoid(&e)
		e.Type = TypeCrewmate
		e.Rule = RuleCrew
		e.Colour = Colour(meta1)
		if meta2 != 0 {
			e.Tile = 144
		}
		e.State = p1
		e.Para = float64(p2)
		if p1 == 17 {
			e.Dir = p2
		}

	case KindTerminal, KindTerminalQuiet:
		e.Rule = RuleTouch
		e.Type = TypeTerminal
		e.Tile = 16 + meta1
		e.Colour = ColourInactiveEntity
		e.OnEntity = 1
		if kind == KindTerminalQuiet {
			e.OnEntity = 0
		}
		e.Animate = 100
		e.Para = float64(meta2)

	case KindFakeTrinket:
		e.Rule = RuleTouch
		e.Type = TypeTrinket
		e.Tile = 22
		e.Colour = ColourTrinket
		e.Animate = 100
		e.Para = float64(meta1)
		if meta1 >= 0 && meta1 < CollectSlots && !st.Collect[meta1] {
			return -1, false
		}

	case KindGravitronEnemy:
		e.Rule = RuleHarmful
		e.Type = TypeGravitronEnemy
		e.Behave = meta1
		e.Para = float64(meta2)
		e.ID = p1
		if e.Behave == 3 {
			e.Timer = st.Wave.Timer + st.Wave.HomingTimer
		}
		e.X1, e.Y1, e.X2, e.Y2 = -2000, -100, 5200, 340
		e.Harmful = true
		e.Size = SizeGravitron
		e.Colour = ColourEnemyGravitron
		e.Tile = 78
		e.Animate = 1
		if st.Wave.Mode == WaveSuper {
			e.Colour = GravitronColour(st.Wave.ColourState)
		}

	case KindSuperCrewmate:
		humanoid(&e)
		e.Rule = RuleCrew
		e.Type = TypeSuperCrewmate
		e.Colour = Colour(meta1)
		mood := meta2
		if mood == 2 {
			// Victoria is sad in the final stretch, everyone else is happy.
			mood = 0
			if Colour(meta1) == ColourCrewBlue {
				mood = 1
			}
		}
		if mood != 0 {
			e.Tile = 144
		}
		e.Dir = 1
		e.X1, e.Y1, e.X2, e.Y2 = -2000, -100, 5200, 340
		e.State = p1
		e.Para = float64(p2)
		if p1 == 17 {
			e.Dir = p2
		}

	case KindTrophy:
		e.Rule = RuleTouch
		e.Type = TypeTrophy
		e.Colour = ColourInactiveEntity
		e.OnEntity = 1
		e.Animate = 100
		e.Para = float64(meta2)
		w.decorateTrophy(&e, meta1, meta2)

	case KindSuperWarpToken:
		e.Rule = RuleTouch
		e.Type = TypeWarpToken
		e.Size = SizeLargeTrophy
		e.Tile = 18
		e.Colour = ColourTrinket
		e.Animate = 100
		e.Para = float64(meta2)

	case KindWarpLineLeft, KindWarpLineRight, KindWarpLineTop, KindWarpLineBottom:
		e.OnEntity = 1
		e.Invis = true
		switch kind {
		case KindWarpLineLeft, KindWarpLineRight:
			e.Type = TypeWarpLineLeft
			if kind == KindWarpLineRight {
				e.Type = TypeWarpLineRight
			}
			e.Rule = RuleVLine
			e.Size = SizeVLine
			e.W, e.H = 1, meta1
		default:
			e.Type = TypeWarpLineTop
			if kind == KindWarpLineBottom {
				e.Type = TypeWarpLineBottom
			}
			e.Rule = RuleCrewInverted
			e.Size = SizeHLine
			e.W, e.H = meta1, 1
		}
		if st.CustomMode {
			st.CustomWarpMode = true
			st.WarpX = false
			st.WarpY = false
		}

	case KindCollectableCrewmate:
		humanoid(&e)
		e.Rule = RuleTouch
		e.Type = TypeCollectableCrewmate
		if meta2 >= 0 && meta2 < CollectSlots && st.CustomCrewMoods[meta2] {
			e.Tile = 144
		}
		e.Colour = CrewColour(meta2)
		e.OnEntity = 1
		e.Para = float64(meta1)
		if meta1 < 0 || meta1 >= CollectSlots || st.CustomCollect[meta1] {
			return -1, false
		}

	case KindCustomEnemy:
		e.Rule = RuleHarmful
		e.Type = TypeMoving
		e.Behave = meta1
		e.Para = float64(meta2)
		e.X1, e.Y1, e.X2, e.Y2 = p1, p2, p3, p4
		e.Harmful = true
		e.Tile = 24
		e.Colour = ColourEnemyPink
		rx, ry := customEnemyRoom(st.CustomEnemy)
		w.setEnemyRoom(&e, rx, ry, false)
		if st.CustomPlatformTile > 0 {
			e.Colour = customEnemyColour(st.CustomPlatformTile)
		}
		if st.CustomGray {
			e.Colour = ColourEnemyGray
		}
		w.cloneFix(&e)

	case KindTeleporterStub:
		e.Type = TypeTeleporter

	default:
		w.log.Warn("unknown entity kind", "kind", int(kind), "x", x, "y", y)
		return -1, false
	}

	e.LerpOldX, e.LerpOldY = e.X, e.Y
	e.DrawFrame = e.Tile

	i := w.entities.Allocate(e)
	w.lastCreated = i

	// Crewmates settle their facing direction immediately.
	if e.Type == TypeCrewmate {
		w.updateEntity(i)
	}
	return i, true
}

func humanoid(e *Entity) {
	e.CX, e.CY, e.W, e.H = 6, 2, 12, 21
	e.Gravity = true
}

// platformTile picks a moving platform's tile from the level settings, then
// from the movement bounds of known rooms.
func platformTile(st *State, p1, p2, p3, p4 int) int {
	switch {
	case st.CustomPlatformTile > 0:
		return st.CustomPlatformTile
	case st.PlatformTile > 0:
		return st.PlatformTile
	}
	bounds := [4]int{p1, p2, p3, p4}
	switch bounds {
	case [4]int{100, 70, 320, 160}:
		return 616
	case [4]int{72, 0, 248, 240}:
		return 610
	case [4]int{-20, 0, 320, 240}:
		return 413
	case [4]int{-96, -72, 400, 312}:
		return 26
	case [4]int{-32, -40, 352, 264}:
		return 27
	}
	return 1
}

// setEnemy turns a plain enemy into an emitter (para 0) or its projectile
// (para 1). Style 0 is the horizontal emitter, style 1 the vertical one.
func setEnemy(e *Entity, style int) {
	switch style {
	case 0:
		switch e.Para {
		case 0:
			e.Tile, e.Animate, e.Colour = 60, 2, ColourEnemyRed
			e.Behave = 10
			e.W, e.H = 32, 32
			e.X1 = -200
		case 1:
			e.Y += 10
			e.LerpOldY += 10
			e.Tile, e.Animate, e.Colour = 63, 100, ColourEnemyRed
			e.Behave = 11
			e.Para = 9
			e.W, e.H = 26, 10
			e.CX, e.CY = 1, 1
		}
	case 1:
		switch e.Para {
		case 0:
			e.Tile, e.Animate, e.Colour = 72, 3, ColourEnemyRed
			e.Size = SizeBigSprite
			e.Behave = 12
			e.W, e.H = 64, 40
			e.CX, e.CY = 0, 24
		case 1:
			e.Tile, e.Animate, e.Colour = 76, 100, ColourEnemyRed
			e.Behave = 13
			e.Para = -6
			e.W, e.H = 32, 12
			e.CX, e.CY = 0, 6
			e.Size = SizeCloud
		}
	}
}

// setEnemyRoom applies the configured enemy style for room (rx, ry). With
// colourOnly only the colour is taken. Rooms without a style keep the
// plain enemy sprite.
func (w *World) setEnemyRoom(e *Entity, rx, ry int, colourOnly bool) {
	style, ok := findEnemyRoom(w.cfg.EnemyRooms, rx, ry)
	if !ok {
		return
	}
	if style.Colour != "" {
		e.Colour = EnemyColour(style.Colour)
	}
	if colourOnly {
		return
	}
	e.Tile = style.Tile
	e.Animate = style.Animate
	if style.Size != 0 {
		e.Size = style.Size
	}
	if style.W > 0 && style.H > 0 {
		e.W, e.H = style.W, style.H
	}
}

func findEnemyRoom(rooms []config.EnemyRoomConfig, rx, ry int) (config.EnemyRoomConfig, bool) {
	for _, r := range rooms {
		if r.RoomX == rx && r.RoomY == ry {
			return r, true
		}
	}
	return config.EnemyRoomConfig{}, false
}

// customEnemyRoom maps a custom level's enemy style to the room whose
// enemies it borrows.
func customEnemyRoom(style int) (int, int) {
	rooms := [...][2]int{
		{104, 100}, {102, 100}, {112, 103}, {113, 112}, {116, 109},
		{119, 101}, {119, 102}, {118, 103}, {116, 100}, {114, 102},
	}
	if style < 0 || style >= len(rooms) {
		return 104, 100
	}
	return rooms[style][0], rooms[style][1]
}

// cloneFix stops emitters from spawning outside their home rooms.
func (w *World) cloneFix(e *Entity) {
	liesEmitter := e.Behave == 10
	factoryEmitter := e.Behave == 12
	if !liesEmitter && !factoryEmitter {
		return
	}
	st := w.State
	inLies := st.RoomX >= 113 && st.RoomX <= 117 && st.RoomY == 111
	inFactory := st.RoomX == 113 && st.RoomY >= 108 && st.RoomY <= 110
	if (liesEmitter && inLies) || (factoryEmitter && inFactory) {
		return
	}
	e.Behave = -1
}

// decorateTrophy picks the trophy sprite for achievement meta2 depending on
// the player's recorded progress. meta1 offsets the tile.
func (w *World) decorateTrophy(e *Entity, meta1, meta2 int) {
	e.Tile = 180 + meta1
	p := w.store

	rankTrophy := func(trial int, c Colour, tile int) {
		if p.BestRank(trial) >= 3 {
			e.Tile = tile + meta1
			e.Colour = c
		}
	}
	deathTrophy := func(limit int, c Colour) {
		if d := p.BestGameDeaths(); d > -1 && d <= limit {
			e.Tile = 182 + meta1
			e.Colour = c
		}
	}
	gravitronTrophy := func(rank int, c Colour) {
		if p.GravitronBestRank() >= rank {
			e.Tile = 182 + meta1
			e.Colour = c
		}
	}

	switch meta2 {
	case 1:
		rankTrophy(0, ColourTrophySpaceStation1, 184)
	case 2:
		rankTrophy(1, ColourTrophyLaboratory, 186)
	case 3:
		rankTrophy(2, ColourTrophyTower, 184)
	case 4:
		rankTrophy(3, ColourTrophySpaceStation2, 184)
	case 5:
		rankTrophy(4, ColourTrophyWarpZone, 184)
	case 6:
		rankTrophy(5, ColourTrophyFinalLevel, 184)
	case 7:
		if p.Unlocked(UnlockGameComplete) {
			e.Tile = 188 + meta1
			e.Colour = ColourTrophyGameComplete
			e.H += 3
			e.Y -= 3
		}
	case 8:
		if p.Unlocked(UnlockFlipModeComplete) {
			e.Tile = 188 + meta1
			e.Colour = ColourTrophyGameComplete
			e.H += 3
		}
	case 9:
		deathTrophy(50, ColourTrophyFlashy)
	case 10:
		deathTrophy(100, ColourTrophyGold)
	case 11:
		deathTrophy(250, ColourTrophySilver)
	case 12:
		deathTrophy(500, ColourTrophyBronze)
	case 13:
		gravitronTrophy(1, ColourTrophyBronze)
	case 14:
		gravitronTrophy(2, ColourTrophyBronze)
	case 15:
		gravitronTrophy(3, ColourTrophyBronze)
	case 16:
		gravitronTrophy(4, ColourTrophySilver)
	case 17:
		gravitronTrophy(5, ColourTrophyGold)
	case 18:
		gravitronTrophy(6, ColourTrophyFlashy)
	case 19:
		if p.Unlocked(UnlockNoDeathComplete) {
			e.Tile = 3
			e.Colour = ColourTeleporterFlashing
			e.Size = SizeLargeTrophy
			e.X -= 64
			e.Y -= 128
		}
	}
}
