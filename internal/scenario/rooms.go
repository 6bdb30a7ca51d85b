package scenario

import (
	"github.com/vovakirdan/flipsim/internal/registry"
	"github.com/vovakirdan/flipsim/internal/sim"
)

// Survival goals in frames.
const (
	gravitronGoal      = 60 * 30
	superGravitronGoal = 120 * 30
)

var labTiles = []string{
	"########################################",
	"########################################",
	"##........................vvvvvv......##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##..........................############",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##########............................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##................^^^^^^..............##",
	"########################################",
	"########################################",
}

var stationTiles = []string{
	"########################################",
	"########################################",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"##....................................##",
	"############................############",
	"############^^^^^^^^^^^^^^^^############",
}

var arenaTiles = []string{
	"########################################",
	"########################################",
	"########################################",
	"########################################",
	"::::::::::::::::::::::::::::::::::::::::",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"::::::::::::::::::::::::::::::::::::::::",
	"########################################",
	"########################################",
	"########################################",
	"########################################",
}

// Lab is a single room of gravity lines, patrolling enemies and pickups.
func Lab() Definition {
	return Definition{
		ID:    "lab",
		Title: "The Laboratory",
		Tiles: labTiles,
		RoomX: 102,
		RoomY: 116,
		Start: Spawn{X: 40, Y: 201, Dir: 1},
		Populate: func(w *sim.World) {
			w.CreateEntity(24, 208, sim.KindCheckpoint, 1, 1)
			w.CreateEntity(272, 16, sim.KindCheckpoint, 0, 2)

			w.CreateEntity(96, 120, sim.KindHorizontalLine, 96)
			w.CreateEntity(232, 24, sim.KindVerticalLine, 80)

			w.CreateEntity(240, 180, sim.KindEnemy, 2, 3, 200, 16, 304, 224)
			w.CreateEntity(160, 40, sim.KindEnemy, 0, 3, 0, 16, 320, 110)

			for i := 0; i < 3; i++ {
				w.CreateEntity(120+16*i, 208, sim.KindCoin, i+1)
			}
			w.CreateEntity(296, 96, sim.KindTrinket, 10)

			w.CreateEntity(64, 144, sim.KindTerminal, 0, 0)
			w.CreateBlock(sim.BlockActivity, 56, 136, 32, 24, 19, "", false)

			w.CreateEntity(288, 201, sim.KindCrewScripted, int(sim.ColourCrewPurple), 0, 0)
			w.CreateBlock(sim.BlockActivity, 272, 184, 48, 40, 1, "", false)

			w.CreateBlock(sim.BlockTrigger, 64, 176, 16, 48, 5, "intro", false)
		},
		Done: func(w *sim.World) bool {
			return w.State.Trinkets() >= 4
		},
	}
}

// Station is a spike pit crossed on moving platforms.
func Station() Definition {
	return Definition{
		ID:    "station",
		Title: "Space Station",
		Tiles: stationTiles,
		RoomX: 114,
		RoomY: 101,
		Start: Spawn{X: 40, Y: 201, Dir: 1},
		Populate: func(w *sim.World) {
			w.CreateEntity(64, 208, sim.KindCheckpoint, 1, 1)

			w.CreateEntity(104, 200, sim.KindMovingPlatform, 2, 2, 96, 0, 224, 240)
			w.CreateEntity(272, 100, sim.KindMovingPlatform, 0, 2, 0, 40, 320, 200)
			w.CreateEntity(200, 144, sim.KindDisappearingPlatform)
			w.CreateEntity(248, 216, sim.KindMovingPlatform, 10, 2)

			w.CreateEntity(152, 120, sim.KindTrinket, 20)
			w.CreateEntity(300, 201, sim.KindCrewGreen, 0)
		},
		Done: func(w *sim.World) bool {
			return w.State.Collect[20]
		},
	}
}

func arena(id, title string, mode, goal int) Definition {
	start := func(w *sim.World) {
		w.DeleteGroup()
		w.StartWave(mode, 0)
	}
	return Definition{
		ID:         id,
		Title:      title,
		Tiles:      arenaTiles,
		RoomX:      119,
		RoomY:      108,
		Start:      Spawn{X: 150, Y: 100, Dir: 1},
		KeepInside: true,
		Populate: func(w *sim.World) {
			w.CreateEntity(-8, 52, sim.KindHorizontalLine, 336)
			w.CreateEntity(-8, 180, sim.KindHorizontalLine, 336)
			start(w)
		},
		OnRespawn: start,
		Done: func(w *sim.World) bool {
			return w.State.Wave.Timer >= goal
		},
	}
}

// Gravitron is the timer-driven wave arena.
func Gravitron() Definition {
	return arena("gravitron", "The Gravitron", sim.WaveClassic, gravitronGoal)
}

// SuperGravitron draws weighted wave patterns.
func SuperGravitron() Definition {
	return arena("super-gravitron", "Super Gravitron", sim.WaveSuper, superGravitronGoal)
}

func init() {
	for _, def := range []func() Definition{Lab, Station, Gravitron, SuperGravitron} {
		def := def
		registry.Register(def().ID, func(env registry.Env) registry.Scenario {
			return NewRoom(def(), env)
		})
	}
}
