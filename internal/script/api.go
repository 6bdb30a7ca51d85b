package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/vovakirdan/flipsim/internal/sim"
)

var kindNames = map[string]sim.Kind{
	"player":               sim.KindPlayer,
	"enemy":                sim.KindEnemy,
	"platform":             sim.KindMovingPlatform,
	"disappearing":         sim.KindDisappearingPlatform,
	"quicksand":            sim.KindBreakableBlock,
	"coin":                 sim.KindCoin,
	"trinket":              sim.KindTrinket,
	"checkpoint":           sim.KindCheckpoint,
	"hline":                sim.KindHorizontalLine,
	"vline":                sim.KindVerticalLine,
	"warptoken":            sim.KindWarpToken,
	"teleporter":           sim.KindTeleporter,
	"crew_green":           sim.KindCrewGreen,
	"crew_yellow":          sim.KindCrewYellow,
	"crew_blue":            sim.KindCrewBlue,
	"crew_red":             sim.KindCrewRed,
	"crew":                 sim.KindCrewScripted,
	"terminal":             sim.KindTerminal,
	"gravitron":            sim.KindGravitronEnemy,
	"supercrewmate":        sim.KindSuperCrewmate,
	"collectable_crewmate": sim.KindCollectableCrewmate,
}

var blockNames = map[string]sim.BlockType{
	"solid":       sim.BlockSolid,
	"trigger":     sim.BlockTrigger,
	"damage":      sim.BlockDamage,
	"directional": sim.BlockDirectional,
	"safe":        sim.BlockSafe,
	"activity":    sim.BlockActivity,
}

// registerAPI installs the global sim table.
func (e *Engine) registerAPI() {
	tbl := e.vm.NewTable()
	e.vm.SetFuncs(tbl, map[string]lua.LGFunction{
		"create":        e.luaCreate,
		"block":         e.luaBlock,
		"removetrigger": e.luaRemoveTrigger,
		"flip":          e.luaFlip,
		"gravity":       e.luaGravity,
		"say":           e.luaSay,
		"request":       e.luaRequest,
		"wave":          e.luaWave,
		"freeze":        e.group((*sim.World).Freeze),
		"unfreeze":      e.group((*sim.World).Unfreeze),
		"reverse":       e.group((*sim.World).Reverse),
		"unreverse":     e.group((*sim.World).Unreverse),
		"clear":         e.group((*sim.World).DeleteGroup),
		"player":        e.luaPlayer,
		"pos":           e.luaPos,
		"collected":     e.luaCollected,
		"frame":         e.luaFrame,
	})

	kinds := e.vm.NewTable()
	for name, k := range kindNames {
		kinds.RawSetString(name, lua.LNumber(k))
	}
	tbl.RawSetString("kind", kinds)

	blocks := e.vm.NewTable()
	for name, b := range blockNames {
		blocks.RawSetString(name, lua.LNumber(b))
	}
	tbl.RawSetString("blocktype", blocks)

	tbl.RawSetString("WAVE_CLASSIC", lua.LNumber(sim.WaveClassic))
	tbl.RawSetString("WAVE_SUPER", lua.LNumber(sim.WaveSuper))

	e.vm.SetGlobal("sim", tbl)
}

// bound returns the running script's world, raising a Lua error outside Run.
func (e *Engine) bound(L *lua.LState) *sim.World {
	if e.world == nil {
		L.RaiseError("sim: no world bound")
	}
	return e.world
}

// ints collects the integer arguments from position from onwards.
func ints(L *lua.LState, from int) []int {
	var out []int
	for i := from; i <= L.GetTop(); i++ {
		out = append(out, L.CheckInt(i))
	}
	return out
}

// sim.create(x, y, kind, ...) -> index or -1
func (e *Engine) luaCreate(L *lua.LState) int {
	w := e.bound(L)
	x, y := L.CheckInt(1), L.CheckInt(2)
	kind := sim.Kind(L.CheckInt(3))
	i, ok := w.CreateEntity(x, y, kind, ints(L, 4)...)
	if !ok {
		i = -1
	}
	L.Push(lua.LNumber(i))
	return 1
}

// sim.block(type, x, y, w, h [, trigger [, script]]) -> index
func (e *Engine) luaBlock(L *lua.LState) int {
	w := e.bound(L)
	i := w.CreateBlock(
		sim.BlockType(L.CheckInt(1)),
		L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), L.CheckInt(5),
		L.OptInt(6, 0), L.OptString(7, ""), false,
	)
	L.Push(lua.LNumber(i))
	return 1
}

func (e *Engine) luaRemoveTrigger(L *lua.LState) int {
	e.bound(L).RemoveTrigger(L.CheckInt(1))
	return 0
}

func (e *Engine) luaFlip(L *lua.LState) int {
	e.bound(L).State.FlipGravity()
	return 0
}

func (e *Engine) luaGravity(L *lua.LState) int {
	L.Push(lua.LNumber(e.bound(L).State.GravityControl))
	return 1
}

func (e *Engine) luaSay(L *lua.LState) int {
	e.bound(L)
	e.messages = append(e.messages, L.CheckString(1))
	return 0
}

func (e *Engine) luaRequest(L *lua.LState) int {
	e.bound(L).State.RequestState(L.CheckInt(1))
	return 0
}

// sim.wave(mode [, practice])
func (e *Engine) luaWave(L *lua.LState) int {
	e.bound(L).StartWave(L.CheckInt(1), L.OptInt(2, 0))
	return 0
}

// group adapts a gravitron group mutator; no ids means every gravitron enemy.
func (e *Engine) group(fn func(w *sim.World, ids ...int)) lua.LGFunction {
	return func(L *lua.LState) int {
		fn(e.bound(L), ints(L, 1)...)
		return 0
	}
}

func (e *Engine) luaPlayer(L *lua.LState) int {
	L.Push(lua.LNumber(e.bound(L).Player()))
	return 1
}

// sim.pos(i) -> x, y or nil
func (e *Engine) luaPos(L *lua.LState) int {
	ent, ok := e.bound(L).Entity(L.CheckInt(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(ent.X))
	L.Push(lua.LNumber(ent.Y))
	return 2
}

func (e *Engine) luaCollected(L *lua.LState) int {
	w := e.bound(L)
	slot := L.CheckInt(1)
	L.Push(lua.LBool(slot >= 0 && slot < sim.CollectSlots && w.State.Collect[slot]))
	return 1
}

func (e *Engine) luaFrame(L *lua.LState) int {
	L.Push(lua.LNumber(e.bound(L).Frame()))
	return 1
}
