// Package script runs trigger and activity scripts written in Lua.
//
// Scripts live in a global `scripts` table keyed by name. The built-in set is
// embedded; a directory of .lua files loaded afterwards can add to it or
// replace entries. While a script runs it reaches the world through the
// `sim` table.
package script

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/vovakirdan/flipsim/internal/sim"
)

//go:embed lua/*.lua
var builtin embed.FS

// ErrUnknownScript is returned by Run for names the scripts table lacks.
var ErrUnknownScript = errors.New("script: unknown script")

// Engine wraps a single gopher-lua VM. Single-goroutine access only: it is
// driven from the World's step.
type Engine struct {
	vm  *lua.LState
	log *log.Logger

	world    *sim.World
	messages []string
}

var _ sim.ScriptRunner = (*Engine)(nil)

// NewEngine creates a Lua engine with the built-in scripts, then loads every
// .lua file in dir. An empty dir loads only the built-ins.
func NewEngine(dir string, logger *log.Logger) (*Engine, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("scripts", vm.NewTable())

	e := &Engine{vm: vm, log: logger}
	e.registerAPI()

	if err := e.loadBuiltin(); err != nil {
		vm.Close()
		return nil, fmt.Errorf("script: load builtin scripts: %w", err)
	}
	if dir != "" {
		if err := e.loadDir(dir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("script: load %s: %w", dir, err)
		}
	}

	return e, nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) loadBuiltin() error {
	entries, err := fs.ReadDir(builtin, "lua")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := path.Join("lua", entry.Name())
		src, err := builtin.ReadFile(name)
		if err != nil {
			return err
		}
		if err := e.vm.DoString(string(src)); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// loadDir loads all .lua files in a directory in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		e.log.Debug("loaded lua script", "file", p)
	}
	return nil
}

// Has reports whether a script with the given name is defined.
func (e *Engine) Has(name string) bool {
	return e.lookup(name) != lua.LNil
}

// Names returns every defined script name, sorted.
func (e *Engine) Names() []string {
	var names []string
	if tbl, ok := e.vm.GetGlobal("scripts").(*lua.LTable); ok {
		tbl.ForEach(func(k, v lua.LValue) {
			if v.Type() == lua.LTFunction {
				names = append(names, k.String())
			}
		})
	}
	sort.Strings(names)
	return names
}

func (e *Engine) lookup(name string) lua.LValue {
	tbl, ok := e.vm.GetGlobal("scripts").(*lua.LTable)
	if !ok {
		return lua.LNil
	}
	fn := tbl.RawGetString(name)
	if fn.Type() != lua.LTFunction {
		return lua.LNil
	}
	return fn
}

// Run calls scripts[name] with the world bound to the sim API.
func (e *Engine) Run(w *sim.World, name string) error {
	fn := e.lookup(name)
	if fn == lua.LNil {
		return fmt.Errorf("%w: %q", ErrUnknownScript, name)
	}

	e.world = w
	defer func() { e.world = nil }()

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}); err != nil {
		return fmt.Errorf("script: %s: %w", name, err)
	}
	e.log.Debug("ran script", "name", name, "frame", w.Frame())
	return nil
}

// Messages returns the lines scripts printed with sim.say since the last
// call, and forgets them.
func (e *Engine) Messages() []string {
	out := e.messages
	e.messages = nil
	return out
}
