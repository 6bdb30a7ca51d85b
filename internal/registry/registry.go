// Package registry provides a global registry for scenario factories.
// Scenarios register themselves in init() functions, allowing the CLI and the
// TUI to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flipsim/internal/config"
	"github.com/vovakirdan/flipsim/internal/core"
	"github.com/vovakirdan/flipsim/internal/sim"
)

// Scenario is a playable room built on a sim.World.
// Scenarios own input mapping and the death/respawn loop; the platform
// handles timing and rendering.
type Scenario interface {
	// ID returns a unique identifier (e.g., "gravitron", "lab").
	// Used for CLI commands and save storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds the room from scratch.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the room into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current run state (pickups, deaths, flips).
	State() core.GameState

	// World exposes the underlying simulation.
	World() *sim.World
}

// Env carries the collaborators a scenario wires into its World.
// Zero values are valid: scenarios fall back to the sim defaults.
type Env struct {
	Sim     config.SimConfig
	Logger  *log.Logger
	Store   sim.Persistence
	Audio   sim.AudioSink
	Scripts sim.ScriptRunner
}

// WorldOptions turns the environment into sim options.
func (e Env) WorldOptions(seed int64) []sim.Option {
	opts := []sim.Option{
		sim.WithSeed(seed),
		sim.WithLogger(e.Logger),
		sim.WithPersistence(e.Store),
		sim.WithAudio(e.Audio),
	}
	if e.Scripts != nil {
		opts = append(opts, sim.WithScripts(e.Scripts))
	}
	return opts
}

// ScenarioInfo contains metadata about a registered scenario.
type ScenarioInfo struct {
	ID    string
	Title string
}

// Factory creates a new scenario instance.
type Factory func(env Env) Scenario

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f
	titles[id] = f(Env{Sim: config.DefaultSimConfig()}).Title()
}

// List returns all registered scenarios, sorted by ID.
func List() []ScenarioInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ScenarioInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ScenarioInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a scenario by its ID.
func Create(id string, env Env) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}

	return f(env), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
