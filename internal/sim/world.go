package sim

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flipsim/internal/config"
	"github.com/vovakirdan/flipsim/internal/pool"
)

// World owns every entity and block plus the shared state register.
// It is single-threaded: all mutation happens inside Step or through the
// exported store operations called from the same goroutine.
type World struct {
	cfg config.SimConfig
	log *log.Logger
	rng *rand.Rand

	tiles   TileCollisionOracle
	audio   AudioSink
	hits    SpriteHitTester
	scripts ScriptRunner
	store   Persistence

	State *State

	entities pool.Arena[Entity]
	blocks   pool.Arena[Block]

	// lastCreated is the index of the most recent CreateEntity result.
	lastCreated int
	frame       uint64
}

// Option configures a World.
type Option func(*World)

// WithLogger replaces the default discarding logger.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithTiles sets the tile map collision oracle.
func WithTiles(t TileCollisionOracle) Option {
	return func(w *World) {
		if t != nil {
			w.tiles = t
		}
	}
}

// WithAudio sets the sound-effect sink.
func WithAudio(a AudioSink) Option {
	return func(w *World) {
		if a != nil {
			w.audio = a
		}
	}
}

// WithHitTester sets the sprite hit tester.
func WithHitTester(h SpriteHitTester) Option {
	return func(w *World) {
		if h != nil {
			w.hits = h
		}
	}
}

// WithScripts sets the script runner.
func WithScripts(s ScriptRunner) Option {
	return func(w *World) { w.scripts = s }
}

// WithPersistence sets the save and progress store.
func WithPersistence(p Persistence) Option {
	return func(w *World) {
		if p != nil {
			w.store = p
		}
	}
}

// WithSeed seeds the world's random source.
func WithSeed(seed int64) Option {
	return func(w *World) { w.rng = rand.New(rand.NewSource(seed)) }
}

// WithState shares an existing state register.
func WithState(s *State) Option {
	return func(w *World) {
		if s != nil {
			w.State = s
		}
	}
}

// NewWorld creates an empty world.
func NewWorld(cfg config.SimConfig, opts ...Option) *World {
	w := &World{
		cfg:         cfg,
		log:         log.NewWithOptions(io.Discard, log.Options{}),
		rng:         rand.New(rand.NewSource(1)),
		tiles:       EmptyMap{},
		audio:       NopAudio{},
		hits:        BoxHitTester{},
		store:       NopPersistence{},
		State:       NewState(),
		lastCreated: -1,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Config returns the simulation tables the world was built with.
func (w *World) Config() config.SimConfig {
	return w.cfg
}

// Logger returns the world's logger.
func (w *World) Logger() *log.Logger {
	return w.log
}

// Frame returns the number of completed steps.
func (w *World) Frame() uint64 {
	return w.frame
}

// Rand returns a float in [0, 1) from the world's random source.
func (w *World) Rand() float64 {
	return w.rng.Float64()
}

// Entity returns the live entity at i.
func (w *World) Entity(i int) (*Entity, bool) {
	return w.entities.Get(i)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.entities.Count()
}

// EntitySlots returns the entity storage length, live or free.
func (w *World) EntitySlots() int {
	return w.entities.Len()
}

// EachEntity visits live entities in index order until fn returns false.
func (w *World) EachEntity(fn func(i int, e *Entity) bool) {
	w.entities.Each(fn)
}

// Block returns the live block at i.
func (w *World) Block(i int) (*Block, bool) {
	return w.blocks.Get(i)
}

// BlockCount returns the number of live blocks.
func (w *World) BlockCount() int {
	return w.blocks.Count()
}

// EachBlock visits live blocks in index order until fn returns false.
func (w *World) EachBlock(fn func(i int, b *Block) bool) {
	w.blocks.Each(fn)
}

// ClearRoom drops every entity and block, as when a room reloads.
func (w *World) ClearRoom() {
	w.entities.Reset()
	w.blocks.Reset()
	w.lastCreated = -1
	w.State.VertPlatforms = false
	w.State.HorPlatforms = false
	w.State.CustomWarpMode = false
}

func (w *World) playEffect(s Sound) {
	w.audio.PlayEffect(s)
}
