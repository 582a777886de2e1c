// Package game owns the sanctuary world and advances it one tick at a time.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sanctuary/camera"
	"github.com/pthm-cable/sanctuary/clock"
	"github.com/pthm-cable/sanctuary/components"
	"github.com/pthm-cable/sanctuary/config"
	"github.com/pthm-cable/sanctuary/systems"
	"github.com/pthm-cable/sanctuary/telemetry"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = telemetry.stats_window from config
	SnapshotDir    string  // State dumps on bookmarks; empty disables
	OutputDir      string  // CSV output; empty disables
	Clock          clock.Source
	StatsCallback  func(telemetry.WindowStats)
}

// Game holds the complete simulation state. It is not safe for concurrent
// use; drive it from one goroutine and hand Snapshots to others.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand
	seed  int64

	animalMap  *ecs.Map2[components.Position, components.Animal]
	poacherMap *ecs.Map2[components.Position, components.Poacher]
	dartMap    *ecs.Map2[components.Position, components.Dart]

	// Entities in creation order. Update order and snapshot order follow these.
	animals  []ecs.Entity
	poachers []ecs.Entity
	darts    []ecs.Entity

	habitats *systems.HabitatRegistry
	economy  *systems.Economy
	spawner  *systems.SpawnDirector
	session  Session
	player   Player

	cameraMode camera.Mode
	selected   int // Index into animals, -1 for none

	clock *clock.Clock
	now   float64 // Unpaused simulation seconds
	tick  int64

	nextID  uint32
	pending []Command
	events  []telemetry.Event // Emitted during the current tick

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	snapshotDir      string
	statsCallback    func(telemetry.WindowStats)
}

// NewGame creates a game and starts the first session.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	src := opts.Clock
	if src == nil {
		src = clock.System{}
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:        cfg,
		world:      world,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		seed:       opts.Seed,
		animalMap:  ecs.NewMap2[components.Position, components.Animal](world),
		poacherMap: ecs.NewMap2[components.Position, components.Poacher](world),
		dartMap:    ecs.NewMap2[components.Position, components.Dart](world),
		habitats:   systems.NewHabitatRegistry(cfg),
		economy:    systems.NewEconomy(cfg.Economy),
		spawner:    systems.NewSpawnDirector(cfg, 0),
		selected:   -1,
		clock:      clock.New(src, time.Duration(cfg.World.MaxFrameDelta*float64(time.Second))),

		collector:     telemetry.NewCollector(statsWindow),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(
			cfg.Telemetry.BookmarkHistorySize,
			cfg.Telemetry.HappinessCrashDrop,
			cfg.Telemetry.PoachingWaveCount,
		),
		outputManager: om,
		logStats:      opts.LogStats,
		snapshotDir:   opts.SnapshotDir,
		statsCallback: opts.StatsCallback,
	}

	g.resetPlayer()
	g.createAnimals()

	if om != nil {
		slog.Info("output enabled", "dir", om.Dir())
	}
	return g, nil
}

// Update reads the clock and advances one tick.
func (g *Game) Update() {
	dt := g.clock.Tick()
	g.perfCollector.RecordFrame()
	g.Step(dt)
}

// Step advances the simulation by dt seconds. Queued commands are applied
// first. While paused dt is discarded.
func (g *Game) Step(dt float64) {
	g.perfCollector.StartTick()
	g.events = g.events[:0]

	g.perfCollector.StartPhase(telemetry.PhaseCommands)
	g.applyPending()

	if g.session.Paused() {
		g.perfCollector.EndTick()
		return
	}
	if dt < 0 {
		dt = 0
	}
	g.now += dt
	g.tick++

	switch g.session.Phase() {
	case PhasePlaying:
		g.perfCollector.StartPhase(telemetry.PhaseAnimals)
		g.updateAnimals(dt)

		g.perfCollector.StartPhase(telemetry.PhasePoachers)
		g.updatePoachers(dt)

		g.perfCollector.StartPhase(telemetry.PhaseDarts)
		g.updateDarts(dt)

		g.perfCollector.StartPhase(telemetry.PhaseSpawn)
		g.updateSpawn()

		g.perfCollector.StartPhase(telemetry.PhaseEconomy)
		g.updateEconomy(dt)

		g.perfCollector.StartPhase(telemetry.PhaseSession)
		g.checkGameOver()

	case PhaseGameOver:
		g.perfCollector.StartPhase(telemetry.PhaseSession)
		if g.session.RestartDue(g.now) {
			g.restart()
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry(false)

	g.perfCollector.EndTick()
}

// Tick returns the number of unpaused steps taken.
func (g *Game) Tick() int64 {
	return g.tick
}

// Now returns unpaused simulation time in seconds.
func (g *Game) Now() float64 {
	return g.now
}

// State returns the session state name.
func (g *Game) State() string {
	return g.session.State()
}

// Paused reports whether the game is paused.
func (g *Game) Paused() bool {
	return g.session.Paused()
}

// CameraMode returns the active camera mode.
func (g *Game) CameraMode() camera.Mode {
	return g.cameraMode
}

// Player returns a copy of the player.
func (g *Game) Player() Player {
	return g.player
}

// Economy returns the session economy. Callers must not mutate it.
func (g *Game) Economy() *systems.Economy {
	return g.economy
}

// PerfStats returns tick timing over the collector window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// Unload flushes and closes output files.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}

// emit records an event for this tick and for telemetry.
func (g *Game) emit(ev telemetry.Event) {
	g.events = append(g.events, ev)
	g.collector.Record(ev)
}

func (g *Game) newID() uint32 {
	id := g.nextID
	g.nextID++
	return id
}
