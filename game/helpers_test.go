package game

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/sanctuary/clock"
	"github.com/pthm-cable/sanctuary/components"
	"github.com/pthm-cable/sanctuary/config"
	"github.com/pthm-cable/sanctuary/systems"
)

const tickDT = 1.0 / 60.0

func newTestGame(t *testing.T, tweaks ...func(*config.Config)) *Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	for _, tweak := range tweaks {
		tweak(cfg)
	}
	g, err := NewGame(cfg, Options{Seed: 1, Clock: clock.NewManual(time.Unix(0, 0))})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func (g *Game) animalAt(i int) (*components.Position, *components.Animal) {
	return g.animalMap.Get(g.animals[i])
}

func (g *Game) poacherAt(i int) (*components.Position, *components.Poacher) {
	return g.poacherMap.Get(g.poachers[i])
}

// stepFor runs fixed ticks covering at least seconds of simulation time.
func stepFor(g *Game, seconds float64) {
	for n := int(seconds/tickDT + 0.5); n > 0; n-- {
		g.Step(tickDT)
	}
}

// placePoacher spawns a poacher at pos hunting animal index target.
func placePoacher(g *Game, pos mgl64.Vec3, target int) {
	g.spawnPoacher(systems.SpawnOrder{Position: pos, Target: g.animals[target]})
}

func hasEvent(s Snapshot, typ string) bool {
	for _, ev := range s.Events {
		if string(ev.Type) == typ {
			return true
		}
	}
	return false
}
