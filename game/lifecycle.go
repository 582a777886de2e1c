package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sanctuary/components"
	"github.com/pthm-cable/sanctuary/telemetry"
)

// lookupAnimal resolves an animal handle. Removed entities miss.
func (g *Game) lookupAnimal(e ecs.Entity) (*components.Position, *components.Animal, bool) {
	if e.IsZero() || !g.world.Alive(e) {
		return nil, nil, false
	}
	pos, a := g.animalMap.Get(e)
	if a == nil {
		return nil, nil, false
	}
	return pos, a, true
}

// candidates returns every non-terminal animal in list order.
func (g *Game) candidates() []ecs.Entity {
	var out []ecs.Entity
	for _, e := range g.animals {
		_, a := g.animalMap.Get(e)
		if !a.State.Terminal() {
			out = append(out, e)
		}
	}
	return out
}

// animalPool adapts the game's animal list to systems.TargetPool.
// The candidate list is built lazily once per poacher phase.
type animalPool struct {
	g     *Game
	cache []ecs.Entity
	valid bool
}

func (p *animalPool) Lookup(e ecs.Entity) (*components.Position, *components.Animal, bool) {
	return p.g.lookupAnimal(e)
}

func (p *animalPool) Candidates() []ecs.Entity {
	if !p.valid {
		p.cache = p.g.candidates()
		p.valid = true
	}
	return p.cache
}

// invalidate drops the cached candidates after a capture.
func (p *animalPool) invalidate() {
	p.valid = false
}

// removeInactiveDarts drops spent darts from the world, keeping list order.
func (g *Game) removeInactiveDarts() {
	kept := g.darts[:0]
	for _, e := range g.darts {
		_, d := g.dartMap.Get(e)
		if d.Active {
			kept = append(kept, e)
			continue
		}
		g.world.RemoveEntity(e)
	}
	g.darts = kept
}

// allTerminal reports whether every animal is dead or captured.
// An empty roster never ends the game.
func (g *Game) allTerminal() bool {
	if len(g.animals) == 0 {
		return false
	}
	for _, e := range g.animals {
		_, a := g.animalMap.Get(e)
		if !a.State.Terminal() {
			return false
		}
	}
	return true
}

// restart runs GAME_OVER -> RESTARTING -> PLAYING and rebuilds the session.
func (g *Game) restart() {
	g.session.BeginRestart()
	g.resetSession()
	g.session.FinishRestart()

	g.emit(telemetry.Event{Type: telemetry.EventSessionReset, Time: g.now})
	slog.Info("session reset", "session", g.session.Number(), "time", g.now)
}

// resetSession removes every entity and restores session-start values.
func (g *Game) resetSession() {
	for _, list := range [][]ecs.Entity{g.animals, g.poachers, g.darts} {
		for _, e := range list {
			if g.world.Alive(e) {
				g.world.RemoveEntity(e)
			}
		}
	}
	g.animals = g.animals[:0]
	g.poachers = g.poachers[:0]
	g.darts = g.darts[:0]

	g.habitats.Reset()
	g.economy.Reset()
	g.spawner.Reset(g.now)
	g.selected = -1
	g.resetPlayer()

	g.createAnimals()
}
