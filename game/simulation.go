package game

import (
	"log/slog"

	"github.com/pthm-cable/sanctuary/components"
	"github.com/pthm-cable/sanctuary/systems"
	"github.com/pthm-cable/sanctuary/telemetry"
)

// updateAnimals runs every animal's state machine in list order.
func (g *Game) updateAnimals(dt float64) {
	for _, e := range g.animals {
		pos, a := g.animalMap.Get(e)
		res := systems.UpdateAnimal(pos, a, g.habitats, g.now, dt, g.rng, g.cfg)
		if res.Ate {
			g.emit(telemetry.NewMealEvent(g.now, a.ID, a.HabitatID))
		}
		if res.Died {
			g.emit(telemetry.Event{Type: telemetry.EventAnimalDied, Time: g.now, EntityID: a.ID, Habitat: a.HabitatID})
			slog.Info("animal died", "id", a.ID, "type", a.Type, "time", g.now)
		}
	}
}

// updatePoachers runs the poacher AI after animals have moved, so poachers
// see this tick's positions and states.
func (g *Game) updatePoachers(dt float64) {
	pool := &animalPool{g: g}
	for _, e := range g.poachers {
		pos, p := g.poacherMap.Get(e)
		res := systems.UpdatePoacher(pos, p, pool, g.now, dt, g.rng, &g.cfg.Poacher)

		switch {
		case res.Captured:
			pool.invalidate()
			_, victim, _ := g.lookupAnimal(res.Victim)
			g.emit(telemetry.NewCaptureEvent(g.now, p.ID, victim.ID))
			slog.Info("animal captured", "poacher", p.ID, "animal", victim.ID, "type", victim.Type, "time", g.now)
			g.clearSelectionIfCaptured()
		case res.GaveUp:
			g.emit(telemetry.Event{Type: telemetry.EventPoacherGaveUp, Time: g.now, EntityID: p.ID})
		case res.Retargeted:
			var targetID uint32
			if _, a, ok := g.lookupAnimal(p.Target); ok {
				targetID = a.ID
			}
			g.emit(telemetry.Event{Type: telemetry.EventPoacherRetargeted, Time: g.now, EntityID: p.ID, TargetID: targetID})
		}
	}
}

// clearSelectionIfCaptured drops a selection that can no longer be picked.
func (g *Game) clearSelectionIfCaptured() {
	if g.selected < 0 {
		return
	}
	_, a := g.animalMap.Get(g.animals[g.selected])
	if a.State == components.AnimalCaptured {
		g.selected = -1
	}
}

// updateDarts moves darts after poachers so a dart can catch a poacher that
// just moved. Spent darts are removed at the end of the phase.
func (g *Game) updateDarts(dt float64) {
	if len(g.darts) == 0 {
		return
	}

	refs := make([]systems.PoacherRef, 0, len(g.poachers))
	for _, e := range g.poachers {
		pos, p := g.poacherMap.Get(e)
		refs = append(refs, systems.PoacherRef{Entity: e, Pos: pos, Poacher: p})
	}

	for _, e := range g.darts {
		pos, d := g.dartMap.Get(e)
		if !d.Active {
			continue
		}
		outcome, hit := systems.UpdateDart(pos, d, refs, g.now, dt, g.cfg)
		switch outcome {
		case systems.DartHit:
			g.economy.AwardInterception()
			poacher := refs[hit].Poacher
			g.emit(telemetry.NewNeutralizedEvent(g.now, d.ID, poacher.ID, g.cfg.Economy.InterceptionReward))
			slog.Info("poacher neutralized", "poacher", poacher.ID, "dart", d.ID, "score", g.economy.Score)
		case systems.DartExpired:
			g.emit(telemetry.Event{Type: telemetry.EventDartExpired, Time: g.now, EntityID: d.ID})
		}
	}

	g.removeInactiveDarts()
}

// updateSpawn lets the director create a poacher when its interval is up.
func (g *Game) updateSpawn() {
	if !g.spawner.Due(g.now, g.economy.GameTime) {
		return
	}
	order, ok := g.spawner.Next(g.now, g.economy.GameTime, g.candidates(), g.rng)
	if !ok {
		slog.Debug("spawn skipped", "reason", "no targets")
		return
	}
	g.spawnPoacher(order)
}

// updateEconomy advances game time and pays passive income.
func (g *Game) updateEconomy(dt float64) {
	g.economy.Elapse(dt)
	if paid := g.economy.CollectIncome(); paid > 0 {
		g.emit(telemetry.Event{Type: telemetry.EventIncome, Time: g.now, Amount: paid})
	}
}

// checkGameOver ends the session once every animal is dead or captured.
func (g *Game) checkGameOver() {
	if !g.allTerminal() {
		return
	}
	if !g.session.EndGame(g.now, g.cfg.Session.RestartDelay) {
		return
	}
	g.emit(telemetry.Event{Type: telemetry.EventGameOver, Time: g.now, Amount: g.economy.Score})
	slog.Info("game over",
		"session", g.session.Number(),
		"game_time", g.economy.GameTime,
		"score", g.economy.Score,
		"restart_in", g.cfg.Session.RestartDelay,
	)

	// Flush now so the lost session's final numbers land in their own window.
	g.flushTelemetry(true)
}
