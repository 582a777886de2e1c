package game

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sanctuary/components"
	"github.com/pthm-cable/sanctuary/systems"
	"github.com/pthm-cable/sanctuary/telemetry"
)

// createAnimals creates one animal per configured type, scattered around
// its habitat center.
func (g *Game) createAnimals() {
	tun := &g.cfg.Animal
	for i, at := range g.cfg.AnimalTypes {
		hid := g.cfg.Derived.HabitatIndex[at.Habitat]
		h, _ := g.habitats.Get(hid)

		pos := components.Position{Vec3: mgl64.Vec3{
			h.Center.X() + g.uniform(-tun.SpawnSpread, tun.SpawnSpread),
			h.Center.Y() + g.uniform(-tun.SpawnSpread, tun.SpawnSpread),
			tun.Height,
		}}
		animal := components.Animal{
			ID:            g.newID(),
			Type:          at.Name,
			TypeIndex:     i,
			HabitatID:     hid,
			Size:          at.Size,
			Heading:       systems.RandomHeading(g.rng),
			Health:        tun.InitialHealth,
			Happiness:     tun.InitialHappiness,
			HungerRate:    g.uniform(tun.HungerRateMin, tun.HungerRateMax),
			State:         components.AnimalWander,
			LastDecay:     g.now,
			LastFeedCheck: g.now,
			LastWander:    g.now,
		}
		g.animals = append(g.animals, g.animalMap.NewEntity(&pos, &animal))
	}
}

// spawnPoacher creates a poacher from a spawn order.
func (g *Game) spawnPoacher(order systems.SpawnOrder) ecs.Entity {
	pos := components.Position{Vec3: order.Position}
	p := components.Poacher{
		ID:     g.newID(),
		Target: order.Target,
		Speed:  g.cfg.Poacher.Speed,
		State:  components.PoacherTracking,
	}
	e := g.poacherMap.NewEntity(&pos, &p)
	g.poachers = append(g.poachers, e)

	var targetID uint32
	if _, a, ok := g.lookupAnimal(order.Target); ok {
		targetID = a.ID
	}
	g.emit(telemetry.Event{Type: telemetry.EventPoacherSpawned, Time: g.now, EntityID: p.ID, TargetID: targetID, Amount: order.Edge})
	slog.Debug("poacher spawned", "id", p.ID, "edge", order.Edge, "target", targetID, "game_time", g.economy.GameTime)
	return e
}

// spawnDart creates an active dart and returns its id.
func (g *Game) spawnDart(origin, direction mgl64.Vec3) uint32 {
	pos := components.Position{Vec3: origin}
	d := components.Dart{
		ID:        g.newID(),
		Direction: systems.Normalize3(direction),
		Speed:     g.cfg.Dart.Speed,
		ExpiresAt: g.now + g.cfg.Dart.Lifetime,
		Active:    true,
	}
	g.darts = append(g.darts, g.dartMap.NewEntity(&pos, &d))
	return d.ID
}

// resetPlayer puts the player back at the configured start.
func (g *Game) resetPlayer() {
	s := g.cfg.Player.Start
	g.player = Player{Position: mgl64.Vec3{s[0], s[1], s[2]}}
}

func (g *Game) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}
