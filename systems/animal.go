package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/sanctuary/components"
	"github.com/pthm-cable/sanctuary/config"
)

// AnimalUpdate reports what happened to an animal during one update.
type AnimalUpdate struct {
	Ate  bool
	Died bool
}

// UpdateAnimal advances one animal by one tick: state selection, movement,
// feeding, passive decay and the death check, in that order.
// now is unpaused simulation time in seconds; dt is the tick delta.
// Terminal animals are left untouched.
func UpdateAnimal(
	pos *components.Position,
	a *components.Animal,
	habitats *HabitatRegistry,
	now, dt float64,
	rng Rand,
	cfg *config.Config,
) AnimalUpdate {
	var res AnimalUpdate
	if a.State.Terminal() {
		return res
	}

	h, ok := habitats.Get(a.HabitatID)
	if !ok {
		return res
	}

	tun := &cfg.Animal
	step := dt * cfg.World.ReferenceTickRate

	if !wantsFood(a, h, tun) {
		a.State = components.AnimalWander
		wander(pos, a, h, now, step, rng, tun)
	} else if PlanarDistance(pos.Vec3, h.FeedingPoint) < tun.EatRange {
		a.State = components.AnimalEat
		if now-a.LastFeedCheck >= tun.MealInterval && habitats.Consume(a.HabitatID) {
			a.Happiness = clampVital(a.Happiness + tun.MealHappiness)
			a.Health = clampVital(a.Health + tun.MealHealth)
			a.LastFeedCheck = now
			res.Ate = true
			if !wantsFood(a, h, tun) {
				a.State = components.AnimalWander
			}
		}
	} else {
		a.State = components.AnimalSeekFood
		moveToward(pos, h.FeedingPoint, tun.SeekSpeed*step)
	}

	if now-a.LastDecay >= tun.DecayInterval {
		applyDecay(a, tun)
		a.LastDecay = now
	}

	if a.Health <= 0 {
		a.Health = 0
		a.State = components.AnimalDead
		res.Died = true
	}

	return res
}

// wantsFood is true while the animal is unhappy and there is food to eat.
func wantsFood(a *components.Animal, h *Habitat, tun *config.AnimalConfig) bool {
	return a.Happiness < tun.HungryThreshold && h.Food > 0
}

// wander moves along the current heading, or back toward the habitat center
// once the animal has strayed past the home radius.
func wander(pos *components.Position, a *components.Animal, h *Habitat, now, step float64, rng Rand, tun *config.AnimalConfig) {
	if now-a.LastWander >= tun.WanderInterval {
		a.Heading = randomUnit2(rng)
		a.LastWander = now
	}

	if PlanarDistance(pos.Vec3, h.Center) <= tun.HomeRadius {
		pos.Vec3 = pos.Vec3.Add(a.Heading.Vec3(0).Mul(tun.WanderSpeed * step))
		return
	}
	a.Heading = normalize2(planar(h.Center.Sub(pos.Vec3)))
	moveToward(pos, h.Center, tun.ReturnSpeed*step)
}

// applyDecay removes happiness, then health scaled by how unhappy the animal is.
func applyDecay(a *components.Animal, tun *config.AnimalConfig) {
	a.Happiness = clampVital(a.Happiness - tun.HappinessDecay)
	a.Health = clampVital(a.Health - a.HungerRate*decayFactor(a.Happiness, tun))
}

// decayFactor returns the health decay multiplier for a happiness level.
func decayFactor(happiness float64, tun *config.AnimalConfig) float64 {
	switch {
	case happiness < tun.MiserableBelow:
		return tun.MiserableFactor
	case happiness < tun.UnhappyBelow:
		return tun.UnhappyFactor
	default:
		return 1
	}
}

// moveToward steps along the ground plane toward target without overshooting.
// z is preserved.
func moveToward(pos *components.Position, target mgl64.Vec3, dist float64) {
	delta := planar(target).Sub(planar(pos.Vec3))
	remaining := delta.Len()
	if remaining == 0 || dist <= 0 {
		return
	}
	d := math.Min(dist, remaining)
	move := normalize2(delta).Mul(d)
	pos.Vec3 = pos.Vec3.Add(move.Vec3(0))
}
