package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sanctuary/components"
	"github.com/pthm-cable/sanctuary/config"
)

// TargetPool resolves poacher targets against the live animal set.
type TargetPool interface {
	// Lookup returns the animal behind e, or false if e no longer exists.
	Lookup(e ecs.Entity) (*components.Position, *components.Animal, bool)
	// Candidates returns every non-terminal animal in list order.
	Candidates() []ecs.Entity
}

// PoacherUpdate reports what a poacher did during one update.
type PoacherUpdate struct {
	Captured   bool
	Victim     ecs.Entity
	Retargeted bool
	GaveUp     bool // No animal left to hunt
}

// UpdatePoacher advances one poacher by one tick.
//
// A lost or terminal target is replaced before anything else, so the poacher
// never moves toward a stale target. Capture is checked every tick; the
// steering direction is only recomputed every SteerInterval seconds (and
// immediately after a retarget).
func UpdatePoacher(
	pos *components.Position,
	p *components.Poacher,
	pool TargetPool,
	now, dt float64,
	rng Rand,
	cfg *config.PoacherConfig,
) PoacherUpdate {
	var res PoacherUpdate
	if !p.State.Active() {
		return res
	}

	tpos, target, ok := pool.Lookup(p.Target)
	if !ok || target.State.Terminal() {
		p.State = components.PoacherRetargeting
		candidates := pool.Candidates()
		if len(candidates) == 0 {
			p.State = components.PoacherInactive
			res.GaveUp = true
			return res
		}
		p.Target = candidates[rng.Intn(len(candidates))]
		p.Steered = false
		res.Retargeted = true

		tpos, target, ok = pool.Lookup(p.Target)
		if !ok {
			p.State = components.PoacherInactive
			res.GaveUp = true
			return res
		}
	}
	p.State = components.PoacherTracking

	if PlanarDistance(pos.Vec3, tpos.Vec3) < cfg.CaptureRange {
		p.State = components.PoacherCapturing
		target.State = components.AnimalCaptured
		res.Captured = true
		res.Victim = p.Target
		p.State = components.PoacherInactive
		return res
	}

	if !p.Steered || now-p.LastSteer >= cfg.SteerInterval {
		p.Direction = steer(pos.Vec3, tpos.Vec3, cfg.Jitter, rng)
		p.LastSteer = now
		p.Steered = true
	}

	pos.Vec3 = pos.Vec3.Add(p.Direction.Vec3(0).Mul(p.Speed * dt))
	return res
}

// steer returns a unit planar direction from pos toward target with a random
// per-axis perturbation in [-jitter, jitter].
func steer(pos, target mgl64.Vec3, jitter float64, rng Rand) mgl64.Vec2 {
	dir := normalize2(planar(target).Sub(planar(pos)))
	dir = dir.Add(mgl64.Vec2{uniform(rng, -jitter, jitter), uniform(rng, -jitter, jitter)})
	return normalize2(dir)
}
