package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sanctuary/components"
	"github.com/pthm-cable/sanctuary/config"
)

// PoacherRef is a poacher visible to dart collision, in list order.
type PoacherRef struct {
	Entity  ecs.Entity
	Pos     *components.Position
	Poacher *components.Poacher
}

// DartOutcome is the result of one dart update.
type DartOutcome uint8

const (
	DartFlying DartOutcome = iota
	DartExpired
	DartHit
)

// UpdateDart moves a dart and resolves its lifetime and collisions.
// On a hit the poacher is neutralized and the index of the poacher in
// poachers is returned; the first poacher in range wins.
func UpdateDart(
	pos *components.Position,
	d *components.Dart,
	poachers []PoacherRef,
	now, dt float64,
	cfg *config.Config,
) (DartOutcome, int) {
	if !d.Active {
		return DartExpired, -1
	}

	pos.Vec3 = pos.Vec3.Add(d.Direction.Mul(d.Speed * dt * cfg.World.ReferenceTickRate))

	if now >= d.ExpiresAt {
		d.Active = false
		return DartExpired, -1
	}

	for i, ref := range poachers {
		if !ref.Poacher.State.Active() {
			continue
		}
		if pos.Vec3.Sub(ref.Pos.Vec3).Len() < cfg.Dart.HitRadius {
			ref.Poacher.State = components.PoacherNeutralized
			d.Active = false
			return DartHit, i
		}
	}
	return DartFlying, -1
}
