package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"
)

// Poacher holds per-poacher AI state.
type Poacher struct {
	ID uint32

	// Target is a lookup key into the world, not an owning reference.
	// It may point at a removed or terminal animal; the AI retargets then.
	Target ecs.Entity

	Speed     float64    // Units per second
	Direction mgl64.Vec2 // Current planar heading, unit or zero
	State     PoacherState

	LastSteer float64 // Sim time of the last direction recompute
	Steered   bool    // False until the first direction has been computed
}
