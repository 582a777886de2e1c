// Package components defines ECS components for the simulation.
package components

import "github.com/go-gl/mathgl/mgl64"

// Position represents an entity's world position. z is up.
type Position struct {
	mgl64.Vec3
}

// AnimalState is the behavioural state of an animal.
type AnimalState uint8

const (
	AnimalWander   AnimalState = iota // Roaming around the habitat
	AnimalSeekFood                    // Walking to the feeding point
	AnimalEat                         // At the feeding point
	AnimalCaptured                    // Taken by a poacher (terminal)
	AnimalDead                        // Health reached zero (terminal)
)

func (s AnimalState) String() string {
	switch s {
	case AnimalWander:
		return "WANDER"
	case AnimalSeekFood:
		return "SEEK_FOOD"
	case AnimalEat:
		return "EAT"
	case AnimalCaptured:
		return "CAPTURED"
	case AnimalDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the state can never change again.
func (s AnimalState) Terminal() bool {
	return s == AnimalCaptured || s == AnimalDead
}

// PoacherState is the AI state of a poacher.
type PoacherState uint8

const (
	PoacherTracking    PoacherState = iota // Closing in on the target
	PoacherCapturing                       // Within capture range this tick
	PoacherRetargeting                     // Target lost, picking a new one
	PoacherInactive                        // Done (captured something or nothing left to hunt)
	PoacherNeutralized                     // Hit by a dart
)

func (s PoacherState) String() string {
	switch s {
	case PoacherTracking:
		return "TRACKING"
	case PoacherCapturing:
		return "CAPTURING"
	case PoacherRetargeting:
		return "RETARGETING"
	case PoacherInactive:
		return "INACTIVE"
	case PoacherNeutralized:
		return "NEUTRALIZED"
	default:
		return "UNKNOWN"
	}
}

// Active reports whether the poacher still moves and can be hit.
func (s PoacherState) Active() bool {
	return s != PoacherInactive && s != PoacherNeutralized
}
