package components

import "github.com/go-gl/mathgl/mgl64"

// Animal holds per-animal simulation state.
// Timestamps are seconds of unpaused simulation time.
type Animal struct {
	ID        uint32
	Type      string
	TypeIndex int
	HabitatID int
	Size      float64

	Heading mgl64.Vec2 // Unit wander direction, or zero

	Health     float64 // [0, 100]
	Happiness  float64 // [0, 100]
	HungerRate float64 // Base health loss per decay step

	State AnimalState

	LastDecay     float64
	LastFeedCheck float64
	LastWander    float64
}

// Alive reports whether the animal still takes part in the simulation.
func (a *Animal) Alive() bool {
	return !a.State.Terminal()
}
