// Package systems implements the per-tick sanctuary rules: habitats, animal and
// poacher behaviour, darts, the economy and the spawn schedule.
package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/sanctuary/config"
)

// Habitat is a fixed zone with a mutable food stock.
type Habitat struct {
	ID           int
	Name         string
	Center       mgl64.Vec3 // z = 0
	FeedingPoint mgl64.Vec3
	Color        [3]float32
	Food         int
}

// HabitatRegistry owns every habitat for the lifetime of a session.
// Habitat ids are indices into the registry and never change.
type HabitatRegistry struct {
	habitats    []Habitat
	initialFood int
}

// NewHabitatRegistry builds the registry from config.
func NewHabitatRegistry(cfg *config.Config) *HabitatRegistry {
	r := &HabitatRegistry{
		habitats:    make([]Habitat, len(cfg.Habitats)),
		initialFood: cfg.Economy.InitialFood,
	}
	off := cfg.Animal.FeedingOffset
	for i, hc := range cfg.Habitats {
		center := mgl64.Vec3{hc.Center[0], hc.Center[1], 0}
		r.habitats[i] = Habitat{
			ID:           i,
			Name:         hc.Name,
			Center:       center,
			FeedingPoint: center.Add(mgl64.Vec3{off[0], off[1], 0}),
			Color:        hc.Color,
			Food:         r.initialFood,
		}
	}
	return r
}

// Len returns the number of habitats.
func (r *HabitatRegistry) Len() int {
	return len(r.habitats)
}

// Get returns the habitat with the given id.
func (r *HabitatRegistry) Get(id int) (*Habitat, bool) {
	if id < 0 || id >= len(r.habitats) {
		return nil, false
	}
	return &r.habitats[id], true
}

// All returns the habitats in id order. Callers must not retain the slice
// across a Reset.
func (r *HabitatRegistry) All() []Habitat {
	return r.habitats
}

// Deposit adds n food units to a habitat.
func (r *HabitatRegistry) Deposit(id, n int) bool {
	h, ok := r.Get(id)
	if !ok || n <= 0 {
		return false
	}
	h.Food += n
	return true
}

// Consume takes one food unit. It fails when the stock is empty.
func (r *HabitatRegistry) Consume(id int) bool {
	h, ok := r.Get(id)
	if !ok || h.Food <= 0 {
		return false
	}
	h.Food--
	return true
}

// FirstInRange returns the first habitat, in id order, whose feeding point
// lies within rng of pos on the ground plane.
func (r *HabitatRegistry) FirstInRange(pos mgl64.Vec3, rng float64) (*Habitat, bool) {
	for i := range r.habitats {
		if PlanarDistance(pos, r.habitats[i].FeedingPoint) < rng {
			return &r.habitats[i], true
		}
	}
	return nil, false
}

// TotalFood sums the stock across habitats.
func (r *HabitatRegistry) TotalFood() int {
	total := 0
	for _, h := range r.habitats {
		total += h.Food
	}
	return total
}

// Reset restores every stock to its initial value.
func (r *HabitatRegistry) Reset() {
	for i := range r.habitats {
		r.habitats[i].Food = r.initialFood
	}
}
