package systems

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sanctuary/components"
	"github.com/pthm-cable/sanctuary/config"
)

const tickDT = 1.0 / 60.0

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

// scriptedRand replays fixed values, then falls back to zero.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

// animalWorld is a small ark world that satisfies TargetPool.
type animalWorld struct {
	world   *ecs.World
	animals *ecs.Map2[components.Position, components.Animal]
	order   []ecs.Entity
}

func newAnimalWorld() *animalWorld {
	w := ecs.NewWorld()
	return &animalWorld{
		world:   w,
		animals: ecs.NewMap2[components.Position, components.Animal](w),
	}
}

func (aw *animalWorld) add(at mgl64.Vec3, state components.AnimalState) ecs.Entity {
	pos := components.Position{Vec3: at}
	a := components.Animal{ID: uint32(len(aw.order)), Health: 100, Happiness: 100, State: state}
	e := aw.animals.NewEntity(&pos, &a)
	aw.order = append(aw.order, e)
	return e
}

func (aw *animalWorld) Lookup(e ecs.Entity) (*components.Position, *components.Animal, bool) {
	if !aw.world.Alive(e) {
		return nil, nil, false
	}
	pos, a := aw.animals.Get(e)
	return pos, a, true
}

func (aw *animalWorld) Candidates() []ecs.Entity {
	var out []ecs.Entity
	for _, e := range aw.order {
		if !aw.world.Alive(e) {
			continue
		}
		_, a := aw.animals.Get(e)
		if !a.State.Terminal() {
			out = append(out, e)
		}
	}
	return out
}
