package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/sanctuary/components"
)

func vec2Near(a, b mgl64.Vec2) bool {
	return math.Abs(a[0]-b[0]) < 1e-9 && math.Abs(a[1]-b[1]) < 1e-9
}

func TestUpdatePoacher_CapturesWithinRange(t *testing.T) {
	cfg := testConfig(t)
	aw := newAnimalWorld()
	target := aw.add(mgl64.Vec3{100, 100, 20}, components.AnimalWander)

	pos := components.Position{Vec3: mgl64.Vec3{112, 109, 30}} // 15 away on the ground plane
	p := components.Poacher{Target: target, Speed: 5, State: components.PoacherTracking}

	res := UpdatePoacher(&pos, &p, aw, 1, tickDT, testRNG(), &cfg.Poacher)

	if !res.Captured || res.Victim != target {
		t.Fatalf("expected capture of target, got %+v", res)
	}
	_, a, _ := aw.Lookup(target)
	if a.State != components.AnimalCaptured {
		t.Errorf("target state = %v, want CAPTURED", a.State)
	}
	if p.State != components.PoacherInactive {
		t.Errorf("poacher state = %v, want INACTIVE", p.State)
	}
}

func TestUpdatePoacher_ClosesDistance(t *testing.T) {
	cfg := testConfig(t)
	aw := newAnimalWorld()
	target := aw.add(mgl64.Vec3{100, 0, 20}, components.AnimalWander)

	pos := components.Position{Vec3: mgl64.Vec3{0, 0, 30}}
	p := components.Poacher{Target: target, Speed: 5, State: components.PoacherTracking}
	rng := testRNG()

	before := PlanarDistance(pos.Vec3, mgl64.Vec3{100, 0, 0})
	now := 0.0
	for i := 0; i < 60; i++ {
		res := UpdatePoacher(&pos, &p, aw, now, tickDT, rng, &cfg.Poacher)
		if res.Captured {
			t.Fatal("captured from 100 units away")
		}
		now += tickDT
	}
	after := PlanarDistance(pos.Vec3, mgl64.Vec3{100, 0, 0})

	if after >= before {
		t.Errorf("poacher did not approach: %f -> %f", before, after)
	}
	if pos.Z() != 30 {
		t.Errorf("poacher height changed to %f", pos.Z())
	}
	if p.State != components.PoacherTracking {
		t.Errorf("state = %v, want TRACKING", p.State)
	}
}

func TestUpdatePoacher_SteersOnInterval(t *testing.T) {
	cfg := testConfig(t)
	cfg.Poacher.Jitter = 0
	aw := newAnimalWorld()
	target := aw.add(mgl64.Vec3{100, 0, 20}, components.AnimalWander)

	pos := components.Position{Vec3: mgl64.Vec3{0, 0, 30}}
	p := components.Poacher{Target: target, Speed: 5, State: components.PoacherTracking}
	rng := testRNG()

	UpdatePoacher(&pos, &p, aw, 0, tickDT, rng, &cfg.Poacher)
	if !vec2Near(p.Direction, mgl64.Vec2{1, 0}) {
		t.Fatalf("initial direction = %v, want (1,0)", p.Direction)
	}

	// Move the target behind the poacher; the heading holds until the interval passes.
	tpos, _, _ := aw.Lookup(target)
	tpos.Vec3 = mgl64.Vec3{-100, 0, 20}

	UpdatePoacher(&pos, &p, aw, 1.5, tickDT, rng, &cfg.Poacher)
	if !vec2Near(p.Direction, mgl64.Vec2{1, 0}) {
		t.Errorf("direction changed before interval: %v", p.Direction)
	}

	UpdatePoacher(&pos, &p, aw, 2, tickDT, rng, &cfg.Poacher)
	if !vec2Near(p.Direction, mgl64.Vec2{-1, 0}) {
		t.Errorf("direction after interval = %v, want (-1,0)", p.Direction)
	}
}

func TestUpdatePoacher_RetargetsFromTerminal(t *testing.T) {
	cfg := testConfig(t)

	for _, state := range []components.AnimalState{components.AnimalDead, components.AnimalCaptured} {
		t.Run(state.String(), func(t *testing.T) {
			aw := newAnimalWorld()
			gone := aw.add(mgl64.Vec3{0, 0, 20}, state)
			alive := aw.add(mgl64.Vec3{300, 300, 20}, components.AnimalWander)

			pos := components.Position{Vec3: mgl64.Vec3{5, 5, 30}}
			p := components.Poacher{Target: gone, Speed: 5, State: components.PoacherTracking}

			res := UpdatePoacher(&pos, &p, aw, 0, tickDT, testRNG(), &cfg.Poacher)

			if !res.Retargeted {
				t.Fatal("expected a retarget")
			}
			if res.Captured {
				t.Fatal("captured a terminal animal")
			}
			if p.Target != alive {
				t.Errorf("retargeted to wrong animal")
			}
			if p.State != components.PoacherTracking {
				t.Errorf("state = %v, want TRACKING", p.State)
			}
			// First step must head toward the new target, not the old one.
			toNew := mgl64.Vec2{295, 295}.Normalize()
			if p.Direction.Dot(toNew) <= 0.5 {
				t.Errorf("direction %v does not point at new target", p.Direction)
			}
		})
	}
}

func TestUpdatePoacher_RetargetsFromRemovedEntity(t *testing.T) {
	cfg := testConfig(t)
	aw := newAnimalWorld()
	removed := aw.add(mgl64.Vec3{0, 0, 20}, components.AnimalWander)
	alive := aw.add(mgl64.Vec3{200, 0, 20}, components.AnimalWander)
	aw.world.RemoveEntity(removed)

	pos := components.Position{Vec3: mgl64.Vec3{0, 0, 30}}
	p := components.Poacher{Target: removed, Speed: 5, State: components.PoacherTracking}

	res := UpdatePoacher(&pos, &p, aw, 0, tickDT, testRNG(), &cfg.Poacher)
	if !res.Retargeted || p.Target != alive {
		t.Errorf("expected retarget to the remaining animal, got %+v", res)
	}
}

func TestUpdatePoacher_GivesUpWithoutTargets(t *testing.T) {
	cfg := testConfig(t)
	aw := newAnimalWorld()
	dead := aw.add(mgl64.Vec3{0, 0, 20}, components.AnimalDead)

	pos := components.Position{Vec3: mgl64.Vec3{50, 50, 30}}
	p := components.Poacher{Target: dead, Speed: 5, State: components.PoacherTracking}

	res := UpdatePoacher(&pos, &p, aw, 0, tickDT, testRNG(), &cfg.Poacher)
	if !res.GaveUp || p.State != components.PoacherInactive {
		t.Fatalf("expected INACTIVE, got %v (%+v)", p.State, res)
	}

	// Stays put from now on, even if a new animal appears.
	aw.add(mgl64.Vec3{60, 60, 20}, components.AnimalWander)
	start := pos.Vec3
	for i := 0; i < 10; i++ {
		UpdatePoacher(&pos, &p, aw, float64(i), 1, testRNG(), &cfg.Poacher)
	}
	if pos.Vec3 != start || p.State != components.PoacherInactive {
		t.Errorf("inactive poacher moved or revived: %v %v", pos.Vec3, p.State)
	}
}

func TestUpdatePoacher_SecondArrivalRetargets(t *testing.T) {
	cfg := testConfig(t)
	aw := newAnimalWorld()
	shared := aw.add(mgl64.Vec3{0, 0, 20}, components.AnimalWander)
	other := aw.add(mgl64.Vec3{400, 0, 20}, components.AnimalWander)

	posA := components.Position{Vec3: mgl64.Vec3{10, 0, 30}}
	posB := components.Position{Vec3: mgl64.Vec3{-10, 0, 30}}
	a := components.Poacher{Target: shared, Speed: 5, State: components.PoacherTracking}
	b := components.Poacher{Target: shared, Speed: 5, State: components.PoacherTracking}
	rng := testRNG()

	resA := UpdatePoacher(&posA, &a, aw, 0, tickDT, rng, &cfg.Poacher)
	resB := UpdatePoacher(&posB, &b, aw, 0, tickDT, rng, &cfg.Poacher)

	if !resA.Captured {
		t.Fatal("first poacher in list order should capture")
	}
	if resB.Captured || !resB.Retargeted || b.Target != other {
		t.Errorf("second poacher should retarget, got %+v", resB)
	}
}
