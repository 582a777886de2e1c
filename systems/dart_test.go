package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sanctuary/components"
)

func newPoacherRefs(at ...mgl64.Vec3) []PoacherRef {
	refs := make([]PoacherRef, len(at))
	for i, p := range at {
		refs[i] = PoacherRef{
			Entity:  ecs.Entity{},
			Pos:     &components.Position{Vec3: p},
			Poacher: &components.Poacher{State: components.PoacherTracking},
		}
	}
	return refs
}

func newTestDart(expires float64) components.Dart {
	return components.Dart{Direction: mgl64.Vec3{1, 0, 0}, Speed: 15, ExpiresAt: expires, Active: true}
}

func TestUpdateDart_Moves(t *testing.T) {
	cfg := testConfig(t)
	pos := components.Position{Vec3: mgl64.Vec3{0, 0, 30}}
	d := newTestDart(5)

	outcome, _ := UpdateDart(&pos, &d, nil, 0.1, tickDT, cfg)
	if outcome != DartFlying {
		t.Fatalf("outcome = %v, want flying", outcome)
	}
	if math.Abs(pos.X()-15) > 1e-9 || pos.Y() != 0 || pos.Z() != 30 {
		t.Errorf("dart at %v, want (15,0,30)", pos.Vec3)
	}
}

func TestUpdateDart_HitsPoacher(t *testing.T) {
	cfg := testConfig(t)
	pos := components.Position{Vec3: mgl64.Vec3{0, 0, 30}}
	d := newTestDart(5)
	poachers := newPoacherRefs(mgl64.Vec3{20, 0, 30})

	outcome, idx := UpdateDart(&pos, &d, poachers, 0.1, tickDT, cfg)
	if outcome != DartHit || idx != 0 {
		t.Fatalf("expected hit on poacher 0, got %v %d", outcome, idx)
	}
	if d.Active {
		t.Error("dart should be inactive after a hit")
	}
	if poachers[0].Poacher.State != components.PoacherNeutralized {
		t.Errorf("poacher state = %v, want NEUTRALIZED", poachers[0].Poacher.State)
	}
}

func TestUpdateDart_FirstMatchWins(t *testing.T) {
	cfg := testConfig(t)
	pos := components.Position{Vec3: mgl64.Vec3{0, 0, 30}}
	d := newTestDart(5)
	poachers := newPoacherRefs(mgl64.Vec3{25, 5, 30}, mgl64.Vec3{15, 0, 30})

	_, idx := UpdateDart(&pos, &d, poachers, 0.1, tickDT, cfg)
	if idx != 0 {
		t.Fatalf("hit index = %d, want 0", idx)
	}
	if poachers[1].Poacher.State != components.PoacherTracking {
		t.Errorf("second poacher should be untouched, got %v", poachers[1].Poacher.State)
	}
}

func TestUpdateDart_SkipsInactivePoachers(t *testing.T) {
	cfg := testConfig(t)

	for _, state := range []components.PoacherState{components.PoacherInactive, components.PoacherNeutralized} {
		t.Run(state.String(), func(t *testing.T) {
			pos := components.Position{Vec3: mgl64.Vec3{0, 0, 30}}
			d := newTestDart(5)
			poachers := newPoacherRefs(mgl64.Vec3{15, 0, 30})
			poachers[0].Poacher.State = state

			outcome, _ := UpdateDart(&pos, &d, poachers, 0.1, tickDT, cfg)
			if outcome != DartFlying || !d.Active {
				t.Errorf("dart should fly through, got %v active=%v", outcome, d.Active)
			}
			if poachers[0].Poacher.State != state {
				t.Errorf("poacher state changed to %v", poachers[0].Poacher.State)
			}
		})
	}
}

func TestUpdateDart_ExpiresAfterLifetime(t *testing.T) {
	cfg := testConfig(t)
	pos := components.Position{Vec3: mgl64.Vec3{0, 0, 30}}
	d := components.Dart{Direction: mgl64.Vec3{0, 1, 0}, Speed: 15, ExpiresAt: cfg.Dart.Lifetime, Active: true}

	now := 0.0
	var outcome DartOutcome
	for i := 0; i < 400 && d.Active; i++ {
		now += tickDT
		outcome, _ = UpdateDart(&pos, &d, nil, now, tickDT, cfg)
	}

	if d.Active {
		t.Fatal("dart still active after its lifetime")
	}
	if outcome != DartExpired {
		t.Errorf("outcome = %v, want expired", outcome)
	}
	if now < cfg.Dart.Lifetime-1e-9 || now > cfg.Dart.Lifetime+2*tickDT {
		t.Errorf("expired at %f, want about %f", now, cfg.Dart.Lifetime)
	}
}

func TestUpdateDart_ExpiredDartCannotHit(t *testing.T) {
	cfg := testConfig(t)
	pos := components.Position{Vec3: mgl64.Vec3{0, 0, 30}}
	d := newTestDart(5)
	poachers := newPoacherRefs(mgl64.Vec3{15, 0, 30})

	outcome, idx := UpdateDart(&pos, &d, poachers, 5, tickDT, cfg)
	if outcome != DartExpired || idx != -1 {
		t.Errorf("expected expiry without hit, got %v %d", outcome, idx)
	}
	if poachers[0].Poacher.State != components.PoacherTracking {
		t.Errorf("expired dart neutralized a poacher")
	}
}

func TestUpdateDart_ZeroDirectionStaysPut(t *testing.T) {
	cfg := testConfig(t)
	pos := components.Position{Vec3: mgl64.Vec3{1, 2, 3}}
	d := components.Dart{Speed: 15, ExpiresAt: 5, Active: true}

	UpdateDart(&pos, &d, nil, 1, tickDT, cfg)
	if pos.Vec3 != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("zero-direction dart moved to %v", pos.Vec3)
	}
}
