package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sanctuary/components"
)

func TestSpawnDirector_Interval(t *testing.T) {
	cfg := testConfig(t)
	s := NewSpawnDirector(cfg, 0)

	tests := []struct {
		gameTime float64
		want     float64
	}{
		{0, 15},
		{60, 14.5},
		{120, 14},
		{600, 10},
		{840, 8},
		{5000, 8},
	}
	for _, tt := range tests {
		if got := s.Interval(tt.gameTime); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Interval(%v) = %v, want %v", tt.gameTime, got, tt.want)
		}
	}
}

func TestSpawnDirector_Next(t *testing.T) {
	cfg := testConfig(t)
	aw := newAnimalWorld()
	aw.add(mgl64.Vec3{0, 0, 20}, components.AnimalWander)
	aw.add(mgl64.Vec3{10, 0, 20}, components.AnimalWander)
	candidates := aw.Candidates()

	s := NewSpawnDirector(cfg, 0)
	rng := testRNG()

	if _, ok := s.Next(14.9, 0, candidates, rng); ok {
		t.Fatal("spawned before the interval")
	}

	order, ok := s.Next(15, 0, candidates, rng)
	if !ok {
		t.Fatal("expected a spawn at 15s")
	}
	if s.LastSpawn != 15 {
		t.Errorf("LastSpawn = %f, want 15", s.LastSpawn)
	}
	if order.Target != candidates[0] && order.Target != candidates[1] {
		t.Error("target is not one of the candidates")
	}
	p := order.Position
	onEdge := math.Abs(math.Abs(p.X())-600) < 1e-9 || math.Abs(math.Abs(p.Y())-600) < 1e-9
	if !onEdge || p.Z() != 30 {
		t.Errorf("spawn position %v is not on the boundary at poacher height", p)
	}
	if math.Abs(p.X()) > 600 || math.Abs(p.Y()) > 600 {
		t.Errorf("spawn position %v outside the boundary", p)
	}

	if _, ok := s.Next(20, 0, candidates, rng); ok {
		t.Error("spawned again before the next interval")
	}
}

func TestSpawnDirector_SkipsWithoutTargets(t *testing.T) {
	cfg := testConfig(t)
	s := NewSpawnDirector(cfg, 0)

	if _, ok := s.Next(16, 0, []ecs.Entity{}, testRNG()); ok {
		t.Fatal("spawned with no targets")
	}
	if s.LastSpawn != 16 {
		t.Errorf("skipped interval should restart the timer, LastSpawn = %f", s.LastSpawn)
	}
}

func TestSpawnDirector_EdgePositions(t *testing.T) {
	cfg := testConfig(t)
	s := NewSpawnDirector(cfg, 0)

	tests := []struct {
		edge int
		want mgl64.Vec3
	}{
		// along = -600 + 0.75*1200 = 300
		{EdgeTop, mgl64.Vec3{300, 600, 30}},
		{EdgeRight, mgl64.Vec3{600, 300, 30}},
		{EdgeBottom, mgl64.Vec3{300, -600, 30}},
		{EdgeLeft, mgl64.Vec3{-600, 300, 30}},
	}
	for _, tt := range tests {
		rng := &scriptedRand{ints: []int{tt.edge}, floats: []float64{0.75}}
		got, edge := s.EdgePosition(rng)
		if edge != tt.edge {
			t.Errorf("edge = %d, want %d", edge, tt.edge)
		}
		if got.Sub(tt.want).Len() > 1e-9 {
			t.Errorf("edge %d: position %v, want %v", tt.edge, got, tt.want)
		}
	}
}
