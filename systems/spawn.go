package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sanctuary/config"
)

// Boundary edges a poacher can enter from.
const (
	EdgeTop = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// SpawnOrder describes a poacher the director wants created.
type SpawnOrder struct {
	Position mgl64.Vec3
	Target   ecs.Entity
	Edge     int
}

// SpawnDirector schedules poacher arrivals with an interval that shrinks
// as game time goes on.
type SpawnDirector struct {
	LastSpawn float64

	cfg        config.SpawnConfig
	halfExtent float64
	height     float64
}

// NewSpawnDirector creates a director whose first interval starts at now.
func NewSpawnDirector(cfg *config.Config, now float64) *SpawnDirector {
	return &SpawnDirector{
		LastSpawn:  now,
		cfg:        cfg.Spawn,
		halfExtent: cfg.World.HalfExtent,
		height:     cfg.Poacher.Height,
	}
}

// Interval returns the spawn interval for the given game time.
func (s *SpawnDirector) Interval(gameTime float64) float64 {
	return math.Max(s.cfg.MinInterval, s.cfg.InitialInterval-gameTime/s.cfg.RampSeconds)
}

// Due reports whether the current interval has elapsed.
func (s *SpawnDirector) Due(now, gameTime float64) bool {
	return now-s.LastSpawn >= s.Interval(gameTime)
}

// Next returns a spawn order once the interval has elapsed. The interval
// restarts whether or not a target is available; with no candidates the
// spawn is skipped.
func (s *SpawnDirector) Next(now, gameTime float64, candidates []ecs.Entity, rng Rand) (SpawnOrder, bool) {
	if !s.Due(now, gameTime) {
		return SpawnOrder{}, false
	}
	s.LastSpawn = now
	if len(candidates) == 0 {
		return SpawnOrder{}, false
	}

	pos, edge := s.EdgePosition(rng)
	return SpawnOrder{
		Position: pos,
		Target:   candidates[rng.Intn(len(candidates))],
		Edge:     edge,
	}, true
}

// EdgePosition picks a uniformly random point on a uniformly random edge
// of the play boundary.
func (s *SpawnDirector) EdgePosition(rng Rand) (mgl64.Vec3, int) {
	h := s.halfExtent
	edge := rng.Intn(4)
	along := uniform(rng, -h, h)

	switch edge {
	case EdgeTop:
		return mgl64.Vec3{along, h, s.height}, edge
	case EdgeRight:
		return mgl64.Vec3{h, along, s.height}, edge
	case EdgeBottom:
		return mgl64.Vec3{along, -h, s.height}, edge
	default:
		return mgl64.Vec3{-h, along, s.height}, edge
	}
}

// Reset restarts the interval at now.
func (s *SpawnDirector) Reset(now float64) {
	s.LastSpawn = now
}
