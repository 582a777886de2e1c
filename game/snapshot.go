package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/sanctuary/components"
	"github.com/pthm-cable/sanctuary/telemetry"
)

// AnimalView is an animal as seen by the presentation layer.
type AnimalView struct {
	ID        uint32     `json:"id" msgpack:"id"`
	Type      string     `json:"type" msgpack:"type"`
	Habitat   int        `json:"habitat" msgpack:"habitat"`
	Position  mgl64.Vec3 `json:"position" msgpack:"position"`
	Heading   mgl64.Vec2 `json:"heading" msgpack:"heading"`
	Size      float64    `json:"size" msgpack:"size"`
	Health    float64    `json:"health" msgpack:"health"`
	Happiness float64    `json:"happiness" msgpack:"happiness"`
	State     string     `json:"state" msgpack:"state"`
}

// PoacherView is a poacher that has not gone inactive.
type PoacherView struct {
	ID       uint32     `json:"id" msgpack:"id"`
	Position mgl64.Vec3 `json:"position" msgpack:"position"`
	State    string     `json:"state" msgpack:"state"`
	TargetID uint32     `json:"target_id" msgpack:"target_id"`
}

// DartView is an active dart.
type DartView struct {
	ID        uint32     `json:"id" msgpack:"id"`
	Position  mgl64.Vec3 `json:"position" msgpack:"position"`
	Direction mgl64.Vec3 `json:"direction" msgpack:"direction"`
}

// HabitatView is a habitat with its current food stock.
type HabitatView struct {
	ID           int        `json:"id" msgpack:"id"`
	Name         string     `json:"name" msgpack:"name"`
	Center       mgl64.Vec3 `json:"center" msgpack:"center"`
	FeedingPoint mgl64.Vec3 `json:"feeding_point" msgpack:"feeding_point"`
	Color        [3]float32 `json:"color" msgpack:"color"`
	Food         int        `json:"food" msgpack:"food"`
}

// PlayerView is the player pose.
type PlayerView struct {
	Position mgl64.Vec3 `json:"position" msgpack:"position"`
	Angle    float64    `json:"angle" msgpack:"angle"`
	CanShoot bool       `json:"can_shoot" msgpack:"can_shoot"`
}

// Snapshot is a self-contained copy of the world after a tick. Nothing in
// it aliases game state, so it may be shared with other goroutines.
type Snapshot struct {
	Tick     int64   `json:"tick" msgpack:"tick"`
	Time     float64 `json:"time" msgpack:"time"`
	GameTime float64 `json:"game_time" msgpack:"game_time"`
	Session  int     `json:"session" msgpack:"session"`
	State    string  `json:"state" msgpack:"state"`

	// RestartIn counts down to the reset while GAME_OVER, else 0.
	RestartIn float64 `json:"restart_in" msgpack:"restart_in"`

	Currency int `json:"currency" msgpack:"currency"`
	Score    int `json:"score" msgpack:"score"`

	Animals  []AnimalView  `json:"animals" msgpack:"animals"`
	Poachers []PoacherView `json:"poachers" msgpack:"poachers"`
	Darts    []DartView    `json:"darts" msgpack:"darts"`
	Habitats []HabitatView `json:"habitats" msgpack:"habitats"`

	Selected      int        `json:"selected" msgpack:"selected"` // Index into Animals, -1 for none
	Player        PlayerView `json:"player" msgpack:"player"`
	CameraMode    string     `json:"camera_mode" msgpack:"camera_mode"`
	HungerWarning bool       `json:"hunger_warning" msgpack:"hunger_warning"`

	Alive    int `json:"alive" msgpack:"alive"`
	Dead     int `json:"dead" msgpack:"dead"`
	Captured int `json:"captured" msgpack:"captured"`

	Events []telemetry.Event `json:"events,omitempty" msgpack:"events,omitempty"`
}

// Snapshot copies the current world state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      g.tick,
		Time:      g.now,
		GameTime:  g.economy.GameTime,
		Session:   g.session.Number(),
		State:     g.session.State(),
		RestartIn: g.session.Countdown(g.now),
		Currency:  g.economy.Currency,
		Score:     g.economy.Score,
		Animals:   make([]AnimalView, 0, len(g.animals)),
		Poachers:  make([]PoacherView, 0, len(g.poachers)),
		Darts:     make([]DartView, 0, len(g.darts)),
		Habitats:  make([]HabitatView, 0, g.habitats.Len()),
		Selected:  g.selected,
		Player: PlayerView{
			Position: g.player.Position,
			Angle:    g.player.Angle,
			CanShoot: g.now >= g.player.ShootReadyAt,
		},
		CameraMode: g.cameraMode.String(),
	}

	var happinessSum float64
	for _, e := range g.animals {
		pos, a := g.animalMap.Get(e)
		s.Animals = append(s.Animals, AnimalView{
			ID:        a.ID,
			Type:      a.Type,
			Habitat:   a.HabitatID,
			Position:  pos.Vec3,
			Heading:   a.Heading,
			Size:      a.Size,
			Health:    a.Health,
			Happiness: a.Happiness,
			State:     a.State.String(),
		})
		switch a.State {
		case components.AnimalDead:
			s.Dead++
		case components.AnimalCaptured:
			s.Captured++
		default:
			s.Alive++
			happinessSum += a.Happiness
		}
	}
	if s.Alive > 0 {
		s.HungerWarning = happinessSum/float64(s.Alive) < g.cfg.Animal.HungerWarningMean
	}

	for _, e := range g.poachers {
		pos, p := g.poacherMap.Get(e)
		if p.State == components.PoacherInactive {
			continue
		}
		var targetID uint32
		if _, a, ok := g.lookupAnimal(p.Target); ok {
			targetID = a.ID
		}
		s.Poachers = append(s.Poachers, PoacherView{
			ID:       p.ID,
			Position: pos.Vec3,
			State:    p.State.String(),
			TargetID: targetID,
		})
	}

	for _, e := range g.darts {
		pos, d := g.dartMap.Get(e)
		if !d.Active {
			continue
		}
		s.Darts = append(s.Darts, DartView{ID: d.ID, Position: pos.Vec3, Direction: d.Direction})
	}

	for _, h := range g.habitats.All() {
		s.Habitats = append(s.Habitats, HabitatView{
			ID:           h.ID,
			Name:         h.Name,
			Center:       h.Center,
			FeedingPoint: h.FeedingPoint,
			Color:        h.Color,
			Food:         h.Food,
		})
	}

	if len(g.events) > 0 {
		s.Events = make([]telemetry.Event, len(g.events))
		copy(s.Events, g.events)
	}
	return s
}
