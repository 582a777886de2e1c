package game

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/sanctuary/components"
	"github.com/pthm-cable/sanctuary/systems"
	"github.com/pthm-cable/sanctuary/telemetry"
)

// AnyHabitat asks Feed to use the first feeding point in range.
const AnyHabitat = -1

// Command is a discrete player action.
type Command interface {
	apply(g *Game)
}

// Move walks the player Steps move-steps along its facing (negative walks back).
type Move struct{ Steps int }

// Rotate turns the player Steps turn-steps (positive is counter-clockwise).
type Rotate struct{ Steps int }

// Feed buys food for a habitat, or for the nearest one with AnyHabitat.
type Feed struct{ HabitatID int }

// Shoot fires a dart from Origin along Direction.
type Shoot struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// ShootFromPlayer fires a dart from the player's muzzle along its facing.
type ShootFromPlayer struct{}

// SelectNearest selects the closest uncaptured animal within MaxRange of Position.
type SelectNearest struct {
	Position mgl64.Vec3
	MaxRange float64
}

// SelectNearPlayer selects around the player using the interaction range.
type SelectNearPlayer struct{}

// TogglePause flips the pause flag.
type TogglePause struct{}

// ToggleCamera switches between third and first person.
type ToggleCamera struct{}

func (c Move) apply(g *Game) { g.Move(c.Steps) }
func (c Rotate) apply(g *Game) { g.Rotate(c.Steps) }
func (c Shoot) apply(g *Game) { g.Shoot(c.Origin, c.Direction) }
func (ShootFromPlayer) apply(g *Game) { g.ShootFromPlayer() }
func (c SelectNearest) apply(g *Game) { g.SelectNearest(c.Position, c.MaxRange) }
func (SelectNearPlayer) apply(g *Game) { g.SelectNearPlayer() }
func (TogglePause) apply(g *Game) { g.TogglePause() }
func (ToggleCamera) apply(g *Game) { g.ToggleCamera() }

func (c Feed) apply(g *Game) {
	if c.HabitatID == AnyHabitat {
		g.FeedNearest()
		return
	}
	g.Feed(c.HabitatID)
}

// Submit queues a command for the start of the next Step.
func (g *Game) Submit(cmd Command) {
	g.pending = append(g.pending, cmd)
}

// Apply executes a command now. Call it between steps only.
func (g *Game) Apply(cmd Command) {
	cmd.apply(g)
}

func (g *Game) applyPending() {
	for _, cmd := range g.pending {
		cmd.apply(g)
	}
	g.pending = g.pending[:0]
}

// playable reports whether gameplay commands take effect.
func (g *Game) playable() bool {
	return !g.session.Paused() && g.session.Phase() == PhasePlaying
}

// Move walks the player.
func (g *Game) Move(steps int) {
	if !g.playable() {
		return
	}
	g.player.move(steps, g.cfg.Player.MoveStep, g.cfg.World.HalfExtent)
}

// Rotate turns the player.
func (g *Game) Rotate(steps int) {
	if !g.playable() {
		return
	}
	g.player.rotate(steps, g.cfg.Player.TurnStep)
}

// Feed buys food for habitat id from the player's position.
// It is a no-op when out of range or short of currency.
func (g *Game) Feed(id int) bool {
	if !g.playable() {
		return false
	}
	if !g.economy.Feed(g.habitats, id, g.player.Position) {
		return false
	}
	g.emit(telemetry.NewFoodBoughtEvent(g.now, id, g.cfg.Economy.FoodPerFeed))
	return true
}

// FeedNearest feeds whichever feeding point the player stands at.
// It returns the habitat id, or -1.
func (g *Game) FeedNearest() int {
	if !g.playable() {
		return -1
	}
	id := g.economy.FeedNearest(g.habitats, g.player.Position)
	if id >= 0 {
		g.emit(telemetry.NewFoodBoughtEvent(g.now, id, g.cfg.Economy.FoodPerFeed))
	}
	return id
}

// Shoot fires a dart unless the launcher is cooling down.
func (g *Game) Shoot(origin, direction mgl64.Vec3) bool {
	if !g.playable() || g.now < g.player.ShootReadyAt {
		return false
	}
	g.player.ShootReadyAt = g.now + g.cfg.Dart.Cooldown
	id := g.spawnDart(origin, direction)
	g.emit(telemetry.Event{Type: telemetry.EventDartFired, Time: g.now, EntityID: id})
	return true
}

// ShootFromPlayer fires from the muzzle in front of the player.
func (g *Game) ShootFromPlayer() bool {
	fwd := g.player.Forward()
	origin := g.player.Position.
		Add(fwd.Vec3(0).Mul(g.cfg.Dart.MuzzleOffset)).
		Add(mgl64.Vec3{0, 0, g.cfg.Dart.MuzzleHeight})
	return g.Shoot(origin, fwd.Vec3(0))
}

// SelectNearest selects the closest uncaptured animal strictly within maxRange
// of pos on the ground plane and returns its index. A miss clears the selection.
func (g *Game) SelectNearest(pos mgl64.Vec3, maxRange float64) int {
	g.selected = -1
	best := maxRange
	for i, e := range g.animals {
		apos, a := g.animalMap.Get(e)
		if a.State == components.AnimalCaptured {
			continue
		}
		if d := systems.PlanarDistance(pos, apos.Vec3); d < best {
			best = d
			g.selected = i
		}
	}
	if g.selected >= 0 {
		slog.Debug("animal selected", "index", g.selected, "distance", best)
	}
	return g.selected
}

// SelectNearPlayer selects around the player.
func (g *Game) SelectNearPlayer() int {
	return g.SelectNearest(g.player.Position, g.cfg.Player.InteractionRange)
}

// TogglePause pauses or resumes. The clock is re-anchored on resume so the
// paused wall time is not replayed as one large delta.
func (g *Game) TogglePause() {
	g.session.TogglePause()
	if !g.session.Paused() {
		g.clock.Reanchor()
	}
	slog.Info("pause toggled", "paused", g.session.Paused())
}

// ToggleCamera switches the camera mode.
func (g *Game) ToggleCamera() {
	g.cameraMode = g.cameraMode.Toggle()
}
