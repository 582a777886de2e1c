// Package renderer draws the sanctuary in 3D with raylib.
//
// The simulation is z-up; raylib is y-up. Every position goes through ToRL,
// which maps world (x, y, z) to raylib (x, z, -y).
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/sanctuary/camera"
	"github.com/pthm-cable/sanctuary/game"
)

// Scene renders snapshots of the play field.
type Scene struct {
	halfExtent float32
	padRadius  float32
	stationArm float32

	Ground      rl.Color
	GridColor   rl.Color
	PoacherBody rl.Color
	Neutralized rl.Color
	DartColor   rl.Color
	PlayerColor rl.Color
	Selection   rl.Color
}

// NewScene creates a scene for a square field of the given half extent.
func NewScene(halfExtent float64) *Scene {
	return &Scene{
		halfExtent:  float32(halfExtent),
		padRadius:   180,
		stationArm:  12,
		Ground:      rl.Color{R: 70, G: 95, B: 60, A: 255},
		GridColor:   rl.Color{R: 90, G: 115, B: 80, A: 255},
		PoacherBody: rl.Color{R: 40, G: 40, B: 40, A: 255},
		Neutralized: rl.Color{R: 120, G: 120, B: 170, A: 160},
		DartColor:   rl.Color{R: 255, G: 220, B: 60, A: 255},
		PlayerColor: rl.Color{R: 30, G: 110, B: 230, A: 255},
		Selection:   rl.Yellow,
	}
}

// ToRL converts a z-up world position to raylib space.
func ToRL(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Z()), float32(-v.Y()))
}

// Camera converts a resolved view to a raylib camera.
func Camera(v camera.View) rl.Camera3D {
	return rl.Camera3D{
		Position:   ToRL(v.Eye),
		Target:     ToRL(v.Target),
		Up:         ToRL(v.Up),
		Fovy:       float32(v.FovY),
		Projection: rl.CameraPerspective,
	}
}

// Draw renders s from view. It must be called between BeginDrawing and EndDrawing.
func (sc *Scene) Draw(s game.Snapshot, view camera.View) {
	rl.BeginMode3D(Camera(view))
	defer rl.EndMode3D()

	sc.drawGround()
	for _, h := range s.Habitats {
		sc.drawHabitat(h)
	}
	for i, a := range s.Animals {
		sc.drawAnimal(a, i == s.Selected)
	}
	for _, p := range s.Poachers {
		sc.drawPoacher(p)
	}
	for _, d := range s.Darts {
		sc.drawDart(d)
	}
	if s.CameraMode != camera.FirstPerson.String() {
		sc.drawPlayer(s.Player)
	}
}

func (sc *Scene) drawGround() {
	size := 2 * sc.halfExtent
	rl.DrawPlane(rl.NewVector3(0, 0, 0), rl.NewVector2(size, size), sc.Ground)
	rl.DrawCubeWires(rl.NewVector3(0, 0, 0), size, 1, size, sc.GridColor)
}

func (sc *Scene) drawHabitat(h game.HabitatView) {
	color := HabitatColor(h.Color)
	center := ToRL(h.Center)
	center.Y = 0.5
	rl.DrawCylinder(center, sc.padRadius, sc.padRadius, 1, 48, rl.Fade(color, 0.6))

	// Feeding station: a post with one food block stacked per unit of stock.
	station := ToRL(h.FeedingPoint)
	station.Y = 0
	rl.DrawCube(rl.NewVector3(station.X, 15, station.Z), 4, 30, 4, rl.Brown)
	for i := 0; i < h.Food && i < 20; i++ {
		y := 2 + float32(i)*3
		rl.DrawCube(rl.NewVector3(station.X+sc.stationArm, y, station.Z), 8, 2.5, 8, rl.Gold)
	}
}

func (sc *Scene) drawAnimal(a game.AnimalView, selected bool) {
	pos := ToRL(a.Position)
	size := float32(a.Size)
	color := AnimalColor(a)

	switch a.State {
	case "DEAD":
		rl.DrawCube(rl.NewVector3(pos.X, size*0.15, pos.Z), size, size*0.3, size*0.5, color)
		return
	case "CAPTURED":
		rl.DrawCubeWires(pos, size*0.6, size*0.6, size*0.6, color)
		return
	}

	rl.DrawCube(pos, size*0.6, size*0.6, size*0.6, color)
	head := pos
	head.X += float32(a.Heading.X()) * size * 0.4
	head.Z -= float32(a.Heading.Y()) * size * 0.4
	rl.DrawSphere(head, size*0.15, color)

	if selected {
		rl.DrawCircle3D(rl.NewVector3(pos.X, 1, pos.Z), size, rl.NewVector3(1, 0, 0), 90, sc.Selection)
	}
}

func (sc *Scene) drawPoacher(p game.PoacherView) {
	pos := ToRL(p.Position)
	color := sc.PoacherBody
	if p.State == "NEUTRALIZED" {
		color = sc.Neutralized
	}
	rl.DrawCylinder(rl.NewVector3(pos.X, 0, pos.Z), 8, 8, pos.Y+10, 12, color)
	rl.DrawSphere(rl.NewVector3(pos.X, pos.Y+16, pos.Z), 7, rl.Maroon)
}

func (sc *Scene) drawDart(d game.DartView) {
	head := ToRL(d.Position)
	tail := ToRL(d.Position.Sub(d.Direction.Mul(12)))
	rl.DrawLine3D(tail, head, sc.DartColor)
	rl.DrawSphere(head, 2, sc.DartColor)
}

func (sc *Scene) drawPlayer(p game.PlayerView) {
	pos := ToRL(p.Position)
	rl.DrawCylinder(rl.NewVector3(pos.X, 0, pos.Z), 10, 10, pos.Y, 16, sc.PlayerColor)

	rad := mgl64.DegToRad(p.Angle)
	aim := p.Position.Add(mgl64.Vec3{40 * math.Cos(rad), 40 * math.Sin(rad), 0})
	color := sc.PlayerColor
	if p.CanShoot {
		color = sc.DartColor
	}
	rl.DrawLine3D(pos, ToRL(aim), color)
}

// HabitatColor converts an RGB triple in [0, 1] to an opaque raylib color.
func HabitatColor(c [3]float32) rl.Color {
	return rl.Color{R: unit(c[0]), G: unit(c[1]), B: unit(c[2]), A: 255}
}

// AnimalColor shades animals by state; hungry animals fade toward red.
func AnimalColor(a game.AnimalView) rl.Color {
	switch a.State {
	case "DEAD":
		return rl.DarkGray
	case "CAPTURED":
		return rl.Red
	case "EAT":
		return rl.Lime
	case "SEEK_FOOD":
		return rl.Orange
	}
	t := float32(a.Happiness / 100)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return rl.Color{R: uint8(230 - 130*t), G: uint8(120 + 100*t), B: 90, A: 255}
}

func unit(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
