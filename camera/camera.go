// Package camera provides the 3D view rig used to look at the sanctuary.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mode selects how the view is placed relative to the player.
type Mode int

const (
	ThirdPerson Mode = iota
	FirstPerson
)

func (m Mode) String() string {
	if m == FirstPerson {
		return "first_person"
	}
	return "third_person"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == FirstPerson {
		return ThirdPerson
	}
	return FirstPerson
}

// Pose is the player position and heading (degrees, counter-clockwise from +x).
type Pose struct {
	Position mgl64.Vec3
	Angle    float64
}

// View is a resolved eye/target pair. The world is z-up.
type View struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3
	FovY   float64 // Degrees
}

// Rig holds the orbit and zoom state of the third-person camera.
// First-person views are derived from the player pose alone.
type Rig struct {
	// Offset is the unrotated eye position for the overview; it looks at the origin.
	Offset mgl64.Vec3

	// Yaw rotates Offset about the z axis, in degrees.
	Yaw float64

	// Zoom moves the eye along (0, 1, 1) by ZoomStep per step.
	ZoomStep  float64
	MinHeight float64
	MaxHeight float64

	// First-person placement
	EyeHeight   float64 // Above the player
	LookAhead   float64 // Horizontal distance to the look target
	LookHeight  float64 // Target height above the player
	OrbitStep   float64 // Degrees per orbit step
	FovOverview float64
	FovFirst    float64
}

// New returns a rig with the overview above the south edge of the field.
func New() *Rig {
	return &Rig{
		Offset:      mgl64.Vec3{0, 500, 350},
		ZoomStep:    20,
		MinHeight:   60,
		MaxHeight:   1200,
		EyeHeight:   40,
		LookAhead:   100,
		LookHeight:  90,
		OrbitStep:   5,
		FovOverview: 90,
		FovFirst:    90,
	}
}

// Orbit rotates the overview by steps * OrbitStep degrees.
func (r *Rig) Orbit(steps int) {
	r.Yaw = math.Mod(r.Yaw+float64(steps)*r.OrbitStep, 360)
}

// Zoom moves the overview eye; negative steps move closer.
func (r *Rig) Zoom(steps int) {
	d := float64(steps) * r.ZoomStep
	z := r.Offset.Z() + d
	if z < r.MinHeight {
		d = r.MinHeight - r.Offset.Z()
	} else if z > r.MaxHeight {
		d = r.MaxHeight - r.Offset.Z()
	}
	r.Offset = r.Offset.Add(mgl64.Vec3{0, d, d})
}

// View resolves the camera for mode and the current player pose.
func (r *Rig) View(mode Mode, player Pose) View {
	up := mgl64.Vec3{0, 0, 1}
	if mode == FirstPerson {
		rad := mgl64.DegToRad(player.Angle)
		eye := player.Position.Add(mgl64.Vec3{0, 0, r.EyeHeight})
		target := player.Position.Add(mgl64.Vec3{
			r.LookAhead * math.Cos(rad),
			r.LookAhead * math.Sin(rad),
			r.LookHeight,
		})
		return View{Eye: eye, Target: target, Up: up, FovY: r.FovFirst}
	}

	rot := mgl64.Rotate3DZ(mgl64.DegToRad(r.Yaw))
	return View{
		Eye:    rot.Mul3x1(r.Offset),
		Target: mgl64.Vec3{},
		Up:     up,
		FovY:   r.FovOverview,
	}
}
