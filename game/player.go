package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/sanctuary/camera"
)

// Player is the ranger the commands act through.
type Player struct {
	Position     mgl64.Vec3
	Angle        float64 // Degrees, counter-clockwise from +x
	ShootReadyAt float64 // Sim time the next dart may be fired
}

// Forward returns the unit facing direction on the ground plane.
func (p *Player) Forward() mgl64.Vec2 {
	rad := mgl64.DegToRad(p.Angle)
	return mgl64.Vec2{math.Cos(rad), math.Sin(rad)}
}

// Pose returns the player as seen by the camera rig.
func (p *Player) Pose() camera.Pose {
	return camera.Pose{Position: p.Position, Angle: p.Angle}
}

// move steps along the facing direction and keeps the player inside the field.
func (p *Player) move(steps int, stepLen, halfExtent float64) {
	d := p.Forward().Mul(float64(steps) * stepLen)
	p.Position[0] = mgl64.Clamp(p.Position[0]+d[0], -halfExtent, halfExtent)
	p.Position[1] = mgl64.Clamp(p.Position[1]+d[1], -halfExtent, halfExtent)
}

// rotate turns the player; positive steps turn counter-clockwise.
func (p *Player) rotate(steps int, stepDeg float64) {
	p.Angle = math.Mod(p.Angle+float64(steps)*stepDeg, 360)
	if p.Angle < 0 {
		p.Angle += 360
	}
}
