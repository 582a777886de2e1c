package components

import "github.com/go-gl/mathgl/mgl64"

// Dart is a tranquilizer projectile.
type Dart struct {
	ID        uint32
	Direction mgl64.Vec3 // Unit, or zero
	Speed     float64    // Units per reference tick
	ExpiresAt float64
	Active    bool
}
