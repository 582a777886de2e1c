package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector helpers. mgl64's Normalize divides by the length and yields NaN
// for the zero vector; these return the zero vector instead.

// normalize2 returns v scaled to unit length, or the zero vector.
func normalize2(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / l)
}

// normalize3 returns v scaled to unit length, or the zero vector.
func normalize3(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Normalize3 is the exported zero-safe normalisation used for player input.
func Normalize3(v mgl64.Vec3) mgl64.Vec3 {
	return normalize3(v)
}

// planar drops the z component.
func planar(v mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{v[0], v[1]}
}

// PlanarDistance returns the distance between a and b ignoring z.
func PlanarDistance(a, b mgl64.Vec3) float64 {
	return planar(a).Sub(planar(b)).Len()
}

// clamp clamps v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// clampVital clamps a health or happiness value to [0, 100].
func clampVital(v float64) float64 {
	return clamp(v, 0, 100)
}

// randomUnit2 draws each axis from U[-1, 1] and normalises.
func randomUnit2(rng Rand) mgl64.Vec2 {
	return normalize2(mgl64.Vec2{rng.Float64()*2 - 1, rng.Float64()*2 - 1})
}

// RandomHeading returns a random unit direction on the ground plane.
func RandomHeading(rng Rand) mgl64.Vec2 {
	return randomUnit2(rng)
}

// uniform draws from U[lo, hi].
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
