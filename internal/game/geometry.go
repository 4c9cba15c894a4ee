package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return mgl64.Clamp(v, lo, hi)
}

// unitOrZero returns v scaled to unit length. A zero-length vector is divided
// by 1 instead, so the result is the zero vector rather than NaN.
func unitOrZero(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l == 0 {
		l = 1
	}
	return v.Mul(1 / l)
}

// heading returns the angle of v in radians, measured from +X toward +Y
// (screen coordinates, so positive angles turn clockwise on screen).
func heading(v mgl64.Vec2) float64 {
	return math.Atan2(v.Y(), v.X())
}

// fromAngle returns the vector of the given length pointing along angle.
func fromAngle(angle, length float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(angle) * length, math.Sin(angle) * length}
}

// distance returns the Euclidean distance between a and b.
func distance(a, b mgl64.Vec2) float64 {
	return a.Sub(b).Len()
}

// clampToArena keeps p inside the arena, inset by margin on every side.
func clampToArena(p mgl64.Vec2, w World, margin float64) mgl64.Vec2 {
	return mgl64.Vec2{
		clamp(p.X(), margin, w.Width-margin),
		clamp(p.Y(), margin, w.Height-margin),
	}
}
