package flock

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// headingOffset turns the sprite artwork, which points down, to face along +X at angle 0.
const headingOffset = 1.5 * math.Pi

// NormalizeOrZero returns v scaled to unit length, or the zero vector when v has no direction.
func NormalizeOrZero(v mgl32.Vec2) mgl32.Vec2 {
	l := v.Len()
	if l == 0 || isNaN(l) || math.IsInf(float64(l), 0) {
		return mgl32.Vec2{}
	}
	return v.Mul(1 / l)
}

// ClampLength scales v down so that |v| <= limit.
func ClampLength(v mgl32.Vec2, limit float32) mgl32.Vec2 {
	if limit <= 0 {
		return mgl32.Vec2{}
	}
	lsq := v.LenSqr()
	if lsq <= limit*limit {
		return v
	}
	return v.Mul(limit / float32(math.Sqrt(float64(lsq))))
}

// Heading returns the sprite rotation for an entity moving with velocity v.
func Heading(v mgl32.Vec2) float32 {
	return float32(math.Atan2(float64(v[1]), float64(v[0])) + headingOffset)
}

// Direction is the unit vector an entity with the given Heading is facing.
func Direction(heading float32) mgl32.Vec2 {
	a := float64(heading) - headingOffset
	return mgl32.Vec2{float32(math.Cos(a)), float32(math.Sin(a))}
}
