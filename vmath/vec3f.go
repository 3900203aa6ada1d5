package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector for physics-heavy calculations
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FDist returns the euclidean distance between a and b
func V3FDist(a, b Vec3F) float64 {
	return V3FMag(V3FSub(a, b))
}

// V3FApproach moves v toward target by fraction rate: v + (target-v)*rate
func V3FApproach(v, target Vec3F, rate float64) Vec3F {
	return Vec3F{
		v.X + (target.X-v.X)*rate,
		v.Y + (target.Y-v.Y)*rate,
		v.Z + (target.Z-v.Z)*rate,
	}
}

// V3FRandomCube returns a vector uniform in the cube [-half, half)^3
func V3FRandomCube(src Source, half float64) Vec3F {
	return Vec3F{
		Centered(src) * 2 * half,
		Centered(src) * 2 * half,
		Centered(src) * 2 * half,
	}
}
