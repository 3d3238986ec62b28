// Package math provides the geometry helpers the track and physics code needs on
// top of mgl32: bounding boxes, interpolation and a few scalar utilities.
package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Forward and Up are the canonical track-space axes.
var (
	Forward = mgl32.Vec3{0, 0, 1}
	Up      = mgl32.Vec3{0, 1, 0}
)

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float32) float32 {
	return deg * (math.Pi / 180)
}

// SafeNormalize returns a unit vector, or the zero vector for zero-length input.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// LerpVec3 performs linear interpolation between two 3D vectors.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		a[0] + t*(b[0]-a[0]),
		a[1] + t*(b[1]-a[1]),
		a[2] + t*(b[2]-a[2]),
	}
}

// Reflect mirrors v about the plane with the given unit normal.
func Reflect(v, normal mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(normal.Mul(2 * v.Dot(normal)))
}

// DistSq returns the squared distance between two points.
func DistSq(a, b mgl32.Vec3) float32 {
	return a.Sub(b).LenSqr()
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}
