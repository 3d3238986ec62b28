package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// QuatFromEulerZYX builds a rotation from angles in radians about the Z, Y and X
// axes, composed as qZ * qY * qX.
func QuatFromEulerZYX(z, y, x float32) mgl32.Quat {
	hz := float64(z) * 0.5
	hy := float64(y) * 0.5
	hx := float64(x) * 0.5

	sz, cz := math.Sin(hz), math.Cos(hz)
	sy, cy := math.Sin(hy), math.Cos(hy)
	sx, cx := math.Sin(hx), math.Cos(hx)

	q := mgl32.Quat{
		W: float32(cx*cy*cz + sx*sy*sz),
		V: mgl32.Vec3{
			float32(sx*cy*cz - cx*sy*sz),
			float32(cx*sy*cz + sx*cy*sz),
			float32(cx*cy*sz - sx*sy*cz),
		},
	}
	return q.Normalize()
}

// Slerp performs spherical linear interpolation between two quaternions along
// the shorter arc. t should be in range [0, 1]. At t == 0 the result is a.
func Slerp(a, b mgl32.Quat, t float32) mgl32.Quat {
	cosom := a.Dot(b)

	// Negate one side to take the shorter path
	if cosom < 0 {
		cosom = -cosom
		b = b.Scale(-1)
	}

	scale0 := 1 - t
	scale1 := t

	// Fall back to a linear blend when the quaternions are nearly equal
	if 1-cosom > 0.000001 {
		omega := math.Acos(float64(cosom))
		sinom := math.Sin(omega)
		scale0 = float32(math.Sin((1-float64(t))*omega) / sinom)
		scale1 = float32(math.Sin(float64(t)*omega) / sinom)
	}

	return mgl32.Quat{
		W: scale0*a.W + scale1*b.W,
		V: mgl32.Vec3{
			scale0*a.V[0] + scale1*b.V[0],
			scale0*a.V[1] + scale1*b.V[1],
			scale0*a.V[2] + scale1*b.V[2],
		},
	}
}

// SameRotation reports whether two quaternions describe the same rotation
// within eps, treating q and -q as equal.
func SameRotation(a, b mgl32.Quat, eps float32) bool {
	d := a.Dot(b)
	if d < 0 {
		d = -d
	}
	return 1-d <= eps
}
