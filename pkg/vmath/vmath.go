// Package vmath holds the vector types and small numeric helpers shared by
// the geometry, curve and graph packages. Vectors are the sdfx vector types
// so that geometry can be handed to the sdfx kernel without conversion.
package vmath

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vec2 is a 2D vector.
type Vec2 = v2.Vec

// Vec3 is a 3D vector.
type Vec3 = v3.Vec

// FloatTolerance is the threshold below which two floating point values are
// considered equal by change guards.
const FloatTolerance = 1e-5

var (
	Zero3   = Vec3{}
	One3    = Vec3{X: 1, Y: 1, Z: 1}
	Up      = Vec3{Y: 1}
	Right   = Vec3{X: 1}
	Forward = Vec3{Z: 1}

	Zero2 = Vec2{}
	One2  = Vec2{X: 1, Y: 1}
)

// Approximately reports whether a and b differ by less than FloatTolerance.
func Approximately(a, b float64) bool {
	return math.Abs(a-b) < FloatTolerance
}

// Approximately3 compares two vectors component-wise.
func Approximately3(a, b Vec3) bool {
	return Approximately(a.X, b.X) && Approximately(a.Y, b.Y) && Approximately(a.Z, b.Z)
}

// Approximately2 compares two vectors component-wise.
func Approximately2(a, b Vec2) bool {
	return Approximately(a.X, b.X) && Approximately(a.Y, b.Y)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MinClamped returns v, or lo if v is smaller.
func MinClamped(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// Lerp3 interpolates linearly between two vectors.
func Lerp3(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).MulScalar(t))
}

// NormalizeSafe returns v normalized, or fallback when v has (near) zero length.
func NormalizeSafe(v, fallback Vec3) Vec3 {
	l := v.Length()
	if l < 1e-12 || math.IsNaN(l) || math.IsInf(l, 0) {
		return fallback
	}
	return v.MulScalar(1 / l)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Rotation returns the rotation matrix for Euler angles in degrees. Rotations
// are applied Z first, then X, then Y.
func Rotation(eulerDegrees Vec3) sdf.M44 {
	x := Radians(eulerDegrees.X)
	y := Radians(eulerDegrees.Y)
	z := Radians(eulerDegrees.Z)
	return sdf.RotateY(y).Mul(sdf.RotateX(x)).Mul(sdf.RotateZ(z))
}

// TRS builds a translation * rotation * scale matrix.
func TRS(translation, eulerDegrees, scale Vec3) sdf.M44 {
	return sdf.Translate3d(translation).Mul(Rotation(eulerDegrees)).Mul(sdf.Scale3d(scale))
}

// RS builds a rotation * scale matrix with no translation, used for normals.
func RS(eulerDegrees, scale Vec3) sdf.M44 {
	return Rotation(eulerDegrees).Mul(sdf.Scale3d(scale))
}

// Centroid returns the average of the given points.
func Centroid(points ...Vec3) Vec3 {
	if len(points) == 0 {
		return Zero3
	}
	var sum Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.MulScalar(1 / float64(len(points)))
}

// TriangleNormal returns the unit normal of triangle abc, or Up for a
// degenerate triangle.
func TriangleNormal(a, b, c Vec3) Vec3 {
	return NormalizeSafe(b.Sub(a).Cross(c.Sub(a)), Up)
}

// EulerFromBasis returns the Euler angles in degrees of the rotation that
// maps Forward to forward and Up towards up. It is the inverse of Rotation
// for orthonormal frames.
func EulerFromBasis(forward, up Vec3) Vec3 {
	f := NormalizeSafe(forward, Forward)
	r := NormalizeSafe(up.Cross(f), Right)
	u := f.Cross(r)
	x := math.Asin(Clamp(-f.Y, -1, 1))
	y := math.Atan2(f.X, f.Z)
	z := math.Atan2(r.Y, u.Y)
	return Vec3{X: x * 180 / math.Pi, Y: y * 180 / math.Pi, Z: z * 180 / math.Pi}
}
