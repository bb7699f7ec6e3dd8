package geometry

import "github.com/chewxy/math32"

// Vec3 is a point, direction or RGB color in float32.
type Vec3 [3]float32

// V3 returns the vector (x, y, z).
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (a Vec3) Scale(s float32) Vec3 {
	return Vec3{a[0] * s, a[1] * s, a[2] * s}
}

func (a Vec3) Dot(b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Len returns the Euclidean length.
func (a Vec3) Len() float32 {
	return math32.Sqrt(a.Dot(a))
}

// Normalize returns a unit vector in the direction of a and false when a has no usable length
// (zero, NaN or Inf), in which case a is returned unchanged.
func (a Vec3) Normalize() (Vec3, bool) {
	l := a.Len()
	if l == 0 || math32.IsNaN(l) || math32.IsInf(l, 0) {
		return a, false
	}
	return a.Scale(1 / l), true
}

// IsFinite reports whether no component is NaN or Inf.
func (a Vec3) IsFinite() bool {
	for _, c := range a {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Clamp01 clamps every component into [0, 1]. Used for colors.
func (a Vec3) Clamp01() Vec3 {
	for i, c := range a {
		a[i] = math32.Max(0, math32.Min(1, c))
	}
	return a
}
