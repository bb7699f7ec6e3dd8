package geometry

import "github.com/chewxy/math32"

// AABB is an axis-aligned bounding box. The zero value is not empty; use EmptyAABB to start accumulating.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns a box that contains nothing. Extend grows it.
func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

// BoundsOf returns the bounding box of points. Non-finite points are ignored.
func BoundsOf(points []Vec3) AABB {
	b := EmptyAABB()
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}

// Extend returns the box grown to include p. Non-finite points are ignored.
func (b AABB) Extend(p Vec3) AABB {
	if !p.IsFinite() {
		return b
	}
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(o AABB) AABB {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// IsEmpty reports whether the box contains no points.
func (b AABB) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent is the size of the box along each axis.
func (b AABB) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

// Radius is half the diagonal.
func (b AABB) Radius() float32 {
	return b.Extent().Len() / 2
}
