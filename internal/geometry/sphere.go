package geometry

import "github.com/chewxy/math32"

// DefaultSphereResolution is the number of latitude bands used by CreateSphere when resolution <= 0.
const DefaultSphereResolution = 20

// CreateSphere returns a UV sphere of the given radius centered at the origin, with its poles on the Z axis.
// It has 2 + 2*res*(res-1) vertices and 4*res*(res-1) triangles. Resolutions below 2 use DefaultSphereResolution.
func CreateSphere(radius float32, resolution int) *TriangleMesh {
	res := resolution
	if res < 2 {
		res = DefaultSphereResolution
	}
	m := NewTriangleMesh()
	m.Vertices = make([]Vec3, 0, 2+2*res*(res-1))
	m.Vertices = append(m.Vertices, Vec3{0, 0, radius}, Vec3{0, 0, -radius})
	step := math32.Pi / float32(res)
	for i := 1; i < res; i++ {
		alpha := step * float32(i)
		sinA, cosA := math32.Sin(alpha), math32.Cos(alpha)
		for j := 0; j < 2*res; j++ {
			theta := step * float32(j)
			m.Vertices = append(m.Vertices, Vec3{
				sinA * math32.Cos(theta) * radius,
				sinA * math32.Sin(theta) * radius,
				cosA * radius,
			})
		}
	}

	ring := 2 * res
	m.Triangles = make([]Triangle, 0, 4*res*(res-1))
	// caps
	first := int32(2)
	last := int32(2 + ring*(res-2))
	for j := 0; j < ring; j++ {
		j1 := (j + 1) % ring
		m.Triangles = append(m.Triangles,
			Triangle{0, first + int32(j), first + int32(j1)},
			Triangle{1, last + int32(j1), last + int32(j)},
		)
	}
	// bands between consecutive rings
	for i := 1; i < res-1; i++ {
		top := int32(2 + ring*(i-1))
		bottom := top + int32(ring)
		for j := 0; j < ring; j++ {
			j1 := (j + 1) % ring
			a, b := top+int32(j), top+int32(j1)
			c, d := bottom+int32(j), bottom+int32(j1)
			m.Triangles = append(m.Triangles, Triangle{a, c, d}, Triangle{a, d, b})
		}
	}
	return m
}
