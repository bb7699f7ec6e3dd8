// Package geometry holds the in-memory triangle mesh and point cloud types shown by the viewer,
// plus the small amount of math needed around them (normals, primitives, bounds, camera orbit).
package geometry

// Geometry is anything the viewer can draw.
type Geometry interface {
	// Bounds returns the axis-aligned bounding box of all vertices or points.
	Bounds() AABB
	// IsEmpty reports whether there is nothing to draw.
	IsEmpty() bool
}

var (
	_ Geometry = (*TriangleMesh)(nil)
	_ Geometry = (*PointCloud)(nil)
)

// BoundsAll returns the union of the bounds of geoms.
func BoundsAll(geoms ...Geometry) AABB {
	b := EmptyAABB()
	for _, g := range geoms {
		b = b.Union(g.Bounds())
	}
	return b
}
