package geometry

import "fmt"

// Triangle holds three indices into TriangleMesh.Vertices, counter-clockwise when seen from the front.
type Triangle [3]int32

// TriangleMesh is a surface made of vertices and triangular faces.
// VertexNormals and VertexColors are either empty or have one entry per vertex.
type TriangleMesh struct {
	Vertices      []Vec3
	Triangles     []Triangle
	VertexNormals []Vec3
	VertexColors  []Vec3
}

// NewTriangleMesh returns an empty mesh.
func NewTriangleMesh() *TriangleMesh {
	return &TriangleMesh{}
}

func (m *TriangleMesh) HasVertices() bool      { return len(m.Vertices) > 0 }
func (m *TriangleMesh) HasTriangles() bool     { return len(m.Vertices) > 0 && len(m.Triangles) > 0 }
func (m *TriangleMesh) HasVertexNormals() bool { return len(m.Vertices) > 0 && len(m.VertexNormals) == len(m.Vertices) }
func (m *TriangleMesh) HasVertexColors() bool  { return len(m.Vertices) > 0 && len(m.VertexColors) == len(m.Vertices) }

func (m *TriangleMesh) Bounds() AABB { return BoundsOf(m.Vertices) }

func (m *TriangleMesh) IsEmpty() bool { return m == nil || !m.HasVertices() }

// Validate checks that every triangle references an existing vertex and that optional
// per-vertex attributes match the vertex count.
func (m *TriangleMesh) Validate() error {
	n := int32(len(m.Vertices))
	for i, t := range m.Triangles {
		for _, idx := range t {
			if idx < 0 || idx >= n {
				return fmt.Errorf("triangle %d: vertex index %d out of range [0,%d)", i, idx, n)
			}
		}
	}
	if len(m.VertexNormals) != 0 && len(m.VertexNormals) != len(m.Vertices) {
		return fmt.Errorf("%d normals for %d vertices", len(m.VertexNormals), len(m.Vertices))
	}
	if len(m.VertexColors) != 0 && len(m.VertexColors) != len(m.Vertices) {
		return fmt.Errorf("%d colors for %d vertices", len(m.VertexColors), len(m.Vertices))
	}
	return nil
}

// TriangleNormal returns the unnormalized face normal of triangle i. Its length is twice the face area.
func (m *TriangleMesh) TriangleNormal(i int) Vec3 {
	t := m.Triangles[i]
	a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
	return b.Sub(a).Cross(c.Sub(a))
}

// ComputeVertexNormals sets one normal per vertex: the normalized sum of the face normals
// of all adjacent triangles, so larger faces weigh more. Vertices that belong to no
// triangle, or only to degenerate ones, get (0, 0, 1).
func (m *TriangleMesh) ComputeVertexNormals() {
	normals := make([]Vec3, len(m.Vertices))
	for i, t := range m.Triangles {
		n := m.TriangleNormal(i)
		for _, idx := range t {
			normals[idx] = normals[idx].Add(n)
		}
	}
	for i, n := range normals {
		u, ok := n.Normalize()
		if !ok {
			u = Vec3{0, 0, 1}
		}
		normals[i] = u
	}
	m.VertexNormals = normals
}

// PaintUniformColor sets every vertex color to c, clamped into [0, 1].
func (m *TriangleMesh) PaintUniformColor(c Vec3) {
	m.VertexColors = uniform(len(m.Vertices), c.Clamp01())
}

func uniform(n int, c Vec3) []Vec3 {
	s := make([]Vec3, n)
	for i := range s {
		s[i] = c
	}
	return s
}

func normalizeAll(normals []Vec3) {
	for i, n := range normals {
		u, ok := n.Normalize()
		if !ok {
			u = Vec3{0, 0, 1}
		}
		normals[i] = u
	}
}
