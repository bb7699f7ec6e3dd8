package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitQuad() *TriangleMesh {
	return &TriangleMesh{
		Vertices:  []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Triangles: []Triangle{{0, 1, 2}, {0, 2, 3}},
	}
}

func TestTriangleMesh(t *testing.T) {
	t.Run("should compute unit vertex normals facing the front side", func(t *testing.T) {
		// given
		m := unitQuad()
		// when
		m.ComputeVertexNormals()
		// then
		require.Len(t, m.VertexNormals, 4)
		for _, n := range m.VertexNormals {
			assert.InDelta(t, 0, n[0], 1e-6)
			assert.InDelta(t, 0, n[1], 1e-6)
			assert.InDelta(t, 1, n[2], 1e-6)
		}
	})
	t.Run("should weight vertex normals by face area", func(t *testing.T) {
		// given: a big face in XY and a small one in XZ sharing vertex 0
		m := &TriangleMesh{
			Vertices:  []Vec3{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}, {0, 0, -1}, {1, 0, 0}},
			Triangles: []Triangle{{0, 1, 2}, {0, 3, 4}},
		}
		// when
		m.ComputeVertexNormals()
		// then
		n := m.VertexNormals[0]
		assert.InDelta(t, 1, n.Len(), 1e-5)
		assert.Greater(t, n[2], n[1])
	})
	t.Run("should give isolated vertices a default normal", func(t *testing.T) {
		// given
		m := unitQuad()
		m.Vertices = append(m.Vertices, Vec3{5, 5, 5})
		// when
		m.ComputeVertexNormals()
		// then
		assert.Equal(t, Vec3{0, 0, 1}, m.VertexNormals[4])
	})
	t.Run("should paint every vertex with a clamped color", func(t *testing.T) {
		// given
		m := unitQuad()
		// when
		m.PaintUniformColor(Vec3{0, 1.5, -1})
		// then
		require.True(t, m.HasVertexColors())
		for _, c := range m.VertexColors {
			assert.Equal(t, Vec3{0, 1, 0}, c)
		}
	})
	t.Run("should report triangles only when vertices exist", func(t *testing.T) {
		m := &TriangleMesh{Triangles: []Triangle{{0, 1, 2}}}
		assert.False(t, m.HasTriangles())
		assert.True(t, m.IsEmpty())
		assert.True(t, unitQuad().HasTriangles())
	})
	t.Run("should reject out of range indices", func(t *testing.T) {
		m := unitQuad()
		m.Triangles = append(m.Triangles, Triangle{0, 1, 9})
		assert.Error(t, m.Validate())
	})
	t.Run("should reject attribute count mismatch", func(t *testing.T) {
		m := unitQuad()
		m.VertexColors = []Vec3{{1, 0, 0}}
		assert.Error(t, m.Validate())
		assert.False(t, m.HasVertexColors())
	})
}

func TestPointCloud(t *testing.T) {
	t.Run("should normalize normals and replace unusable ones", func(t *testing.T) {
		// given
		pc := &PointCloud{
			Points:  []Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
			Normals: []Vec3{{3, 0, 4}, {0, 0, 0}, {math32.NaN(), 0, 0}},
		}
		// when
		pc.NormalizeNormals()
		// then
		assert.InDelta(t, 0.6, pc.Normals[0][0], 1e-6)
		assert.InDelta(t, 0.8, pc.Normals[0][2], 1e-6)
		assert.Equal(t, Vec3{0, 0, 1}, pc.Normals[1])
		assert.Equal(t, Vec3{0, 0, 1}, pc.Normals[2])
	})
	t.Run("should build from mesh vertices", func(t *testing.T) {
		m := unitQuad()
		m.PaintUniformColor(Green)
		pc := FromMeshVertices(m)
		assert.Len(t, pc.Points, 4)
		assert.True(t, pc.HasColors())
		assert.False(t, pc.HasNormals())
	})
}

func TestCreateSphere(t *testing.T) {
	t.Run("should have the expected topology for the default resolution", func(t *testing.T) {
		// when
		s := CreateSphere(1, 0)
		// then
		res := DefaultSphereResolution
		assert.Len(t, s.Vertices, 2+2*res*(res-1))
		assert.Len(t, s.Triangles, 4*res*(res-1))
		assert.NoError(t, s.Validate())
	})
	t.Run("should place every vertex on the radius", func(t *testing.T) {
		s := CreateSphere(2.5, 8)
		for _, v := range s.Vertices {
			assert.InDelta(t, 2.5, v.Len(), 1e-5)
		}
	})
	t.Run("should wind triangles outward", func(t *testing.T) {
		s := CreateSphere(1, 6)
		for i, tri := range s.Triangles {
			n := s.TriangleNormal(i)
			c := s.Vertices[tri[0]].Add(s.Vertices[tri[1]]).Add(s.Vertices[tri[2]])
			assert.Greater(t, n.Dot(c), float32(0), "triangle %d", i)
		}
	})
	t.Run("should produce outward unit normals", func(t *testing.T) {
		s := CreateSphere(1, 10)
		s.ComputeVertexNormals()
		for i, n := range s.VertexNormals {
			assert.InDelta(t, 1, n.Dot(s.Vertices[i]), 0.05)
		}
	})
}
