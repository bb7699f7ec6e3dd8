package render

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"

	"mesh-viewer/internal/geometry"
)

func TestFlattenMesh(t *testing.T) {
	t.Run("should expand triangles with face normals and base color", func(t *testing.T) {
		// given
		m := &geometry.TriangleMesh{
			Vertices:  []geometry.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Triangles: []geometry.Triangle{{0, 1, 2}},
		}
		// when
		v, n, c := flattenMesh(m, geometry.Vec3{1, 0, 0})
		// then
		assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, v)
		assert.Equal(t, []float32{0, 0, 1, 0, 0, 1, 0, 0, 1}, n)
		assert.Equal(t, []uint8{255, 0, 0, 255, 255, 0, 0, 255, 255, 0, 0, 255}, c)
	})
	t.Run("should use vertex attributes when present", func(t *testing.T) {
		m := &geometry.TriangleMesh{
			Vertices:  []geometry.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Triangles: []geometry.Triangle{{2, 1, 0}},
		}
		m.ComputeVertexNormals()
		m.PaintUniformColor(geometry.Green)
		_, n, c := flattenMesh(m, geometry.DefaultMeshColor)
		assert.Equal(t, float32(-1), n[2])
		assert.Equal(t, []uint8{0, 255, 0, 255}, c[:4])
	})
}

func TestGridStepFor(t *testing.T) {
	assert.Equal(t, float32(1), gridStepFor(0))
	assert.InDelta(t, 0.1, gridStepFor(1), 1e-6)
	assert.InDelta(t, 10, gridStepFor(50), 1e-4)
}

func TestBufferIDs(t *testing.T) {
	t.Run("should list the vertex array and every created vertex buffer", func(t *testing.T) {
		// given
		ids := [meshVertexBuffers]uint32{4, 5, 0, 7}
		m := rl.Mesh{VaoID: 3, VboID: &ids[0]}
		// when
		vao, vbos := bufferIDs(m)
		// then
		assert.Equal(t, uint32(3), vao)
		assert.Equal(t, []uint32{4, 5, 7}, vbos)
	})
	t.Run("should return nothing for a mesh that was never uploaded", func(t *testing.T) {
		vao, vbos := bufferIDs(rl.Mesh{})
		assert.Zero(t, vao)
		assert.Empty(t, vbos)
	})
}
