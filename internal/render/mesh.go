package render

import (
	"runtime"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"mesh-viewer/internal/geometry"
)

// gpuMesh is a triangle mesh uploaded to the GPU. Triangles are expanded into an
// unindexed vertex stream so meshes beyond 65535 vertices (raylib's uint16 index limit) draw
// in one call. The CPU buffers are Go memory pinned for as long as raylib holds them.
type gpuMesh struct {
	mesh      rl.Mesh
	vertices  []float32
	normals   []float32
	colors    []uint8
	pinner    runtime.Pinner
	triangles int
}

// flattenMesh expands m into per-corner positions, normals and RGBA colors.
// Missing normals use the face normal, missing colors use base.
func flattenMesh(m *geometry.TriangleMesh, base geometry.Vec3) (vertices, normals []float32, colors []uint8) {
	n := len(m.Triangles) * 3
	vertices = make([]float32, 0, n*3)
	normals = make([]float32, 0, n*3)
	colors = make([]uint8, 0, n*4)
	hasNormals, hasColors := m.HasVertexNormals(), m.HasVertexColors()
	baseRGBA := toRGBA(base)
	for i, t := range m.Triangles {
		face, _ := m.TriangleNormal(i).Normalize()
		for _, idx := range t {
			v := m.Vertices[idx]
			vertices = append(vertices, v[0], v[1], v[2])
			nrm := face
			if hasNormals {
				nrm = m.VertexNormals[idx]
			}
			normals = append(normals, nrm[0], nrm[1], nrm[2])
			c := baseRGBA
			if hasColors {
				c = toRGBA(m.VertexColors[idx])
			}
			colors = append(colors, c[:]...)
		}
	}
	return vertices, normals, colors
}

func toRGBA(c geometry.Vec3) [4]uint8 {
	c = c.Clamp01()
	return [4]uint8{uint8(c[0]*255 + 0.5), uint8(c[1]*255 + 0.5), uint8(c[2]*255 + 0.5), 255}
}

func toColor(c geometry.Vec3) rl.Color {
	x := toRGBA(c)
	return rl.NewColor(x[0], x[1], x[2], x[3])
}

// uploadMesh must run after the window (and its GL context) exists.
func uploadMesh(m *geometry.TriangleMesh, base geometry.Vec3) *gpuMesh {
	g := &gpuMesh{triangles: len(m.Triangles)}
	g.vertices, g.normals, g.colors = flattenMesh(m, base)
	if g.triangles == 0 {
		return g
	}
	g.pinner.Pin(&g.vertices[0])
	g.pinner.Pin(&g.normals[0])
	g.pinner.Pin(&g.colors[0])
	g.mesh.VertexCount = int32(g.triangles * 3)
	g.mesh.TriangleCount = int32(g.triangles)
	g.mesh.Vertices = &g.vertices[0]
	g.mesh.Normals = &g.normals[0]
	g.mesh.Colors = &g.colors[0]
	rl.UploadMesh(&g.mesh, false)
	return g
}

func (g *gpuMesh) draw(mtl rl.Material) {
	if g.triangles == 0 {
		return
	}
	rl.DrawMesh(g.mesh, mtl, rl.MatrixIdentity())
}

// meshVertexBuffers is the smallest length raylib gives Mesh.vboId across versions.
// Only the first four slots are filled by uploadMesh.
const meshVertexBuffers = 7

// bufferIDs returns the vertex array and the non-zero vertex buffers raylib created for m.
func bufferIDs(m rl.Mesh) (vao uint32, vbos []uint32) {
	if m.VboID == nil {
		return m.VaoID, nil
	}
	for _, id := range unsafe.Slice(m.VboID, meshVertexBuffers) {
		if id != 0 {
			vbos = append(vbos, id)
		}
	}
	return m.VaoID, vbos
}

// release frees the GPU buffers and unpins the CPU buffers. It must run before the window
// closes. rl.UnloadMesh is not used because it would free Go memory through C.
func (g *gpuMesh) release() {
	vao, vbos := bufferIDs(g.mesh)
	for _, id := range vbos {
		rl.UnloadVertexBuffer(id)
	}
	if vao != 0 {
		rl.UnloadVertexArray(vao)
	}
	g.mesh.VaoID, g.mesh.VboID = 0, nil
	g.pinner.Unpin()
}
