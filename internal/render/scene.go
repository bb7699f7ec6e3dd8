package render

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"mesh-viewer/internal/geometry"
	"mesh-viewer/internal/viewconfig"
)

const (
	gridLines      = 20 // per side of the center line
	gridMajorEvery = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	pointCubeScale = 0.002 // cube edge per unit of point size, relative to the scene radius
)

// Scene holds what is drawn in 3D: uploaded meshes, point clouds with their display
// colors, the editor grid and the camera orbit.
type Scene struct {
	prefs     viewconfig.Prefs
	bounds    geometry.AABB
	home      geometry.Orbit
	Orbit     geometry.Orbit
	meshes    []*gpuMesh
	clouds    []pointBatch
	material  *litMaterial
	gridStep  float32
	gridY     float32
	Wireframe bool
	BackFace  bool
	Grid      bool
	PointSize float32
}

type pointBatch struct {
	points []rl.Vector3
	colors []rl.Color
}

// NewScene uploads geoms. Must be called after the window exists.
func NewScene(prefs viewconfig.Prefs, geoms []geometry.Geometry) *Scene {
	s := &Scene{
		prefs:     prefs,
		bounds:    geometry.BoundsAll(geoms...),
		material:  newLitMaterial(),
		BackFace:  prefs.ShowBackFace,
		Grid:      prefs.GridVisible,
		PointSize: prefs.PointSize,
	}
	s.home = geometry.FitOrbit(s.bounds, prefs.FovyDeg)
	s.Orbit = s.home
	s.gridStep = gridStepFor(s.bounds.Radius())
	if !s.bounds.IsEmpty() {
		s.gridY = s.bounds.Min[1]
	}
	base := geometry.Vec3(prefs.MeshColor)
	for _, g := range geoms {
		switch g := g.(type) {
		case *geometry.TriangleMesh:
			s.meshes = append(s.meshes, uploadMesh(g, base))
		case *geometry.PointCloud:
			s.clouds = append(s.clouds, newPointBatch(g, base, prefs))
		}
	}
	return s
}

func newPointBatch(pc *geometry.PointCloud, base geometry.Vec3, prefs viewconfig.Prefs) pointBatch {
	colors := geometry.PointColors(pc, base, geometry.Vec3(prefs.LightDir), prefs.Ambient)
	b := pointBatch{points: make([]rl.Vector3, len(pc.Points)), colors: make([]rl.Color, len(pc.Points))}
	for i, p := range pc.Points {
		b.points[i] = rl.NewVector3(p[0], p[1], p[2])
		b.colors[i] = toColor(colors[i])
	}
	return b
}

// gridStepFor picks a power of ten so the grid spans roughly the scene.
func gridStepFor(radius float32) float32 {
	if radius <= 0 {
		return 1
	}
	return math32.Pow(10, math32.Floor(math32.Log10(radius/2)))
}

// ResetView returns the camera to the framing computed at load time.
func (s *Scene) ResetView() {
	s.Orbit = s.home
}

// Camera converts the orbit into a raylib camera.
func (s *Scene) Camera() rl.Camera3D {
	eye, up, target := s.Orbit.Eye(), s.Orbit.Up(), s.Orbit.Target
	return rl.Camera3D{
		Position:   rl.NewVector3(eye[0], eye[1], eye[2]),
		Target:     rl.NewVector3(target[0], target[1], target[2]),
		Up:         rl.NewVector3(up[0], up[1], up[2]),
		Fovy:       s.Orbit.FovyDeg,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the 3D scene. Call between BeginDrawing and EndDrawing, before 2D overlays.
func (s *Scene) Draw() {
	cam := s.Camera()
	rl.BeginMode3D(cam)
	if s.Grid {
		s.drawGrid()
	}
	eye := s.Orbit.Eye()
	s.material.setLight([3]float32(eye), s.prefs.LightDir, s.prefs.Ambient)
	if s.BackFace {
		rl.DisableBackfaceCulling()
	}
	if s.Wireframe {
		rl.EnableWireMode()
	}
	for _, m := range s.meshes {
		m.draw(s.material.mtl)
	}
	if s.Wireframe {
		rl.DisableWireMode()
	}
	if s.BackFace {
		rl.EnableBackfaceCulling()
	}
	for _, c := range s.clouds {
		s.drawPoints(c)
	}
	rl.EndMode3D()
}

func (s *Scene) drawPoints(b pointBatch) {
	if s.PointSize <= 1 {
		for i, p := range b.points {
			rl.DrawPoint3D(p, b.colors[i])
		}
		return
	}
	edge := s.bounds.Radius() * pointCubeScale * s.PointSize
	for i, p := range b.points {
		rl.DrawCube(p, edge, edge, edge, b.colors[i])
	}
}

// drawGrid draws a grid on the XZ plane under the geometry with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func (s *Scene) drawGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(96, 96, 96, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	c := s.Orbit.Target
	if !s.bounds.IsEmpty() {
		c = s.bounds.Center()
	}
	step := s.gridStep
	cx := math32.Round(c[0]/step) * step
	cz := math32.Round(c[2]/step) * step
	extent := step * gridLines
	y := s.gridY

	var start, end rl.Vector3
	for i := -gridLines; i <= gridLines; i++ {
		col := minor
		if i%gridMajorEvery == 0 {
			col = major
		}
		off := float32(i) * step
		start.X, start.Y, start.Z = cx+off, y, cz-extent
		end.X, end.Y, end.Z = cx+off, y, cz+extent
		rl.DrawLine3D(start, end, col)
		start.X, start.Y, start.Z = cx-extent, y, cz+off
		end.X, end.Y, end.Z = cx+extent, y, cz+off
		rl.DrawLine3D(start, end, col)
	}

	// Axis lines through the world origin when it lies inside the grid (X=red, Z=blue)
	if math32.Abs(cz) <= extent {
		start.X, start.Y, start.Z = cx-extent, y, 0
		end.X, end.Y, end.Z = cx+extent, y, 0
		rl.DrawLine3D(start, end, axisX)
	}
	if math32.Abs(cx) <= extent {
		start.X, start.Y, start.Z = 0, y, cz-extent
		end.X, end.Y, end.Z = 0, y, cz+extent
		rl.DrawLine3D(start, end, axisZ)
	}
}

// Close frees the uploaded meshes. It must run while the window is still open.
func (s *Scene) Close() {
	for _, m := range s.meshes {
		m.release()
	}
}

// Stats describes the loaded geometry for the overlay.
func (s *Scene) Stats() (meshes, triangles, clouds, points int) {
	for _, m := range s.meshes {
		triangles += m.triangles
	}
	for _, c := range s.clouds {
		points += len(c.points)
	}
	return len(s.meshes), triangles, len(s.clouds), points
}
