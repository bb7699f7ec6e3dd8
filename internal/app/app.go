// Package app decides what to show for a command line and runs the read, log, render sequence.
package app

import (
	"log/slog"

	"mesh-viewer/internal/geometry"
)

// Kind is what a command line argument resolves to.
type Kind int

const (
	KindNone Kind = iota
	KindSphere
	KindMesh
	KindPointCloud
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindMesh:
		return "mesh"
	case KindPointCloud:
		return "point cloud"
	default:
		return "none"
	}
}

const (
	// FileWindowWidth and FileWindowHeight size the window for geometry read from a file.
	FileWindowWidth  = 1600
	FileWindowHeight = 900
	// DefaultWindowTitle, DefaultWindowWidth and DefaultWindowHeight are used for the built-in sphere.
	DefaultWindowTitle  = "Open3D"
	DefaultWindowWidth  = 640
	DefaultWindowHeight = 480
)

// Reader loads geometry from disk.
type Reader interface {
	ReadTriangleMesh(path string) (*geometry.TriangleMesh, error)
	ReadPointCloud(path string) (*geometry.PointCloud, error)
}

// Visualizer shows geometry in a window and returns once the window has been closed.
type Visualizer interface {
	DrawGeometries(title string, width, height int, geoms ...geometry.Geometry) error
}

// App ties a reader and a visualizer together.
type App struct {
	// Auto makes a ".ply" mesh without triangles fall back to being shown as a point cloud.
	Auto bool

	log    *slog.Logger
	reader Reader
	viz    Visualizer
}

// New returns an App. A nil log uses slog.Default().
func New(log *slog.Logger, reader Reader, viz Visualizer) *App {
	if log == nil {
		log = slog.Default()
	}
	return &App{log: log, reader: reader, viz: viz}
}

// Classify resolves the positional arguments. No argument means the built-in sphere. Otherwise the
// last three characters of the first argument decide: "pcd" is a point cloud, "ply" a mesh, and
// anything else (including names shorter than three characters) is ignored. Matching is case-sensitive
// and does not require a dot.
func Classify(args []string) Kind {
	if len(args) == 0 {
		return KindSphere
	}
	name := args[0]
	if len(name) < 3 {
		return KindNone
	}
	switch name[len(name)-3:] {
	case "pcd":
		return KindPointCloud
	case "ply":
		return KindMesh
	default:
		return KindNone
	}
}

// Run dispatches args and reports whether something was shown. Unrecognized names are a silent no-op.
func (a *App) Run(args []string) bool {
	kind := Classify(args)
	a.log.Debug("Dispatch", "args", args, "kind", kind)
	switch kind {
	case KindSphere:
		a.VisualizeSphere()
		return true
	case KindPointCloud:
		return a.VisualizePointCloud(args[0])
	case KindMesh:
		if a.Auto {
			return a.AutoVisualize(args[0])
		}
		return a.VisualizeMesh(args[0])
	default:
		return false
	}
}

// VisualizeMesh reads path as a triangle mesh and shows it. It returns false without showing
// anything when the read fails or the mesh has no triangles.
func (a *App) VisualizeMesh(path string) bool {
	m, ok := a.readMesh(path)
	if !ok || !m.HasTriangles() {
		return false
	}
	return a.showMesh(path, m)
}

// VisualizePointCloud reads path as a point cloud, normalizes its normals and shows it.
// It returns false without showing anything when the read fails.
func (a *App) VisualizePointCloud(path string) bool {
	pc, err := a.reader.ReadPointCloud(path)
	if err != nil {
		a.log.Error("Failed to read", "path", path, "err", err)
		return false
	}
	a.log.Info("Successfully read", "path", path)
	return a.showCloud(path, pc)
}

// VisualizeSphere shows a green unit sphere in a default-sized window.
func (a *App) VisualizeSphere() {
	s := geometry.CreateSphere(1.0, geometry.DefaultSphereResolution)
	s.ComputeVertexNormals()
	s.PaintUniformColor(geometry.Green)
	a.show(DefaultWindowTitle, DefaultWindowWidth, DefaultWindowHeight, s)
}

// AutoVisualize tries path as a mesh and falls back to a point cloud. A mesh without
// triangles is shown as the cloud of its vertices; only a failed mesh read reads the file again.
func (a *App) AutoVisualize(path string) bool {
	m, ok := a.readMesh(path)
	switch {
	case !ok:
		return a.VisualizePointCloud(path)
	case m.HasTriangles():
		return a.showMesh(path, m)
	default:
		return a.showCloud(path, geometry.FromMeshVertices(m))
	}
}

// readMesh reads path as a triangle mesh and logs the outcome.
func (a *App) readMesh(path string) (*geometry.TriangleMesh, bool) {
	m, err := a.reader.ReadTriangleMesh(path)
	if err != nil {
		a.log.Error("Failed to read", "path", path, "err", err)
		return nil, false
	}
	a.log.Info("Successfully read", "path", path)
	if !m.HasTriangles() {
		a.log.Warn("Contains 0 triangles, will read as point cloud", "path", path)
	}
	return m, true
}

func (a *App) showMesh(path string, m *geometry.TriangleMesh) bool {
	m.ComputeVertexNormals()
	return a.show("Mesh "+path, FileWindowWidth, FileWindowHeight, m)
}

func (a *App) showCloud(path string, pc *geometry.PointCloud) bool {
	pc.NormalizeNormals()
	return a.show("PointCloud "+path, FileWindowWidth, FileWindowHeight, pc)
}

func (a *App) show(title string, width, height int, g geometry.Geometry) bool {
	if err := a.viz.DrawGeometries(title, width, height, g); err != nil {
		a.log.Error("Failed to show geometry", "title", title, "err", err)
		return false
	}
	return true
}
