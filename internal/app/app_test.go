package app_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesh-viewer/internal/app"
	"mesh-viewer/internal/geometry"
)

type fakeReader struct {
	mesh       *geometry.TriangleMesh
	cloud      *geometry.PointCloud
	err        error
	meshReads  []string
	cloudReads []string
}

func (r *fakeReader) ReadTriangleMesh(path string) (*geometry.TriangleMesh, error) {
	r.meshReads = append(r.meshReads, path)
	if r.err != nil {
		return nil, r.err
	}
	return r.mesh, nil
}

func (r *fakeReader) ReadPointCloud(path string) (*geometry.PointCloud, error) {
	r.cloudReads = append(r.cloudReads, path)
	if r.err != nil {
		return nil, r.err
	}
	return r.cloud, nil
}

type shown struct {
	title         string
	width, height int
	geoms         []geometry.Geometry
}

type fakeVisualizer struct {
	calls []shown
	err   error
}

func (v *fakeVisualizer) DrawGeometries(title string, width, height int, geoms ...geometry.Geometry) error {
	v.calls = append(v.calls, shown{title, width, height, geoms})
	return v.err
}

func triangle() *geometry.TriangleMesh {
	return &geometry.TriangleMesh{
		Vertices:  []geometry.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Triangles: []geometry.Triangle{{0, 1, 2}},
	}
}

func cloud() *geometry.PointCloud {
	return &geometry.PointCloud{
		Points:  []geometry.Vec3{{0, 0, 0}, {1, 1, 1}},
		Normals: []geometry.Vec3{{0, 0, 2}, {0, 0, 0}},
	}
}

func newApp(r *fakeReader, v *fakeVisualizer) (*app.App, *bytes.Buffer) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return app.New(log, r, v), &buf
}

func TestClassify(t *testing.T) {
	cases := []struct {
		args []string
		want app.Kind
	}{
		{nil, app.KindSphere},
		{[]string{}, app.KindSphere},
		{[]string{"bunny.pcd"}, app.KindPointCloud},
		{[]string{"bunny.ply"}, app.KindMesh},
		{[]string{"dir/scan.ply", "extra"}, app.KindMesh},
		{[]string{"noextpcd"}, app.KindPointCloud},
		{[]string{"bunny.PLY"}, app.KindNone},
		{[]string{"bunny.obj"}, app.KindNone},
		{[]string{"ly"}, app.KindNone},
		{[]string{""}, app.KindNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, app.Classify(tc.args), "args %q", tc.args)
	}
}

func TestRun(t *testing.T) {
	t.Run("should show a green sphere when called without arguments", func(t *testing.T) {
		// given
		r, v := &fakeReader{}, &fakeVisualizer{}
		a, _ := newApp(r, v)
		// when
		ok := a.Run(nil)
		// then
		assert.True(t, ok)
		assert.Empty(t, r.meshReads)
		assert.Empty(t, r.cloudReads)
		require.Len(t, v.calls, 1)
		c := v.calls[0]
		assert.Equal(t, "Open3D", c.title)
		assert.Equal(t, 640, c.width)
		assert.Equal(t, 480, c.height)
		s, isMesh := c.geoms[0].(*geometry.TriangleMesh)
		require.True(t, isMesh)
		assert.True(t, s.HasVertexNormals())
		assert.Equal(t, geometry.Green, s.VertexColors[0])
	})
	t.Run("should read pcd files only as point clouds", func(t *testing.T) {
		// given
		r, v := &fakeReader{cloud: cloud()}, &fakeVisualizer{}
		a, _ := newApp(r, v)
		// when
		ok := a.Run([]string{"scan.pcd"})
		// then
		assert.True(t, ok)
		assert.Equal(t, []string{"scan.pcd"}, r.cloudReads)
		assert.Empty(t, r.meshReads)
		require.Len(t, v.calls, 1)
		assert.Equal(t, "PointCloud scan.pcd", v.calls[0].title)
		assert.Equal(t, app.FileWindowWidth, v.calls[0].width)
		assert.Equal(t, app.FileWindowHeight, v.calls[0].height)
		pc := v.calls[0].geoms[0].(*geometry.PointCloud)
		assert.Equal(t, geometry.Vec3{0, 0, 1}, pc.Normals[0])
		assert.Equal(t, geometry.Vec3{0, 0, 1}, pc.Normals[1])
	})
	t.Run("should read ply files as meshes with normals", func(t *testing.T) {
		// given
		r, v := &fakeReader{mesh: triangle()}, &fakeVisualizer{}
		a, _ := newApp(r, v)
		// when
		ok := a.Run([]string{"bunny.ply"})
		// then
		assert.True(t, ok)
		assert.Equal(t, []string{"bunny.ply"}, r.meshReads)
		assert.Empty(t, r.cloudReads)
		require.Len(t, v.calls, 1)
		assert.Equal(t, "Mesh bunny.ply", v.calls[0].title)
		m := v.calls[0].geoms[0].(*geometry.TriangleMesh)
		assert.True(t, m.HasVertexNormals())
	})
	t.Run("should do nothing for other names", func(t *testing.T) {
		for _, name := range []string{"bunny.obj", "x", "README"} {
			r, v := &fakeReader{mesh: triangle(), cloud: cloud()}, &fakeVisualizer{}
			a, buf := newApp(r, v)
			ok := a.Run([]string{name})
			assert.False(t, ok)
			assert.Empty(t, r.meshReads)
			assert.Empty(t, r.cloudReads)
			assert.Empty(t, v.calls)
			assert.NotContains(t, buf.String(), "level=ERROR")
		}
	})
	t.Run("should log and show nothing when reading fails", func(t *testing.T) {
		// given
		r, v := &fakeReader{err: errors.New("boom")}, &fakeVisualizer{}
		a, buf := newApp(r, v)
		// when
		okMesh := a.Run([]string{"a.ply"})
		okCloud := a.Run([]string{"a.pcd"})
		// then
		assert.False(t, okMesh)
		assert.False(t, okCloud)
		assert.Empty(t, v.calls)
		assert.Contains(t, buf.String(), `level=ERROR msg="Failed to read" path=a.ply`)
		assert.Contains(t, buf.String(), `level=ERROR msg="Failed to read" path=a.pcd`)
	})
	t.Run("should not show a ply mesh without triangles", func(t *testing.T) {
		// given
		empty := &geometry.TriangleMesh{Vertices: []geometry.Vec3{{0, 0, 0}}}
		r, v := &fakeReader{mesh: empty, cloud: cloud()}, &fakeVisualizer{}
		a, buf := newApp(r, v)
		// when
		ok := a.Run([]string{"points.ply"})
		// then
		assert.False(t, ok)
		assert.Empty(t, v.calls)
		assert.Empty(t, r.cloudReads)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "Contains 0 triangles")
	})
	t.Run("should show mesh vertices as a point cloud in auto mode", func(t *testing.T) {
		// given
		empty := &geometry.TriangleMesh{
			Vertices:      []geometry.Vec3{{0, 0, 0}, {1, 2, 3}},
			VertexNormals: []geometry.Vec3{{0, 2, 0}, {0, 0, 0}},
		}
		r, v := &fakeReader{mesh: empty, cloud: cloud()}, &fakeVisualizer{}
		a, buf := newApp(r, v)
		a.Auto = true
		// when
		ok := a.Run([]string{"points.ply"})
		// then
		assert.True(t, ok)
		assert.Equal(t, []string{"points.ply"}, r.meshReads)
		assert.Empty(t, r.cloudReads)
		assert.Contains(t, buf.String(), "Contains 0 triangles")
		require.Len(t, v.calls, 1)
		assert.Equal(t, "PointCloud points.ply", v.calls[0].title)
		assert.Equal(t, app.FileWindowWidth, v.calls[0].width)
		require.Len(t, v.calls[0].geoms, 1)
		pc, isCloud := v.calls[0].geoms[0].(*geometry.PointCloud)
		require.True(t, isCloud)
		assert.Equal(t, empty.Vertices, pc.Points)
		assert.Equal(t, []geometry.Vec3{{0, 1, 0}, {0, 0, 1}}, pc.Normals)
	})
	t.Run("should read the file as a point cloud when the mesh read fails in auto mode", func(t *testing.T) {
		// given
		r, v := &fakeReader{err: errors.New("bad header")}, &fakeVisualizer{}
		a, buf := newApp(r, v)
		// when
		ok := a.AutoVisualize("points.ply")
		// then
		assert.False(t, ok)
		assert.Equal(t, []string{"points.ply"}, r.meshReads)
		assert.Equal(t, []string{"points.ply"}, r.cloudReads)
		assert.Contains(t, buf.String(), "Failed to read")
		assert.Empty(t, v.calls)
	})
	t.Run("should not fall back when the mesh is shown", func(t *testing.T) {
		r, v := &fakeReader{mesh: triangle(), cloud: cloud()}, &fakeVisualizer{}
		a, _ := newApp(r, v)
		assert.True(t, a.AutoVisualize("m.ply"))
		assert.Empty(t, r.cloudReads)
		assert.Len(t, v.calls, 1)
	})
	t.Run("should report visualizer failures", func(t *testing.T) {
		r, v := &fakeReader{mesh: triangle()}, &fakeVisualizer{err: errors.New("no display")}
		a, buf := newApp(r, v)
		assert.False(t, a.Run([]string{"m.ply"}))
		assert.Contains(t, buf.String(), "Failed to show geometry")
	})
}
