package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestAABB(t *testing.T) {
	t.Run("empty box reports empty", func(t *testing.T) {
		assert.True(t, EmptyAABB().IsEmpty())
		assert.True(t, BoundsOf(nil).IsEmpty())
	})
	t.Run("should ignore non-finite points", func(t *testing.T) {
		b := BoundsOf([]Vec3{{-1, 0, 2}, {3, math32.NaN(), 0}, {1, 4, -2}})
		assert.Equal(t, Vec3{-1, 0, -2}, b.Min)
		assert.Equal(t, Vec3{1, 4, 2}, b.Max)
		assert.Equal(t, Vec3{0, 2, 0}, b.Center())
	})
	t.Run("should union boxes of several geometries", func(t *testing.T) {
		m := unitQuad()
		pc := &PointCloud{Points: []Vec3{{-2, -2, -2}}}
		b := BoundsAll(m, pc)
		assert.Equal(t, Vec3{-2, -2, -2}, b.Min)
		assert.Equal(t, Vec3{1, 1, 0}, b.Max)
	})
}

func TestOrbit(t *testing.T) {
	t.Run("should frame the bounding sphere from +Z", func(t *testing.T) {
		// given
		b := AABB{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
		// when
		o := FitOrbit(b, 45)
		// then
		eye := o.Eye()
		assert.InDelta(t, 0, eye[0], 1e-5)
		assert.InDelta(t, 0, eye[1], 1e-5)
		assert.Greater(t, eye[2], b.Radius())
		assert.Equal(t, Vec3{0, 0, 0}, o.Target)
	})
	t.Run("should frame the unit sphere when empty", func(t *testing.T) {
		o := FitOrbit(EmptyAABB(), 0)
		assert.Equal(t, float32(defaultFovyDeg), o.FovyDeg)
		assert.Greater(t, o.Distance, float32(1))
	})
	t.Run("should clamp pitch short of the poles", func(t *testing.T) {
		o := FitOrbit(EmptyAABB(), 45)
		o.Rotate(0, 10)
		assert.Less(t, o.Pitch, float32(math32.Pi/2))
		up := o.Up()
		assert.InDelta(t, 1, up.Len(), 1e-4)
	})
	t.Run("should keep distance positive when zooming", func(t *testing.T) {
		o := FitOrbit(EmptyAABB(), 45)
		for i := 0; i < 100; i++ {
			o.Zoom(0.1)
		}
		assert.Greater(t, o.Distance, float32(0))
		d := o.Distance
		o.Zoom(-1)
		assert.Equal(t, d, o.Distance)
	})
	t.Run("should pan along screen axes", func(t *testing.T) {
		o := FitOrbit(EmptyAABB(), 45)
		o.Pan(0.5, 0)
		assert.Greater(t, o.Target[0], float32(0))
		assert.InDelta(t, 0, o.Target[1], 1e-5)
	})
}

func TestPointColors(t *testing.T) {
	t.Run("should prefer own colors", func(t *testing.T) {
		pc := &PointCloud{Points: []Vec3{{0, 0, 0}}, Colors: []Vec3{{0.2, 0.3, 0.4}}}
		assert.Equal(t, []Vec3{{0.2, 0.3, 0.4}}, PointColors(pc, DefaultMeshColor, Vec3{0, 0, 1}, 0.2))
	})
	t.Run("should shade by normals", func(t *testing.T) {
		pc := &PointCloud{
			Points:  []Vec3{{0, 0, 0}, {1, 0, 0}},
			Normals: []Vec3{{0, 0, 1}, {1, 0, 0}},
		}
		c := PointColors(pc, Vec3{1, 1, 1}, Vec3{0, 0, 1}, 0.2)
		assert.InDelta(t, 1, c[0][0], 1e-6)
		assert.InDelta(t, 0.2, c[1][0], 1e-6)
	})
	t.Run("should ramp by height otherwise", func(t *testing.T) {
		pc := &PointCloud{Points: []Vec3{{0, 0, 0}, {0, 1, 0}}}
		c := PointColors(pc, DefaultMeshColor, Vec3{0, 0, 1}, 0.2)
		assert.Equal(t, HeightColor(0), c[0])
		assert.Equal(t, HeightColor(1), c[1])
	})
}
