package geometry

import "github.com/chewxy/math32"

var (
	// DefaultMeshColor is used for meshes without vertex colors.
	DefaultMeshColor = Vec3{0.7, 0.7, 0.7}
	// Green is the sphere's paint color.
	Green = Vec3{0, 1, 0}
)

// HeightColor maps t in [0, 1] onto a blue-cyan-green-yellow-red ramp. Values outside are clamped.
func HeightColor(t float32) Vec3 {
	t = math32.Max(0, math32.Min(1, t))
	switch {
	case t < 0.25:
		return Vec3{0, 4 * t, 1}
	case t < 0.5:
		return Vec3{0, 1, 1 - 4*(t-0.25)}
	case t < 0.75:
		return Vec3{4 * (t - 0.5), 1, 0}
	default:
		return Vec3{1, 1 - 4*(t-0.75), 0}
	}
}

// ShadeByNormal returns base lit by a directional light coming from lightDir, with
// ambient as the floor. Both faces of a normal are lit.
func ShadeByNormal(base, normal, lightDir Vec3, ambient float32) Vec3 {
	l, ok := lightDir.Normalize()
	if !ok {
		return base
	}
	n, ok := normal.Normalize()
	if !ok {
		return base.Scale(ambient)
	}
	diffuse := math32.Abs(n.Dot(l))
	return base.Scale(ambient + (1-ambient)*diffuse).Clamp01()
}

// PointColors returns one display color per point: the cloud's own colors if present,
// else base shaded by the normals if present, else the height ramp along Y.
func PointColors(pc *PointCloud, base, lightDir Vec3, ambient float32) []Vec3 {
	out := make([]Vec3, len(pc.Points))
	switch {
	case pc.HasColors():
		for i, c := range pc.Colors {
			out[i] = c.Clamp01()
		}
	case pc.HasNormals():
		for i, n := range pc.Normals {
			out[i] = ShadeByNormal(base, n, lightDir, ambient)
		}
	default:
		b := pc.Bounds()
		span := b.Max[1] - b.Min[1]
		for i, p := range pc.Points {
			t := float32(0.5)
			if span > 0 {
				t = (p[1] - b.Min[1]) / span
			}
			out[i] = HeightColor(t)
		}
	}
	return out
}
