package geometry

// PointCloud is a set of points with optional per-point normals and colors.
type PointCloud struct {
	Points  []Vec3
	Normals []Vec3
	Colors  []Vec3
}

// NewPointCloud returns an empty point cloud.
func NewPointCloud() *PointCloud {
	return &PointCloud{}
}

func (pc *PointCloud) HasPoints() bool  { return len(pc.Points) > 0 }
func (pc *PointCloud) HasNormals() bool { return len(pc.Points) > 0 && len(pc.Normals) == len(pc.Points) }
func (pc *PointCloud) HasColors() bool  { return len(pc.Points) > 0 && len(pc.Colors) == len(pc.Points) }

func (pc *PointCloud) Bounds() AABB { return BoundsOf(pc.Points) }

func (pc *PointCloud) IsEmpty() bool { return pc == nil || !pc.HasPoints() }

// NormalizeNormals rescales every normal to unit length. Normals without a usable
// length (zero or NaN) become (0, 0, 1).
func (pc *PointCloud) NormalizeNormals() {
	normalizeAll(pc.Normals)
}

// PaintUniformColor sets every point color to c, clamped into [0, 1].
func (pc *PointCloud) PaintUniformColor(c Vec3) {
	pc.Colors = uniform(len(pc.Points), c.Clamp01())
}

// FromMeshVertices returns a point cloud made of the mesh vertices and their attributes.
// Used when a mesh file carries no faces.
func FromMeshVertices(m *TriangleMesh) *PointCloud {
	pc := &PointCloud{Points: m.Vertices}
	if m.HasVertexNormals() {
		pc.Normals = m.VertexNormals
	}
	if m.HasVertexColors() {
		pc.Colors = m.VertexColors
	}
	return pc
}
