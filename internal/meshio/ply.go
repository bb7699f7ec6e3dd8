package meshio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"mesh-viewer/internal/geometry"
)

type plyFormat int

const (
	plyASCII plyFormat = iota
	plyBinaryLE
	plyBinaryBE
)

type plyType struct {
	size    int
	float   bool
	signed  bool
	maxUint float64 // full scale of an unsigned integer type, used to scale colors
}

var plyTypes = map[string]plyType{
	"char": {size: 1, signed: true}, "int8": {size: 1, signed: true},
	"uchar": {size: 1, maxUint: 255}, "uint8": {size: 1, maxUint: 255},
	"short": {size: 2, signed: true}, "int16": {size: 2, signed: true},
	"ushort": {size: 2, maxUint: 65535}, "uint16": {size: 2, maxUint: 65535},
	"int": {size: 4, signed: true}, "int32": {size: 4, signed: true},
	"uint": {size: 4, maxUint: 4294967295}, "uint32": {size: 4, maxUint: 4294967295},
	"float": {size: 4, float: true}, "float32": {size: 4, float: true},
	"double": {size: 8, float: true}, "float64": {size: 8, float: true},
}

type plyProperty struct {
	name      string
	typ       plyType
	list      bool
	countType plyType
}

type plyElement struct {
	name  string
	count int
	props []plyProperty
}

type plyHeader struct {
	format   plyFormat
	elements []plyElement
}

func parsePLYHeader(r *bufio.Reader) (*plyHeader, error) {
	magic, err := readLine(r)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(magic) != "ply" {
		return nil, malformed("ply: missing magic")
	}
	h := &plyHeader{format: -1}
	for {
		line, err := readLine(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, malformed("ply: header not terminated")
			}
			return nil, err
		}
		f := strings.Fields(line)
		if len(f) == 0 {
			continue
		}
		switch f[0] {
		case "format":
			if len(f) < 2 {
				return nil, malformed("ply: bad format line %q", line)
			}
			switch f[1] {
			case "ascii":
				h.format = plyASCII
			case "binary_little_endian":
				h.format = plyBinaryLE
			case "binary_big_endian":
				h.format = plyBinaryBE
			default:
				return nil, malformed("ply: unknown format %q", f[1])
			}
		case "comment", "obj_info":
		case "element":
			if len(f) != 3 {
				return nil, malformed("ply: bad element line %q", line)
			}
			n, err := strconv.Atoi(f[2])
			if err != nil || n < 0 {
				return nil, malformed("ply: bad element count %q", f[2])
			}
			h.elements = append(h.elements, plyElement{name: f[1], count: n})
		case "property":
			if len(h.elements) == 0 {
				return nil, malformed("ply: property before element")
			}
			p, err := parsePLYProperty(f)
			if err != nil {
				return nil, err
			}
			e := &h.elements[len(h.elements)-1]
			e.props = append(e.props, p)
		case "end_header":
			if h.format < 0 {
				return nil, malformed("ply: missing format")
			}
			return h, nil
		default:
			return nil, malformed("ply: unknown header keyword %q", f[0])
		}
	}
}

func parsePLYProperty(f []string) (plyProperty, error) {
	if len(f) == 5 && f[1] == "list" {
		ct, ok1 := plyTypes[f[2]]
		it, ok2 := plyTypes[f[3]]
		if !ok1 || !ok2 || ct.float {
			return plyProperty{}, malformed("ply: bad list property %q", strings.Join(f, " "))
		}
		return plyProperty{name: f[4], typ: it, list: true, countType: ct}, nil
	}
	if len(f) != 3 {
		return plyProperty{}, malformed("ply: bad property %q", strings.Join(f, " "))
	}
	t, ok := plyTypes[f[1]]
	if !ok {
		return plyProperty{}, malformed("ply: unknown type %q", f[1])
	}
	return plyProperty{name: f[2], typ: t}, nil
}

// plyValues yields scalar values from the body in file order.
type plyValues interface {
	next(t plyType) (float64, error)
}

type plyASCIIValues struct {
	s *bufio.Scanner
}

func (v *plyASCIIValues) next(plyType) (float64, error) {
	if !v.s.Scan() {
		if err := v.s.Err(); err != nil {
			return 0, err
		}
		return 0, malformed("ply: unexpected end of data")
	}
	x, err := strconv.ParseFloat(v.s.Text(), 64)
	if err != nil {
		return 0, malformed("ply: bad number %q", v.s.Text())
	}
	return x, nil
}

type plyBinaryValues struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (v *plyBinaryValues) next(t plyType) (float64, error) {
	b := v.buf[:t.size]
	if _, err := io.ReadFull(v.r, b); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, malformed("ply: unexpected end of data")
		}
		return 0, err
	}
	switch {
	case t.size == 1 && t.signed:
		return float64(int8(b[0])), nil
	case t.size == 1:
		return float64(b[0]), nil
	case t.size == 2 && t.signed:
		return float64(int16(v.order.Uint16(b))), nil
	case t.size == 2:
		return float64(v.order.Uint16(b)), nil
	case t.size == 4 && t.float:
		return float64(math.Float32frombits(v.order.Uint32(b))), nil
	case t.size == 4 && t.signed:
		return float64(int32(v.order.Uint32(b))), nil
	case t.size == 4:
		return float64(v.order.Uint32(b)), nil
	default:
		return math.Float64frombits(v.order.Uint64(b)), nil
	}
}

func newPLYValues(h *plyHeader, r *bufio.Reader) plyValues {
	switch h.format {
	case plyBinaryLE:
		return &plyBinaryValues{r: r, order: binary.LittleEndian}
	case plyBinaryBE:
		return &plyBinaryValues{r: r, order: binary.BigEndian}
	default:
		s := bufio.NewScanner(r)
		s.Split(bufio.ScanWords)
		return &plyASCIIValues{s: s}
	}
}

// plyVertexSlots maps vertex property names to attribute slots.
var plyVertexSlots = map[string]int{
	"x": 0, "y": 1, "z": 2,
	"nx": 3, "ny": 4, "nz": 5,
	"red": 6, "green": 7, "blue": 8,
	"diffuse_red": 6, "diffuse_green": 7, "diffuse_blue": 8,
	"r": 6, "g": 7, "b": 8,
}

type plyContent struct {
	vertices  []geometry.Vec3
	normals   []geometry.Vec3
	colors    []geometry.Vec3
	triangles []geometry.Triangle
}

func decodePLY(r *bufio.Reader, wantFaces bool) (*plyContent, error) {
	h, err := parsePLYHeader(r)
	if err != nil {
		return nil, err
	}
	vals := newPLYValues(h, r)
	c := &plyContent{}
	for _, e := range h.elements {
		switch {
		case e.name == "vertex":
			if err := readPLYVertices(vals, e, c); err != nil {
				return nil, err
			}
		case e.name == "face" && wantFaces:
			if err := readPLYFaces(vals, e, c); err != nil {
				return nil, err
			}
		default:
			if err := skipPLYElement(vals, e); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func readPLYVertices(vals plyValues, e plyElement, c *plyContent) error {
	var has [9]bool
	for _, p := range e.props {
		if s, ok := plyVertexSlots[p.name]; ok && !p.list {
			has[s] = true
		}
	}
	if !has[0] || !has[1] || !has[2] {
		return malformed("ply: vertex element without x, y, z")
	}
	withNormals := has[3] && has[4] && has[5]
	withColors := has[6] && has[7] && has[8]
	c.vertices = make([]geometry.Vec3, 0, capHint(e.count))
	if withNormals {
		c.normals = make([]geometry.Vec3, 0, capHint(e.count))
	}
	if withColors {
		c.colors = make([]geometry.Vec3, 0, capHint(e.count))
	}
	var slot [9]float32
	for i := 0; i < e.count; i++ {
		for _, p := range e.props {
			if p.list {
				if err := skipPLYList(vals, p); err != nil {
					return err
				}
				continue
			}
			x, err := vals.next(p.typ)
			if err != nil {
				return err
			}
			s, ok := plyVertexSlots[p.name]
			if !ok {
				continue
			}
			if s >= 6 && p.typ.maxUint > 0 {
				x /= p.typ.maxUint
			}
			slot[s] = float32(x)
		}
		c.vertices = append(c.vertices, geometry.Vec3{slot[0], slot[1], slot[2]})
		if withNormals {
			c.normals = append(c.normals, geometry.Vec3{slot[3], slot[4], slot[5]})
		}
		if withColors {
			c.colors = append(c.colors, geometry.Vec3{slot[6], slot[7], slot[8]}.Clamp01())
		}
	}
	return nil
}

func readPLYFaces(vals plyValues, e plyElement, c *plyContent) error {
	for i := 0; i < e.count; i++ {
		for _, p := range e.props {
			if !p.list || (p.name != "vertex_indices" && p.name != "vertex_index") {
				if p.list {
					if err := skipPLYList(vals, p); err != nil {
						return err
					}
				} else if _, err := vals.next(p.typ); err != nil {
					return err
				}
				continue
			}
			n, err := listLength(vals, p)
			if err != nil {
				return err
			}
			idx := make([]int32, 0, min(n, maxPolygonHint))
			for k := 0; k < n; k++ {
				x, err := vals.next(p.typ)
				if err != nil {
					return err
				}
				idx = append(idx, int32(x))
			}
			c.triangles = appendFan(c.triangles, idx)
		}
	}
	return nil
}

// listLength reads the length prefix of a list property. It must be a whole number within
// the range of the declared count type.
func listLength(vals plyValues, p plyProperty) (int, error) {
	n, err := vals.next(p.countType)
	if err != nil {
		return 0, err
	}
	limit := float64(math.MaxInt32)
	if p.countType.maxUint > 0 && p.countType.maxUint < limit {
		limit = p.countType.maxUint
	}
	if math.IsNaN(n) || n < 0 || n > limit || n != math.Trunc(n) {
		return 0, malformed("ply: bad list length %v", n)
	}
	return int(n), nil
}

// appendFan triangulates a convex polygon around its first vertex. Polygons with fewer
// than three vertices add nothing.
func appendFan(tris []geometry.Triangle, idx []int32) []geometry.Triangle {
	for k := 1; k+1 < len(idx); k++ {
		tris = append(tris, geometry.Triangle{idx[0], idx[k], idx[k+1]})
	}
	return tris
}

func skipPLYElement(vals plyValues, e plyElement) error {
	for i := 0; i < e.count; i++ {
		for _, p := range e.props {
			if p.list {
				if err := skipPLYList(vals, p); err != nil {
					return err
				}
				continue
			}
			if _, err := vals.next(p.typ); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipPLYList(vals plyValues, p plyProperty) error {
	n, err := listLength(vals, p)
	if err != nil {
		return err
	}
	for k := 0; k < n; k++ {
		if _, err := vals.next(p.typ); err != nil {
			return err
		}
	}
	return nil
}

func decodePLYMesh(r *bufio.Reader, _ int64) (*geometry.TriangleMesh, error) {
	c, err := decodePLY(r, true)
	if err != nil {
		return nil, err
	}
	return &geometry.TriangleMesh{
		Vertices:      c.vertices,
		Triangles:     c.triangles,
		VertexNormals: c.normals,
		VertexColors:  c.colors,
	}, nil
}

func decodePLYCloud(r *bufio.Reader, _ int64) (*geometry.PointCloud, error) {
	c, err := decodePLY(r, false)
	if err != nil {
		return nil, err
	}
	return &geometry.PointCloud{Points: c.vertices, Normals: c.normals, Colors: c.colors}, nil
}
