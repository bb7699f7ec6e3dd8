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

const (
	maxPCDPoints    = math.MaxInt32
	maxPCDPointSize = 1 << 16
	// lzfMaxRatio bounds LZF expansion: a 3-byte back reference yields at most 264 bytes.
	lzfMaxRatio = 88
)

type pcdField struct {
	name   string
	size   int
	typ    byte // 'I', 'U' or 'F'
	count  int
	offset int // byte offset inside one point record
}

type pcdHeader struct {
	fields    []pcdField
	width     int
	height    int
	points    int
	data      string
	pointSize int
}

func parsePCDHeader(r *bufio.Reader) (*pcdHeader, error) {
	h := &pcdHeader{height: 1}
	var sizes, counts []int
	var types []string
	for {
		line, err := readLine(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, malformed("pcd: header without DATA")
			}
			return nil, err
		}
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		f := strings.Fields(line)
		if len(f) == 0 {
			continue
		}
		key, vals := strings.ToUpper(f[0]), f[1:]
		switch key {
		case "VERSION", "VIEWPOINT":
		case "FIELDS", "COLUMNS":
			h.fields = make([]pcdField, len(vals))
			for i, v := range vals {
				h.fields[i].name = v
			}
		case "SIZE":
			if sizes, err = atois(vals); err != nil {
				return nil, err
			}
		case "TYPE":
			types = vals
		case "COUNT":
			if counts, err = atois(vals); err != nil {
				return nil, err
			}
		case "WIDTH":
			if h.width, err = atoi1(vals); err != nil {
				return nil, err
			}
		case "HEIGHT":
			if h.height, err = atoi1(vals); err != nil {
				return nil, err
			}
		case "POINTS":
			if h.points, err = atoi1(vals); err != nil {
				return nil, err
			}
		case "DATA":
			if len(vals) != 1 {
				return nil, malformed("pcd: bad DATA line")
			}
			h.data = strings.ToLower(vals[0])
			if err := h.finish(sizes, types, counts); err != nil {
				return nil, err
			}
			return h, nil
		default:
			return nil, malformed("pcd: unknown header keyword %q", f[0])
		}
	}
}

func (h *pcdHeader) finish(sizes []int, types []string, counts []int) error {
	n := len(h.fields)
	if n == 0 {
		return malformed("pcd: no FIELDS")
	}
	if len(counts) == 0 {
		counts = make([]int, n)
		for i := range counts {
			counts[i] = 1
		}
	}
	if len(sizes) != n || len(types) != n || len(counts) != n {
		return malformed("pcd: FIELDS, SIZE, TYPE and COUNT disagree")
	}
	off := 0
	for i := range h.fields {
		f := &h.fields[i]
		f.size, f.count, f.offset = sizes[i], counts[i], off
		if len(types[i]) != 1 || !strings.Contains("IUF", strings.ToUpper(types[i])) {
			return malformed("pcd: bad TYPE %q", types[i])
		}
		f.typ = strings.ToUpper(types[i])[0]
		switch {
		case f.typ == 'F' && f.size != 4 && f.size != 8,
			f.typ != 'F' && f.size != 1 && f.size != 2 && f.size != 4 && f.size != 8,
			f.count < 1:
			return malformed("pcd: field %s has SIZE %d TYPE %c COUNT %d", f.name, f.size, f.typ, f.count)
		}
		if f.count > maxPCDPointSize {
			return malformed("pcd: field %s has COUNT %d", f.name, f.count)
		}
		off += f.size * f.count
	}
	h.pointSize = off
	if h.pointSize > maxPCDPointSize {
		return malformed("pcd: point record of %d bytes", h.pointSize)
	}
	if h.width < 0 || h.height < 0 || h.points < 0 || h.width > maxPCDPoints || h.height > maxPCDPoints {
		return malformed("pcd: bad WIDTH %d, HEIGHT %d or POINTS %d", h.width, h.height, h.points)
	}
	if h.points == 0 {
		h.points = h.width * h.height
	}
	if h.points > maxPCDPoints {
		return malformed("pcd: %d points", h.points)
	}
	return nil
}

func atoi1(vals []string) (int, error) {
	if len(vals) != 1 {
		return 0, malformed("pcd: expected one value, got %d", len(vals))
	}
	n, err := strconv.Atoi(vals[0])
	if err != nil {
		return 0, malformed("pcd: bad integer %q", vals[0])
	}
	return n, nil
}

func atois(vals []string) ([]int, error) {
	out := make([]int, len(vals))
	for i, v := range vals {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, malformed("pcd: bad integer %q", v)
		}
		out[i] = n
	}
	return out, nil
}

// pcdLayout locates the fields the viewer understands.
type pcdLayout struct {
	xyz    [3]int // field index, -1 if absent
	normal [3]int
	color  int
}

func (h *pcdHeader) layout() (pcdLayout, error) {
	l := pcdLayout{xyz: [3]int{-1, -1, -1}, normal: [3]int{-1, -1, -1}, color: -1}
	for i, f := range h.fields {
		switch f.name {
		case "x":
			l.xyz[0] = i
		case "y":
			l.xyz[1] = i
		case "z":
			l.xyz[2] = i
		case "normal_x":
			l.normal[0] = i
		case "normal_y":
			l.normal[1] = i
		case "normal_z":
			l.normal[2] = i
		case "rgb", "rgba":
			l.color = i
		}
	}
	if l.xyz[0] < 0 || l.xyz[1] < 0 || l.xyz[2] < 0 {
		return l, malformed("pcd: missing x, y or z field")
	}
	return l, nil
}

func (l pcdLayout) hasNormals() bool {
	return l.normal[0] >= 0 && l.normal[1] >= 0 && l.normal[2] >= 0
}

// pcdPoint gives access to the first element of field i for one point.
type pcdPoint interface {
	float(i int) float64
	packedColor(i int) uint32
}

func decodePCD(r *bufio.Reader, size int64) (*geometry.PointCloud, error) {
	h, err := parsePCDHeader(r)
	if err != nil {
		return nil, err
	}
	l, err := h.layout()
	if err != nil {
		return nil, err
	}
	pc := geometry.NewPointCloud()
	pc.Points = make([]geometry.Vec3, 0, capHint(h.points))
	if l.hasNormals() {
		pc.Normals = make([]geometry.Vec3, 0, capHint(h.points))
	}
	if l.color >= 0 {
		pc.Colors = make([]geometry.Vec3, 0, capHint(h.points))
	}
	add := func(p pcdPoint) {
		v := geometry.Vec3{float32(p.float(l.xyz[0])), float32(p.float(l.xyz[1])), float32(p.float(l.xyz[2]))}
		if !v.IsFinite() {
			return
		}
		pc.Points = append(pc.Points, v)
		if l.hasNormals() {
			pc.Normals = append(pc.Normals, geometry.Vec3{
				float32(p.float(l.normal[0])), float32(p.float(l.normal[1])), float32(p.float(l.normal[2])),
			})
		}
		if l.color >= 0 {
			c := p.packedColor(l.color)
			pc.Colors = append(pc.Colors, geometry.Vec3{
				float32((c>>16)&0xff) / 255, float32((c>>8)&0xff) / 255, float32(c&0xff) / 255,
			})
		}
	}
	switch h.data {
	case "ascii":
		err = readPCDASCII(r, h, add)
	case "binary":
		if size >= 0 && int64(h.pointSize)*int64(h.points) > size {
			return nil, malformed("pcd: %d points of %d bytes exceed the file size %d", h.points, h.pointSize, size)
		}
		err = readPCDBinary(r, h, add)
	case "binary_compressed":
		err = readPCDCompressed(r, h, size, add)
	default:
		err = malformed("pcd: unknown DATA %q", h.data)
	}
	if err != nil {
		return nil, err
	}
	return pc, nil
}

func readPCDASCII(r *bufio.Reader, h *pcdHeader, add func(pcdPoint)) error {
	// token index of each field's first element
	starts := make([]int, len(h.fields))
	want := 0
	for i := range h.fields {
		starts[i] = want
		want += h.fields[i].count
	}
	view := &pcdTokenPoint{starts: starts, fields: h.fields}
	for n := 0; n < h.points; {
		line, err := readLine(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return malformed("pcd: %d of %d points", n, h.points)
			}
			return err
		}
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) < want {
			return malformed("pcd: point %d has %d values, want %d", n, len(tokens), want)
		}
		view.tokens = tokens
		add(view)
		n++
	}
	return nil
}

type pcdTokenPoint struct {
	starts []int
	fields []pcdField
	tokens []string
}

func (p *pcdTokenPoint) float(i int) float64 {
	x, err := strconv.ParseFloat(p.tokens[p.starts[i]], 64)
	if err != nil {
		return math.NaN()
	}
	return x
}

func (p *pcdTokenPoint) packedColor(i int) uint32 {
	t := p.tokens[p.starts[i]]
	if p.fields[i].typ == 'F' {
		x, _ := strconv.ParseFloat(t, 32)
		return math.Float32bits(float32(x))
	}
	x, _ := strconv.ParseUint(t, 10, 32)
	return uint32(x)
}

// pcdBytesPoint reads little-endian values; at returns the bytes of a field's first element.
type pcdBytesPoint struct {
	fields []pcdField
	at     func(field int) []byte
}

func (p *pcdBytesPoint) float(i int) float64 {
	return decodePCDScalar(p.fields[i], p.at(i))
}

func (p *pcdBytesPoint) packedColor(i int) uint32 {
	b := p.at(i)
	switch p.fields[i].size {
	case 4:
		return binary.LittleEndian.Uint32(b)
	case 8:
		if p.fields[i].typ == 'F' {
			return math.Float32bits(float32(math.Float64frombits(binary.LittleEndian.Uint64(b))))
		}
		return uint32(binary.LittleEndian.Uint64(b))
	default:
		return 0
	}
}

func decodePCDScalar(f pcdField, b []byte) float64 {
	le := binary.LittleEndian
	switch f.typ {
	case 'F':
		if f.size == 4 {
			return float64(math.Float32frombits(le.Uint32(b)))
		}
		return math.Float64frombits(le.Uint64(b))
	case 'I':
		switch f.size {
		case 1:
			return float64(int8(b[0]))
		case 2:
			return float64(int16(le.Uint16(b)))
		case 4:
			return float64(int32(le.Uint32(b)))
		default:
			return float64(int64(le.Uint64(b)))
		}
	default:
		switch f.size {
		case 1:
			return float64(b[0])
		case 2:
			return float64(le.Uint16(b))
		case 4:
			return float64(le.Uint32(b))
		default:
			return float64(le.Uint64(b))
		}
	}
}

func readPCDBinary(r *bufio.Reader, h *pcdHeader, add func(pcdPoint)) error {
	rec := make([]byte, h.pointSize)
	p := &pcdBytesPoint{fields: h.fields}
	p.at = func(i int) []byte {
		f := h.fields[i]
		return rec[f.offset : f.offset+f.size]
	}
	for n := 0; n < h.points; n++ {
		if _, err := io.ReadFull(r, rec); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return malformed("pcd: %d of %d points", n, h.points)
			}
			return err
		}
		add(p)
	}
	return nil
}

// readPCDCompressed handles binary_compressed data: two uint32 sizes followed by an LZF
// block whose content stores each field for all points contiguously.
func readPCDCompressed(r *bufio.Reader, h *pcdHeader, size int64, add func(pcdPoint)) error {
	var sizes [8]byte
	if _, err := io.ReadFull(r, sizes[:]); err != nil {
		return malformed("pcd: missing compressed sizes")
	}
	compressed := int(binary.LittleEndian.Uint32(sizes[0:4]))
	uncompressed := int(binary.LittleEndian.Uint32(sizes[4:8]))
	if uncompressed != h.pointSize*h.points {
		return malformed("pcd: uncompressed size %d, want %d", uncompressed, h.pointSize*h.points)
	}
	if size >= 0 && int64(compressed) > size {
		return malformed("pcd: compressed size %d exceeds the file size %d", compressed, size)
	}
	if uncompressed > compressed*lzfMaxRatio {
		return malformed("pcd: compressed size %d cannot hold %d bytes", compressed, uncompressed)
	}
	in := make([]byte, compressed)
	if _, err := io.ReadFull(r, in); err != nil {
		return malformed("pcd: compressed block truncated")
	}
	data, err := lzfDecompress(in, uncompressed)
	if err != nil {
		return err
	}
	// column starts: field i occupies [base[i], base[i]+size*count*points)
	base := make([]int, len(h.fields))
	off := 0
	for i, f := range h.fields {
		base[i] = off
		off += f.size * f.count * h.points
	}
	var n int
	p := &pcdBytesPoint{fields: h.fields}
	p.at = func(i int) []byte {
		f := h.fields[i]
		start := base[i] + n*f.size*f.count
		return data[start : start+f.size]
	}
	for n = 0; n < h.points; n++ {
		add(p)
	}
	return nil
}
