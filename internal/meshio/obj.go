package meshio

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"mesh-viewer/internal/geometry"
)

// decodeOBJ reads vertices (with the optional "v x y z r g b" color extension) and faces.
// Texture coordinates, normals, groups and materials are ignored.
func decodeOBJ(r *bufio.Reader, _ int64) (*geometry.TriangleMesh, error) {
	m := geometry.NewTriangleMesh()
	var colors []geometry.Vec3
	colored := true
	for lineNo := 1; ; lineNo++ {
		line, err := readLine(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		f := strings.Fields(line)
		if len(f) == 0 || strings.HasPrefix(f[0], "#") {
			continue
		}
		switch f[0] {
		case "v":
			if len(f) < 4 {
				return nil, malformed("obj: line %d: vertex needs 3 coordinates", lineNo)
			}
			v, err := parseFloats(f[1:4])
			if err != nil {
				return nil, malformed("obj: line %d: %s", lineNo, err)
			}
			m.Vertices = append(m.Vertices, geometry.Vec3{v[0], v[1], v[2]})
			if len(f) >= 7 {
				c, err := parseFloats(f[4:7])
				if err != nil {
					return nil, malformed("obj: line %d: %s", lineNo, err)
				}
				colors = append(colors, geometry.Vec3{c[0], c[1], c[2]}.Clamp01())
			} else {
				colored = false
			}
		case "f":
			idx := make([]int32, 0, len(f)-1)
			for _, tok := range f[1:] {
				i, err := objIndex(tok, len(m.Vertices))
				if err != nil {
					return nil, malformed("obj: line %d: %s", lineNo, err)
				}
				idx = append(idx, i)
			}
			m.Triangles = appendFan(m.Triangles, idx)
		}
	}
	if colored && len(colors) == len(m.Vertices) {
		m.VertexColors = colors
	}
	return m, nil
}

// objIndex converts a face token "v", "v/vt", "v//vn" or "v/vt/vn" into a zero-based vertex index.
// Negative indices count back from the last vertex read so far.
func objIndex(tok string, nVertices int) (int32, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, err
	}
	switch {
	case n > 0:
		n--
	case n < 0:
		n += nVertices
	default:
		return 0, errors.New("vertex index 0")
	}
	if n < 0 || n >= nVertices {
		return 0, errors.New("vertex index out of range: " + tok)
	}
	return int32(n), nil
}

func parseFloats(tokens []string) ([]float32, error) {
	out := make([]float32, len(tokens))
	for i, t := range tokens {
		x, err := strconv.ParseFloat(t, 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(x)
	}
	return out, nil
}
