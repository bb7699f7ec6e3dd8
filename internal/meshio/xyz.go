package meshio

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"mesh-viewer/internal/geometry"
)

type xyzVariant int

const (
	xyzPlain   xyzVariant = iota // x y z
	xyzNormals                   // x y z nx ny nz
	xyzColors                    // x y z r g b, colors in [0, 1]
)

func (v xyzVariant) columns() int {
	if v == xyzPlain {
		return 3
	}
	return 6
}

// decodeXYZ returns a decoder for whitespace separated point lists. Extra columns are ignored.
func decodeXYZ(v xyzVariant) cloudDecoder {
	return func(r *bufio.Reader, _ int64) (*geometry.PointCloud, error) {
		pc := geometry.NewPointCloud()
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
			if len(f) < v.columns() {
				return nil, malformed("xyz: line %d: %d columns, want %d", lineNo, len(f), v.columns())
			}
			x, err := parseFloats(f[:v.columns()])
			if err != nil {
				return nil, malformed("xyz: line %d: %s", lineNo, err)
			}
			pc.Points = append(pc.Points, geometry.Vec3{x[0], x[1], x[2]})
			switch v {
			case xyzNormals:
				pc.Normals = append(pc.Normals, geometry.Vec3{x[3], x[4], x[5]})
			case xyzColors:
				pc.Colors = append(pc.Colors, geometry.Vec3{x[3], x[4], x[5]}.Clamp01())
			}
		}
		return pc, nil
	}
}
