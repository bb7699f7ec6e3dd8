// Package meshio reads triangle meshes and point clouds from disk.
//
// Meshes: PLY (ascii and binary) and Wavefront OBJ.
// Point clouds: PCD (ascii, binary, binary_compressed), PLY vertices and the XYZ family.
// The format is chosen by file extension.
package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"mesh-viewer/internal/geometry"
)

var (
	// ErrUnsupportedFormat is returned when the file extension has no reader.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrMalformed is returned when the file content does not match its format.
	ErrMalformed = errors.New("malformed file")
)

// Decoders get the file size so header counts can be checked against it; -1 means unknown.
type meshDecoder func(r *bufio.Reader, size int64) (*geometry.TriangleMesh, error)
type cloudDecoder func(r *bufio.Reader, size int64) (*geometry.PointCloud, error)

var meshDecoders = map[string]meshDecoder{
	".ply": decodePLYMesh,
	".obj": decodeOBJ,
}

var cloudDecoders = map[string]cloudDecoder{
	".pcd":    decodePCD,
	".ply":    decodePLYCloud,
	".xyz":    decodeXYZ(xyzPlain),
	".xyzn":   decodeXYZ(xyzNormals),
	".xyzrgb": decodeXYZ(xyzColors),
}

// Reader reads geometry files and logs what it read.
type Reader struct {
	log *slog.Logger
}

// NewReader returns a Reader that logs to log. A nil log uses slog.Default().
func NewReader(log *slog.Logger) *Reader {
	if log == nil {
		log = slog.Default()
	}
	return &Reader{log: log}
}

// ReadTriangleMesh reads the mesh stored at path. A file that holds only vertices yields a
// mesh without triangles and no error; the caller decides what that means.
func (r *Reader) ReadTriangleMesh(path string) (*geometry.TriangleMesh, error) {
	dec, ok := meshDecoders[ext(path)]
	if !ok {
		return nil, fmt.Errorf("meshio: read mesh %s: %w", path, ErrUnsupportedFormat)
	}
	var m *geometry.TriangleMesh
	err := r.withFile(path, func(br *bufio.Reader, size int64) error {
		var err error
		m, err = dec(br, size)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("meshio: read mesh %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("meshio: read mesh %s: %w: %s", path, ErrMalformed, err)
	}
	r.log.Debug("Read triangle mesh", "path", path,
		"vertices", humanize.Comma(int64(len(m.Vertices))),
		"triangles", humanize.Comma(int64(len(m.Triangles))),
		"normals", m.HasVertexNormals(), "colors", m.HasVertexColors())
	return m, nil
}

// ReadPointCloud reads the point cloud stored at path.
func (r *Reader) ReadPointCloud(path string) (*geometry.PointCloud, error) {
	dec, ok := cloudDecoders[ext(path)]
	if !ok {
		return nil, fmt.Errorf("meshio: read point cloud %s: %w", path, ErrUnsupportedFormat)
	}
	var pc *geometry.PointCloud
	err := r.withFile(path, func(br *bufio.Reader, size int64) error {
		var err error
		pc, err = dec(br, size)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("meshio: read point cloud %s: %w", path, err)
	}
	r.log.Debug("Read point cloud", "path", path,
		"points", humanize.Comma(int64(len(pc.Points))),
		"normals", pc.HasNormals(), "colors", pc.HasColors())
	return pc, nil
}

func (r *Reader) withFile(path string, fn func(*bufio.Reader, int64) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	size := int64(-1)
	if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
		size = fi.Size()
		r.log.Debug("Opening geometry file", "path", path, "size", humanize.Bytes(uint64(size)))
	}
	return fn(bufio.NewReaderSize(f, 1<<16), size)
}

const (
	// maxPrealloc caps slice capacity taken from header counts; larger data grows by append
	// so a lying header cannot allocate more than the file really holds.
	maxPrealloc    = 1 << 20
	maxPolygonHint = 64
)

func capHint(n int) int {
	return max(0, min(n, maxPrealloc))
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// readLine returns the next line without its line ending. io.EOF is returned only when nothing was read.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
