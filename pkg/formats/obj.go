package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/fractree/pkg/math"
	"github.com/Faultbox/fractree/pkg/skeleton"
)

// OBJ format errors.
var (
	ErrInvalidOBJ = errors.New("invalid OBJ data")
)

// OBJ is a parsed Wavefront OBJ polyline object.
type OBJ struct {
	Name     string
	Skeleton *skeleton.Skeleton
}

// WriteOBJ writes a skeleton as a single OBJ object of vertices and line
// elements. Skin radii have no OBJ equivalent and are not written.
func WriteOBJ(w io.Writer, s *skeleton.Skeleton, name string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# fractree skeleton: %d vertices, %d edges\n", s.VertexCount(), s.EdgeCount())
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}

	for _, v := range s.Vertices {
		bw.WriteString("v ")
		bw.WriteString(formatFloat(v.X))
		bw.WriteByte(' ')
		bw.WriteString(formatFloat(v.Y))
		bw.WriteByte(' ')
		bw.WriteString(formatFloat(v.Z))
		bw.WriteByte('\n')
	}

	// OBJ indices are 1-based.
	for _, e := range s.Edges {
		fmt.Fprintf(bw, "l %d %d\n", e[0]+1, e[1]+1)
	}

	return bw.Flush()
}

// ParseOBJ reads vertices and line elements from OBJ data. Polylines with
// more than two indices become consecutive edges. Faces, normals, texture
// coordinates and grouping statements are ignored.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	var (
		vertices []math.Vec3
		edges    []skeleton.Edge
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "o":
			if obj.Name == "" && len(fields) > 1 {
				obj.Name = strings.Join(fields[1:], " ")
			}

		case "v":
			if len(fields) != 4 && len(fields) != 5 {
				return nil, fmt.Errorf("%w: line %d: vertex needs 3 coordinates", ErrInvalidOBJ, lineNo)
			}
			var xyz [3]float32
			for i := range xyz {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJ, lineNo, err)
				}
				xyz[i] = float32(f)
			}
			vertices = append(vertices, math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]})

		case "l":
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: line %d: line element needs 2 indices", ErrInvalidOBJ, lineNo)
			}
			ids := make([]skeleton.VertexID, 0, len(fields)-1)
			for _, f := range fields[1:] {
				id, err := resolveIndex(f, len(vertices))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJ, lineNo, err)
				}
				ids = append(ids, id)
			}
			for i := 1; i < len(ids); i++ {
				edges = append(edges, skeleton.Edge{ids[i-1], ids[i]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	skel, err := skeleton.New(vertices, edges)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOBJ, err)
	}
	obj.Skeleton = skel
	return obj, nil
}

// resolveIndex converts a 1-based or negative (relative) OBJ index to a
// vertex id. Only the vertex part of "v/vt" references is used.
func resolveIndex(field string, vertexCount int) (skeleton.VertexID, error) {
	if slash := strings.IndexByte(field, '/'); slash >= 0 {
		field = field[:slash]
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", field)
	}
	switch {
	case n > 0 && n <= vertexCount:
		return skeleton.VertexID(n - 1), nil
	case n < 0 && -n <= vertexCount:
		return skeleton.VertexID(vertexCount + n), nil
	default:
		return 0, fmt.Errorf("index %d out of range (%d vertices)", n, vertexCount)
	}
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
