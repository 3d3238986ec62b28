package assets

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/udhos/gwob"
	"go.uber.org/zap"

	"github.com/Faultbox/snowtrack/internal/logger"
	"github.com/Faultbox/snowtrack/internal/track"
)

// ErrBadOBJ is returned for malformed OBJ input.
var ErrBadOBJ = errors.New("malformed obj")

// ParseOBJ reads the geometry of a Wavefront OBJ file into a triangle list.
// Polygons are fan triangulated. Vertices without a normal get the normal
// of their triangle. Materials and smoothing are ignored.
func ParseOBJ(r io.Reader) (*track.Mesh, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	log := logger.Named("obj")
	obj, err := gwob.NewObjFromBuf("obj", buf, &gwob.ObjParserOptions{
		Logger: func(msg string) { log.Debug(msg) },
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadOBJ, err)
	}
	if len(obj.Indices) < 3 {
		return nil, fmt.Errorf("%w: no faces", ErrBadOBJ)
	}

	stride := obj.StrideSize / 4
	count := len(obj.Coord) / max(stride, 1)
	mesh := &track.Mesh{Vertices: make([]track.Vertex, 0, len(obj.Indices)-len(obj.Indices)%3)}

	for i := 0; i+2 < len(obj.Indices); i += 3 {
		var tri [3]track.Vertex
		for k := range tri {
			ix := obj.Indices[i+k]
			if ix < 0 || ix >= count {
				return nil, fmt.Errorf("%w: index %d out of range", ErrBadOBJ, ix)
			}
			tri[k] = objVertex(obj, ix*stride)
		}

		n := faceNormal(tri[:])
		for k := range tri {
			if mgl32.Vec3(tri[k].Normal).Len() == 0 {
				tri[k].Normal = n
			}
		}
		mesh.Vertices = append(mesh.Vertices, tri[:]...)
	}

	log.Debug("obj parsed",
		zap.Int("vertices", count),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("groups", len(obj.Groups)))
	return mesh, nil
}

// objVertex reads the interleaved vertex that starts at float offset base.
func objVertex(obj *gwob.Obj, base int) track.Vertex {
	var v track.Vertex
	p := base + obj.StrideOffsetPosition/4
	copy(v.Position[:], obj.Coord[p:p+3])
	if obj.TextCoordFound {
		t := base + obj.StrideOffsetTexture/4
		copy(v.UV[:], obj.Coord[t:t+2])
	}
	if obj.NormCoordFound {
		n := base + obj.StrideOffsetNormal/4
		copy(v.Normal[:], obj.Coord[n:n+3])
	}
	return v
}

func faceNormal(face []track.Vertex) [3]float32 {
	a := mgl32.Vec3(face[0].Position)
	b := mgl32.Vec3(face[1].Position)
	c := mgl32.Vec3(face[2].Position)
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Len(); l > 0 {
		return n.Mul(1 / l)
	}
	return [3]float32{0, 1, 0}
}
