package track

import (
	"fmt"
	"io"

	"github.com/udhos/gwob"
)

// Interleaved OBJ vertex layout: position, uv, normal.
const (
	objFloats       = 8
	objOffsetUV     = 3
	objOffsetNormal = 5
)

// ExportOBJ writes the floor and wall meshes of every section as a Wavefront
// OBJ file in world space. Each mesh becomes its own group.
func (t *Track) ExportOBJ(w io.Writer) error {
	obj := &gwob.Obj{
		TextCoordFound:       true,
		NormCoordFound:       true,
		StrideSize:           objFloats * 4,
		StrideOffsetPosition: 0,
		StrideOffsetTexture:  objOffsetUV * 4,
		StrideOffsetNormal:   objOffsetNormal * 4,
	}

	for i := range t.sections {
		section := &t.sections[i]
		for _, part := range []struct {
			name string
			mesh *Mesh
		}{
			{"floor", section.Floor},
			{"walls", section.Walls},
		} {
			if part.mesh == nil || len(part.mesh.Vertices) < 3 {
				continue
			}
			appendOBJGroup(obj, fmt.Sprintf("section_%02d_%s", i, part.name), part.mesh, section.Position)
		}
	}
	obj.BigIndexFound = len(obj.Coord)/objFloats > 65535

	if _, err := fmt.Fprintf(w, "# snowtrack: %d sections, fingerprint %016x\n", len(t.sections), t.Fingerprint()); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	if err := obj.ToWriter(w); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}

// appendOBJGroup adds the whole triangles of mesh, moved by offset, as a new group.
func appendOBJGroup(obj *gwob.Obj, name string, mesh *Mesh, offset [3]float32) {
	base := len(obj.Coord) / objFloats
	group := &gwob.Group{Name: name, IndexBegin: len(obj.Indices)}

	n := len(mesh.Vertices) - len(mesh.Vertices)%3
	for i, v := range mesh.Vertices[:n] {
		obj.Coord = append(obj.Coord,
			v.Position[0]+offset[0], v.Position[1]+offset[1], v.Position[2]+offset[2],
			v.UV[0], v.UV[1],
			v.Normal[0], v.Normal[1], v.Normal[2])
		obj.Indices = append(obj.Indices, base+i)
	}

	group.IndexCount = len(obj.Indices) - group.IndexBegin
	obj.Groups = append(obj.Groups, group)
}
