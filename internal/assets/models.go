package assets

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/snowtrack/internal/track"
)

// Model files that replace the built-in shapes when present.
const (
	carrotFile = "models/carrot.obj"
	hatFile    = "models/tophat.obj"
)

// Mesh detail.
const (
	ballStacks = 12
	ballSlices = 18
	slices     = 12
)

// Models are the meshes drawn besides the track.
type Models struct {
	Ball   *track.Mesh // unit sphere, scaled by the ball radius
	Pebble *track.Mesh
	Carrot *track.Mesh
	Hat    *track.Mesh
}

// BuiltinModels returns the procedural meshes.
func BuiltinModels() Models {
	return Models{
		Ball:   Sphere(1, ballStacks, ballSlices),
		Pebble: PebbleMesh(),
		Carrot: CarrotMesh(),
		Hat:    HatMesh(),
	}
}

// PebbleMesh is a flattened dark stone.
func PebbleMesh() *track.Mesh {
	return Transform(Sphere(.5, 6, 8), mgl32.Scale3D(1, .5, 1))
}

// CarrotMesh is a cone pointing along +Z.
func CarrotMesh() *track.Mesh {
	return Transform(Cone(.25, 1.5, slices), mgl32.Translate3D(0, 0, -.75))
}

// HatMesh is a top hat standing on its brim.
func HatMesh() *track.Mesh {
	return Merge(
		Cylinder(.6, -.35, -.3, slices),
		Cylinder(.4, -.3, .35, slices),
	)
}

// LoadModels returns the built-in models with the carrot and hat replaced by
// model files where those exist.
func (m *Manager) LoadModels() (Models, error) {
	models := BuiltinModels()

	for _, f := range []struct {
		path string
		dst  **track.Mesh
	}{
		{carrotFile, &models.Carrot},
		{hatFile, &models.Hat},
	} {
		data, err := m.Load(f.path)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return models, err
		}
		mesh, err := ParseOBJ(bytes.NewReader(data))
		if err != nil {
			return models, fmt.Errorf("%s: %w", f.path, err)
		}
		*f.dst = mesh
		m.log.Info("model loaded", zap.String("path", f.path), zap.Int("triangles", mesh.TriangleCount()))
	}
	return models, nil
}
