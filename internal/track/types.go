// Package track builds the snowball course from a list of section declarations
// and answers track-relative queries (localization, nearby torches) against it.
package track

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/snowtrack/pkg/math"
)

// Track geometry constants.
const (
	TrackWidth       = 16 // meters, must be even
	TrackWallHeight  = 5
	TrackTorchOffset = 32 // meters between torches
	TorchHeight      = 2.5

	// SeamTolerance is the slack allowed on both segment ratios during localization.
	SeamTolerance = 0.02

	// DefaultResolution is the longitudinal step size in meters.
	DefaultResolution = 0.5

	// FirstTorchDistance is the countdown before the first torch is placed.
	FirstTorchDistance = 12
)

// Section declares one stretch of track. Angles are absolute target
// orientations in degrees, reached by the end of the section.
type Section struct {
	Incline   float32 // rotation over X
	Direction float32 // rotation over Y
	Tilt      float32 // rotation over Z
	Length    float32 // meters
}

// Spec is an ordered list of sections.
type Spec []Section

// GenState is the running generator state threaded from section to section.
type GenState struct {
	Origin      mgl32.Vec3
	Orientation mgl32.Quat
	Resolution  float32
	UVCoordV    float32
	NextTorch   float32
}

// NewGenState returns the state the first section starts from.
func NewGenState() GenState {
	return GenState{
		Orientation: mgl32.QuatIdent(),
		Resolution:  DefaultResolution,
		NextTorch:   FirstTorchDistance,
	}
}

// Vertex is a track mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Mesh is a non-indexed triangle list ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// MeshHandle refers to an uploaded mesh in the renderer's table. Zero means unbound.
type MeshHandle uint32

// Segment is the cross-section frame of one generation step.
type Segment struct {
	Center    mgl32.Vec3
	Direction mgl32.Vec3 // unit tangent
	Normal    mgl32.Vec3 // unit up
	Left      mgl32.Vec3 // unit side, normal x direction

	// Floor quad corners in world space. Front is the step start.
	LeftFront  mgl32.Vec3
	RightFront mgl32.Vec3
	LeftRear   mgl32.Vec3
	RightRear  mgl32.Vec3

	HalfWidth float32
}

// Torch is a torch placement along the left wall.
type Torch struct {
	LightPos     mgl32.Vec3
	LeftWallPos  mgl32.Vec3
	RightWallPos mgl32.Vec3
}

// SectionData is the generated geometry of one section.
type SectionData struct {
	Position mgl32.Vec3 // section origin, meshes are relative to it
	Bounds   math.AABB
	Floor    *Mesh
	Walls    *Mesh
	Segments []Segment
	Torches  []Torch

	// Bound once after upload.
	FloorModel MeshHandle
	WallModel  MeshHandle
}

// LocationInfo is the result of localizing a point on the track.
type LocationInfo struct {
	SectionIx int
	SegmentIx int

	Section *SectionData
	Segment *Segment

	SegLineFront mgl32.Vec3
	SegLineRear  mgl32.Vec3
	SegLine      mgl32.Vec3

	SegHorizPos    float32 // meters from the left edge
	SegRelHorizPos float32 // ~[0,1] across the track
	SegRelVertPos  float32 // ~[0,1] along the segment
	TrackYAtPos    float32
}
