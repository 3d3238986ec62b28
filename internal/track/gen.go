package track

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/snowtrack/pkg/math"
)

// frame is the orthonormal basis of a cross-section.
type frame struct {
	direction mgl32.Vec3
	normal    mgl32.Vec3
	left      mgl32.Vec3
}

func frameOf(q mgl32.Quat) frame {
	direction := math.SafeNormalize(q.Rotate(math.Forward))
	normal := math.SafeNormalize(q.Rotate(math.Up))
	return frame{
		direction: direction,
		normal:    normal,
		left:      math.SafeNormalize(normal.Cross(direction)),
	}
}

// TargetOrientation returns the absolute orientation a section ends at.
func (s Section) TargetOrientation() mgl32.Quat {
	return math.QuatFromEulerZYX(math.Deg2Rad(s.Tilt), math.Deg2Rad(s.Direction), math.Deg2Rad(s.Incline))
}

// Steps returns the number of generation steps at the given resolution.
// Any remainder of the length is dropped.
func (s Section) Steps(resolution float32) int {
	if resolution <= 0 {
		return 0
	}
	return int(s.Length / resolution)
}

// GenSection generates the geometry of one section starting at state and
// returns it with the state the next section starts from.
func GenSection(section Section, state GenState) (*SectionData, GenState) {
	steps := section.Steps(state.Resolution)
	halfWidth := float32(TrackWidth / 2)
	target := section.TargetOrientation()
	origin := state.Origin
	res := state.Resolution
	vStep := res / TrackWidth

	data := &SectionData{
		Position: origin,
		Bounds:   math.EmptyAABB(),
		Floor:    &Mesh{Vertices: make([]Vertex, 0, 2*steps*TrackWidth*3)},
		Walls:    &Mesh{Vertices: make([]Vertex, 0, 2*2*steps*3)},
		Segments: make([]Segment, 0, steps),
	}

	wallHeight := mgl32.Vec3{0, TrackWallHeight, 0}
	var stepOrigin mgl32.Vec3

	for step := 0; step < steps; step++ {
		tBottom := float32(step) / float32(steps)
		tTop := float32(step+1) / float32(steps)
		bottom := frameOf(math.Slerp(state.Orientation, target, tBottom))
		top := frameOf(math.Slerp(state.Orientation, target, tTop))

		// Alternate the strip width slightly between steps
		bottomWidth, topWidth := halfWidth-0.1, halfWidth
		if step&1 == 1 {
			bottomWidth, topWidth = halfWidth, halfWidth-0.1
		}

		bottomLeft := stepOrigin.Add(bottom.left.Mul(bottomWidth))
		bottomRight := stepOrigin.Add(bottom.left.Mul(-bottomWidth))
		topOrigin := stepOrigin.Add(bottom.direction.Mul(res))
		topLeft := topOrigin.Add(top.left.Mul(topWidth))
		topRight := topOrigin.Add(top.left.Mul(-topWidth))

		if step == 0 {
			data.Bounds.Encapsulate(bottomLeft.Add(origin))
			data.Bounds.Encapsulate(bottomRight.Add(origin))
		}
		data.Bounds.Encapsulate(topLeft.Add(origin))
		data.Bounds.Encapsulate(topRight.Add(origin))

		vBottom := state.UVCoordV
		vTop := vBottom + vStep

		// Floor, 1m wide quads across the strip
		for horiz := 0; horiz < TrackWidth; horiz++ {
			tL := float32(horiz) / TrackWidth
			tR := float32(horiz+1) / TrackWidth

			ptBottomL := math.LerpVec3(bottomLeft, bottomRight, tL)
			ptBottomR := math.LerpVec3(bottomLeft, bottomRight, tR)
			ptTopL := math.LerpVec3(topLeft, topRight, tL)
			ptTopR := math.LerpVec3(topLeft, topRight, tR)

			data.Floor.Vertices = append(data.Floor.Vertices,
				vertex(ptTopL, top.normal, tL, vTop),
				vertex(ptBottomR, bottom.normal, tR, vBottom),
				vertex(ptTopR, top.normal, tR, vTop),
				vertex(ptTopL, top.normal, tL, vTop),
				vertex(ptBottomL, bottom.normal, tL, vBottom),
				vertex(ptBottomR, bottom.normal, tR, vBottom),
			)
		}

		// Left wall runs bottomLeft -> topLeft and faces inward
		lwBottomLeft, lwBottomRight := bottomLeft, topLeft
		lwTopLeft, lwTopRight := bottomLeft.Add(wallHeight), topLeft.Add(wallHeight)
		lwNormalLeft, lwNormalRight := bottom.left.Mul(-1), top.left.Mul(-1)

		data.Walls.Vertices = append(data.Walls.Vertices,
			vertex(lwTopRight, lwNormalRight, vTop, 0),
			vertex(lwBottomLeft, lwNormalLeft, vBottom, 1),
			vertex(lwTopLeft, lwNormalLeft, vBottom, 0),
			vertex(lwTopRight, lwNormalRight, vTop, 0),
			vertex(lwBottomRight, lwNormalRight, vTop, 1),
			vertex(lwBottomLeft, lwNormalLeft, vBottom, 1),
		)

		// Right wall runs topRight -> bottomRight
		rwBottomLeft, rwBottomRight := topRight, bottomRight
		rwTopLeft, rwTopRight := topRight.Add(wallHeight), bottomRight.Add(wallHeight)
		rwNormalLeft, rwNormalRight := bottom.left, top.left

		data.Walls.Vertices = append(data.Walls.Vertices,
			vertex(rwTopRight, rwNormalRight, vBottom, 0),
			vertex(rwBottomLeft, rwNormalLeft, vTop, 1),
			vertex(rwTopLeft, rwNormalLeft, vTop, 0),
			vertex(rwTopRight, rwNormalRight, vBottom, 0),
			vertex(rwBottomRight, rwNormalRight, vBottom, 1),
			vertex(rwBottomLeft, rwNormalLeft, vTop, 1),
		)

		state.NextTorch -= res
		if state.NextTorch <= 0 {
			state.NextTorch += TrackTorchOffset
			data.Torches = append(data.Torches, placeTorch(lwBottomLeft, lwBottomRight, lwNormalLeft, origin))
		}

		data.Segments = append(data.Segments, Segment{
			Center:     stepOrigin.Add(bottom.direction.Mul(res / 2)).Add(origin),
			Direction:  top.direction,
			Normal:     top.normal,
			Left:       top.left,
			LeftFront:  bottomLeft.Add(origin),
			RightFront: bottomRight.Add(origin),
			LeftRear:   topLeft.Add(origin),
			RightRear:  topRight.Add(origin),
			HalfWidth:  TrackWidth / 2,
		})

		stepOrigin = topOrigin
		state.UVCoordV += vStep
	}

	state.Origin = origin.Add(stepOrigin)
	state.Orientation = target

	return data, state
}

// placeTorch puts a torch halfway along the left wall step at torch height,
// with reference points across the track along the inward wall normal.
func placeTorch(wallStart, wallEnd, inward, origin mgl32.Vec3) Torch {
	pos := math.LerpVec3(wallStart, wallEnd, 0.5)
	pos[1] = TorchHeight

	return Torch{
		LeftWallPos:  pos.Add(inward.Mul(TrackWidth * .05)).Add(origin),
		LightPos:     pos.Add(inward.Mul(TrackWidth * .5)).Add(origin),
		RightWallPos: pos.Add(inward.Mul(TrackWidth * .95)).Add(origin),
	}
}

func vertex(pos, normal mgl32.Vec3, u, v float32) Vertex {
	return Vertex{
		Position: [3]float32{pos[0], pos[1], pos[2]},
		Normal:   [3]float32{normal[0], normal[1], normal[2]},
		UV:       [2]float32{u, v},
	}
}
