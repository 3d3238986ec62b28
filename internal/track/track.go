package track

import (
	"encoding/binary"
	"errors"
	gomath "math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/snowtrack/internal/logger"
	"github.com/Faultbox/snowtrack/pkg/math"
)

// ErrEmptySpec is returned when building a track from a spec with no sections.
var ErrEmptySpec = errors.New("track spec has no sections")

// Track is the generated course. It is immutable after Build apart from the
// mesh handles bound by the renderer.
type Track struct {
	sections []SectionData
	torches  []Torch
}

// Build generates every section of spec in order, each one starting where the
// previous one ended. The final generator state is returned alongside.
func Build(spec Spec) (*Track, GenState, error) {
	state := NewGenState()
	if len(spec) == 0 {
		return nil, state, ErrEmptySpec
	}

	log := logger.Named("track")
	t := &Track{sections: make([]SectionData, 0, len(spec))}

	for i, section := range spec {
		var data *SectionData
		data, state = GenSection(section, state)
		t.sections = append(t.sections, *data)
		t.torches = append(t.torches, data.Torches...)

		log.Debug("generated section",
			zap.Int("section", i),
			zap.Int("segments", len(data.Segments)),
			zap.Int("torches", len(data.Torches)))
	}

	log.Info("track built",
		zap.Int("sections", len(t.sections)),
		zap.Int("torches", len(t.torches)),
		zap.Float32("length", spec.TotalLength()))

	return t, state, nil
}

// SectionCount returns the number of sections.
func (t *Track) SectionCount() int {
	return len(t.sections)
}

// Sections returns all sections in generation order.
func (t *Track) Sections() []SectionData {
	return t.sections
}

// Section returns the section at index i, or nil when out of range.
func (t *Track) Section(i int) *SectionData {
	if i < 0 || i >= len(t.sections) {
		return nil
	}
	return &t.sections[i]
}

// Torches returns all torches in generation order.
func (t *Track) Torches() []Torch {
	return t.torches
}

// Bounds returns the world-space box around every section floor.
func (t *Track) Bounds() math.AABB {
	box := math.EmptyAABB()
	for i := range t.sections {
		box.Encapsulate(t.sections[i].Bounds.Min)
		box.Encapsulate(t.sections[i].Bounds.Max)
	}
	return box
}

// FindObject localizes point on the track. Sections whose bounds do not
// intersect bounds are skipped. The first segment, in section then segment
// order, whose ratios both fall inside the tolerance band wins.
func (t *Track) FindObject(bounds math.AABB, point mgl32.Vec3) (LocationInfo, bool) {
	for sectionIx := range t.sections {
		section := &t.sections[sectionIx]
		if !bounds.Intersects(section.Bounds) {
			continue
		}

		for segmentIx := range section.Segments {
			segment := &section.Segments[segmentIx]

			relPos := point.Sub(segment.Center)
			segHorizPos := segment.HalfWidth - relPos.Dot(segment.Left)
			segRelHorizPos := segHorizPos / (2 * segment.HalfWidth)
			if segRelHorizPos < -SeamTolerance || segRelHorizPos > 1+SeamTolerance {
				continue
			}

			front := math.LerpVec3(segment.LeftFront, segment.RightFront, segRelHorizPos)
			rear := math.LerpVec3(segment.LeftRear, segment.RightRear, segRelHorizPos)
			line := rear.Sub(front)
			lineLenSq := line.LenSqr()
			if lineLenSq == 0 {
				continue
			}

			segRelVertPos := point.Sub(front).Dot(line) / lineLenSq
			if segRelVertPos < -SeamTolerance || segRelVertPos > 1+SeamTolerance {
				continue
			}

			return LocationInfo{
				SectionIx:      sectionIx,
				SegmentIx:      segmentIx,
				Section:        section,
				Segment:        segment,
				SegLineFront:   front,
				SegLineRear:    rear,
				SegLine:        line,
				SegHorizPos:    segHorizPos,
				SegRelHorizPos: segRelHorizPos,
				SegRelVertPos:  segRelVertPos,
				TrackYAtPos:    front[1] + (rear[1]-front[1])*segRelVertPos,
			}, true
		}
	}

	return LocationInfo{}, false
}

// FindClosestTorches returns the torch nearest to point followed by the next
// torches along the track, at most limit in total.
func (t *Track) FindClosestTorches(point mgl32.Vec3, limit int) []Torch {
	if limit <= 0 || len(t.torches) == 0 {
		return []Torch{}
	}

	nearest := -1
	nearestDistSq := float32(gomath.MaxFloat32)
	for i := range t.torches {
		if d := math.DistSq(t.torches[i].LightPos, point); d < nearestDistSq {
			nearest = i
			nearestDistSq = d
		}
	}
	if nearest < 0 {
		return []Torch{}
	}

	end := min(nearest+limit, len(t.torches))
	result := make([]Torch, end-nearest)
	copy(result, t.torches[nearest:end])
	return result
}

// Fingerprint hashes every segment corner and torch position. Two builds of
// the same spec produce the same value.
func (t *Track) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [12]byte

	writeVec := func(v mgl32.Vec3) {
		binary.LittleEndian.PutUint32(buf[0:], gomath.Float32bits(v[0]))
		binary.LittleEndian.PutUint32(buf[4:], gomath.Float32bits(v[1]))
		binary.LittleEndian.PutUint32(buf[8:], gomath.Float32bits(v[2]))
		_, _ = h.Write(buf[:])
	}

	for i := range t.sections {
		for _, seg := range t.sections[i].Segments {
			writeVec(seg.LeftFront)
			writeVec(seg.RightFront)
			writeVec(seg.LeftRear)
			writeVec(seg.RightRear)
		}
	}
	for _, torch := range t.torches {
		writeVec(torch.LightPos)
		writeVec(torch.LeftWallPos)
		writeVec(torch.RightWallPos)
	}

	return h.Sum64()
}
