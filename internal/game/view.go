package game

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/snowtrack/internal/track"
)

// DrawItem is one model to render this frame.
type DrawItem struct {
	Mesh      track.MeshHandle
	Transform mgl32.Mat4
}

// Stats is the HUD readout.
type Stats struct {
	Items       int
	SecondsLeft int
	Speed       int // km/h along the track
}

// DrawList returns the models around the player: the sections from one
// behind the player up to lookahead-1 ahead with their loose decorations,
// then every attached decoration and the ball itself. Nothing but the held
// decorations and the ball is listed before the player has been localized.
func (s *Session) DrawList(lookahead int) []DrawItem {
	var items []DrawItem
	if s.located {
		from := max(0, s.location.SectionIx-1)
		to := min(s.track.SectionCount(), s.location.SectionIx+lookahead-1)
		items = s.appendSections(items, from, to)
	}
	return s.appendPlayer(items)
}

// TrackDrawList returns every section of the track with its loose
// decorations, then the held decorations and the ball, wherever the
// player is.
func (s *Session) TrackDrawList() []DrawItem {
	items := s.appendSections(nil, 0, s.track.SectionCount())
	return s.appendPlayer(items)
}

func (s *Session) appendSections(items []DrawItem, from, to int) []DrawItem {
	for si := from; si < to; si++ {
		section := s.track.Section(si)
		p := section.Position
		base := mgl32.Translate3D(p[0], p[1], p[2])
		items = append(items,
			DrawItem{Mesh: section.FloorModel, Transform: base},
			DrawItem{Mesh: section.WallModel, Transform: base})

		for _, inst := range s.pool.InSection(si) {
			if !inst.Attached {
				items = append(items, DrawItem{Mesh: inst.Model, Transform: inst.Transform(mgl32.Ident4())})
			}
		}
	}
	return items
}

func (s *Session) appendPlayer(items []DrawItem) []DrawItem {
	parent := s.player.Transform()
	for _, inst := range s.pool.Attached() {
		items = append(items, DrawItem{Mesh: inst.Model, Transform: inst.Transform(parent)})
	}
	return append(items, DrawItem{Mesh: s.playerModel, Transform: parent})
}

// TorchLights returns the torches to light around the player.
func (s *Session) TorchLights() []track.Torch {
	return s.track.FindClosestTorches(s.player.Position(), s.tuning.TorchLights)
}

// Stats returns the HUD readout.
func (s *Session) Stats() Stats {
	return Stats{
		Items:       s.pool.AttachedCount(),
		SecondsLeft: max(0, int(gomath.Ceil(float64(s.timeLeft)))),
		Speed:       s.speed,
	}
}

// updateSpeedReadout projects the ball's XZ velocity onto the track direction.
// The readout holds its value while the ball is not moving over the ground plane.
func (s *Session) updateSpeedReadout() {
	if !s.located || s.mode == ModeEnd {
		return
	}
	vel := s.player.Velocity()
	planar := mgl32.Vec2{vel.X(), vel.Z()}
	worldSpeed := planar.Len()
	if worldSpeed <= 0 {
		return
	}

	dir := s.location.Segment.Direction
	trackDir := mgl32.Vec2{dir.X(), dir.Z()}
	if trackDir.Len() == 0 {
		return
	}
	speed := worldSpeed * planar.Normalize().Dot(trackDir.Normalize())
	s.speed = roundHalfUp(float64(speed) * 3.6)
}

// roundHalfUp rounds to the nearest integer with halves going up, so -2.5
// becomes -2.
func roundHalfUp(x float64) int {
	return int(gomath.Floor(x + 0.5))
}
