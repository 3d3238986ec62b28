// Package game runs a round of the snowball game: the countdown, the
// per-tick physics and collision against the track, pickups and the scored
// end sequence.
package game

import (
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jonboulle/clockwork"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/snowtrack/internal/engine/audio"
	"github.com/Faultbox/snowtrack/internal/engine/camera"
	"github.com/Faultbox/snowtrack/internal/game/attachment"
	"github.com/Faultbox/snowtrack/internal/game/entity"
	"github.com/Faultbox/snowtrack/internal/logger"
	"github.com/Faultbox/snowtrack/internal/track"
	"github.com/Faultbox/snowtrack/pkg/math"
)

// Countdown timing.
const (
	countStep   = time.Second
	endLeadIn   = 2 * time.Second
	beepSeconds = 4 // timer beeps below this many whole seconds
)

// Errors returned by NewSession.
var (
	ErrNoTrack = errors.New("session needs a track")
	ErrNoPool  = errors.New("session needs an attachment pool")
)

// Input is the control state sampled for one tick.
type Input struct {
	Left  bool
	Right bool
	Reset bool
	Tilt  float32 // device tilt in degrees, 0 when unavailable
}

// Deps are the collaborators of a session.
type Deps struct {
	Track  *track.Track
	Pool   *attachment.Pool
	Camera *camera.ChaseCamera
	Cues   audio.CuePlayer
	Clock  clockwork.Clock
}

// Session is one game on a fixed track. The track is built once and reused
// by every round; Reset starts a new round.
type Session struct {
	id     uuid.UUID
	track  *track.Track
	player *entity.Player
	pool   *attachment.Pool
	camera *camera.ChaseCamera
	cues   audio.CuePlayer
	clock  clockwork.Clock
	tuning Tuning
	log    *zap.Logger

	playerModel track.MeshHandle

	// Round state
	mode        Mode
	nextMode    time.Time
	timeLeft    float32
	endStep     int
	nextEndStep time.Time
	onFloor     bool
	speed       int // readout in km/h

	// Last successful localization, kept across misses.
	location track.LocationInfo
	located  bool

	// Track location the camera follows.
	camSection int
	camSegment int

	events []Event
}

// NewSession creates a session in ModeWait. Call Reset to start the first round.
// Track and Pool are required; the other deps have defaults.
func NewSession(deps Deps, tuning Tuning) (*Session, error) {
	if deps.Track == nil {
		return nil, ErrNoTrack
	}
	if deps.Pool == nil {
		return nil, ErrNoPool
	}
	if deps.Cues == nil {
		deps.Cues = audio.Nop{}
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Camera == nil {
		deps.Camera = camera.NewChaseCamera(1)
	}

	s := &Session{
		id:       uuid.New(),
		track:    deps.Track,
		player:   entity.NewPlayer(tuning.Mass),
		pool:     deps.Pool,
		camera:   deps.Camera,
		cues:     deps.Cues,
		clock:    deps.Clock,
		tuning:   tuning,
		log:      logger.Named("game"),
		mode:     ModeWait,
		timeLeft: tuning.RoundSeconds,
	}
	s.player.SetRadius(tuning.InitialRadius)

	if seg := s.cameraSegment(); seg != nil {
		s.camera.Pos[1] = seg.Center.Y() + 1.5
	}
	return s, nil
}

func (s *Session) ID() uuid.UUID                 { return s.id }
func (s *Session) Mode() Mode                    { return s.mode }
func (s *Session) Player() *entity.Player        { return s.player }
func (s *Session) Camera() *camera.ChaseCamera   { return s.camera }
func (s *Session) Track() *track.Track           { return s.track }
func (s *Session) Attachments() *attachment.Pool { return s.pool }
func (s *Session) TimeLeft() float32             { return s.timeLeft }
func (s *Session) OnFloor() bool                 { return s.onFloor }

// BindPlayerModel sets the mesh drawn for the ball.
func (s *Session) BindPlayerModel(h track.MeshHandle) { s.playerModel = h }

// Location returns the last place the player was found on the track.
func (s *Session) Location() (track.LocationInfo, bool) {
	return s.location, s.located
}

// Events drains the presentation events raised since the last call.
func (s *Session) Events() []Event {
	events := s.events
	s.events = nil
	return events
}

// Reset starts a new round without rebuilding the track.
func (s *Session) Reset() {
	s.id = uuid.New()
	s.pool.Disperse(s.track)

	s.timeLeft = s.tuning.RoundSeconds
	s.setMode(ModeCountdown)
	s.endStep = 0
	s.speed = 0

	r := s.tuning.InitialRadius
	s.player.SetRadius(r)
	s.player.MoveTo(mgl32.Vec3{0, r, 2})
	if loc, ok := s.track.FindObject(columnBounds(s.player.Bounds()), s.player.Position()); ok {
		s.camSection, s.camSegment = loc.SectionIx, loc.SegmentIx
	}
	s.camera.Reset(mgl32.Vec3{})
	s.player.Body().Stop()
	s.nextMode = s.clock.Now().Add(countStep)

	s.cues.StopMusic()
	s.cues.StopSnow()

	s.log.Info("round reset", zap.String("session", s.id.String()))
}

// Resume restarts the loops of a round in play, with the music at the
// elapsed play time.
func (s *Session) Resume() {
	if s.mode == ModePlay {
		s.cues.StartSnow()
		s.cues.StartMusic(float64(s.tuning.RoundSeconds - s.timeLeft))
	}
}

// Suspend silences the loops while the game is in the background.
func (s *Session) Suspend() {
	s.cues.StopSnow()
	if s.mode == ModePlay {
		s.cues.StopMusic()
	}
}

// Step advances the round by timeStep seconds.
func (s *Session) Step(timeStep float32, in Input) {
	if in.Reset {
		s.Reset()
		return
	}

	bounds := columnBounds(s.player.Bounds())
	loc, found := s.track.FindObject(bounds, s.player.Position())
	if found {
		s.location, s.located = loc, true
	}

	switch s.mode {
	case ModePlay:
		s.tickTimer(timeStep)
	case ModeEnd:
		s.handleEndSteps()
	}

	if !s.mode.Simulated() {
		found = false
	}

	body := s.player.Body()
	speed := body.Velocity().Len()

	if found {
		s.camSection, s.camSegment = loc.SectionIx, loc.SegmentIx
		s.steer(timeStep, in, loc.Segment, speed)
		vel := s.resolveWalls(&loc, body.Velocity())
		s.resolveFloor(&loc, vel)
		if s.mode == ModePlay {
			s.collectPickups(loc.SectionIx, bounds)
		}
	}

	if s.mode.Simulated() {
		if s.mode == ModePlay {
			body.AddForce(mgl32.Vec3{0, -s.tuning.Gravity * body.Mass(), 0})
		}
		body.Simulate(timeStep)
	}

	if s.mode == ModePlay {
		s.player.Grow(s.tuning.GrowthRate * timeStep)
	}

	s.cues.SetPlayerInfo(s.onFloor, speed)
	s.pool.Update(timeStep, s.player.Radius())
	if seg := s.cameraSegment(); seg != nil {
		s.camera.Update(timeStep, s.player.Position(), s.player.Radius(), seg.Direction)
	}

	s.updateSpeedReadout()
	s.advanceCountdown()
}

// tickTimer runs the round timer, beeping on the last whole seconds and
// ending the round at zero.
func (s *Session) tickTimer(timeStep float32) {
	old := int(s.timeLeft)
	s.timeLeft -= timeStep
	now := int(s.timeLeft)
	if now < beepSeconds && old != now {
		s.cues.Play(audio.CueCount1)
	}

	if s.timeLeft <= 0 {
		s.setMode(ModeEnd)
		s.endStep = 0
		s.nextEndStep = s.clock.Now().Add(endLeadIn)

		s.cues.Play(audio.CueCount2)
		s.cues.StopSnow()
		s.player.Body().Stop()
		s.speed = 0

		s.log.Info("round over",
			zap.String("session", s.id.String()),
			zap.Int("items", s.pool.AttachedCount()),
			zap.Int("section", s.camSection))
	}
}

// steer applies the player's side force, regulates forward speed and leans
// the ball. Outside play the ball just spins.
func (s *Session) steer(timeStep float32, in Input, seg *track.Segment, speed float32) {
	body := s.player.Body()
	if s.mode != ModePlay {
		body.SetAngularVelocity(mgl32.Vec3{.2, -.15, .3})
		return
	}

	mass := body.Mass()
	var side float32
	switch {
	case in.Left:
		side = mass * s.tuning.SideForce
	case in.Right:
		side = -mass * s.tuning.SideForce
	case in.Tilt != 0:
		side = mass * math.Clamp(in.Tilt, -s.tuning.MaxTilt, s.tuning.MaxTilt) * s.tuning.TiltForce
	}
	body.AddForce(seg.Left.Mul(side * timeStep))

	switch {
	case speed < s.tuning.MinSpeed:
		body.AddForce(seg.Direction.Mul(s.tuning.Propulsion * mass * timeStep))
	case speed > s.tuning.MaxSpeed:
		body.AddForce(seg.Direction.Mul(-s.tuning.Propulsion * mass * timeStep))
	}

	vel := body.Velocity()
	body.Rotate(math.QuatFromEulerZYX(vel.X()/-80, 0, vel.Z()/80))
}

// resolveWalls pushes the ball off either track edge and bounces it back.
// Both edges are tested against the horizontal position of the same
// localization. The resulting velocity is returned.
func (s *Session) resolveWalls(loc *track.LocationInfo, vel mgl32.Vec3) mgl32.Vec3 {
	body := s.player.Body()
	r := s.player.Radius()
	left := loc.Segment.Left
	lift := mgl32.Vec3{0, body.Mass() * s.tuning.WallLift, 0}

	if loc.SegHorizPos < r {
		pushOut := r - loc.SegHorizPos + wallSkin
		s.player.Move(left.Mul(-pushOut))
		vel = math.Reflect(vel, left.Mul(-1)).Mul(s.tuning.WallRestitution)
		body.SetVelocity(vel)
		body.AddForce(lift)
		s.cues.Play(audio.CueWallHit)
	}

	if loc.SegHorizPos > track.TrackWidth-r {
		pushOut := loc.SegHorizPos - (track.TrackWidth - r) + wallSkin
		s.player.Move(left.Mul(pushOut))
		vel = math.Reflect(vel, left).Mul(s.tuning.WallRestitution)
		body.SetVelocity(vel)
		body.AddForce(lift)
		s.cues.Play(audio.CueWallHit)
	}

	return vel
}

// resolveFloor keeps the ball on top of the floor. Soft landings stop
// vertical motion, hard ones bounce with almost all vertical speed removed.
func (s *Session) resolveFloor(loc *track.LocationInfo, vel mgl32.Vec3) {
	body := s.player.Body()
	r := s.player.Radius()
	pos := s.player.Position()
	floorY := loc.TrackYAtPos

	s.onFloor = pos.Y()-r < floorY+floorSkin
	if pos.Y()-r >= floorY {
		return
	}

	s.player.MoveTo(mgl32.Vec3{pos.X(), floorY + r, pos.Z()})

	normal := loc.Segment.Normal
	if relDown := -vel.Dot(normal); relDown > bounceThreshold {
		out := math.Reflect(vel, normal)
		body.SetVelocity(mgl32.Vec3{out.X(), out.Y() * bounceDamping, out.Z()})
	} else {
		body.SetVelocity(mgl32.Vec3{vel.X(), 0, vel.Z()})
	}
}

// collectPickups attaches every loose decoration of the section the player
// touches.
func (s *Session) collectPickups(sectionIx int, bounds math.AABB) {
	for _, inst := range s.pool.InSection(sectionIx) {
		if inst.Attached || !inst.Bounds.Intersects(bounds) {
			continue
		}
		s.pool.Attach(inst, s.player.Position(), s.player.Rotation())
		s.cues.Play(audio.CuePickup)

		s.log.Debug("picked up",
			zap.Stringer("kind", inst.Kind),
			zap.Int("section", sectionIx),
			zap.Int("items", s.pool.AttachedCount()))
	}
}

// advanceCountdown moves through the count modes one second at a time.
func (s *Session) advanceCountdown() {
	now := s.clock.Now()

	switch s.mode {
	case ModeCountdown:
		s.setMode(ModeCount3)
		s.cues.Play(audio.CueCount1)
		s.nextMode = now.Add(countStep)
	case ModeCount3, ModeCount2:
		if now.After(s.nextMode) {
			s.setMode(s.mode + 1)
			s.cues.Play(audio.CueCount1)
			s.nextMode = now.Add(countStep)
		}
	case ModeCount1:
		if now.After(s.nextMode) {
			s.setMode(ModePlay)
			s.cues.Play(audio.CueCount2)
			s.cues.StartMusic(0)
			s.cues.StartSnow()
		}
	}
}

// setMode changes mode when the transition table allows it.
func (s *Session) setMode(next Mode) bool {
	if err := checkTransition(s.mode, next); err != nil {
		s.log.Warn("mode change rejected", zap.Error(err))
		return false
	}
	s.mode = next
	s.emit(Event{Kind: EventMode, Mode: next})
	return true
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *Session) cameraSegment() *track.Segment {
	section := s.track.Section(s.camSection)
	if section == nil || s.camSegment < 0 || s.camSegment >= len(section.Segments) {
		return nil
	}
	return &section.Segments[s.camSegment]
}

// columnBounds stretches b vertically so a falling or bouncing ball is still
// matched against the floor below it.
func columnBounds(b math.AABB) math.AABB {
	b.Min[1] = -locateHalfSpan
	b.Max[1] = locateHalfSpan
	return b
}
