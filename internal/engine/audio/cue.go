package audio

import "github.com/Faultbox/snowtrack/pkg/math"

// Cue is a named fire-and-forget sound effect.
type Cue uint8

const (
	CueCount1 Cue = iota
	CueCount2
	CuePickup
	CueWallHit
	CueFanfare
	CueSlam

	cueCount
)

var cueNames = [cueCount]string{"count1", "count2", "pickup", "wallhit", "fanfare", "slam"}

func (c Cue) String() string {
	if c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Gain returns the playback volume of a cue.
func (c Cue) Gain() float64 {
	switch c {
	case CueCount1, CueCount2:
		return 1
	case CuePickup, CueWallHit:
		return .5
	case CueFanfare:
		return .4
	case CueSlam:
		return .7
	default:
		return 0
	}
}

// Jitters reports whether the cue gets a random playback rate.
func (c Cue) Jitters() bool {
	return c == CuePickup || c == CueWallHit
}

// Cues returns every cue in declaration order.
func Cues() []Cue {
	cues := make([]Cue, cueCount)
	for i := range cues {
		cues[i] = Cue(i)
	}
	return cues
}

// Fixed loop gains.
const (
	MusicGain    = 0.8
	AirSnowGain  = 0.05
	maxSnowGain  = .35
	snowTopSpeed = 12
)

// SnowGain returns the rolling-snow loop volume for the player state.
func SnowGain(onFloor bool, speed float32) float64 {
	if !onFloor {
		return AirSnowGain
	}
	rel := float64(math.Clamp01(float32(int(speed)) / snowTopSpeed))
	return maxSnowGain * rel * rel
}

// CuePlayer is what the simulation needs from the sound system.
type CuePlayer interface {
	Play(cue Cue)
	StartMusic(offsetSeconds float64)
	StopMusic()
	StartSnow()
	StopSnow()
	SetPlayerInfo(onFloor bool, speed float32)
}

// Nop is a CuePlayer that plays nothing.
type Nop struct{}

func (Nop) Play(Cue)                   {}
func (Nop) StartMusic(float64)         {}
func (Nop) StopMusic()                 {}
func (Nop) StartSnow()                 {}
func (Nop) StopSnow()                  {}
func (Nop) SetPlayerInfo(bool, float32) {}

var (
	_ CuePlayer = Nop{}
	_ CuePlayer = (*Manager)(nil)
)
