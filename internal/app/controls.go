package app

import (
	"github.com/Faultbox/snowtrack/internal/game"
)

// StickDeadZone is the share of stick travel around the centre that reads as zero.
const StickDeadZone = 0.15

// Controls is the raw control state of one frame.
type Controls struct {
	Left   bool
	Right  bool
	Reset  bool
	// StickX is the horizontal stick deflection in [-1, 1], right positive.
	StickX float32
}

// SteerInput maps controls to session input. Held keys win over the
// stick; the stick is read as a tilt toward its side of up to maxTilt
// degrees.
func SteerInput(c Controls, maxTilt float32) game.Input {
	in := game.Input{Left: c.Left, Right: c.Right, Reset: c.Reset}
	if c.Left || c.Right {
		return in
	}

	x := min(max(c.StickX, -1), 1)
	switch {
	case x > StickDeadZone:
		x = (x - StickDeadZone) / (1 - StickDeadZone)
	case x < -StickDeadZone:
		x = (x + StickDeadZone) / (1 - StickDeadZone)
	default:
		return in
	}
	// positive tilt pushes toward the left wall
	in.Tilt = -x * maxTilt
	return in
}
