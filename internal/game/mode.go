package game

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a mode change is not in the transition table.
var ErrInvalidTransition = errors.New("invalid mode transition")

// Mode is the phase of a round.
type Mode uint8

const (
	ModeWait Mode = iota
	ModeCountdown
	ModeCount3
	ModeCount2
	ModeCount1
	ModePlay
	ModeEnd

	modeCount
)

var modeNames = [modeCount]string{
	ModeWait:      "wait",
	ModeCountdown: "countdown",
	ModeCount3:    "count-3",
	ModeCount2:    "count-2",
	ModeCount1:    "count-1",
	ModePlay:      "play",
	ModeEnd:       "end",
}

func (m Mode) String() string {
	if m >= modeCount {
		return fmt.Sprintf("mode(%d)", m)
	}
	return modeNames[m]
}

// Simulated reports whether physics runs in this mode.
func (m Mode) Simulated() bool {
	return m == ModePlay || m == ModeEnd
}

// transitions lists the modes each mode may advance to. A reset into
// ModeCountdown is allowed from everywhere and is checked separately.
var transitions = [modeCount][]Mode{
	ModeWait:   {ModeCountdown},
	ModeCount3: {ModeCount2},
	ModeCount2: {ModeCount1},
	ModeCount1: {ModePlay},
	ModePlay:   {ModeEnd},

	ModeCountdown: {ModeCount3},
}

// CanTransition reports whether m may change to next.
func (m Mode) CanTransition(next Mode) bool {
	if m >= modeCount || next >= modeCount {
		return false
	}
	if next == ModeCountdown {
		return true
	}
	for _, allowed := range transitions[m] {
		if allowed == next {
			return true
		}
	}
	return false
}

func checkTransition(from, to Mode) error {
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
