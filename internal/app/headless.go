package app

import (
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Faultbox/snowtrack/internal/game"
	"github.com/Faultbox/snowtrack/internal/game/attachment"
)

// ErrStepLimit is returned when a headless round does not finish in time.
var ErrStepLimit = errors.New("round did not finish within the step limit")

// Pilot chooses the input for the next tick.
type Pilot func(s *game.Session) game.Input

// CenterPilot steers back toward the middle of the track whenever the ball
// strays into the outer thirds.
func CenterPilot(s *game.Session) game.Input {
	loc, ok := s.Location()
	if !ok {
		return game.Input{}
	}
	switch {
	case loc.SegRelHorizPos < 1.0/3:
		return game.Input{Right: true}
	case loc.SegRelHorizPos > 2.0/3:
		return game.Input{Left: true}
	}
	return game.Input{}
}

// Result summarizes a finished round.
type Result struct {
	Steps    int
	Played   time.Duration // simulated time from reset to the title
	Pebbles  int
	Carrots  int
	Hats     int
	Title    string
	Section  int // last section the ball was found in
	Distance float32
}

// RunRound plays the current round of w to its title with a fixed time
// step. The session must be driven by clock, which advances by one step
// before each tick.
func RunRound(w *World, clock *clockwork.FakeClock, dt float32, pilot Pilot, maxSteps int) (Result, error) {
	if pilot == nil {
		pilot = func(*game.Session) game.Input { return game.Input{} }
	}
	s := w.Session
	step := time.Duration(float64(dt) * float64(time.Second))
	start := s.Player().Position()

	var res Result
	for res.Steps < maxSteps {
		clock.Advance(step)
		s.Step(dt, pilot(s))
		res.Steps++

		for _, e := range s.Events() {
			switch e.Kind {
			case game.EventPebbles:
				res.Pebbles = e.Count
			case game.EventCarrots:
				res.Carrots = e.Count
			case game.EventHats:
				res.Hats = e.Count
			case game.EventTitle:
				res.Title = e.Title
			}
		}
		if res.Title != "" {
			break
		}
	}

	res.Played = time.Duration(res.Steps) * step
	if loc, ok := s.Location(); ok {
		res.Section = loc.SectionIx
	}
	res.Distance = s.Player().Position().Sub(start).Len()

	if res.Title == "" {
		res.Pebbles = w.Pool.AttachedCountOf(attachment.KindPebble)
		res.Carrots = w.Pool.AttachedCountOf(attachment.KindCarrot)
		res.Hats = w.Pool.AttachedCountOf(attachment.KindHat)
		return res, ErrStepLimit
	}
	return res, nil
}
