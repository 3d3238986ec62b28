package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/snowtrack/internal/engine/audio"
	"github.com/Faultbox/snowtrack/internal/game/attachment"
)

// EventKind identifies a presentation event.
type EventKind uint8

const (
	EventMode    EventKind = iota // Mode changed
	EventPebbles                  // Count is the pebble total
	EventCarrots                  // Count is the carrot total
	EventHats                     // Count is the hat total
	EventTitle                    // Title is the achievement title
)

// Event is raised for the presentation layer, which owns all overlays.
type Event struct {
	Kind  EventKind
	Mode  Mode
	Count int
	Title string
}

// Section past which a run counts as having reached the finish.
const finishSection = 37

// endSteps are the reveals of the result screen. Each waits for the delay
// of the previous one.
var endSteps = [...]struct {
	kind  EventKind
	cue   audio.Cue
	delay time.Duration
}{
	{EventPebbles, audio.CueSlam, time.Second},
	{EventCarrots, audio.CueSlam, time.Second},
	{EventHats, audio.CueSlam, 2 * time.Second},
	{EventTitle, audio.CueFanfare, 0},
}

// handleEndSteps reveals the next part of the result once its time has come.
func (s *Session) handleEndSteps() {
	if s.endStep >= len(endSteps) {
		return
	}
	now := s.clock.Now()
	if !now.After(s.nextEndStep) {
		return
	}

	step := endSteps[s.endStep]
	s.endStep++

	pebbles := s.pool.AttachedCountOf(attachment.KindPebble)
	carrots := s.pool.AttachedCountOf(attachment.KindCarrot)
	hats := s.pool.AttachedCountOf(attachment.KindHat)

	e := Event{Kind: step.kind}
	switch step.kind {
	case EventPebbles:
		e.Count = pebbles
	case EventCarrots:
		e.Count = carrots
	case EventHats:
		e.Count = hats
	case EventTitle:
		e.Title = AchievementTitle(pebbles, carrots, hats, s.camSection)
		s.log.Info("achievement",
			zap.String("session", s.id.String()),
			zap.String("title", e.Title))
	}
	s.emit(e)
	s.cues.Play(step.cue)
	s.nextEndStep = now.Add(step.delay)
}

// Title returns the achievement title for the current haul.
func (s *Session) Title() string {
	return AchievementTitle(
		s.pool.AttachedCountOf(attachment.KindPebble),
		s.pool.AttachedCountOf(attachment.KindCarrot),
		s.pool.AttachedCountOf(attachment.KindHat),
		s.camSection)
}

// AchievementTitle names a result. Special combinations beat the base title
// and reaching the finish beats both.
func AchievementTitle(pebbles, carrots, hats, furthestSection int) string {
	total := pebbles + carrots + hats

	var title string
	switch {
	case total == 0:
		title = "Clean Slate"
	case total < 10:
		title = "Lightweight"
	case total < 17:
		title = "Hodge Podge"
	case total < 23:
		title = "Packrat"
	case total < 28:
		title = "Hoarder"
	default:
		title = "Item Magnet"
	}

	switch {
	case pebbles == 0 && carrots == 0 && hats == 1:
		title = "Gentleman"
	case pebbles == 0 && carrots == 1 && hats == 0:
		title = "Visionary"
	case pebbles == 1 && carrots == 0 && hats == 0:
		title = "The Rock"
	case pebbles == 1 && carrots == 1 && hats == 1:
		title = "Curator"
	case pebbles > 3 && carrots == 1 && hats == 1:
		title = "True Snowman"
	case pebbles > 4 && carrots == 0 && hats == 0:
		title = "Zen Garden"
	case pebbles == 0 && carrots > 4 && hats == 0:
		title = "Vegetarian"
	case pebbles == 0 && carrots == 0 && hats > 4:
		title = "King of New York"
	}

	if furthestSection > finishSection {
		if total > 15 {
			title = "Expert"
		} else {
			title = "Speed Racer"
		}
	}
	return title
}
