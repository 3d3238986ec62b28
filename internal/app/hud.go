package app

import (
	"fmt"
	"strings"

	"github.com/Faultbox/snowtrack/internal/game"
)

// Title is the window title and HUD prefix.
const Title = "Snowtrack"

// HUD collects the session events into the one line readout shown in the
// window title.
type HUD struct {
	mode game.Mode

	// End screen reveals, -1 until raised
	pebbles int
	carrots int
	hats    int
	title   string
}

// NewHUD creates an empty HUD.
func NewHUD() *HUD {
	h := &HUD{}
	h.clear()
	return h
}

func (h *HUD) clear() {
	h.pebbles, h.carrots, h.hats = -1, -1, -1
	h.title = ""
}

// Apply folds events into the HUD state.
func (h *HUD) Apply(events []game.Event) {
	for _, e := range events {
		switch e.Kind {
		case game.EventMode:
			h.mode = e.Mode
			if e.Mode == game.ModeCountdown {
				h.clear()
			}
		case game.EventPebbles:
			h.pebbles = e.Count
		case game.EventCarrots:
			h.carrots = e.Count
		case game.EventHats:
			h.hats = e.Count
		case game.EventTitle:
			h.title = e.Title
		}
	}
}

// Line renders the readout. fps is left out when negative.
func (h *HUD) Line(stats game.Stats, fps int) string {
	var b strings.Builder
	b.WriteString(Title)

	switch h.mode {
	case game.ModeCount3:
		b.WriteString("  3")
	case game.ModeCount2:
		b.WriteString("  2")
	case game.ModeCount1:
		b.WriteString("  1")
	case game.ModePlay:
		fmt.Fprintf(&b, "  items %d  time %d  %d km/h", stats.Items, stats.SecondsLeft, stats.Speed)
	case game.ModeEnd:
		for _, part := range []struct {
			name  string
			count int
		}{
			{"pebbles", h.pebbles},
			{"carrots", h.carrots},
			{"hats", h.hats},
		} {
			if part.count >= 0 {
				fmt.Fprintf(&b, "  %s %d", part.name, part.count)
			}
		}
		if h.title != "" {
			fmt.Fprintf(&b, "  %q  (R to play again)", h.title)
		}
	}

	if fps >= 0 {
		fmt.Fprintf(&b, "  [%d fps]", fps)
	}
	return b.String()
}
