// Package input handles SDL2 input events and tracks held keys and the
// first connected game controller.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Keys the game reacts to.
const (
	KeyLeft    = sdl.SCANCODE_LEFT
	KeyRight   = sdl.SCANCODE_RIGHT
	KeyReset   = sdl.SCANCODE_R
	KeyCamera  = sdl.SCANCODE_C
	KeyEscape  = sdl.SCANCODE_ESCAPE
	KeyCapture = sdl.SCANCODE_F12
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventFocusLost
	EventFocusGained
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	DeltaX int
	DeltaY int
	Button uint32 // pressed mouse buttons during a move
}

// Largest magnitude of a controller axis.
const axisMax = 32767

// Input handles all input processing.
type Input struct {
	events []Event
	down   map[sdl.Scancode]bool

	pad    *sdl.GameController
	padID  sdl.JoystickID
	stickX float32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		down:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED:
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				i.events = append(i.events, Event{Type: EventFocusLost})
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				i.events = append(i.events, Event{Type: EventFocusGained})
			}

		case *sdl.KeyboardEvent:
			key := e.Keysym.Scancode
			if e.Type == sdl.KEYDOWN {
				// Auto-repeat is not a new press
				if e.Repeat == 0 {
					i.events = append(i.events, Event{Type: EventKeyDown, Key: key})
				}
				i.down[key] = true
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{Type: EventKeyUp, Key: key})
				delete(i.down, key)
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				DeltaX: int(e.XRel),
				DeltaY: int(e.YRel),
				Button: e.State,
			})

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseWheel,
				DeltaY: int(e.Y),
			})

		case *sdl.ControllerDeviceEvent:
			switch e.Type {
			case sdl.CONTROLLERDEVICEADDED:
				if i.pad == nil {
					i.openPad(int(e.Which))
				}
			case sdl.CONTROLLERDEVICEREMOVED:
				if i.pad != nil && e.Which == i.padID {
					i.closePad()
				}
			}

		case *sdl.ControllerAxisEvent:
			if i.pad != nil && e.Which == i.padID && sdl.GameControllerAxis(e.Axis) == sdl.CONTROLLER_AXIS_LEFTX {
				i.stickX = max(float32(e.Value)/axisMax, -1)
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyDown checks if a key is currently held.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	return i.down[scancode]
}

// StickX returns the left stick deflection of the controller in [-1, 1],
// right positive, or 0 without a controller.
func (i *Input) StickX() float32 {
	return i.stickX
}

// Reset forgets held keys and stick deflection, e.g. after the window lost focus.
func (i *Input) Reset() {
	clear(i.down)
	i.stickX = 0
}

// Close releases the controller.
func (i *Input) Close() {
	i.closePad()
}

func (i *Input) openPad(index int) {
	pad := sdl.GameControllerOpen(index)
	if pad == nil {
		return
	}
	i.pad = pad
	i.padID = pad.Joystick().InstanceID()
}

func (i *Input) closePad() {
	if i.pad == nil {
		return
	}
	i.pad.Close()
	i.pad = nil
	i.stickX = 0
}
