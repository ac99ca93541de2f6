// Package input translates SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventMouseDown
	EventMouseUp
	EventMouseMove
	EventWheel
	EventTouchDown
	EventTouchMove
	EventTouchUp
	EventContextLost
	EventContextRestored
	EventDisplayChanged
)

// Event is a processed input event.
type Event struct {
	Type EventType
	Key  sdl.Keycode
	// Width and Height are set for EventResize, in logical pixels.
	Width  int
	Height int
	// DX and DY are the motion of a mouse move in pixels, or of a touch
	// move as a fraction of the window.
	DX, DY float32
	Button uint8
	// Wheel is positive when scrolling away from the user.
	Wheel float32
	// Touches is the number of fingers down after a touch event.
	Touches int
}

// touchMouseID marks mouse events SDL synthesizes from touches.
const touchMouseID = 0xFFFFFFFF

// Input collects the events of one frame.
type Input struct {
	events  []Event
	fingers map[sdl.FingerID]struct{}
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		fingers: make(map[sdl.FingerID]struct{}),
	}
}

// Update polls SDL events. It returns true when the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := i.Translate(event); ok {
			i.events = append(i.events, e)
			quit = quit || e.Type == EventQuit
		}
	}
	return quit
}

// Translate converts one SDL event. ok is false for events the viewer
// ignores.
func (i *Input) Translate(event sdl.Event) (Event, bool) {
	switch event.GetType() {
	case sdl.APP_WILLENTERBACKGROUND:
		return Event{Type: EventContextLost}, true
	case sdl.APP_DIDENTERFOREGROUND, sdl.RENDER_DEVICE_RESET:
		return Event{Type: EventContextRestored}, true
	}

	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			return Event{Type: EventResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_MOVED, sdl.WINDOWEVENT_SHOWN:
			// moving between monitors may change the pixel ratio
			return Event{Type: EventDisplayChanged}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return Event{Type: EventKeyDown, Key: e.Keysym.Sym}, true
		}

	case *sdl.MouseMotionEvent:
		if e.Which == touchMouseID {
			return Event{}, false
		}
		return Event{Type: EventMouseMove, DX: float32(e.XRel), DY: float32(e.YRel)}, true

	case *sdl.MouseButtonEvent:
		if e.Which == touchMouseID {
			return Event{}, false
		}
		t := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		return Event{Type: t, Button: e.Button}, true

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		return Event{Type: EventWheel, Wheel: y}, true

	case *sdl.TouchFingerEvent:
		switch e.Type {
		case sdl.FINGERDOWN:
			i.fingers[e.FingerID] = struct{}{}
			return Event{Type: EventTouchDown, Touches: len(i.fingers)}, true
		case sdl.FINGERUP:
			delete(i.fingers, e.FingerID)
			return Event{Type: EventTouchUp, Touches: len(i.fingers)}, true
		case sdl.FINGERMOTION:
			return Event{Type: EventTouchMove, DX: e.DX, DY: e.DY, Touches: len(i.fingers)}, true
		}
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// KeyPressed reports whether key went down during the last Update.
func (i *Input) KeyPressed(key sdl.Keycode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}
