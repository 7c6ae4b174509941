// Package input defines the engine-level input events backends emit and
// the shared mouse state game code reads.
package input

import "github.com/avico/go-blit/blit/geom"

// Action is an engine-level input action, already translated from
// whatever platform event the backend received.
type Action int

const (
	ActionNone Action = iota
	// ActionQuit requests engine shutdown (window close, ESC, ...).
	ActionQuit
	// ActionSnapshot requests a frame snapshot to disk.
	ActionSnapshot
)

// EventType distinguishes presses from releases.
type EventType int

const (
	Press EventType = iota
	Release
)

// Event is one translated input event returned from a backend poll.
type Event struct {
	Action Action
	Type   EventType
}

// Mouse is the shared mutable mouse state a backend writes and game
// update code reads. Pos is in unscaled logical buffer coordinates with
// Y measured from the bottom; (-1, -1) means the pointer is outside the
// window.
type Mouse struct {
	Pos   geom.Point
	Left  bool
	Right bool
}

// Leave marks the pointer as outside the window.
func (m *Mouse) Leave() {
	m.Pos = geom.Pt(-1, -1)
}
