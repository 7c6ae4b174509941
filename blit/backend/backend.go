// Package backend abstracts the display surface and platform input the
// engine presents to and polls from. A backend owns the OS-facing side:
// window or terminal setup, event translation and the per-frame blit of
// the display buffer, scaled and synchronized to the platform's
// compositing cadence where it has one.
package backend

import (
	"time"

	"github.com/avico/go-blit/blit/buffer"
	"github.com/avico/go-blit/blit/input"
)

// Config holds configuration shared by all backends.
type Config struct {
	Title  string
	Width  int // logical display buffer width
	Height int // logical display buffer height
	Scale  int // integer magnification applied on present

	// Mouse, when non-nil, is updated in place by the backend's event
	// polling with unscaled bottom-origin coordinates.
	Mouse *input.Mouse
}

// Backend is a complete presentation platform (rendering + input).
type Backend interface {
	// Init configures the backend. Required before any other call.
	Init(config Config) error

	// Poll drains pending platform events, updating the shared mouse
	// state and returning engine-level events in arrival order.
	Poll() ([]input.Event, error)

	// Present copies the display buffer (row 0 = bottom) to the output
	// surface with integer nearest-neighbour magnification, flipping to
	// the surface's top-down orientation, and blocks until the platform
	// compositor has taken the frame where the platform supports it.
	// Returns the measured copy duration for diagnostics.
	Present(frame *buffer.Buffer) (time.Duration, error)

	// Focused reports whether the display surface has input focus.
	// Headless and terminal backends always report true.
	Focused() bool

	// Cleanup releases platform resources when shutting down.
	Cleanup() error
}
