//go:build !sdl2

package sdl2

import (
	"fmt"
	"time"

	"github.com/avico/go-blit/blit/backend"
	"github.com/avico/go-blit/blit/buffer"
	"github.com/avico/go-blit/blit/input"
)

// Backend stub for when SDL2 is not available.
type Backend struct{}

func New() *Backend {
	return &Backend{}
}

func (s *Backend) Init(config backend.Config) error {
	return fmt.Errorf("SDL2 backend not available - compile with -tags sdl2 and install SDL2 development libraries")
}

func (s *Backend) Poll() ([]input.Event, error) {
	return nil, fmt.Errorf("SDL2 backend not available")
}

func (s *Backend) Present(frame *buffer.Buffer) (time.Duration, error) {
	return 0, fmt.Errorf("SDL2 backend not available")
}

func (s *Backend) Focused() bool { return false }

func (s *Backend) Cleanup() error {
	return nil
}
