//go:build sdl2

// Package sdl2 implements the windowed display backend. Presentation
// goes through an SDL streaming texture with vsync enabled, so Present
// blocks until the platform compositor has taken the frame.
//
// Building this requires SDL2 development libraries installed. Default
// builds use the stub instead, see build tags (sdl2).
package sdl2

import (
	"fmt"
	"log/slog"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/avico/go-blit/blit/backend"
	"github.com/avico/go-blit/blit/buffer"
	"github.com/avico/go-blit/blit/geom"
	"github.com/avico/go-blit/blit/input"
)

// Backend implements backend.Backend on an SDL2 window.
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	config   backend.Config
	pixels   []byte // reused per-frame conversion buffer
	running  bool
}

// New creates an uninitialized SDL2 backend.
func New() *Backend {
	return &Backend{}
}

func (s *Backend) Init(config backend.Config) error {
	s.config = config
	if config.Scale <= 0 {
		s.config.Scale = 1
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %v", err)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(config.Width*s.config.Scale),
		int32(config.Height*s.config.Scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %v", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %v", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(config.Width),
		int32(config.Height),
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %v", err)
	}
	s.texture = texture

	s.pixels = make([]byte, config.Width*config.Height*4)
	s.running = true

	slog.Info("SDL2 backend initialized",
		"size", fmt.Sprintf("%dx%d", config.Width, config.Height),
		"scale", s.config.Scale)
	return nil
}

// Poll drains the SDL event queue, updating mouse state in place and
// translating window/keyboard events to engine actions.
func (s *Backend) Poll() ([]input.Event, error) {
	var events []input.Event
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			s.running = false
			events = append(events, input.Event{Action: input.ActionQuit, Type: input.Press})

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			switch e.Keysym.Sym {
			case sdl.K_ESCAPE:
				events = append(events, input.Event{Action: input.ActionQuit, Type: input.Press})
			case sdl.K_F12:
				events = append(events, input.Event{Action: input.ActionSnapshot, Type: input.Press})
			}

		case *sdl.MouseMotionEvent:
			if s.config.Mouse != nil {
				s.config.Mouse.Pos = geom.Pt(
					float32(int(e.X)/s.config.Scale),
					float32(s.config.Height-1-int(e.Y)/s.config.Scale),
				)
			}

		case *sdl.MouseButtonEvent:
			if s.config.Mouse == nil {
				continue
			}
			pressed := e.State == sdl.PRESSED
			switch e.Button {
			case sdl.BUTTON_LEFT:
				s.config.Mouse.Left = pressed
			case sdl.BUTTON_RIGHT:
				s.config.Mouse.Right = pressed
			}

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_LEAVE && s.config.Mouse != nil {
				s.config.Mouse.Leave()
			}
		}
	}
	return events, nil
}

// Present uploads the bottom-up display buffer into the streaming
// texture top row first, lets the renderer apply the integer scale, and
// presents with vsync. Returns the measured copy duration.
func (s *Backend) Present(frame *buffer.Buffer) (time.Duration, error) {
	if !s.running {
		return 0, nil
	}
	start := time.Now()

	w, h := frame.Width(), frame.Height()
	pix := frame.Pix()
	for y := 0; y < h; y++ {
		src := pix[(h-1-y)*w : (h-y)*w]
		dst := s.pixels[y*w*4:]
		for x, p := range src {
			i := x * 4
			dst[i] = p.B()
			dst[i+1] = p.G()
			dst[i+2] = p.R()
			dst[i+3] = p.A()
		}
	}

	if err := s.texture.Update(nil, unsafe.Pointer(&s.pixels[0]), w*4); err != nil {
		return 0, fmt.Errorf("failed to update texture: %v", err)
	}
	s.renderer.SetDrawColor(0, 0, 0, 255)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()

	return time.Since(start), nil
}

func (s *Backend) Focused() bool {
	if s.window == nil {
		return false
	}
	return s.window.GetFlags()&sdl.WINDOW_INPUT_FOCUS != 0
}

func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}
