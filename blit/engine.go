// Package blit is a software-rendered 2D sprite engine: it maintains an
// in-memory ARGB display buffer, composites sprites and primitives into
// it every frame under blend-mode control, and presents the buffer to a
// display backend synchronized to the display's refresh cadence.
package blit

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/avico/go-blit/blit/backend"
	"github.com/avico/go-blit/blit/buffer"
	"github.com/avico/go-blit/blit/codec"
	"github.com/avico/go-blit/blit/gfx"
	"github.com/avico/go-blit/blit/input"
	"github.com/avico/go-blit/blit/sprite"
	"github.com/avico/go-blit/blit/timing"
)

// ErrConfig is returned when an engine is created with an invalid
// configuration. This is fatal: initialization stops.
var ErrConfig = errors.New("blit: invalid configuration")

// State is the engine lifecycle state.
type State int

const (
	Uninitialized State = iota
	Running
	ShuttingDown
	Terminated
)

// Config describes the display buffer and frame pacing.
type Config struct {
	Title  string
	Width  int
	Height int
	Scale  int     // integer pixel magnification on present
	FPS    float64 // target frame rate; 0 means timing.DefaultFPS

	// RequireFocus freezes gameplay time while the display surface
	// lacks input focus, matching release builds of windowed games.
	RequireFocus bool

	// Unlimited disables frame pacing entirely (headless batch runs).
	Unlimited bool

	// SnapshotDir receives F12 frame snapshots; empty means the
	// current directory.
	SnapshotDir string
}

// Callbacks is the game contract. Update runs once per frame with the
// elapsed wall-clock seconds and returns true to quit. Exit runs
// exactly once at shutdown and supplies the process status code. Entry
// runs once before the first frame.
type Callbacks struct {
	Entry  func(args []string)
	Update func(elapsedSeconds float32) bool
	Exit   func() int
}

// Engine owns the display buffer, the drawing context, the sprite
// registry and the frame loop. Everything runs on the caller's
// goroutine; none of it is safe for concurrent use.
type Engine struct {
	cfg     Config
	state   State
	display *buffer.Buffer
	backend backend.Backend
	limiter timing.Limiter

	Gfx     *gfx.Context
	Sprites *sprite.Registry
	Mouse   *input.Mouse
	Bar     *timing.Bar

	lastPresent time.Duration
	snapshots   int
}

// New validates the configuration, allocates the display buffer and
// binds the backend. The backend is initialized here but its loop does
// not start until Run.
func New(cfg Config, b backend.Backend) (*Engine, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: display %dx%d", ErrConfig, cfg.Width, cfg.Height)
	}
	if cfg.Scale <= 0 {
		return nil, fmt.Errorf("%w: scale %d", ErrConfig, cfg.Scale)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: nil backend", ErrConfig)
	}

	display, err := buffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	registry := sprite.NewRegistry()
	mouse := &input.Mouse{}
	mouse.Leave()

	e := &Engine{
		cfg:     cfg,
		display: display,
		backend: b,
		Gfx:     gfx.New(display, registry),
		Sprites: registry,
		Mouse:   mouse,
		Bar:     timing.NewBar(),
	}

	if cfg.Unlimited {
		e.limiter = timing.NewNoOpLimiter()
	} else {
		e.limiter = timing.NewAdaptiveLimiter(cfg.FPS)
	}

	if err := b.Init(backend.Config{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		Scale:  cfg.Scale,
		Mouse:  mouse,
	}); err != nil {
		return nil, fmt.Errorf("backend init: %w", err)
	}

	return e, nil
}

// Display returns the engine-owned display buffer.
func (e *Engine) Display() *buffer.Buffer { return e.display }

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// LastPresentDuration returns the measured duration of the most recent
// buffer-to-surface copy, for diagnostic display.
func (e *Engine) LastPresentDuration() time.Duration { return e.lastPresent }

// LoadSprites registers every image in dir with the sprite registry.
func (e *Engine) LoadSprites(dir string) (int, error) {
	return e.Sprites.LoadDirectory(codec.Decode, dir)
}

// Run drives the frame loop until a quit signal or the update callback
// returns true, then invokes the exit callback exactly once and tears
// the backend down. Returns the exit callback's status code.
func (e *Engine) Run(cb Callbacks, args []string) (int, error) {
	if e.state != Uninitialized {
		return 0, fmt.Errorf("%w: engine already ran", ErrConfig)
	}

	if cb.Entry != nil {
		cb.Entry(args)
	}

	e.state = Running
	e.limiter.Reset()
	last := time.Now()

	for e.state == Running {
		events, err := e.backend.Poll()
		if err != nil {
			slog.Error("Backend poll failed", "error", err)
			e.state = ShuttingDown
			break
		}
		for _, ev := range events {
			e.handleEvent(ev)
		}
		if e.state != Running {
			break
		}

		// Hold to the target frame interval before handing gameplay
		// the elapsed time.
		e.limiter.WaitForNextFrame()

		now := time.Now()
		elapsed := float32(now.Sub(last).Seconds())
		last = now

		if !e.cfg.RequireFocus || e.backend.Focused() {
			if cb.Update != nil && cb.Update(elapsed) {
				e.state = ShuttingDown
			}
		}

		// Present blocks on the platform's compositing cadence where
		// there is one, so the effective frame rate is the slower of
		// the pacing floor and the display's own refresh.
		d, err := e.backend.Present(e.display)
		if err != nil {
			slog.Error("Present failed", "error", err)
			e.state = ShuttingDown
			break
		}
		e.lastPresent = d
	}

	e.state = ShuttingDown
	status := 0
	if cb.Exit != nil {
		status = cb.Exit()
	}
	if err := e.backend.Cleanup(); err != nil {
		slog.Warn("Backend cleanup failed", "error", err)
	}
	e.state = Terminated

	return status, nil
}

func (e *Engine) handleEvent(ev input.Event) {
	if ev.Type != input.Press {
		return
	}
	switch ev.Action {
	case input.ActionQuit:
		slog.Info("Quit requested")
		e.state = ShuttingDown
	case input.ActionSnapshot:
		e.snapshots++
		path := filepath.Join(e.cfg.SnapshotDir, fmt.Sprintf("blit_snapshot_%d.png", e.snapshots))
		if err := codec.SavePNG(e.display, path); err != nil {
			slog.Error("Failed to save snapshot", "error", err)
		} else {
			slog.Info("Snapshot saved", "path", path)
		}
	}
}
