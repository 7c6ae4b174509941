// Package terminal implements a tcell display backend that renders the
// display buffer into terminal cells using half-block characters, two
// vertical pixels per cell. Useful for development over SSH and for
// environments without SDL2.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/avico/go-blit/blit/backend"
	"github.com/avico/go-blit/blit/buffer"
	"github.com/avico/go-blit/blit/geom"
	"github.com/avico/go-blit/blit/input"
)

// Backend implements backend.Backend on a tcell screen.
type Backend struct {
	screen  tcell.Screen
	config  backend.Config
	running bool

	// signalEvents carries quit events from the signal-handler goroutine
	// to Poll on the engine goroutine.
	signalEvents chan input.Event
}

// New creates an uninitialized terminal backend.
func New() *Backend {
	return &Backend{signalEvents: make(chan input.Event, 4)}
}

func (t *Backend) Init(config backend.Config) error {
	t.config = config

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}

	t.screen = screen
	t.running = true

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.EnableMouse()
	t.screen.Clear()

	go t.handleSignals()

	slog.Info("Terminal backend initialized",
		"size", fmt.Sprintf("%dx%d", config.Width, config.Height))
	return nil
}

// Poll drains pending tcell events synchronously.
func (t *Backend) Poll() ([]input.Event, error) {
	var events []input.Event
drain:
	for {
		select {
		case ev := <-t.signalEvents:
			events = append(events, ev)
		default:
			break drain
		}
	}

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
				events = append(events, input.Event{Action: input.ActionQuit, Type: input.Press})
			case ev.Key() == tcell.KeyF12 || ev.Rune() == 's':
				events = append(events, input.Event{Action: input.ActionSnapshot, Type: input.Press})
			}
		case *tcell.EventMouse:
			t.updateMouse(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
	return events, nil
}

// updateMouse maps a cell position to logical buffer coordinates: one
// cell is one pixel wide and two pixels tall, Y measured from the
// bottom of the buffer.
func (t *Backend) updateMouse(ev *tcell.EventMouse) {
	m := t.config.Mouse
	if m == nil {
		return
	}
	cx, cy := ev.Position()
	x := cx
	y := t.config.Height - 1 - cy*2
	if x < 0 || y < 0 || x >= t.config.Width || y >= t.config.Height {
		m.Leave()
	} else {
		m.Pos = geom.Pt(float32(x), float32(y))
	}
	m.Left = ev.Buttons()&tcell.Button1 != 0
	m.Right = ev.Buttons()&tcell.Button2 != 0
}

// Present draws the buffer top-down with half-block runes: the upper
// pixel of each cell pair becomes the foreground of '▀', the lower one
// the background. Terminal cells are never vsync-coupled, so the only
// pacing here is the engine's own frame limiter.
func (t *Backend) Present(frame *buffer.Buffer) (time.Duration, error) {
	if !t.running {
		return 0, nil
	}
	start := time.Now()

	w, h := frame.Width(), frame.Height()
	for row := 0; row*2 < h; row++ {
		// Row 0 of the terminal shows the top of the image, which is
		// the highest buffer row.
		topY := h - 1 - row*2
		bottomY := topY - 1
		for x := 0; x < w; x++ {
			fg := pixelColor(frame.GetPixel(x, topY))
			bg := tcell.ColorBlack
			if bottomY >= 0 {
				bg = pixelColor(frame.GetPixel(x, bottomY))
			}
			style := tcell.StyleDefault.Foreground(fg).Background(bg)
			t.screen.SetContent(x, row, '▀', nil, style)
		}
	}
	t.screen.Show()

	return time.Since(start), nil
}

func pixelColor(p buffer.Pixel) tcell.Color {
	return tcell.NewRGBColor(int32(p.R()), int32(p.G()), int32(p.B()))
}

func (t *Backend) Focused() bool { return true }

func (t *Backend) Cleanup() error {
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

func (t *Backend) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	<-signals
	t.signalEvents <- input.Event{Action: input.ActionQuit, Type: input.Press}
}
