package blit

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avico/go-blit/blit/backend"
	"github.com/avico/go-blit/blit/buffer"
	"github.com/avico/go-blit/blit/input"
)

// fakeBackend scripts Poll results and records lifecycle calls.
type fakeBackend struct {
	initCfg   backend.Config
	initErr   error
	polls     [][]input.Event
	pollErr   error
	pollCount int
	presents  int
	focused   bool
	cleanups  int

	// onPoll runs at the start of every Poll, letting tests mutate the
	// backend mid-loop without racing the engine goroutine.
	onPoll func(f *fakeBackend)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{focused: true}
}

func (f *fakeBackend) Init(cfg backend.Config) error {
	f.initCfg = cfg
	return f.initErr
}

func (f *fakeBackend) Poll() ([]input.Event, error) {
	if f.onPoll != nil {
		f.onPoll(f)
	}
	if f.pollErr != nil {
		return nil, f.pollErr
	}
	i := f.pollCount
	f.pollCount++
	if i < len(f.polls) {
		return f.polls[i], nil
	}
	return nil, nil
}

func (f *fakeBackend) Present(*buffer.Buffer) (time.Duration, error) {
	f.presents++
	return time.Millisecond, nil
}

func (f *fakeBackend) Focused() bool { return f.focused }

func (f *fakeBackend) Cleanup() error {
	f.cleanups++
	return nil
}

func testConfig() Config {
	return Config{Title: "test", Width: 8, Height: 8, Scale: 1, Unlimited: true}
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero width", Config{Width: 0, Height: 8, Scale: 1}},
		{"negative height", Config{Width: 8, Height: -1, Scale: 1}},
		{"zero scale", Config{Width: 8, Height: 8, Scale: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, newFakeBackend())
			assert.ErrorIs(t, err, ErrConfig)
		})
	}

	_, err := New(testConfig(), nil)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestNewInitializesBackendWithDisplayGeometry(t *testing.T) {
	fb := newFakeBackend()
	e, err := New(Config{Title: "t", Width: 32, Height: 24, Scale: 3, Unlimited: true}, fb)
	require.NoError(t, err)

	assert.Equal(t, 32, fb.initCfg.Width)
	assert.Equal(t, 24, fb.initCfg.Height)
	assert.Equal(t, 3, fb.initCfg.Scale)
	assert.Same(t, e.Mouse, fb.initCfg.Mouse)
	assert.Equal(t, 32, e.Display().Width())
	assert.Equal(t, Uninitialized, e.State())
}

func TestNewPropagatesBackendInitFailure(t *testing.T) {
	fb := newFakeBackend()
	fb.initErr = errors.New("no display")
	_, err := New(testConfig(), fb)
	assert.ErrorContains(t, err, "no display")
}

func TestRunStopsWhenUpdateReturnsTrue(t *testing.T) {
	fb := newFakeBackend()
	e, err := New(testConfig(), fb)
	require.NoError(t, err)

	frames := 0
	exits := 0
	status, err := e.Run(Callbacks{
		Update: func(elapsed float32) bool {
			frames++
			return frames >= 5
		},
		Exit: func() int {
			exits++
			return 42
		},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 42, status)
	assert.Equal(t, 5, frames)
	assert.Equal(t, 1, exits, "exit callback runs exactly once")
	assert.Equal(t, 5, fb.presents, "the quitting frame is still presented")
	assert.Equal(t, 1, fb.cleanups)
	assert.Equal(t, Terminated, e.State())
}

func TestRunStopsOnQuitEvent(t *testing.T) {
	fb := newFakeBackend()
	fb.polls = [][]input.Event{
		nil,
		{{Action: input.ActionQuit, Type: input.Press}},
	}
	e, err := New(testConfig(), fb)
	require.NoError(t, err)

	frames := 0
	status, err := e.Run(Callbacks{
		Update: func(float32) bool { frames++; return false },
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, 1, frames, "no update after the quit event")
	assert.Equal(t, Terminated, e.State())
}

func TestRunIgnoresReleaseEvents(t *testing.T) {
	fb := newFakeBackend()
	fb.polls = [][]input.Event{
		{{Action: input.ActionQuit, Type: input.Release}},
	}
	e, err := New(testConfig(), fb)
	require.NoError(t, err)

	frames := 0
	_, err = e.Run(Callbacks{
		Update: func(float32) bool { frames++; return frames >= 2 },
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, frames)
}

func TestRunFreezesGameplayWithoutFocus(t *testing.T) {
	fb := newFakeBackend()
	fb.focused = false
	fb.onPoll = func(f *fakeBackend) {
		// Regain focus on the fourth frame.
		if f.pollCount == 3 {
			f.focused = true
		}
	}
	cfg := testConfig()
	cfg.RequireFocus = true
	e, err := New(cfg, fb)
	require.NoError(t, err)

	updates := 0
	_, err = e.Run(Callbacks{
		Update: func(float32) bool { updates++; return true },
	}, nil)
	require.NoError(t, err)

	// Unfocused frames present but never update; the first focused
	// update quits the loop.
	assert.Equal(t, 1, updates)
	assert.Equal(t, 4, fb.presents)
	assert.Equal(t, Terminated, e.State())
}

func TestRunShutsDownCleanlyOnPollFailure(t *testing.T) {
	fb := newFakeBackend()
	fb.pollErr = errors.New("device lost")
	e, err := New(testConfig(), fb)
	require.NoError(t, err)

	exits := 0
	status, err := e.Run(Callbacks{
		Exit: func() int { exits++; return 7 },
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 7, status)
	assert.Equal(t, 1, exits)
	assert.Equal(t, 1, fb.cleanups)
	assert.Equal(t, 0, fb.presents)
	assert.Equal(t, Terminated, e.State())
}

func TestRunEntryReceivesArgs(t *testing.T) {
	fb := newFakeBackend()
	fb.polls = [][]input.Event{
		{{Action: input.ActionQuit, Type: input.Press}},
	}
	e, err := New(testConfig(), fb)
	require.NoError(t, err)

	var got []string
	_, err = e.Run(Callbacks{
		Entry: func(args []string) { got = args },
	}, []string{"level1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"level1"}, got)
}

func TestRunRefusesSecondRun(t *testing.T) {
	fb := newFakeBackend()
	fb.polls = [][]input.Event{
		{{Action: input.ActionQuit, Type: input.Press}},
	}
	e, err := New(testConfig(), fb)
	require.NoError(t, err)

	_, err = e.Run(Callbacks{}, nil)
	require.NoError(t, err)

	_, err = e.Run(Callbacks{}, nil)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestSnapshotEventWritesFile(t *testing.T) {
	dir := t.TempDir()
	fb := newFakeBackend()
	fb.polls = [][]input.Event{
		{{Action: input.ActionSnapshot, Type: input.Press}},
		{{Action: input.ActionQuit, Type: input.Press}},
	}
	cfg := testConfig()
	cfg.SnapshotDir = dir
	e, err := New(cfg, fb)
	require.NoError(t, err)

	_, err = e.Run(Callbacks{}, nil)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "blit_snapshot_1.png"))
}
