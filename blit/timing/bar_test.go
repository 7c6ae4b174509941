package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avico/go-blit/blit/buffer"
)

// stepClock returns a clock that advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func TestBarRecordsSegmentsAcrossFrame(t *testing.T) {
	bar := newBarWithClock(stepClock(time.Unix(0, 0), 10*time.Millisecond))

	bar.Begin(buffer.Blue)
	assert.Equal(t, 1, bar.SegmentCount())
	assert.Equal(t, 2, bar.SetColour(buffer.Green))
	assert.Equal(t, 3, bar.SetColour(buffer.Red))

	// Nothing is readable until the next Begin closes the frame.
	assert.Empty(t, bar.Previous())
	assert.Equal(t, float64(-1), bar.SegmentDuration(0))

	bar.Begin(buffer.Blue)

	prev := bar.Previous()
	require.Len(t, prev, 3)
	assert.Equal(t, buffer.Blue, prev[0].Colour)
	assert.Equal(t, buffer.Green, prev[1].Colour)
	assert.Equal(t, buffer.Red, prev[2].Colour)

	// Ends are cumulative and non-decreasing; each marker advanced the
	// clock by one step.
	assert.Equal(t, 10*time.Millisecond, prev[0].End)
	assert.Equal(t, 20*time.Millisecond, prev[1].End)
	assert.Equal(t, 30*time.Millisecond, prev[2].End)
	assert.Equal(t, 30*time.Millisecond, bar.PreviousSpan())
}

func TestSegmentDuration(t *testing.T) {
	bar := newBarWithClock(stepClock(time.Unix(0, 0), 5*time.Millisecond))

	bar.Begin(buffer.Blue)
	bar.SetColour(buffer.Green)
	bar.Begin(buffer.Blue)

	assert.Equal(t, 5.0, bar.SegmentDuration(0))
	assert.Equal(t, 5.0, bar.SegmentDuration(1))
	assert.Equal(t, float64(-1), bar.SegmentDuration(2))
	assert.Equal(t, float64(-1), bar.SegmentDuration(-1))
}

func TestSetColourBeforeBeginOpensFrame(t *testing.T) {
	bar := newBarWithClock(stepClock(time.Unix(0, 0), time.Millisecond))
	assert.Equal(t, 1, bar.SetColour(buffer.Red))
	assert.Equal(t, 1, bar.SegmentCount())
}

func TestFrameDuration(t *testing.T) {
	assert.Equal(t, time.Second/60, FrameDuration(60))
	assert.Equal(t, time.Second/100, FrameDuration(100))
	// Non-positive rates fall back to the default.
	assert.Equal(t, time.Second/DefaultFPS, FrameDuration(0))
	assert.Equal(t, time.Second/DefaultFPS, FrameDuration(-5))
}

func TestNoOpLimiterDoesNotBlock(t *testing.T) {
	l := NewNoOpLimiter()
	start := time.Now()
	for i := 0; i < 1000; i++ {
		l.WaitForNextFrame()
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestAdaptiveLimiterPacesFrames(t *testing.T) {
	l := NewAdaptiveLimiter(200) // 5ms per frame
	l.Reset()

	start := time.Now()
	for i := 0; i < 4; i++ {
		l.WaitForNextFrame()
	}
	elapsed := time.Since(start)

	// Four frames at 5ms each should take roughly 20ms; allow generous
	// scheduler slack but reject a limiter that never waits.
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
	assert.Less(t, elapsed, 200*time.Millisecond)
}

func TestAdaptiveLimiterCatchesUpWhenBehind(t *testing.T) {
	l := NewAdaptiveLimiter(60)
	l.Reset()

	// Simulate a long stall: the next wait must not sleep the whole
	// backlog away.
	time.Sleep(30 * time.Millisecond)
	start := time.Now()
	l.WaitForNextFrame()
	assert.Less(t, time.Since(start), 10*time.Millisecond)
}
