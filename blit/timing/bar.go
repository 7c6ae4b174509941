package timing

import (
	"time"

	"github.com/avico/go-blit/blit/buffer"
)

// Segment is one coloured slice of a frame's timing bar. End is the
// cumulative time since Begin at which the segment closed.
type Segment struct {
	Colour buffer.Pixel
	End    time.Duration
}

// Bar records wall-clock durations of named segments within a frame.
// Begin resets the record for the new frame and rolls the previous
// frame's completed segments into the readable side; there is no
// accumulated history beyond one frame.
type Bar struct {
	clock func() time.Time

	start    time.Time
	current  []Segment
	previous []Segment
	prevSpan time.Duration
}

// NewBar returns an empty recorder using the wall clock.
func NewBar() *Bar {
	return &Bar{clock: time.Now}
}

// newBarWithClock is used by tests to drive time deterministically.
func newBarWithClock(clock func() time.Time) *Bar {
	return &Bar{clock: clock}
}

// Begin completes the previous frame's record, resets the segment list
// and opens the first segment of the new frame with the given colour.
func (b *Bar) Begin(colour buffer.Pixel) {
	now := b.clock()
	if len(b.current) > 0 {
		b.current[len(b.current)-1].End = now.Sub(b.start)
		b.previous = b.current
		b.prevSpan = now.Sub(b.start)
	}
	b.start = now
	b.current = []Segment{{Colour: colour}}
}

// SetColour closes the current segment, recording the elapsed time
// since the previous marker, and opens a new one with the given colour.
// Returns the number of segments recorded so far this frame.
func (b *Bar) SetColour(colour buffer.Pixel) int {
	if len(b.current) == 0 {
		b.Begin(colour)
		return 1
	}
	b.current[len(b.current)-1].End = b.clock().Sub(b.start)
	b.current = append(b.current, Segment{Colour: colour})
	return len(b.current)
}

// SegmentCount returns the number of segments opened this frame.
func (b *Bar) SegmentCount() int { return len(b.current) }

// Previous returns the completed segment record of the last full frame,
// every segment closed with a cumulative end time.
func (b *Bar) Previous() []Segment { return b.previous }

// PreviousSpan returns the previous frame's total recorded duration.
func (b *Bar) PreviousSpan() time.Duration { return b.prevSpan }

// SegmentDuration returns the duration in milliseconds of one closed
// segment of the last completed frame, or -1 when id is out of range.
func (b *Bar) SegmentDuration(id int) float64 {
	if id < 0 || id >= len(b.previous) {
		return -1
	}
	start := time.Duration(0)
	if id > 0 {
		start = b.previous[id-1].End
	}
	return float64(b.previous[id].End-start) / float64(time.Millisecond)
}
