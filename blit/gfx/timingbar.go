package gfx

import (
	"github.com/avico/go-blit/blit/geom"
	"github.com/avico/go-blit/blit/timing"
)

// DrawTimingBar renders the previous frame's timing segments as
// proportionally sized coloured blocks along a horizontal bar with its
// bottom-left corner at pos.
func (c *Context) DrawTimingBar(bar *timing.Bar, pos, size geom.Point) {
	segments := bar.Previous()
	total := bar.PreviousSpan()
	if len(segments) == 0 || total <= 0 {
		return
	}

	width := size.X
	prevEnd := float32(0)
	for _, seg := range segments {
		end := float32(seg.End) / float32(total) * width
		if end <= prevEnd {
			prevEnd = end
			continue
		}
		c.DrawRect(
			geom.Pt(pos.X+prevEnd, pos.Y),
			geom.Pt(pos.X+end-1, pos.Y+size.Y-1),
			seg.Colour,
			true,
		)
		prevEnd = end
	}
}
