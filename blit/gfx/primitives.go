package gfx

import (
	"github.com/avico/go-blit/blit/buffer"
	"github.com/avico/go-blit/blit/geom"
)

// DrawPixel composites a single colour onto the target at pos using the
// global blend mode. Out-of-bounds writes are skipped.
func (c *Context) DrawPixel(pos geom.Point, colour buffer.Pixel) {
	t := c.mustTarget()
	x, y := int(pos.X), int(pos.Y)
	if !t.Contains(x, y) {
		return
	}
	src := buffer.PremultiplyPixel(colour)
	t.SetPixel(x, y, compose(c.blend, src, t.GetPixel(x, y)))
}

// DrawLine rasterizes a line from start to end, endpoints inclusive,
// with no anti-aliasing.
func (c *Context) DrawLine(start, end geom.Point, colour buffer.Pixel) {
	x0, y0 := int(start.X), int(start.Y)
	x1, y1 := int(end.X), int(end.Y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.DrawPixel(geom.Pt(float32(x0), float32(y0)), colour)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect draws an axis-aligned rectangle spanning the two corners.
// Unfilled rectangles are a one-pixel outline; filled ones sweep every
// interior pixel.
func (c *Context) DrawRect(corner1, corner2 geom.Point, colour buffer.Pixel, filled bool) {
	x0, x1 := minInt(int(corner1.X), int(corner2.X)), maxInt(int(corner1.X), int(corner2.X))
	y0, y1 := minInt(int(corner1.Y), int(corner2.Y)), maxInt(int(corner1.Y), int(corner2.Y))

	if filled {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				c.DrawPixel(geom.Pt(float32(x), float32(y)), colour)
			}
		}
		return
	}
	for x := x0; x <= x1; x++ {
		c.DrawPixel(geom.Pt(float32(x), float32(y0)), colour)
		c.DrawPixel(geom.Pt(float32(x), float32(y1)), colour)
	}
	for y := y0 + 1; y < y1; y++ {
		c.DrawPixel(geom.Pt(float32(x0), float32(y)), colour)
		c.DrawPixel(geom.Pt(float32(x1), float32(y)), colour)
	}
}

// DrawCircle draws an unfilled circle outline using the midpoint
// algorithm.
func (c *Context) DrawCircle(centre geom.Point, radius int, colour buffer.Pixel) {
	if radius <= 0 {
		if radius == 0 {
			c.DrawPixel(centre, colour)
		}
		return
	}
	cx, cy := int(centre.X), int(centre.Y)
	x, y := 0, radius
	d := 3 - 2*radius

	plot8 := func(x, y int) {
		c.DrawPixel(geom.Pt(float32(cx+x), float32(cy+y)), colour)
		c.DrawPixel(geom.Pt(float32(cx-x), float32(cy+y)), colour)
		c.DrawPixel(geom.Pt(float32(cx+x), float32(cy-y)), colour)
		c.DrawPixel(geom.Pt(float32(cx-x), float32(cy-y)), colour)
		c.DrawPixel(geom.Pt(float32(cx+y), float32(cy+x)), colour)
		c.DrawPixel(geom.Pt(float32(cx-y), float32(cy+x)), colour)
		c.DrawPixel(geom.Pt(float32(cx+y), float32(cy-x)), colour)
		c.DrawPixel(geom.Pt(float32(cx-y), float32(cy-x)), colour)
	}

	for x <= y {
		plot8(x, y)
		if d < 0 {
			d += 4*x + 6
		} else {
			d += 4*(x-y) + 10
			y--
		}
		x++
	}
}

// DrawPixelData blits a whole buffer at an integer position with a
// uniform alpha multiplier. The buffer is premultiplied in place on
// first use and the conversion cached.
func (c *Context) DrawPixelData(data *buffer.Buffer, pos geom.Point, alpha float32) {
	data.Premultiply()
	c.blit(data, 0, 0, int(pos.X), int(pos.Y), data.Width(), data.Height(), c.blend, Alpha(alpha))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
