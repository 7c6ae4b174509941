package gfx

import (
	"github.com/avico/go-blit/blit/geom"
)

// fontFirstChar is the ASCII code of frame 0 in a sprite-based font
// sheet: fonts are exported as a glyph table starting at space.
const fontFirstChar = ' '

// FontCharWidth returns the advance width of a character in a
// sprite-based font by scanning the glyph's opaque-pixel extent, so
// non-uniform-width fonts lay out tightly. Blank glyphs (space) advance
// half a frame.
func (c *Context) FontCharWidth(fontID int, ch byte) int {
	s := c.sprites.Get(fontID)
	if s == nil {
		return 0
	}
	fx, fy, ok := s.FrameOrigin(int(ch) - fontFirstChar)
	if !ok {
		return 0
	}
	canvas := s.Canvas()
	widest := -1
	for y := 0; y < s.Height; y++ {
		for x := s.Width - 1; x > widest; x-- {
			if canvas.GetPixel(fx+x, fy+y).A() != 0 {
				widest = x
				break
			}
		}
	}
	if widest < 0 {
		return s.Width / 2
	}
	return widest + 1
}

// DrawChar draws one character from a sprite-based font at pos and
// returns its advance width.
func (c *Context) DrawChar(fontID int, pos geom.Point, ch byte) int {
	c.DrawTransparent(fontID, pos, int(ch)-fontFirstChar, White)
	return c.FontCharWidth(fontID, ch)
}

// DrawCharRotated draws one rotated, scaled character pivoting about
// the font sprite's origin and returns the unrotated advance width.
func (c *Context) DrawCharRotated(fontID int, pos geom.Point, angle, scale float32, ch byte) int {
	c.DrawRotated(fontID, pos, int(ch)-fontFirstChar, angle, scale, White)
	return c.FontCharWidth(fontID, ch)
}

// DrawString draws text with a sprite-based font, advancing by each
// glyph's scanned width. Returns the x coordinate after the last glyph.
func (c *Context) DrawString(fontID int, pos geom.Point, text string) int {
	x := pos.X
	for i := 0; i < len(text); i++ {
		c.DrawTransparent(fontID, geom.Pt(x, pos.Y), int(text[i])-fontFirstChar, White)
		x += float32(c.FontCharWidth(fontID, text[i]))
	}
	return int(x)
}

// DrawStringCentred draws text horizontally centred on pos.
func (c *Context) DrawStringCentred(fontID int, pos geom.Point, text string) int {
	width := 0
	for i := 0; i < len(text); i++ {
		width += c.FontCharWidth(fontID, text[i])
	}
	return c.DrawString(fontID, geom.Pt(pos.X-float32(width)/2, pos.Y), text)
}
