package gfx

import (
	"github.com/chewxy/math32"

	"github.com/avico/go-blit/blit/geom"
)

// Draw renders a sprite frame at an integer position with no colour
// multiply. This is the fastest sprite path; it aliases DrawTransparent,
// which only pays for the per-pixel multiply when one is requested.
func (c *Context) Draw(spriteID int, pos geom.Point, frame int) {
	c.DrawTransparent(spriteID, pos, frame, White)
}

// DrawTransparent alpha-composites a sprite frame onto the target at an
// integer position, applying an RGBA multiply factor. The sprite's
// origin lands on pos.
func (c *Context) DrawTransparent(spriteID int, pos geom.Point, frame int, mul Colour) {
	s := c.sprites.Get(spriteID)
	if s == nil {
		return
	}
	fx, fy, ok := s.FrameOrigin(frame)
	if !ok {
		return
	}
	dstX := int(pos.X) - s.OriginX
	dstY := int(pos.Y) - s.OriginY
	c.blit(s.Premult(), fx, fy, dstX, dstY, s.Width, s.Height, c.blend, mul)
}

// DrawRotated renders a sprite frame rotated by angle (radians) and
// uniformly scaled, pivoting about the sprite's origin placed at pos.
func (c *Context) DrawRotated(spriteID int, pos geom.Point, frame int, angle, scale float32, mul Colour) {
	c.DrawTransformed(spriteID, geom.RotScaleTrans(angle, scale, pos), frame, mul)
}

// DrawTransformed renders a sprite frame through an arbitrary affine
// transform. Every target pixel inside the transformed bounding box is
// inverse-mapped into source frame space and sampled nearest-neighbour;
// pixels mapping outside the frame are skipped.
func (c *Context) DrawTransformed(spriteID int, transform geom.Matrix, frame int, mul Colour) {
	s := c.sprites.Get(spriteID)
	if s == nil {
		return
	}
	fx, fy, ok := s.FrameOrigin(frame)
	if !ok {
		return
	}

	// Fold the origin offset in so frame-local (0,0) is the sprite's
	// bottom-left corner.
	m := transform.Mul(geom.Translation(-float32(s.OriginX), -float32(s.OriginY)))
	inv, ok := m.Invert()
	if !ok {
		return
	}

	t := c.mustTarget()
	fw, fh := float32(s.Width), float32(s.Height)
	bounds := m.TransformBounds(fw, fh)

	x0 := maxInt(int(math32.Floor(bounds.MinX)), 0)
	y0 := maxInt(int(math32.Floor(bounds.MinY)), 0)
	x1 := minInt(int(math32.Ceil(bounds.MaxX)), t.Width())
	y1 := minInt(int(math32.Ceil(bounds.MaxY)), t.Height())
	if x0 >= x1 || y0 >= y1 {
		return
	}

	premult := s.Premult()
	sp := premult.Pix()
	dp := t.Pix()
	sheetW := premult.Width()
	mr, mg, mb, ma := mul.factors()
	useMul := !mul.isWhite()
	mode := c.blend

	for y := y0; y < y1; y++ {
		// Inverse-map the pixel centre; step along the row with the
		// inverse transform's column vector instead of re-applying the
		// full matrix per pixel.
		src := inv.Apply(geom.Pt(float32(x0)+0.5, float32(y)+0.5))
		di := y * t.Width()
		for x := x0; x < x1; x, src = x+1, src.Add(geom.Pt(inv.A, inv.B)) {
			sx, sy := src.X, src.Y
			if sx < 0 || sy < 0 || sx >= fw || sy >= fh {
				continue
			}
			p := sp[(fy+int(sy))*sheetW+fx+int(sx)]
			if p == 0 && mode == BlendNormal {
				continue
			}
			if useMul {
				p = mulPixel(p, mr, mg, mb, ma)
			}
			dp[di+x] = compose(mode, p, dp[di+x])
		}
	}
}
