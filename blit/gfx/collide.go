package gfx

import (
	"github.com/chewxy/math32"

	"github.com/avico/go-blit/blit/geom"
	"github.com/avico/go-blit/blit/sprite"
)

// SpriteCollide tests two transformed sprite frames for pixel-exact
// overlap. The transformed bounding boxes are intersected first and an
// empty intersection returns false without sampling a single pixel.
// Otherwise every pixel of the intersection is inverse-mapped into both
// frames and the first position where both sampled pixels have non-zero
// alpha reports a collision.
//
// This is O(overlap area) and slow by design; callers should fast-reject
// with cheaper bounding tests before resorting to it.
func (c *Context) SpriteCollide(idA, frameA int, transA geom.Matrix, idB, frameB int, transB geom.Matrix) bool {
	sa := c.sprites.Get(idA)
	sb := c.sprites.Get(idB)
	if sa == nil || sb == nil {
		return false
	}
	fax, fay, ok := sa.FrameOrigin(frameA)
	if !ok {
		return false
	}
	fbx, fby, ok := sb.FrameOrigin(frameB)
	if !ok {
		return false
	}

	ma := transA.Mul(geom.Translation(-float32(sa.OriginX), -float32(sa.OriginY)))
	mb := transB.Mul(geom.Translation(-float32(sb.OriginX), -float32(sb.OriginY)))

	boundsA := ma.TransformBounds(float32(sa.Width), float32(sa.Height))
	boundsB := mb.TransformBounds(float32(sb.Width), float32(sb.Height))
	overlap, ok := boundsA.Intersect(boundsB)
	if !ok {
		return false
	}

	invA, okA := ma.Invert()
	invB, okB := mb.Invert()
	if !okA || !okB {
		return false
	}

	x0 := int(math32.Floor(overlap.MinX))
	y0 := int(math32.Floor(overlap.MinY))
	x1 := int(math32.Ceil(overlap.MaxX))
	y1 := int(math32.Ceil(overlap.MaxY))

	for y := y0; y < y1; y++ {
		pa := invA.Apply(geom.Pt(float32(x0)+0.5, float32(y)+0.5))
		pb := invB.Apply(geom.Pt(float32(x0)+0.5, float32(y)+0.5))
		for x := x0; x < x1; x++ {
			if sampleAlpha(sa, fax, fay, pa) && sampleAlpha(sb, fbx, fby, pb) {
				return true
			}
			pa = pa.Add(geom.Pt(invA.A, invA.B))
			pb = pb.Add(geom.Pt(invB.A, invB.B))
		}
	}
	return false
}

// sampleAlpha reports whether the frame-local position hits a pixel
// with non-zero alpha.
func sampleAlpha(s *sprite.Sprite, frameX, frameY int, p geom.Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= float32(s.Width) || p.Y >= float32(s.Height) {
		return false
	}
	canvas := s.Canvas()
	return canvas.GetPixel(frameX+int(p.X), frameY+int(p.Y)).A() != 0
}
