package gfx

import "github.com/avico/go-blit/blit/buffer"

// BlendMode selects how source pixels combine with the render target.
// It is a single global switch on the Context rather than a per-call
// parameter, so each draw call picks its inner loop once and the
// per-pixel path stays branch-free.
type BlendMode int

const (
	// BlendNormal is the standard premultiplied-alpha-over composite.
	BlendNormal BlendMode = iota
	// BlendAdd adds source colour to the target, clamped at white.
	// Target alpha is left untouched.
	BlendAdd
	// BlendMultiply multiplies target colour by source colour.
	BlendMultiply
	// BlendSubtract subtracts source colour from the target, clamped
	// at black.
	BlendSubtract

	// blendNone overwrites target pixels without compositing. Internal
	// fast path for backgrounds and opaque copies.
	blendNone
)

// Colour is an RGBA multiply factor applied to a whole draw call, each
// channel in [0, 1].
type Colour struct {
	R, G, B, A float32
}

// White is the identity multiply factor.
var White = Colour{1, 1, 1, 1}

// Alpha returns a colour multiply that only scales opacity.
func Alpha(a float32) Colour { return Colour{1, 1, 1, a} }

func (c Colour) isWhite() bool {
	return c.R >= 1 && c.G >= 1 && c.B >= 1 && c.A >= 1
}

// factors converts the multiply to fixed-point 0..255 channel factors.
func (c Colour) factors() (mr, mg, mb, ma uint32) {
	return clamp255(c.R), clamp255(c.G), clamp255(c.B), clamp255(c.A)
}

func clamp255(f float32) uint32 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	default:
		return uint32(f*255 + 0.5)
	}
}

// over composites a premultiplied source pixel onto dst.
func over(src, dst buffer.Pixel) buffer.Pixel {
	sa := uint32(src) >> 24
	if sa == 255 {
		return src
	}
	if sa == 0 {
		return dst
	}
	inv := 255 - sa
	a := sa + (uint32(dst)>>24)*inv/255
	r := (uint32(src)>>16)&0xFF + (uint32(dst)>>16)&0xFF*inv/255
	g := (uint32(src)>>8)&0xFF + (uint32(dst)>>8)&0xFF*inv/255
	b := uint32(src)&0xFF + uint32(dst)&0xFF*inv/255
	return buffer.Pixel(a<<24 | r<<16 | g<<8 | b)
}

// mulPixel scales a premultiplied pixel by per-channel factors. The
// alpha factor scales every channel since the data is premultiplied.
func mulPixel(p buffer.Pixel, mr, mg, mb, ma uint32) buffer.Pixel {
	a := (uint32(p) >> 24) * ma / 255
	r := (uint32(p)>>16)&0xFF*mr*ma/65025
	g := (uint32(p)>>8)&0xFF*mg*ma/65025
	b := uint32(p)&0xFF*mb*ma/65025
	return buffer.Pixel(a<<24 | r<<16 | g<<8 | b)
}

func addPixel(src, dst buffer.Pixel) buffer.Pixel {
	r := min255((uint32(dst)>>16)&0xFF + (uint32(src)>>16)&0xFF)
	g := min255((uint32(dst)>>8)&0xFF + (uint32(src)>>8)&0xFF)
	b := min255(uint32(dst)&0xFF + uint32(src)&0xFF)
	return buffer.Pixel(uint32(dst)&0xFF000000 | r<<16 | g<<8 | b)
}

func multiplyPixel(src, dst buffer.Pixel) buffer.Pixel {
	r := (uint32(dst) >> 16) & 0xFF * ((uint32(src) >> 16) & 0xFF) / 255
	g := (uint32(dst) >> 8) & 0xFF * ((uint32(src) >> 8) & 0xFF) / 255
	b := uint32(dst) & 0xFF * (uint32(src) & 0xFF) / 255
	return buffer.Pixel(uint32(dst)&0xFF000000 | r<<16 | g<<8 | b)
}

func subtractPixel(src, dst buffer.Pixel) buffer.Pixel {
	r := sub0((uint32(dst)>>16)&0xFF, (uint32(src)>>16)&0xFF)
	g := sub0((uint32(dst)>>8)&0xFF, (uint32(src)>>8)&0xFF)
	b := sub0(uint32(dst)&0xFF, uint32(src)&0xFF)
	return buffer.Pixel(uint32(dst)&0xFF000000 | r<<16 | g<<8 | b)
}

func min255(v uint32) uint32 {
	if v > 255 {
		return 255
	}
	return v
}

func sub0(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}

// compose combines one premultiplied source pixel with dst under the
// given mode. Used by the transformed-draw and single-pixel paths; the
// row blitters below inline the same arithmetic.
func compose(mode BlendMode, src, dst buffer.Pixel) buffer.Pixel {
	switch mode {
	case BlendAdd:
		return addPixel(src, dst)
	case BlendMultiply:
		return multiplyPixel(src, dst)
	case BlendSubtract:
		return subtractPixel(src, dst)
	case blendNone:
		return src
	default:
		return over(src, dst)
	}
}

// rowFn composites one span of premultiplied source pixels onto a
// destination span of equal length.
type rowFn func(dst, src []buffer.Pixel, mr, mg, mb, ma uint32)

func rowCopy(dst, src []buffer.Pixel, _, _, _, _ uint32) {
	copy(dst, src)
}

func rowNormal(dst, src []buffer.Pixel, _, _, _, _ uint32) {
	for i, s := range src {
		dst[i] = over(s, dst[i])
	}
}

func rowNormalMul(dst, src []buffer.Pixel, mr, mg, mb, ma uint32) {
	for i, s := range src {
		dst[i] = over(mulPixel(s, mr, mg, mb, ma), dst[i])
	}
}

func rowAdd(dst, src []buffer.Pixel, mr, mg, mb, ma uint32) {
	for i, s := range src {
		dst[i] = addPixel(mulPixel(s, mr, mg, mb, ma), dst[i])
	}
}

func rowMultiply(dst, src []buffer.Pixel, mr, mg, mb, ma uint32) {
	for i, s := range src {
		dst[i] = multiplyPixel(mulPixel(s, mr, mg, mb, ma), dst[i])
	}
}

func rowSubtract(dst, src []buffer.Pixel, mr, mg, mb, ma uint32) {
	for i, s := range src {
		dst[i] = subtractPixel(mulPixel(s, mr, mg, mb, ma), dst[i])
	}
}

// rowFor picks the inner loop for a whole draw call.
func rowFor(mode BlendMode, mul Colour) rowFn {
	switch mode {
	case BlendAdd:
		return rowAdd
	case BlendMultiply:
		return rowMultiply
	case BlendSubtract:
		return rowSubtract
	case blendNone:
		return rowCopy
	default:
		if mul.isWhite() {
			return rowNormal
		}
		return rowNormalMul
	}
}

// blit composites a w*h region of src at (srcX, srcY) onto the current
// render target at (dstX, dstY), clipping against both buffers. Source
// pixels are expected to be premultiplied for blending modes.
func (c *Context) blit(src *buffer.Buffer, srcX, srcY, dstX, dstY, w, h int, mode BlendMode, mul Colour) {
	dst := c.mustTarget()

	if dstX < 0 {
		srcX -= dstX
		w += dstX
		dstX = 0
	}
	if dstY < 0 {
		srcY -= dstY
		h += dstY
		dstY = 0
	}
	if srcX < 0 {
		dstX -= srcX
		w += srcX
		srcX = 0
	}
	if srcY < 0 {
		dstY -= srcY
		h += srcY
		srcY = 0
	}
	if n := dstX + w - dst.Width(); n > 0 {
		w -= n
	}
	if n := dstY + h - dst.Height(); n > 0 {
		h -= n
	}
	if n := srcX + w - src.Width(); n > 0 {
		w -= n
	}
	if n := srcY + h - src.Height(); n > 0 {
		h -= n
	}
	if w <= 0 || h <= 0 {
		return
	}

	row := rowFor(mode, mul)
	mr, mg, mb, ma := mul.factors()
	sp, dp := src.Pix(), dst.Pix()
	for y := 0; y < h; y++ {
		si := (srcY+y)*src.Width() + srcX
		di := (dstY+y)*dst.Width() + dstX
		row(dp[di:di+w], sp[si:si+w], mr, mg, mb, ma)
	}
}
