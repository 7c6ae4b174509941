package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avico/go-blit/blit/buffer"
	"github.com/avico/go-blit/blit/geom"
	"github.com/avico/go-blit/blit/sprite"
)

func newTestContext(t *testing.T, w, h int) *Context {
	t.Helper()
	display, err := buffer.New(w, h)
	require.NoError(t, err)
	return New(display, sprite.NewRegistry())
}

func TestClearFillsTarget(t *testing.T) {
	c := newTestContext(t, 4, 4)
	c.Clear(buffer.ARGB(0x40, 1, 2, 3))
	for _, p := range c.Display().Pix() {
		assert.Equal(t, buffer.ARGB(0x40, 1, 2, 3), p)
	}
}

func TestSetRenderTargetReturnsPrevious(t *testing.T) {
	c := newTestContext(t, 4, 4)
	offscreen, _ := buffer.New(2, 2)

	prev := c.SetRenderTarget(offscreen)
	assert.Same(t, c.Display(), prev)

	c.Clear(buffer.Red)
	assert.Equal(t, buffer.Red, offscreen.GetPixel(0, 0))
	assert.Equal(t, buffer.Pixel(0), c.Display().GetPixel(0, 0))

	prev = c.SetRenderTarget(nil)
	assert.Same(t, offscreen, prev)
	assert.Same(t, c.Display(), c.Target())
}

func TestDrawPixelNormalFullAlphaIsExact(t *testing.T) {
	c := newTestContext(t, 4, 4)
	colour := buffer.ARGB(255, 200, 100, 50)
	c.DrawPixel(geom.Pt(2, 1), colour)
	assert.Equal(t, colour, c.Display().GetPixel(2, 1))
}

func TestDrawPixelBlendsOverBackground(t *testing.T) {
	c := newTestContext(t, 1, 1)
	c.Clear(buffer.ARGB(255, 100, 100, 100))
	c.DrawPixel(geom.Pt(0, 0), buffer.ARGB(128, 255, 255, 255))

	// Premultiplied over: 128 + 100*127/255 = 177 (with truncation).
	got := c.Display().GetPixel(0, 0)
	assert.Equal(t, uint8(177), got.R())
	assert.Equal(t, uint8(177), got.G())
	assert.Equal(t, uint8(177), got.B())
	assert.Equal(t, uint8(255), got.A())
}

func TestDrawPixelOutOfBoundsIsSkipped(t *testing.T) {
	c := newTestContext(t, 2, 2)
	c.DrawPixel(geom.Pt(-1, 0), buffer.White)
	c.DrawPixel(geom.Pt(0, 5), buffer.White)
	for _, p := range c.Display().Pix() {
		assert.Equal(t, buffer.Pixel(0), p)
	}
}

func TestBlendAddClampsAtWhite(t *testing.T) {
	c := newTestContext(t, 1, 1)
	c.Clear(buffer.ARGB(255, 200, 10, 0))
	c.SetBlendMode(BlendAdd)
	c.DrawPixel(geom.Pt(0, 0), buffer.ARGB(255, 100, 10, 5))

	got := c.Display().GetPixel(0, 0)
	assert.Equal(t, uint8(255), got.R(), "clamped")
	assert.Equal(t, uint8(20), got.G())
	assert.Equal(t, uint8(5), got.B())
	assert.Equal(t, uint8(255), got.A(), "alpha untouched")
}

func TestBlendMultiply(t *testing.T) {
	c := newTestContext(t, 1, 1)
	c.Clear(buffer.ARGB(255, 200, 128, 0))
	c.SetBlendMode(BlendMultiply)
	c.DrawPixel(geom.Pt(0, 0), buffer.ARGB(255, 128, 255, 255))

	got := c.Display().GetPixel(0, 0)
	assert.Equal(t, uint8(100), got.R())
	assert.Equal(t, uint8(128), got.G())
	assert.Equal(t, uint8(0), got.B())
}

func TestBlendSubtractClampsAtBlack(t *testing.T) {
	c := newTestContext(t, 1, 1)
	c.Clear(buffer.ARGB(255, 100, 5, 50))
	c.SetBlendMode(BlendSubtract)
	c.DrawPixel(geom.Pt(0, 0), buffer.ARGB(255, 30, 10, 50))

	got := c.Display().GetPixel(0, 0)
	assert.Equal(t, uint8(70), got.R())
	assert.Equal(t, uint8(0), got.G(), "clamped")
	assert.Equal(t, uint8(0), got.B())
}

func TestDrawLineEndpointsInclusive(t *testing.T) {
	c := newTestContext(t, 8, 8)
	c.DrawLine(geom.Pt(1, 1), geom.Pt(5, 1), buffer.White)

	for x := 1; x <= 5; x++ {
		assert.Equal(t, buffer.White, c.Display().GetPixel(x, 1), "x=%d", x)
	}
	assert.Equal(t, buffer.Pixel(0), c.Display().GetPixel(0, 1))
	assert.Equal(t, buffer.Pixel(0), c.Display().GetPixel(6, 1))
}

func TestDrawLineDiagonal(t *testing.T) {
	c := newTestContext(t, 8, 8)
	c.DrawLine(geom.Pt(0, 0), geom.Pt(3, 3), buffer.White)
	for i := 0; i <= 3; i++ {
		assert.Equal(t, buffer.White, c.Display().GetPixel(i, i))
	}
}

func TestDrawRectOutlineAndFilled(t *testing.T) {
	c := newTestContext(t, 8, 8)
	c.DrawRect(geom.Pt(5, 6), geom.Pt(1, 2), buffer.White, false)

	d := c.Display()
	// Corners normalize regardless of argument order.
	assert.Equal(t, buffer.White, d.GetPixel(1, 2))
	assert.Equal(t, buffer.White, d.GetPixel(5, 6))
	assert.Equal(t, buffer.White, d.GetPixel(3, 2))
	assert.Equal(t, buffer.White, d.GetPixel(1, 4))
	// Interior untouched.
	assert.Equal(t, buffer.Pixel(0), d.GetPixel(3, 4))

	c.Clear(buffer.Transparent)
	c.DrawRect(geom.Pt(1, 2), geom.Pt(5, 6), buffer.White, true)
	assert.Equal(t, buffer.White, d.GetPixel(3, 4))
}

func TestDrawCircleOutline(t *testing.T) {
	c := newTestContext(t, 16, 16)
	c.DrawCircle(geom.Pt(8, 8), 4, buffer.White)

	d := c.Display()
	assert.Equal(t, buffer.White, d.GetPixel(12, 8))
	assert.Equal(t, buffer.White, d.GetPixel(4, 8))
	assert.Equal(t, buffer.White, d.GetPixel(8, 12))
	assert.Equal(t, buffer.White, d.GetPixel(8, 4))
	// Centre untouched.
	assert.Equal(t, buffer.Pixel(0), d.GetPixel(8, 8))
}

func TestDrawPixelDataPremultipliesOnce(t *testing.T) {
	c := newTestContext(t, 4, 4)
	raw, _ := buffer.New(2, 2)
	raw.SetPixel(0, 0, buffer.ARGB(255, 10, 20, 30))

	c.DrawPixelData(raw, geom.Pt(1, 1), 1)
	assert.True(t, raw.Premultiplied())
	assert.Equal(t, buffer.ARGB(255, 10, 20, 30), c.Display().GetPixel(1, 1))
}

func TestDrawPixelDataUniformAlpha(t *testing.T) {
	c := newTestContext(t, 2, 2)
	raw, _ := buffer.New(1, 1)
	raw.SetPixel(0, 0, buffer.ARGB(255, 255, 255, 255))

	c.DrawPixelData(raw, geom.Pt(0, 0), 0.5)
	got := c.Display().GetPixel(0, 0)
	// 50% white over transparent black leaves half-intensity premult.
	assert.InDelta(t, 128, int(got.R()), 1)
	assert.InDelta(t, 128, int(got.A()), 1)
}
