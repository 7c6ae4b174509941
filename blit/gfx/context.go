// Package gfx implements the rasterizer: pixel, line, rectangle and
// circle primitives, transparent / rotated / affine-transformed sprite
// draws, sprite-based and debug text, pixel-exact sprite collision and
// the frame timing bar, all compositing into a current render target
// under a global blend mode.
package gfx

import (
	"errors"
	"fmt"

	"github.com/avico/go-blit/blit/buffer"
	"github.com/avico/go-blit/blit/sprite"
)

// ErrLoad is returned when a background image cannot be registered.
var ErrLoad = errors.New("gfx: load failed")

// Context carries the mutable drawing state: the current render target,
// the global blend mode, the sprite registry and any loaded backgrounds.
// One Context is created per engine; it is not safe for concurrent use.
type Context struct {
	display *buffer.Buffer
	target  *buffer.Buffer
	blend   BlendMode
	sprites *sprite.Registry

	backgrounds []*buffer.Buffer
}

// New creates a drawing context targeting the given display buffer.
func New(display *buffer.Buffer, sprites *sprite.Registry) *Context {
	return &Context{
		display: display,
		target:  display,
		blend:   BlendNormal,
		sprites: sprites,
	}
}

// Display returns the primary display buffer.
func (c *Context) Display() *buffer.Buffer { return c.display }

// Sprites returns the registry this context draws from.
func (c *Context) Sprites() *sprite.Registry { return c.sprites }

// SetRenderTarget redirects all subsequent drawing into the given
// buffer and returns the previous target. The context never owns the
// target; passing nil restores the display buffer.
func (c *Context) SetRenderTarget(t *buffer.Buffer) *buffer.Buffer {
	prev := c.target
	if t == nil {
		t = c.display
	}
	c.target = t
	return prev
}

// Target returns the current render target.
func (c *Context) Target() *buffer.Buffer { return c.target }

// BlendMode returns the active global blend mode.
func (c *Context) BlendMode() BlendMode { return c.blend }

// SetBlendMode switches the blend mode for all subsequent draws.
func (c *Context) SetBlendMode(m BlendMode) { c.blend = m }

// Clear fills every pixel of the current render target with the given
// colour. This is an overwrite, not a blend.
func (c *Context) Clear(p buffer.Pixel) {
	c.mustTarget().Clear(p)
}

// mustTarget asserts that drawing state exists. Drawing through a
// zero-value Context is a programming error, not a runtime condition.
func (c *Context) mustTarget() *buffer.Buffer {
	if c.target == nil {
		panic("gfx: drawing with no render target; construct the Context with gfx.New first")
	}
	return c.target
}

// LoadBackground registers a full-screen background image. The decoded
// image must match the display buffer's dimensions exactly. Returns the
// background index.
func (c *Context) LoadBackground(decode func(string) (*buffer.Buffer, error), path string) (int, error) {
	bg, err := decode(path)
	if err != nil {
		return -1, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if bg.Width() != c.display.Width() || bg.Height() != c.display.Height() {
		return -1, fmt.Errorf("%w: background %dx%d does not match display %dx%d",
			ErrLoad, bg.Width(), bg.Height(), c.display.Width(), c.display.Height())
	}
	c.backgrounds = append(c.backgrounds, bg)
	return len(c.backgrounds) - 1, nil
}

// DrawBackground copies a previously loaded background straight into
// the current render target. Unknown indexes are a no-op.
func (c *Context) DrawBackground(index int) {
	if index < 0 || index >= len(c.backgrounds) {
		return
	}
	bg := c.backgrounds[index]
	t := c.mustTarget()
	if t.Width() == bg.Width() && t.Height() == bg.Height() {
		copy(t.Pix(), bg.Pix())
		return
	}
	c.blit(bg, 0, 0, 0, 0, bg.Width(), bg.Height(), blendNone, White)
}
