package buffer

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned when a buffer is requested with
// non-positive dimensions.
var ErrInvalidSize = errors.New("buffer: invalid size")

// Pixel is a single 32-bit ARGB value (A in the top byte).
type Pixel uint32

const (
	White       Pixel = 0xFFFFFFFF
	Black       Pixel = 0xFF000000
	Red         Pixel = 0xFFFF0000
	Green       Pixel = 0xFF00FF00
	Blue        Pixel = 0xFF0000FF
	Magenta     Pixel = 0xFFFF00FF
	Cyan        Pixel = 0xFF00FFFF
	Yellow      Pixel = 0xFFFFFF00
	Orange      Pixel = 0xFFFF8000
	Grey        Pixel = 0xFF808080
	Transparent Pixel = 0x00000000
)

// ARGB packs the four channels into a Pixel.
func ARGB(a, r, g, b uint8) Pixel {
	return Pixel(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// A returns the alpha channel.
func (p Pixel) A() uint8 { return uint8(p >> 24) }

// R returns the red channel.
func (p Pixel) R() uint8 { return uint8(p >> 16) }

// G returns the green channel.
func (p Pixel) G() uint8 { return uint8(p >> 8) }

// B returns the blue channel.
func (p Pixel) B() uint8 { return uint8(p) }

// Buffer is a width*height canvas of ARGB pixels. Rows are stored
// bottom-up: row 0 is the bottom of the image, matching the engine's
// bottom-left coordinate convention. A Buffer exclusively owns its
// pixel storage.
type Buffer struct {
	width  int
	height int
	pix    []Pixel

	// premultiplied marks the pixel data as already multiplied by its
	// own alpha, so raw blits can skip the conversion.
	premultiplied bool
}

// New allocates a zero-initialized (fully transparent) buffer.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]Pixel, width*height),
	}, nil
}

// FromPixels wraps caller-supplied pixel data as a Buffer. The buffer
// takes ownership of the slice; the caller must not reuse it.
func FromPixels(width, height int, pix []Pixel) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: %dx%d needs %d pixels, got %d", ErrInvalidSize, width, height, width*height, len(pix))
	}
	return &Buffer{width: width, height: height, pix: pix}, nil
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Pix exposes the raw pixel storage, row 0 first (bottom row).
func (b *Buffer) Pix() []Pixel { return b.pix }

// Contains reports whether (x, y) is inside the buffer.
func (b *Buffer) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// GetPixel reads the pixel at (x, y). Out-of-bounds reads return
// transparent black.
func (b *Buffer) GetPixel(x, y int) Pixel {
	if !b.Contains(x, y) {
		return Transparent
	}
	return b.pix[y*b.width+x]
}

// SetPixel overwrites the pixel at (x, y), ignoring out-of-bounds writes.
func (b *Buffer) SetPixel(x, y int, p Pixel) {
	if !b.Contains(x, y) {
		return
	}
	b.pix[y*b.width+x] = p
}

// Clear overwrites every pixel with the given colour, alpha included.
func (b *Buffer) Clear(p Pixel) {
	for i := range b.pix {
		b.pix[i] = p
	}
	b.premultiplied = false
}

// Clone returns a deep copy that owns its own storage.
func (b *Buffer) Clone() *Buffer {
	pix := make([]Pixel, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{width: b.width, height: b.height, pix: pix, premultiplied: b.premultiplied}
}

// Premultiplied reports whether the pixel data has been premultiplied.
func (b *Buffer) Premultiplied() bool { return b.premultiplied }

// Premultiply multiplies every pixel's colour channels by its alpha
// (scaled by 255) in place. Calling it twice is a no-op.
func (b *Buffer) Premultiply() {
	if b.premultiplied {
		return
	}
	for i, p := range b.pix {
		b.pix[i] = PremultiplyPixel(p)
	}
	b.premultiplied = true
}

// PremultiplyPixel returns the pixel with RGB scaled by its alpha.
// The alpha channel is preserved unchanged.
func PremultiplyPixel(p Pixel) Pixel {
	a := uint32(p.A())
	r := uint32(p.R()) * a / 255
	g := uint32(p.G()) * a / 255
	bl := uint32(p.B()) * a / 255
	return Pixel(a<<24 | r<<16 | g<<8 | bl)
}

// CopyFrom overwrites this buffer's pixels with src's. Dimensions must
// match exactly.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if src.width != b.width || src.height != b.height {
		return fmt.Errorf("%w: copy %dx%d into %dx%d", ErrInvalidSize, src.width, src.height, b.width, b.height)
	}
	copy(b.pix, src.pix)
	b.premultiplied = src.premultiplied
	return nil
}
