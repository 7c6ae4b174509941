// Package codec converts between on-disk image files and the engine's
// bottom-up ARGB buffers. PNG and TGA decoding are registered; any
// other format registered with image.Decode works too. The engine core
// never touches format specifics.
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	_ "github.com/ftrvxmtrx/tga"

	"github.com/avico/go-blit/blit/buffer"
)

// ErrLoad is returned when a file cannot be opened or decoded.
var ErrLoad = errors.New("codec: load failed")

// Decode reads an image file and converts it to an ARGB buffer. Row 0
// of the result is the bottom of the image.
func Decode(path string) (*buffer.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}
	return FromImage(img)
}

// FromImage converts any image.Image to a bottom-up ARGB buffer.
func FromImage(img image.Image) (*buffer.Buffer, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf, err := buffer.New(w, h)
	if err != nil {
		return nil, err
	}
	pix := buf.Pix()
	for y := 0; y < h; y++ {
		row := (h - 1 - y) * w
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA() returns premultiplied 16-bit channels; recover the
			// straight 8-bit values the canvas stores.
			a8 := uint8(a >> 8)
			var r8, g8, b8 uint8
			if a > 0 {
				r8 = uint8(r * 0xFF / a)
				g8 = uint8(g * 0xFF / a)
				b8 = uint8(b * 0xFF / a)
			}
			pix[row+x] = buffer.ARGB(a8, r8, g8, b8)
		}
	}
	return buf, nil
}

// ToImage converts a bottom-up ARGB buffer to a top-down NRGBA image.
func ToImage(buf *buffer.Buffer) *image.NRGBA {
	w, h := buf.Width(), buf.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	pix := buf.Pix()
	for y := 0; y < h; y++ {
		row := (h - 1 - y) * w
		for x := 0; x < w; x++ {
			p := pix[row+x]
			i := y*img.Stride + x*4
			img.Pix[i] = p.R()
			img.Pix[i+1] = p.G()
			img.Pix[i+2] = p.B()
			img.Pix[i+3] = p.A()
		}
	}
	return img
}

// Upscale magnifies an image by an integer factor with nearest-neighbour
// sampling, matching what the display backends do on present.
func Upscale(img image.Image, scale int) image.Image {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SavePNG encodes a buffer to a PNG file.
func SavePNG(buf *buffer.Buffer, path string) error {
	return encodeTo(ToImage(buf), path, false)
}

// SaveWebP encodes a buffer to a lossless WebP file regardless of the
// path's extension.
func SaveWebP(buf *buffer.Buffer, path string) error {
	return encodeTo(ToImage(buf), path, true)
}

// SaveImage encodes an image to disk, picking the format from the file
// extension: .webp writes lossless WebP, anything else PNG.
func SaveImage(img image.Image, path string) error {
	return encodeTo(img, path, strings.EqualFold(filepath.Ext(path), ".webp"))
}

func encodeTo(img image.Image, path string, webp bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if webp {
		if err := nativewebp.Encode(f, img, nil); err != nil {
			return fmt.Errorf("failed to encode WebP: %w", err)
		}
		return nil
	}
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
