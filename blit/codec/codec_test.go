package codec

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avico/go-blit/blit/buffer"
)

func TestFromImageFlipsRows(t *testing.T) {
	// 1x2 image: top pixel red, bottom pixel blue.
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})

	buf, err := FromImage(img)
	require.NoError(t, err)

	// Row 0 is the bottom of the image.
	assert.Equal(t, buffer.Blue, buf.GetPixel(0, 0))
	assert.Equal(t, buffer.Red, buf.GetPixel(0, 1))
}

func TestFromImageRecoversStraightAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	buf, err := FromImage(img)
	require.NoError(t, err)

	p := buf.GetPixel(0, 0)
	assert.Equal(t, uint8(128), p.A())
	assert.InDelta(t, 200, int(p.R()), 1)
	assert.InDelta(t, 100, int(p.G()), 1)
	assert.InDelta(t, 50, int(p.B()), 1)
}

func TestToImageRoundTrips(t *testing.T) {
	buf, err := buffer.New(3, 2)
	require.NoError(t, err)
	buf.SetPixel(0, 0, buffer.ARGB(255, 10, 20, 30))
	buf.SetPixel(2, 1, buffer.ARGB(128, 200, 100, 50))

	back, err := FromImage(ToImage(buf))
	require.NoError(t, err)

	assert.Equal(t, buf.GetPixel(0, 0), back.GetPixel(0, 0))
	got := back.GetPixel(2, 1)
	assert.Equal(t, uint8(128), got.A())
	assert.InDelta(t, 200, int(got.R()), 1)
}

func TestUpscaleNearestNeighbour(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})

	big := Upscale(img, 3)
	assert.Equal(t, image.Rect(0, 0, 6, 3), big.Bounds())

	r, _, _, _ := big.At(2, 2).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	_, g, _, _ := big.At(3, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), g)
}

func TestUpscaleIdentityBelowTwo(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	assert.Equal(t, image.Image(img), Upscale(img, 1))
	assert.Equal(t, image.Image(img), Upscale(img, 0))
}

func TestSaveAndDecodePNG(t *testing.T) {
	buf, err := buffer.New(2, 2)
	require.NoError(t, err)
	buf.SetPixel(0, 0, buffer.ARGB(255, 1, 2, 3))
	buf.SetPixel(1, 1, buffer.ARGB(255, 9, 8, 7))

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, SavePNG(buf, path))

	back, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, buf.GetPixel(0, 0), back.GetPixel(0, 0))
	assert.Equal(t, buf.GetPixel(1, 1), back.GetPixel(1, 1))
}

func TestSaveImagePicksWebPByExtension(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	dir := t.TempDir()

	webpPath := filepath.Join(dir, "frame.webp")
	require.NoError(t, SaveImage(img, webpPath))
	data, err := os.ReadFile(webpPath)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))

	pngPath := filepath.Join(dir, "frame.png")
	require.NoError(t, SaveImage(img, pngPath))
	data, err = os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(data[:4]))
}

func TestSaveWebPIgnoresExtension(t *testing.T) {
	buf, err := buffer.New(2, 2)
	require.NoError(t, err)
	buf.Clear(buffer.Red)

	// The format is the function's contract, not the path's.
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, SaveWebP(buf, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, ErrLoad)
}

func TestDecodeCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	_, err := Decode(path)
	assert.ErrorIs(t, err, ErrLoad)
}
