package capture

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clearColor = color.RGBA{R: 0, G: 51, B: 102, A: 255}

func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestRGBA(t *testing.T) {
	assert.Equal(t, clearColor, RGBA([4]float32{0.0, 0.2, 0.4, 1.0}))
	assert.Equal(t, color.RGBA{R: 255, A: 0}, RGBA([4]float32{2, -1, 0, 0}))
}

func TestCheckPixel(t *testing.T) {
	img := filled(4, 4, clearColor)
	img.SetRGBA(3, 3, color.RGBA{R: 1, G: 52, B: 101, A: 255})
	img.SetRGBA(2, 2, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	got, ok := CheckPixel(img, 0, 0, clearColor, 0)
	assert.True(t, ok)
	assert.Equal(t, clearColor, got)

	_, ok = CheckPixel(img, 3, 3, clearColor, 1)
	assert.True(t, ok)
	_, ok = CheckPixel(img, 3, 3, clearColor, 0)
	assert.False(t, ok)
	_, ok = CheckPixel(img, 2, 2, clearColor, 1)
	assert.False(t, ok)
}

func TestThumbnailPath(t *testing.T) {
	assert.Equal(t, "out/frame.thumb.png", ThumbnailPath("out/frame.png"))
	assert.Equal(t, "frame.thumb.JPG", ThumbnailPath("frame.JPG"))
	assert.Equal(t, "frame.thumb", ThumbnailPath("frame"))
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, Save(filled(8, 6, clearColor), path, 0))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())
	_, ok := CheckPixel(img, 7, 5, clearColor, 0)
	assert.True(t, ok)
}

func TestSaveJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.jpeg")
	require.NoError(t, Save(filled(16, 16, clearColor), path, 95))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
	_, ok := CheckPixel(img, 8, 8, clearColor, 8)
	assert.True(t, ok)
}

func TestSaveUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.bmp")
	err := Save(filled(1, 1, clearColor), path, 0)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NoFileExists(t, path)
}

func TestWriteWithThumbnail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")
	want := clearColor
	require.NoError(t, Write(filled(64, 48, clearColor), Options{
		Path:           path,
		ThumbnailWidth: 16,
		Expect:         &want,
	}))

	assert.FileExists(t, path)
	f, err := os.Open(filepath.Join(dir, "frame.thumb.png"))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 12, cfg.Height)
}
