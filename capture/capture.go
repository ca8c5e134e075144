// Package capture saves what a window shows to an image file.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbinani/screenshot"
	"github.com/nfnt/resize"
)

// ErrUnsupportedFormat is returned for file extensions other than .png, .jpg
// and .jpeg.
var ErrUnsupportedFormat = errors.New("capture: unsupported image format")

type Options struct {
	// Path selects the encoder by extension.
	Path string
	// ThumbnailWidth writes a second, scaled image next to Path when > 0.
	ThumbnailWidth uint
	// Quality is the JPEG quality, 1-100. Zero means 90.
	Quality int
	// Expect is compared with the top left pixel of the capture.
	Expect *color.RGBA
}

// Screen grabs rect, in screen coordinates, and writes it out as configured.
func Screen(rect image.Rectangle, opts Options) error {
	for i := 0; i < screenshot.NumActiveDisplays(); i++ {
		if b := screenshot.GetDisplayBounds(i); b.Overlaps(rect) {
			slog.Debug("capturing", "display", i, "display_bounds", b, "rect", rect)
		}
	}
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return fmt.Errorf("capture %v: %w", rect, err)
	}
	return Write(img, opts)
}

// Write saves img and its thumbnail, and checks the expected pixel.
func Write(img image.Image, opts Options) error {
	if opts.Expect != nil {
		b := img.Bounds()
		got, ok := CheckPixel(img, b.Min.X, b.Min.Y, *opts.Expect, 1)
		if ok {
			slog.Info("corner pixel matches clear color", "rgba", got)
		} else {
			slog.Warn("corner pixel differs from clear color", "rgba", got, "want", *opts.Expect)
		}
	}

	if err := Save(img, opts.Path, opts.Quality); err != nil {
		return err
	}
	slog.Info("saved capture", "path", opts.Path, "size", img.Bounds().Size())

	if opts.ThumbnailWidth == 0 {
		return nil
	}
	thumbPath := ThumbnailPath(opts.Path)
	if err := Save(Thumbnail(img, opts.ThumbnailWidth), thumbPath, opts.Quality); err != nil {
		return err
	}
	slog.Info("saved thumbnail", "path", thumbPath, "width", opts.ThumbnailWidth)
	return nil
}

// Save writes img to path as PNG or JPEG depending on the extension.
func Save(img image.Image, path string, quality int) (ferr error) {
	encode, err := encoderFor(path, quality)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && ferr == nil {
			ferr = err
		}
	}()
	if err := encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func encoderFor(path string, quality int) (func(io.Writer, image.Image) error, error) {
	if quality <= 0 || quality > 100 {
		quality = 90
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return encodeJPEG(w, img, quality)
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Thumbnail scales img to width, keeping its aspect ratio.
func Thumbnail(img image.Image, width uint) image.Image {
	return resize.Resize(width, 0, img, resize.Bilinear)
}

// ThumbnailPath inserts ".thumb" before the extension of path.
func ThumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".thumb" + ext
}

// RGBA converts a normalized float color to 8 bits per channel.
func RGBA(c [4]float32) color.RGBA {
	u := func(v float32) uint8 {
		return uint8(math.Round(float64(max(0, min(1, v))) * 255))
	}
	return color.RGBA{R: u(c[0]), G: u(c[1]), B: u(c[2]), A: u(c[3])}
}

// CheckPixel reports the pixel at x, y and whether every channel is within
// tolerance of want.
func CheckPixel(img image.Image, x, y int, want color.RGBA, tolerance uint8) (color.RGBA, bool) {
	got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	near := func(a, b uint8) bool {
		if a > b {
			return a-b <= tolerance
		}
		return b-a <= tolerance
	}
	return got, near(got.R, want.R) && near(got.G, want.G) && near(got.B, want.B) && near(got.A, want.A)
}
