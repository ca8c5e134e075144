//go:build cgo && libjpeg

package capture

import (
	"image"
	"io"

	"github.com/pixiv/go-libjpeg/jpeg"
)

func encodeJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.EncoderOptions{
		Quality:        quality,
		OptimizeCoding: true,
	})
}
