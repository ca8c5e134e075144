//go:build !cgo || !libjpeg

package capture

import (
	"image"
	"image/jpeg"
	"io"
)

func encodeJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}
