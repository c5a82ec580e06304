package panelexport

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// scaleInto scales src onto dst within rect, preserving whatever aspect the
// caller chose for rect.
func scaleInto(dst draw.Image, rect image.Rectangle, src image.Image) {
	draw.CatmullRom.Scale(dst, rect, src, src.Bounds(), draw.Over, nil)
}

// fillRect paints rect on dst with a solid color.
func fillRect(dst draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(dst, rect, &image.Uniform{c}, image.Point{}, draw.Src)
}

// encodeJPEG encodes img with the given encoder quality (1-100).
func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
