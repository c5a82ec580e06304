package panelexport

import (
	"context"
	"image"
	"image/color"
)

// Base canvas geometry for the strip format, in pixels before the quality
// tier's raster scale is applied.
const (
	stripBaseWidth   = 800
	stripBaseSpacing = 20
)

// stripRenderer stitches every panel into one tall JPEG at a fixed output
// width, preserving each panel's aspect ratio and separating panels by a
// fixed gap. Editor-space position and rotation are intentionally ignored:
// this format discards manual layout and relies purely on sequence order.
type stripRenderer struct {
	loader ImageLoader
}

func (r *stripRenderer) render(ctx context.Context, panels []Panel, cfg ExportConfiguration) ([]Artifact, error) {
	settings := cfg.Quality.Settings()
	width := int(stripBaseWidth * settings.RasterScale)
	spacing := int(stripBaseSpacing * settings.RasterScale)

	// First pass: load every image and precompute its scaled height so the
	// canvas can be sized exactly. A panel that fails to load is skipped
	// and occupies no height; unlike the document format there is no
	// placeholder in a seamless strip.
	type placed struct {
		img    *LoadedImage
		height int
	}
	var loaded []placed
	total := 0
	for _, panel := range panels {
		img, err := r.loader.Load(ctx, panel.ImageURL)
		if err != nil {
			continue
		}
		h := width * img.Height / img.Width
		loaded = append(loaded, placed{img: img, height: h})
		total += h
	}
	if len(loaded) == 0 {
		return nil, ErrEmptyExport
	}
	total += (len(loaded) - 1) * spacing

	// Second pass: draw top to bottom at the precomputed offsets.
	canvas := image.NewRGBA(image.Rect(0, 0, width, total))
	fillRect(canvas, canvas.Bounds(), color.White)
	y := 0
	for _, p := range loaded {
		scaleInto(canvas, image.Rect(0, y, width, y+p.height), p.img.Image)
		y += p.height + spacing
	}

	data, err := encodeJPEG(canvas, settings.EncoderQuality())
	if err != nil {
		return nil, &RenderingError{Format: FormatStrip, Err: err}
	}
	return []Artifact{{
		Filename:    suggestedFilename(cfg.Title, "jpg"),
		ContentType: "image/jpeg",
		Data:        data,
	}}, nil
}
