package panelexport

import (
	"context"
	"image"
	"image/color"
)

// Base square side in pixels before the raster scale is applied.
const squareBaseSide = 1080

// squareSetRenderer produces one square JPEG per panel, letterboxed (never
// cropped) onto a white canvas with the source centered on both axes. A
// panel whose image fails to load yields no artifact for that ordinal.
type squareSetRenderer struct {
	loader ImageLoader
}

func (r *squareSetRenderer) render(ctx context.Context, panels []Panel, cfg ExportConfiguration) ([]Artifact, error) {
	settings := cfg.Quality.Settings()
	side := int(squareBaseSide * settings.RasterScale)

	var artifacts []Artifact
	for _, panel := range panels {
		img, err := r.loader.Load(ctx, panel.ImageURL)
		if err != nil {
			continue
		}

		canvas := image.NewRGBA(image.Rect(0, 0, side, side))
		fillRect(canvas, canvas.Bounds(), color.White)

		drawW, drawH := letterbox(img.Width, img.Height, side)
		x := (side - drawW) / 2
		y := (side - drawH) / 2
		scaleInto(canvas, image.Rect(x, y, x+drawW, y+drawH), img.Image)

		data, err := encodeJPEG(canvas, settings.EncoderQuality())
		if err != nil {
			return nil, &RenderingError{Format: FormatSquareSet, Err: err}
		}
		artifacts = append(artifacts, Artifact{
			Filename:    suggestedFilename(cfg.Title, "jpg"),
			ContentType: "image/jpeg",
			Data:        data,
		})
	}
	if len(artifacts) == 0 {
		return nil, ErrEmptyExport
	}
	return indexFilenames(artifacts), nil
}

// letterbox maps the larger source dimension to the full square side and
// scales the smaller proportionally.
func letterbox(srcW, srcH, side int) (w, h int) {
	if srcW >= srcH {
		return side, side * srcH / srcW
	}
	return side * srcW / srcH, side
}
