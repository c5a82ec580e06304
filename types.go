package panelexport

import (
	"fmt"
	"image"
)

// Panel is one illustration unit supplied by the calling content layer.
// Position, size, and rotation are editor-space values; only renderers that
// honor manual layout consult them. The pipeline never mutates a Panel.
type Panel struct {
	ImageURL string  `json:"image_url"`
	Caption  string  `json:"caption,omitempty"`
	Position Point   `json:"position"`
	Size     Dimens  `json:"size"`
	Rotation float64 `json:"rotation,omitempty"`
}

// Point is an editor-space coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimens is an editor-space width/height pair.
type Dimens struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate checks the panel invariants. Panels arrive from an external
// collaborator, so malformed geometry is a caller error, not a render error.
func (p Panel) Validate() error {
	if p.ImageURL == "" {
		return fmt.Errorf("%w: empty image locator", ErrInvalidPanel)
	}
	if p.Size.Width <= 0 || p.Size.Height <= 0 {
		return fmt.Errorf("%w: size %gx%g", ErrInvalidPanel, p.Size.Width, p.Size.Height)
	}
	return nil
}

// Format selects which renderer composes the export.
type Format string

const (
	FormatDocument  Format = "document"
	FormatStrip     Format = "strip"
	FormatSquareSet Format = "squareSet"
)

// QualityTier is a named preset controlling raster scale and JPEG compression.
type QualityTier string

const (
	QualityHigh   QualityTier = "high"
	QualityMedium QualityTier = "medium"
	QualityLow    QualityTier = "low"
)

// QualitySettings is derived from a QualityTier. RasterScale multiplies the
// base canvas dimensions of the raster formats; JPEGQuality is a unit
// fraction in (0,1].
type QualitySettings struct {
	RasterScale float64
	JPEGQuality float64
}

// EncoderQuality converts the unit-fraction JPEG quality to the 1-100 range
// expected by image/jpeg.
func (q QualitySettings) EncoderQuality() int {
	return int(q.JPEGQuality*100 + 0.5)
}

// Settings maps a tier to its concrete quality settings. Unknown tiers fall
// back to medium.
func (t QualityTier) Settings() QualitySettings {
	switch t {
	case QualityHigh:
		return QualitySettings{RasterScale: 2.0, JPEGQuality: 1.0}
	case QualityLow:
		return QualitySettings{RasterScale: 1.0, JPEGQuality: 0.6}
	default:
		return QualitySettings{RasterScale: 1.5, JPEGQuality: 0.8}
	}
}

// ExportConfiguration controls one export call. It is immutable for the
// duration of the call.
type ExportConfiguration struct {
	Format          Format      `json:"format"`
	Quality         QualityTier `json:"quality"`
	IncludeCaptions bool        `json:"include_captions"`
	IncludeFooter   bool        `json:"include_footer"`
	Title           string      `json:"title,omitempty"`
	Author          string      `json:"author,omitempty"`
}

// LoadedImage is a decoded raster scoped to the rendering of a single panel.
// Images are never cached across export calls.
type LoadedImage struct {
	Image  image.Image
	Width  int
	Height int
}

// Artifact is an exported binary output plus its suggested filename.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}
