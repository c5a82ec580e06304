package panelexport

import (
	"context"
	"fmt"
)

// formatRenderer is the capability shared by the closed variant set of
// export formats. Each variant owns its composition algorithm and shares
// only the image loader and the text wrapper.
type formatRenderer interface {
	render(ctx context.Context, panels []Panel, cfg ExportConfiguration) ([]Artifact, error)
}

// Exporter drives a full export: it validates the input, selects the
// renderer for the requested format, and returns the resulting artifacts.
// Panels are acquired and drawn sequentially; output order always matches
// input order regardless of which panels failed to load. There is no
// mid-export cancellation beyond the context passed by the caller.
type Exporter struct {
	loader ImageLoader
}

// NewExporter creates an Exporter that acquires images via loader.
func NewExporter(loader ImageLoader) *Exporter {
	if loader == nil {
		loader = NewHTTPLoader(nil)
	}
	return &Exporter{loader: loader}
}

// Export renders panels according to cfg. Document and strip exports yield a
// single artifact; squareSet yields one artifact per successfully loaded
// panel. An unknown format fails with ErrUnsupportedFormat before any image
// is fetched.
func (e *Exporter) Export(ctx context.Context, panels []Panel, cfg ExportConfiguration) ([]Artifact, error) {
	for i, p := range panels {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("panel %d: %w", i+1, err)
		}
	}

	var r formatRenderer
	switch cfg.Format {
	case FormatDocument:
		r = &documentRenderer{loader: e.loader}
	case FormatStrip:
		r = &stripRenderer{loader: e.loader}
	case FormatSquareSet:
		r = &squareSetRenderer{loader: e.loader}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, cfg.Format)
	}
	return r.render(ctx, panels, cfg)
}
