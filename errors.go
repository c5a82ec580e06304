package panelexport

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when the requested export format is not
// one of the known variants. It is raised before any image is fetched.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ErrInvalidPanel is returned when a panel fails validation.
var ErrInvalidPanel = errors.New("invalid panel")

// ErrEmptyExport is returned when a raster export ends up with nothing to
// draw because every panel failed to load.
var ErrEmptyExport = errors.New("no panels could be rendered")

// ImageLoadError reports a panel-scoped acquisition failure: network error,
// bad status, decode error, or timeout. Renderers decide per format whether
// to substitute a placeholder or skip the panel.
type ImageLoadError struct {
	Locator string
	Err     error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("load image %q: %v", e.Locator, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// RenderingError reports an environment-level composition failure (PDF
// builder error, encoder failure). It is fatal for the export and is not
// retried.
type RenderingError struct {
	Format Format
	Err    error
}

func (e *RenderingError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Format, e.Err)
}

func (e *RenderingError) Unwrap() error { return e.Err }
