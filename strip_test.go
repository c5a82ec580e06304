package panelexport

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"testing"
)

func stripConfig() ExportConfiguration {
	// Low tier keeps the raster scale at 1.0 so expected pixel sizes are
	// the base constants.
	return ExportConfiguration{Format: FormatStrip, Quality: QualityLow}
}

func renderStrip(t *testing.T, loader *fakeLoader, panels []Panel) (int, int) {
	t.Helper()
	r := &stripRenderer{loader: loader}
	artifacts, err := r.render(context.Background(), panels, stripConfig())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(artifacts) != 1 {
		t.Fatalf("%d artifacts, want 1", len(artifacts))
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(artifacts[0].Data))
	if err != nil {
		t.Fatalf("output is not a decodable JPEG: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestStripHeightIsSumOfScaledHeights(t *testing.T) {
	loader := newFakeLoader()
	loader.images["a"] = [2]int{400, 400} // square  -> 800 tall at width 800
	loader.images["b"] = [2]int{400, 200} // 2:1     -> 400 tall
	loader.images["c"] = [2]int{200, 400} // 1:2     -> 1600 tall
	panels := []Panel{testPanel("a"), testPanel("b"), testPanel("c")}

	w, h := renderStrip(t, loader, panels)
	if w != stripBaseWidth {
		t.Errorf("width = %d, want %d", w, stripBaseWidth)
	}
	want := 800 + 400 + 1600 + 2*stripBaseSpacing
	if h != want {
		t.Errorf("height = %d, want %d", h, want)
	}
}

func TestStripSkipsFailedPanels(t *testing.T) {
	loader := newFakeLoader()
	loader.images["a"] = [2]int{400, 400}
	loader.images["c"] = [2]int{400, 400}
	panels := []Panel{testPanel("a"), testPanel("missing"), testPanel("c")}

	_, h := renderStrip(t, loader, panels)
	// The failed panel occupies no height; only one gap separates the two
	// survivors.
	want := 800 + 800 + stripBaseSpacing
	if h != want {
		t.Errorf("height = %d, want %d (failed panel must not occupy height)", h, want)
	}
}

func TestStripScaleFactorGrowsCanvas(t *testing.T) {
	loader := newFakeLoader()
	loader.images["a"] = [2]int{400, 400}
	panels := []Panel{testPanel("a")}

	r := &stripRenderer{loader: loader}
	artifacts, err := r.render(context.Background(), panels,
		ExportConfiguration{Format: FormatStrip, Quality: QualityHigh})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(artifacts[0].Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 2*stripBaseWidth {
		t.Errorf("width at high tier = %d, want %d", cfg.Width, 2*stripBaseWidth)
	}
}

func TestStripAllPanelsFailed(t *testing.T) {
	loader := newFakeLoader()
	panels := []Panel{testPanel("gone"), testPanel("also-gone")}

	r := &stripRenderer{loader: loader}
	_, err := r.render(context.Background(), panels, stripConfig())
	if !errors.Is(err, ErrEmptyExport) {
		t.Errorf("error = %v, want ErrEmptyExport", err)
	}
}
