package panelexport

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Document page geometry, in millimeters on A4 portrait.
const (
	docMargin       = 15.0
	docPanelSpacing = 8.0
	docLineHeight   = 6.0
	docCaptionSize  = 11.0
	docTitleSize    = 16.0
	docFooterSize   = 9.0
	docFooterY      = 7.0 // distance from the bottom edge

	// A single panel may not claim more than this fraction of a page's
	// content height; extreme aspect ratios shrink instead of overflowing.
	docMaxPanelFrac = 0.6

	// Height of the bordered box drawn in place of an image that failed
	// to load.
	docPlaceholderHeight = 60.0
)

// documentRenderer lays panels out on fixed-size pages, one below the
// previous with its caption beneath it, flowing onto new pages when vertical
// space runs out. Panels whose image cannot be loaded are replaced by a
// numbered placeholder box so ordering and numbering stay intact.
type documentRenderer struct {
	loader ImageLoader
}

func (r *documentRenderer) render(ctx context.Context, panels []Panel, cfg ExportConfiguration) ([]Artifact, error) {
	settings := cfg.Quality.Settings()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(cfg.Title, true)
	if cfg.Author != "" {
		pdf.SetAuthor(cfg.Author, true)
	}
	// Page breaks are layout decisions made below, not encoder side effects.
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*docMargin
	contentH := pageH - 2*docMargin

	y := docMargin
	if cfg.Title != "" {
		pdf.SetFont("Helvetica", "B", docTitleSize)
		tw := pdf.GetStringWidth(cfg.Title)
		pdf.Text((pageW-tw)/2, y+docLineHeight, cfg.Title)
		y += 2 * docLineHeight
	}
	pdf.SetFont("Helvetica", "", docCaptionSize)

	for i, panel := range panels {
		img, err := r.loader.Load(ctx, panel.ImageURL)

		var boxW, boxH float64
		if err == nil {
			boxW, boxH = fitPanelBox(img.Width, img.Height, contentW, contentH)
		} else {
			boxW, boxH = contentW, docPlaceholderHeight
		}

		if y+boxH > pageH-docMargin {
			pdf.AddPage()
			y = docMargin
		}
		x := docMargin + (contentW-boxW)/2

		if err == nil {
			data, encErr := encodeJPEG(img.Image, settings.EncoderQuality())
			if encErr != nil {
				return nil, &RenderingError{Format: FormatDocument, Err: encErr}
			}
			name := fmt.Sprintf("panel-%d", i+1)
			opts := fpdf.ImageOptions{ImageType: "JPG"}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
			pdf.ImageOptions(name, x, y, boxW, boxH, false, opts, 0, "")
		} else {
			r.drawPlaceholder(pdf, x, y, boxW, boxH, i+1)
		}
		y += boxH + docPanelSpacing

		if cfg.IncludeCaptions && panel.Caption != "" {
			lines := Wrap(panel.Caption, contentW, pdf.GetStringWidth)
			for _, line := range lines {
				if y+docLineHeight > pageH-docMargin {
					pdf.AddPage()
					y = docMargin
				}
				pdf.Text(docMargin, y+docLineHeight-1.5, line)
				y += docLineHeight
			}
			y += docPanelSpacing / 2
		}
	}

	if cfg.IncludeFooter {
		r.stampFooters(pdf, cfg.Title, pageW, pageH)
	}

	if pdf.Err() {
		return nil, &RenderingError{Format: FormatDocument, Err: pdf.Error()}
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderingError{Format: FormatDocument, Err: err}
	}
	return []Artifact{{
		Filename:    suggestedFilename(cfg.Title, "pdf"),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}}, nil
}

// drawPlaceholder renders a bordered box with the panel's ordinal as a
// visible label where the image would have been.
func (r *documentRenderer) drawPlaceholder(pdf *fpdf.Fpdf, x, y, w, h float64, ordinal int) {
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.4)
	pdf.Rect(x, y, w, h, "D")

	label := fmt.Sprintf("Panel %d", ordinal)
	pdf.SetTextColor(120, 120, 120)
	lw := pdf.GetStringWidth(label)
	pdf.Text(x+(w-lw)/2, y+h/2+docLineHeight/4, label)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
}

// stampFooters writes "page N of M" (and the title, when set) on every page.
// This runs after layout because the total page count is only known then.
func (r *documentRenderer) stampFooters(pdf *fpdf.Fpdf, title string, pageW, pageH float64) {
	total := pdf.PageCount()
	pdf.SetFont("Helvetica", "", docFooterSize)
	pdf.SetTextColor(120, 120, 120)
	for n := 1; n <= total; n++ {
		pdf.SetPage(n)
		marker := fmt.Sprintf("page %d of %d", n, total)
		pdf.Text(pageW-docMargin-pdf.GetStringWidth(marker), pageH-docFooterY, marker)
		if title != "" {
			pdf.Text(docMargin, pageH-docFooterY, title)
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

// fitPanelBox fits a source raster into the page's content width while
// preserving aspect ratio, then caps the height at docMaxPanelFrac of the
// content height, shrinking the width proportionally when the cap bites.
func fitPanelBox(srcW, srcH int, contentW, contentH float64) (w, h float64) {
	w = contentW
	h = w * float64(srcH) / float64(srcW)
	if maxH := docMaxPanelFrac * contentH; h > maxH {
		w = w * maxH / h
		h = maxH
	}
	return w, h
}
