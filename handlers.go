package panelexport

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ExportRequest is the body of POST /export: the ordered panel list plus the
// export configuration, exactly as the content front end holds them.
type ExportRequest struct {
	Panels []Panel             `json:"panels"`
	Config ExportConfiguration `json:"config"`
}

func (a *App) handleExport(c echo.Context) error {
	if !a.exportLimiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "export rate limit exceeded"})
	}

	var req ExportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed export request"})
	}

	start := time.Now()
	artifacts, err := a.Exporter.Export(c.Request().Context(), req.Panels, req.Config)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedFormat), errors.Is(err, ErrInvalidPanel):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, ErrEmptyExport):
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		default:
			return err
		}
	}

	a.recordExport(c, req, artifacts, time.Since(start))
	return deliverArtifacts(c, artifacts, req.Config)
}

// recordExport logs the export to the history store. Failures here never
// fail the export itself.
func (a *App) recordExport(c echo.Context, req ExportRequest, artifacts []Artifact, elapsed time.Duration) {
	if a.History == nil {
		return
	}
	var total int64
	for _, art := range artifacts {
		total += int64(len(art.Data))
	}
	_, err := a.History.Record(ExportRecord{
		Format:     string(req.Config.Format),
		Quality:    string(req.Config.Quality),
		PanelCount: len(req.Panels),
		Artifacts:  len(artifacts),
		Bytes:      total,
		DurationMS: elapsed.Milliseconds(),
	})
	if err != nil {
		c.Logger().Errorf("record export: %v", err)
	}
}

// deliverArtifacts writes the export result as a download. A single artifact
// goes out as-is with an attachment disposition; a squareSet's multiple
// artifacts are bundled into one zip.
func deliverArtifacts(c echo.Context, artifacts []Artifact, cfg ExportConfiguration) error {
	if len(artifacts) == 1 {
		return attachment(c, artifacts[0].Filename, artifacts[0].ContentType, artifacts[0].Data)
	}
	data, err := zipArtifacts(artifacts)
	if err != nil {
		return err
	}
	return attachment(c, suggestedFilename(cfg.Title, "zip"), "application/zip", data)
}

func attachment(c echo.Context, filename, contentType string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, contentType, data)
}

func (a *App) handleRecentExports(c echo.Context) error {
	if a.History == nil {
		return c.JSON(http.StatusOK, []ExportRecord{})
	}
	recs, err := a.History.Recent(20)
	if err != nil {
		return err
	}
	if recs == nil {
		recs = []ExportRecord{}
	}
	return c.JSON(http.StatusOK, recs)
}

func (a *App) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": a.Config.Name})
}
