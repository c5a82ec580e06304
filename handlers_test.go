package panelexport

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestApp(t *testing.T, loader ImageLoader) *App {
	t.Helper()
	a := New(ServiceConfig{
		HistoryEnabled:      true,
		HistoryDatabasePath: filepath.Join(t.TempDir(), "exports.db"),
		ExportsPerMinute:    100,
	}, WithLoader(loader))
	if err := a.init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func postExport(t *testing.T, a *App, req ExportRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodPost, "/export", bytes.NewReader(body))
	r.Header.Set(echoContentType, "application/json")
	w := httptest.NewRecorder()
	a.Echo.ServeHTTP(w, r)
	return w
}

const echoContentType = "Content-Type"

func TestHandleExportStrip(t *testing.T) {
	loader := newFakeLoader()
	panels := testPanels(loader, 2, 400, 400)
	a := setupTestApp(t, loader)

	w := postExport(t, a, ExportRequest{
		Panels: panels,
		Config: ExportConfiguration{Format: FormatStrip, Quality: QualityLow, Title: "Web Comic"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get(echoContentType); ct != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, `web-comic.jpg`) {
		t.Errorf("content disposition = %q, want attachment with web-comic.jpg", cd)
	}
}

func TestHandleExportSquareSetDeliversZip(t *testing.T) {
	loader := newFakeLoader()
	panels := testPanels(loader, 3, 300, 300)
	a := setupTestApp(t, loader)

	w := postExport(t, a, ExportRequest{
		Panels: panels,
		Config: ExportConfiguration{Format: FormatSquareSet, Quality: QualityLow},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get(echoContentType); ct != "application/zip" {
		t.Errorf("content type = %q, want application/zip", ct)
	}
	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	if err != nil {
		t.Fatalf("body is not a zip: %v", err)
	}
	if len(zr.File) != 3 {
		t.Errorf("%d zip entries, want 3", len(zr.File))
	}
}

func TestHandleExportUnknownFormat(t *testing.T) {
	loader := newFakeLoader()
	a := setupTestApp(t, loader)

	w := postExport(t, a, ExportRequest{
		Panels: []Panel{testPanel("x")},
		Config: ExportConfiguration{Format: "gif89a"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(loader.calls) != 0 {
		t.Errorf("images fetched for an unsupported format")
	}
}

func TestHandleExportRecordsHistory(t *testing.T) {
	loader := newFakeLoader()
	panels := testPanels(loader, 2, 300, 300)
	a := setupTestApp(t, loader)

	w := postExport(t, a, ExportRequest{
		Panels: panels,
		Config: ExportConfiguration{Format: FormatDocument, Quality: QualityMedium},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	r := httptest.NewRequest(http.MethodGet, "/exports/", nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("exports status = %d", rec.Code)
	}
	var recs []ExportRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &recs); err != nil {
		t.Fatalf("parse history: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("%d history records, want 1", len(recs))
	}
	if recs[0].Format != "document" || recs[0].PanelCount != 2 || recs[0].Artifacts != 1 {
		t.Errorf("history record mismatch: %+v", recs[0])
	}
}

func TestHandleExportRateLimited(t *testing.T) {
	loader := newFakeLoader()
	panels := testPanels(loader, 1, 300, 300)
	a := New(ServiceConfig{ExportsPerMinute: 1}, WithLoader(loader))
	if err := a.init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	defer a.Close()

	req := ExportRequest{Panels: panels, Config: ExportConfiguration{Format: FormatStrip, Quality: QualityLow}}
	if w := postExport(t, a, req); w.Code != http.StatusOK {
		t.Fatalf("first export status = %d", w.Code)
	}
	if w := postExport(t, a, req); w.Code != http.StatusTooManyRequests {
		t.Errorf("second export status = %d, want 429", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	a := setupTestApp(t, newFakeLoader())
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	a.Echo.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
