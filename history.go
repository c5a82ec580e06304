package panelexport

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ExportRecord is one row of the export history log. Only metadata about an
// export is recorded; artifact bytes are never persisted.
type ExportRecord struct {
	ID         string `json:"id"`
	Format     string `json:"format"`
	Quality    string `json:"quality"`
	PanelCount int    `json:"panel_count"`
	Artifacts  int    `json:"artifacts"`
	Bytes      int64  `json:"bytes"`
	DurationMS int64  `json:"duration_ms"`
	CreatedAt  string `json:"created_at"`
}

// History wraps a SQLite database logging completed exports.
type History struct {
	db *sql.DB
}

// NewHistory opens (or creates) the SQLite database at path, ensures the
// data directory exists, and creates the schema.
func NewHistory(path string) (*History, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL plus a busy timeout lets the request logger write while the
	// recent-exports endpoint reads; synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	h := &History{db: db}
	if err := h.ensureSchema(); err != nil {
		return nil, err
	}
	return h, nil
}

// Close closes the underlying database connection.
func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) ensureSchema() error {
	_, err := h.db.Exec(`
CREATE TABLE IF NOT EXISTS exports (
    id TEXT PRIMARY KEY,
    format TEXT NOT NULL,
    quality TEXT NOT NULL,
    panel_count INTEGER NOT NULL,
    artifacts INTEGER NOT NULL,
    bytes INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    created_at TEXT NOT NULL
);
`)
	return err
}

// Record inserts a completed export and returns it with its assigned ID and
// timestamp filled in.
func (h *History) Record(rec ExportRecord) (ExportRecord, error) {
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	_, err := h.db.Exec(
		`INSERT INTO exports (id, format, quality, panel_count, artifacts, bytes, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Format, rec.Quality, rec.PanelCount, rec.Artifacts, rec.Bytes, rec.DurationMS, rec.CreatedAt,
	)
	if err != nil {
		return ExportRecord{}, err
	}
	return rec, nil
}

// Recent returns the most recent exports, newest first.
func (h *History) Recent(limit int) ([]ExportRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.Query(
		`SELECT id, format, quality, panel_count, artifacts, bytes, duration_ms, created_at
		 FROM exports ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []ExportRecord
	for rows.Next() {
		var r ExportRecord
		if err := rows.Scan(&r.ID, &r.Format, &r.Quality, &r.PanelCount, &r.Artifacts, &r.Bytes, &r.DurationMS, &r.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
