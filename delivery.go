package panelexport

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultFilenameBase = "comic"

// Slugify converts a title to a filesystem- and URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// suggestedFilename derives an artifact filename from the configured title.
func suggestedFilename(title, ext string) string {
	base := Slugify(title)
	if base == "" {
		base = defaultFilenameBase
	}
	return base + "." + ext
}

// indexFilenames rewrites a multi-artifact set so each filename carries a
// 1-based index before the extension ("comic.jpg" -> "comic-1.jpg").
func indexFilenames(artifacts []Artifact) []Artifact {
	for i := range artifacts {
		artifacts[i].Filename = indexedFilename(artifacts[i].Filename, i+1)
	}
	return artifacts
}

func indexedFilename(name string, index int) string {
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), index, ext)
}

// WriteArtifacts saves every artifact under dir using its suggested
// filename and returns the written paths. This is the CLI delivery path;
// artifacts are not retained in memory or persisted anywhere else.
func WriteArtifacts(dir string, artifacts []Artifact) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(dir, a.Filename)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return nil, fmt.Errorf("write artifact: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// zipArtifacts bundles a multi-artifact set into one zip download.
func zipArtifacts(artifacts []Artifact) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, a := range artifacts {
		w, err := zw.Create(a.Filename)
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", a.Filename, err)
		}
		if _, err := w.Write(a.Data); err != nil {
			return nil, fmt.Errorf("zip write %s: %w", a.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}
