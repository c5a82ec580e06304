package panelexport

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	maxImageBytes      = 20 << 20 // 20MB per source image
	defaultLoadTimeout = 30 * time.Second
)

// ImageLoader resolves a panel's image locator into a decoded raster.
// Implementations make a single attempt per call: no retry, no caching.
// Identical locators loaded twice perform two fetches.
type ImageLoader interface {
	Load(ctx context.Context, locator string) (*LoadedImage, error)
}

// HTTPLoader fetches images over HTTP(S) and also resolves data: URIs and
// local file paths (the CLI manifest case). All failures are reported as
// *ImageLoadError so renderers can apply their per-panel policy.
type HTTPLoader struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTPLoader creates an HTTPLoader with the default timeout.
func NewHTTPLoader(client *http.Client) *HTTPLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPLoader{Client: client, Timeout: defaultLoadTimeout}
}

// Load fetches and decodes the image behind locator.
func (l *HTTPLoader) Load(ctx context.Context, locator string) (*LoadedImage, error) {
	data, err := l.fetch(ctx, locator)
	if err != nil {
		return nil, &ImageLoadError{Locator: locator, Err: err}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageLoadError{Locator: locator, Err: fmt.Errorf("decode image: %w", err)}
	}

	bounds := img.Bounds()
	return &LoadedImage{Image: img, Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

func (l *HTTPLoader) fetch(ctx context.Context, locator string) ([]byte, error) {
	switch {
	case strings.HasPrefix(locator, "data:"):
		return decodeDataURI(locator)
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		return l.fetchHTTP(ctx, locator)
	default:
		data, err := os.ReadFile(locator)
		if err != nil {
			return nil, err
		}
		return data, nil
	}
}

func (l *HTTPLoader) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = defaultLoadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", maxImageBytes)
	}
	return data, nil
}

// decodeDataURI extracts the payload of a data: URI. The generation frontend
// hands generated panels over as base64 data URLs, so this path is common.
func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode base64 payload: %w", err)
		}
		return data, nil
	}
	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("unescape data URI payload: %w", err)
	}
	return []byte(decoded), nil
}
