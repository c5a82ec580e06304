package panelexport

import (
	"net/http"
	"time"
)

// ServiceConfig holds all configuration for a panelexport service instance.
type ServiceConfig struct {
	Name string // Service name used in logs (default "panelexport")
	Addr string // Listen address (default ":3000")

	HistoryEnabled      bool   // Log completed exports to SQLite (default off)
	HistoryDatabasePath string // History SQLite path (default "data/exports.db")

	AllowedOrigins []string      // CORS origins for the content front end (default "*")
	MaxBodySize    string        // Request body limit for panel payloads (default "64M")
	LoadTimeout    time.Duration // Per-image fetch timeout (default 30s)

	ExportsPerMinute int // Per-IP export rate limit (default 10)
}

func (c *ServiceConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "panelexport"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.HistoryDatabasePath == "" {
		c.HistoryDatabasePath = "data/exports.db"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "64M"
	}
	if c.LoadTimeout == 0 {
		c.LoadTimeout = defaultLoadTimeout
	}
	if c.ExportsPerMinute == 0 {
		c.ExportsPerMinute = 10
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithLoader replaces the default HTTP image loader.
func WithLoader(l ImageLoader) Option {
	return func(a *App) {
		a.loader = l
	}
}

// WithHTTPClient sets the HTTP client used to fetch panel images.
func WithHTTPClient(client *http.Client) Option {
	return func(a *App) {
		a.httpClient = client
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
