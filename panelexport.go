// Package panelexport turns an ordered sequence of comic panels into
// shareable output artifacts: a paginated PDF, a single vertically-stitched
// strip image, or a set of square social-media-ready images.
//
// The surrounding product (story management, AI image generation, UI) is an
// external collaborator: it supplies panels (image locator, optional
// caption, geometry) and consumes artifact bytes plus suggested filenames.
// The package can be used three ways: directly through Exporter, as an HTTP
// service through App, or from the panelexport CLI.
package panelexport

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

// App is the panelexport HTTP service. It wires together the exporter, the
// optional export history store, middleware, and routes.
type App struct {
	Config   ServiceConfig
	Echo     *echo.Echo
	Exporter *Exporter
	History  *History

	loader        ImageLoader
	httpClient    *http.Client
	exportLimiter *ExportLimiter
	customRoutes  []func(*App)
}

// New creates a panelexport App with the given configuration.
func New(cfg ServiceConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start initializes the exporter, history store, middleware, and routes,
// then starts the server.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// init wires dependencies without binding a listener, so tests can drive
// the Echo instance directly.
func (a *App) init() error {
	if a.loader == nil {
		loader := NewHTTPLoader(a.httpClient)
		loader.Timeout = a.Config.LoadTimeout
		a.loader = loader
	}
	a.Exporter = NewExporter(a.loader)

	if a.Config.HistoryEnabled {
		history, err := NewHistory(a.Config.HistoryDatabasePath)
		if err != nil {
			return fmt.Errorf("panelexport: init history: %w", err)
		}
		a.History = history
	}

	a.exportLimiter = NewExportLimiter(a.Config.ExportsPerMinute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo
	e.GET("/healthz", a.handleHealth)
	e.POST("/export", a.handleExport)
	e.GET("/exports/", a.handleRecentExports)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.History != nil {
		return a.History.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("panelexport: required environment variable %s is not set", key)
	}
	return v
}
