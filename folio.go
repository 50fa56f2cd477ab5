// Package folio is a localized static blog engine. It loads markdown posts
// from a content tree, selects the published posts of each locale and
// projects them into pages, RSS feeds, OG cards and a sitemap.
//
// The same pipeline backs both outputs: Builder writes a static site to
// disk and App serves it live through Echo for previewing.
package folio

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
)

// App is the preview server. Every request loads the collection afresh, so
// edits show up on reload without a rebuild.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Logger   *log.Logger
	Metrics  *Metrics
	Registry *prometheus.Registry

	loader       CollectionLoader
	images       ImageGenerator
	customRoutes []func(*App)
}

// New creates an App for cfg with routes and middleware installed.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	reg := prometheus.NewRegistry()
	a := &App{
		Config:   cfg,
		Echo:     echo.New(),
		Logger:   NewLogger(cfg.LogLevel, nil),
		Metrics:  NewMetrics(reg),
		Registry: reg,
		loader:   NewLoader(os.DirFS(cfg.ContentDir), "."),
		images:   NewCardGenerator(cfg),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.Echo.HideBanner = true
	a.Echo.Logger = a.Logger

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a
}

// Start listens on Config.Addr until the server is shut down.
func (a *App) Start() error {
	a.Logger.Infof("serving %s on %s", a.Config.ContentDir, a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: a.Registry,
	}))

	a.localeRoutes(e.Group(""))
	a.localeRoutes(e.Group("/:locale"))
}

// localeRoutes registers the per-locale pages on g. On the unprefixed group
// they serve the default locale.
func (a *App) localeRoutes(g *echo.Group) {
	g.GET("/", a.handleHome)
	g.GET("/page/:n/", a.handlePage)
	g.GET("/posts/:slug/", a.handlePost)
	g.GET("/og/:file", a.handleOGImage)
	g.GET("/rss.xml", a.handleFeed)
}
