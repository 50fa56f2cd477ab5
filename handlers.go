package folio

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// pageLocale resolves the locale of a request from its :locale parameter.
// The default locale is only reachable without a prefix.
func (a *App) pageLocale(c echo.Context) (string, error) {
	locale := c.Param("locale")
	if locale == "" {
		return a.Config.DefaultLocale, nil
	}
	if locale == a.Config.DefaultLocale || !a.Config.HasLocale(locale) {
		return "", echo.ErrNotFound
	}
	return locale, nil
}

// posts loads and selects the published posts of locale.
func (a *App) posts(locale string) ([]PostEntry, error) {
	entries, err := a.loader.LoadCollection(locale)
	if err != nil {
		return nil, fmt.Errorf("load %s posts: %w", locale, err)
	}
	posts := SelectPosts(entries, locale)
	a.Metrics.selected(locale, len(posts))
	return posts, nil
}

// logSkipped reports the entries a projection left out. Skips never fail
// the request.
func (a *App) logSkipped(err error) {
	if err == nil {
		return
	}
	a.Metrics.skipped(err)
	var pe *ProjectionError
	if !errors.As(err, &pe) {
		a.Logger.Warnf("projection: %v", err)
		return
	}
	for _, e := range pe.Errs {
		a.Logger.Warnf("%s: skipped: %v", pe.Projection, e)
	}
}

func (a *App) handleHome(c echo.Context) error {
	return a.renderIndex(c, 1)
}

func (a *App) handlePage(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 1 {
		return echo.ErrNotFound
	}
	if n == 1 {
		locale, err := a.pageLocale(c)
		if err != nil {
			return err
		}
		return c.Redirect(http.StatusMovedPermanently, IndexPath(a.Config, 1, locale))
	}
	return a.renderIndex(c, n)
}

func (a *App) renderIndex(c echo.Context, n int) error {
	locale, err := a.pageLocale(c)
	if err != nil {
		return err
	}
	posts, err := a.posts(locale)
	if err != nil {
		return err
	}
	page := Paginate(posts, a.Config.PostPerPage, n)
	if n > page.TotalPages {
		return echo.ErrNotFound
	}
	return Render(c, IndexComponent(a.Config, page, locale))
}

func (a *App) handlePost(c echo.Context) error {
	locale, err := a.pageLocale(c)
	if err != nil {
		return err
	}
	posts, err := a.posts(locale)
	if err != nil {
		return err
	}
	post, ok := FindPost(posts, c.Param("slug"))
	if !ok {
		return echo.ErrNotFound
	}
	return Render(c, PostComponent(a.Config, post, locale))
}

func (a *App) handleOGImage(c echo.Context) error {
	locale, err := a.pageLocale(c)
	if err != nil {
		return err
	}
	name, ok := strings.CutSuffix(c.Param("file"), ".png")
	if !ok || name == "" {
		return echo.ErrNotFound
	}
	posts, err := a.posts(locale)
	if err != nil {
		return err
	}
	reqs, err := ProjectOGImages(a.Config, posts, locale)
	a.logSkipped(err)

	want := OGImagePath(a.Config, name, locale)
	for _, req := range reqs {
		if req.Path != want {
			continue
		}
		img, err := generateImage(a.images, req.Title)
		a.Metrics.image(err)
		if err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "image/png", img)
	}
	return echo.ErrNotFound
}

func (a *App) handleFeed(c echo.Context) error {
	locale, err := a.pageLocale(c)
	if err != nil {
		return err
	}
	posts, err := a.posts(locale)
	if err != nil {
		return err
	}
	feed, err := ProjectRSS(a.Config, posts, locale)
	a.logSkipped(err)
	return a.renderRSS(c, feed)
}

func (a *App) handleSitemap(c echo.Context) error {
	byLocale := make(map[string][]PostEntry, len(a.Config.Locales))
	for _, locale := range a.Config.Locales {
		posts, err := a.posts(locale)
		if err != nil {
			return err
		}
		byLocale[locale] = posts
	}
	sm, err := ProjectSitemap(a.Config, byLocale)
	a.logSkipped(err)
	return a.renderSitemap(c, sm)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, RobotsTxt(a.Config))
}

// RobotsTxt returns a robots.txt allowing everything and pointing at the
// sitemap.
func RobotsTxt(cfg SiteConfig) string {
	return "User-agent: *\nAllow: /\n\nSitemap: " + BuildURL(cfg.Website, "/sitemap.xml") + "\n"
}

// requestLocale guesses the locale of an arbitrary path for error pages.
func (a *App) requestLocale(p string) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(p, "/"), "/")
	if seg != "" && a.Config.HasLocale(seg) {
		return seg
	}
	return a.Config.DefaultLocale
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	locale := a.requestLocale(c.Request().URL.Path)
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, NotFoundComponent(a.Config, locale))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, ServerErrorComponent(a.Config, locale))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
