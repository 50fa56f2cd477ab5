package folio

import (
	"encoding/xml"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap is a projected sitemap document.
type Sitemap struct {
	URLs []SitemapURL
}

// ProjectSitemap lists the home page of every configured locale followed by
// the post pages of that locale, in the order of byLocale's selections.
func ProjectSitemap(cfg SiteConfig, byLocale map[string][]PostEntry) (Sitemap, error) {
	var sm Sitemap
	var errs []error
	for _, locale := range cfg.Locales {
		sm.URLs = append(sm.URLs, SitemapURL{Loc: BuildURL(cfg.Website, cfg.LocalizePath("/", locale))})
		seen := make(slugSet, len(byLocale[locale]))
		for _, p := range byLocale[locale] {
			slug, err := requireSlug(p)
			if err == nil {
				err = seen.claim(p, slug)
			}
			if err != nil {
				errs = append(errs, err)
				continue
			}
			sm.URLs = append(sm.URLs, SitemapURL{
				Loc:     BuildURL(cfg.Website, PostURLPath(cfg, slug, locale)),
				LastMod: p.Frontmatter.LastModified().UTC().Format("2006-01-02"),
			})
		}
	}
	return sm, projectionErr("sitemap", errs)
}

// WriteXML writes the sitemap as a urlset document with XML header.
func (s Sitemap) WriteXML(w io.Writer) error {
	doc := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  s.URLs,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}

func (a *App) renderSitemap(c echo.Context, sm Sitemap) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return sm.WriteXML(c.Response())
}
