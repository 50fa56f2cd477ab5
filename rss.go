package folio

import (
	"encoding/xml"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language,omitempty"`
	Items       []RSSItem `xml:"item"`
}

// RSSItem is one <item> of the feed.
type RSSItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// Feed is a projected RSS 2.0 document.
type Feed struct {
	Title       string
	Description string
	Site        string
	Language    string
	Items       []RSSItem
}

// ProjectRSS maps posts to feed items in the order given. Link is the
// absolute, locale-aware URL of the post page. Entries without a title or
// with a slug an earlier entry already used are skipped and reported in the
// returned *ProjectionError; the feed is still usable.
func ProjectRSS(cfg SiteConfig, posts []PostEntry, locale string) (Feed, error) {
	feed := Feed{
		Title:       cfg.Title,
		Description: cfg.Description,
		Site:        cfg.Website,
		Language:    locale,
		Items:       make([]RSSItem, 0, len(posts)),
	}
	var errs []error
	seen := make(slugSet, len(posts))
	for _, p := range posts {
		slug, err := requireSlug(p)
		if err == nil {
			err = seen.claim(p, slug)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		link := BuildURL(cfg.Website, PostURLPath(cfg, slug, locale))
		feed.Items = append(feed.Items, RSSItem{
			Title:       p.Frontmatter.Title,
			Link:        link,
			Description: p.Frontmatter.Description,
			PubDate:     p.Frontmatter.Published.UTC().Format(time.RFC1123Z),
			GUID:        link,
		})
	}
	return feed, projectionErr("rss", errs)
}

// requireSlug returns the URL slug of p or a *MissingFieldError when the
// title is absent or produces no slug.
func requireSlug(p PostEntry) (string, error) {
	if p.Frontmatter.Title == "" {
		return "", &MissingFieldError{EntryID: p.ID, Field: "title"}
	}
	slug := PostSlug(p.Frontmatter)
	if slug == "" {
		field := "title"
		if p.Frontmatter.PostSlug != "" {
			field = "postSlug"
		}
		return "", &MissingFieldError{EntryID: p.ID, Field: field}
	}
	return slug, nil
}

// WriteXML writes the feed as an RSS 2.0 document with XML header.
func (f Feed) WriteXML(w io.Writer) error {
	return RenderRSS(w, f)
}

// RenderRSS is the RSS sink: it serializes feed metadata and items.
func RenderRSS(w io.Writer, f Feed) error {
	doc := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       f.Title,
			Link:        f.Site,
			Description: f.Description,
			Language:    f.Language,
			Items:       f.Items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}

func (a *App) renderRSS(c echo.Context, feed Feed) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return feed.WriteXML(c.Response())
}
