// Package views holds the page components of a folio site. Components are
// plain templ.Components so callers can swap any of them for their own.
package views

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/filledstacks/folio/markdown"
)

const dateLayout = "2006-01-02"

// Layout wraps body in the HTML document shell with head metadata, header
// and footer.
func Layout(site Site, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!DOCTYPE html>\n<html")
		h.attr("lang", site.Locale)
		h.raw(">\n<head>\n<meta charset=\"utf-8\">\n")
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
		h.raw("<title>")
		h.text(meta.Title)
		h.raw("</title>\n<meta name=\"description\"")
		h.attr("content", meta.Description)
		h.raw(">\n<link rel=\"canonical\"")
		h.href(meta.URL)
		h.raw(">\n")
		for _, alt := range site.Alternates {
			h.raw(`<link rel="alternate"`)
			h.attr("hreflang", alt.Locale)
			h.href(alt.Path)
			h.raw(">\n")
		}
		h.raw(`<link rel="alternate" type="application/rss+xml"`)
		h.attr("title", site.Title)
		h.href(site.FeedPath)
		h.raw(">\n")
		h.meta("og:title", meta.Title)
		h.meta("og:description", meta.Description)
		h.meta("og:url", meta.URL)
		h.meta("og:type", meta.OGType)
		h.meta("og:image", meta.OGImage)
		h.meta("og:video", meta.OGVideo)
		h.meta("og:locale", site.Locale)
		if meta.OGImage != "" {
			h.raw(`<meta name="twitter:card" content="summary_large_image">` + "\n")
		}
		if meta.JSONLD != "" {
			h.raw(`<script type="application/ld+json">`)
			h.raw(meta.JSONLD)
			h.raw("</script>\n")
		}
		h.raw("</head>\n<body>\n<header><a")
		h.href(site.HomePath)
		h.raw(">")
		h.text(site.Title)
		h.raw("</a></header>\n<main>\n")
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw("</main>\n<footer>\n")
		if len(site.Socials) > 0 {
			h.raw("<ul class=\"socials\">\n")
			for _, s := range site.Socials {
				h.raw("<li><a")
				h.href(s.Href)
				h.attr("title", s.LinkTitle)
				h.raw(` rel="noopener noreferrer" target="_blank">`)
				h.text(s.Name)
				h.raw("</a></li>\n")
			}
			h.raw("</ul>\n")
		}
		h.raw("</footer>\n</body>\n</html>\n")
		return h.err
	})
}

// ReadingTime renders the estimated reading time badge.
func ReadingTime(t Translate, minutes int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<span class="reading-time">`)
		h.text(t(MsgMinutes, minutes))
		h.raw("</span>")
		return h.err
	})
}

// PostPage renders a full post.
func PostPage(site Site, meta PageMeta, post Post) templ.Component {
	t := translator(site)
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<article>\n<h1>")
		h.text(post.Title)
		h.raw("</h1>\n<p class=\"post-meta\">")
		writeDates(h, t, post.PostCard)
		h.raw(" · ")
		if h.err != nil {
			return h.err
		}
		if err := ReadingTime(t, post.Minutes).Render(ctx, w); err != nil {
			return err
		}
		h.raw(" · <span class=\"word-count\">")
		h.text(t(MsgWords, humanize.Comma(int64(post.Words))))
		h.raw("</span>")
		if post.Author != "" {
			h.raw(" · <span class=\"author\">")
			h.text(post.Author)
			h.raw("</span>")
		}
		h.raw("</p>\n")
		writeTags(h, post.Tags)
		h.raw("<div class=\"post-body\">\n")
		if h.err != nil {
			return h.err
		}
		if err := markdown.Markdown(post.Body).Render(ctx, w); err != nil {
			return err
		}
		h.raw("</div>\n</article>\n")
		return h.err
	})
	return Layout(site, meta, body)
}

// IndexPage renders one page of the post listing.
func IndexPage(site Site, meta PageMeta, posts []PostCard, pager Pager) templ.Component {
	t := translator(site)
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>")
		h.text(t(MsgPosts))
		h.raw("</h1>\n")
		if len(posts) == 0 {
			h.raw("<p>")
			h.text(t(MsgNoPosts))
			h.raw("</p>\n")
			return h.err
		}
		h.raw("<ul class=\"posts\">\n")
		for _, p := range posts {
			h.raw("<li")
			if p.Featured {
				h.attr("class", "featured")
			}
			h.raw("><a")
			h.href(p.Path)
			h.raw("><h2>")
			h.text(p.Title)
			h.raw("</h2></a>\n<p class=\"post-meta\">")
			writeDates(h, t, p)
			h.raw(" · ")
			if h.err != nil {
				return h.err
			}
			if err := ReadingTime(t, p.Minutes).Render(ctx, w); err != nil {
				return err
			}
			h.raw("</p>\n<p>")
			h.text(p.Description)
			h.raw("</p>\n</li>\n")
		}
		h.raw("</ul>\n")
		if pager.Total > 1 {
			h.raw("<nav class=\"pagination\">")
			if pager.PrevPath != "" {
				h.raw("<a rel=\"prev\"")
				h.href(pager.PrevPath)
				h.raw(">")
				h.text(t(MsgPrev))
				h.raw("</a> ")
			}
			h.raw("<span>")
			h.text(t(MsgPageOf, pager.Number, pager.Total))
			h.raw("</span>")
			if pager.NextPath != "" {
				h.raw(" <a rel=\"next\"")
				h.href(pager.NextPath)
				h.raw(">")
				h.text(t(MsgNext))
				h.raw("</a>")
			}
			h.raw("</nav>\n")
		}
		return h.err
	})
	return Layout(site, meta, body)
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return message(site, MsgNotFound)
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	return message(site, MsgServerError)
}

func message(site Site, key string) templ.Component {
	t := translator(site)
	meta := PageMeta{Title: t(key) + " | " + site.Title, OGType: "website"}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>")
		h.text(t(key))
		h.raw("</h1>\n<p><a")
		h.href(site.HomePath)
		h.raw(">")
		h.text(t(MsgBackHome))
		h.raw("</a></p>\n")
		return h.err
	})
	return Layout(site, meta, body)
}

func writeDates(h *htmlWriter, t Translate, p PostCard) {
	h.raw("<time")
	h.attr("datetime", p.Published.Format(time.RFC3339))
	h.raw(">")
	h.text(t(MsgPublished) + " " + p.Published.Format(dateLayout))
	h.raw("</time>")
	if p.Updated != nil {
		h.raw(" · <time")
		h.attr("datetime", p.Updated.Format(time.RFC3339))
		h.raw(">")
		h.text(t(MsgUpdated) + " " + p.Updated.Format(dateLayout))
		h.raw("</time>")
	}
	if p.Featured {
		h.raw(` <span class="badge">`)
		h.text(t(MsgFeaturedPost))
		h.raw("</span>")
	}
}

func writeTags(h *htmlWriter, tags []string) {
	if len(tags) == 0 {
		return
	}
	h.raw("<ul class=\"tags\">")
	for _, tag := range tags {
		h.raw("<li>#")
		h.text(tag)
		h.raw("</li>")
	}
	h.raw("</ul>\n")
}
