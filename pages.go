package folio

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/filledstacks/folio/views"
)

// siteView localizes the site-wide values for pagePath in locale. Alternate
// links point at the same page in every other locale.
func siteView(cfg SiteConfig, locale, pagePath string) views.Site {
	site := views.Site{
		Title:       cfg.Title,
		Description: cfg.Description,
		URL:         cfg.Website,
		Locale:      locale,
		HomePath:    cfg.LocalizePath("/", locale),
		FeedPath:    cfg.LocalizePath("/rss.xml", locale),
		T:           NewTranslator(locale).T,
	}
	for _, s := range cfg.ActiveSocials() {
		site.Socials = append(site.Socials, views.Social{Name: s.Name, Href: s.Href, LinkTitle: s.LinkTitle})
	}
	if pagePath != "" {
		for _, l := range cfg.Locales {
			if l == locale {
				continue
			}
			site.Alternates = append(site.Alternates, views.Alternate{Locale: l, Path: cfg.LocalizePath(pagePath, l)})
		}
	}
	return site
}

func postCard(cfg SiteConfig, p PostEntry, locale string) views.PostCard {
	fm := p.Frontmatter
	return views.PostCard{
		Title:       fm.Title,
		Description: fm.Description,
		Path:        PostURLPath(cfg, PostSlug(fm), locale),
		Published:   fm.Published,
		Updated:     fm.Updated,
		Minutes:     fm.Minutes,
		Featured:    fm.Featured,
		Tags:        fm.Tags,
	}
}

// PostComponent returns the page component of a single post. The post must
// have passed requireSlug.
func PostComponent(cfg SiteConfig, p PostEntry, locale string) templ.Component {
	fm := p.Frontmatter
	card := postCard(cfg, p, locale)
	author := fm.Author
	if author == "" {
		author = cfg.Author
	}
	meta := views.PageMeta{
		Title:       fm.Title + " | " + cfg.Title,
		Description: fm.Description,
		URL:         BuildURL(cfg.Website, card.Path),
		OGType:      "article",
		OGImage:     PostOGImage(cfg, p),
		OGVideo:     fm.OGVideo,
		JSONLD:      BlogPostingJsonLD(p, cfg),
	}
	// Slugs differ per locale, so alternates are left out on post pages.
	site := siteView(cfg, locale, "")
	return views.PostPage(site, meta, views.Post{
		PostCard: card,
		Author:   author,
		Words:    fm.Words,
		Body:     p.Body,
	})
}

// IndexComponent returns page n of the locale's post listing.
func IndexComponent(cfg SiteConfig, page Page, locale string) templ.Component {
	cards := make([]views.PostCard, 0, len(page.Posts))
	for _, p := range page.Posts {
		if _, err := requireSlug(p); err != nil {
			continue
		}
		cards = append(cards, postCard(cfg, p, locale))
	}
	pagePath := IndexPath(cfg, page.Number, locale)
	meta := views.PageMeta{
		Title:       cfg.Title,
		Description: cfg.Description,
		URL:         BuildURL(cfg.Website, pagePath),
		OGType:      "website",
		JSONLD:      WebsiteJsonLD(cfg, locale),
	}
	if cfg.OGImage != "" {
		meta.OGImage = AbsoluteURL(cfg.Website, cfg.OGImage)
	}
	pager := views.Pager{Number: page.Number, Total: page.TotalPages}
	if page.HasPrev() {
		pager.PrevPath = IndexPath(cfg, page.Number-1, locale)
	}
	if page.HasNext() {
		pager.NextPath = IndexPath(cfg, page.Number+1, locale)
	}
	return views.IndexPage(siteView(cfg, locale, pagePath), meta, cards, pager)
}

// IndexPath returns the path of listing page n: the locale root for the
// first page, /page/<n>/ after that.
func IndexPath(cfg SiteConfig, n int, locale string) string {
	if n <= 1 {
		return cfg.LocalizePath("/", locale)
	}
	return cfg.LocalizePath("/page/"+strconv.Itoa(n)+"/", locale)
}

// NotFoundComponent returns the localized 404 page.
func NotFoundComponent(cfg SiteConfig, locale string) templ.Component {
	return views.NotFound(siteView(cfg, locale, ""))
}

// ServerErrorComponent returns the localized 500 page.
func ServerErrorComponent(cfg SiteConfig, locale string) templ.Component {
	return views.ServerError(siteView(cfg, locale, ""))
}
