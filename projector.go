package folio

// slugSet records which entry first emitted each slug in one projection.
type slugSet map[string]string

// claim returns a *DuplicateSlugError when slug was emitted before.
func (s slugSet) claim(p PostEntry, slug string) error {
	if first, ok := s[slug]; ok {
		return &DuplicateSlugError{EntryID: p.ID, Slug: slug, FirstID: first}
	}
	s[slug] = p.ID
	return nil
}

// ProjectOGImages emits one card request for every post that does not
// declare its own ogImage. Posts with an override are skipped; posts
// without a title, or whose card name an earlier post already took, are
// reported in the returned *ProjectionError.
func ProjectOGImages(cfg SiteConfig, posts []PostEntry, locale string) ([]OGImageRequest, error) {
	var reqs []OGImageRequest
	var errs []error
	seen := make(slugSet, len(posts))
	for _, p := range posts {
		if p.Frontmatter.OGImage != "" {
			continue
		}
		if p.Frontmatter.Title == "" {
			errs = append(errs, &MissingFieldError{EntryID: p.ID, Field: "title"})
			continue
		}
		name := Slugify(p.Frontmatter.Title)
		if name == "" {
			errs = append(errs, &MissingFieldError{EntryID: p.ID, Field: "title"})
			continue
		}
		if err := seen.claim(p, name); err != nil {
			errs = append(errs, err)
			continue
		}
		reqs = append(reqs, OGImageRequest{
			EntryID: p.ID,
			Locale:  locale,
			Title:   p.Frontmatter.Title,
			Path:    OGImagePath(cfg, name, locale),
		})
	}
	return reqs, projectionErr("og-image", errs)
}

// OGImagePath returns the site-relative path of a generated card.
func OGImagePath(cfg SiteConfig, name, locale string) string {
	return cfg.LocalizePath("/og/"+name+".png", locale)
}

// PostOGImage returns the absolute URL of the social card for p: its
// ogImage override resolved against the site, or the generated card.
func PostOGImage(cfg SiteConfig, p PostEntry) string {
	if p.Frontmatter.OGImage != "" {
		return AbsoluteURL(cfg.Website, p.Frontmatter.OGImage)
	}
	return AbsoluteURL(cfg.Website, OGImagePath(cfg, Slugify(p.Frontmatter.Title), p.Locale()))
}

// ProjectStaticPaths returns the route parameters of every post page. Of
// posts sharing a slug only the first is kept.
func ProjectStaticPaths(cfg SiteConfig, posts []PostEntry, locale string) ([]PostPath, error) {
	paths := make([]PostPath, 0, len(posts))
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
		paths = append(paths, PostPath{
			EntryID: p.ID,
			Locale:  locale,
			Slug:    slug,
			Path:    PostURLPath(cfg, slug, locale),
		})
	}
	return paths, projectionErr("static-paths", errs)
}

// PostURLPath returns the site-relative path of a post page.
func PostURLPath(cfg SiteConfig, slug, locale string) string {
	return cfg.LocalizePath("/posts/"+slug+"/", locale)
}

// FindPost returns the first post of posts whose slug is slug, the one the
// projections keep when slugs collide.
func FindPost(posts []PostEntry, slug string) (PostEntry, bool) {
	for _, p := range posts {
		if p.Frontmatter.Title != "" && PostSlug(p.Frontmatter) == slug {
			return p, true
		}
	}
	return PostEntry{}, false
}
