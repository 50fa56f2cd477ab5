package folio

import (
	"strings"
	"time"
)

// Frontmatter defaults applied when a post omits the field.
var (
	DefaultTags       = []string{"others"}
	DefaultCategories = []string{"tutorial"}
)

// PostEntry is one blog post: a validated frontmatter block plus the
// markdown body. ID has the form "<locale>/<slug>".
type PostEntry struct {
	ID          string
	Body        string
	Frontmatter Frontmatter
}

// Locale returns the locale segment of the entry ID.
func (e PostEntry) Locale() string {
	locale, _, ok := strings.Cut(e.ID, "/")
	if !ok {
		return ""
	}
	return locale
}

// Frontmatter is the validated metadata of a post.
type Frontmatter struct {
	Title       string
	Description string
	Published   time.Time
	Updated     *time.Time
	Draft       bool
	Featured    bool
	Tags        []string
	Categories  []string
	Author      string
	PostSlug    string
	OGImage     string
	OGVideo     string
	Lang        string

	// Set by AnnotateReadingTime.
	Minutes int
	Words   int
}

// LastModified returns Updated when set, Published otherwise.
func (f Frontmatter) LastModified() time.Time {
	if f.Updated != nil {
		return *f.Updated
	}
	return f.Published
}

// ReadingStats is the estimated reading time of a text.
type ReadingStats struct {
	Minutes int
	Words   int
}

// OGImageRequest asks the image generator for one social card.
type OGImageRequest struct {
	EntryID string
	Locale  string
	Title   string
	Path    string // site-relative path the card is served at
}

// PostPath is the static route parameter set of a single post page.
type PostPath struct {
	EntryID string
	Locale  string
	Slug    string
	Path    string
}
